// Package tree builds one browsable level of a bucket from the listing
// client: common prefixes become folders, and objects carry their version
// history when the bucket is versioned. It is a convenience layered on the
// core client, not part of it.
package tree

import (
	"context"
	"fmt"

	"tasnim.dev/s3browse"
	"tasnim.dev/s3browse/sigv2"
)

// Client is the subset of the s3browse client the builder needs.
type Client interface {
	IsBucketVersioned(ctx context.Context, bucket string, cred sigv2.Credential) (bool, error)
	ListObjects(ctx context.Context, bucket, prefix, marker string, cred sigv2.Credential) (s3browse.ListObjectsResult, error)
	ListVersions(ctx context.Context, bucket, key, versionIDMarker string, cred sigv2.Credential) ([]s3browse.ObjectVersion, error)
}

// Entry is one browsable item: a folder, a plain object, or a versioned
// object with its history.
type Entry interface {
	isEntry()
}

// Prefix is a "folder": all keys sharing this prefix up to the next delimiter.
type Prefix struct {
	Prefix string
}

// Plain is an object in an unversioned bucket.
type Plain struct {
	Object s3browse.Object
}

// Versioned is an object in a versioned bucket together with its versions,
// newest first as the origin returns them.
type Versioned struct {
	Object   s3browse.Object
	Versions []s3browse.ObjectVersion
}

func (Prefix) isEntry()    {}
func (Plain) isEntry()     {}
func (Versioned) isEntry() {}

// Level is one expanded listing level. Truncated means more keys share the
// prefix than one page holds; browse a narrower prefix to see them.
type Level struct {
	Entries   []Entry
	Truncated bool
}

// Build expands one level under prefix. The versioning status is checked once
// per call and not cached.
func Build(ctx context.Context, c Client, bucket, prefix string, cred sigv2.Credential) (Level, error) {
	versioned, err := c.IsBucketVersioned(ctx, bucket, cred)
	if err != nil {
		return Level{}, fmt.Errorf("checking versioning for %s: %w", bucket, err)
	}

	page, err := c.ListObjects(ctx, bucket, prefix, "", cred)
	if err != nil {
		return Level{}, fmt.Errorf("listing %s/%s: %w", bucket, prefix, err)
	}

	entries := make([]Entry, 0, len(page.Objects))
	for _, obj := range page.Objects {
		switch {
		case obj.IsPrefix:
			entries = append(entries, Prefix{Prefix: obj.Key})
		case versioned:
			versions, err := c.ListVersions(ctx, bucket, obj.Key, "", cred)
			if err != nil {
				return Level{}, fmt.Errorf("listing versions of %s/%s: %w", bucket, obj.Key, err)
			}
			entries = append(entries, Versioned{Object: obj, Versions: versions})
		default:
			entries = append(entries, Plain{Object: obj})
		}
	}

	return Level{Entries: entries, Truncated: page.IsTruncated}, nil
}
