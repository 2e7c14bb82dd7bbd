package s3browse

import "time"

// Owner identifies the account owning a bucket or object.
type Owner struct {
	ID          string
	DisplayName string
}

// Bucket is one entry from a list-buckets call.
type Bucket struct {
	Name      string
	CreatedAt time.Time
}

// Object is one entry from an object listing. IsPrefix marks a common-prefix
// ("folder") entry, in which case only Key is set.
type Object struct {
	Key          string
	ETag         string
	Size         int64
	LastModified time.Time
	Owner        Owner
	StorageClass string
	IsPrefix     bool
}

// ObjectVersion is one entry from a version listing. Within the versions of a
// key, exactly one entry has IsLatest set, and the origin returns versions
// newest first; the client preserves that order and never re-sorts.
type ObjectVersion struct {
	Object
	VersionID string
	IsLatest  bool
}

// ListObjectsResult is a single listing page. When IsTruncated is set the
// caller should narrow the prefix or continue from NextMarker; the client
// never auto-pages object listings.
type ListObjectsResult struct {
	Objects     []Object
	IsTruncated bool
	NextMarker  string
}
