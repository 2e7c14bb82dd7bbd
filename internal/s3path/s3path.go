// Package s3path builds request paths and query strings for path-style S3
// addressing.
package s3path

import (
	"net/url"
	"strings"
)

// EscapeKey escapes each segment of an object key so the key can appear in a
// request path, keeping "/" separators intact.
func EscapeKey(key string) string {
	segs := strings.Split(key, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}

// EscapeQuery escapes a query parameter value, keeping "/" intact so prefixes
// and delimiters stay readable on the wire.
func EscapeQuery(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "%2F", "/")
}
