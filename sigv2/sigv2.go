// Package sigv2 implements AWS Signature Version 2 request signing for S3.
//
// The canonicalization rules here must match AWS byte-for-byte: any deviation
// produces a 403 SignatureDoesNotMatch with no further diagnostics.
package sigv2

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"net/http"
	"sort"
	"strings"
)

// Credential is an access key / secret key pair. It is plain data: callers
// pass it into every operation rather than storing it in shared state.
type Credential struct {
	AccessKey string
	SecretKey string
}

// subResources is the fixed set of query parameters that address a bucket or
// object facet and therefore must be signed. Plain request parameters such as
// prefix, marker, max-keys and delimiter must NOT appear in the canonical
// resource.
var subResources = map[string]struct{}{
	"acl":            {},
	"cors":           {},
	"delete":         {},
	"lifecycle":      {},
	"location":       {},
	"logging":        {},
	"notification":   {},
	"partNumber":     {},
	"policy":         {},
	"requestPayment": {},
	"restore":        {},
	"tagging":        {},
	"torrent":        {},
	"uploadId":       {},
	"uploads":        {},
	"versionId":      {},
	"versioning":     {},
	"versions":       {},
	"website":        {},
}

type subResourceParam struct {
	name     string
	value    string
	hasValue bool
}

// CanonicalResource builds the resource string AWS expects signed from a
// relative request path of the form /bucket[/key][?query].
//
// Only whitelisted sub-resource parameters survive, and a whitelisted
// parameter with an explicit empty value is dropped too. Survivors are ordered
// with the no-value group first, lexicographically by name within each group.
// The literal request URI keeps its original query untouched; this string is
// used for signing only.
func CanonicalResource(relPath string) string {
	path, rawQuery, ok := strings.Cut(relPath, "?")
	if !ok {
		return path
	}

	var keep []subResourceParam
	params := strings.FieldsFunc(rawQuery, func(r rune) bool {
		return r == '&' || r == ';'
	})
	for _, p := range params {
		name, value, hasValue := strings.Cut(p, "=")
		if _, whitelisted := subResources[name]; !whitelisted {
			continue
		}
		if hasValue && value == "" {
			continue
		}
		keep = append(keep, subResourceParam{name: name, value: value, hasValue: hasValue})
	}
	if len(keep) == 0 {
		return path
	}

	sort.SliceStable(keep, func(i, j int) bool {
		if keep[i].hasValue != keep[j].hasValue {
			return !keep[i].hasValue
		}
		return keep[i].name < keep[j].name
	})

	var b strings.Builder
	b.WriteString(path)
	for i, p := range keep {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(p.name)
		if p.hasValue {
			b.WriteByte('=')
			b.WriteString(p.value)
		}
	}
	return b.String()
}

// CanonicalAmzHeaders extracts x-amz-* headers from h and renders the
// canonical header block: names lowercased, sorted, values trimmed, lines
// joined with "\n" and no trailing newline. Returns "" when no x-amz-*
// headers are present.
func CanonicalAmzHeaders(h http.Header) string {
	var lines []string
	for name, values := range h {
		lower := strings.ToLower(name)
		if !strings.HasPrefix(lower, "x-amz-") {
			continue
		}
		lines = append(lines, lower+":"+strings.TrimSpace(strings.Join(values, ",")))
	}
	if len(lines) == 0 {
		return ""
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n")
}

// StringToSign assembles the signing payload for a bodyless request (no
// Content-MD5, no Content-Type). The canonical amz-header block, when
// non-empty, runs directly into the resource with no extra separator.
func StringToSign(method, rfc822Date string, h http.Header, canonicalResource string) string {
	return method + "\n\n\n" + rfc822Date + "\n" + CanonicalAmzHeaders(h) + canonicalResource
}

// Sign computes the base64-encoded HMAC-SHA1 of payload keyed by secret.
// Deterministic, no side effects.
func Sign(secret, payload string) string {
	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write([]byte(payload))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
