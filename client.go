// Package s3browse is a read-only S3 client for browsing buckets, objects,
// object versions, and small object payloads. Requests are authorized with
// AWS Signature Version 2 (see the sigv2 package) and use path-style
// addressing against a fixed origin.
//
// The client is synchronous and holds no per-call mutable state: credentials
// are passed explicitly into every operation, so independent call sites may
// use one Client concurrently. It performs no retries and no caching; both
// are the caller's policy.
package s3browse

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"tasnim.dev/s3browse/config"
	"tasnim.dev/s3browse/internal/s3path"
	"tasnim.dev/s3browse/obs"
	"tasnim.dev/s3browse/sigv2"
)

// Listing requests always ask for full pages; large buckets are meant to be
// narrowed with prefixes rather than walked.
const maxKeys = "1000"

// Doer executes a single HTTP request. *http.Client satisfies it; tests
// substitute a stub.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client issues authorized S3 read requests.
type Client struct {
	httpc   Doer
	factory *sigv2.Factory
	log     *slog.Logger
	metrics *obs.Metrics
	tracer  trace.Tracer

	factoryOpts []sigv2.FactoryOption
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient sets the transport used to execute requests.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.httpc = d }
}

// WithEndpoint points the client at an S3-compatible origin instead of AWS.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.factoryOpts = append(c.factoryOpts, sigv2.WithEndpoint(endpoint))
	}
}

// WithUserAgent overrides the fixed User-Agent string.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.factoryOpts = append(c.factoryOpts, sigv2.WithUserAgent(ua))
	}
}

// WithClock overrides the time source used for the Date header.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.factoryOpts = append(c.factoryOpts, sigv2.WithClock(now))
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithMetrics attaches request metrics. Nil disables them.
func WithMetrics(m *obs.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithConfig applies the non-empty fields of a loaded config file.
func WithConfig(cfg *config.Config) Option {
	return func(c *Client) {
		if cfg == nil {
			return
		}
		if cfg.Endpoint != "" {
			c.factoryOpts = append(c.factoryOpts, sigv2.WithEndpoint(cfg.Endpoint))
		}
		if cfg.UserAgent != "" {
			c.factoryOpts = append(c.factoryOpts, sigv2.WithUserAgent(cfg.UserAgent))
		}
	}
}

// New builds a Client. With no options it talks to AWS S3 over
// http.DefaultClient.
func New(opts ...Option) *Client {
	c := &Client{
		httpc:  http.DefaultClient,
		log:    slog.Default(),
		tracer: otel.Tracer("tasnim.dev/s3browse"),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.factory = sigv2.NewFactory(c.factoryOpts...)
	return c
}

// ListBuckets returns all buckets owned by the credential's account.
func (c *Client) ListBuckets(ctx context.Context, cred sigv2.Credential) ([]Bucket, error) {
	const op = "ListBuckets"
	var res listAllMyBucketsResult
	if err := c.getXML(ctx, op, "/", cred, &res); err != nil {
		return nil, err
	}

	buckets := make([]Bucket, len(res.Buckets.Bucket))
	for i, b := range res.Buckets.Bucket {
		buckets[i] = Bucket{Name: b.Name, CreatedAt: b.CreationDate}
	}
	return buckets, nil
}

// IsBucketVersioned reports whether versioning has ever been turned on for
// the bucket: true for status Enabled or Suspended (case-insensitive), false
// when the status is absent or anything else. The result is not cached.
func (c *Client) IsBucketVersioned(ctx context.Context, bucket string, cred sigv2.Credential) (bool, error) {
	const op = "GetBucketVersioning"
	var cfg versioningConfiguration
	err := c.getXML(ctx, op, "/"+bucket+"/?versioning", cred, &cfg,
		attribute.String("s3.bucket", bucket))
	if err != nil {
		return false, err
	}

	switch strings.ToLower(cfg.Status) {
	case "enabled", "suspended":
		return true, nil
	}
	return false, nil
}

// ListObjects returns a single listing page for the prefix, delimited on "/".
// Common prefixes come first, then objects. An empty marker requests the
// first page; the client never auto-pages object listings — when the result
// is truncated the caller narrows the prefix or continues from NextMarker.
func (c *Client) ListObjects(ctx context.Context, bucket, prefix, marker string, cred sigv2.Credential) (ListObjectsResult, error) {
	const op = "ListObjects"
	relPath := "/" + bucket + "/?prefix=" + s3path.EscapeQuery(prefix) + "&max-keys=" + maxKeys + "&delimiter=/"
	if marker != "" {
		relPath += "&marker=" + s3path.EscapeQuery(marker)
	}

	var res listBucketResult
	err := c.getXML(ctx, op, relPath, cred, &res,
		attribute.String("s3.bucket", bucket),
		attribute.String("s3.prefix", prefix))
	if err != nil {
		return ListObjectsResult{}, err
	}

	objects := make([]Object, 0, len(res.CommonPrefixes)+len(res.Contents))
	for _, cp := range res.CommonPrefixes {
		objects = append(objects, Object{Key: cp.Prefix, IsPrefix: true})
	}
	for _, o := range res.Contents {
		objects = append(objects, Object{
			Key:          o.Key,
			ETag:         o.ETag,
			Size:         o.Size,
			LastModified: o.LastModified,
			Owner:        Owner{ID: o.Owner.ID, DisplayName: o.Owner.DisplayName},
			StorageClass: o.StorageClass,
		})
	}

	result := ListObjectsResult{Objects: objects, IsTruncated: res.IsTruncated}
	if res.IsTruncated {
		result.NextMarker = res.NextMarker
	}
	return result, nil
}

// ListVersions returns every version of key, following the compound
// (key-marker, version-id-marker) cursor until the origin stops returning a
// next marker. Versions are yielded in origin order, newest first per key.
// Supply versionIDMarker to restart a previous enumeration mid-way.
func (c *Client) ListVersions(ctx context.Context, bucket, key, versionIDMarker string, cred sigv2.Credential) ([]ObjectVersion, error) {
	const op = "ListVersions"
	var versions []ObjectVersion
	marker := versionIDMarker
	for {
		relPath := "/" + bucket + "/?versions&prefix=" + s3path.EscapeQuery(key) + "&max-keys=" + maxKeys + "&delimiter=/"
		if marker != "" {
			relPath += "&version-id-marker=" + s3path.EscapeQuery(marker) + "&key-marker=" + s3path.EscapeQuery(key)
		}

		var res listVersionsResult
		err := c.getXML(ctx, op, relPath, cred, &res,
			attribute.String("s3.bucket", bucket),
			attribute.String("s3.key", key))
		if err != nil {
			return nil, err
		}

		for _, v := range res.Version {
			versions = append(versions, ObjectVersion{
				Object: Object{
					Key:          v.Key,
					ETag:         v.ETag,
					Size:         v.Size,
					LastModified: v.LastModified,
					Owner:        Owner{ID: v.Owner.ID, DisplayName: v.Owner.DisplayName},
					StorageClass: v.StorageClass,
				},
				VersionID: v.VersionID,
				IsLatest:  v.IsLatest,
			})
		}

		if res.NextVersionIDMarker == "" {
			return versions, nil
		}
		marker = res.NextVersionIDMarker
	}
}

// GetContent fetches the object's bytes, optionally for a specific version.
// The whole body is buffered in memory; this is the contract for browsing
// small files, not for streaming large objects.
func (c *Client) GetContent(ctx context.Context, bucket, key, versionID string, cred sigv2.Credential) ([]byte, error) {
	const op = "GetObject"
	relPath := "/" + bucket + "/" + s3path.EscapeKey(key)
	if versionID != "" {
		relPath += "?versionId=" + versionID
	}
	return c.do(ctx, op, relPath, cred,
		attribute.String("s3.bucket", bucket),
		attribute.String("s3.key", key))
}

// do builds, signs and executes one GET, returning the raw body of a 2xx
// response and a typed error otherwise.
func (c *Client) do(ctx context.Context, op, relPath string, cred sigv2.Credential, attrs ...attribute.KeyValue) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, "s3browse."+op, trace.WithAttributes(attrs...))
	defer span.End()

	req, err := c.factory.NewRequest(ctx, relPath, cred)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		terr := &TransportError{Op: op, Err: err}
		c.metrics.ObserveError(op, "transport")
		span.RecordError(terr)
		return nil, terr
	}
	defer resp.Body.Close()

	elapsed := time.Since(start)
	c.metrics.ObserveRequest(op, resp.StatusCode, elapsed)
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	c.log.DebugContext(ctx, "s3 request",
		"op", op, "path", relPath, "status", resp.StatusCode, "elapsed", elapsed)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		terr := &TransportError{Op: op, Err: err}
		c.metrics.ObserveError(op, "transport")
		span.RecordError(terr)
		return nil, terr
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serr := statusError(resp.StatusCode, body)
		c.metrics.ObserveError(op, errorKind(serr))
		span.RecordError(serr)
		return nil, serr
	}
	return body, nil
}

// getXML runs do and decodes the body into out.
func (c *Client) getXML(ctx context.Context, op, relPath string, cred sigv2.Credential, out any, attrs ...attribute.KeyValue) error {
	body, err := c.do(ctx, op, relPath, cred, attrs...)
	if err != nil {
		return err
	}
	if err := xml.Unmarshal(body, out); err != nil {
		c.metrics.ObserveError(op, "format")
		return &ResponseFormatError{Op: op, Err: err}
	}
	return nil
}

// statusError maps a non-2xx response to the error taxonomy, pulling Code and
// Message from the S3 <Error> body when one is present.
func statusError(code int, body []byte) error {
	var er errorResponse
	_ = xml.Unmarshal(body, &er)

	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &AuthenticationError{StatusCode: code, Code: er.Code, Message: er.Message}
	case http.StatusNotFound:
		return &NotFoundError{Code: er.Code, Message: er.Message}
	default:
		return &StatusError{StatusCode: code, Code: er.Code, Message: er.Message}
	}
}
