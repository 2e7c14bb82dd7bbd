package sigv2

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const (
	// DefaultEndpoint is the fixed AWS S3 origin. Requests use path-style
	// addressing (bucket in the path), never virtual-hosted-style.
	DefaultEndpoint = "https://s3.amazonaws.com"

	// DefaultUserAgent identifies this client on every request.
	DefaultUserAgent = "s3browse/1.0"
)

// Factory builds fully authorized GET requests. It performs no I/O itself:
// the returned *http.Request is ready to hand to any transport.
type Factory struct {
	endpoint  string
	userAgent string
	now       func() time.Time
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithEndpoint overrides the S3 origin, e.g. for an S3-compatible store.
// The value must not end with a slash.
func WithEndpoint(endpoint string) FactoryOption {
	return func(f *Factory) {
		f.endpoint = endpoint
	}
}

// WithUserAgent overrides the User-Agent header value.
func WithUserAgent(ua string) FactoryOption {
	return func(f *Factory) {
		f.userAgent = ua
	}
}

// WithClock overrides the time source used for the Date header.
func WithClock(now func() time.Time) FactoryOption {
	return func(f *Factory) {
		f.now = now
	}
}

// NewFactory returns a Factory with the fixed AWS defaults.
func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{
		endpoint:  DefaultEndpoint,
		userAgent: DefaultUserAgent,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewRequest resolves relPath (which must start with "/" and may carry a raw
// query string) against the endpoint, stamps Date and User-Agent, and attaches
// "Authorization: AWS <accessKey>:<signature>".
//
// The string-to-sign is computed over the request's own header state at that
// point, so for a plain GET the canonical amz-header block is empty. The
// request URI keeps the original query; only the canonical resource is signed.
func (f *Factory) NewRequest(ctx context.Context, relPath string, cred Credential) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint+relPath, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", relPath, err)
	}

	date := f.now().UTC().Format(http.TimeFormat)
	req.Header.Set("Date", date)
	req.Header.Set("User-Agent", f.userAgent)

	payload := StringToSign(http.MethodGet, date, req.Header, CanonicalResource(relPath))
	req.Header.Set("Authorization", "AWS "+cred.AccessKey+":"+Sign(cred.SecretKey, payload))
	return req, nil
}
