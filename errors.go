package s3browse

import "fmt"

// TransportError wraps a connectivity failure: DNS, connect, timeout, or a
// broken body read. Never retried by this client.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// AuthenticationError reports a 401/403 response, typically a signing
// mismatch or an expired/invalid credential. Retrying cannot succeed.
type AuthenticationError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed (HTTP %d): %s: %s", e.StatusCode, e.Code, e.Message)
}

// NotFoundError reports a 404: no such bucket or key. The caller decides
// whether absence is expected.
type NotFoundError struct {
	Code    string
	Message string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s: %s", e.Code, e.Message)
}

// ResponseFormatError reports a response body that did not match the expected
// XML schema. Surfaced as a defect, never silently defaulted.
type ResponseFormatError struct {
	Op  string
	Err error
}

func (e *ResponseFormatError) Error() string {
	return fmt.Sprintf("%s: malformed response: %v", e.Op, e.Err)
}

func (e *ResponseFormatError) Unwrap() error { return e.Err }

// StatusError reports any other non-2xx response (throttling, 5xx).
type StatusError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed (HTTP %d): %s: %s", e.StatusCode, e.Code, e.Message)
}

func errorKind(err error) string {
	switch err.(type) {
	case *TransportError:
		return "transport"
	case *AuthenticationError:
		return "auth"
	case *NotFoundError:
		return "not_found"
	case *ResponseFormatError:
		return "format"
	default:
		return "status"
	}
}
