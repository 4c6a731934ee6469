package transport

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinels for errors.Is. Concrete errors carry the request details.
var (
	ErrTransport           = errors.New("transport failure")
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidRequest      = errors.New("invalid request")
	ErrBackend             = errors.New("backend failure")
	ErrCredential          = errors.New("credential unavailable")
	ErrMalformedCredential = errors.New("malformed credential")
	ErrDecode              = errors.New("undecodable response")
)

// TransportError is a request that never produced an HTTP response: DNS,
// connection refused, TLS, timeout or cancellation.
type TransportError struct {
	Domain string
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// StatusError is a non-2xx response. Body is kept verbatim.
type StatusError struct {
	Domain     string
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	if len(e.Body) > 0 {
		return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode), truncate(e.Body, 512))
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Kind returns the sentinel describing the status class.
func (e *StatusError) Kind() error {
	switch {
	case e.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case e.StatusCode == http.StatusUnauthorized:
		return ErrUnauthenticated
	case e.StatusCode == http.StatusForbidden:
		return ErrForbidden
	case e.StatusCode >= 400 && e.StatusCode < 500:
		return ErrInvalidRequest
	default:
		return ErrBackend
	}
}

func (e *StatusError) Is(target error) bool { return target == e.Kind() }

// CredentialError stops a request before it is sent.
type CredentialError struct {
	Err error
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("credential: %v", e.Err)
}

func (e *CredentialError) Unwrap() error { return e.Err }

func (e *CredentialError) Is(target error) bool { return target == ErrCredential }

// DecodeError is a 2xx response whose body does not fit the target type.
type DecodeError struct {
	Domain string
	Method string
	URL    string
	Body   []byte
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s %s: decode response: %v", e.Method, e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// IsNotFound reports whether err is a 404 from a backend.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StatusCode extracts the backend status from err, or 0 if there is none.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
