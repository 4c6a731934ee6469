// Package transport is the HTTP client shared by every HRMS domain client. A
// Transport is bound to one backend base address and sends JSON requests
// through a chain of request interceptors.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

// RequestInterceptor transforms an outgoing request. Returning an error
// aborts the call before anything is sent.
type RequestInterceptor func(*http.Request) (*http.Request, error)

// Observer is told about every call once it has finished. status is 0 when
// no response was received.
type Observer func(ctx context.Context, domain, method string, status int, elapsed time.Duration, err error)

// Transport is a configured HTTP client for one backend.
type Transport struct {
	domain       string
	baseURL      *url.URL
	header       http.Header
	client       *http.Client
	interceptors []RequestInterceptor
	observers    []Observer
}

// Option configures a Transport.
type Option func(*Transport)

// WithDomain labels the transport in logs, metrics and errors.
func WithDomain(name string) Option {
	return func(t *Transport) { t.domain = name }
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(t *Transport) {
		if c != nil {
			t.client = c
		}
	}
}

// WithTimeout sets the per-request timeout of a transport-owned client.
func WithTimeout(d time.Duration) Option {
	return func(t *Transport) {
		if d <= 0 {
			return
		}
		c := *t.client
		c.Timeout = d
		t.client = &c
	}
}

// WithHeader adds a default header sent on every request.
func WithHeader(key, value string) Option {
	return func(t *Transport) { t.header.Set(key, value) }
}

// WithInterceptor appends interceptors; they run in registration order.
func WithInterceptor(in ...RequestInterceptor) Option {
	return func(t *Transport) { t.interceptors = append(t.interceptors, in...) }
}

// WithObserver appends call observers.
func WithObserver(obs ...Observer) Option {
	return func(t *Transport) { t.observers = append(t.observers, obs...) }
}

// New builds a transport for baseAddress. Nothing is sent until a request
// method is called. Every transport owns its default headers.
func New(baseAddress string, opts ...Option) (*Transport, error) {
	u, err := url.Parse(baseAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid base address %q: %w", baseAddress, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid base address %q: want http(s)://host[:port]/path", baseAddress)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""

	t := &Transport{
		domain:  u.Host,
		baseURL: u,
		header: http.Header{
			"Content-Type": []string{"application/json"},
			"Accept":       []string{"application/json"},
		},
		client: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Domain returns the transport label.
func (t *Transport) Domain() string { return t.domain }

// BaseURL returns the base address the transport is bound to.
func (t *Transport) BaseURL() string { return t.baseURL.String() }

// Header returns a copy of the default headers.
func (t *Transport) Header() http.Header { return t.header.Clone() }

// Request describes one call relative to the base address.
type Request struct {
	Method string
	Path   string
	Query  *Params
	// Body is JSON-encoded when non-nil. A nil Body sends no body at all.
	Body interface{}
}

// Get issues a GET.
func (t *Transport) Get(ctx context.Context, path string, query *Params, out interface{}) error {
	return t.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

// Post issues a POST with a JSON body.
func (t *Transport) Post(ctx context.Context, path string, body, out interface{}) error {
	return t.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

// Put issues a PUT. body may be nil.
func (t *Transport) Put(ctx context.Context, path string, body, out interface{}) error {
	return t.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body}, out)
}

// Patch issues a PATCH with a JSON body.
func (t *Transport) Patch(ctx context.Context, path string, body, out interface{}) error {
	return t.Do(ctx, Request{Method: http.MethodPatch, Path: path, Body: body}, out)
}

// Delete issues a DELETE. body may be nil; some backends read a reason from it.
func (t *Transport) Delete(ctx context.Context, path string, body, out interface{}) error {
	return t.Do(ctx, Request{Method: http.MethodDelete, Path: path, Body: body}, out)
}

// Do sends r and decodes a 2xx JSON response into out (which may be nil).
// Failures are returned as *TransportError, *StatusError, *CredentialError or
// *DecodeError. There is no retry.
func (t *Transport) Do(ctx context.Context, r Request, out interface{}) (err error) {
	start := time.Now()
	status := 0
	defer func() {
		for _, obs := range t.observers {
			obs(ctx, t.domain, r.Method, status, time.Since(start), err)
		}
	}()

	req, err := t.newRequest(ctx, r)
	if err != nil {
		return err
	}

	for _, in := range t.interceptors {
		next, ierr := in(req)
		if ierr != nil {
			return ierr
		}
		if next != nil {
			req = next
		}
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return &TransportError{Domain: t.domain, Method: r.Method, URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Domain: t.domain, Method: r.Method, URL: req.URL.String(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Domain:     t.domain,
			Method:     r.Method,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Body:       body,
		}
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &DecodeError{Domain: t.domain, Method: r.Method, URL: req.URL.String(), Body: body, Err: err}
	}
	return nil
}

func (t *Transport) newRequest(ctx context.Context, r Request) (*http.Request, error) {
	if r.Method == "" {
		r.Method = http.MethodGet
	}
	if r.Path != "" && !strings.HasPrefix(r.Path, "/") {
		r.Path = "/" + r.Path
	}

	u := *t.baseURL
	u.Path = t.baseURL.Path + r.Path
	u.RawQuery = r.Query.Encode()

	var body io.Reader
	if r.Body != nil {
		data, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", r.Method, r.Path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", r.Method, r.Path, err)
	}
	req.Header = t.header.Clone()
	return req, nil
}
