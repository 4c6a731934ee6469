package service

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/hrms_gateway/internal/credential"
	"github.com/locvowork/hrms_gateway/internal/transport"
)

// recorded is one request seen by a fake backend.
type recorded struct {
	Method string
	Path   string
	Query  string
	Body   string
	Auth   string
}

// backend is a fake HRMS service mounted under /api/v1.
type backend struct {
	*echo.Echo
	api *echo.Group

	mu       sync.Mutex
	requests []recorded
}

func newBackend() *backend {
	b := &backend{Echo: echo.New()}
	b.HideBanner = true
	b.Pre(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, _ := io.ReadAll(c.Request().Body)
			b.mu.Lock()
			b.requests = append(b.requests, recorded{
				Method: c.Request().Method,
				Path:   c.Request().URL.Path,
				Query:  c.Request().URL.RawQuery,
				Body:   string(raw),
				Auth:   c.Request().Header.Get("Authorization"),
			})
			b.mu.Unlock()
			return next(c)
		}
	})
	b.api = b.Group("/api/v1")
	return b
}

func (b *backend) last(t *testing.T) recorded {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	require.NotEmpty(t, b.requests, "backend received no request")
	return b.requests[len(b.requests)-1]
}

func (b *backend) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.requests)
}

// start serves b and returns a transport bound to it with the stored token.
func (b *backend) start(t *testing.T, token string) *transport.Transport {
	t.Helper()
	ts := httptest.NewServer(b)
	t.Cleanup(ts.Close)

	provider := credential.None()
	if token != "" {
		provider = credential.Static(token)
	}
	tr, err := transport.New(ts.URL+"/api/v1",
		transport.WithDomain("test"),
		transport.WithInterceptor(transport.AuthInterceptor(provider)),
	)
	require.NoError(t, err)
	return tr
}

func jsonString(code int, body string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Blob(code, echo.MIMEApplicationJSON, []byte(body))
	}
}

func noContent(c echo.Context) error { return c.NoContent(http.StatusNoContent) }
