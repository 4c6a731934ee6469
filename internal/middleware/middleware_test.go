package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/locvowork/hrms_gateway/internal/contextutil"
	"github.com/locvowork/hrms_gateway/internal/credential"
)

func serve(mw echo.MiddlewareFunc, req *http.Request, h echo.HandlerFunc) *httptest.ResponseRecorder {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = mw(h)(c)
	return rec
}

func TestRequestID_KeepsIncoming(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(contextutil.HeaderRequestID, "abc")

	var seen string
	rec := serve(RequestID(), req, func(c echo.Context) error {
		seen = contextutil.GetRequestID(c.Request().Context())
		return nil
	})
	assert.Equal(t, "abc", seen)
	assert.Equal(t, "abc", rec.Header().Get(contextutil.HeaderRequestID))
}

func TestRequestID_Generates(t *testing.T) {
	var seen string
	rec := serve(RequestID(), httptest.NewRequest(http.MethodGet, "/", nil), func(c echo.Context) error {
		seen = contextutil.GetRequestID(c.Request().Context())
		return nil
	})
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get(contextutil.HeaderRequestID))
}

func TestForwardBearer(t *testing.T) {
	tokenOf := func(req *http.Request) (string, bool) {
		var tok string
		var ok bool
		serve(ForwardBearer(), req, func(c echo.Context) error {
			tok, ok = credential.TokenFromContext(c.Request().Context())
			return nil
		})
		return tok, ok
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer header-token")
	tok, ok := tokenOf(req)
	assert.True(t, ok)
	assert.Equal(t, "header-token", tok)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie-token"})
	tok, ok = tokenOf(req)
	assert.True(t, ok)
	assert.Equal(t, "cookie-token", tok)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwdw==")
	_, ok = tokenOf(req)
	assert.False(t, ok)
}
