package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/hrms_gateway/internal/credential"
)

const accessTokenCookie = "access_token"

// ForwardBearer takes the caller's token from the Authorization header (or
// the access_token cookie) and attaches it to the request context, where
// credential.ContextProvider picks it up for backend calls. The token is not
// validated here; the backends do that.
func ForwardBearer() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, found := strings.CutPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
			if !found {
				token = ""
			}
			if token == "" {
				if cookie, err := c.Cookie(accessTokenCookie); err == nil {
					token = cookie.Value
				}
			}
			token = strings.TrimSpace(token)
			if token != "" {
				req := c.Request()
				c.SetRequest(req.WithContext(credential.WithToken(req.Context(), token)))
			}
			return next(c)
		}
	}
}
