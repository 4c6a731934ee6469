package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/locvowork/hrms_gateway/internal/contextutil"
	"github.com/locvowork/hrms_gateway/internal/logger"
)

// RequestID accepts or generates an X-Request-ID, puts it on the request
// context (and its logger) and echoes it back. Backend calls made while
// serving the request carry the same id.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			rid := req.Header.Get(contextutil.HeaderRequestID)
			if rid == "" {
				rid = uuid.New().String()
			}

			ctx := contextutil.WithRequestID(req.Context(), rid)
			ctx = logger.WithLogger(ctx, map[string]interface{}{"request_id": rid})
			c.SetRequest(req.WithContext(ctx))

			c.Response().Header().Set(contextutil.HeaderRequestID, rid)
			return next(c)
		}
	}
}
