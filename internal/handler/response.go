package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/hrms_gateway/internal/logger"
	"github.com/locvowork/hrms_gateway/internal/service"
	"github.com/locvowork/hrms_gateway/internal/transport"
)

// APIResponse is the envelope of every JSON response of the gateway.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func ResponseSuccess(c echo.Context, code int, message string, data interface{}) error {
	return c.JSON(code, APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

func ResponseError(c echo.Context, code int, message string, err error) error {
	resp := APIResponse{Success: false, Message: message}
	if err != nil {
		resp.Error = err.Error()
		logger.ErrorLog(c.Request().Context(), "%s: %v", message, err)
	}
	return c.JSON(code, resp)
}

// statusFor maps a service error to the status the gateway answers with.
// Backend rejections keep their meaning; everything else is a bad gateway.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, transport.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, transport.ErrUnauthenticated), errors.Is(err, transport.ErrCredential):
		return http.StatusUnauthorized
	case errors.Is(err, transport.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, transport.ErrInvalidRequest):
		if code := transport.StatusCode(err); code != 0 {
			return code
		}
		return http.StatusBadRequest
	case errors.Is(err, transport.ErrTransport):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}
