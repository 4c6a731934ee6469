package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type HealthHandler struct {
	endpoints map[string]string
}

// NewHealthHandler reports the configured backend base addresses by domain.
func NewHealthHandler(endpoints map[string]string) *HealthHandler {
	return &HealthHandler{endpoints: endpoints}
}

// GetHandler handles GET /health
func (h *HealthHandler) GetHandler(c echo.Context) error {
	return ResponseSuccess(c, http.StatusOK, "ok", map[string]interface{}{
		"status":   "up",
		"backends": h.endpoints,
	})
}
