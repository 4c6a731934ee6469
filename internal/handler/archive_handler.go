package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/hrms_gateway/internal/domain"
)

type ArchiveService interface {
	ArchiveAuditLogs(ctx context.Context, filter domain.AuditFilter) (int, error)
}

type ArchiveHandler struct {
	svc ArchiveService
}

func NewArchiveHandler(svc ArchiveService) *ArchiveHandler {
	return &ArchiveHandler{svc: svc}
}

// AuditLogsHandler handles POST /api/v1/archive/audit-logs?offset&action&resource_type
func (h *ArchiveHandler) AuditLogsHandler(c echo.Context) error {
	offset := 0
	if raw := c.QueryParam("offset"); raw != "" {
		var err error
		if offset, err = strconv.Atoi(raw); err != nil {
			return ResponseError(c, http.StatusBadRequest, "Invalid offset", err)
		}
	}
	filter := domain.AuditFilter{
		Offset:       offset,
		Action:       c.QueryParam("action"),
		ResourceType: c.QueryParam("resource_type"),
	}

	n, err := h.svc.ArchiveAuditLogs(c.Request().Context(), filter)
	data := map[string]int{"indexed": n}
	if err != nil {
		code := statusFor(err)
		return c.JSON(code, APIResponse{Success: false, Data: data, Message: "Audit archive incomplete", Error: err.Error()})
	}
	return ResponseSuccess(c, http.StatusOK, "Audit logs archived successfully", data)
}
