package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/hrms_gateway/internal/domain"
	"github.com/locvowork/hrms_gateway/pkg/simpleexcel"
)

type ExportService interface {
	Employees(ctx context.Context, format simpleexcel.Format, w io.Writer) error
	AuditLogs(ctx context.Context, filter domain.AuditFilter, format simpleexcel.Format, w io.Writer) error
}

type ExportHandler struct {
	svc ExportService
	now func() time.Time
}

func NewExportHandler(svc ExportService) *ExportHandler {
	return &ExportHandler{svc: svc, now: time.Now}
}

// EmployeesHandler handles GET /api/v1/exports/employees?format=xlsx|csv
func (h *ExportHandler) EmployeesHandler(c echo.Context) error {
	return h.export(c, "employees", func(ctx context.Context, f simpleexcel.Format, w io.Writer) error {
		return h.svc.Employees(ctx, f, w)
	})
}

// AuditLogsHandler handles GET /api/v1/exports/audit-logs?format&action&resource_type
func (h *ExportHandler) AuditLogsHandler(c echo.Context) error {
	filter := domain.AuditFilter{
		Action:       c.QueryParam("action"),
		ResourceType: c.QueryParam("resource_type"),
	}
	return h.export(c, "audit_logs", func(ctx context.Context, f simpleexcel.Format, w io.Writer) error {
		return h.svc.AuditLogs(ctx, filter, f, w)
	})
}

// export renders into memory first so a failing backend still gets a JSON error.
func (h *ExportHandler) export(c echo.Context, name string, run func(context.Context, simpleexcel.Format, io.Writer) error) error {
	format, err := simpleexcel.ParseFormat(c.QueryParam("format"))
	if err != nil {
		return ResponseError(c, http.StatusBadRequest, "Invalid export format", err)
	}

	var buf bytes.Buffer
	if err := run(c.Request().Context(), format, &buf); err != nil {
		return ResponseError(c, statusFor(err), "Failed to export "+name, err)
	}

	filename := format.Filename(fmt.Sprintf("%s_%s", name, h.now().Format("20060102_150405")))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK, format.ContentType(), buf.Bytes())
}
