package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/hrms_gateway/internal/domain"
)

type OverviewService interface {
	EmployeeOverview(ctx context.Context, employeeID int, month string) (*domain.EmployeeOverview, error)
}

type OverviewHandler struct {
	svc OverviewService
}

func NewOverviewHandler(svc OverviewService) *OverviewHandler {
	return &OverviewHandler{svc: svc}
}

// GetHandler handles GET /api/v1/employees/:id/overview?month=YYYY-MM
func (h *OverviewHandler) GetHandler(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return ResponseError(c, http.StatusBadRequest, "Invalid employee ID", err)
	}

	ov, err := h.svc.EmployeeOverview(c.Request().Context(), id, c.QueryParam("month"))
	if err != nil {
		return ResponseError(c, statusFor(err), "Failed to load employee overview", err)
	}

	msg := "Employee overview retrieved successfully"
	if len(ov.Failures) > 0 {
		msg = "Employee overview partially retrieved"
	}
	return ResponseSuccess(c, http.StatusOK, msg, ov)
}
