package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/locvowork/hrms_gateway/internal/domain"
	"github.com/locvowork/hrms_gateway/internal/transport"
)

// AttendanceService calls the attendance backend. Check-in/out are not
// deduplicated here; one-per-day is enforced by the backend.
type AttendanceService struct {
	api *transport.Transport
}

func NewAttendanceService(api *transport.Transport) *AttendanceService {
	return &AttendanceService{api: api}
}

// CheckIn handles POST /attendance/check-in
func (s *AttendanceService) CheckIn(ctx context.Context, req domain.CheckInRequest) (*domain.Attendance, error) {
	if err := checkID("employee id", req.EmployeeID); err != nil {
		return nil, err
	}
	var a domain.Attendance
	if err := s.api.Post(ctx, "/attendance/check-in", req, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// CheckOut handles POST /attendance/check-out
func (s *AttendanceService) CheckOut(ctx context.Context, req domain.CheckOutRequest) (*domain.Attendance, error) {
	if err := checkID("employee id", req.EmployeeID); err != nil {
		return nil, err
	}
	var a domain.Attendance
	if err := s.api.Post(ctx, "/attendance/check-out", req, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// ListByEmployee handles GET /attendance/employee/{id}?offset&limit
func (s *AttendanceService) ListByEmployee(ctx context.Context, employeeID, offset, limit int) ([]domain.Attendance, error) {
	if err := checkID("employee id", employeeID); err != nil {
		return nil, err
	}
	if err := checkPage(offset, limit); err != nil {
		return nil, err
	}
	var records []domain.Attendance
	path := fmt.Sprintf("/attendance/employee/%d", employeeID)
	if err := s.api.Get(ctx, path, transport.Page(offset, limit), &records); err != nil {
		return nil, err
	}
	return records, nil
}

// MonthlySummary handles GET /attendance/summary/{id}/{month}. month is passed
// through as given (the backend expects YYYY-MM).
func (s *AttendanceService) MonthlySummary(ctx context.Context, employeeID int, month string) (*domain.MonthlySummary, error) {
	if err := checkID("employee id", employeeID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(month) == "" {
		return nil, fmt.Errorf("%w: month is required", ErrInvalidArgument)
	}
	var summary domain.MonthlySummary
	path := fmt.Sprintf("/attendance/summary/%d/%s", employeeID, url.PathEscape(month))
	if err := s.api.Get(ctx, path, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
