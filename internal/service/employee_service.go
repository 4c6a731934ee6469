package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/locvowork/hrms_gateway/internal/domain"
	"github.com/locvowork/hrms_gateway/internal/transport"
)

// EmployeeService calls the employee backend.
type EmployeeService struct {
	api *transport.Transport
}

// NewEmployeeService creates a new EmployeeService instance
func NewEmployeeService(api *transport.Transport) *EmployeeService {
	return &EmployeeService{api: api}
}

// List handles GET /employees/?offset&limit. The backend returns a bare array.
func (s *EmployeeService) List(ctx context.Context, offset, limit int) ([]domain.Employee, error) {
	if err := checkPage(offset, limit); err != nil {
		return nil, err
	}
	var employees []domain.Employee
	if err := s.api.Get(ctx, "/employees/", transport.Page(offset, limit), &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

// Get handles GET /employees/{id}
func (s *EmployeeService) Get(ctx context.Context, id int) (*domain.Employee, error) {
	if err := checkID("employee id", id); err != nil {
		return nil, err
	}
	var e domain.Employee
	if err := s.api.Get(ctx, fmt.Sprintf("/employees/%d", id), nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Create handles POST /employees/. The result carries the server-assigned id and status.
func (s *EmployeeService) Create(ctx context.Context, req domain.EmployeeCreate) (*domain.Employee, error) {
	var e domain.Employee
	if err := s.api.Post(ctx, "/employees/", req, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Update handles PATCH /employees/{id}; only non-nil fields are sent.
func (s *EmployeeService) Update(ctx context.Context, id int, req domain.EmployeeUpdate) (*domain.Employee, error) {
	if err := checkID("employee id", id); err != nil {
		return nil, err
	}
	var e domain.Employee
	if err := s.api.Patch(ctx, fmt.Sprintf("/employees/%d", id), req, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Delete handles DELETE /employees/{id} and returns whatever body the backend sent.
func (s *EmployeeService) Delete(ctx context.Context, id int) (json.RawMessage, error) {
	if err := checkID("employee id", id); err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := s.api.Delete(ctx, fmt.Sprintf("/employees/%d", id), nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
