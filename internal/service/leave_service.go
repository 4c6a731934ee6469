package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/locvowork/hrms_gateway/internal/domain"
	"github.com/locvowork/hrms_gateway/internal/transport"
)

// LeaveService calls the leave backend. The pending -> approved/rejected
// transition is validated server side.
type LeaveService struct {
	api *transport.Transport
}

func NewLeaveService(api *transport.Transport) *LeaveService {
	return &LeaveService{api: api}
}

// Create handles POST /leaves/
func (s *LeaveService) Create(ctx context.Context, req domain.LeaveCreate) (*domain.Leave, error) {
	if err := checkID("employee id", req.EmployeeID); err != nil {
		return nil, err
	}
	var l domain.Leave
	if err := s.api.Post(ctx, "/leaves/", req, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// ListByEmployee handles GET /leaves/employee/{id}?offset&limit
func (s *LeaveService) ListByEmployee(ctx context.Context, employeeID, offset, limit int) ([]domain.Leave, error) {
	if err := checkID("employee id", employeeID); err != nil {
		return nil, err
	}
	if err := checkPage(offset, limit); err != nil {
		return nil, err
	}
	var leaves []domain.Leave
	path := fmt.Sprintf("/leaves/employee/%d", employeeID)
	if err := s.api.Get(ctx, path, transport.Page(offset, limit), &leaves); err != nil {
		return nil, err
	}
	return leaves, nil
}

// List handles GET /leaves/?offset&limit[&status]
func (s *LeaveService) List(ctx context.Context, filter domain.LeaveFilter) ([]domain.Leave, error) {
	limit := limitOrDefault(filter.Limit, DefaultPageLimit)
	if err := checkPage(filter.Offset, limit); err != nil {
		return nil, err
	}
	q := transport.Page(filter.Offset, limit).Opt("status", filter.Status)

	var leaves []domain.Leave
	if err := s.api.Get(ctx, "/leaves/", q, &leaves); err != nil {
		return nil, err
	}
	return leaves, nil
}

// UpdateStatus handles PUT /leaves/{id}
func (s *LeaveService) UpdateStatus(ctx context.Context, id int, req domain.LeaveStatusUpdate) (*domain.Leave, error) {
	if err := checkID("leave id", id); err != nil {
		return nil, err
	}
	var l domain.Leave
	if err := s.api.Put(ctx, fmt.Sprintf("/leaves/%d", id), req, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// Cancel handles DELETE /leaves/{id}
func (s *LeaveService) Cancel(ctx context.Context, id int) (json.RawMessage, error) {
	if err := checkID("leave id", id); err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := s.api.Delete(ctx, fmt.Sprintf("/leaves/%d", id), nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
