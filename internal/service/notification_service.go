package service

import (
	"context"
	"fmt"

	"github.com/locvowork/hrms_gateway/internal/domain"
	"github.com/locvowork/hrms_gateway/internal/transport"
)

// NotificationService calls the notification backend. Its list endpoints wrap
// items in {"total", "items"}.
type NotificationService struct {
	api *transport.Transport
}

func NewNotificationService(api *transport.Transport) *NotificationService {
	return &NotificationService{api: api}
}

// List handles GET /notifications?offset&limit[&status]. The path has no
// trailing slash, unlike the other collections.
func (s *NotificationService) List(ctx context.Context, filter domain.NotificationFilter) (*domain.NotificationListResponse, error) {
	limit := limitOrDefault(filter.Limit, DefaultEnvelopePageLimit)
	if err := checkPage(filter.Offset, limit); err != nil {
		return nil, err
	}
	q := transport.Page(filter.Offset, limit).Opt("status", filter.Status)

	var resp domain.NotificationListResponse
	if err := s.api.Get(ctx, "/notifications", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListByEmployee handles GET /notifications/employee/{id}?offset&limit
func (s *NotificationService) ListByEmployee(ctx context.Context, employeeID, offset, limit int) (*domain.NotificationListResponse, error) {
	if err := checkID("employee id", employeeID); err != nil {
		return nil, err
	}
	if err := checkPage(offset, limit); err != nil {
		return nil, err
	}
	var resp domain.NotificationListResponse
	path := fmt.Sprintf("/notifications/employee/%d", employeeID)
	if err := s.api.Get(ctx, path, transport.Page(offset, limit), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Retry handles PUT /notifications/{id}/retry. The backend decides whether
// the notification is retryable.
func (s *NotificationService) Retry(ctx context.Context, id int) (*domain.Notification, error) {
	if err := checkID("notification id", id); err != nil {
		return nil, err
	}
	var n domain.Notification
	if err := s.api.Put(ctx, fmt.Sprintf("/notifications/%d/retry", id), nil, &n); err != nil {
		return nil, err
	}
	return &n, nil
}
