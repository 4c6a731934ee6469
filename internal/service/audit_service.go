package service

import (
	"context"
	"fmt"

	"github.com/locvowork/hrms_gateway/internal/domain"
	"github.com/locvowork/hrms_gateway/internal/transport"
)

// AuditService reads the audit trail. There are no write operations.
type AuditService struct {
	api *transport.Transport
}

func NewAuditService(api *transport.Transport) *AuditService {
	return &AuditService{api: api}
}

// List handles GET /audit/?offset&limit[&action][&resource_type]
func (s *AuditService) List(ctx context.Context, filter domain.AuditFilter) (*domain.AuditLogListResponse, error) {
	limit := limitOrDefault(filter.Limit, DefaultEnvelopePageLimit)
	if err := checkPage(filter.Offset, limit); err != nil {
		return nil, err
	}
	q := transport.Page(filter.Offset, limit).
		Opt("action", filter.Action).
		Opt("resource_type", filter.ResourceType)

	var resp domain.AuditLogListResponse
	if err := s.api.Get(ctx, "/audit/", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get handles GET /audit/{id}
func (s *AuditService) Get(ctx context.Context, id int) (*domain.AuditLog, error) {
	if err := checkID("audit id", id); err != nil {
		return nil, err
	}
	var log domain.AuditLog
	if err := s.api.Get(ctx, fmt.Sprintf("/audit/%d", id), nil, &log); err != nil {
		return nil, err
	}
	return &log, nil
}
