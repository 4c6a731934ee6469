package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/locvowork/hrms_gateway/internal/domain"
	"github.com/locvowork/hrms_gateway/internal/transport"
)

// UserService calls the user/role backend. Its list endpoint wraps items in
// {"total", "users"}.
type UserService struct {
	api *transport.Transport
}

func NewUserService(api *transport.Transport) *UserService {
	return &UserService{api: api}
}

// List handles GET /users/?offset&limit[&role][&status]
func (s *UserService) List(ctx context.Context, filter domain.UserFilter) (*domain.UserListResponse, error) {
	limit := limitOrDefault(filter.Limit, DefaultEnvelopePageLimit)
	if err := checkPage(filter.Offset, limit); err != nil {
		return nil, err
	}
	q := transport.Page(filter.Offset, limit).
		Opt("role", filter.Role).
		Opt("status", filter.Status)

	var resp domain.UserListResponse
	if err := s.api.Get(ctx, "/users/", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get handles GET /users/{id}
func (s *UserService) Get(ctx context.Context, id int) (*domain.User, error) {
	if err := checkID("user id", id); err != nil {
		return nil, err
	}
	var u domain.User
	if err := s.api.Get(ctx, fmt.Sprintf("/users/%d", id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateRole handles POST /users/{id}/role
func (s *UserService) UpdateRole(ctx context.Context, id int, role string) (*domain.User, error) {
	if err := checkID("user id", id); err != nil {
		return nil, err
	}
	if strings.TrimSpace(role) == "" {
		return nil, fmt.Errorf("%w: role is required", ErrInvalidArgument)
	}
	var u domain.User
	path := fmt.Sprintf("/users/%d/role", id)
	if err := s.api.Post(ctx, path, domain.UserRoleUpdate{Role: role}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Suspend handles PUT /users/{id}/suspend with body {"reason": ...}
func (s *UserService) Suspend(ctx context.Context, id int, reason string) (*domain.User, error) {
	if err := checkID("user id", id); err != nil {
		return nil, err
	}
	var u domain.User
	path := fmt.Sprintf("/users/%d/suspend", id)
	if err := s.api.Put(ctx, path, domain.UserSuspend{Reason: reason}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Activate handles PUT /users/{id}/activate. No body is sent.
func (s *UserService) Activate(ctx context.Context, id int) (*domain.User, error) {
	if err := checkID("user id", id); err != nil {
		return nil, err
	}
	var u domain.User
	if err := s.api.Put(ctx, fmt.Sprintf("/users/%d/activate", id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Delete handles DELETE /users/{id}. The reason travels in the request body.
func (s *UserService) Delete(ctx context.Context, id int, reason string) (json.RawMessage, error) {
	if err := checkID("user id", id); err != nil {
		return nil, err
	}
	var raw json.RawMessage
	path := fmt.Sprintf("/users/%d", id)
	if err := s.api.Delete(ctx, path, domain.UserDelete{Reason: reason}, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
