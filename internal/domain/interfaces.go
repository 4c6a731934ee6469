package domain

import (
	"context"
	"encoding/json"
)

// Domain names one independently deployed HRMS backend.
type Domain string

const (
	DomainEmployee     Domain = "employee"
	DomainAttendance   Domain = "attendance"
	DomainLeave        Domain = "leave"
	DomainUser         Domain = "user"
	DomainAudit        Domain = "audit"
	DomainNotification Domain = "notification"
	DomainCompliance   Domain = "compliance"
)

// Domains lists every backend in a fixed order.
func Domains() []Domain {
	return []Domain{
		DomainEmployee,
		DomainAttendance,
		DomainLeave,
		DomainUser,
		DomainAudit,
		DomainNotification,
		DomainCompliance,
	}
}

// EmployeeService defines the typed operations of the employee backend
type EmployeeService interface {
	List(ctx context.Context, offset, limit int) ([]Employee, error)
	Get(ctx context.Context, id int) (*Employee, error)
	Create(ctx context.Context, req EmployeeCreate) (*Employee, error)
	Update(ctx context.Context, id int, req EmployeeUpdate) (*Employee, error)
	Delete(ctx context.Context, id int) (json.RawMessage, error)
}

// AttendanceService defines the typed operations of the attendance backend
type AttendanceService interface {
	CheckIn(ctx context.Context, req CheckInRequest) (*Attendance, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (*Attendance, error)
	ListByEmployee(ctx context.Context, employeeID, offset, limit int) ([]Attendance, error)
	MonthlySummary(ctx context.Context, employeeID int, month string) (*MonthlySummary, error)
}

// LeaveService defines the typed operations of the leave backend
type LeaveService interface {
	Create(ctx context.Context, req LeaveCreate) (*Leave, error)
	ListByEmployee(ctx context.Context, employeeID, offset, limit int) ([]Leave, error)
	List(ctx context.Context, filter LeaveFilter) ([]Leave, error)
	UpdateStatus(ctx context.Context, id int, req LeaveStatusUpdate) (*Leave, error)
	Cancel(ctx context.Context, id int) (json.RawMessage, error)
}

// UserService defines the typed operations of the user backend
type UserService interface {
	List(ctx context.Context, filter UserFilter) (*UserListResponse, error)
	Get(ctx context.Context, id int) (*User, error)
	UpdateRole(ctx context.Context, id int, role string) (*User, error)
	Suspend(ctx context.Context, id int, reason string) (*User, error)
	Activate(ctx context.Context, id int) (*User, error)
	Delete(ctx context.Context, id int, reason string) (json.RawMessage, error)
}

// AuditService defines the typed operations of the audit backend
type AuditService interface {
	List(ctx context.Context, filter AuditFilter) (*AuditLogListResponse, error)
	Get(ctx context.Context, id int) (*AuditLog, error)
}

// NotificationService defines the typed operations of the notification backend
type NotificationService interface {
	List(ctx context.Context, filter NotificationFilter) (*NotificationListResponse, error)
	ListByEmployee(ctx context.Context, employeeID, offset, limit int) (*NotificationListResponse, error)
	Retry(ctx context.Context, id int) (*Notification, error)
}

// AuditIndex stores archived audit logs
type AuditIndex interface {
	BulkIndexAuditLogs(ctx context.Context, logs []AuditLog) error
}
