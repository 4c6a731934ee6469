package service

import (
	"github.com/locvowork/hrms_gateway/internal/client"
	"github.com/locvowork/hrms_gateway/internal/domain"
)

var (
	_ domain.EmployeeService     = (*EmployeeService)(nil)
	_ domain.AttendanceService   = (*AttendanceService)(nil)
	_ domain.LeaveService        = (*LeaveService)(nil)
	_ domain.UserService         = (*UserService)(nil)
	_ domain.AuditService        = (*AuditService)(nil)
	_ domain.NotificationService = (*NotificationService)(nil)
)

// Services bundles the typed services built on one set of clients. The
// compliance client has no service.
type Services struct {
	Employee     *EmployeeService
	Attendance   *AttendanceService
	Leave        *LeaveService
	User         *UserService
	Audit        *AuditService
	Notification *NotificationService
	Overview     *OverviewService
	Export       *ExportService
}

func NewServices(c *client.Clients, exportPageSize, exportWorkers int) *Services {
	s := &Services{
		Employee:     NewEmployeeService(c.Employee),
		Attendance:   NewAttendanceService(c.Attendance),
		Leave:        NewLeaveService(c.Leave),
		User:         NewUserService(c.User),
		Audit:        NewAuditService(c.Audit),
		Notification: NewNotificationService(c.Notification),
	}
	s.Overview = NewOverviewService(s.Employee, s.Attendance, s.Leave, s.Notification)
	s.Export = NewExportService(s.Employee, s.Audit, exportPageSize, exportWorkers)
	return s
}
