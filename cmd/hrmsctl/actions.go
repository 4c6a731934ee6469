package main

import (
	"context"
	"fmt"
	"io"

	"github.com/locvowork/hrms_gateway/internal/credential"
	"github.com/locvowork/hrms_gateway/internal/domain"
	"github.com/locvowork/hrms_gateway/internal/service"
	"github.com/locvowork/hrms_gateway/pkg/simpleexcel"
)

var actions = map[string]actionFunc{
	// ==================== SESSION ====================
	"login": func(ctx context.Context, e *env) (interface{}, error) {
		if e.args.token == "" {
			return nil, fmt.Errorf("-token is required")
		}
		if err := e.store.Put(ctx, credential.TokenKey, e.args.token); err != nil {
			return nil, err
		}
		return map[string]string{"message": "token stored"}, nil
	},
	"logout": func(ctx context.Context, e *env) (interface{}, error) {
		if err := e.store.Delete(ctx, credential.TokenKey); err != nil {
			return nil, err
		}
		return map[string]string{"message": "token removed"}, nil
	},

	// ==================== EMPLOYEE ====================
	"employee.list": func(ctx context.Context, e *env) (interface{}, error) {
		return e.svc.Employee.List(ctx, e.args.offset, e.pageLimit(service.DefaultPageLimit))
	},
	"employee.get": func(ctx context.Context, e *env) (interface{}, error) {
		return e.svc.Employee.Get(ctx, e.args.id)
	},
	"employee.create": func(ctx context.Context, e *env) (interface{}, error) {
		var req domain.EmployeeCreate
		if err := e.payload(&req); err != nil {
			return nil, err
		}
		return e.svc.Employee.Create(ctx, req)
	},
	"employee.update": func(ctx context.Context, e *env) (interface{}, error) {
		var req domain.EmployeeUpdate
		if err := e.payload(&req); err != nil {
			return nil, err
		}
		return e.svc.Employee.Update(ctx, e.args.id, req)
	},
	"employee.delete": func(ctx context.Context, e *env) (interface{}, error) {
		return e.svc.Employee.Delete(ctx, e.args.id)
	},

	// ==================== ATTENDANCE ====================
	"attendance.check-in": func(ctx context.Context, e *env) (interface{}, error) {
		return e.svc.Attendance.CheckIn(ctx, domain.CheckInRequest{EmployeeID: e.args.id})
	},
	"attendance.check-out": func(ctx context.Context, e *env) (interface{}, error) {
		return e.svc.Attendance.CheckOut(ctx, domain.CheckOutRequest{EmployeeID: e.args.id})
	},
	"attendance.list": func(ctx context.Context, e *env) (interface{}, error) {
		return e.svc.Attendance.ListByEmployee(ctx, e.args.id, e.args.offset, e.pageLimit(service.DefaultPageLimit))
	},
	"attendance.summary": func(ctx context.Context, e *env) (interface{}, error) {
		return e.svc.Attendance.MonthlySummary(ctx, e.args.id, e.args.month)
	},

	// ==================== LEAVE ====================
	"leave.create": func(ctx context.Context, e *env) (interface{}, error) {
		var req domain.LeaveCreate
		if err := e.payload(&req); err != nil {
			return nil, err
		}
		return e.svc.Leave.Create(ctx, req)
	},
	"leave.list": func(ctx context.Context, e *env) (interface{}, error) {
		return e.svc.Leave.List(ctx, domain.LeaveFilter{Offset: e.args.offset, Limit: e.args.limit, Status: e.args.status})
	},
	"leave.list-employee": func(ctx context.Context, e *env) (interface{}, error) {
		return e.svc.Leave.ListByEmployee(ctx, e.args.id, e.args.offset, e.pageLimit(service.DefaultPageLimit))
	},
	"leave.update-status": func(ctx context.Context, e *env) (interface{}, error) {
		var req domain.LeaveStatusUpdate
		if err := e.payload(&req); err != nil {
			return nil, err
		}
		return e.svc.Leave.UpdateStatus(ctx, e.args.id, req)
	},
	"leave.cancel": func(ctx context.Context, e *env) (interface{}, error) {
		return e.svc.Leave.Cancel(ctx, e.args.id)
	},

	// ==================== USER ====================
	"user.list": func(ctx context.Context, e *env) (interface{}, error) {
		return e.svc.User.List(ctx, domain.UserFilter{Offset: e.args.offset, Limit: e.args.limit, Role: e.args.role, Status: e.args.status})
	},
	"user.get": func(ctx context.Context, e *env) (interface{}, error) {
		return e.svc.User.Get(ctx, e.args.id)
	},
	"user.role": func(ctx context.Context, e *env) (interface{}, error) {
		return e.svc.User.UpdateRole(ctx, e.args.id, e.args.role)
	},
	"user.suspend": func(ctx context.Context, e *env) (interface{}, error) {
		return e.svc.User.Suspend(ctx, e.args.id, e.args.reason)
	},
	"user.activate": func(ctx context.Context, e *env) (interface{}, error) {
		return e.svc.User.Activate(ctx, e.args.id)
	},
	"user.delete": func(ctx context.Context, e *env) (interface{}, error) {
		return e.svc.User.Delete(ctx, e.args.id, e.args.reason)
	},

	// ==================== AUDIT ====================
	"audit.list": func(ctx context.Context, e *env) (interface{}, error) {
		return e.svc.Audit.List(ctx, e.auditFilter())
	},
	"audit.get": func(ctx context.Context, e *env) (interface{}, error) {
		return e.svc.Audit.Get(ctx, e.args.id)
	},

	// ==================== NOTIFICATION ====================
	"notification.list": func(ctx context.Context, e *env) (interface{}, error) {
		return e.svc.Notification.List(ctx, domain.NotificationFilter{Offset: e.args.offset, Limit: e.args.limit, Status: e.args.status})
	},
	"notification.list-employee": func(ctx context.Context, e *env) (interface{}, error) {
		return e.svc.Notification.ListByEmployee(ctx, e.args.id, e.args.offset, e.pageLimit(service.DefaultEnvelopePageLimit))
	},
	"notification.retry": func(ctx context.Context, e *env) (interface{}, error) {
		return e.svc.Notification.Retry(ctx, e.args.id)
	},

	// ==================== COMPOSITE ====================
	"overview": func(ctx context.Context, e *env) (interface{}, error) {
		return e.svc.Overview.EmployeeOverview(ctx, e.args.id, e.args.month)
	},
	"export.employees": func(ctx context.Context, e *env) (interface{}, error) {
		return nil, e.export(func(f simpleexcel.Format, w io.Writer) error {
			return e.svc.Export.Employees(ctx, f, w)
		})
	},
	"export.audit": func(ctx context.Context, e *env) (interface{}, error) {
		return nil, e.export(func(f simpleexcel.Format, w io.Writer) error {
			return e.svc.Export.AuditLogs(ctx, e.auditFilter(), f, w)
		})
	},
}

func (e *env) auditFilter() domain.AuditFilter {
	return domain.AuditFilter{
		Offset:       e.args.offset,
		Limit:        e.args.limit,
		Action:       e.args.action,
		ResourceType: e.args.resource,
	}
}

// countingWriter reports how much was exported.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

func (e *env) export(run func(simpleexcel.Format, io.Writer) error) error {
	format, err := simpleexcel.ParseFormat(e.args.format)
	if err != nil {
		return err
	}
	out, err := e.output()
	if err != nil {
		return err
	}
	defer out.Close()

	cw := &countingWriter{w: out}
	if err := run(format, cw); err != nil {
		return err
	}
	if e.args.out != "" {
		fmt.Printf("wrote %d bytes to %s\n", cw.n, e.args.out)
	}
	return nil
}
