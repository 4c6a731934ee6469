package service

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/locvowork/hrms_gateway/internal/domain"
	"github.com/locvowork/hrms_gateway/internal/logger"
)

// Overview section names, used as keys of EmployeeOverview.Failures.
const (
	SectionAttendance    = "attendance"
	SectionSummary       = "summary"
	SectionLeaves        = "leaves"
	SectionNotifications = "notifications"
)

// OverviewService stitches one employee's data together from several backends.
type OverviewService struct {
	employees     domain.EmployeeService
	attendance    domain.AttendanceService
	leaves        domain.LeaveService
	notifications domain.NotificationService
	now           func() time.Time
}

func NewOverviewService(
	employees domain.EmployeeService,
	attendance domain.AttendanceService,
	leaves domain.LeaveService,
	notifications domain.NotificationService,
) *OverviewService {
	return &OverviewService{
		employees:     employees,
		attendance:    attendance,
		leaves:        leaves,
		notifications: notifications,
		now:           time.Now,
	}
}

// EmployeeOverview fetches every section concurrently. A failing secondary
// section is reported in Failures; only an employee lookup failure fails the
// call. An empty month means the current one.
func (s *OverviewService) EmployeeOverview(ctx context.Context, employeeID int, month string) (*domain.EmployeeOverview, error) {
	if err := checkID("employee id", employeeID); err != nil {
		return nil, err
	}
	if month == "" {
		month = s.now().Format("2006-01")
	}

	out := &domain.EmployeeOverview{}
	var mu sync.Mutex
	fail := func(section string, err error) {
		logger.WarnLog(ctx, "overview of employee %d: %s section failed: %v", employeeID, section, err)
		mu.Lock()
		defer mu.Unlock()
		if out.Failures == nil {
			out.Failures = make(map[string]string)
		}
		out.Failures[section] = err.Error()
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		e, err := s.employees.Get(gctx, employeeID)
		if err != nil {
			return err
		}
		out.Employee = e
		return nil
	})
	g.Go(func() error {
		records, err := s.attendance.ListByEmployee(gctx, employeeID, 0, 1)
		if err != nil {
			fail(SectionAttendance, err)
			return nil
		}
		if len(records) > 0 {
			out.Today = &records[0]
		}
		return nil
	})
	g.Go(func() error {
		summary, err := s.attendance.MonthlySummary(gctx, employeeID, month)
		if err != nil {
			fail(SectionSummary, err)
			return nil
		}
		out.Summary = summary
		return nil
	})
	g.Go(func() error {
		leaves, err := s.leaves.ListByEmployee(gctx, employeeID, 0, DefaultPageLimit)
		if err != nil {
			fail(SectionLeaves, err)
			return nil
		}
		out.Leaves = leaves
		return nil
	})
	g.Go(func() error {
		notes, err := s.notifications.ListByEmployee(gctx, employeeID, 0, DefaultEnvelopePageLimit)
		if err != nil {
			fail(SectionNotifications, err)
			return nil
		}
		out.Notifications = notes
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
