package service

import (
	"context"
	_ "embed"
	"fmt"
	"io"

	"github.com/locvowork/hrms_gateway/internal/domain"
	"github.com/locvowork/hrms_gateway/internal/logger"
	"github.com/locvowork/hrms_gateway/pkg/dataflow"
	"github.com/locvowork/hrms_gateway/pkg/simpleexcel"
)

//go:embed templates/employees.yaml
var employeesTemplate string

//go:embed templates/audit_logs.yaml
var auditLogsTemplate string

// maxExportPages bounds a single export against a backend that never
// returns a short page.
const maxExportPages = 10000

// ExportService renders whole collections to XLSX or CSV.
type ExportService struct {
	employees domain.EmployeeService
	audit     domain.AuditService
	pageSize  int
	workers   int
}

func NewExportService(employees domain.EmployeeService, audit domain.AuditService, pageSize, workers int) *ExportService {
	if pageSize <= 0 {
		pageSize = DefaultPageLimit
	}
	if workers <= 0 {
		workers = 1
	}
	return &ExportService{
		employees: employees,
		audit:     audit,
		pageSize:  pageSize,
		workers:   workers,
	}
}

// Employees writes the full employee directory to w. Nothing is written when
// any page fails.
func (s *ExportService) Employees(ctx context.Context, format simpleexcel.Format, w io.Writer) error {
	rows, err := fetchAll(ctx, s.pageSize, s.workers, s.employees.List)
	if err != nil {
		return fmt.Errorf("export employees: %w", err)
	}
	logger.InfoLog(ctx, "exporting %d employees as %s", len(rows), format)
	return render(employeesTemplate, "employees", rows, format, w)
}

// AuditLogs writes every audit log matching the action and resource type of
// filter. Offset and Limit of filter are ignored; the whole trail is paged.
func (s *ExportService) AuditLogs(ctx context.Context, filter domain.AuditFilter, format simpleexcel.Format, w io.Writer) error {
	rows, err := fetchAll(ctx, s.pageSize, s.workers, func(ctx context.Context, offset, limit int) ([]domain.AuditLog, error) {
		page, err := s.audit.List(ctx, domain.AuditFilter{
			Offset:       offset,
			Limit:        limit,
			Action:       filter.Action,
			ResourceType: filter.ResourceType,
		})
		if err != nil {
			return nil, err
		}
		return page.Logs, nil
	})
	if err != nil {
		return fmt.Errorf("export audit logs: %w", err)
	}
	logger.InfoLog(ctx, "exporting %d audit logs as %s", len(rows), format)
	return render(auditLogsTemplate, "audit_logs", rows, format, w)
}

func render(template, section string, rows interface{}, format simpleexcel.Format, w io.Writer) error {
	exporter, err := simpleexcel.NewDataExporterFromYamlConfig(template)
	if err != nil {
		return err
	}
	exporter.BindSectionData(section, rows)
	return exporter.Export(w, format)
}

// fetchAll pages through a collection with several requests in flight and
// reassembles the pages in offset order. It stops at the first short page and
// returns only once every page request it started has finished.
func fetchAll[T any](ctx context.Context, pageSize, workers int, fetch func(ctx context.Context, offset, limit int) ([]T, error)) ([]T, error) {
	ctx, cancel := context.WithCancel(ctx)
	offsets := dataflow.Sequence(ctx, 0, pageSize)
	pages := dataflow.MapOrdered(ctx, offsets, func(ctx context.Context, offset int) ([]T, error) {
		return fetch(ctx, offset, pageSize)
	}, dataflow.WithWorkers(workers))
	defer func() {
		cancel()
		for range pages {
		}
	}()

	var all []T
	n := 0
	for page := range pages {
		if page.Err != nil {
			return nil, page.Err
		}
		all = append(all, page.Value...)
		n++
		if len(page.Value) < pageSize {
			return all, nil
		}
		if n >= maxExportPages {
			return nil, fmt.Errorf("more than %d pages of %d", maxExportPages, pageSize)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return all, nil
}
