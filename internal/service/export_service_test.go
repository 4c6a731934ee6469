package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/locvowork/hrms_gateway/internal/domain"
	"github.com/locvowork/hrms_gateway/pkg/simpleexcel"
)

// pagedEmployees serves total employees with ids 1..total, with random latency
// so pages complete out of order.
func pagedEmployees(total int, calls *int32) stubEmployees {
	return stubEmployees{list: func(offset, limit int) ([]domain.Employee, error) {
		atomic.AddInt32(calls, 1)
		time.Sleep(time.Duration(rand.Intn(5)) * time.Millisecond)
		var page []domain.Employee
		for id := offset + 1; id <= total && id <= offset+limit; id++ {
			page = append(page, domain.Employee{ID: id, Name: fmt.Sprintf("emp-%d", id)})
		}
		return page, nil
	}}
}

func TestExportService_EmployeesCSVKeepsOrder(t *testing.T) {
	var calls int32
	svc := NewExportService(pagedEmployees(23, &calls), nil, 5, 4)

	var buf bytes.Buffer
	require.NoError(t, svc.Employees(context.Background(), simpleexcel.FormatCSV, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 24)
	assert.Equal(t, "ID", records[0][0])
	for i, rec := range records[1:] {
		assert.Equal(t, strconv.Itoa(i+1), rec[0])
	}
	assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(5))
}

func TestExportService_EmployeesXLSX(t *testing.T) {
	var calls int32
	svc := NewExportService(pagedEmployees(3, &calls), nil, 10, 2)

	var buf bytes.Buffer
	require.NoError(t, svc.Employees(context.Background(), simpleexcel.FormatXLSX, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	title, _ := f.GetCellValue("Employees", "A1")
	last, _ := f.GetCellValue("Employees", "B5")
	assert.Equal(t, "Employee Directory", title)
	assert.Equal(t, "emp-3", last)
}

func TestExportService_PageErrorAborts(t *testing.T) {
	boom := errors.New("page failed")
	emps := stubEmployees{list: func(offset, limit int) ([]domain.Employee, error) {
		if offset == 10 {
			return nil, boom
		}
		return make([]domain.Employee, limit), nil
	}}
	svc := NewExportService(emps, nil, 10, 3)

	var buf bytes.Buffer
	err := svc.Employees(context.Background(), simpleexcel.FormatCSV, &buf)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, buf.Len())
}

type stubAudit struct {
	domain.AuditService
	logs []domain.AuditLog
	err  error

	mu      sync.Mutex
	filters []domain.AuditFilter
}

func (s *stubAudit) List(_ context.Context, f domain.AuditFilter) (*domain.AuditLogListResponse, error) {
	s.mu.Lock()
	s.filters = append(s.filters, f)
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	end := f.Offset + f.Limit
	if end > len(s.logs) {
		end = len(s.logs)
	}
	var page []domain.AuditLog
	if f.Offset < end {
		page = s.logs[f.Offset:end]
	}
	return &domain.AuditLogListResponse{Total: len(s.logs), Logs: page}, nil
}

func auditLogs(n int) []domain.AuditLog {
	logs := make([]domain.AuditLog, n)
	for i := range logs {
		logs[i] = domain.AuditLog{ID: i + 1, Action: domain.AuditActionUpdate, ResourceType: "employee"}
	}
	return logs
}

func TestExportService_AuditLogsPassesFilter(t *testing.T) {
	audit := &stubAudit{logs: auditLogs(4)}
	svc := NewExportService(nil, audit, 10, 1)

	var buf bytes.Buffer
	err := svc.AuditLogs(context.Background(), domain.AuditFilter{Action: domain.AuditActionUpdate, Offset: 99}, simpleexcel.FormatCSV, &buf)
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 5)
	filters := audit.seen()
	require.NotEmpty(t, filters)
	assert.Equal(t, domain.AuditActionUpdate, filters[0].Action)
	assert.Equal(t, 0, filters[0].Offset)
}

func (s *stubAudit) seen() []domain.AuditFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.AuditFilter(nil), s.filters...)
}

func TestExportService_NoPageRequestOutlivesExport(t *testing.T) {
	var inFlight, started int32
	emps := stubEmployees{list: func(offset, limit int) ([]domain.Employee, error) {
		atomic.AddInt32(&started, 1)
		atomic.AddInt32(&inFlight, 1)
		defer atomic.AddInt32(&inFlight, -1)
		time.Sleep(time.Duration(offset/limit) * time.Millisecond)
		if offset == 0 {
			return []domain.Employee{{ID: 1, Name: "emp-1"}}, nil
		}
		return nil, nil
	}}
	svc := NewExportService(emps, nil, 5, 8)

	var buf bytes.Buffer
	require.NoError(t, svc.Employees(context.Background(), simpleexcel.FormatCSV, &buf))
	assert.Zero(t, atomic.LoadInt32(&inFlight))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&started), int32(1))
}
