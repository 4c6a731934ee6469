package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/hrms_gateway/internal/domain"
)

func TestLeaveService_UpdateStatusOmitsRejectionReason(t *testing.T) {
	b := newBackend()
	b.api.PUT("/leaves/:id", jsonString(http.StatusOK,
		`{"id":10,"employee_id":4,"leave_type":"annual","start_date":"2024-03-01","end_date":"2024-03-05","reason":"trip","status":"APPROVED","approved_by":2}`))
	svc := NewLeaveService(b.start(t, ""))

	approver := 2
	l, err := svc.UpdateStatus(context.Background(), 10, domain.LeaveStatusUpdate{
		Status:     domain.LeaveStatusApproved,
		ApprovedBy: &approver,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.LeaveStatusApproved, l.Status)
	require.NotNil(t, l.ApprovedBy)
	assert.Equal(t, 2, *l.ApprovedBy)

	req := b.last(t)
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/api/v1/leaves/10", req.Path)
	assert.JSONEq(t, `{"status":"APPROVED","approved_by":2}`, req.Body)
	assert.NotContains(t, req.Body, "rejection_reason")
}

func TestLeaveService_ListFilters(t *testing.T) {
	b := newBackend()
	b.api.GET("/leaves/", jsonString(http.StatusOK, `[]`))
	svc := NewLeaveService(b.start(t, ""))
	ctx := context.Background()

	_, err := svc.List(ctx, domain.LeaveFilter{Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, "offset=0&limit=20", b.last(t).Query)

	_, err = svc.List(ctx, domain.LeaveFilter{Offset: 40, Limit: 20, Status: domain.LeaveStatusPending})
	require.NoError(t, err)
	assert.Equal(t, "offset=40&limit=20&status=PENDING", b.last(t).Query)

	_, err = svc.List(ctx, domain.LeaveFilter{})
	require.NoError(t, err)
	assert.Equal(t, "offset=0&limit=100", b.last(t).Query)
}

func TestLeaveService_CreateListCancel(t *testing.T) {
	b := newBackend()
	b.api.POST("/leaves/", jsonString(http.StatusCreated,
		`{"id":11,"employee_id":4,"leave_type":"sick","start_date":"2024-04-01","end_date":"2024-04-02","reason":"flu","status":"PENDING"}`))
	b.api.GET("/leaves/employee/:id", jsonString(http.StatusOK, `[{"id":11,"employee_id":4,"status":"PENDING"}]`))
	b.api.DELETE("/leaves/:id", noContent)
	svc := NewLeaveService(b.start(t, ""))
	ctx := context.Background()

	l, err := svc.Create(ctx, domain.LeaveCreate{EmployeeID: 4, LeaveType: "sick", StartDate: "2024-04-01", EndDate: "2024-04-02", Reason: "flu"})
	require.NoError(t, err)
	assert.Equal(t, domain.LeaveStatusPending, l.Status)
	assert.Nil(t, l.RejectionReason)

	leaves, err := svc.ListByEmployee(ctx, 4, 0, 10)
	require.NoError(t, err)
	assert.Len(t, leaves, 1)
	assert.Equal(t, "/api/v1/leaves/employee/4", b.last(t).Path)

	raw, err := svc.Cancel(ctx, 11)
	require.NoError(t, err)
	assert.Empty(t, raw)
	assert.Equal(t, http.MethodDelete, b.last(t).Method)
}
