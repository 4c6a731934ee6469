package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/locvowork/hrms_gateway/internal/domain"
	"github.com/locvowork/hrms_gateway/internal/logger"
	"github.com/locvowork/hrms_gateway/pkg/dataflow"
)

// errArchiveComplete ends the index stage once the last page is stored.
var errArchiveComplete = errors.New("archive complete")

// ArchiveService copies the audit trail into a search index.
type ArchiveService struct {
	audit    domain.AuditService
	index    domain.AuditIndex
	pageSize int
}

func NewArchiveService(audit domain.AuditService, index domain.AuditIndex, pageSize int) *ArchiveService {
	if pageSize <= 0 {
		pageSize = DefaultEnvelopePageLimit
	}
	return &ArchiveService{audit: audit, index: index, pageSize: pageSize}
}

type auditPage struct {
	offset int
	total  int
	logs   []domain.AuditLog
}

// ArchiveAuditLogs pages through the audit logs matching filter, starting at
// filter.Offset, and indexes each page as it arrives while the next one is
// being read. It returns how many logs were indexed before any error.
func (s *ArchiveService) ArchiveAuditLogs(ctx context.Context, filter domain.AuditFilter) (int, error) {
	if filter.Offset < 0 {
		return 0, fmt.Errorf("%w: offset must be >= 0, got %d", ErrInvalidArgument, filter.Offset)
	}

	ctx, cancel := context.WithCancel(ctx)
	offsets := dataflow.Sequence(ctx, filter.Offset, s.pageSize)
	pages := dataflow.MapOrdered(ctx, offsets, func(ctx context.Context, offset int) (auditPage, error) {
		page, err := s.audit.List(ctx, domain.AuditFilter{
			Offset:       offset,
			Limit:        s.pageSize,
			Action:       filter.Action,
			ResourceType: filter.ResourceType,
		})
		if err != nil {
			return auditPage{}, fmt.Errorf("read audit logs at offset %d: %w", offset, err)
		}
		return auditPage{offset: offset, total: page.Total, logs: page.Logs}, nil
	})
	defer func() {
		cancel()
		for range pages {
		}
	}()

	indexed := 0
	err := dataflow.ForEach(ctx, pages, func(ctx context.Context, r dataflow.Result[auditPage]) error {
		if r.Err != nil {
			return r.Err
		}
		page := r.Value
		if len(page.logs) == 0 {
			return errArchiveComplete
		}
		if err := s.index.BulkIndexAuditLogs(ctx, page.logs); err != nil {
			return fmt.Errorf("index audit logs at offset %d: %w", page.offset, err)
		}
		indexed += len(page.logs)
		logger.DebugLog(ctx, "archived %d audit logs (total %d)", indexed, page.total)

		if len(page.logs) < s.pageSize || page.offset+len(page.logs) >= page.total {
			return errArchiveComplete
		}
		return nil
	})
	if err != nil && !errors.Is(err, errArchiveComplete) {
		return indexed, err
	}
	logger.InfoLog(ctx, "archived %d audit logs", indexed)
	return indexed, nil
}
