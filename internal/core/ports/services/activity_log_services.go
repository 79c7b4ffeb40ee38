package services

import (
	"context"

	"github.com/zaminwale/crm_backend/internal/core/domain"
)

// ActivityLogSvcFacade is the audit sink. Record is fire-and-forget at the
// call sites: its error is logged, never propagated.
type ActivityLogSvcFacade interface {
	// Record persists one audit record.
	Record(ctx context.Context, actor, action, customerID, details string) error

	// ListLogs retrieves audit records newest first.
	ListLogs(ctx context.Context, limit, offset int) ([]domain.ActivityLog, error)
}
