package repositories

import (
	"context"

	"github.com/zaminwale/crm_backend/internal/core/domain"
)

// ActivityLogWriter persists audit records.
type ActivityLogWriter interface {
	// SaveActivityLog persists one audit record.
	SaveActivityLog(ctx context.Context, log domain.ActivityLog) error
}

// ActivityLogReader reads audit records.
type ActivityLogReader interface {
	// FindActivityLogs retrieves audit records newest first.
	FindActivityLogs(ctx context.Context, limit int, offset int) ([]domain.ActivityLog, error)
}

// ActivityLogRepositoryFacade combines the audit record interfaces.
type ActivityLogRepositoryFacade interface {
	ActivityLogWriter
	ActivityLogReader
}
