package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zaminwale/crm_backend/internal/apperrors"
	"github.com/zaminwale/crm_backend/internal/core/domain"
	portsrepo "github.com/zaminwale/crm_backend/internal/core/ports/repositories"
	portssvc "github.com/zaminwale/crm_backend/internal/core/ports/services"
)

// activityLogService persists and lists audit records.
type activityLogService struct {
	logRepo portsrepo.ActivityLogRepositoryFacade
}

// NewActivityLogService creates a new ActivityLogService.
func NewActivityLogService(logRepo portsrepo.ActivityLogRepositoryFacade) portssvc.ActivityLogSvcFacade {
	return &activityLogService{logRepo: logRepo}
}

var _ portssvc.ActivityLogSvcFacade = (*activityLogService)(nil)

// Record persists one audit record. Callers treat the returned error as
// advisory; the write path never depends on it.
func (s *activityLogService) Record(ctx context.Context, actor, action, customerID, details string) error {
	if action == "" {
		return fmt.Errorf("%w: action is required", apperrors.ErrValidation)
	}
	if actor == "" {
		actor = "System"
	}
	return s.logRepo.SaveActivityLog(ctx, domain.ActivityLog{
		LogID:      uuid.NewString(),
		Actor:      actor,
		Action:     action,
		CustomerID: customerID,
		Details:    details,
		CreatedAt:  time.Now().UTC(),
	})
}

// ListLogs retrieves audit records newest first.
func (s *activityLogService) ListLogs(ctx context.Context, limit, offset int) ([]domain.ActivityLog, error) {
	return s.logRepo.FindActivityLogs(ctx, limit, offset)
}
