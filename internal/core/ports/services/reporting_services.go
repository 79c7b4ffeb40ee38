package services

import (
	"context"
	"time"

	"github.com/zaminwale/crm_backend/internal/dto"
)

// ReportingSvcFacade computes received-amount reports from customer payment
// plans.
type ReportingSvcFacade interface {
	// TotalReceived sums received installments across customers, optionally
	// restricted to a creation window.
	TotalReceived(ctx context.Context, start, end *time.Time) (dto.TotalReceivedResponse, error)

	// MonthlyReceived buckets received amounts by customer creation month.
	MonthlyReceived(ctx context.Context, start, end *time.Time) ([]dto.MonthlyReceived, error)
}
