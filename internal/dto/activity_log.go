package dto

import (
	"time"

	"github.com/zaminwale/crm_backend/internal/core/domain"
)

// ActivityLogResponse is one audit record in API output.
type ActivityLogResponse struct {
	LogID      string    `json:"logID"`
	Actor      string    `json:"actor"`
	Action     string    `json:"action"`
	CustomerID string    `json:"customerId"`
	Details    string    `json:"details"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ListActivityLogsParams defines query parameters for listing audit records.
type ListActivityLogsParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// ListActivityLogsResponse wraps the audit record list.
type ListActivityLogsResponse struct {
	Logs []ActivityLogResponse `json:"logs"`
}

// ToActivityLogResponse converts a domain.ActivityLog.
func ToActivityLogResponse(l *domain.ActivityLog) ActivityLogResponse {
	return ActivityLogResponse{
		LogID:      l.LogID,
		Actor:      l.Actor,
		Action:     l.Action,
		CustomerID: l.CustomerID,
		Details:    l.Details,
		CreatedAt:  l.CreatedAt,
	}
}

// ToListActivityLogsResponse converts a slice of domain.ActivityLog.
func ToListActivityLogsResponse(logs []domain.ActivityLog) ListActivityLogsResponse {
	res := make([]ActivityLogResponse, len(logs))
	for i := range logs {
		res[i] = ToActivityLogResponse(&logs[i])
	}
	return ListActivityLogsResponse{Logs: res}
}
