package domain

import "time"

// ActivityLog is a fire-and-forget audit record of a customer-facing action.
// Failures writing it must never abort the operation being logged.
type ActivityLog struct {
	LogID      string    `json:"logID"`
	Actor      string    `json:"actor"`
	Action     string    `json:"action"`
	CustomerID string    `json:"customerId"`
	Details    string    `json:"details"`
	CreatedAt  time.Time `json:"createdAt"`
}
