package models

import "time"

// ActivityLog is the activity_logs table row.
type ActivityLog struct {
	LogID      string    `db:"log_id"`
	Actor      string    `db:"actor"`
	Action     string    `db:"action"`
	CustomerID string    `db:"customer_id"`
	Details    string    `db:"details"`
	CreatedAt  time.Time `db:"created_at"`
}
