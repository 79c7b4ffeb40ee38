package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zaminwale/crm_backend/internal/core/domain"
	portsrepo "github.com/zaminwale/crm_backend/internal/core/ports/repositories"
	"github.com/zaminwale/crm_backend/internal/models"
)

type PgxActivityLogRepository struct {
	db *pgxpool.Pool
}

func newPgxActivityLogRepository(db *pgxpool.Pool) portsrepo.ActivityLogRepositoryFacade {
	return &PgxActivityLogRepository{db: db}
}

var _ portsrepo.ActivityLogRepositoryFacade = (*PgxActivityLogRepository)(nil)

func (r *PgxActivityLogRepository) SaveActivityLog(ctx context.Context, log domain.ActivityLog) error {
	query := `
		INSERT INTO activity_logs (log_id, actor, action, customer_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.db.Exec(ctx, query,
		log.LogID, log.Actor, log.Action, log.CustomerID, log.Details, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save activity log: %w", err)
	}
	return nil
}

func (r *PgxActivityLogRepository) FindActivityLogs(ctx context.Context, limit int, offset int) ([]domain.ActivityLog, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT log_id, actor, action, customer_id, details, created_at
		FROM activity_logs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity logs: %w", err)
	}
	defer rows.Close()

	logs := []domain.ActivityLog{}
	for rows.Next() {
		var m models.ActivityLog
		if err := rows.Scan(&m.LogID, &m.Actor, &m.Action, &m.CustomerID, &m.Details, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity log row: %w", err)
		}
		logs = append(logs, domain.ActivityLog{
			LogID:      m.LogID,
			Actor:      m.Actor,
			Action:     m.Action,
			CustomerID: m.CustomerID,
			Details:    m.Details,
			CreatedAt:  m.CreatedAt,
		})
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating activity log rows: %w", rows.Err())
	}
	return logs, nil
}
