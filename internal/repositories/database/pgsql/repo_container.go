package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/zaminwale/crm_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the concrete pgx repositories.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CustomerRepo:    newPgxCustomerRepository(dbPool),
		ActivityLogRepo: newPgxActivityLogRepository(dbPool),
		UserRepo:        newPgxUserRepository(dbPool),
	}
}
