package repositories

import (
	"context"
	"time"

	"github.com/zaminwale/crm_backend/internal/core/domain"
)

// CustomerReader defines read operations for customer data.
type CustomerReader interface {
	// FindCustomerByID retrieves a customer by its storage identity.
	FindCustomerByID(ctx context.Context, id string) (*domain.Customer, error)

	// FindCustomerByCustomerID retrieves a customer by the externally
	// assigned customerId (secondary key), used for cross-payment and bulk
	// import lookups.
	FindCustomerByCustomerID(ctx context.Context, customerID string) (*domain.Customer, error)

	// FindCustomers retrieves customers ordered newest first, keyset
	// paginated on creation time.
	FindCustomers(ctx context.Context, limit int, createdBefore *time.Time) ([]domain.Customer, error)

	// FindCustomersByStatus retrieves customers with the given status,
	// newest first.
	FindCustomersByStatus(ctx context.Context, status domain.CustomerStatus) ([]domain.Customer, error)

	// FindCustomersWithPayments retrieves customers whose receivedAmount is
	// positive, optionally restricted to a creation window.
	FindCustomersWithPayments(ctx context.Context, start, end *time.Time) ([]domain.Customer, error)
}

// CustomerWriter defines write operations for customer data.
type CustomerWriter interface {
	// SaveCustomer persists a new customer aggregate.
	SaveCustomer(ctx context.Context, customer domain.Customer) error

	// UpdateCustomer persists the full state of an existing aggregate.
	UpdateCustomer(ctx context.Context, customer domain.Customer) error

	// DeleteCustomer hard-deletes a customer by storage identity.
	DeleteCustomer(ctx context.Context, id string) error
}

// CustomerRepositoryFacade combines all customer repository interfaces.
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
}
