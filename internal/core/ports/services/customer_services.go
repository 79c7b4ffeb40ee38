package services

import (
	"context"
	"time"

	"github.com/zaminwale/crm_backend/internal/core/domain"
	"github.com/zaminwale/crm_backend/internal/dto"
)

// CustomerReaderSvc defines read operations for customers.
type CustomerReaderSvc interface {
	// GetCustomerByID retrieves a customer by storage identity.
	GetCustomerByID(ctx context.Context, id string) (*domain.Customer, error)

	// ListCustomers retrieves customers newest first, token paginated.
	ListCustomers(ctx context.Context, limit int, createdBefore *time.Time) ([]domain.Customer, error)

	// ListActiveCustomers retrieves customers with status "Active Customer".
	ListActiveCustomers(ctx context.Context) ([]domain.Customer, error)
}

// CustomerWriterSvc defines mutation operations for the customer aggregate.
type CustomerWriterSvc interface {
	// CreateCustomer creates a new customer, normalizing staff lists and
	// applying the cross-payment link side effect when paidByCustomerId is
	// set.
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, actor string) (*domain.Customer, error)

	// UpdateCustomer snapshots the prior state, applies the whitelisted
	// update and persists the aggregate.
	UpdateCustomer(ctx context.Context, id string, req dto.UpdateCustomerRequest, actor string) (*domain.Customer, error)

	// AddInstallment appends one payment line item and recomputes the
	// derived totals.
	AddInstallment(ctx context.Context, id string, req dto.AddInstallmentRequest, actor string) (*domain.Customer, error)

	// DeleteCustomer hard-deletes a customer.
	DeleteCustomer(ctx context.Context, id string, actor string) error

	// BulkImport applies a batch of payment rows keyed by customerId,
	// creating missing customers and appending installments to existing
	// ones. Re-running a batch double-applies; there is no dedup key.
	BulkImport(ctx context.Context, req dto.BulkImportRequest, actor string) (dto.BulkImportResponse, error)
}

// CustomerSvcFacade combines the customer service interfaces.
type CustomerSvcFacade interface {
	CustomerReaderSvc
	CustomerWriterSvc
}
