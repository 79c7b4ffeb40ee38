package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zaminwale/crm_backend/internal/core/domain"
	"github.com/zaminwale/crm_backend/internal/core/services"
)

func paidCustomers() []domain.Customer {
	jan := time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)
	return []domain.Customer{
		{
			CustomerID:     "ZW-001",
			Name:           "Ravi Patil",
			Location:       "Panvel",
			ReceivedAmount: decimal.NewFromInt(30000),
			Installments: []domain.Installment{
				{InstallmentNo: 1, InstallmentDate: "2025-01-12", ReceivedAmount: decimal.NewFromInt(10000)},
				{InstallmentNo: 2, InstallmentDate: "2025-01-20", ReceivedAmount: decimal.NewFromInt(20000)},
				{InstallmentNo: 3, InstallmentDate: "", ReceivedAmount: decimal.Zero}, // scheduled, not yet paid
			},
			AuditFields: domain.AuditFields{CreatedAt: jan},
		},
		{
			CustomerID:     "ZW-002",
			Name:           "Sunita Deshmukh",
			Location:       "Karjat",
			ReceivedAmount: decimal.NewFromInt(5000),
			Installments: []domain.Installment{
				{InstallmentNo: 1, InstallmentDate: "2025-02-03", ReceivedAmount: decimal.NewFromInt(5000)},
			},
			AuditFields: domain.AuditFields{CreatedAt: feb},
		},
	}
}

func TestTotalReceived_SumsPositiveInstallmentsOnly(t *testing.T) {
	repo := new(MockCustomerRepository)
	svc := services.NewReportingService(repo)
	ctx := context.Background()

	repo.On("FindCustomersWithPayments", ctx, (*time.Time)(nil), (*time.Time)(nil)).
		Return(paidCustomers(), nil).Once()

	res, err := svc.TotalReceived(ctx, nil, nil)

	require.NoError(t, err)
	assert.True(t, res.TotalReceivedAmount.Equal(decimal.NewFromInt(35000)))
	require.Len(t, res.TotalReceivedCustomers, 3, "zero-amount installments are excluded")
	assert.Equal(t, "ZW-001", res.TotalReceivedCustomers[0].CustomerID)
	assert.Equal(t, "2025-01-12", res.TotalReceivedCustomers[0].ReceivedDate)
	repo.AssertExpectations(t)
}

func TestMonthlyReceived_BucketsByCreationMonthChronologically(t *testing.T) {
	repo := new(MockCustomerRepository)
	svc := services.NewReportingService(repo)
	ctx := context.Background()

	repo.On("FindCustomersWithPayments", ctx, (*time.Time)(nil), (*time.Time)(nil)).
		Return(paidCustomers(), nil).Once()

	res, err := svc.MonthlyReceived(ctx, nil, nil)

	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "Jan 2025", res[0].Month)
	assert.True(t, res[0].Total.Equal(decimal.NewFromInt(30000)))
	assert.Equal(t, "Feb 2025", res[1].Month)
	assert.True(t, res[1].Total.Equal(decimal.NewFromInt(5000)))
}

func TestTotalReceived_EmptyResult(t *testing.T) {
	repo := new(MockCustomerRepository)
	svc := services.NewReportingService(repo)
	ctx := context.Background()

	repo.On("FindCustomersWithPayments", ctx, (*time.Time)(nil), (*time.Time)(nil)).
		Return([]domain.Customer{}, nil).Once()

	res, err := svc.TotalReceived(ctx, nil, nil)

	require.NoError(t, err)
	assert.True(t, res.TotalReceivedAmount.IsZero())
	assert.Empty(t, res.TotalReceivedCustomers)
}
