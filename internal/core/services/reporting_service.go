package services

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	portsrepo "github.com/zaminwale/crm_backend/internal/core/ports/repositories"
	portssvc "github.com/zaminwale/crm_backend/internal/core/ports/services"
	"github.com/zaminwale/crm_backend/internal/dto"
	"github.com/zaminwale/crm_backend/internal/middleware"
)

// reportingService computes received-amount reports from customer payment
// plans. Reports walk installments rather than the summary fields so that
// per-payment dates survive into the breakdown.
type reportingService struct {
	customerRepo portsrepo.CustomerReader
}

// NewReportingService creates a new ReportingService.
func NewReportingService(customerRepo portsrepo.CustomerReader) portssvc.ReportingSvcFacade {
	return &reportingService{customerRepo: customerRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// TotalReceived sums received installments across customers.
func (s *reportingService) TotalReceived(ctx context.Context, start, end *time.Time) (dto.TotalReceivedResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	customers, err := s.customerRepo.FindCustomersWithPayments(ctx, start, end)
	if err != nil {
		logger.Error("Failed to fetch customers for received report", slog.String("error", err.Error()))
		return dto.TotalReceivedResponse{}, err
	}

	res := dto.TotalReceivedResponse{
		TotalReceivedAmount:    decimal.Zero,
		TotalReceivedCustomers: []dto.ReceivedPayment{},
	}
	for _, c := range customers {
		for _, inst := range c.Installments {
			if inst.ReceivedAmount.IsPositive() {
				res.TotalReceivedAmount = res.TotalReceivedAmount.Add(inst.ReceivedAmount)
				res.TotalReceivedCustomers = append(res.TotalReceivedCustomers, dto.ReceivedPayment{
					CustomerID:     c.CustomerID,
					Name:           c.Name,
					Location:       c.Location,
					ReceivedAmount: inst.ReceivedAmount,
					ReceivedDate:   inst.InstallmentDate,
					CreatedAt:      c.CreatedAt,
				})
			}
		}
	}
	return res, nil
}

// MonthlyReceived buckets received amounts by customer creation month.
func (s *reportingService) MonthlyReceived(ctx context.Context, start, end *time.Time) ([]dto.MonthlyReceived, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	customers, err := s.customerRepo.FindCustomersWithPayments(ctx, start, end)
	if err != nil {
		logger.Error("Failed to fetch customers for monthly report", slog.String("error", err.Error()))
		return nil, err
	}

	type bucket struct {
		firstOfMonth time.Time
		total        decimal.Decimal
	}
	buckets := map[string]*bucket{}
	for _, c := range customers {
		month := c.CreatedAt.Format("Jan 2006")
		b, ok := buckets[month]
		if !ok {
			b = &bucket{
				firstOfMonth: time.Date(c.CreatedAt.Year(), c.CreatedAt.Month(), 1, 0, 0, 0, 0, time.UTC),
				total:        decimal.Zero,
			}
			buckets[month] = b
		}
		b.total = b.total.Add(c.ReceivedAmount)
	}

	result := make([]dto.MonthlyReceived, 0, len(buckets))
	months := make([]string, 0, len(buckets))
	for month := range buckets {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool {
		return buckets[months[i]].firstOfMonth.Before(buckets[months[j]].firstOfMonth)
	})
	for _, month := range months {
		result = append(result, dto.MonthlyReceived{Month: month, Total: buckets[month].total})
	}
	return result, nil
}
