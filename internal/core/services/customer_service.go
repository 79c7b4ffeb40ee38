package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/zaminwale/crm_backend/internal/apperrors"
	"github.com/zaminwale/crm_backend/internal/core/domain"
	portsrepo "github.com/zaminwale/crm_backend/internal/core/ports/repositories"
	portssvc "github.com/zaminwale/crm_backend/internal/core/ports/services"
	"github.com/zaminwale/crm_backend/internal/dto"
	"github.com/zaminwale/crm_backend/internal/middleware"
)

// customerService owns the customer aggregate: CRUD, payment-plan mutation
// and the cross-payment link side effect. Audit writes are fire-and-forget.
type customerService struct {
	customerRepo portsrepo.CustomerRepositoryFacade
	activityLog  portssvc.ActivityLogSvcFacade
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade, activityLog portssvc.ActivityLogSvcFacade) portssvc.CustomerSvcFacade {
	return &customerService{
		customerRepo: customerRepo,
		activityLog:  activityLog,
	}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

// audit records an activity entry. Audit failures are logged and swallowed:
// observability must never block the primary write path.
func (s *customerService) audit(ctx context.Context, actor, action, customerID, details string) {
	if s.activityLog == nil {
		return
	}
	if err := s.activityLog.Record(ctx, actor, action, customerID, details); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Activity log write failed",
			slog.String("action", action),
			slog.String("customer_id", customerID),
			slog.String("error", err.Error()),
		)
	}
}

// linkCrossPayment applies the cross-payment side effect for a customer that
// names paidByCustomerId. The source customer gets the transfer marker; a
// missing source is a logged no-op, distinct from audit failures, and the
// link on the target is set either way.
func (s *customerService) linkCrossPayment(ctx context.Context, paidByCustomerID, targetCustomerID string) {
	logger := middleware.GetLoggerFromCtx(ctx)

	source, err := s.customerRepo.FindCustomerByCustomerID(ctx, paidByCustomerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Info("Cross-payment source customer not found, link skipped",
				slog.String("paid_by_customer_id", paidByCustomerID),
				slog.String("target_customer_id", targetCustomerID),
			)
			return
		}
		logger.Error("Cross-payment source lookup failed",
			slog.String("paid_by_customer_id", paidByCustomerID),
			slog.String("error", err.Error()),
		)
		return
	}

	if !LinkCrossPayment(source, targetCustomerID) {
		return
	}
	if err := s.customerRepo.UpdateCustomer(ctx, *source); err != nil {
		logger.Error("Failed to persist cross-payment marker on source customer",
			slog.String("paid_by_customer_id", paidByCustomerID),
			slog.String("error", err.Error()),
		)
	}
}

// CreateCustomer creates a new customer aggregate.
func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, actor string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.CustomerID == "" || req.Name == "" {
		return nil, fmt.Errorf("%w: customerId and name are required", apperrors.ErrValidation)
	}

	status := domain.CustomerStatus(req.Status)
	if status == "" {
		status = domain.CustomerActive
	} else if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown customer status %q", apperrors.ErrValidation, req.Status)
	}

	date := req.Date
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}

	now := time.Now().UTC()
	customer := domain.Customer{
		ID:               uuid.NewString(),
		CustomerID:       req.CustomerID,
		Date:             date,
		OldCustomerID:    req.OldCustomerID,
		Name:             req.Name,
		Phone:            req.Phone,
		AlternatePhone:   req.AlternatePhone,
		Email:            req.Email,
		Address:          req.Address,
		Zipcode:          req.Zipcode,
		PANCard:          req.PANCard,
		AadharCard:       req.AadharCard,
		BookingArea:      req.BookingArea.Decimal,
		PlotArea:         req.PlotArea.Decimal,
		Rate:             req.Rate.Decimal,
		Discount:         req.Discount.Decimal,
		TotalAmount:      req.TotalAmount.Decimal,
		BookingAmount:    req.BookingAmount.Decimal,
		StampDutyCharges: req.StampDutyCharges.Decimal,
		MOUCharge:        req.MOUCharge.Decimal,
		Location:         req.Location,
		Village:          req.Village,
		Bank:             req.Bank,
		BankName:         req.BankName,
		PaymentMode:      req.PaymentMode,
		UTRChequeNo:      req.UTRChequeNo,
		ChequeNo:         req.ChequeNo,
		ChequeDate:       req.ChequeDate,
		Remark:           req.Remark,
		DueDate:          req.DueDate,
		ClearDate:        req.ClearDate,
		CallingBy:        req.CallingBy,
		SiteVisitBy:      req.SiteVisitBy,
		AttendingBy:      req.AttendingBy,
		ClosingBy:        req.ClosingBy,
		Status:           status,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}

	if len(req.Installments) > 0 {
		customer.Installments = NormalizeInstallments(req.Installments)
		RecomputeTotals(&customer)
	}

	if req.PaidByCustomerID != "" && req.PaidByCustomerID != req.CustomerID {
		s.linkCrossPayment(ctx, req.PaidByCustomerID, req.CustomerID)
		customer.PaidByCustomerID = req.PaidByCustomerID
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		logger.Error("Failed to save customer", slog.String("customer_id", req.CustomerID), slog.String("error", err.Error()))
		return nil, err
	}

	s.audit(ctx, actor, "Added Customer", customer.CustomerID,
		fmt.Sprintf("Name: %s, Location: %s, Village: %s", customer.Name, customer.Location, customer.Village))

	logger.Info("Customer created", slog.String("customer_id", customer.CustomerID))
	return &customer, nil
}

// GetCustomerByID retrieves a customer by storage identity.
func (s *customerService) GetCustomerByID(ctx context.Context, id string) (*domain.Customer, error) {
	return s.customerRepo.FindCustomerByID(ctx, id)
}

// ListCustomers retrieves customers newest first, keyset paginated.
func (s *customerService) ListCustomers(ctx context.Context, limit int, createdBefore *time.Time) ([]domain.Customer, error) {
	return s.customerRepo.FindCustomers(ctx, limit, createdBefore)
}

// ListActiveCustomers retrieves customers with status "Active Customer".
func (s *customerService) ListActiveCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.customerRepo.FindCustomersByStatus(ctx, domain.CustomerActive)
}

// UpdateCustomer snapshots the prior state, applies the whitelisted update
// and persists the aggregate. Derived totals are recomputed only when the
// installment list changes.
func (s *customerService) UpdateCustomer(ctx context.Context, id string, req dto.UpdateCustomerRequest, actor string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	customer, err := s.customerRepo.FindCustomerByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil && !domain.CustomerStatus(*req.Status).IsValid() {
		return nil, fmt.Errorf("%w: unknown customer status %q", apperrors.ErrValidation, *req.Status)
	}

	now := time.Now().UTC()
	RecordEdit(customer, actor, now)

	applyCustomerUpdate(customer, req)

	recompute := false
	if req.Installments != nil {
		customer.Installments = NormalizeInstallments(*req.Installments)
		recompute = true
	}
	if req.TotalAmount != nil {
		recompute = true
	}
	if recompute {
		RecomputeTotals(customer)
	}

	if req.PaidByCustomerID != nil && *req.PaidByCustomerID != "" && *req.PaidByCustomerID != customer.CustomerID {
		s.linkCrossPayment(ctx, *req.PaidByCustomerID, customer.CustomerID)
		customer.PaidByCustomerID = *req.PaidByCustomerID
	}

	customer.LastUpdatedAt = now
	customer.LastUpdatedBy = actor

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		logger.Error("Failed to update customer", slog.String("customer_id", customer.CustomerID), slog.String("error", err.Error()))
		return nil, err
	}

	s.audit(ctx, actor, "Updated Customer", customer.CustomerID,
		fmt.Sprintf("Updated %s, Location: %s, Village: %s", customer.Name, customer.Location, customer.Village))

	return customer, nil
}

// AddInstallment appends one payment line item and recomputes totals.
func (s *customerService) AddInstallment(ctx context.Context, id string, req dto.AddInstallmentRequest, actor string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	customer, err := s.customerRepo.FindCustomerByID(ctx, id)
	if err != nil {
		return nil, err
	}

	status := domain.InstallmentStatus(req.Status)
	if status != "" && !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown installment status %q", apperrors.ErrValidation, req.Status)
	}

	now := time.Now().UTC()
	RecordEdit(customer, actor, now)

	AppendInstallment(customer, domain.Installment{
		InstallmentDate:   req.InstallmentDate,
		InstallmentAmount: req.InstallmentAmount.Decimal,
		ReceivedAmount:    req.ReceivedAmount.Decimal,
		BankName:          req.BankName,
		PaymentMode:       req.PaymentMode,
		ChequeNo:          req.ChequeNo,
		ChequeDate:        req.ChequeDate,
		Remark:            req.Remark,
		Status:            status,
	})

	customer.LastUpdatedAt = now
	customer.LastUpdatedBy = actor

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		logger.Error("Failed to append installment", slog.String("customer_id", customer.CustomerID), slog.String("error", err.Error()))
		return nil, err
	}

	last := customer.Installments[len(customer.Installments)-1]
	s.audit(ctx, actor, "Added Installment", customer.CustomerID,
		fmt.Sprintf("Installment #%d, Received: %s", last.InstallmentNo, last.ReceivedAmount.String()))

	return customer, nil
}

// DeleteCustomer hard-deletes a customer.
func (s *customerService) DeleteCustomer(ctx context.Context, id string, actor string) error {
	customer, err := s.customerRepo.FindCustomerByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.customerRepo.DeleteCustomer(ctx, id); err != nil {
		return err
	}

	s.audit(ctx, actor, "Deleted Customer", customer.CustomerID,
		fmt.Sprintf("Deleted %s, Location: %s, Village: %s", customer.Name, customer.Location, customer.Village))
	return nil
}

// BulkImport applies a batch of payment rows keyed by customerId. Rows are
// applied independently and in order; a failing row aborts the batch with
// the rows before it already persisted, matching the row-at-a-time source
// behavior. Re-running a batch appends duplicate installments.
func (s *customerService) BulkImport(ctx context.Context, req dto.BulkImportRequest, actor string) (dto.BulkImportResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	res := dto.BulkImportResponse{}

	for i, row := range req.Rows {
		if row.CustomerID == "" {
			return res, fmt.Errorf("%w: row %d has no customerId", apperrors.ErrValidation, i)
		}

		existing, err := s.customerRepo.FindCustomerByCustomerID(ctx, row.CustomerID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return res, fmt.Errorf("bulk row %d: lookup failed: %w", i, err)
		}

		customer, created := ApplyBulkPaymentRow(existing, row)
		now := time.Now().UTC()
		customer.LastUpdatedAt = now
		customer.LastUpdatedBy = actor

		if created {
			if customer.Name == "" {
				return res, fmt.Errorf("%w: row %d creates customer %s without a name", apperrors.ErrValidation, i, row.CustomerID)
			}
			customer.ID = uuid.NewString()
			customer.CreatedAt = now
			customer.CreatedBy = actor
			if err := s.customerRepo.SaveCustomer(ctx, *customer); err != nil {
				return res, fmt.Errorf("bulk row %d: save failed: %w", i, err)
			}
			res.Created++
		} else {
			if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
				return res, fmt.Errorf("bulk row %d: update failed: %w", i, err)
			}
			res.Updated++
		}
	}

	details := fmt.Sprintf("Rows: %d, Created: %d, Updated: %d", len(req.Rows), res.Created, res.Updated)
	if req.BatchRef != "" {
		details = fmt.Sprintf("%s, BatchRef: %s", details, req.BatchRef)
	}
	s.audit(ctx, actor, "Bulk Imported Payments", "", details)

	logger.Info("Bulk import completed", slog.Int("created", res.Created), slog.Int("updated", res.Updated))
	return res, nil
}

// applyCustomerUpdate copies the provided whitelist fields onto the
// aggregate. Derived totals are intentionally not part of the whitelist.
func applyCustomerUpdate(c *domain.Customer, req dto.UpdateCustomerRequest) {
	if req.Date != nil {
		c.Date = *req.Date
	}
	if req.OldCustomerID != nil {
		c.OldCustomerID = *req.OldCustomerID
	}
	if req.IsTransferred != nil {
		c.IsTransferred = *req.IsTransferred
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.AlternatePhone != nil {
		c.AlternatePhone = *req.AlternatePhone
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.Zipcode != nil {
		c.Zipcode = *req.Zipcode
	}
	if req.PANCard != nil {
		c.PANCard = *req.PANCard
	}
	if req.AadharCard != nil {
		c.AadharCard = *req.AadharCard
	}
	if req.BookingArea != nil {
		c.BookingArea = req.BookingArea.Decimal
	}
	if req.PlotArea != nil {
		c.PlotArea = req.PlotArea.Decimal
	}
	if req.Rate != nil {
		c.Rate = req.Rate.Decimal
	}
	if req.Discount != nil {
		c.Discount = req.Discount.Decimal
	}
	if req.TotalAmount != nil {
		c.TotalAmount = req.TotalAmount.Decimal
	}
	if req.BookingAmount != nil {
		c.BookingAmount = req.BookingAmount.Decimal
	}
	if req.StampDutyCharges != nil {
		c.StampDutyCharges = req.StampDutyCharges.Decimal
	}
	if req.MOUCharge != nil {
		c.MOUCharge = req.MOUCharge.Decimal
	}
	if req.Location != nil {
		c.Location = *req.Location
	}
	if req.Village != nil {
		c.Village = *req.Village
	}
	if req.Bank != nil {
		c.Bank = *req.Bank
	}
	if req.BankName != nil {
		c.BankName = *req.BankName
	}
	if req.PaymentMode != nil {
		c.PaymentMode = *req.PaymentMode
	}
	if req.UTRChequeNo != nil {
		c.UTRChequeNo = *req.UTRChequeNo
	}
	if req.ChequeNo != nil {
		c.ChequeNo = *req.ChequeNo
	}
	if req.ChequeDate != nil {
		c.ChequeDate = *req.ChequeDate
	}
	if req.Remark != nil {
		c.Remark = *req.Remark
	}
	if req.DueDate != nil {
		c.DueDate = *req.DueDate
	}
	if req.ClearDate != nil {
		c.ClearDate = *req.ClearDate
	}
	if req.CallingBy != nil {
		c.CallingBy = *req.CallingBy
	}
	if req.SiteVisitBy != nil {
		c.SiteVisitBy = *req.SiteVisitBy
	}
	if req.AttendingBy != nil {
		c.AttendingBy = *req.AttendingBy
	}
	if req.ClosingBy != nil {
		c.ClosingBy = *req.ClosingBy
	}
	if req.Status != nil {
		c.Status = domain.CustomerStatus(*req.Status)
	}
}
