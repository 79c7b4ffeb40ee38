package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zaminwale/crm_backend/internal/apperrors"
	"github.com/zaminwale/crm_backend/internal/core/domain"
	portsrepo "github.com/zaminwale/crm_backend/internal/core/ports/repositories"
	"github.com/zaminwale/crm_backend/internal/models"
)

type PgxCustomerRepository struct {
	db *pgxpool.Pool
}

func newPgxCustomerRepository(db *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{db: db}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

const uniqueViolationCode = "23505"

// Helper to convert domain.Customer to models.Customer
func toModelCustomer(d domain.Customer) (models.Customer, error) {
	installments, err := json.Marshal(d.Installments)
	if err != nil {
		return models.Customer{}, fmt.Errorf("failed to marshal installments: %w", err)
	}
	history, err := json.Marshal(d.EditHistory)
	if err != nil {
		return models.Customer{}, fmt.Errorf("failed to marshal edit history: %w", err)
	}
	return models.Customer{
		ID:               d.ID,
		CustomerID:       d.CustomerID,
		Date:             d.Date,
		OldCustomerID:    d.OldCustomerID,
		IsTransferred:    d.IsTransferred,
		Name:             d.Name,
		Phone:            d.Phone,
		AlternatePhone:   d.AlternatePhone,
		Email:            d.Email,
		Address:          d.Address,
		Zipcode:          d.Zipcode,
		PANCard:          d.PANCard,
		AadharCard:       d.AadharCard,
		BookingArea:      d.BookingArea,
		PlotArea:         d.PlotArea,
		Rate:             d.Rate,
		Discount:         d.Discount,
		TotalAmount:      d.TotalAmount,
		BookingAmount:    d.BookingAmount,
		ReceivedAmount:   d.ReceivedAmount,
		BalanceAmount:    d.BalanceAmount,
		StampDutyCharges: d.StampDutyCharges,
		MOUCharge:        d.MOUCharge,
		Location:         d.Location,
		Village:          d.Village,
		Bank:             d.Bank,
		BankName:         d.BankName,
		PaymentMode:      d.PaymentMode,
		UTRChequeNo:      d.UTRChequeNo,
		ChequeNo:         d.ChequeNo,
		ChequeDate:       d.ChequeDate,
		Remark:           d.Remark,
		DueDate:          d.DueDate,
		ClearDate:        d.ClearDate,
		CallingBy:        d.CallingBy,
		SiteVisitBy:      d.SiteVisitBy,
		AttendingBy:      d.AttendingBy,
		ClosingBy:        d.ClosingBy,
		Installments:     installments,
		EditHistory:      history,
		PaidByCustomerID: d.PaidByCustomerID,
		CrossPaymentFlag: d.CrossPaymentFlag,
		Status:           string(d.Status),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}, nil
}

// Helper to convert models.Customer to domain.Customer
func toDomainCustomer(m models.Customer) (domain.Customer, error) {
	var installments []domain.Installment
	if len(m.Installments) > 0 {
		if err := json.Unmarshal(m.Installments, &installments); err != nil {
			return domain.Customer{}, fmt.Errorf("failed to unmarshal installments for customer %s: %w", m.CustomerID, err)
		}
	}
	var history []domain.EditHistorySnapshot
	if len(m.EditHistory) > 0 {
		if err := json.Unmarshal(m.EditHistory, &history); err != nil {
			return domain.Customer{}, fmt.Errorf("failed to unmarshal edit history for customer %s: %w", m.CustomerID, err)
		}
	}
	return domain.Customer{
		ID:               m.ID,
		CustomerID:       m.CustomerID,
		Date:             m.Date,
		OldCustomerID:    m.OldCustomerID,
		IsTransferred:    m.IsTransferred,
		Name:             m.Name,
		Phone:            m.Phone,
		AlternatePhone:   m.AlternatePhone,
		Email:            m.Email,
		Address:          m.Address,
		Zipcode:          m.Zipcode,
		PANCard:          m.PANCard,
		AadharCard:       m.AadharCard,
		BookingArea:      m.BookingArea,
		PlotArea:         m.PlotArea,
		Rate:             m.Rate,
		Discount:         m.Discount,
		TotalAmount:      m.TotalAmount,
		BookingAmount:    m.BookingAmount,
		ReceivedAmount:   m.ReceivedAmount,
		BalanceAmount:    m.BalanceAmount,
		StampDutyCharges: m.StampDutyCharges,
		MOUCharge:        m.MOUCharge,
		Location:         m.Location,
		Village:          m.Village,
		Bank:             m.Bank,
		BankName:         m.BankName,
		PaymentMode:      m.PaymentMode,
		UTRChequeNo:      m.UTRChequeNo,
		ChequeNo:         m.ChequeNo,
		ChequeDate:       m.ChequeDate,
		Remark:           m.Remark,
		DueDate:          m.DueDate,
		ClearDate:        m.ClearDate,
		CallingBy:        m.CallingBy,
		SiteVisitBy:      m.SiteVisitBy,
		AttendingBy:      m.AttendingBy,
		ClosingBy:        m.ClosingBy,
		Installments:     installments,
		EditHistory:      history,
		PaidByCustomerID: m.PaidByCustomerID,
		CrossPaymentFlag: m.CrossPaymentFlag,
		Status:           domain.CustomerStatus(m.Status),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}, nil
}

const customerColumns = `
	id, customer_id, date, old_customer_id, is_transferred, name, phone,
	alternate_phone, email, address, zipcode, pan_card, aadhar_card,
	booking_area, plot_area, rate, discount, total_amount, booking_amount,
	received_amount, balance_amount, stamp_duty_charges, mou_charge,
	location, village, bank, bank_name, payment_mode, utr_cheque_no,
	cheque_no, cheque_date, remark, due_date, clear_date,
	calling_by, site_visit_by, attending_by, closing_by,
	installments, edit_history, paid_by_customer_id, cross_payment_flag,
	status, created_at, created_by, last_updated_at, last_updated_by`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (models.Customer, error) {
	var m models.Customer
	err := row.Scan(
		&m.ID, &m.CustomerID, &m.Date, &m.OldCustomerID, &m.IsTransferred,
		&m.Name, &m.Phone, &m.AlternatePhone, &m.Email, &m.Address,
		&m.Zipcode, &m.PANCard, &m.AadharCard,
		&m.BookingArea, &m.PlotArea, &m.Rate, &m.Discount, &m.TotalAmount,
		&m.BookingAmount, &m.ReceivedAmount, &m.BalanceAmount,
		&m.StampDutyCharges, &m.MOUCharge,
		&m.Location, &m.Village, &m.Bank, &m.BankName, &m.PaymentMode,
		&m.UTRChequeNo, &m.ChequeNo, &m.ChequeDate, &m.Remark,
		&m.DueDate, &m.ClearDate,
		&m.CallingBy, &m.SiteVisitBy, &m.AttendingBy, &m.ClosingBy,
		&m.Installments, &m.EditHistory,
		&m.PaidByCustomerID, &m.CrossPaymentFlag, &m.Status,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	m, err := toModelCustomer(customer)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27,
			$28, $29, $30, $31, $32, $33, $34, $35, $36, $37, $38, $39, $40,
			$41, $42, $43, $44, $45, $46, $47);
	`
	_, err = r.db.Exec(ctx, query,
		m.ID, m.CustomerID, m.Date, m.OldCustomerID, m.IsTransferred,
		m.Name, m.Phone, m.AlternatePhone, m.Email, m.Address,
		m.Zipcode, m.PANCard, m.AadharCard,
		m.BookingArea, m.PlotArea, m.Rate, m.Discount, m.TotalAmount,
		m.BookingAmount, m.ReceivedAmount, m.BalanceAmount,
		m.StampDutyCharges, m.MOUCharge,
		m.Location, m.Village, m.Bank, m.BankName, m.PaymentMode,
		m.UTRChequeNo, m.ChequeNo, m.ChequeDate, m.Remark,
		m.DueDate, m.ClearDate,
		m.CallingBy, m.SiteVisitBy, m.AttendingBy, m.ClosingBy,
		m.Installments, m.EditHistory,
		m.PaidByCustomerID, m.CrossPaymentFlag, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("%w: customer %s", apperrors.ErrDuplicate, customer.CustomerID)
		}
		return fmt.Errorf("failed to save customer: %w", err)
	}
	return nil
}

func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, id string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1;`
	m, err := scanCustomer(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer by ID %s: %w", id, err)
	}
	d, err := toDomainCustomer(m)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PgxCustomerRepository) FindCustomerByCustomerID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1;`
	m, err := scanCustomer(r.db.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer by customerId %s: %w", customerID, err)
	}
	d, err := toDomainCustomer(m)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PgxCustomerRepository) FindCustomers(ctx context.Context, limit int, createdBefore *time.Time) ([]domain.Customer, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT ` + customerColumns + ` FROM customers`
	args := []any{}
	if createdBefore != nil {
		query += ` WHERE created_at < $1`
		args = append(args, *createdBefore)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	return collectCustomers(rows)
}

func (r *PgxCustomerRepository) FindCustomersByStatus(ctx context.Context, status domain.CustomerStatus) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE status = $1 ORDER BY created_at DESC;`
	rows, err := r.db.Query(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to query customers by status: %w", err)
	}
	defer rows.Close()

	return collectCustomers(rows)
}

func (r *PgxCustomerRepository) FindCustomersWithPayments(ctx context.Context, start, end *time.Time) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE received_amount > 0`
	args := []any{}
	if start != nil && end != nil {
		query += fmt.Sprintf(` AND created_at >= $%d AND created_at <= $%d`, len(args)+1, len(args)+2)
		args = append(args, *start, *end)
	}
	query += ` ORDER BY created_at DESC;`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers with payments: %w", err)
	}
	defer rows.Close()

	return collectCustomers(rows)
}

func collectCustomers(rows pgx.Rows) ([]domain.Customer, error) {
	customers := []domain.Customer{}
	for rows.Next() {
		m, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		d, err := toDomainCustomer(m)
		if err != nil {
			return nil, err
		}
		customers = append(customers, d)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating customer rows: %w", rows.Err())
	}
	return customers, nil
}

func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	m, err := toModelCustomer(customer)
	if err != nil {
		return err
	}
	query := `
		UPDATE customers SET
			date = $2, old_customer_id = $3, is_transferred = $4, name = $5,
			phone = $6, alternate_phone = $7, email = $8, address = $9,
			zipcode = $10, pan_card = $11, aadhar_card = $12,
			booking_area = $13, plot_area = $14, rate = $15, discount = $16,
			total_amount = $17, booking_amount = $18, received_amount = $19,
			balance_amount = $20, stamp_duty_charges = $21, mou_charge = $22,
			location = $23, village = $24, bank = $25, bank_name = $26,
			payment_mode = $27, utr_cheque_no = $28, cheque_no = $29,
			cheque_date = $30, remark = $31, due_date = $32, clear_date = $33,
			calling_by = $34, site_visit_by = $35, attending_by = $36,
			closing_by = $37, installments = $38, edit_history = $39,
			paid_by_customer_id = $40, cross_payment_flag = $41, status = $42,
			last_updated_at = $43, last_updated_by = $44
		WHERE id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		m.ID, m.Date, m.OldCustomerID, m.IsTransferred, m.Name,
		m.Phone, m.AlternatePhone, m.Email, m.Address,
		m.Zipcode, m.PANCard, m.AadharCard,
		m.BookingArea, m.PlotArea, m.Rate, m.Discount,
		m.TotalAmount, m.BookingAmount, m.ReceivedAmount,
		m.BalanceAmount, m.StampDutyCharges, m.MOUCharge,
		m.Location, m.Village, m.Bank, m.BankName,
		m.PaymentMode, m.UTRChequeNo, m.ChequeNo,
		m.ChequeDate, m.Remark, m.DueDate, m.ClearDate,
		m.CallingBy, m.SiteVisitBy, m.AttendingBy,
		m.ClosingBy, m.Installments, m.EditHistory,
		m.PaidByCustomerID, m.CrossPaymentFlag, m.Status,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update customer %s: %w", customer.CustomerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCustomerRepository) DeleteCustomer(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
