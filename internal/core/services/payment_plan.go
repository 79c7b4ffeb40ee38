package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zaminwale/crm_backend/internal/core/domain"
	"github.com/zaminwale/crm_backend/internal/dto"
)

// Payment-plan mutation rules for the customer aggregate. These are pure
// transformations over in-memory state; loading and persisting the aggregate
// is the customer service's job.

const defaultBulkRemark = "SaleDeed Pending"

// AppendInstallment appends one payment line item to the customer's plan and
// recomputes the derived totals. The installment number is always assigned
// here (max existing + 1); any number on the input is ignored. Status
// defaults to Pending.
func AppendInstallment(c *domain.Customer, inst domain.Installment) {
	inst.InstallmentNo = c.NextInstallmentNo()
	if inst.Status == "" {
		inst.Status = domain.InstallmentPending
	}
	c.Installments = append(c.Installments, inst)

	// A plan that never had a total adopts the first meaningful amount so
	// the balance invariant holds.
	if c.TotalAmount.IsZero() {
		if !inst.InstallmentAmount.IsZero() {
			c.TotalAmount = inst.InstallmentAmount
		} else {
			c.TotalAmount = inst.ReceivedAmount
		}
	}
	RecomputeTotals(c)
}

// RecomputeTotals rederives the customer's summary fields from the
// installment list: receivedAmount is the sum of installment receipts and
// balanceAmount is totalAmount minus receivedAmount.
func RecomputeTotals(c *domain.Customer) {
	received := decimal.Zero
	for _, inst := range c.Installments {
		received = received.Add(inst.ReceivedAmount)
	}
	c.ReceivedAmount = received
	c.BalanceAmount = c.TotalAmount.Sub(received)
}

// LinkCrossPayment marks the source customer as transferred to the target.
// The marker is overwritten, not accumulated, so only the latest transfer
// target is retained. A self-reference is a no-op. The caller is responsible
// for setting paidByCustomerId on the target customer.
func LinkCrossPayment(source *domain.Customer, targetCustomerID string) bool {
	if source == nil || targetCustomerID == "" || source.CustomerID == targetCustomerID {
		return false
	}
	source.CrossPaymentFlag = fmt.Sprintf("Transferred to %s", targetCustomerID)
	source.IsTransferred = true
	return true
}

// RecordEdit appends one snapshot of the customer's current state to the
// edit history. It runs before every update, unconditionally: even a no-op
// update leaves a snapshot behind.
func RecordEdit(c *domain.Customer, editedBy string, now time.Time) {
	c.EditHistory = append(c.EditHistory, domain.EditHistorySnapshot{
		Date:         now,
		EditedBy:     editedBy,
		PreviousData: c.Snapshot(),
	})
}

// NormalizeInstallments converts raw installment inputs into domain
// installments: missing sequence numbers fall back to the 1-based index,
// amounts have already been coerced at the boundary, and status defaults to
// Pending. Used when an update replaces the whole plan.
func NormalizeInstallments(inputs []dto.InstallmentInput) []domain.Installment {
	out := make([]domain.Installment, len(inputs))
	for i, in := range inputs {
		no := in.InstallmentNo
		if no == 0 {
			no = i + 1
		}
		status := domain.InstallmentStatus(in.Status)
		if status == "" {
			status = domain.InstallmentPending
		}
		out[i] = domain.Installment{
			InstallmentNo:     no,
			InstallmentDate:   in.InstallmentDate,
			InstallmentAmount: in.InstallmentAmount.Decimal,
			ReceivedAmount:    in.ReceivedAmount.Decimal,
			BalanceAmount:     in.BalanceAmount.Decimal,
			BankName:          in.BankName,
			PaymentMode:       in.PaymentMode,
			ChequeNo:          in.ChequeNo,
			ChequeDate:        in.ChequeDate,
			Remark:            in.Remark,
			Status:            status,
		}
	}
	return out
}

// installmentFromBulkRow synthesizes the installment a bulk payment row
// produces. Bulk rows represent money already received, so the installment
// is born Completed.
func installmentFromBulkRow(row dto.BulkPaymentRow, balance decimal.Decimal) domain.Installment {
	remark := row.Remark
	if remark == "" {
		remark = defaultBulkRemark
	}
	received := row.ReceivedAmount.Decimal
	return domain.Installment{
		InstallmentDate:   row.Date,
		InstallmentAmount: received,
		ReceivedAmount:    received,
		BalanceAmount:     balance,
		BankName:          row.BankName,
		PaymentMode:       row.PaymentMode,
		ChequeNo:          row.ChequeNo,
		ChequeDate:        row.ChequeDate,
		Remark:            remark,
		Status:            domain.InstallmentCompleted,
	}
}

// ApplyBulkPaymentRow applies one batch payment row. When customer is nil a
// new aggregate is synthesized with exactly one installment; otherwise the
// row is appended as the next installment and the totals recomputed. The
// returned flag reports whether a customer was created. There is no dedup
// key: re-applying the same row appends again.
func ApplyBulkPaymentRow(customer *domain.Customer, row dto.BulkPaymentRow) (*domain.Customer, bool) {
	totalAmt := row.TotalAmount.Decimal
	receivedAmt := row.ReceivedAmount.Decimal

	if customer == nil {
		status := domain.CustomerStatus(row.Status)
		if status == "" {
			status = domain.CustomerActive
		}
		inst := installmentFromBulkRow(row, totalAmt.Sub(receivedAmt))
		inst.InstallmentNo = 1
		return &domain.Customer{
			CustomerID:     row.CustomerID,
			Name:           row.Name,
			Date:           row.Date,
			Location:       row.Location,
			Village:        row.Village,
			BankName:       row.BankName,
			PaymentMode:    row.PaymentMode,
			ChequeNo:       row.ChequeNo,
			ChequeDate:     row.ChequeDate,
			Remark:         row.Remark,
			TotalAmount:    totalAmt,
			ReceivedAmount: receivedAmt,
			BalanceAmount:  totalAmt.Sub(receivedAmt),
			Installments:   []domain.Installment{inst},
			Status:         status,
		}, true
	}

	if customer.TotalAmount.IsZero() && !totalAmt.IsZero() {
		customer.TotalAmount = totalAmt
	}
	inst := installmentFromBulkRow(row, customer.TotalAmount.Sub(customer.ReceivedAmount.Add(receivedAmt)))
	AppendInstallment(customer, inst)
	return customer, false
}
