package models

import (
	"github.com/shopspring/decimal"
)

// Customer is the customers table row. The payment plan and edit history are
// stored as JSONB documents; staff assignment lists as text arrays.
type Customer struct {
	ID               string          `db:"id"`
	CustomerID       string          `db:"customer_id"`
	Date             string          `db:"date"`
	OldCustomerID    string          `db:"old_customer_id"`
	IsTransferred    bool            `db:"is_transferred"`
	Name             string          `db:"name"`
	Phone            string          `db:"phone"`
	AlternatePhone   string          `db:"alternate_phone"`
	Email            string          `db:"email"`
	Address          string          `db:"address"`
	Zipcode          string          `db:"zipcode"`
	PANCard          string          `db:"pan_card"`
	AadharCard       string          `db:"aadhar_card"`
	BookingArea      decimal.Decimal `db:"booking_area"`
	PlotArea         decimal.Decimal `db:"plot_area"`
	Rate             decimal.Decimal `db:"rate"`
	Discount         decimal.Decimal `db:"discount"`
	TotalAmount      decimal.Decimal `db:"total_amount"`
	BookingAmount    decimal.Decimal `db:"booking_amount"`
	ReceivedAmount   decimal.Decimal `db:"received_amount"`
	BalanceAmount    decimal.Decimal `db:"balance_amount"`
	StampDutyCharges decimal.Decimal `db:"stamp_duty_charges"`
	MOUCharge        decimal.Decimal `db:"mou_charge"`
	Location         string          `db:"location"`
	Village          string          `db:"village"`
	Bank             string          `db:"bank"`
	BankName         string          `db:"bank_name"`
	PaymentMode      string          `db:"payment_mode"`
	UTRChequeNo      string          `db:"utr_cheque_no"`
	ChequeNo         string          `db:"cheque_no"`
	ChequeDate       string          `db:"cheque_date"`
	Remark           string          `db:"remark"`
	DueDate          string          `db:"due_date"`
	ClearDate        string          `db:"clear_date"`
	CallingBy        []string        `db:"calling_by"`
	SiteVisitBy      []string        `db:"site_visit_by"`
	AttendingBy      []string        `db:"attending_by"`
	ClosingBy        []string        `db:"closing_by"`
	Installments     []byte          `db:"installments"` // JSONB
	EditHistory      []byte          `db:"edit_history"` // JSONB
	PaidByCustomerID string          `db:"paid_by_customer_id"`
	CrossPaymentFlag string          `db:"cross_payment_flag"`
	Status           string          `db:"status"`
	AuditFields
}
