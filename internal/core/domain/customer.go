package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerStatus is the lifecycle state of a customer record.
type CustomerStatus string

const (
	CustomerActive         CustomerStatus = "Active Customer"
	CustomerCancelled      CustomerStatus = "Cancelled"
	CustomerRefunded       CustomerStatus = "Refunded"
	CustomerSaleDeedDone   CustomerStatus = "SALEDEED DONE"
	CustomerBookingCancel  CustomerStatus = "BOOKING CANCELLED"
	CustomerChequeBounce   CustomerStatus = "Cheque Bounce"
	CustomerBounced        CustomerStatus = "Bounced"
	CustomerChequeNotClear CustomerStatus = "Cheque not clear"
)

// InstallmentStatus is the state of a single payment line item.
// Installments share the customer vocabulary and add payment-progress
// states of their own; the two enums are validated separately.
type InstallmentStatus string

const (
	InstallmentPending   InstallmentStatus = "Pending"
	InstallmentPaid      InstallmentStatus = "Paid"
	InstallmentCompleted InstallmentStatus = "Completed"
)

var customerStatuses = map[CustomerStatus]struct{}{
	CustomerActive:         {},
	CustomerCancelled:      {},
	CustomerRefunded:       {},
	CustomerSaleDeedDone:   {},
	CustomerBookingCancel:  {},
	CustomerChequeBounce:   {},
	CustomerBounced:        {},
	CustomerChequeNotClear: {},
}

var installmentStatuses = map[InstallmentStatus]struct{}{
	InstallmentPending:   {},
	InstallmentPaid:      {},
	InstallmentCompleted: {},
	InstallmentStatus(CustomerActive):         {},
	InstallmentStatus(CustomerCancelled):      {},
	InstallmentStatus(CustomerRefunded):       {},
	InstallmentStatus(CustomerSaleDeedDone):   {},
	InstallmentStatus(CustomerBookingCancel):  {},
	InstallmentStatus(CustomerChequeBounce):   {},
	InstallmentStatus(CustomerBounced):        {},
	InstallmentStatus(CustomerChequeNotClear): {},
}

// IsValid reports whether the status is a known customer status.
func (s CustomerStatus) IsValid() bool {
	_, ok := customerStatuses[s]
	return ok
}

// IsValid reports whether the status is a known installment status.
func (s InstallmentStatus) IsValid() bool {
	_, ok := installmentStatuses[s]
	return ok
}

// Installment is one scheduled or received payment line item within a
// customer's payment plan. It has no identity outside its parent customer;
// InstallmentNo is a 1-based contiguous sequence assigned on append.
type Installment struct {
	InstallmentNo     int               `json:"installmentNo"`
	InstallmentDate   string            `json:"installmentDate"`
	InstallmentAmount decimal.Decimal   `json:"installmentAmount"`
	ReceivedAmount    decimal.Decimal   `json:"receivedAmount"`
	BalanceAmount     decimal.Decimal   `json:"balanceAmount"`
	BankName          string            `json:"bankName"`
	PaymentMode       string            `json:"paymentMode"`
	ChequeNo          string            `json:"chequeNo"`
	ChequeDate        string            `json:"chequeDate"`
	Remark            string            `json:"remark"`
	Status            InstallmentStatus `json:"status"`
}

// EditHistorySnapshot is an immutable copy of the customer's field state
// taken immediately before an update was applied. Snapshots are append-only
// and never reordered.
type EditHistorySnapshot struct {
	Date         time.Time        `json:"date"`
	EditedBy     string           `json:"editedBy"`
	PreviousData CustomerSnapshot `json:"previousData"`
}

// CustomerSnapshot carries the customer's own fields without edit history,
// so snapshots do not nest recursively.
type CustomerSnapshot struct {
	CustomerID       string          `json:"customerId"`
	Date             string          `json:"date"`
	OldCustomerID    string          `json:"oldCustomerId"`
	IsTransferred    bool            `json:"isTransferred"`
	Name             string          `json:"name"`
	Phone            string          `json:"phone"`
	AlternatePhone   string          `json:"alternatePhone"`
	Email            string          `json:"email"`
	Address          string          `json:"address"`
	Zipcode          string          `json:"zipcode"`
	PANCard          string          `json:"panCard"`
	AadharCard       string          `json:"aadharCard"`
	BookingArea      decimal.Decimal `json:"bookingArea"`
	PlotArea         decimal.Decimal `json:"plotArea"`
	Rate             decimal.Decimal `json:"rate"`
	Discount         decimal.Decimal `json:"discount"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	BookingAmount    decimal.Decimal `json:"bookingAmount"`
	ReceivedAmount   decimal.Decimal `json:"receivedAmount"`
	BalanceAmount    decimal.Decimal `json:"balanceAmount"`
	StampDutyCharges decimal.Decimal `json:"stampDutyCharges"`
	MOUCharge        decimal.Decimal `json:"mouCharge"`
	Location         string          `json:"location"`
	Village          string          `json:"village"`
	Bank             string          `json:"bank"`
	BankName         string          `json:"bankName"`
	PaymentMode      string          `json:"paymentMode"`
	UTRChequeNo      string          `json:"utrChequeNo"`
	ChequeNo         string          `json:"chequeNo"`
	ChequeDate       string          `json:"chequeDate"`
	Remark           string          `json:"remark"`
	DueDate          string          `json:"dueDate"`
	ClearDate        string          `json:"clearDate"`
	CallingBy        []string        `json:"callingBy"`
	SiteVisitBy      []string        `json:"siteVisitBy"`
	AttendingBy      []string        `json:"attendingBy"`
	ClosingBy        []string        `json:"closingBy"`
	Installments     []Installment   `json:"installments"`
	PaidByCustomerID string          `json:"paidByCustomerId"`
	CrossPaymentFlag string          `json:"crossPaymentFlag"`
	Status           CustomerStatus  `json:"status"`
}

// Customer is the aggregate root: a plot booking with its payment plan,
// staff assignments and edit history, treated as one consistency boundary.
// ReceivedAmount and BalanceAmount are derived from the installment list
// whenever installments change through the append/bulk paths.
type Customer struct {
	ID               string          `json:"id"` // storage identity (UUID)
	CustomerID       string          `json:"customerId"`
	Date             string          `json:"date"`
	OldCustomerID    string          `json:"oldCustomerId"`
	IsTransferred    bool            `json:"isTransferred"`
	Name             string          `json:"name"`
	Phone            string          `json:"phone"`
	AlternatePhone   string          `json:"alternatePhone"`
	Email            string          `json:"email"`
	Address          string          `json:"address"`
	Zipcode          string          `json:"zipcode"`
	PANCard          string          `json:"panCard"`
	AadharCard       string          `json:"aadharCard"`
	BookingArea      decimal.Decimal `json:"bookingArea"`
	PlotArea         decimal.Decimal `json:"plotArea"`
	Rate             decimal.Decimal `json:"rate"`
	Discount         decimal.Decimal `json:"discount"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	BookingAmount    decimal.Decimal `json:"bookingAmount"`
	ReceivedAmount   decimal.Decimal `json:"receivedAmount"`
	BalanceAmount    decimal.Decimal `json:"balanceAmount"`
	StampDutyCharges decimal.Decimal `json:"stampDutyCharges"`
	MOUCharge        decimal.Decimal `json:"mouCharge"`
	Location         string          `json:"location"`
	Village          string          `json:"village"`
	Bank             string          `json:"bank"`
	BankName         string          `json:"bankName"`
	PaymentMode      string          `json:"paymentMode"`
	UTRChequeNo      string          `json:"utrChequeNo"`
	ChequeNo         string          `json:"chequeNo"`
	ChequeDate       string          `json:"chequeDate"`
	Remark           string          `json:"remark"`
	DueDate          string          `json:"dueDate"`
	ClearDate        string          `json:"clearDate"`

	// Staff assignments. Normalized ordered sets; order is preserved but
	// carries no meaning.
	CallingBy   []string `json:"callingBy"`
	SiteVisitBy []string `json:"siteVisitBy"`
	AttendingBy []string `json:"attendingBy"`
	ClosingBy   []string `json:"closingBy"`

	Installments []Installment         `json:"installments"`
	EditHistory  []EditHistorySnapshot `json:"editHistory"`

	// Cross-payment linkage. PaidByCustomerID points at the payer-of-record
	// on the receiving customer; CrossPaymentFlag is a textual marker set on
	// the source ("Transferred to <id>"), overwritten on later transfers.
	PaidByCustomerID string `json:"paidByCustomerId"`
	CrossPaymentFlag string `json:"crossPaymentFlag"`

	Status CustomerStatus `json:"status"`
	AuditFields
}

// Snapshot captures the customer's current field state for edit history.
func (c *Customer) Snapshot() CustomerSnapshot {
	installments := make([]Installment, len(c.Installments))
	copy(installments, c.Installments)
	return CustomerSnapshot{
		CustomerID:       c.CustomerID,
		Date:             c.Date,
		OldCustomerID:    c.OldCustomerID,
		IsTransferred:    c.IsTransferred,
		Name:             c.Name,
		Phone:            c.Phone,
		AlternatePhone:   c.AlternatePhone,
		Email:            c.Email,
		Address:          c.Address,
		Zipcode:          c.Zipcode,
		PANCard:          c.PANCard,
		AadharCard:       c.AadharCard,
		BookingArea:      c.BookingArea,
		PlotArea:         c.PlotArea,
		Rate:             c.Rate,
		Discount:         c.Discount,
		TotalAmount:      c.TotalAmount,
		BookingAmount:    c.BookingAmount,
		ReceivedAmount:   c.ReceivedAmount,
		BalanceAmount:    c.BalanceAmount,
		StampDutyCharges: c.StampDutyCharges,
		MOUCharge:        c.MOUCharge,
		Location:         c.Location,
		Village:          c.Village,
		Bank:             c.Bank,
		BankName:         c.BankName,
		PaymentMode:      c.PaymentMode,
		UTRChequeNo:      c.UTRChequeNo,
		ChequeNo:         c.ChequeNo,
		ChequeDate:       c.ChequeDate,
		Remark:           c.Remark,
		DueDate:          c.DueDate,
		ClearDate:        c.ClearDate,
		CallingBy:        append([]string(nil), c.CallingBy...),
		SiteVisitBy:      append([]string(nil), c.SiteVisitBy...),
		AttendingBy:      append([]string(nil), c.AttendingBy...),
		ClosingBy:        append([]string(nil), c.ClosingBy...),
		Installments:     installments,
		PaidByCustomerID: c.PaidByCustomerID,
		CrossPaymentFlag: c.CrossPaymentFlag,
		Status:           c.Status,
	}
}

// NextInstallmentNo returns the sequence number the next appended
// installment must carry: max existing number plus one, starting at 1.
func (c *Customer) NextInstallmentNo() int {
	maxNo := 0
	for _, inst := range c.Installments {
		if inst.InstallmentNo > maxNo {
			maxNo = inst.InstallmentNo
		}
	}
	return maxNo + 1
}
