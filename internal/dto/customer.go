package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/zaminwale/crm_backend/internal/core/domain"
)

// InstallmentInput is one payment line item as submitted by the front end.
// Amount fields are lenient: bad numerics coerce to zero instead of failing
// the request.
type InstallmentInput struct {
	InstallmentNo     int         `json:"installmentNo"`
	InstallmentDate   string      `json:"installmentDate"`
	InstallmentAmount FlexDecimal `json:"installmentAmount"`
	ReceivedAmount    FlexDecimal `json:"receivedAmount"`
	BalanceAmount     FlexDecimal `json:"balanceAmount"`
	BankName          string      `json:"bankName"`
	PaymentMode       string      `json:"paymentMode"`
	ChequeNo          string      `json:"chequeNo"`
	ChequeDate        string      `json:"chequeDate"`
	Remark            string      `json:"remark"`
	Status            string      `json:"status"`
}

// CreateCustomerRequest defines the data needed to create a customer.
// CustomerID and Name are the only hard requirements; everything else
// defaults.
type CreateCustomerRequest struct {
	CustomerID       string         `json:"customerId" binding:"required"`
	Name             string         `json:"name" binding:"required"`
	Date             string         `json:"date"`
	OldCustomerID    string         `json:"oldCustomerId"`
	Phone            string         `json:"phone"`
	AlternatePhone   string         `json:"alternatePhone"`
	Email            string         `json:"email"`
	Address          string         `json:"address"`
	Zipcode          string         `json:"zipcode"`
	PANCard          string         `json:"panCard"`
	AadharCard       string         `json:"aadharCard"`
	BookingArea      FlexDecimal    `json:"bookingArea"`
	PlotArea         FlexDecimal    `json:"plotArea"`
	Rate             FlexDecimal    `json:"rate"`
	Discount         FlexDecimal    `json:"discount"`
	TotalAmount      FlexDecimal    `json:"totalAmount"`
	BookingAmount    FlexDecimal    `json:"bookingAmount"`
	StampDutyCharges FlexDecimal    `json:"stampDutyCharges"`
	MOUCharge        FlexDecimal    `json:"mouCharge"`
	Location         string         `json:"location"`
	Village          string         `json:"village"`
	Bank             string         `json:"bank"`
	BankName         string         `json:"bankName"`
	PaymentMode      string         `json:"paymentMode"`
	UTRChequeNo      string         `json:"utrChequeNo"`
	ChequeNo         string         `json:"chequeNo"`
	ChequeDate       string         `json:"chequeDate"`
	Remark           string         `json:"remark"`
	DueDate          string         `json:"dueDate"`
	ClearDate        string         `json:"clearDate"`
	CallingBy        FlexStringList `json:"callingBy"`
	SiteVisitBy      FlexStringList `json:"siteVisitBy"`
	AttendingBy      FlexStringList `json:"attendingBy"`
	ClosingBy        FlexStringList `json:"closingBy"`
	Installments     []InstallmentInput `json:"installments"`
	PaidByCustomerID string         `json:"paidByCustomerId"`
	Status           string         `json:"status" binding:"omitempty,customerstatus"`
}

// UpdateCustomerRequest is the explicit whitelist of mutable customer fields.
// Pointers distinguish omitted fields from zero values. Derived totals
// (receivedAmount, balanceAmount) are deliberately absent: they change only
// through the installment paths, never by direct overwrite.
type UpdateCustomerRequest struct {
	Date             *string         `json:"date"`
	OldCustomerID    *string         `json:"oldCustomerId"`
	IsTransferred    *bool           `json:"isTransferred"`
	Name             *string         `json:"name"`
	Phone            *string         `json:"phone"`
	AlternatePhone   *string         `json:"alternatePhone"`
	Email            *string         `json:"email"`
	Address          *string         `json:"address"`
	Zipcode          *string         `json:"zipcode"`
	PANCard          *string         `json:"panCard"`
	AadharCard       *string         `json:"aadharCard"`
	BookingArea      *FlexDecimal    `json:"bookingArea"`
	PlotArea         *FlexDecimal    `json:"plotArea"`
	Rate             *FlexDecimal    `json:"rate"`
	Discount         *FlexDecimal    `json:"discount"`
	TotalAmount      *FlexDecimal    `json:"totalAmount"`
	BookingAmount    *FlexDecimal    `json:"bookingAmount"`
	StampDutyCharges *FlexDecimal    `json:"stampDutyCharges"`
	MOUCharge        *FlexDecimal    `json:"mouCharge"`
	Location         *string         `json:"location"`
	Village          *string         `json:"village"`
	Bank             *string         `json:"bank"`
	BankName         *string         `json:"bankName"`
	PaymentMode      *string         `json:"paymentMode"`
	UTRChequeNo      *string         `json:"utrChequeNo"`
	ChequeNo         *string         `json:"chequeNo"`
	ChequeDate       *string         `json:"chequeDate"`
	Remark           *string         `json:"remark"`
	DueDate          *string         `json:"dueDate"`
	ClearDate        *string         `json:"clearDate"`
	CallingBy        *FlexStringList `json:"callingBy"`
	SiteVisitBy      *FlexStringList `json:"siteVisitBy"`
	AttendingBy      *FlexStringList `json:"attendingBy"`
	ClosingBy        *FlexStringList `json:"closingBy"`
	// Replaces the whole payment plan when present; each entry is
	// renormalized (sequence fallback, numeric coercion, status default)
	// and totals are recomputed.
	Installments     *[]InstallmentInput `json:"installments"`
	PaidByCustomerID *string             `json:"paidByCustomerId"`
	Status           *string             `json:"status" binding:"omitempty"`
}

// AddInstallmentRequest appends one payment line item to a customer's plan.
type AddInstallmentRequest struct {
	InstallmentDate   string      `json:"installmentDate"`
	InstallmentAmount FlexDecimal `json:"installmentAmount"`
	ReceivedAmount    FlexDecimal `json:"receivedAmount"`
	BankName          string      `json:"bankName"`
	PaymentMode       string      `json:"paymentMode"`
	ChequeNo          string      `json:"chequeNo"`
	ChequeDate        string      `json:"chequeDate"`
	Remark            string      `json:"remark"`
	Status            string      `json:"status"`
}

// InstallmentResponse mirrors domain.Installment for API output.
type InstallmentResponse struct {
	InstallmentNo     int             `json:"installmentNo"`
	InstallmentDate   string          `json:"installmentDate"`
	InstallmentAmount decimal.Decimal `json:"installmentAmount"`
	ReceivedAmount    decimal.Decimal `json:"receivedAmount"`
	BalanceAmount     decimal.Decimal `json:"balanceAmount"`
	BankName          string          `json:"bankName"`
	PaymentMode       string          `json:"paymentMode"`
	ChequeNo          string          `json:"chequeNo"`
	ChequeDate        string          `json:"chequeDate"`
	Remark            string          `json:"remark"`
	Status            string          `json:"status"`
}

// EditHistoryResponse is one audit snapshot in API output.
type EditHistoryResponse struct {
	Date         time.Time               `json:"date"`
	EditedBy     string                  `json:"editedBy"`
	PreviousData domain.CustomerSnapshot `json:"previousData"`
}

// CustomerResponse is the full customer aggregate as returned by the API.
type CustomerResponse struct {
	ID               string                `json:"id"`
	CustomerID       string                `json:"customerId"`
	Date             string                `json:"date"`
	OldCustomerID    string                `json:"oldCustomerId"`
	IsTransferred    bool                  `json:"isTransferred"`
	Name             string                `json:"name"`
	Phone            string                `json:"phone"`
	AlternatePhone   string                `json:"alternatePhone"`
	Email            string                `json:"email"`
	Address          string                `json:"address"`
	Zipcode          string                `json:"zipcode"`
	PANCard          string                `json:"panCard"`
	AadharCard       string                `json:"aadharCard"`
	BookingArea      decimal.Decimal       `json:"bookingArea"`
	PlotArea         decimal.Decimal       `json:"plotArea"`
	Rate             decimal.Decimal       `json:"rate"`
	Discount         decimal.Decimal       `json:"discount"`
	TotalAmount      decimal.Decimal       `json:"totalAmount"`
	BookingAmount    decimal.Decimal       `json:"bookingAmount"`
	ReceivedAmount   decimal.Decimal       `json:"receivedAmount"`
	BalanceAmount    decimal.Decimal       `json:"balanceAmount"`
	StampDutyCharges decimal.Decimal       `json:"stampDutyCharges"`
	MOUCharge        decimal.Decimal       `json:"mouCharge"`
	Location         string                `json:"location"`
	Village          string                `json:"village"`
	Bank             string                `json:"bank"`
	BankName         string                `json:"bankName"`
	PaymentMode      string                `json:"paymentMode"`
	UTRChequeNo      string                `json:"utrChequeNo"`
	ChequeNo         string                `json:"chequeNo"`
	ChequeDate       string                `json:"chequeDate"`
	Remark           string                `json:"remark"`
	DueDate          string                `json:"dueDate"`
	ClearDate        string                `json:"clearDate"`
	CallingBy        []string              `json:"callingBy"`
	SiteVisitBy      []string              `json:"siteVisitBy"`
	AttendingBy      []string              `json:"attendingBy"`
	ClosingBy        []string              `json:"closingBy"`
	Installments     []InstallmentResponse `json:"installments"`
	EditHistory      []EditHistoryResponse `json:"editHistory"`
	PaidByCustomerID string                `json:"paidByCustomerId"`
	CrossPaymentFlag string                `json:"crossPaymentFlag"`
	Status           string                `json:"status"`
	CreatedAt        time.Time             `json:"createdAt"`
	LastUpdatedAt    time.Time             `json:"lastUpdatedAt"`
}

// ListCustomersParams defines query parameters for listing customers.
type ListCustomersParams struct {
	Limit     int    `form:"limit,default=50"`
	NextToken string `form:"nextToken"`
}

// ListCustomersResponse wraps a page of customers with the cursor for the
// next page, if any.
type ListCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToInstallmentResponse converts a domain installment.
func ToInstallmentResponse(inst domain.Installment) InstallmentResponse {
	return InstallmentResponse{
		InstallmentNo:     inst.InstallmentNo,
		InstallmentDate:   inst.InstallmentDate,
		InstallmentAmount: inst.InstallmentAmount,
		ReceivedAmount:    inst.ReceivedAmount,
		BalanceAmount:     inst.BalanceAmount,
		BankName:          inst.BankName,
		PaymentMode:       inst.PaymentMode,
		ChequeNo:          inst.ChequeNo,
		ChequeDate:        inst.ChequeDate,
		Remark:            inst.Remark,
		Status:            string(inst.Status),
	}
}

// ToCustomerResponse converts a domain.Customer to its API representation.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	installments := make([]InstallmentResponse, len(c.Installments))
	for i, inst := range c.Installments {
		installments[i] = ToInstallmentResponse(inst)
	}
	history := make([]EditHistoryResponse, len(c.EditHistory))
	for i, snap := range c.EditHistory {
		history[i] = EditHistoryResponse{
			Date:         snap.Date,
			EditedBy:     snap.EditedBy,
			PreviousData: snap.PreviousData,
		}
	}
	return CustomerResponse{
		ID:               c.ID,
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
		CallingBy:        c.CallingBy,
		SiteVisitBy:      c.SiteVisitBy,
		AttendingBy:      c.AttendingBy,
		ClosingBy:        c.ClosingBy,
		Installments:     installments,
		EditHistory:      history,
		PaidByCustomerID: c.PaidByCustomerID,
		CrossPaymentFlag: c.CrossPaymentFlag,
		Status:           string(c.Status),
		CreatedAt:        c.CreatedAt,
		LastUpdatedAt:    c.LastUpdatedAt,
	}
}

// ToListCustomersResponse converts a page of customers.
func ToListCustomersResponse(customers []domain.Customer, nextToken *string) ListCustomersResponse {
	res := make([]CustomerResponse, len(customers))
	for i := range customers {
		res[i] = ToCustomerResponse(&customers[i])
	}
	return ListCustomersResponse{Customers: res, NextToken: nextToken}
}
