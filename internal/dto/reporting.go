package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceivedWindowParams filters received-amount reports by creation window.
type ReceivedWindowParams struct {
	Start string `form:"start"`
	End   string `form:"end"`
}

// ReceivedPayment is one received installment in the total-received report.
type ReceivedPayment struct {
	CustomerID     string          `json:"customerId"`
	Name           string          `json:"name"`
	Location       string          `json:"location"`
	ReceivedAmount decimal.Decimal `json:"receivedAmount"`
	ReceivedDate   string          `json:"receivedDate"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// TotalReceivedResponse is the aggregate received report.
type TotalReceivedResponse struct {
	TotalReceivedAmount    decimal.Decimal   `json:"totalReceivedAmount"`
	TotalReceivedCustomers []ReceivedPayment `json:"totalReceivedCustomers"`
}

// MonthlyReceived is one month bucket of received amounts.
type MonthlyReceived struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}
