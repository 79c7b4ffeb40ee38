package dto

// BulkPaymentRow is one row of a batch payment import, keyed by customerId.
// Missing customers are created; existing customers get the next sequential
// installment appended.
type BulkPaymentRow struct {
	CustomerID     string      `json:"customerId" binding:"required"`
	Name           string      `json:"name"`
	Date           string      `json:"date"`
	TotalAmount    FlexDecimal `json:"totalAmount"`
	ReceivedAmount FlexDecimal `json:"receivedAmount"`
	BankName       string      `json:"bankName"`
	PaymentMode    string      `json:"paymentMode"`
	ChequeNo       string      `json:"chequeNo"`
	ChequeDate     string      `json:"chequeDate"`
	Remark         string      `json:"remark"`
	Status         string      `json:"status"`
	Location       string      `json:"location"`
	Village        string      `json:"village"`
}

// BulkImportRequest is a batch of payment rows. BatchRef is an optional
// caller-supplied reference recorded in the activity log; re-running the
// same batch appends duplicate installments, and the reference is the hook
// operators have to spot that.
type BulkImportRequest struct {
	BatchRef string           `json:"batchRef"`
	Rows     []BulkPaymentRow `json:"rows" binding:"required,min=1,dive"`
}

// BulkImportResponse summarizes a batch run.
type BulkImportResponse struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}
