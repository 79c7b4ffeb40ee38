package services_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zaminwale/crm_backend/internal/core/domain"
	"github.com/zaminwale/crm_backend/internal/core/services"
	"github.com/zaminwale/crm_backend/internal/dto"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAppendInstallment_NumberingIsMaxPlusOne(t *testing.T) {
	c := &domain.Customer{
		TotalAmount: dec("100000"),
		Installments: []domain.Installment{
			{InstallmentNo: 1, ReceivedAmount: dec("10000")},
			{InstallmentNo: 5, ReceivedAmount: dec("5000")}, // gap left by imported data
		},
	}

	services.AppendInstallment(c, domain.Installment{ReceivedAmount: dec("2000")})

	require.Len(t, c.Installments, 3)
	assert.Equal(t, 6, c.Installments[2].InstallmentNo)
}

func TestAppendInstallment_IgnoresCallerSuppliedNumber(t *testing.T) {
	c := &domain.Customer{
		TotalAmount:  dec("50000"),
		Installments: []domain.Installment{{InstallmentNo: 1}},
	}

	services.AppendInstallment(c, domain.Installment{InstallmentNo: 99, ReceivedAmount: dec("1000")})

	assert.Equal(t, 2, c.Installments[1].InstallmentNo)
}

func TestAppendInstallment_NumberingWithDuplicates(t *testing.T) {
	c := &domain.Customer{
		TotalAmount: dec("50000"),
		Installments: []domain.Installment{
			{InstallmentNo: 3},
			{InstallmentNo: 3},
		},
	}

	services.AppendInstallment(c, domain.Installment{})

	assert.Equal(t, 4, c.Installments[2].InstallmentNo)
}

func TestAppendInstallment_StatusDefaultsToPending(t *testing.T) {
	c := &domain.Customer{TotalAmount: dec("50000")}

	services.AppendInstallment(c, domain.Installment{ReceivedAmount: dec("1000")})
	services.AppendInstallment(c, domain.Installment{ReceivedAmount: dec("1000"), Status: domain.InstallmentPaid})

	assert.Equal(t, domain.InstallmentPending, c.Installments[0].Status)
	assert.Equal(t, domain.InstallmentPaid, c.Installments[1].Status)
}

func TestAppendInstallment_RecomputesDerivedTotals(t *testing.T) {
	c := &domain.Customer{TotalAmount: dec("100000")}

	services.AppendInstallment(c, domain.Installment{InstallmentAmount: dec("30000"), ReceivedAmount: dec("30000")})
	services.AppendInstallment(c, domain.Installment{InstallmentAmount: dec("20000"), ReceivedAmount: dec("20000")})

	assert.True(t, c.ReceivedAmount.Equal(dec("50000")), "received = %s", c.ReceivedAmount)
	assert.True(t, c.BalanceAmount.Equal(dec("50000")), "balance = %s", c.BalanceAmount)
	assert.Equal(t, 1, c.Installments[0].InstallmentNo)
	assert.Equal(t, 2, c.Installments[1].InstallmentNo)
}

func TestAppendInstallment_TotalAmountFallback(t *testing.T) {
	c := &domain.Customer{}

	services.AppendInstallment(c, domain.Installment{InstallmentAmount: dec("25000"), ReceivedAmount: dec("25000")})

	// A plan with no stated total adopts the first amount, so the balance
	// invariant still holds.
	assert.True(t, c.TotalAmount.Equal(dec("25000")))
	assert.True(t, c.ReceivedAmount.Equal(dec("25000")))
	assert.True(t, c.BalanceAmount.IsZero())
}

func TestRecomputeTotals_BalanceInvariant(t *testing.T) {
	c := &domain.Customer{
		TotalAmount: dec("90000"),
		Installments: []domain.Installment{
			{ReceivedAmount: dec("15000")},
			{ReceivedAmount: dec("0")},
			{ReceivedAmount: dec("35000")},
		},
	}

	services.RecomputeTotals(c)

	assert.True(t, c.ReceivedAmount.Equal(dec("50000")))
	assert.True(t, c.BalanceAmount.Equal(c.TotalAmount.Sub(c.ReceivedAmount)))
}

func TestLinkCrossPayment_SetsTransferMarker(t *testing.T) {
	source := &domain.Customer{CustomerID: "ZW-100"}

	linked := services.LinkCrossPayment(source, "ZW-200")

	require.True(t, linked)
	assert.Equal(t, "Transferred to ZW-200", source.CrossPaymentFlag)
	assert.True(t, source.IsTransferred)
}

func TestLinkCrossPayment_MarkerOverwritesNotAccumulates(t *testing.T) {
	source := &domain.Customer{CustomerID: "ZW-100"}

	services.LinkCrossPayment(source, "ZW-200")
	services.LinkCrossPayment(source, "ZW-300")

	assert.Equal(t, "Transferred to ZW-300", source.CrossPaymentFlag)
}

func TestLinkCrossPayment_SelfReferenceIsNoOp(t *testing.T) {
	source := &domain.Customer{CustomerID: "ZW-100"}

	linked := services.LinkCrossPayment(source, "ZW-100")

	assert.False(t, linked)
	assert.Empty(t, source.CrossPaymentFlag)
	assert.False(t, source.IsTransferred)
}

func TestLinkCrossPayment_NilSourceIsNoOp(t *testing.T) {
	assert.False(t, services.LinkCrossPayment(nil, "ZW-200"))
}

func TestRecordEdit_AppendsSnapshotUnconditionally(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	c := &domain.Customer{
		CustomerID:  "ZW-100",
		Name:        "Ravi Patil",
		TotalAmount: dec("100000"),
	}

	services.RecordEdit(c, "Admin", now)
	services.RecordEdit(c, "Admin", now.Add(time.Minute))

	require.Len(t, c.EditHistory, 2)
	assert.Equal(t, "Admin", c.EditHistory[0].EditedBy)
	assert.Equal(t, now, c.EditHistory[0].Date)
	assert.Equal(t, "Ravi Patil", c.EditHistory[0].PreviousData.Name)
}

func TestRecordEdit_SnapshotTakenBeforeMutation(t *testing.T) {
	c := &domain.Customer{CustomerID: "ZW-100", Name: "Old Name"}

	services.RecordEdit(c, "Staff A", time.Now())
	c.Name = "New Name"

	assert.Equal(t, "Old Name", c.EditHistory[0].PreviousData.Name)
	assert.Equal(t, "New Name", c.Name)
}

func TestNormalizeInstallments_IndexFallbackNumbering(t *testing.T) {
	inputs := []dto.InstallmentInput{
		{ReceivedAmount: dto.NewFlexDecimal(dec("1000"))},
		{InstallmentNo: 7, ReceivedAmount: dto.NewFlexDecimal(dec("2000"))},
		{ReceivedAmount: dto.NewFlexDecimal(dec("3000"))},
	}

	out := services.NormalizeInstallments(inputs)

	require.Len(t, out, 3)
	assert.Equal(t, 1, out[0].InstallmentNo)
	assert.Equal(t, 7, out[1].InstallmentNo)
	assert.Equal(t, 3, out[2].InstallmentNo)
	assert.Equal(t, domain.InstallmentPending, out[0].Status)
}

func TestApplyBulkPaymentRow_CreatesCustomerWithOneCompletedInstallment(t *testing.T) {
	row := dto.BulkPaymentRow{
		CustomerID:     "C1",
		Name:           "Sunita Deshmukh",
		TotalAmount:    dto.NewFlexDecimal(dec("50000")),
		ReceivedAmount: dto.NewFlexDecimal(dec("10000")),
	}

	customer, created := services.ApplyBulkPaymentRow(nil, row)

	require.True(t, created)
	require.Len(t, customer.Installments, 1)
	inst := customer.Installments[0]
	assert.Equal(t, 1, inst.InstallmentNo)
	assert.Equal(t, domain.InstallmentCompleted, inst.Status)
	assert.Equal(t, "SaleDeed Pending", inst.Remark)
	assert.True(t, customer.ReceivedAmount.Equal(dec("10000")))
	assert.True(t, customer.BalanceAmount.Equal(dec("40000")))
	assert.Equal(t, domain.CustomerActive, customer.Status)
}

func TestApplyBulkPaymentRow_AppendsToExistingCustomer(t *testing.T) {
	row := dto.BulkPaymentRow{
		CustomerID:     "C1",
		Name:           "Sunita Deshmukh",
		TotalAmount:    dto.NewFlexDecimal(dec("50000")),
		ReceivedAmount: dto.NewFlexDecimal(dec("10000")),
	}
	customer, _ := services.ApplyBulkPaymentRow(nil, row)

	followUp := dto.BulkPaymentRow{
		CustomerID:     "C1",
		ReceivedAmount: dto.NewFlexDecimal(dec("5000")),
	}
	customer, created := services.ApplyBulkPaymentRow(customer, followUp)

	assert.False(t, created)
	require.Len(t, customer.Installments, 2)
	assert.Equal(t, 2, customer.Installments[1].InstallmentNo)
	assert.True(t, customer.ReceivedAmount.Equal(dec("15000")))
	assert.True(t, customer.BalanceAmount.Equal(dec("35000")))
}

func TestApplyBulkPaymentRow_ReapplyingSameRowAppendsAgain(t *testing.T) {
	row := dto.BulkPaymentRow{
		CustomerID:     "C1",
		Name:           "Sunita Deshmukh",
		TotalAmount:    dto.NewFlexDecimal(dec("50000")),
		ReceivedAmount: dto.NewFlexDecimal(dec("10000")),
	}
	customer, _ := services.ApplyBulkPaymentRow(nil, row)

	// No dedup key: the same row applied twice doubles the received amount.
	customer, created := services.ApplyBulkPaymentRow(customer, row)

	assert.False(t, created)
	require.Len(t, customer.Installments, 2)
	assert.True(t, customer.ReceivedAmount.Equal(dec("20000")))
	assert.True(t, customer.BalanceAmount.Equal(dec("30000")))
}

func TestApplyBulkPaymentRow_CustomRemarkAndStatusPreserved(t *testing.T) {
	row := dto.BulkPaymentRow{
		CustomerID:     "C2",
		Name:           "Mahesh Kale",
		TotalAmount:    dto.NewFlexDecimal(dec("75000")),
		ReceivedAmount: dto.NewFlexDecimal(dec("75000")),
		Remark:         "Full payment",
		Status:         "SALEDEED DONE",
	}

	customer, created := services.ApplyBulkPaymentRow(nil, row)

	require.True(t, created)
	assert.Equal(t, "Full payment", customer.Installments[0].Remark)
	assert.Equal(t, domain.CustomerSaleDeedDone, customer.Status)
	assert.True(t, customer.BalanceAmount.IsZero())
}
