package mapping

import (
	"database/sql"
	"testing"
	"time"

	"github.com/SscSPs/site_expense_tracker/internal/core/domain"
	"github.com/SscSPs/site_expense_tracker/internal/models"
	"github.com/SscSPs/site_expense_tracker/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func nullDec(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: dec(s), Valid: true}
}

var testDate = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func fields(anomalies []accounting.Anomaly) []string {
	out := make([]string, len(anomalies))
	for i, a := range anomalies {
		out[i] = a.Field
	}
	return out
}

func TestToDomainExpense_CleanRow(t *testing.T) {
	m := models.Expense{
		ExpenseID:   "e1",
		SiteID:      "s1",
		Date:        testDate,
		Description: sql.NullString{String: "cement", Valid: true},
		Category:    "Materials",
		Amount:      dec("1500.50"),
		Status:      "APPROVED",
	}

	d, anomalies := ToDomainExpense(m)

	assert.Empty(t, anomalies)
	assert.Equal(t, domain.CategoryMaterials, d.Category)
	assert.Equal(t, domain.ApprovalApproved, d.Status)
	assert.Equal(t, "cement", d.Description)
	assert.True(t, d.Amount.Equal(dec("1500.50")))
}

func TestToDomainExpense_Fallbacks(t *testing.T) {
	m := models.Expense{
		ExpenseID: "e2",
		SiteID:    "s1",
		Category:  "snacks",
		Amount:    dec("-20"),
		Status:    "maybe",
	}

	d, anomalies := ToDomainExpense(m)

	assert.Equal(t, domain.CategoryOther, d.Category)
	assert.Equal(t, domain.ApprovalPending, d.Status)
	assert.True(t, d.Amount.IsZero())
	assert.Equal(t, "", d.Description)
	assert.ElementsMatch(t, []string{"category", "amount", "status"}, fields(anomalies))
	for _, a := range anomalies {
		assert.Equal(t, "s1", a.SiteID)
		assert.Equal(t, accounting.KindExpense, a.Kind)
		assert.Equal(t, "e2", a.RecordID)
	}
}

func TestToDomainExpense_RoundsToPaise(t *testing.T) {
	d, anomalies := ToDomainExpense(models.Expense{Amount: dec("10.005"), Status: "approved", Category: "fuel"})

	assert.True(t, d.Amount.Equal(dec("10.01")), "got %s", d.Amount)
	require.Len(t, anomalies, 1)
	assert.Equal(t, "amount", anomalies[0].Field)
}

func TestToDomainAdvance_UnknownPurposeIsRegularAdvance(t *testing.T) {
	m := models.Advance{
		AdvanceID:     "a1",
		SiteID:        "s1",
		RecipientName: "Ravi",
		RecipientType: "Worker",
		Purpose:       "lunch money",
		Amount:        dec("300"),
		Status:        "approved",
	}

	d, anomalies := ToDomainAdvance(m)

	assert.Equal(t, domain.PurposeUnknown, d.Purpose)
	assert.Equal(t, domain.RecipientWorker, d.RecipientType)
	assert.False(t, accounting.IsWorkerDebit(d))
	require.Len(t, anomalies, 1)
	assert.Equal(t, "purpose", anomalies[0].Field)
	assert.Equal(t, "lunch money", anomalies[0].RawValue)
}

func TestToDomainAdvance_SpacedPurpose(t *testing.T) {
	d, anomalies := ToDomainAdvance(models.Advance{
		RecipientType: "subcontractor",
		Purpose:       "Safety Shoes",
		Amount:        dec("800"),
		Status:        "approved",
	})

	assert.Empty(t, anomalies)
	assert.Equal(t, domain.PurposeSafetyShoes, d.Purpose)
	assert.True(t, accounting.IsWorkerDebit(d))
}

func TestToDomainFundsReceived(t *testing.T) {
	d, anomalies := ToDomainFundsReceived(models.FundsReceived{
		FundsID: "f1",
		SiteID:  "s1",
		Amount:  dec("100000"),
		Method:  sql.NullString{String: "NEFT", Valid: true},
	})

	assert.Empty(t, anomalies)
	assert.Equal(t, "NEFT", d.Method)
	assert.Equal(t, "", d.Reference)
	assert.True(t, d.Amount.Equal(dec("100000")))
}

func TestToDomainInvoice_RecomputesMissingAmounts(t *testing.T) {
	m := models.Invoice{
		InvoiceID:     "i1",
		SiteID:        "s1",
		PartyName:     "Steel Traders",
		Quantity:      nullDec("10"),
		Rate:          nullDec("500"),
		GSTPercent:    nullDec("18"),
		PaymentStatus: "paid",
		ApprovedBy:    sql.NullString{String: "HO", Valid: true},
	}

	d, anomalies := ToDomainInvoice(m)

	assert.True(t, d.GrossAmount.Equal(dec("5000")), "gross %s", d.GrossAmount)
	assert.True(t, d.NetAmount.Equal(dec("5900")), "net %s", d.NetAmount)
	assert.Equal(t, domain.PaymentPaid, d.PaymentStatus)
	assert.Equal(t, domain.ApproverHeadOffice, d.ApprovedBy)
	assert.ElementsMatch(t, []string{"gross_amount", "net_amount"}, fields(anomalies))
}

func TestToDomainInvoice_StoredAmountsWin(t *testing.T) {
	m := models.Invoice{
		Quantity:      nullDec("10"),
		Rate:          nullDec("500"),
		GSTPercent:    nullDec("18"),
		GrossAmount:   nullDec("5000"),
		NetAmount:     nullDec("5800"),
		PaymentStatus: "pending",
	}

	d, anomalies := ToDomainInvoice(m)

	assert.Empty(t, anomalies)
	assert.True(t, d.NetAmount.Equal(dec("5800")))
	assert.Equal(t, domain.ApproverSupervisor, d.ApprovedBy)
}

func TestToDomainInvoice_UnknownStatusesAndBadBankDetails(t *testing.T) {
	m := models.Invoice{
		GrossAmount:   nullDec("100"),
		NetAmount:     nullDec("118"),
		PaymentStatus: "partially",
		ApprovedBy:    sql.NullString{String: "site engineer", Valid: true},
		BankDetails:   []byte("{not json"),
	}

	d, anomalies := ToDomainInvoice(m)

	assert.Equal(t, domain.PaymentPending, d.PaymentStatus)
	assert.Equal(t, domain.ApproverSupervisor, d.ApprovedBy)
	assert.Equal(t, domain.BankDetails{}, d.BankDetails)
	assert.ElementsMatch(t, []string{"payment_status", "approved_by", "bank_details"}, fields(anomalies))
}

func TestInvoiceRoundTrip(t *testing.T) {
	gross, net := domain.InvoiceAmounts(dec("3"), dec("250"), dec("5"))
	original := domain.Invoice{
		InvoiceID:     "i9",
		SiteID:        "s1",
		Date:          testDate,
		PartyName:     "Sand Co",
		Material:      "sand",
		Quantity:      dec("3"),
		Rate:          dec("250"),
		GSTPercent:    dec("5"),
		GrossAmount:   gross,
		NetAmount:     net,
		BankDetails:   domain.BankDetails{AccountName: "Sand Co", IFSC: "HDFC0001234"},
		PaymentStatus: domain.PaymentPending,
		ApprovedBy:    domain.ApproverHeadOffice,
	}

	m, err := ToModelInvoice(original)
	require.NoError(t, err)
	assert.JSONEq(t, `{"accountName":"Sand Co","ifsc":"HDFC0001234"}`, string(m.BankDetails))

	back, anomalies := ToDomainInvoice(m)
	assert.Empty(t, anomalies)
	assert.Equal(t, original.BankDetails, back.BankDetails)
	assert.True(t, back.NetAmount.Equal(dec("787.50")))
	assert.Equal(t, original.ApprovedBy, back.ApprovedBy)
}

func TestToModelInvoice_EmptyBankDetailsStoredAsNull(t *testing.T) {
	m, err := ToModelInvoice(domain.Invoice{InvoiceID: "i1"})
	require.NoError(t, err)
	assert.Nil(t, m.BankDetails)
}

func TestToDomainSite_StatusInference(t *testing.T) {
	completed := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	m := models.Site{
		SiteID:         "s1",
		Name:           "Tower A",
		StartDate:      testDate,
		CompletionDate: sql.NullTime{Time: completed, Valid: true},
		Status:         "closed",
		FundsReceived:  dec("1000"),
	}

	d, anomalies := ToDomainSite(m)

	assert.Equal(t, domain.SiteCompleted, d.Status)
	require.NotNil(t, d.CompletionDate)
	assert.True(t, d.CompletionDate.Equal(completed))
	require.Len(t, anomalies, 1)
	assert.Equal(t, accounting.KindSite, anomalies[0].Kind)
}

func TestSiteRoundTrip(t *testing.T) {
	site := domain.Site{
		SiteID:        "s1",
		Name:          "Tower A",
		JobID:         "J-12",
		StartDate:     testDate,
		Status:        domain.SiteActive,
		SupervisorID:  "sup-1",
		FundsReceived: dec("250.00"),
		AuditFields:   domain.NewAuditFields("sup-1", testDate),
	}

	m := ToModelSite(site)
	assert.Equal(t, "sup-1", m.CreatedBy)
	assert.Equal(t, testDate, m.LastUpdatedAt)
	assert.True(t, m.JobID.Valid)
	assert.False(t, m.PONumber.Valid)
	assert.False(t, m.CompletionDate.Valid)

	back, anomalies := ToDomainSite(m)
	assert.Empty(t, anomalies)
	assert.Equal(t, site.JobID, back.JobID)
	assert.Equal(t, site.Status, back.Status)
	assert.Nil(t, back.CompletionDate)
	assert.Equal(t, site.AuditFields, back.AuditFields)
}

func TestSliceConversionsConcatenateAnomalies(t *testing.T) {
	_, anomalies := ToDomainExpenseSlice([]models.Expense{
		{ExpenseID: "a", Category: "food", Amount: dec("1"), Status: "approved"},
		{ExpenseID: "b", Category: "?", Amount: dec("1"), Status: "approved"},
		{ExpenseID: "c", Category: "food", Amount: dec("1"), Status: "?"},
	})

	require.Len(t, anomalies, 2)
	assert.Equal(t, "b", anomalies[0].RecordID)
	assert.Equal(t, "c", anomalies[1].RecordID)
}
