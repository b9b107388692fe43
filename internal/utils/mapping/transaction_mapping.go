package mapping

import (
	"encoding/json"

	"github.com/SscSPs/site_expense_tracker/internal/core/domain"
	"github.com/SscSPs/site_expense_tracker/internal/models"
	"github.com/SscSPs/site_expense_tracker/internal/utils/accounting"
)

// --- Expense ---

// ToModelExpense converts a domain Expense to a model Expense
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:   d.ExpenseID,
		SiteID:      d.SiteID,
		Date:        d.Date,
		Description: toNullString(d.Description),
		Category:    string(d.Category),
		Amount:      d.Amount,
		Status:      string(d.Status),
		AuditFields: auditToModel(d.AuditFields),
	}
}

// ToDomainExpense converts a model Expense to a domain Expense and reports every fallback it applied.
func ToDomainExpense(m models.Expense) (domain.Expense, []accounting.Anomaly) {
	n := newRecordNormalizer(m.SiteID, accounting.KindExpense, m.ExpenseID)
	category, ok := domain.ParseExpenseCategory(m.Category)
	if !ok {
		n.report("category", m.Category, "treated as "+string(category))
	}
	return domain.Expense{
		ExpenseID:   m.ExpenseID,
		SiteID:      m.SiteID,
		Date:        m.Date,
		Description: nullString(m.Description),
		Category:    category,
		Amount:      n.money("amount", m.Amount),
		Status:      n.approval(m.Status),
		AuditFields: auditToDomain(m.AuditFields),
	}, n.anomalies
}

// ToDomainExpenseSlice converts model Expenses, concatenating their anomalies.
func ToDomainExpenseSlice(ms []models.Expense) ([]domain.Expense, []accounting.Anomaly) {
	ds := make([]domain.Expense, len(ms))
	var anomalies []accounting.Anomaly
	for i, m := range ms {
		var found []accounting.Anomaly
		ds[i], found = ToDomainExpense(m)
		anomalies = append(anomalies, found...)
	}
	return ds, anomalies
}

// --- Advance ---

// ToModelAdvance converts a domain Advance to a model Advance
func ToModelAdvance(d domain.Advance) models.Advance {
	return models.Advance{
		AdvanceID:     d.AdvanceID,
		SiteID:        d.SiteID,
		Date:          d.Date,
		RecipientName: d.RecipientName,
		RecipientType: string(d.RecipientType),
		Purpose:       string(d.Purpose),
		Amount:        d.Amount,
		Remarks:       toNullString(d.Remarks),
		Status:        string(d.Status),
		AuditFields:   auditToModel(d.AuditFields),
	}
}

// ToDomainAdvance converts a model Advance to a domain Advance. An unrecognized purpose
// becomes PurposeUnknown, which aggregation counts as a regular advance.
func ToDomainAdvance(m models.Advance) (domain.Advance, []accounting.Anomaly) {
	n := newRecordNormalizer(m.SiteID, accounting.KindAdvance, m.AdvanceID)
	recipient, ok := domain.ParseRecipientType(m.RecipientType)
	if !ok {
		n.report("recipient_type", m.RecipientType, "treated as "+string(recipient))
	}
	purpose, ok := domain.ParseAdvancePurpose(m.Purpose)
	if !ok {
		n.report("purpose", m.Purpose, "treated as regular advance")
	}
	return domain.Advance{
		AdvanceID:     m.AdvanceID,
		SiteID:        m.SiteID,
		Date:          m.Date,
		RecipientName: m.RecipientName,
		RecipientType: recipient,
		Purpose:       purpose,
		Amount:        n.money("amount", m.Amount),
		Remarks:       nullString(m.Remarks),
		Status:        n.approval(m.Status),
		AuditFields:   auditToDomain(m.AuditFields),
	}, n.anomalies
}

// ToDomainAdvanceSlice converts model Advances, concatenating their anomalies.
func ToDomainAdvanceSlice(ms []models.Advance) ([]domain.Advance, []accounting.Anomaly) {
	ds := make([]domain.Advance, len(ms))
	var anomalies []accounting.Anomaly
	for i, m := range ms {
		var found []accounting.Anomaly
		ds[i], found = ToDomainAdvance(m)
		anomalies = append(anomalies, found...)
	}
	return ds, anomalies
}

// --- FundsReceived ---

// ToModelFundsReceived converts a domain FundsReceived to a model FundsReceived
func ToModelFundsReceived(d domain.FundsReceived) models.FundsReceived {
	return models.FundsReceived{
		FundsID:     d.FundsID,
		SiteID:      d.SiteID,
		Date:        d.Date,
		Amount:      d.Amount,
		Reference:   toNullString(d.Reference),
		Method:      toNullString(d.Method),
		AuditFields: auditToModel(d.AuditFields),
	}
}

// ToDomainFundsReceived converts a model FundsReceived to a domain FundsReceived
func ToDomainFundsReceived(m models.FundsReceived) (domain.FundsReceived, []accounting.Anomaly) {
	n := newRecordNormalizer(m.SiteID, accounting.KindFunds, m.FundsID)
	return domain.FundsReceived{
		FundsID:     m.FundsID,
		SiteID:      m.SiteID,
		Date:        m.Date,
		Amount:      n.money("amount", m.Amount),
		Reference:   nullString(m.Reference),
		Method:      nullString(m.Method),
		AuditFields: auditToDomain(m.AuditFields),
	}, n.anomalies
}

// ToDomainFundsReceivedSlice converts model FundsReceived rows, concatenating their anomalies.
func ToDomainFundsReceivedSlice(ms []models.FundsReceived) ([]domain.FundsReceived, []accounting.Anomaly) {
	ds := make([]domain.FundsReceived, len(ms))
	var anomalies []accounting.Anomaly
	for i, m := range ms {
		var found []accounting.Anomaly
		ds[i], found = ToDomainFundsReceived(m)
		anomalies = append(anomalies, found...)
	}
	return ds, anomalies
}

// --- Invoice ---

// ToModelInvoice converts a domain Invoice to a model Invoice. Empty bank details are stored as NULL.
func ToModelInvoice(d domain.Invoice) (models.Invoice, error) {
	m := models.Invoice{
		InvoiceID:     d.InvoiceID,
		SiteID:        d.SiteID,
		Date:          d.Date,
		PartyName:     d.PartyName,
		Material:      toNullString(d.Material),
		Quantity:      toNullDecimal(d.Quantity),
		Rate:          toNullDecimal(d.Rate),
		GSTPercent:    toNullDecimal(d.GSTPercent),
		GrossAmount:   toNullDecimal(d.GrossAmount),
		NetAmount:     toNullDecimal(d.NetAmount),
		PaymentStatus: string(d.PaymentStatus),
		ApprovedBy:    toNullString(string(d.ApprovedBy)),
		AuditFields:   auditToModel(d.AuditFields),
	}
	if d.BankDetails != (domain.BankDetails{}) {
		raw, err := json.Marshal(d.BankDetails)
		if err != nil {
			return models.Invoice{}, err
		}
		m.BankDetails = raw
	}
	return m, nil
}

// ToDomainInvoice converts a model Invoice to a domain Invoice. Missing gross or net
// amounts are recomputed from quantity, rate and GST; unreadable bank details are dropped.
func ToDomainInvoice(m models.Invoice) (domain.Invoice, []accounting.Anomaly) {
	n := newRecordNormalizer(m.SiteID, accounting.KindInvoice, m.InvoiceID)

	d := domain.Invoice{
		InvoiceID:   m.InvoiceID,
		SiteID:      m.SiteID,
		Date:        m.Date,
		PartyName:   m.PartyName,
		Material:    nullString(m.Material),
		Quantity:    n.optionalQuantity("quantity", m.Quantity),
		Rate:        n.optionalQuantity("rate", m.Rate),
		GSTPercent:  n.optionalQuantity("gst_percent", m.GSTPercent),
		AuditFields: auditToDomain(m.AuditFields),
	}

	gross, net := domain.InvoiceAmounts(d.Quantity, d.Rate, d.GSTPercent)
	if m.GrossAmount.Valid {
		d.GrossAmount = n.money("gross_amount", m.GrossAmount.Decimal)
	} else {
		d.GrossAmount = gross
		n.report("gross_amount", "NULL", "recomputed as "+gross.StringFixed(domain.MoneyPlaces))
	}
	if m.NetAmount.Valid {
		d.NetAmount = n.money("net_amount", m.NetAmount.Decimal)
	} else {
		d.NetAmount = net
		n.report("net_amount", "NULL", "recomputed as "+net.StringFixed(domain.MoneyPlaces))
	}

	status, ok := domain.ParsePaymentStatus(m.PaymentStatus)
	if !ok {
		n.report("payment_status", m.PaymentStatus, "treated as "+string(status))
	}
	d.PaymentStatus = status

	approver, ok := domain.ParseApproverType(nullString(m.ApprovedBy))
	if !ok {
		n.report("approved_by", m.ApprovedBy.String, "treated as "+string(approver))
	}
	d.ApprovedBy = approver

	if len(m.BankDetails) > 0 {
		if err := json.Unmarshal(m.BankDetails, &d.BankDetails); err != nil {
			d.BankDetails = domain.BankDetails{}
			n.report("bank_details", string(m.BankDetails), "unreadable, dropped")
		}
	}
	return d, n.anomalies
}

// ToDomainInvoiceSlice converts model Invoices, concatenating their anomalies.
func ToDomainInvoiceSlice(ms []models.Invoice) ([]domain.Invoice, []accounting.Anomaly) {
	ds := make([]domain.Invoice, len(ms))
	var anomalies []accounting.Anomaly
	for i, m := range ms {
		var found []accounting.Anomaly
		ds[i], found = ToDomainInvoice(m)
		anomalies = append(anomalies, found...)
	}
	return ds, anomalies
}
