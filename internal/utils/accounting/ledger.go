package accounting

import "github.com/SscSPs/site_expense_tracker/internal/core/domain"

// SiteLedger is the full, already-normalized transaction set of exactly one site.
// Build it with NewSiteLedger so that every record is guaranteed to belong to SiteID.
type SiteLedger struct {
	SiteID   string
	Expenses []domain.Expense
	Advances []domain.Advance
	Funds    []domain.FundsReceived
	Invoices []domain.Invoice
}

// NewSiteLedger scopes the four streams to siteID. Records that belong to another
// site are left out and reported; they are a caller bug, not a reason to fail.
func NewSiteLedger(siteID string, expenses []domain.Expense, advances []domain.Advance, funds []domain.FundsReceived, invoices []domain.Invoice) (SiteLedger, []Anomaly) {
	var anomalies []Anomaly
	foreign := func(kind RecordKind, id, owner string) {
		anomalies = append(anomalies, Anomaly{
			SiteID:     siteID,
			Kind:       kind,
			RecordID:   id,
			Field:      "site_id",
			RawValue:   owner,
			Resolution: "excluded from site ledger",
		})
	}

	ledger := SiteLedger{SiteID: siteID}
	for _, e := range expenses {
		if e.SiteID != siteID {
			foreign(KindExpense, e.ExpenseID, e.SiteID)
			continue
		}
		ledger.Expenses = append(ledger.Expenses, e)
	}
	for _, a := range advances {
		if a.SiteID != siteID {
			foreign(KindAdvance, a.AdvanceID, a.SiteID)
			continue
		}
		ledger.Advances = append(ledger.Advances, a)
	}
	for _, f := range funds {
		if f.SiteID != siteID {
			foreign(KindFunds, f.FundsID, f.SiteID)
			continue
		}
		ledger.Funds = append(ledger.Funds, f)
	}
	for _, inv := range invoices {
		if inv.SiteID != siteID {
			foreign(KindInvoice, inv.InvoiceID, inv.SiteID)
			continue
		}
		ledger.Invoices = append(ledger.Invoices, inv)
	}
	return ledger, anomalies
}

// IsEmpty reports whether the site has no transactions at all.
func (l SiteLedger) IsEmpty() bool {
	return len(l.Expenses) == 0 && len(l.Advances) == 0 && len(l.Funds) == 0 && len(l.Invoices) == 0
}
