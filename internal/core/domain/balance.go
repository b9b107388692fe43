package domain

import (
	"fmt"

	"github.com/SscSPs/site_expense_tracker/internal/apperrors"
	"github.com/shopspring/decimal"
)

// BalanceSummary is the derived financial snapshot of one site. It is never persisted.
//
// TotalBalance = FundsReceived - TotalExpenditure - TotalAdvances - InvoicesPaid.
// DebitsToWorker and PendingInvoices are informational and do not reduce the balance.
type BalanceSummary struct {
	SiteID           string          `json:"siteID"`
	FundsReceived    decimal.Decimal `json:"fundsReceived"`
	TotalExpenditure decimal.Decimal `json:"totalExpenditure"`
	TotalAdvances    decimal.Decimal `json:"totalAdvances"`
	DebitsToWorker   decimal.Decimal `json:"debitsToWorker"`
	InvoicesPaid     decimal.Decimal `json:"invoicesPaid"`
	PendingInvoices  decimal.Decimal `json:"pendingInvoices"`
	TotalBalance     decimal.Decimal `json:"totalBalance"`
}

// ZeroBalance returns the all-zero summary for a site with no transactions.
func ZeroBalance(siteID string) BalanceSummary {
	return BalanceSummary{
		SiteID:           siteID,
		FundsReceived:    decimal.Zero,
		TotalExpenditure: decimal.Zero,
		TotalAdvances:    decimal.Zero,
		DebitsToWorker:   decimal.Zero,
		InvoicesPaid:     decimal.Zero,
		PendingInvoices:  decimal.Zero,
		TotalBalance:     decimal.Zero,
	}
}

// ExpectedBalance recomputes the balance identity from the component totals.
func (b BalanceSummary) ExpectedBalance() decimal.Decimal {
	return b.FundsReceived.Sub(b.TotalExpenditure).Sub(b.TotalAdvances).Sub(b.InvoicesPaid)
}

// Validate checks that every total except TotalBalance is non-negative and that
// TotalBalance satisfies the balance identity exactly.
func (b BalanceSummary) Validate() error {
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"fundsReceived", b.FundsReceived},
		{"totalExpenditure", b.TotalExpenditure},
		{"totalAdvances", b.TotalAdvances},
		{"debitsToWorker", b.DebitsToWorker},
		{"invoicesPaid", b.InvoicesPaid},
		{"pendingInvoices", b.PendingInvoices},
	}
	for _, f := range fields {
		if f.value.IsNegative() {
			return fmt.Errorf("%w: site %s has negative %s (%s)", apperrors.ErrInconsistentSummary, b.SiteID, f.name, f.value)
		}
	}
	if expected := b.ExpectedBalance(); !b.TotalBalance.Equal(expected) {
		return fmt.Errorf("%w: site %s totalBalance is %s, expected %s",
			apperrors.ErrInconsistentSummary, b.SiteID, b.TotalBalance, expected)
	}
	return nil
}

// Add sums two summaries field by field. The result keeps the receiver's SiteID.
func (b BalanceSummary) Add(other BalanceSummary) BalanceSummary {
	return BalanceSummary{
		SiteID:           b.SiteID,
		FundsReceived:    b.FundsReceived.Add(other.FundsReceived),
		TotalExpenditure: b.TotalExpenditure.Add(other.TotalExpenditure),
		TotalAdvances:    b.TotalAdvances.Add(other.TotalAdvances),
		DebitsToWorker:   b.DebitsToWorker.Add(other.DebitsToWorker),
		InvoicesPaid:     b.InvoicesPaid.Add(other.InvoicesPaid),
		PendingInvoices:  b.PendingInvoices.Add(other.PendingInvoices),
		TotalBalance:     b.TotalBalance.Add(other.TotalBalance),
	}
}

// SiteBalance pairs a site with its computed summary.
type SiteBalance struct {
	Site    Site           `json:"site"`
	Summary BalanceSummary `json:"summary"`
}

// SupervisorBalance aggregates the summaries of every site owned by one supervisor.
type SupervisorBalance struct {
	SupervisorID string         `json:"supervisorID"`
	Sites        []SiteBalance  `json:"sites"`
	Total        BalanceSummary `json:"total"`
}

// BalanceRollup is the admin view across all sites, grouped by supervisor.
type BalanceRollup struct {
	Supervisors []SupervisorBalance `json:"supervisors"`
	GrandTotal  BalanceSummary      `json:"grandTotal"`
}
