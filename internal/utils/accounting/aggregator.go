package accounting

import (
	"github.com/SscSPs/site_expense_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ComputeBalance reduces a site's ledger into its BalanceSummary.
//
// Funds are summed unfiltered. Expenses and both advance partitions count only when
// approved. Invoices are summed by net amount into paid and pending; the approver does
// not affect inclusion. The result depends only on the multiset of records, never on
// their order, and an empty ledger yields the all-zero summary.
func ComputeBalance(ledger SiteLedger) domain.BalanceSummary {
	s := domain.ZeroBalance(ledger.SiteID)

	for _, f := range ledger.Funds {
		s.FundsReceived = s.FundsReceived.Add(f.Amount)
	}

	for _, e := range ledger.Expenses {
		if CountsTowardTotals(e.Status) {
			s.TotalExpenditure = s.TotalExpenditure.Add(e.Amount)
		}
	}

	for _, a := range ledger.Advances {
		if !CountsTowardTotals(a.Status) {
			continue
		}
		if IsWorkerDebit(a) {
			s.DebitsToWorker = s.DebitsToWorker.Add(a.Amount)
		} else {
			s.TotalAdvances = s.TotalAdvances.Add(a.Amount)
		}
	}

	for _, inv := range ledger.Invoices {
		switch InvoiceBucket(inv) {
		case domain.PaymentPaid:
			s.InvoicesPaid = s.InvoicesPaid.Add(inv.NetAmount)
		default:
			s.PendingInvoices = s.PendingInvoices.Add(inv.NetAmount)
		}
	}

	s.TotalBalance = s.ExpectedBalance()
	return s
}

// SplitPaidByApprover divides the paid invoice total between head office and supervisor.
// The two parts always sum to ComputeBalance(ledger).InvoicesPaid.
func SplitPaidByApprover(ledger SiteLedger) (headOffice, supervisor decimal.Decimal) {
	headOffice, supervisor = decimal.Zero, decimal.Zero
	for _, inv := range ledger.Invoices {
		if InvoiceBucket(inv) != domain.PaymentPaid {
			continue
		}
		if InvoiceApprover(inv) == domain.ApproverHeadOffice {
			headOffice = headOffice.Add(inv.NetAmount)
		} else {
			supervisor = supervisor.Add(inv.NetAmount)
		}
	}
	return headOffice, supervisor
}
