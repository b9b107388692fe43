package accounting

import "github.com/SscSPs/site_expense_tracker/internal/core/domain"

// workerDebitPurposes is the closed set of advance purposes charged against the worker.
// A new purpose must be added here deliberately; anything else is a regular advance.
var workerDebitPurposes = map[domain.AdvancePurpose]struct{}{
	domain.PurposeSafetyShoes: {},
	domain.PurposeTools:       {},
	domain.PurposeOther:       {},
}

// IsWorkerDebit reports whether an advance is a debit to the worker rather than a cash advance.
func IsWorkerDebit(a domain.Advance) bool {
	_, ok := workerDebitPurposes[a.Purpose]
	return ok
}

// InvoiceBucket places an invoice in the paid or pending bucket.
// Anything other than paid is pending so an invoice is never dropped.
func InvoiceBucket(inv domain.Invoice) domain.PaymentStatus {
	if inv.PaymentStatus == domain.PaymentPaid {
		return domain.PaymentPaid
	}
	return domain.PaymentPending
}

// InvoiceApprover attributes an invoice to head office or the supervisor, defaulting to supervisor.
func InvoiceApprover(inv domain.Invoice) domain.ApproverType {
	if inv.ApprovedBy == domain.ApproverHeadOffice {
		return domain.ApproverHeadOffice
	}
	return domain.ApproverSupervisor
}

// CountsTowardTotals reports whether a reviewed record has actually left site funds.
func CountsTowardTotals(status domain.ApprovalStatus) bool {
	return status == domain.ApprovalApproved
}
