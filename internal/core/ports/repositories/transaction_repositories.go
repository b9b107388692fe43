package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/site_expense_tracker/internal/core/domain"
	"github.com/SscSPs/site_expense_tracker/internal/utils/accounting"
)

// Paginated list methods return the page and a token for the next page (nil on the last page).
// Records are ordered by record date then creation time, newest first.

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)
	ListExpensesBySite(ctx context.Context, siteID string, limit int, nextToken *string) ([]domain.Expense, *string, error)
}

// ExpenseWriter defines write operations for expense data
type ExpenseWriter interface {
	SaveExpense(ctx context.Context, expense domain.Expense) error

	// UpdateExpenseStatus moves an expense from one approval status to another.
	// It fails with ErrInvalidTransition if the stored status is no longer from.
	UpdateExpenseStatus(ctx context.Context, expenseID string, from, to domain.ApprovalStatus, userID string, at time.Time) error
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}

// AdvanceReader defines read operations for advance data
type AdvanceReader interface {
	FindAdvanceByID(ctx context.Context, advanceID string) (*domain.Advance, error)
	ListAdvancesBySite(ctx context.Context, siteID string, limit int, nextToken *string) ([]domain.Advance, *string, error)
}

// AdvanceWriter defines write operations for advance data
type AdvanceWriter interface {
	SaveAdvance(ctx context.Context, advance domain.Advance) error
	UpdateAdvanceStatus(ctx context.Context, advanceID string, from, to domain.ApprovalStatus, userID string, at time.Time) error
}

// AdvanceRepositoryFacade combines all advance-related repository interfaces
type AdvanceRepositoryFacade interface {
	AdvanceReader
	AdvanceWriter
}

// FundsReader defines read operations for funds received
type FundsReader interface {
	ListFundsBySite(ctx context.Context, siteID string, limit int, nextToken *string) ([]domain.FundsReceived, *string, error)
}

// FundsWriter defines write operations for funds received
type FundsWriter interface {
	// SaveFundsReceived persists the record and adds its amount to the site's
	// cumulative counter in the same database transaction.
	SaveFundsReceived(ctx context.Context, funds domain.FundsReceived) error
}

// FundsRepositoryFacade combines all funds-related repository interfaces
type FundsRepositoryFacade interface {
	FundsReader
	FundsWriter
}

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	ListInvoicesBySite(ctx context.Context, siteID string, limit int, nextToken *string) ([]domain.Invoice, *string, error)
}

// InvoiceWriter defines write operations for invoice data
type InvoiceWriter interface {
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// UpdateInvoicePaymentStatus fails with ErrInvalidTransition if the stored status is no longer from.
	UpdateInvoicePaymentStatus(ctx context.Context, invoiceID string, from, to domain.PaymentStatus, userID string, at time.Time) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}

// LedgerReader loads the complete transaction set of a site for balance computation.
type LedgerReader interface {
	// LoadSiteLedger reads all four transaction streams of a site from one consistent
	// snapshot. Normalization findings are returned rather than logged.
	LoadSiteLedger(ctx context.Context, siteID string) (accounting.SiteLedger, []accounting.Anomaly, error)
}
