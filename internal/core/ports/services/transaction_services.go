package services

import (
	"context"

	"github.com/SscSPs/site_expense_tracker/internal/core/domain"
	"github.com/SscSPs/site_expense_tracker/internal/dto"
)

// TransactionRecorderSvc records the four kinds of site transactions.
type TransactionRecorderSvc interface {
	RecordExpense(ctx context.Context, siteID string, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, error)
	RecordAdvance(ctx context.Context, siteID string, req dto.CreateAdvanceRequest, creatorUserID string) (*domain.Advance, error)

	// RecordFundsReceived also raises the site's cumulative funds counter.
	RecordFundsReceived(ctx context.Context, siteID string, req dto.CreateFundsReceivedRequest, creatorUserID string) (*domain.FundsReceived, error)

	// RecordInvoice derives gross and net amounts from quantity, rate and GST.
	RecordInvoice(ctx context.Context, siteID string, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error)
}

// TransactionReaderSvc lists the transactions of a site page by page.
type TransactionReaderSvc interface {
	ListExpenses(ctx context.Context, siteID string, params dto.ListTransactionsParams) (*dto.ListExpensesResponse, error)
	ListAdvances(ctx context.Context, siteID string, params dto.ListTransactionsParams) (*dto.ListAdvancesResponse, error)
	ListFundsReceived(ctx context.Context, siteID string, params dto.ListTransactionsParams) (*dto.ListFundsReceivedResponse, error)
	ListInvoices(ctx context.Context, siteID string, params dto.ListTransactionsParams) (*dto.ListInvoicesResponse, error)
}

// TransactionReviewerSvc moves records through their approval and payment workflows.
type TransactionReviewerSvc interface {
	// ReviewExpense approves or rejects a pending expense.
	ReviewExpense(ctx context.Context, siteID, expenseID string, req dto.ReviewRequest, reviewerUserID string) (*domain.Expense, error)

	// ReviewAdvance approves or rejects a pending advance.
	ReviewAdvance(ctx context.Context, siteID, advanceID string, req dto.ReviewRequest, reviewerUserID string) (*domain.Advance, error)

	// MarkInvoicePaid settles a pending invoice.
	MarkInvoicePaid(ctx context.Context, siteID, invoiceID string, userID string) (*domain.Invoice, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionRecorderSvc
	TransactionReaderSvc
	TransactionReviewerSvc
}
