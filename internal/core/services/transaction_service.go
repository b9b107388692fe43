package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/site_expense_tracker/internal/apperrors"
	"github.com/SscSPs/site_expense_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/site_expense_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/site_expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/site_expense_tracker/internal/dto"
	"github.com/SscSPs/site_expense_tracker/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var maxGSTPercent = decimal.NewFromInt(100)

// transactionService implements the TransactionSvcFacade interface
type transactionService struct {
	BaseService
	siteRepo    portsrepo.SiteReader
	expenseRepo portsrepo.ExpenseRepositoryFacade
	advanceRepo portsrepo.AdvanceRepositoryFacade
	fundsRepo   portsrepo.FundsRepositoryFacade
	invoiceRepo portsrepo.InvoiceRepositoryFacade
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

// WithTransactionClock overrides the clock used for audit stamps.
func WithTransactionClock(clock ClockFunc) TransactionServiceOption {
	return func(s *transactionService) {
		s.Clock = clock
	}
}

// NewTransactionService creates a new transaction service with the provided options
func NewTransactionService(repos portsrepo.RepositoryProvider, options ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		siteRepo:    repos.SiteRepo,
		expenseRepo: repos.ExpenseRepo,
		advanceRepo: repos.AdvanceRepo,
		fundsRepo:   repos.FundsRepo,
		invoiceRepo: repos.InvoiceRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// requireSite makes sure transactions are only attached to existing sites.
func (s *transactionService) requireSite(ctx context.Context, siteID string) error {
	if _, err := s.siteRepo.FindSiteByID(ctx, siteID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: site %s", apperrors.ErrNotFound, siteID)
		}
		s.LogError(ctx, err, "Failed to look up site", slog.String("site_id", siteID))
		return fmt.Errorf("failed to look up site: %w", err)
	}
	return nil
}

// --- Recording ---

// RecordExpense records a pending expense against a site.
func (s *transactionService) RecordExpense(ctx context.Context, siteID string, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, error) {
	date, err := parseDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	category, ok := domain.ParseExpenseCategory(req.Category)
	if !ok {
		return nil, fmt.Errorf("%w: unknown expense category %q", apperrors.ErrValidation, req.Category)
	}
	if err := validateMoney("amount", req.Amount); err != nil {
		return nil, err
	}
	if err := s.requireSite(ctx, siteID); err != nil {
		return nil, err
	}

	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		SiteID:      siteID,
		Date:        date,
		Description: strings.TrimSpace(req.Description),
		Category:    category,
		Amount:      req.Amount,
		Status:      domain.ApprovalPending,
		AuditFields: domain.NewAuditFields(creatorUserID, s.Now()),
	}
	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense", slog.String("site_id", siteID))
		return nil, fmt.Errorf("failed to record expense: %w", err)
	}

	s.LogInfo(ctx, "Expense recorded",
		slog.String("site_id", siteID),
		slog.String("expense_id", expense.ExpenseID),
		slog.String("amount", expense.Amount.String()))
	return &expense, nil
}

// RecordAdvance records a pending advance against a site.
func (s *transactionService) RecordAdvance(ctx context.Context, siteID string, req dto.CreateAdvanceRequest, creatorUserID string) (*domain.Advance, error) {
	date, err := parseDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	recipient, ok := domain.ParseRecipientType(req.RecipientType)
	if !ok {
		return nil, fmt.Errorf("%w: unknown recipient type %q", apperrors.ErrValidation, req.RecipientType)
	}
	purpose, ok := domain.ParseAdvancePurpose(req.Purpose)
	if !ok {
		return nil, fmt.Errorf("%w: unknown advance purpose %q", apperrors.ErrValidation, req.Purpose)
	}
	name := strings.TrimSpace(req.RecipientName)
	if name == "" {
		return nil, fmt.Errorf("%w: recipientName is required", apperrors.ErrValidation)
	}
	if err := validateMoney("amount", req.Amount); err != nil {
		return nil, err
	}
	if err := s.requireSite(ctx, siteID); err != nil {
		return nil, err
	}

	advance := domain.Advance{
		AdvanceID:     uuid.NewString(),
		SiteID:        siteID,
		Date:          date,
		RecipientName: name,
		RecipientType: recipient,
		Purpose:       purpose,
		Amount:        req.Amount,
		Remarks:       strings.TrimSpace(req.Remarks),
		Status:        domain.ApprovalPending,
		AuditFields:   domain.NewAuditFields(creatorUserID, s.Now()),
	}
	if err := s.advanceRepo.SaveAdvance(ctx, advance); err != nil {
		s.LogError(ctx, err, "Failed to save advance", slog.String("site_id", siteID))
		return nil, fmt.Errorf("failed to record advance: %w", err)
	}

	s.LogInfo(ctx, "Advance recorded",
		slog.String("site_id", siteID),
		slog.String("advance_id", advance.AdvanceID),
		slog.String("purpose", string(advance.Purpose)),
		slog.Bool("worker_debit", accounting.IsWorkerDebit(advance)))
	return &advance, nil
}

// RecordFundsReceived records money credited to a site and raises its cumulative counter.
func (s *transactionService) RecordFundsReceived(ctx context.Context, siteID string, req dto.CreateFundsReceivedRequest, creatorUserID string) (*domain.FundsReceived, error) {
	date, err := parseDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	if err := validateMoney("amount", req.Amount); err != nil {
		return nil, err
	}
	if err := s.requireSite(ctx, siteID); err != nil {
		return nil, err
	}

	funds := domain.FundsReceived{
		FundsID:     uuid.NewString(),
		SiteID:      siteID,
		Date:        date,
		Amount:      req.Amount,
		Reference:   strings.TrimSpace(req.Reference),
		Method:      strings.TrimSpace(req.Method),
		AuditFields: domain.NewAuditFields(creatorUserID, s.Now()),
	}
	if err := s.fundsRepo.SaveFundsReceived(ctx, funds); err != nil {
		s.LogError(ctx, err, "Failed to save funds received", slog.String("site_id", siteID))
		return nil, fmt.Errorf("failed to record funds received: %w", err)
	}

	s.LogInfo(ctx, "Funds received recorded",
		slog.String("site_id", siteID),
		slog.String("funds_id", funds.FundsID),
		slog.String("amount", funds.Amount.String()))
	return &funds, nil
}

// RecordInvoice records a pending vendor invoice, deriving gross and net amounts.
func (s *transactionService) RecordInvoice(ctx context.Context, siteID string, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	date, err := parseDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	party := strings.TrimSpace(req.PartyName)
	if party == "" {
		return nil, fmt.Errorf("%w: partyName is required", apperrors.ErrValidation)
	}
	if err := validateQuantity("quantity", req.Quantity); err != nil {
		return nil, err
	}
	if err := validateQuantity("rate", req.Rate); err != nil {
		return nil, err
	}
	if req.GSTPercent.IsNegative() || req.GSTPercent.GreaterThan(maxGSTPercent) {
		return nil, fmt.Errorf("%w: gstPercent must be between 0 and 100", apperrors.ErrValidation)
	}
	if !domain.HasAtMostPlaces(req.GSTPercent, domain.PercentPlaces) {
		return nil, fmt.Errorf("%w: gstPercent must have at most %d decimal places", apperrors.ErrValidation, domain.PercentPlaces)
	}
	approver, ok := domain.ParseApproverType(req.ApprovedBy)
	if !ok {
		return nil, fmt.Errorf("%w: unknown approver %q", apperrors.ErrValidation, req.ApprovedBy)
	}
	if err := s.requireSite(ctx, siteID); err != nil {
		return nil, err
	}

	gross, net := domain.InvoiceAmounts(req.Quantity, req.Rate, req.GSTPercent)
	invoice := domain.Invoice{
		InvoiceID:     uuid.NewString(),
		SiteID:        siteID,
		Date:          date,
		PartyName:     party,
		Material:      strings.TrimSpace(req.Material),
		Quantity:      req.Quantity,
		Rate:          req.Rate,
		GSTPercent:    req.GSTPercent,
		GrossAmount:   gross,
		NetAmount:     net,
		PaymentStatus: domain.PaymentPending,
		ApprovedBy:    approver,
		AuditFields:   domain.NewAuditFields(creatorUserID, s.Now()),
	}
	if req.BankDetails != nil {
		invoice.BankDetails = domain.BankDetails{
			AccountName:   strings.TrimSpace(req.BankDetails.AccountName),
			AccountNumber: strings.TrimSpace(req.BankDetails.AccountNumber),
			IFSC:          strings.ToUpper(strings.TrimSpace(req.BankDetails.IFSC)),
			BankName:      strings.TrimSpace(req.BankDetails.BankName),
		}
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		s.LogError(ctx, err, "Failed to save invoice", slog.String("site_id", siteID))
		return nil, fmt.Errorf("failed to record invoice: %w", err)
	}

	s.LogInfo(ctx, "Invoice recorded",
		slog.String("site_id", siteID),
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("net_amount", invoice.NetAmount.String()))
	return &invoice, nil
}

// --- Listing ---

// ListExpenses lists a site's expenses page by page.
func (s *transactionService) ListExpenses(ctx context.Context, siteID string, params dto.ListTransactionsParams) (*dto.ListExpensesResponse, error) {
	if err := s.requireSite(ctx, siteID); err != nil {
		return nil, err
	}
	expenses, next, err := s.expenseRepo.ListExpensesBySite(ctx, siteID, params.Limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return dto.ToListExpensesResponse(expenses, next), nil
}

// ListAdvances lists a site's advances page by page, flagging worker debits.
func (s *transactionService) ListAdvances(ctx context.Context, siteID string, params dto.ListTransactionsParams) (*dto.ListAdvancesResponse, error) {
	if err := s.requireSite(ctx, siteID); err != nil {
		return nil, err
	}
	advances, next, err := s.advanceRepo.ListAdvancesBySite(ctx, siteID, params.Limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list advances: %w", err)
	}
	resp := &dto.ListAdvancesResponse{
		Advances:  make([]dto.AdvanceResponse, len(advances)),
		NextToken: next,
	}
	for i, a := range advances {
		resp.Advances[i] = dto.ToAdvanceResponse(&a, accounting.IsWorkerDebit(a))
	}
	return resp, nil
}

// ListFundsReceived lists a site's funds-received records page by page.
func (s *transactionService) ListFundsReceived(ctx context.Context, siteID string, params dto.ListTransactionsParams) (*dto.ListFundsReceivedResponse, error) {
	if err := s.requireSite(ctx, siteID); err != nil {
		return nil, err
	}
	funds, next, err := s.fundsRepo.ListFundsBySite(ctx, siteID, params.Limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list funds received: %w", err)
	}
	return dto.ToListFundsReceivedResponse(funds, next), nil
}

// ListInvoices lists a site's invoices page by page.
func (s *transactionService) ListInvoices(ctx context.Context, siteID string, params dto.ListTransactionsParams) (*dto.ListInvoicesResponse, error) {
	if err := s.requireSite(ctx, siteID); err != nil {
		return nil, err
	}
	invoices, next, err := s.invoiceRepo.ListInvoicesBySite(ctx, siteID, params.Limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return dto.ToListInvoicesResponse(invoices, next), nil
}

// --- Review ---

// parseDecision accepts only the two terminal review outcomes.
func parseDecision(raw string) (domain.ApprovalStatus, error) {
	status, ok := domain.ParseApprovalStatus(raw)
	if !ok || status == domain.ApprovalPending {
		return "", fmt.Errorf("%w: status must be approved or rejected", apperrors.ErrValidation)
	}
	return status, nil
}

// ReviewExpense approves or rejects a pending expense.
func (s *transactionService) ReviewExpense(ctx context.Context, siteID, expenseID string, req dto.ReviewRequest, reviewerUserID string) (*domain.Expense, error) {
	decision, err := parseDecision(req.Status)
	if err != nil {
		return nil, err
	}
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.SiteID != siteID {
		return nil, fmt.Errorf("%w: expense %s on site %s", apperrors.ErrNotFound, expenseID, siteID)
	}
	if expense.Status != domain.ApprovalPending {
		return nil, fmt.Errorf("%w: expense %s is already %s", apperrors.ErrInvalidTransition, expenseID, expense.Status)
	}

	now := s.Now()
	if err := s.expenseRepo.UpdateExpenseStatus(ctx, expenseID, domain.ApprovalPending, decision, reviewerUserID, now); err != nil {
		if !errors.Is(err, apperrors.ErrInvalidTransition) {
			s.LogError(ctx, err, "Failed to update expense status", slog.String("expense_id", expenseID))
		}
		return nil, fmt.Errorf("failed to review expense: %w", err)
	}
	expense.Status = decision
	expense.Touch(reviewerUserID, now)

	s.LogInfo(ctx, "Expense reviewed",
		slog.String("site_id", siteID),
		slog.String("expense_id", expenseID),
		slog.String("status", string(decision)))
	return expense, nil
}

// ReviewAdvance approves or rejects a pending advance.
func (s *transactionService) ReviewAdvance(ctx context.Context, siteID, advanceID string, req dto.ReviewRequest, reviewerUserID string) (*domain.Advance, error) {
	decision, err := parseDecision(req.Status)
	if err != nil {
		return nil, err
	}
	advance, err := s.advanceRepo.FindAdvanceByID(ctx, advanceID)
	if err != nil {
		return nil, err
	}
	if advance.SiteID != siteID {
		return nil, fmt.Errorf("%w: advance %s on site %s", apperrors.ErrNotFound, advanceID, siteID)
	}
	if advance.Status != domain.ApprovalPending {
		return nil, fmt.Errorf("%w: advance %s is already %s", apperrors.ErrInvalidTransition, advanceID, advance.Status)
	}

	now := s.Now()
	if err := s.advanceRepo.UpdateAdvanceStatus(ctx, advanceID, domain.ApprovalPending, decision, reviewerUserID, now); err != nil {
		if !errors.Is(err, apperrors.ErrInvalidTransition) {
			s.LogError(ctx, err, "Failed to update advance status", slog.String("advance_id", advanceID))
		}
		return nil, fmt.Errorf("failed to review advance: %w", err)
	}
	advance.Status = decision
	advance.Touch(reviewerUserID, now)

	s.LogInfo(ctx, "Advance reviewed",
		slog.String("site_id", siteID),
		slog.String("advance_id", advanceID),
		slog.String("status", string(decision)))
	return advance, nil
}

// MarkInvoicePaid settles a pending invoice. Payment cannot be undone.
func (s *transactionService) MarkInvoicePaid(ctx context.Context, siteID, invoiceID string, userID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.SiteID != siteID {
		return nil, fmt.Errorf("%w: invoice %s on site %s", apperrors.ErrNotFound, invoiceID, siteID)
	}
	if accounting.InvoiceBucket(*invoice) == domain.PaymentPaid {
		return nil, fmt.Errorf("%w: invoice %s is already paid", apperrors.ErrInvalidTransition, invoiceID)
	}

	now := s.Now()
	if err := s.invoiceRepo.UpdateInvoicePaymentStatus(ctx, invoiceID, domain.PaymentPending, domain.PaymentPaid, userID, now); err != nil {
		if !errors.Is(err, apperrors.ErrInvalidTransition) {
			s.LogError(ctx, err, "Failed to update invoice payment status", slog.String("invoice_id", invoiceID))
		}
		return nil, fmt.Errorf("failed to mark invoice paid: %w", err)
	}
	invoice.PaymentStatus = domain.PaymentPaid
	invoice.Touch(userID, now)

	s.LogInfo(ctx, "Invoice marked paid",
		slog.String("site_id", siteID),
		slog.String("invoice_id", invoiceID),
		slog.String("approved_by", string(accounting.InvoiceApprover(*invoice))))
	return invoice, nil
}
