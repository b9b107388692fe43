package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/site_expense_tracker/internal/core/domain"
	"github.com/SscSPs/site_expense_tracker/internal/utils/accounting"
	"github.com/stretchr/testify/mock"
)

// --- Mock SiteRepository ---
type MockSiteRepository struct {
	mock.Mock
}

func (m *MockSiteRepository) FindSiteByID(ctx context.Context, siteID string) (*domain.Site, error) {
	args := m.Called(ctx, siteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Site), args.Error(1)
}

func (m *MockSiteRepository) ListSites(ctx context.Context, supervisorID string, limit int, offset int) ([]domain.Site, error) {
	args := m.Called(ctx, supervisorID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Site), args.Error(1)
}

func (m *MockSiteRepository) SaveSite(ctx context.Context, site domain.Site) error {
	args := m.Called(ctx, site)
	return args.Error(0)
}

func (m *MockSiteRepository) UpdateSiteCompletion(ctx context.Context, site domain.Site) error {
	args := m.Called(ctx, site)
	return args.Error(0)
}

// --- Mock ExpenseRepository ---
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListExpensesBySite(ctx context.Context, siteID string, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	args := m.Called(ctx, siteID, limit, nextToken)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Expense), next, args.Error(2)
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) UpdateExpenseStatus(ctx context.Context, expenseID string, from, to domain.ApprovalStatus, userID string, at time.Time) error {
	args := m.Called(ctx, expenseID, from, to, userID, at)
	return args.Error(0)
}

// --- Mock AdvanceRepository ---
type MockAdvanceRepository struct {
	mock.Mock
}

func (m *MockAdvanceRepository) FindAdvanceByID(ctx context.Context, advanceID string) (*domain.Advance, error) {
	args := m.Called(ctx, advanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Advance), args.Error(1)
}

func (m *MockAdvanceRepository) ListAdvancesBySite(ctx context.Context, siteID string, limit int, nextToken *string) ([]domain.Advance, *string, error) {
	args := m.Called(ctx, siteID, limit, nextToken)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Advance), next, args.Error(2)
}

func (m *MockAdvanceRepository) SaveAdvance(ctx context.Context, advance domain.Advance) error {
	args := m.Called(ctx, advance)
	return args.Error(0)
}

func (m *MockAdvanceRepository) UpdateAdvanceStatus(ctx context.Context, advanceID string, from, to domain.ApprovalStatus, userID string, at time.Time) error {
	args := m.Called(ctx, advanceID, from, to, userID, at)
	return args.Error(0)
}

// --- Mock FundsRepository ---
type MockFundsRepository struct {
	mock.Mock
}

func (m *MockFundsRepository) ListFundsBySite(ctx context.Context, siteID string, limit int, nextToken *string) ([]domain.FundsReceived, *string, error) {
	args := m.Called(ctx, siteID, limit, nextToken)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.FundsReceived), next, args.Error(2)
}

func (m *MockFundsRepository) SaveFundsReceived(ctx context.Context, funds domain.FundsReceived) error {
	args := m.Called(ctx, funds)
	return args.Error(0)
}

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoicesBySite(ctx context.Context, siteID string, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	args := m.Called(ctx, siteID, limit, nextToken)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Invoice), next, args.Error(2)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoicePaymentStatus(ctx context.Context, invoiceID string, from, to domain.PaymentStatus, userID string, at time.Time) error {
	args := m.Called(ctx, invoiceID, from, to, userID, at)
	return args.Error(0)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) LoadSiteLedger(ctx context.Context, siteID string) (accounting.SiteLedger, []accounting.Anomaly, error) {
	args := m.Called(ctx, siteID)
	var anomalies []accounting.Anomaly
	if args.Get(1) != nil {
		anomalies = args.Get(1).([]accounting.Anomaly)
	}
	return args.Get(0).(accounting.SiteLedger), anomalies, args.Error(2)
}
