package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/site_expense_tracker/internal/apperrors"
	"github.com/SscSPs/site_expense_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/site_expense_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/site_expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/site_expense_tracker/internal/core/services"
	"github.com/SscSPs/site_expense_tracker/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	siteRepo    *MockSiteRepository
	expenseRepo *MockExpenseRepository
	advanceRepo *MockAdvanceRepository
	fundsRepo   *MockFundsRepository
	invoiceRepo *MockInvoiceRepository
	service     portssvc.TransactionSvcFacade
	ctx         context.Context
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.siteRepo = new(MockSiteRepository)
	suite.expenseRepo = new(MockExpenseRepository)
	suite.advanceRepo = new(MockAdvanceRepository)
	suite.fundsRepo = new(MockFundsRepository)
	suite.invoiceRepo = new(MockInvoiceRepository)
	suite.ctx = context.Background()
	suite.service = services.NewTransactionService(portsrepo.RepositoryProvider{
		SiteRepo:    suite.siteRepo,
		ExpenseRepo: suite.expenseRepo,
		AdvanceRepo: suite.advanceRepo,
		FundsRepo:   suite.fundsRepo,
		InvoiceRepo: suite.invoiceRepo,
	}, services.WithTransactionClock(fixedClock))
}

func (suite *TransactionServiceTestSuite) siteExists(siteID string) {
	suite.siteRepo.On("FindSiteByID", suite.ctx, siteID).Return(activeSite(siteID), nil)
}

// --- Recording ---

func (suite *TransactionServiceTestSuite) TestRecordExpense_Success() {
	suite.siteExists("s1")
	req := dto.CreateExpenseRequest{
		Date:        "2024-03-01",
		Description: " cement ",
		Category:    "Materials",
		Amount:      decimal.RequireFromString("1500.50"),
	}
	suite.expenseRepo.On("SaveExpense", suite.ctx, mock.MatchedBy(func(e domain.Expense) bool {
		return e.SiteID == "s1" && e.Category == domain.CategoryMaterials &&
			e.Status == domain.ApprovalPending && e.Description == "cement" &&
			e.CreatedBy == "sup-1" && e.CreatedAt.Equal(fixedNow)
	})).Return(nil).Once()

	expense, err := suite.service.RecordExpense(suite.ctx, "s1", req, "sup-1")

	suite.Require().NoError(err)
	suite.True(expense.Amount.Equal(decimal.RequireFromString("1500.50")))
	suite.NotEmpty(expense.ExpenseID)
	suite.expenseRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestRecordExpense_Validation() {
	cases := map[string]dto.CreateExpenseRequest{
		"zero amount":      {Date: "2024-03-01", Category: "fuel", Amount: decimal.Zero},
		"negative amount":  {Date: "2024-03-01", Category: "fuel", Amount: decimal.NewFromInt(-5)},
		"sub-paise amount": {Date: "2024-03-01", Category: "fuel", Amount: decimal.RequireFromString("1.001")},
		"unknown category": {Date: "2024-03-01", Category: "bribes", Amount: decimal.NewFromInt(5)},
		"bad date":         {Date: "March 1", Category: "fuel", Amount: decimal.NewFromInt(5)},
	}
	for name, req := range cases {
		suite.Run(name, func() {
			_, err := suite.service.RecordExpense(suite.ctx, "s1", req, "sup-1")
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.expenseRepo.AssertNotCalled(suite.T(), "SaveExpense", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestRecordExpense_SiteNotFound() {
	suite.siteRepo.On("FindSiteByID", suite.ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()
	req := dto.CreateExpenseRequest{Date: "2024-03-01", Category: "fuel", Amount: decimal.NewFromInt(5)}

	_, err := suite.service.RecordExpense(suite.ctx, "ghost", req, "sup-1")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestRecordAdvance_ParsesLoosePurpose() {
	suite.siteExists("s1")
	req := dto.CreateAdvanceRequest{
		Date:          "2024-03-02",
		RecipientName: "Ravi",
		RecipientType: "worker",
		Purpose:       "Safety Shoes",
		Amount:        decimal.NewFromInt(800),
	}
	suite.advanceRepo.On("SaveAdvance", suite.ctx, mock.MatchedBy(func(a domain.Advance) bool {
		return a.Purpose == domain.PurposeSafetyShoes && a.RecipientType == domain.RecipientWorker
	})).Return(nil).Once()

	advance, err := suite.service.RecordAdvance(suite.ctx, "s1", req, "sup-1")

	suite.Require().NoError(err)
	suite.Equal(domain.ApprovalPending, advance.Status)
}

func (suite *TransactionServiceTestSuite) TestRecordAdvance_UnknownPurpose() {
	req := dto.CreateAdvanceRequest{
		Date:          "2024-03-02",
		RecipientName: "Ravi",
		RecipientType: "worker",
		Purpose:       "bonus",
		Amount:        decimal.NewFromInt(800),
	}

	_, err := suite.service.RecordAdvance(suite.ctx, "s1", req, "sup-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestRecordFundsReceived_Success() {
	suite.siteExists("s1")
	req := dto.CreateFundsReceivedRequest{Date: "2024-03-01", Amount: decimal.NewFromInt(100000), Method: "NEFT"}
	suite.fundsRepo.On("SaveFundsReceived", suite.ctx, mock.MatchedBy(func(f domain.FundsReceived) bool {
		return f.SiteID == "s1" && f.Amount.Equal(decimal.NewFromInt(100000)) && f.Method == "NEFT"
	})).Return(nil).Once()

	funds, err := suite.service.RecordFundsReceived(suite.ctx, "s1", req, "ho-user")

	suite.Require().NoError(err)
	suite.NotEmpty(funds.FundsID)
	suite.fundsRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestRecordFundsReceived_SaveError() {
	suite.siteExists("s1")
	req := dto.CreateFundsReceivedRequest{Date: "2024-03-01", Amount: decimal.NewFromInt(10)}
	suite.fundsRepo.On("SaveFundsReceived", suite.ctx, mock.Anything).Return(assert.AnError).Once()

	_, err := suite.service.RecordFundsReceived(suite.ctx, "s1", req, "ho-user")

	suite.ErrorIs(err, assert.AnError)
}

func (suite *TransactionServiceTestSuite) TestRecordInvoice_ComputesAmounts() {
	suite.siteExists("s1")
	req := dto.CreateInvoiceRequest{
		Date:        "2024-03-05",
		PartyName:   "Shree Cement",
		Quantity:    decimal.NewFromInt(10),
		Rate:        decimal.NewFromInt(500),
		GSTPercent:  decimal.NewFromInt(18),
		BankDetails: &dto.BankDetailsRequest{IFSC: "sbin0001234"},
	}
	suite.invoiceRepo.On("SaveInvoice", suite.ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()

	invoice, err := suite.service.RecordInvoice(suite.ctx, "s1", req, "sup-1")

	suite.Require().NoError(err)
	suite.True(invoice.GrossAmount.Equal(decimal.NewFromInt(5000)), invoice.GrossAmount.String())
	suite.True(invoice.NetAmount.Equal(decimal.NewFromInt(5900)), invoice.NetAmount.String())
	suite.Equal(domain.PaymentPending, invoice.PaymentStatus)
	suite.Equal(domain.ApproverSupervisor, invoice.ApprovedBy)
	suite.Equal("SBIN0001234", invoice.BankDetails.IFSC)
}

func (suite *TransactionServiceTestSuite) TestRecordInvoice_Validation() {
	base := func() dto.CreateInvoiceRequest {
		return dto.CreateInvoiceRequest{
			Date:       "2024-03-05",
			PartyName:  "Shree Cement",
			Quantity:   decimal.NewFromInt(1),
			Rate:       decimal.NewFromInt(1),
			GSTPercent: decimal.NewFromInt(5),
		}
	}
	zeroQty := base()
	zeroQty.Quantity = decimal.Zero
	zeroRate := base()
	zeroRate.Rate = decimal.Zero
	highGST := base()
	highGST.GSTPercent = decimal.NewFromInt(101)
	negGST := base()
	negGST.GSTPercent = decimal.NewFromInt(-1)
	badApprover := base()
	badApprover.ApprovedBy = "cfo"
	fineRate := base()
	fineRate.Rate = decimal.RequireFromString("1.23456")
	fineQty := base()
	fineQty.Quantity = decimal.RequireFromString("0.00005")
	fineGST := base()
	fineGST.GSTPercent = decimal.RequireFromString("18.125")

	for name, req := range map[string]dto.CreateInvoiceRequest{
		"zero quantity":                    zeroQty,
		"zero rate":                        zeroRate,
		"gst over 100":                     highGST,
		"negative gst":                     negGST,
		"bad approver":                     badApprover,
		"rate finer than stored scale":     fineRate,
		"quantity finer than stored scale": fineQty,
		"gst finer than stored scale":      fineGST,
	} {
		suite.Run(name, func() {
			_, err := suite.service.RecordInvoice(suite.ctx, "s1", req, "sup-1")
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.invoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestRecordInvoice_GrossMatchesStoredQuantityAndRate() {
	suite.siteExists("s1")
	req := dto.CreateInvoiceRequest{
		Date:       "2024-03-05",
		PartyName:  "Ambuja Steel",
		Quantity:   decimal.NewFromInt(1000),
		Rate:       decimal.RequireFromString("1.2345"),
		GSTPercent: decimal.RequireFromString("12.5"),
	}
	suite.invoiceRepo.On("SaveInvoice", suite.ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()

	invoice, err := suite.service.RecordInvoice(suite.ctx, "s1", req, "sup-1")

	suite.Require().NoError(err)
	stored := invoice.Quantity.Round(domain.QuantityPlaces).Mul(invoice.Rate.Round(domain.QuantityPlaces))
	suite.True(invoice.GrossAmount.Equal(stored.Round(domain.MoneyPlaces)), invoice.GrossAmount.String())
	suite.True(invoice.GrossAmount.Equal(decimal.RequireFromString("1234.5")), invoice.GrossAmount.String())
	suite.True(invoice.NetAmount.Equal(decimal.RequireFromString("1388.81")), invoice.NetAmount.String())
}

// --- Listing ---

func (suite *TransactionServiceTestSuite) TestListAdvances_FlagsWorkerDebits() {
	suite.siteExists("s1")
	token := "next"
	advances := []domain.Advance{
		{AdvanceID: "a1", SiteID: "s1", Purpose: domain.PurposeAdvance},
		{AdvanceID: "a2", SiteID: "s1", Purpose: domain.PurposeTools},
	}
	suite.advanceRepo.On("ListAdvancesBySite", suite.ctx, "s1", 20, (*string)(nil)).Return(advances, &token, nil).Once()

	resp, err := suite.service.ListAdvances(suite.ctx, "s1", dto.ListTransactionsParams{Limit: 20})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Advances, 2)
	suite.False(resp.Advances[0].WorkerDebit)
	suite.True(resp.Advances[1].WorkerDebit)
	suite.Equal(&token, resp.NextToken)
}

func (suite *TransactionServiceTestSuite) TestListInvoices_RepoError() {
	suite.siteExists("s1")
	suite.invoiceRepo.On("ListInvoicesBySite", suite.ctx, "s1", 10, (*string)(nil)).Return(nil, nil, assert.AnError).Once()

	_, err := suite.service.ListInvoices(suite.ctx, "s1", dto.ListTransactionsParams{Limit: 10})

	suite.ErrorIs(err, assert.AnError)
}

// --- Review ---

func (suite *TransactionServiceTestSuite) TestReviewExpense_Approve() {
	pending := &domain.Expense{ExpenseID: "e1", SiteID: "s1", Status: domain.ApprovalPending}
	suite.expenseRepo.On("FindExpenseByID", suite.ctx, "e1").Return(pending, nil).Once()
	suite.expenseRepo.On("UpdateExpenseStatus", suite.ctx, "e1",
		domain.ApprovalPending, domain.ApprovalApproved, "ho-user", fixedNow).Return(nil).Once()

	expense, err := suite.service.ReviewExpense(suite.ctx, "s1", "e1", dto.ReviewRequest{Status: "approved"}, "ho-user")

	suite.Require().NoError(err)
	suite.Equal(domain.ApprovalApproved, expense.Status)
	suite.Equal("ho-user", expense.LastUpdatedBy)
	suite.expenseRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestReviewExpense_AlreadyReviewed() {
	done := &domain.Expense{ExpenseID: "e1", SiteID: "s1", Status: domain.ApprovalRejected}
	suite.expenseRepo.On("FindExpenseByID", suite.ctx, "e1").Return(done, nil).Once()

	_, err := suite.service.ReviewExpense(suite.ctx, "s1", "e1", dto.ReviewRequest{Status: "approved"}, "ho-user")

	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.expenseRepo.AssertNotCalled(suite.T(), "UpdateExpenseStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestReviewExpense_OtherSite() {
	other := &domain.Expense{ExpenseID: "e1", SiteID: "s2", Status: domain.ApprovalPending}
	suite.expenseRepo.On("FindExpenseByID", suite.ctx, "e1").Return(other, nil).Once()

	_, err := suite.service.ReviewExpense(suite.ctx, "s1", "e1", dto.ReviewRequest{Status: "approved"}, "ho-user")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestReviewExpense_PendingIsNotADecision() {
	_, err := suite.service.ReviewExpense(suite.ctx, "s1", "e1", dto.ReviewRequest{Status: "pending"}, "ho-user")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestReviewAdvance_LostRace() {
	pending := &domain.Advance{AdvanceID: "a1", SiteID: "s1", Status: domain.ApprovalPending}
	suite.advanceRepo.On("FindAdvanceByID", suite.ctx, "a1").Return(pending, nil).Once()
	suite.advanceRepo.On("UpdateAdvanceStatus", suite.ctx, "a1",
		domain.ApprovalPending, domain.ApprovalRejected, "ho-user", fixedNow).Return(apperrors.ErrInvalidTransition).Once()

	_, err := suite.service.ReviewAdvance(suite.ctx, "s1", "a1", dto.ReviewRequest{Status: "rejected"}, "ho-user")

	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *TransactionServiceTestSuite) TestMarkInvoicePaid() {
	pending := &domain.Invoice{InvoiceID: "i1", SiteID: "s1", PaymentStatus: domain.PaymentPending, ApprovedBy: domain.ApproverHeadOffice}
	suite.invoiceRepo.On("FindInvoiceByID", suite.ctx, "i1").Return(pending, nil).Once()
	suite.invoiceRepo.On("UpdateInvoicePaymentStatus", suite.ctx, "i1",
		domain.PaymentPending, domain.PaymentPaid, "ho-user", fixedNow).Return(nil).Once()

	invoice, err := suite.service.MarkInvoicePaid(suite.ctx, "s1", "i1", "ho-user")

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentPaid, invoice.PaymentStatus)
}

func (suite *TransactionServiceTestSuite) TestMarkInvoicePaid_AlreadyPaid() {
	paid := &domain.Invoice{InvoiceID: "i1", SiteID: "s1", PaymentStatus: domain.PaymentPaid}
	suite.invoiceRepo.On("FindInvoiceByID", suite.ctx, "i1").Return(paid, nil).Once()

	_, err := suite.service.MarkInvoicePaid(suite.ctx, "s1", "i1", "ho-user")

	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
