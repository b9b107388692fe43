package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/site_expense_tracker/internal/apperrors"
	"github.com/SscSPs/site_expense_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/site_expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/site_expense_tracker/internal/core/services"
	"github.com/SscSPs/site_expense_tracker/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// scenarioLedger has funds 100000, an approved expense of 30000, approved advances of
// 20000 (regular) and 5000 (tools) and a paid invoice of 10000.
func scenarioLedger(siteID string) accounting.SiteLedger {
	return accounting.SiteLedger{
		SiteID:   siteID,
		Funds:    []domain.FundsReceived{{FundsID: "f1", SiteID: siteID, Amount: dec("100000")}},
		Expenses: []domain.Expense{{ExpenseID: "e1", SiteID: siteID, Amount: dec("30000"), Status: domain.ApprovalApproved}},
		Advances: []domain.Advance{
			{AdvanceID: "a1", SiteID: siteID, Amount: dec("20000"), Purpose: domain.PurposeAdvance, Status: domain.ApprovalApproved},
			{AdvanceID: "a2", SiteID: siteID, Amount: dec("5000"), Purpose: domain.PurposeTools, Status: domain.ApprovalApproved},
		},
		Invoices: []domain.Invoice{{InvoiceID: "i1", SiteID: siteID, NetAmount: dec("10000"), PaymentStatus: domain.PaymentPaid}},
	}
}

func siteFor(siteID, supervisorID, funds string) domain.Site {
	return domain.Site{SiteID: siteID, SupervisorID: supervisorID, Status: domain.SiteActive, FundsReceived: dec(funds)}
}

type BalanceServiceTestSuite struct {
	suite.Suite
	siteRepo   *MockSiteRepository
	ledgerRepo *MockLedgerRepository
	service    portssvc.BalanceSvc
	ctx        context.Context
}

func (suite *BalanceServiceTestSuite) SetupTest() {
	suite.siteRepo = new(MockSiteRepository)
	suite.ledgerRepo = new(MockLedgerRepository)
	suite.service = services.NewBalanceService(suite.siteRepo, suite.ledgerRepo, services.WithRollupConcurrency(2))
	suite.ctx = context.Background()
}

func (suite *BalanceServiceTestSuite) assertAmount(want string, got decimal.Decimal, field string) {
	suite.Truef(dec(want).Equal(got), "%s: want %s, got %s", field, want, got)
}

func (suite *BalanceServiceTestSuite) TestGetSiteBalance_Scenario() {
	site := siteFor("s1", "sup-1", "100000")
	suite.siteRepo.On("FindSiteByID", suite.ctx, "s1").Return(&site, nil).Once()
	suite.ledgerRepo.On("LoadSiteLedger", mock.Anything, "s1").Return(scenarioLedger("s1"), nil, nil).Once()

	summary, err := suite.service.GetSiteBalance(suite.ctx, "s1")

	suite.Require().NoError(err)
	suite.Equal("s1", summary.SiteID)
	suite.assertAmount("100000", summary.FundsReceived, "fundsReceived")
	suite.assertAmount("30000", summary.TotalExpenditure, "totalExpenditure")
	suite.assertAmount("20000", summary.TotalAdvances, "totalAdvances")
	suite.assertAmount("5000", summary.DebitsToWorker, "debitsToWorker")
	suite.assertAmount("10000", summary.InvoicesPaid, "invoicesPaid")
	suite.assertAmount("40000", summary.TotalBalance, "totalBalance")
	suite.ledgerRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestGetSiteBalance_EmptySiteIsZero() {
	site := siteFor("s1", "sup-1", "0")
	suite.siteRepo.On("FindSiteByID", suite.ctx, "s1").Return(&site, nil).Once()
	suite.ledgerRepo.On("LoadSiteLedger", mock.Anything, "s1").
		Return(accounting.SiteLedger{SiteID: "s1"}, nil, nil).Once()

	summary, err := suite.service.GetSiteBalance(suite.ctx, "s1")

	suite.Require().NoError(err)
	suite.Equal(domain.ZeroBalance("s1").TotalBalance.String(), summary.TotalBalance.String())
	suite.True(summary.FundsReceived.IsZero())
	suite.True(summary.PendingInvoices.IsZero())
}

func (suite *BalanceServiceTestSuite) TestGetSiteBalance_AnomaliesDoNotFail() {
	site := siteFor("s1", "sup-1", "100000")
	anomalies := []accounting.Anomaly{{SiteID: "s1", Kind: accounting.KindAdvance, RecordID: "a9", Field: "purpose", RawValue: "bonus"}}
	suite.siteRepo.On("FindSiteByID", suite.ctx, "s1").Return(&site, nil).Once()
	suite.ledgerRepo.On("LoadSiteLedger", mock.Anything, "s1").Return(scenarioLedger("s1"), anomalies, nil).Once()

	summary, err := suite.service.GetSiteBalance(suite.ctx, "s1")

	suite.Require().NoError(err)
	suite.assertAmount("40000", summary.TotalBalance, "totalBalance")
}

func (suite *BalanceServiceTestSuite) TestGetSiteBalance_NotFound() {
	suite.siteRepo.On("FindSiteByID", suite.ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetSiteBalance(suite.ctx, "ghost")

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.ledgerRepo.AssertNotCalled(suite.T(), "LoadSiteLedger", mock.Anything, mock.Anything)
}

func (suite *BalanceServiceTestSuite) TestGetSiteBalance_InconsistentSummary() {
	site := siteFor("s1", "sup-1", "0")
	// Ledgers built without normalization can carry negative amounts.
	bad := accounting.SiteLedger{
		SiteID:   "s1",
		Expenses: []domain.Expense{{ExpenseID: "e1", SiteID: "s1", Amount: dec("-50"), Status: domain.ApprovalApproved}},
	}
	suite.siteRepo.On("FindSiteByID", suite.ctx, "s1").Return(&site, nil).Once()
	suite.ledgerRepo.On("LoadSiteLedger", mock.Anything, "s1").Return(bad, nil, nil).Once()

	summary, err := suite.service.GetSiteBalance(suite.ctx, "s1")

	suite.Nil(summary)
	suite.ErrorIs(err, apperrors.ErrInconsistentSummary)
}

func (suite *BalanceServiceTestSuite) TestGetSiteBalance_LedgerError() {
	site := siteFor("s1", "sup-1", "0")
	suite.siteRepo.On("FindSiteByID", suite.ctx, "s1").Return(&site, nil).Once()
	suite.ledgerRepo.On("LoadSiteLedger", mock.Anything, "s1").
		Return(accounting.SiteLedger{}, nil, assert.AnError).Once()

	_, err := suite.service.GetSiteBalance(suite.ctx, "s1")

	suite.ErrorIs(err, assert.AnError)
}

func (suite *BalanceServiceTestSuite) TestGetSupervisorBalance_SumsSites() {
	sites := []domain.Site{siteFor("s1", "sup-1", "100000"), siteFor("s2", "sup-1", "5000")}
	suite.siteRepo.On("ListSites", suite.ctx, "sup-1", 0, 0).Return(sites, nil).Once()
	suite.ledgerRepo.On("LoadSiteLedger", mock.Anything, "s1").Return(scenarioLedger("s1"), nil, nil).Once()
	suite.ledgerRepo.On("LoadSiteLedger", mock.Anything, "s2").Return(accounting.SiteLedger{
		SiteID: "s2",
		Funds:  []domain.FundsReceived{{FundsID: "f2", SiteID: "s2", Amount: dec("5000")}},
		Invoices: []domain.Invoice{
			{InvoiceID: "i2", SiteID: "s2", NetAmount: dec("1180"), PaymentStatus: domain.PaymentPending},
		},
	}, nil, nil).Once()

	result, err := suite.service.GetSupervisorBalance(suite.ctx, "sup-1")

	suite.Require().NoError(err)
	suite.Equal("sup-1", result.SupervisorID)
	suite.Require().Len(result.Sites, 2)
	suite.Equal("s1", result.Sites[0].Site.SiteID)
	suite.Equal("s2", result.Sites[1].Site.SiteID)
	suite.assertAmount("105000", result.Total.FundsReceived, "fundsReceived")
	suite.assertAmount("1180", result.Total.PendingInvoices, "pendingInvoices")
	suite.assertAmount("45000", result.Total.TotalBalance, "totalBalance")
	suite.NoError(result.Total.Validate())
}

func (suite *BalanceServiceTestSuite) TestGetSupervisorBalance_NoSites() {
	suite.siteRepo.On("ListSites", suite.ctx, "sup-9", 0, 0).Return([]domain.Site{}, nil).Once()

	result, err := suite.service.GetSupervisorBalance(suite.ctx, "sup-9")

	suite.Require().NoError(err)
	suite.Empty(result.Sites)
	suite.True(result.Total.TotalBalance.IsZero())
}

func (suite *BalanceServiceTestSuite) TestGetSupervisorBalance_OneSiteFails() {
	sites := []domain.Site{siteFor("s1", "sup-1", "0"), siteFor("s2", "sup-1", "0")}
	suite.siteRepo.On("ListSites", suite.ctx, "sup-1", 0, 0).Return(sites, nil).Once()
	suite.ledgerRepo.On("LoadSiteLedger", mock.Anything, "s1").Return(accounting.SiteLedger{SiteID: "s1"}, nil, nil).Maybe()
	suite.ledgerRepo.On("LoadSiteLedger", mock.Anything, "s2").Return(accounting.SiteLedger{}, nil, assert.AnError).Once()

	result, err := suite.service.GetSupervisorBalance(suite.ctx, "sup-1")

	suite.Nil(result)
	suite.ErrorIs(err, assert.AnError)
}

func (suite *BalanceServiceTestSuite) TestGetBalanceRollup_GroupsBySupervisor() {
	sites := []domain.Site{
		siteFor("s3", "sup-b", "0"),
		siteFor("s1", "sup-a", "100000"),
		siteFor("s2", "sup-b", "0"),
	}
	suite.siteRepo.On("ListSites", suite.ctx, "", 0, 0).Return(sites, nil).Once()
	suite.ledgerRepo.On("LoadSiteLedger", mock.Anything, "s1").Return(scenarioLedger("s1"), nil, nil).Once()
	suite.ledgerRepo.On("LoadSiteLedger", mock.Anything, "s2").Return(accounting.SiteLedger{SiteID: "s2"}, nil, nil).Once()
	suite.ledgerRepo.On("LoadSiteLedger", mock.Anything, "s3").Return(accounting.SiteLedger{
		SiteID:   "s3",
		Expenses: []domain.Expense{{ExpenseID: "e3", SiteID: "s3", Amount: dec("700"), Status: domain.ApprovalApproved}},
	}, nil, nil).Once()

	rollup, err := suite.service.GetBalanceRollup(suite.ctx)

	suite.Require().NoError(err)
	suite.Require().Len(rollup.Supervisors, 2)
	suite.Equal("sup-a", rollup.Supervisors[0].SupervisorID)
	suite.Equal("sup-b", rollup.Supervisors[1].SupervisorID)
	suite.Len(rollup.Supervisors[1].Sites, 2)
	suite.assertAmount("-700", rollup.Supervisors[1].Total.TotalBalance, "sup-b totalBalance")
	suite.assertAmount("39300", rollup.GrandTotal.TotalBalance, "grandTotal")
	suite.NoError(rollup.GrandTotal.Validate())
	suite.ledgerRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestGetBalanceRollup_ListError() {
	suite.siteRepo.On("ListSites", suite.ctx, "", 0, 0).Return(nil, assert.AnError).Once()

	_, err := suite.service.GetBalanceRollup(suite.ctx)

	suite.ErrorIs(err, assert.AnError)
}

func TestBalanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}
