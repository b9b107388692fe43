package dto

import (
	"time"

	"github.com/SscSPs/site_expense_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Amounts are accepted as JSON numbers or decimal strings. The money, positive_decimal
// and percent tags are registered by the handlers package; the transaction service
// repeats the checks for callers that bypass HTTP.

// CreateExpenseRequest defines the data needed to record an expense.
type CreateExpenseRequest struct {
	Date        string          `json:"date" binding:"required,datetime=2006-01-02" example:"2024-03-01"`
	Description string          `json:"description" binding:"max=500"`
	Category    string          `json:"category" binding:"required" example:"materials"`
	Amount      decimal.Decimal `json:"amount" binding:"money" swaggertype:"string" example:"1500.00"`
}

// CreateAdvanceRequest defines the data needed to record an advance.
type CreateAdvanceRequest struct {
	Date          string          `json:"date" binding:"required,datetime=2006-01-02"`
	RecipientName string          `json:"recipientName" binding:"required,max=200"`
	RecipientType string          `json:"recipientType" binding:"required,oneof=worker subcontractor supervisor"`
	Purpose       string          `json:"purpose" binding:"required" example:"safety_shoes"`
	Amount        decimal.Decimal `json:"amount" binding:"money" swaggertype:"string" example:"800.00"`
	Remarks       string          `json:"remarks" binding:"max=500"`
}

// CreateFundsReceivedRequest defines the data needed to record money credited to a site.
type CreateFundsReceivedRequest struct {
	Date      string          `json:"date" binding:"required,datetime=2006-01-02"`
	Amount    decimal.Decimal `json:"amount" binding:"money" swaggertype:"string" example:"100000.00"`
	Reference string          `json:"reference" binding:"max=200"`
	Method    string          `json:"method" binding:"max=50" example:"NEFT"`
}

// BankDetailsRequest is the optional payee bank payload of an invoice.
type BankDetailsRequest struct {
	AccountName   string `json:"accountName" binding:"max=200"`
	AccountNumber string `json:"accountNumber" binding:"omitempty,numeric,max=34"`
	IFSC          string `json:"ifsc" binding:"omitempty,len=11,alphanum"`
	BankName      string `json:"bankName" binding:"max=200"`
}

// CreateInvoiceRequest defines the data needed to record a vendor invoice.
type CreateInvoiceRequest struct {
	Date        string              `json:"date" binding:"required,datetime=2006-01-02"`
	PartyName   string              `json:"partyName" binding:"required,max=200"`
	Material    string              `json:"material" binding:"max=200"`
	Quantity    decimal.Decimal     `json:"quantity" binding:"positive_decimal" swaggertype:"string" example:"10"`
	Rate        decimal.Decimal     `json:"rate" binding:"positive_decimal" swaggertype:"string" example:"500.00"`
	GSTPercent  decimal.Decimal     `json:"gstPercent" binding:"percent" swaggertype:"string" example:"18"`
	BankDetails *BankDetailsRequest `json:"bankDetails"`
	ApprovedBy  string              `json:"approvedBy" binding:"omitempty,oneof=ho supervisor"`
}

// ReviewRequest approves or rejects a pending expense or advance.
type ReviewRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

// ListTransactionsParams defines query parameters for listing a site's transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=0,max=200"`
	NextToken *string `form:"nextToken"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID   string          `json:"expenseID"`
	SiteID      string          `json:"siteID"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	CreatedBy   string          `json:"createdBy"`
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:   e.ExpenseID,
		SiteID:      e.SiteID,
		Date:        e.Date.Format(domain.DateLayout),
		Description: e.Description,
		Category:    string(e.Category),
		Amount:      e.Amount,
		Status:      string(e.Status),
		CreatedAt:   e.CreatedAt,
		CreatedBy:   e.CreatedBy,
	}
}

// ListExpensesResponse is one page of expenses.
type ListExpensesResponse struct {
	Expenses  []ExpenseResponse `json:"expenses"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToListExpensesResponse converts a page of domain expenses.
func ToListExpensesResponse(expenses []domain.Expense, nextToken *string) *ListExpensesResponse {
	res := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		res[i] = ToExpenseResponse(&e)
	}
	return &ListExpensesResponse{Expenses: res, NextToken: nextToken}
}

// AdvanceResponse defines the data returned for an advance.
type AdvanceResponse struct {
	AdvanceID     string          `json:"advanceID"`
	SiteID        string          `json:"siteID"`
	Date          string          `json:"date"`
	RecipientName string          `json:"recipientName"`
	RecipientType string          `json:"recipientType"`
	Purpose       string          `json:"purpose"`
	WorkerDebit   bool            `json:"workerDebit"`
	Amount        decimal.Decimal `json:"amount"`
	Remarks       string          `json:"remarks"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}

// ToAdvanceResponse converts a domain.Advance to AdvanceResponse DTO.
// workerDebit is passed in so the DTO layer stays free of classification rules.
func ToAdvanceResponse(a *domain.Advance, workerDebit bool) AdvanceResponse {
	return AdvanceResponse{
		AdvanceID:     a.AdvanceID,
		SiteID:        a.SiteID,
		Date:          a.Date.Format(domain.DateLayout),
		RecipientName: a.RecipientName,
		RecipientType: string(a.RecipientType),
		Purpose:       string(a.Purpose),
		WorkerDebit:   workerDebit,
		Amount:        a.Amount,
		Remarks:       a.Remarks,
		Status:        string(a.Status),
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
	}
}

// ListAdvancesResponse is one page of advances.
type ListAdvancesResponse struct {
	Advances  []AdvanceResponse `json:"advances"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// FundsReceivedResponse defines the data returned for a funds-received record.
type FundsReceivedResponse struct {
	FundsID   string          `json:"fundsID"`
	SiteID    string          `json:"siteID"`
	Date      string          `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference"`
	Method    string          `json:"method"`
	CreatedAt time.Time       `json:"createdAt"`
	CreatedBy string          `json:"createdBy"`
}

// ToFundsReceivedResponse converts a domain.FundsReceived to FundsReceivedResponse DTO
func ToFundsReceivedResponse(f *domain.FundsReceived) FundsReceivedResponse {
	return FundsReceivedResponse{
		FundsID:   f.FundsID,
		SiteID:    f.SiteID,
		Date:      f.Date.Format(domain.DateLayout),
		Amount:    f.Amount,
		Reference: f.Reference,
		Method:    f.Method,
		CreatedAt: f.CreatedAt,
		CreatedBy: f.CreatedBy,
	}
}

// ListFundsReceivedResponse is one page of funds-received records.
type ListFundsReceivedResponse struct {
	Funds     []FundsReceivedResponse `json:"funds"`
	NextToken *string                 `json:"nextToken,omitempty"`
}

// ToListFundsReceivedResponse converts a page of domain funds records.
func ToListFundsReceivedResponse(funds []domain.FundsReceived, nextToken *string) *ListFundsReceivedResponse {
	res := make([]FundsReceivedResponse, len(funds))
	for i, f := range funds {
		res[i] = ToFundsReceivedResponse(&f)
	}
	return &ListFundsReceivedResponse{Funds: res, NextToken: nextToken}
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID     string             `json:"invoiceID"`
	SiteID        string             `json:"siteID"`
	Date          string             `json:"date"`
	PartyName     string             `json:"partyName"`
	Material      string             `json:"material"`
	Quantity      decimal.Decimal    `json:"quantity"`
	Rate          decimal.Decimal    `json:"rate"`
	GSTPercent    decimal.Decimal    `json:"gstPercent"`
	GrossAmount   decimal.Decimal    `json:"grossAmount"`
	NetAmount     decimal.Decimal    `json:"netAmount"`
	BankDetails   domain.BankDetails `json:"bankDetails"`
	PaymentStatus string             `json:"paymentStatus"`
	ApprovedBy    string             `json:"approvedBy"`
	CreatedAt     time.Time          `json:"createdAt"`
	CreatedBy     string             `json:"createdBy"`
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:     inv.InvoiceID,
		SiteID:        inv.SiteID,
		Date:          inv.Date.Format(domain.DateLayout),
		PartyName:     inv.PartyName,
		Material:      inv.Material,
		Quantity:      inv.Quantity,
		Rate:          inv.Rate,
		GSTPercent:    inv.GSTPercent,
		GrossAmount:   inv.GrossAmount,
		NetAmount:     inv.NetAmount,
		BankDetails:   inv.BankDetails,
		PaymentStatus: string(inv.PaymentStatus),
		ApprovedBy:    string(inv.ApprovedBy),
		CreatedAt:     inv.CreatedAt,
		CreatedBy:     inv.CreatedBy,
	}
}

// ListInvoicesResponse is one page of invoices.
type ListInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToListInvoicesResponse converts a page of domain invoices.
func ToListInvoicesResponse(invoices []domain.Invoice, nextToken *string) *ListInvoicesResponse {
	res := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		res[i] = ToInvoiceResponse(&inv)
	}
	return &ListInvoicesResponse{Invoices: res, NextToken: nextToken}
}
