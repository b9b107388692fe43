package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is money spent from site funds. Only the approval status changes after creation.
type Expense struct {
	ExpenseID   string          `json:"expenseID"`
	SiteID      string          `json:"siteID"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Category    ExpenseCategory `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Status      ApprovalStatus  `json:"status"`
	AuditFields
}

// Advance is cash or kit handed to a worker, subcontractor or supervisor.
type Advance struct {
	AdvanceID     string          `json:"advanceID"`
	SiteID        string          `json:"siteID"`
	Date          time.Time       `json:"date"`
	RecipientName string          `json:"recipientName"`
	RecipientType RecipientType   `json:"recipientType"`
	Purpose       AdvancePurpose  `json:"purpose"`
	Amount        decimal.Decimal `json:"amount"`
	Remarks       string          `json:"remarks"`
	Status        ApprovalStatus  `json:"status"`
	AuditFields
}

// FundsReceived is money credited to a site. It has no approval workflow.
type FundsReceived struct {
	FundsID   string          `json:"fundsID"`
	SiteID    string          `json:"siteID"`
	Date      time.Time       `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference"`
	Method    string          `json:"method"`
	AuditFields
}

// BankDetails is the optional payee bank payload attached to an invoice.
type BankDetails struct {
	AccountName   string `json:"accountName,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	IFSC          string `json:"ifsc,omitempty"`
	BankName      string `json:"bankName,omitempty"`
}

// Invoice is a vendor bill for material delivered to a site.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"`
	SiteID        string          `json:"siteID"`
	Date          time.Time       `json:"date"`
	PartyName     string          `json:"partyName"`
	Material      string          `json:"material"`
	Quantity      decimal.Decimal `json:"quantity"`
	Rate          decimal.Decimal `json:"rate"`
	GSTPercent    decimal.Decimal `json:"gstPercent"`
	GrossAmount   decimal.Decimal `json:"grossAmount"`
	NetAmount     decimal.Decimal `json:"netAmount"`
	BankDetails   BankDetails     `json:"bankDetails"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	ApprovedBy    ApproverType    `json:"approvedBy"`
	AuditFields
}

// MoneyPlaces is the number of fractional digits kept for every monetary amount (paise).
const MoneyPlaces = 2

// Fractional digits stored for invoice quantity and rate, and for GST percentages.
const (
	QuantityPlaces = 4
	PercentPlaces  = 2
)

// HasAtMostPlaces reports whether d needs no more than places fractional digits.
func HasAtMostPlaces(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Round(places))
}

var hundred = decimal.NewFromInt(100)

// InvoiceAmounts derives gross (quantity x rate) and net (gross plus GST) rounded to MoneyPlaces.
func InvoiceAmounts(quantity, rate, gstPercent decimal.Decimal) (gross, net decimal.Decimal) {
	gross = quantity.Mul(rate).Round(MoneyPlaces)
	net = gross.Add(gross.Mul(gstPercent).Div(hundred)).Round(MoneyPlaces)
	return gross, net
}
