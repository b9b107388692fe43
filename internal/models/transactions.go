package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Status, purpose, category and approver columns are plain text; the mapping
// layer parses them into closed domain enumerations.

// Expense is a row of the expenses table.
type Expense struct {
	ExpenseID   string          `db:"expense_id"`
	SiteID      string          `db:"site_id"`
	Date        time.Time       `db:"expense_date"`
	Description sql.NullString  `db:"description"`
	Category    string          `db:"category"`
	Amount      decimal.Decimal `db:"amount"`
	Status      string          `db:"status"`
	AuditFields
}

// Advance is a row of the advances table.
type Advance struct {
	AdvanceID     string          `db:"advance_id"`
	SiteID        string          `db:"site_id"`
	Date          time.Time       `db:"advance_date"`
	RecipientName string          `db:"recipient_name"`
	RecipientType string          `db:"recipient_type"`
	Purpose       string          `db:"purpose"`
	Amount        decimal.Decimal `db:"amount"`
	Remarks       sql.NullString  `db:"remarks"`
	Status        string          `db:"status"`
	AuditFields
}

// FundsReceived is a row of the funds_received table.
type FundsReceived struct {
	FundsID   string          `db:"funds_id"`
	SiteID    string          `db:"site_id"`
	Date      time.Time       `db:"received_date"`
	Amount    decimal.Decimal `db:"amount"`
	Reference sql.NullString  `db:"reference"`
	Method    sql.NullString  `db:"method"`
	AuditFields
}

// Invoice is a row of the invoices table. Amount columns are nullable because
// older rows were written without the derived gross/net values.
type Invoice struct {
	InvoiceID     string              `db:"invoice_id"`
	SiteID        string              `db:"site_id"`
	Date          time.Time           `db:"invoice_date"`
	PartyName     string              `db:"party_name"`
	Material      sql.NullString      `db:"material"`
	Quantity      decimal.NullDecimal `db:"quantity"`
	Rate          decimal.NullDecimal `db:"rate"`
	GSTPercent    decimal.NullDecimal `db:"gst_percent"`
	GrossAmount   decimal.NullDecimal `db:"gross_amount"`
	NetAmount     decimal.NullDecimal `db:"net_amount"`
	BankDetails   []byte              `db:"bank_details"` // jsonb
	PaymentStatus string              `db:"payment_status"`
	ApprovedBy    sql.NullString      `db:"approved_by"`
	AuditFields
}
