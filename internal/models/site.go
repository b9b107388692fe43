package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Site is a row of the sites table.
type Site struct {
	SiteID         string          `db:"site_id"`
	Name           string          `db:"name"`
	JobID          sql.NullString  `db:"job_id"`
	PONumber       sql.NullString  `db:"po_number"`
	StartDate      time.Time       `db:"start_date"`
	CompletionDate sql.NullTime    `db:"completion_date"`
	Status         string          `db:"status"`
	SupervisorID   string          `db:"supervisor_id"`
	FundsReceived  decimal.Decimal `db:"funds_received"` // cumulative counter
	AuditFields
}
