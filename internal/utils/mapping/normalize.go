package mapping

import (
	"database/sql"

	"github.com/SscSPs/site_expense_tracker/internal/core/domain"
	"github.com/SscSPs/site_expense_tracker/internal/models"
	"github.com/SscSPs/site_expense_tracker/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// recordNormalizer collects the anomalies found while turning one row into a domain record.
type recordNormalizer struct {
	siteID    string
	kind      accounting.RecordKind
	recordID  string
	anomalies []accounting.Anomaly
}

func newRecordNormalizer(siteID string, kind accounting.RecordKind, recordID string) *recordNormalizer {
	return &recordNormalizer{siteID: siteID, kind: kind, recordID: recordID}
}

func (n *recordNormalizer) report(field, raw, resolution string) {
	n.anomalies = append(n.anomalies, accounting.Anomaly{
		SiteID:     n.siteID,
		Kind:       n.kind,
		RecordID:   n.recordID,
		Field:      field,
		RawValue:   raw,
		Resolution: resolution,
	})
}

// money clamps negatives to zero and rounds to paise.
func (n *recordNormalizer) money(field string, d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		n.report(field, d.String(), "negative amount treated as zero")
		return decimal.Zero
	}
	rounded := d.Round(domain.MoneyPlaces)
	if !rounded.Equal(d) {
		n.report(field, d.String(), "rounded to "+rounded.StringFixed(domain.MoneyPlaces))
	}
	return rounded
}

// optionalQuantity treats NULL as zero and clamps negatives.
func (n *recordNormalizer) optionalQuantity(field string, d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	if d.Decimal.IsNegative() {
		n.report(field, d.Decimal.String(), "negative value treated as zero")
		return decimal.Zero
	}
	return d.Decimal
}

func (n *recordNormalizer) approval(raw string) domain.ApprovalStatus {
	status, ok := domain.ParseApprovalStatus(raw)
	if !ok {
		n.report("status", raw, "treated as "+string(status))
	}
	return status
}

func nullString(s sql.NullString) string {
	if s.Valid {
		return s.String
	}
	return ""
}

func toNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func toNullDecimal(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// Audit columns share their field set with the domain struct, only the tags differ.
func auditToModel(d domain.AuditFields) models.AuditFields { return models.AuditFields(d) }

func auditToDomain(m models.AuditFields) domain.AuditFields { return domain.AuditFields(m) }
