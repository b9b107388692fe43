package accounting

import (
	"context"
	"log/slog"
)

// RecordKind names the transaction stream a record came from.
type RecordKind string

const (
	KindSite    RecordKind = "site"
	KindExpense RecordKind = "expense"
	KindAdvance RecordKind = "advance"
	KindFunds   RecordKind = "funds_received"
	KindInvoice RecordKind = "invoice"
)

// Anomaly is a data-quality finding absorbed during normalization or ledger assembly.
// It never stops aggregation; it exists so ops can fix the stored data.
type Anomaly struct {
	SiteID     string
	Kind       RecordKind
	RecordID   string
	Field      string
	RawValue   string
	Resolution string
}

// LogAnomalies writes one WARN line per anomaly.
func LogAnomalies(ctx context.Context, logger *slog.Logger, anomalies []Anomaly) {
	for _, a := range anomalies {
		logger.LogAttrs(ctx, slog.LevelWarn, "Data quality anomaly in site ledger",
			slog.String("site_id", a.SiteID),
			slog.String("record_kind", string(a.Kind)),
			slog.String("record_id", a.RecordID),
			slog.String("field", a.Field),
			slog.String("raw_value", a.RawValue),
			slog.String("resolution", a.Resolution),
		)
	}
}
