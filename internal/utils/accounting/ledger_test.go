package accounting_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/SscSPs/site_expense_tracker/internal/core/domain"
	"github.com/SscSPs/site_expense_tracker/internal/utils/accounting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSiteLedger_ExcludesForeignRecords(t *testing.T) {
	mine := expense("100", domain.ApprovalApproved)
	theirs := expense("900", domain.ApprovalApproved)
	theirs.ExpenseID = "e_other"
	theirs.SiteID = "site_2"

	foreignFunds := funds("5000")
	foreignFunds.SiteID = "site_2"

	ledger, anomalies := accounting.NewSiteLedger(siteID,
		[]domain.Expense{mine, theirs},
		nil,
		[]domain.FundsReceived{foreignFunds},
		nil,
	)

	require.Len(t, ledger.Expenses, 1)
	assert.Equal(t, mine.ExpenseID, ledger.Expenses[0].ExpenseID)
	assert.Empty(t, ledger.Funds)
	require.Len(t, anomalies, 2)
	assert.Equal(t, accounting.KindExpense, anomalies[0].Kind)
	assert.Equal(t, "e_other", anomalies[0].RecordID)
	assert.Equal(t, "site_2", anomalies[0].RawValue)
	assert.Equal(t, accounting.KindFunds, anomalies[1].Kind)

	s := accounting.ComputeBalance(ledger)
	assertDecimal(t, "100", s.TotalExpenditure, "totalExpenditure")
	assert.True(t, s.FundsReceived.IsZero())
}

func TestLogAnomalies(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	accounting.LogAnomalies(context.Background(), logger, []accounting.Anomaly{{
		SiteID:     siteID,
		Kind:       accounting.KindAdvance,
		RecordID:   "a_1",
		Field:      "purpose",
		RawValue:   "uniform",
		Resolution: "classified as unknown",
	}})

	out := buf.String()
	assert.Contains(t, out, `"level":"WARN"`)
	assert.Contains(t, out, `"record_kind":"advance"`)
	assert.Contains(t, out, `"raw_value":"uniform"`)
}
