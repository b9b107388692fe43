package pgsql

import (
	"context"

	"github.com/SscSPs/site_expense_tracker/internal/apperrors"
	portsrepo "github.com/SscSPs/site_expense_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/site_expense_tracker/internal/models"
	"github.com/SscSPs/site_expense_tracker/internal/utils/accounting"
	"github.com/SscSPs/site_expense_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates the reader that feeds balance computation.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerReader {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerReader = (*PgxLedgerRepository)(nil)

// LoadSiteLedger reads the four streams inside one repeatable-read, read-only
// transaction so a concurrent write cannot land between them.
func (r *PgxLedgerRepository) LoadSiteLedger(ctx context.Context, siteID string) (accounting.SiteLedger, []accounting.Anomaly, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return accounting.SiteLedger{}, nil, apperrors.NewAppError(500, "failed to begin ledger snapshot", err)
	}
	defer r.Rollback(ctx, tx) // read-only, nothing to commit

	expenseRows, err := allBySite[models.Expense](ctx, tx, expensesTable, siteID)
	if err != nil {
		return accounting.SiteLedger{}, nil, err
	}
	advanceRows, err := allBySite[models.Advance](ctx, tx, advancesTable, siteID)
	if err != nil {
		return accounting.SiteLedger{}, nil, err
	}
	fundsRows, err := allBySite[models.FundsReceived](ctx, tx, fundsTable, siteID)
	if err != nil {
		return accounting.SiteLedger{}, nil, err
	}
	invoiceRows, err := allBySite[models.Invoice](ctx, tx, invoicesTable, siteID)
	if err != nil {
		return accounting.SiteLedger{}, nil, err
	}

	var anomalies []accounting.Anomaly
	expenses, found := mapping.ToDomainExpenseSlice(expenseRows)
	anomalies = append(anomalies, found...)
	advances, found := mapping.ToDomainAdvanceSlice(advanceRows)
	anomalies = append(anomalies, found...)
	funds, found := mapping.ToDomainFundsReceivedSlice(fundsRows)
	anomalies = append(anomalies, found...)
	invoices, found := mapping.ToDomainInvoiceSlice(invoiceRows)
	anomalies = append(anomalies, found...)

	ledger, found := accounting.NewSiteLedger(siteID, expenses, advances, funds, invoices)
	anomalies = append(anomalies, found...)
	return ledger, anomalies, nil
}
