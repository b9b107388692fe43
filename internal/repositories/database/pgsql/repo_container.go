package pgsql

import (
	portsrepo "github.com/SscSPs/site_expense_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		SiteRepo:    newPgxSiteRepository(dbPool),
		ExpenseRepo: newPgxExpenseRepository(dbPool),
		AdvanceRepo: newPgxAdvanceRepository(dbPool),
		FundsRepo:   newPgxFundsRepository(dbPool),
		InvoiceRepo: newPgxInvoiceRepository(dbPool),
		LedgerRepo:  newPgxLedgerRepository(dbPool),
	}
}
