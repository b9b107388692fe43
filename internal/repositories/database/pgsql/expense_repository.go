package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/site_expense_tracker/internal/apperrors"
	"github.com/SscSPs/site_expense_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/site_expense_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/site_expense_tracker/internal/models"
	"github.com/SscSPs/site_expense_tracker/internal/utils/mapping"
	"github.com/SscSPs/site_expense_tracker/internal/utils/pagination"
	"github.com/jackc/pgx/v5/pgxpool"
)

var expensesTable = siteListing{
	table:   "expenses",
	columns: "expense_id, site_id, expense_date, description, category, amount, status, " + auditColumns,
	dateCol: "expense_date",
	idCol:   "expense_id",
}

func expenseCursor(m models.Expense) pagination.Cursor {
	return pagination.Cursor{RecordDate: m.Date, CreatedAt: m.CreatedAt, RecordID: m.ExpenseID}
}

type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a new repository for expense data.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

// SaveExpense inserts a new expense.
func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
		INSERT INTO expenses (expense_id, site_id, expense_date, description, category, amount, status,
		                      created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ExpenseID, m.SiteID, m.Date, m.Description, m.Category, m.Amount, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "expense "+m.ExpenseID)
	}
	return nil
}

// FindExpenseByID retrieves an expense by its ID.
func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	m, err := findOne[models.Expense](ctx, r.Pool, expensesTable, expenseID)
	if err != nil {
		return nil, err
	}
	expense, _ := mapping.ToDomainExpense(*m)
	return &expense, nil
}

// ListExpensesBySite retrieves one page of a site's expenses.
func (r *PgxExpenseRepository) ListExpensesBySite(ctx context.Context, siteID string, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	ms, next, err := listBySite(ctx, r.Pool, expensesTable, siteID, limit, nextToken, expenseCursor)
	if err != nil {
		return nil, nil, err
	}
	expenses, _ := mapping.ToDomainExpenseSlice(ms)
	return expenses, next, nil
}

// UpdateExpenseStatus records an approval decision.
func (r *PgxExpenseRepository) UpdateExpenseStatus(ctx context.Context, expenseID string, from, to domain.ApprovalStatus, userID string, at time.Time) error {
	if from != domain.ApprovalPending {
		return fmt.Errorf("%w: cannot move from %s", apperrors.ErrInvalidTransition, from)
	}
	return transitionStatus(ctx, r.Pool, "expenses", "expense_id", "status", expenseID, settledApproval, string(to), userID, at)
}
