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

var advancesTable = siteListing{
	table: "advances",
	columns: "advance_id, site_id, advance_date, recipient_name, recipient_type, purpose, amount, remarks, status, " +
		auditColumns,
	dateCol: "advance_date",
	idCol:   "advance_id",
}

func advanceCursor(m models.Advance) pagination.Cursor {
	return pagination.Cursor{RecordDate: m.Date, CreatedAt: m.CreatedAt, RecordID: m.AdvanceID}
}

type PgxAdvanceRepository struct {
	BaseRepository
}

// newPgxAdvanceRepository creates a new repository for advance data.
func newPgxAdvanceRepository(pool *pgxpool.Pool) portsrepo.AdvanceRepositoryFacade {
	return &PgxAdvanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AdvanceRepositoryFacade = (*PgxAdvanceRepository)(nil)

// SaveAdvance inserts a new advance.
func (r *PgxAdvanceRepository) SaveAdvance(ctx context.Context, advance domain.Advance) error {
	m := mapping.ToModelAdvance(advance)
	query := `
		INSERT INTO advances (advance_id, site_id, advance_date, recipient_name, recipient_type, purpose, amount,
		                      remarks, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AdvanceID, m.SiteID, m.Date, m.RecipientName, m.RecipientType, m.Purpose, m.Amount,
		m.Remarks, m.Status, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "advance "+m.AdvanceID)
	}
	return nil
}

// FindAdvanceByID retrieves an advance by its ID.
func (r *PgxAdvanceRepository) FindAdvanceByID(ctx context.Context, advanceID string) (*domain.Advance, error) {
	m, err := findOne[models.Advance](ctx, r.Pool, advancesTable, advanceID)
	if err != nil {
		return nil, err
	}
	advance, _ := mapping.ToDomainAdvance(*m)
	return &advance, nil
}

// ListAdvancesBySite retrieves one page of a site's advances.
func (r *PgxAdvanceRepository) ListAdvancesBySite(ctx context.Context, siteID string, limit int, nextToken *string) ([]domain.Advance, *string, error) {
	ms, next, err := listBySite(ctx, r.Pool, advancesTable, siteID, limit, nextToken, advanceCursor)
	if err != nil {
		return nil, nil, err
	}
	advances, _ := mapping.ToDomainAdvanceSlice(ms)
	return advances, next, nil
}

// UpdateAdvanceStatus records an approval decision.
func (r *PgxAdvanceRepository) UpdateAdvanceStatus(ctx context.Context, advanceID string, from, to domain.ApprovalStatus, userID string, at time.Time) error {
	if from != domain.ApprovalPending {
		return fmt.Errorf("%w: cannot move from %s", apperrors.ErrInvalidTransition, from)
	}
	return transitionStatus(ctx, r.Pool, "advances", "advance_id", "status", advanceID, settledApproval, string(to), userID, at)
}
