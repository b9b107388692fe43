package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/site_expense_tracker/internal/apperrors"
	"github.com/SscSPs/site_expense_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/site_expense_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/site_expense_tracker/internal/models"
	"github.com/SscSPs/site_expense_tracker/internal/utils/mapping"
	"github.com/SscSPs/site_expense_tracker/internal/utils/pagination"
	"github.com/jackc/pgx/v5/pgxpool"
)

var fundsTable = siteListing{
	table:   "funds_received",
	columns: "funds_id, site_id, received_date, amount, reference, method, " + auditColumns,
	dateCol: "received_date",
	idCol:   "funds_id",
}

func fundsCursor(m models.FundsReceived) pagination.Cursor {
	return pagination.Cursor{RecordDate: m.Date, CreatedAt: m.CreatedAt, RecordID: m.FundsID}
}

type PgxFundsRepository struct {
	BaseRepository
}

// newPgxFundsRepository creates a new repository for funds-received data.
func newPgxFundsRepository(pool *pgxpool.Pool) portsrepo.FundsRepositoryFacade {
	return &PgxFundsRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FundsRepositoryFacade = (*PgxFundsRepository)(nil)

// SaveFundsReceived inserts the record and raises the site's cumulative counter in one transaction.
func (r *PgxFundsRepository) SaveFundsReceived(ctx context.Context, funds domain.FundsReceived) error {
	m := mapping.ToModelFundsReceived(funds)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // no-op once committed

	insert := `
		INSERT INTO funds_received (funds_id, site_id, received_date, amount, reference, method,
		                            created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	if _, err := tx.Exec(ctx, insert,
		m.FundsID, m.SiteID, m.Date, m.Amount, m.Reference, m.Method,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	); err != nil {
		return mapWriteError(err, "funds received "+m.FundsID)
	}

	// The increment is a single UPDATE, so concurrent receipts on one site never lose an update
	bump := `
		UPDATE sites
		SET funds_received = funds_received + $1, last_updated_at = $2, last_updated_by = $3
		WHERE site_id = $4;
	`
	cmdTag, err := tx.Exec(ctx, bump, m.Amount, m.LastUpdatedAt, m.LastUpdatedBy, m.SiteID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update funds counter of site "+m.SiteID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: site %s", apperrors.ErrNotFound, m.SiteID)
	}

	return r.Commit(ctx, tx)
}

// ListFundsBySite retrieves one page of a site's funds-received records.
func (r *PgxFundsRepository) ListFundsBySite(ctx context.Context, siteID string, limit int, nextToken *string) ([]domain.FundsReceived, *string, error) {
	ms, next, err := listBySite(ctx, r.Pool, fundsTable, siteID, limit, nextToken, fundsCursor)
	if err != nil {
		return nil, nil, err
	}
	funds, _ := mapping.ToDomainFundsReceivedSlice(ms)
	return funds, next, nil
}
