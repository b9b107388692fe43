package pgsql

import (
	"context"
	"fmt"
	"strconv"

	"github.com/SscSPs/site_expense_tracker/internal/apperrors"
	"github.com/SscSPs/site_expense_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/site_expense_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/site_expense_tracker/internal/models"
	"github.com/SscSPs/site_expense_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var sitesTable = siteListing{
	table: "sites",
	columns: "site_id, name, job_id, po_number, start_date, completion_date, status, supervisor_id, funds_received, " +
		auditColumns,
	idCol: "site_id",
}

type PgxSiteRepository struct {
	BaseRepository
}

// newPgxSiteRepository creates a new repository for site data.
func newPgxSiteRepository(pool *pgxpool.Pool) portsrepo.SiteRepositoryFacade {
	return &PgxSiteRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SiteRepositoryFacade = (*PgxSiteRepository)(nil)

// SaveSite inserts a new site.
func (r *PgxSiteRepository) SaveSite(ctx context.Context, site domain.Site) error {
	m := mapping.ToModelSite(site)
	query := `
		INSERT INTO sites (site_id, name, job_id, po_number, start_date, completion_date, status, supervisor_id,
		                   funds_received, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.SiteID, m.Name, m.JobID, m.PONumber, m.StartDate, m.CompletionDate, m.Status, m.SupervisorID,
		m.FundsReceived, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "site "+m.SiteID)
	}
	return nil
}

// FindSiteByID retrieves a site by its ID.
func (r *PgxSiteRepository) FindSiteByID(ctx context.Context, siteID string) (*domain.Site, error) {
	m, err := findOne[models.Site](ctx, r.Pool, sitesTable, siteID)
	if err != nil {
		return nil, err
	}
	site, _ := mapping.ToDomainSite(*m)
	return &site, nil
}

// ListSites retrieves sites ordered by start date, newest first.
func (r *PgxSiteRepository) ListSites(ctx context.Context, supervisorID string, limit int, offset int) ([]domain.Site, error) {
	query := "SELECT " + sitesTable.columns + " FROM sites"
	var args []any
	if supervisorID != "" {
		args = append(args, supervisorID)
		query += " WHERE supervisor_id = $1"
	}
	query += " ORDER BY start_date DESC, site_id"
	if limit > 0 {
		args = append(args, limit, offset)
		query += " LIMIT $" + strconv.Itoa(len(args)-1) + " OFFSET $" + strconv.Itoa(len(args))
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list sites", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Site])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan site rows", err)
	}
	sites, _ := mapping.ToDomainSiteSlice(ms)
	return sites, nil
}

// UpdateSiteCompletion persists the active -> completed transition. The status guard
// makes a concurrent second completion fail instead of moving the date.
func (r *PgxSiteRepository) UpdateSiteCompletion(ctx context.Context, site domain.Site) error {
	m := mapping.ToModelSite(site)
	query := `
		UPDATE sites
		SET status = $1, completion_date = $2, last_updated_at = $3, last_updated_by = $4
		WHERE site_id = $5 AND status <> $1 AND completion_date IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, m.Status, m.CompletionDate, m.LastUpdatedAt, m.LastUpdatedBy, m.SiteID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to complete site "+m.SiteID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: site %s is not active", apperrors.ErrInvalidTransition, m.SiteID)
	}
	return nil
}
