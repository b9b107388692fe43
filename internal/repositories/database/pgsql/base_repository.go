package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/site_expense_tracker/internal/apperrors"
	portsrepo "github.com/SscSPs/site_expense_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/site_expense_tracker/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

var _ portsrepo.TransactionManager = (*BaseRepository)(nil)

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// mapWriteError turns constraint violations into application errors.
func mapWriteError(err error, what string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%w: %s already exists", apperrors.ErrDuplicate, what)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%w: site for %s does not exist", apperrors.ErrNotFound, what)
		}
	}
	return apperrors.NewAppError(500, "failed to save "+what, err)
}

// siteListing describes how to page through one per-site transaction table.
type siteListing struct {
	table   string
	columns string
	dateCol string
	idCol   string
}

// listBySite fetches one page of a site's records, newest first. It asks for one row
// beyond limit to find out whether another page exists.
func listBySite[M any](ctx context.Context, q querier, l siteListing, siteID string, limit int, nextToken *string, cursorOf func(M) pagination.Cursor) ([]M, *string, error) {
	limit = pagination.NormalizeLimit(limit)

	var sb strings.Builder
	sb.WriteString("SELECT " + l.columns + " FROM " + l.table + " WHERE site_id = $1")
	args := []any{siteID}

	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		// Tuple comparison keeps the cursor condition in step with the ORDER BY
		sb.WriteString(" AND (" + l.dateCol + ", created_at, " + l.idCol + ") < ($2, $3, $4::uuid)")
		args = append(args, cursor.RecordDate, cursor.CreatedAt, cursor.RecordID)
	}
	sb.WriteString(" ORDER BY " + l.dateCol + " DESC, created_at DESC, " + l.idCol + " DESC")
	args = append(args, limit+1)
	sb.WriteString(" LIMIT $" + strconv.Itoa(len(args)))

	rows, err := q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query "+l.table+" for site "+siteID, err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[M])
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to scan "+l.table+" rows for site "+siteID, err)
	}

	page, next := pagination.TrimPage(records, limit, cursorOf)
	return page, next, nil
}

// allBySite fetches every record of a site in listing order.
func allBySite[M any](ctx context.Context, q querier, l siteListing, siteID string) ([]M, error) {
	query := "SELECT " + l.columns + " FROM " + l.table + " WHERE site_id = $1 ORDER BY " +
		l.dateCol + " DESC, created_at DESC, " + l.idCol + " DESC"
	rows, err := q.Query(ctx, query, siteID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query "+l.table+" for site "+siteID, err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[M])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan "+l.table+" rows for site "+siteID, err)
	}
	return records, nil
}

// findOne fetches a single record by primary key.
func findOne[M any](ctx context.Context, q querier, l siteListing, id string) (*M, error) {
	rows, err := q.Query(ctx, "SELECT "+l.columns+" FROM "+l.table+" WHERE "+l.idCol+" = $1", id)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query "+l.table+" by ID "+id, err)
	}
	record, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[M])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan "+l.table+" row "+id, err)
	}
	return record, nil
}

const auditColumns = "created_at, created_by, last_updated_at, last_updated_by"
