package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager is implemented by repositories whose writes span more than
// one statement, such as recording funds and raising the site's counter together.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	// Rollback is safe to defer after a successful Commit.
	Rollback(ctx context.Context, tx pgx.Tx) error
}
