package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/site_expense_tracker/internal/apperrors"
	"github.com/SscSPs/site_expense_tracker/internal/core/domain"
)

// Values that end a record's review. Anything else, including an unrecognized
// stored value, reads back as pending and may still transition.
var (
	settledApproval = []string{string(domain.ApprovalApproved), string(domain.ApprovalRejected)}
	settledPayment  = []string{string(domain.PaymentPaid)}
)

// transitionStatus moves a record's status column to a new value while it is not
// settled. Stored values may be loosely cased, so the guard compares the normalized form.
func transitionStatus(ctx context.Context, q querier, table, idCol, statusCol, id string, settled []string, to, userID string, at time.Time) error {
	query := "UPDATE " + table + " SET " + statusCol + " = $1, last_updated_at = $2, last_updated_by = $3 " +
		"WHERE " + idCol + " = $4 AND lower(btrim(" + statusCol + ")) <> ALL($5)"
	cmdTag, err := q.Exec(ctx, query, to, at, userID, id, settled)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update "+statusCol+" of "+table+" "+id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s %s was already settled", apperrors.ErrInvalidTransition, table, id)
	}
	return nil
}
