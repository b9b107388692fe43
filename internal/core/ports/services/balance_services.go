package services

import (
	"context"

	"github.com/SscSPs/site_expense_tracker/internal/core/domain"
)

// BalanceSvc computes balances by re-reading the full transaction set on every call.
type BalanceSvc interface {
	// GetSiteBalance returns the balance summary of one site.
	GetSiteBalance(ctx context.Context, siteID string) (*domain.BalanceSummary, error)

	// GetSupervisorBalance returns per-site summaries and their total for one supervisor.
	GetSupervisorBalance(ctx context.Context, supervisorID string) (*domain.SupervisorBalance, error)

	// GetBalanceRollup returns summaries for every site grouped by supervisor.
	GetBalanceRollup(ctx context.Context) (*domain.BalanceRollup, error)
}
