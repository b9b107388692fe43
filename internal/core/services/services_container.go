package services

import (
	portsrepo "github.com/SscSPs/site_expense_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/site_expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/site_expense_tracker/internal/platform/config"
)

// NewServiceContainer wires every service against the given repositories.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Site:        NewSiteService(repos.SiteRepo),
		Transaction: NewTransactionService(repos),
		Balance: NewBalanceService(repos.SiteRepo, repos.LedgerRepo,
			WithRollupConcurrency(cfg.RollupConcurrency)),
	}
}
