package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/SscSPs/site_expense_tracker/internal/apperrors"
	"github.com/SscSPs/site_expense_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/site_expense_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/site_expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/site_expense_tracker/internal/utils/accounting"
	"golang.org/x/sync/errgroup"
)

const defaultRollupConcurrency = 8

// balanceService implements the BalanceSvc interface. It holds no cached state:
// every call reloads the site ledgers and recomputes from scratch.
type balanceService struct {
	BaseService
	siteRepo    portsrepo.SiteReader
	ledgerRepo  portsrepo.LedgerReader
	concurrency int
}

// BalanceServiceOption is a functional option for configuring the balance service
type BalanceServiceOption func(*balanceService)

// WithRollupConcurrency bounds how many site ledgers are loaded in parallel.
func WithRollupConcurrency(n int) BalanceServiceOption {
	return func(s *balanceService) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// NewBalanceService creates a new balance service with the provided options
func NewBalanceService(siteRepo portsrepo.SiteReader, ledgerRepo portsrepo.LedgerReader, options ...BalanceServiceOption) portssvc.BalanceSvc {
	svc := &balanceService{
		siteRepo:    siteRepo,
		ledgerRepo:  ledgerRepo,
		concurrency: defaultRollupConcurrency,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.BalanceSvc = (*balanceService)(nil)

// GetSiteBalance returns the balance summary of one site.
func (s *balanceService) GetSiteBalance(ctx context.Context, siteID string) (*domain.BalanceSummary, error) {
	site, err := s.siteRepo.FindSiteByID(ctx, siteID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find site for balance", slog.String("site_id", siteID))
		}
		return nil, err
	}
	summary, err := s.computeSiteBalance(ctx, *site)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// GetSupervisorBalance returns per-site summaries and their total for one supervisor.
// A supervisor without sites gets an empty, all-zero result.
func (s *balanceService) GetSupervisorBalance(ctx context.Context, supervisorID string) (*domain.SupervisorBalance, error) {
	sites, err := s.siteRepo.ListSites(ctx, supervisorID, 0, 0)
	if err != nil {
		s.LogError(ctx, err, "Failed to list supervisor sites", slog.String("supervisor_id", supervisorID))
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}

	balances, err := s.computeAll(ctx, sites)
	if err != nil {
		return nil, err
	}
	result := newSupervisorBalance(supervisorID, balances)

	s.LogInfo(ctx, "Supervisor balance computed",
		slog.String("supervisor_id", supervisorID),
		slog.Int("site_count", len(balances)),
		slog.String("total_balance", result.Total.TotalBalance.String()))
	return &result, nil
}

// GetBalanceRollup returns summaries for every site grouped by supervisor, ordered by supervisor ID.
func (s *balanceService) GetBalanceRollup(ctx context.Context) (*domain.BalanceRollup, error) {
	sites, err := s.siteRepo.ListSites(ctx, "", 0, 0)
	if err != nil {
		s.LogError(ctx, err, "Failed to list sites for rollup")
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}

	balances, err := s.computeAll(ctx, sites)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]domain.SiteBalance)
	for _, b := range balances {
		grouped[b.Site.SupervisorID] = append(grouped[b.Site.SupervisorID], b)
	}
	supervisorIDs := make([]string, 0, len(grouped))
	for id := range grouped {
		supervisorIDs = append(supervisorIDs, id)
	}
	sort.Strings(supervisorIDs)

	rollup := domain.BalanceRollup{
		Supervisors: make([]domain.SupervisorBalance, 0, len(supervisorIDs)),
		GrandTotal:  domain.ZeroBalance(""),
	}
	for _, id := range supervisorIDs {
		sb := newSupervisorBalance(id, grouped[id])
		rollup.Supervisors = append(rollup.Supervisors, sb)
		rollup.GrandTotal = rollup.GrandTotal.Add(sb.Total)
	}

	s.LogInfo(ctx, "Balance rollup computed",
		slog.Int("supervisor_count", len(rollup.Supervisors)),
		slog.Int("site_count", len(balances)),
		slog.String("total_balance", rollup.GrandTotal.TotalBalance.String()))
	return &rollup, nil
}

// computeAll computes every site's summary with bounded parallelism.
// Results keep the order of sites.
func (s *balanceService) computeAll(ctx context.Context, sites []domain.Site) ([]domain.SiteBalance, error) {
	balances := make([]domain.SiteBalance, len(sites))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, site := range sites {
		g.Go(func() error {
			summary, err := s.computeSiteBalance(gctx, site)
			if err != nil {
				return err
			}
			balances[i] = domain.SiteBalance{Site: site, Summary: summary}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return balances, nil
}

// computeSiteBalance loads the ledger, logs absorbed anomalies, computes and validates.
func (s *balanceService) computeSiteBalance(ctx context.Context, site domain.Site) (domain.BalanceSummary, error) {
	logger := s.GetLogger(ctx).With(slog.String("site_id", site.SiteID))

	ledger, anomalies, err := s.ledgerRepo.LoadSiteLedger(ctx, site.SiteID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load site ledger", slog.String("site_id", site.SiteID))
		return domain.BalanceSummary{}, fmt.Errorf("failed to load ledger for site %s: %w", site.SiteID, err)
	}
	accounting.LogAnomalies(ctx, logger, anomalies)

	summary := accounting.ComputeBalance(ledger)
	if err := summary.Validate(); err != nil {
		logger.Error("Computed balance summary is inconsistent", slog.String("error", err.Error()))
		return domain.BalanceSummary{}, err
	}

	if !site.FundsReceived.Equal(summary.FundsReceived) {
		logger.Warn("Site funds counter differs from recorded funds",
			slog.String("counter", site.FundsReceived.String()),
			slog.String("recorded", summary.FundsReceived.String()))
	}

	logger.Debug("Site balance computed",
		slog.Int("anomaly_count", len(anomalies)),
		slog.String("total_balance", summary.TotalBalance.String()))
	return summary, nil
}

func newSupervisorBalance(supervisorID string, sites []domain.SiteBalance) domain.SupervisorBalance {
	result := domain.SupervisorBalance{
		SupervisorID: supervisorID,
		Sites:        make([]domain.SiteBalance, 0, len(sites)),
		Total:        domain.ZeroBalance(""),
	}
	for _, b := range sites {
		result.Sites = append(result.Sites, b)
		result.Total = result.Total.Add(b.Summary)
	}
	return result
}
