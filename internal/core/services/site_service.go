package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/site_expense_tracker/internal/apperrors"
	"github.com/SscSPs/site_expense_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/site_expense_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/site_expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/site_expense_tracker/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// siteService implements the SiteSvcFacade interface
type siteService struct {
	BaseService
	siteRepo portsrepo.SiteRepositoryFacade
}

// SiteServiceOption is a functional option for configuring the site service
type SiteServiceOption func(*siteService)

// WithSiteClock overrides the clock used for audit stamps and completion checks.
func WithSiteClock(clock ClockFunc) SiteServiceOption {
	return func(s *siteService) {
		s.Clock = clock
	}
}

// NewSiteService creates a new site service with the provided options
func NewSiteService(repo portsrepo.SiteRepositoryFacade, options ...SiteServiceOption) portssvc.SiteSvcFacade {
	svc := &siteService{siteRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.SiteSvcFacade = (*siteService)(nil)

// CreateSite registers a new active site with a zero funds counter.
func (s *siteService) CreateSite(ctx context.Context, req dto.CreateSiteRequest, creatorUserID string) (*domain.Site, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	startDate, err := parseDate("startDate", req.StartDate)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	site := domain.Site{
		SiteID:        uuid.NewString(),
		Name:          name,
		JobID:         strings.TrimSpace(req.JobID),
		PONumber:      strings.TrimSpace(req.PONumber),
		StartDate:     startDate,
		Status:        domain.SiteActive,
		SupervisorID:  req.SupervisorID,
		FundsReceived: decimal.Zero,
		AuditFields:   domain.NewAuditFields(creatorUserID, now),
	}

	if err := s.siteRepo.SaveSite(ctx, site); err != nil {
		s.LogError(ctx, err, "Failed to save site", slog.String("site_name", name))
		return nil, fmt.Errorf("failed to create site: %w", err)
	}

	s.LogInfo(ctx, "Site created successfully",
		slog.String("site_id", site.SiteID),
		slog.String("supervisor_id", site.SupervisorID))
	return &site, nil
}

// GetSiteByID retrieves a site by its ID.
func (s *siteService) GetSiteByID(ctx context.Context, siteID string) (*domain.Site, error) {
	site, err := s.siteRepo.FindSiteByID(ctx, siteID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find site", slog.String("site_id", siteID))
		}
		return nil, err
	}
	return site, nil
}

// ListSites retrieves sites, optionally restricted to one supervisor.
func (s *siteService) ListSites(ctx context.Context, params dto.ListSitesParams) ([]domain.Site, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	sites, err := s.siteRepo.ListSites(ctx, params.SupervisorID, limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list sites", slog.String("supervisor_id", params.SupervisorID))
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}
	return sites, nil
}

// CompleteSite closes an active site. Recording transactions afterwards stays allowed.
func (s *siteService) CompleteSite(ctx context.Context, siteID string, req dto.CompleteSiteRequest, userID string) (*domain.Site, error) {
	completionDate, err := parseDate("completionDate", req.CompletionDate)
	if err != nil {
		return nil, err
	}

	site, err := s.GetSiteByID(ctx, siteID)
	if err != nil {
		return nil, err
	}

	if err := site.Complete(completionDate, s.Now(), userID); err != nil {
		s.GetLogger(ctx).Warn("Site completion rejected",
			slog.String("site_id", siteID),
			slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.siteRepo.UpdateSiteCompletion(ctx, *site); err != nil {
		if !errors.Is(err, apperrors.ErrInvalidTransition) {
			s.LogError(ctx, err, "Failed to persist site completion", slog.String("site_id", siteID))
		}
		return nil, fmt.Errorf("failed to complete site: %w", err)
	}

	s.LogInfo(ctx, "Site completed",
		slog.String("site_id", siteID),
		slog.String("completion_date", site.CompletionDate.Format(domain.DateLayout)))
	return site, nil
}
