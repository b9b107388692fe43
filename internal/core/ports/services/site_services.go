package services

import (
	"context"

	"github.com/SscSPs/site_expense_tracker/internal/core/domain"
	"github.com/SscSPs/site_expense_tracker/internal/dto"
)

// SiteReaderSvc defines read operations for sites
type SiteReaderSvc interface {
	// GetSiteByID retrieves a site by its ID.
	GetSiteByID(ctx context.Context, siteID string) (*domain.Site, error)

	// ListSites retrieves sites, optionally restricted to one supervisor.
	ListSites(ctx context.Context, params dto.ListSitesParams) ([]domain.Site, error)
}

// SiteWriterSvc defines write operations for sites
type SiteWriterSvc interface {
	// CreateSite registers a new active site.
	CreateSite(ctx context.Context, req dto.CreateSiteRequest, creatorUserID string) (*domain.Site, error)

	// CompleteSite closes an active site. The transition is irreversible.
	CompleteSite(ctx context.Context, siteID string, req dto.CompleteSiteRequest, userID string) (*domain.Site, error)
}

// SiteSvcFacade combines all site-related service interfaces
type SiteSvcFacade interface {
	SiteReaderSvc
	SiteWriterSvc
}
