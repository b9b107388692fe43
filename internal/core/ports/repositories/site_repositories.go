package repositories

import (
	"context"

	"github.com/SscSPs/site_expense_tracker/internal/core/domain"
)

// SiteReader defines read operations for site data
type SiteReader interface {
	// FindSiteByID retrieves a site by its unique identifier.
	FindSiteByID(ctx context.Context, siteID string) (*domain.Site, error)

	// ListSites retrieves sites ordered by start date, newest first. An empty supervisorID
	// lists every site; a non-positive limit disables paging.
	ListSites(ctx context.Context, supervisorID string, limit int, offset int) ([]domain.Site, error)
}

// SiteWriter defines write operations for site data
type SiteWriter interface {
	// SaveSite persists a new site.
	SaveSite(ctx context.Context, site domain.Site) error

	// UpdateSiteCompletion stores the completion date and status of an active site.
	// It fails with ErrInvalidTransition if the stored site is no longer active.
	UpdateSiteCompletion(ctx context.Context, site domain.Site) error
}

// SiteRepositoryFacade combines all site-related repository interfaces
type SiteRepositoryFacade interface {
	SiteReader
	SiteWriter
}
