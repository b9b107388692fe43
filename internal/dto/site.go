package dto

import (
	"time"

	"github.com/SscSPs/site_expense_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSiteRequest defines the data needed to register a new site.
type CreateSiteRequest struct {
	Name         string `json:"name" binding:"required,max=200"`
	JobID        string `json:"jobID" binding:"max=100"`
	PONumber     string `json:"poNumber" binding:"max=100"`
	StartDate    string `json:"startDate" binding:"required,datetime=2006-01-02" example:"2024-01-15"`
	SupervisorID string `json:"supervisorID" binding:"required"`
}

// CompleteSiteRequest carries the completion date of a site.
type CompleteSiteRequest struct {
	CompletionDate string `json:"completionDate" binding:"required,datetime=2006-01-02" example:"2024-06-30"`
}

// ListSitesParams defines query parameters for listing sites.
type ListSitesParams struct {
	SupervisorID string `form:"supervisorID"`
	Limit        int    `form:"limit,default=20" binding:"min=0,max=200"`
	Offset       int    `form:"offset,default=0" binding:"min=0"`
}

// SiteResponse defines the data returned for a site.
type SiteResponse struct {
	SiteID         string          `json:"siteID"`
	Name           string          `json:"name"`
	JobID          string          `json:"jobID"`
	PONumber       string          `json:"poNumber"`
	StartDate      string          `json:"startDate"`
	CompletionDate *string         `json:"completionDate,omitempty"`
	Status         string          `json:"status"`
	SupervisorID   string          `json:"supervisorID"`
	FundsReceived  decimal.Decimal `json:"fundsReceived"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy  string          `json:"lastUpdatedBy"`
}

// ToSiteResponse converts a domain.Site to SiteResponse DTO
func ToSiteResponse(s *domain.Site) SiteResponse {
	resp := SiteResponse{
		SiteID:        s.SiteID,
		Name:          s.Name,
		JobID:         s.JobID,
		PONumber:      s.PONumber,
		StartDate:     s.StartDate.Format(domain.DateLayout),
		Status:        string(s.Status),
		SupervisorID:  s.SupervisorID,
		FundsReceived: s.FundsReceived,
		CreatedAt:     s.CreatedAt,
		CreatedBy:     s.CreatedBy,
		LastUpdatedAt: s.LastUpdatedAt,
		LastUpdatedBy: s.LastUpdatedBy,
	}
	if s.CompletionDate != nil {
		completed := s.CompletionDate.Format(domain.DateLayout)
		resp.CompletionDate = &completed
	}
	return resp
}

// ToListSiteResponse converts a slice of domain.Site to a slice of SiteResponse DTOs
func ToListSiteResponse(sites []domain.Site) []SiteResponse {
	res := make([]SiteResponse, len(sites))
	for i, s := range sites {
		res[i] = ToSiteResponse(&s)
	}
	return res
}
