package dto

import "github.com/SscSPs/site_expense_tracker/internal/core/domain"

// SiteBalanceResponse pairs a site with its computed balance summary.
type SiteBalanceResponse struct {
	Site    SiteResponse          `json:"site"`
	Summary domain.BalanceSummary `json:"summary"`
}

// SupervisorBalanceResponse is the balance view of one supervisor's sites.
type SupervisorBalanceResponse struct {
	SupervisorID string                `json:"supervisorID"`
	SiteCount    int                   `json:"siteCount"`
	Sites        []SiteBalanceResponse `json:"sites"`
	Total        domain.BalanceSummary `json:"total"`
}

// BalanceRollupResponse is the admin view across all sites.
type BalanceRollupResponse struct {
	Supervisors []SupervisorBalanceResponse `json:"supervisors"`
	GrandTotal  domain.BalanceSummary       `json:"grandTotal"`
}

// ToSupervisorBalanceResponse converts a domain.SupervisorBalance to its DTO.
func ToSupervisorBalanceResponse(b *domain.SupervisorBalance) SupervisorBalanceResponse {
	sites := make([]SiteBalanceResponse, len(b.Sites))
	for i, sb := range b.Sites {
		sites[i] = SiteBalanceResponse{Site: ToSiteResponse(&sb.Site), Summary: sb.Summary}
	}
	return SupervisorBalanceResponse{
		SupervisorID: b.SupervisorID,
		SiteCount:    len(sites),
		Sites:        sites,
		Total:        b.Total,
	}
}

// ToBalanceRollupResponse converts a domain.BalanceRollup to its DTO.
func ToBalanceRollupResponse(r *domain.BalanceRollup) BalanceRollupResponse {
	supervisors := make([]SupervisorBalanceResponse, len(r.Supervisors))
	for i := range r.Supervisors {
		supervisors[i] = ToSupervisorBalanceResponse(&r.Supervisors[i])
	}
	return BalanceRollupResponse{Supervisors: supervisors, GrandTotal: r.GrandTotal}
}
