package mapping

import (
	"database/sql"

	"github.com/SscSPs/site_expense_tracker/internal/core/domain"
	"github.com/SscSPs/site_expense_tracker/internal/models"
	"github.com/SscSPs/site_expense_tracker/internal/utils/accounting"
)

// ToModelSite converts a domain Site to a model Site
func ToModelSite(d domain.Site) models.Site {
	m := models.Site{
		SiteID:        d.SiteID,
		Name:          d.Name,
		JobID:         toNullString(d.JobID),
		PONumber:      toNullString(d.PONumber),
		StartDate:     d.StartDate,
		Status:        string(d.Status),
		SupervisorID:  d.SupervisorID,
		FundsReceived: d.FundsReceived,
		AuditFields:   auditToModel(d.AuditFields),
	}
	if d.CompletionDate != nil {
		m.CompletionDate = sql.NullTime{Time: *d.CompletionDate, Valid: true}
	}
	return m
}

// ToDomainSite converts a model Site to a domain Site. A status the code does not
// know is inferred from the completion date.
func ToDomainSite(m models.Site) (domain.Site, []accounting.Anomaly) {
	n := newRecordNormalizer(m.SiteID, accounting.KindSite, m.SiteID)
	d := domain.Site{
		SiteID:        m.SiteID,
		Name:          m.Name,
		JobID:         nullString(m.JobID),
		PONumber:      nullString(m.PONumber),
		StartDate:     m.StartDate,
		SupervisorID:  m.SupervisorID,
		FundsReceived: n.money("funds_received", m.FundsReceived),
		AuditFields:   auditToDomain(m.AuditFields),
	}
	if m.CompletionDate.Valid {
		completed := m.CompletionDate.Time
		d.CompletionDate = &completed
	}

	switch status := domain.SiteStatus(m.Status); status {
	case domain.SiteActive, domain.SiteCompleted:
		d.Status = status
	default:
		d.Status = domain.SiteActive
		if d.CompletionDate != nil {
			d.Status = domain.SiteCompleted
		}
		n.report("status", m.Status, "treated as "+string(d.Status))
	}
	return d, n.anomalies
}

// ToDomainSiteSlice converts model Sites, concatenating their anomalies.
func ToDomainSiteSlice(ms []models.Site) ([]domain.Site, []accounting.Anomaly) {
	ds := make([]domain.Site, len(ms))
	var anomalies []accounting.Anomaly
	for i, m := range ms {
		var found []accounting.Anomaly
		ds[i], found = ToDomainSite(m)
		anomalies = append(anomalies, found...)
	}
	return ds, anomalies
}

