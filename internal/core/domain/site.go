package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/site_expense_tracker/internal/apperrors"
	"github.com/shopspring/decimal"
)

// SiteStatus is the lifecycle state of a site. The only transition is active -> completed.
type SiteStatus string

const (
	SiteActive    SiteStatus = "active"
	SiteCompleted SiteStatus = "completed"
)

// Site is a construction site that owns all expenses, advances, funds and invoices recorded against it.
type Site struct {
	SiteID         string          `json:"siteID"`
	Name           string          `json:"name"`
	JobID          string          `json:"jobID"`
	PONumber       string          `json:"poNumber"`
	StartDate      time.Time       `json:"startDate"`
	CompletionDate *time.Time      `json:"completionDate,omitempty"`
	Status         SiteStatus      `json:"status"`
	SupervisorID   string          `json:"supervisorID"`
	FundsReceived  decimal.Decimal `json:"fundsReceived"` // cumulative, maintained by the funds write path
	AuditFields
}

// IsCompleted reports whether the site has been closed.
func (s *Site) IsCompleted() bool {
	return s.Status == SiteCompleted
}

// Complete moves the site to completed. The completion date must not precede the
// start date nor lie in the future, and a completed site can never be reopened.
func (s *Site) Complete(completionDate, now time.Time, userID string) error {
	if s.IsCompleted() {
		return fmt.Errorf("%w: site %s is already completed", apperrors.ErrInvalidTransition, s.SiteID)
	}
	day := truncateDay(completionDate)
	if day.Before(truncateDay(s.StartDate)) {
		return fmt.Errorf("%w: completion date %s is before start date %s",
			apperrors.ErrValidation, day.Format(DateLayout), s.StartDate.Format(DateLayout))
	}
	if day.After(truncateDay(now)) {
		return fmt.Errorf("%w: completion date %s is in the future", apperrors.ErrValidation, day.Format(DateLayout))
	}
	s.Status = SiteCompleted
	s.CompletionDate = &day
	s.Touch(userID, now)
	return nil
}

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
