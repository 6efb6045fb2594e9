package domain

import (
	"fmt"
	"regexp"
	"time"
)

var shortIDPattern = regexp.MustCompile(`^[A-Z]{3,6}[0-9]{2,4}$`)

type StudyPlan struct {
	ID         string
	ShortID    string
	Name       string
	StartDate  time.Time
	ExamDate   time.Time
	Weekly     WeeklyAvailability
	Rules      []WeightRule
	Status     PlanStatus
	ArchivedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ValidateShortID checks that ShortID is non-empty and matches the required
// format: 3-6 uppercase letters followed by 2-4 digits (e.g. CPA01, ENEM2025).
func (p *StudyPlan) ValidateShortID() error {
	if p.ShortID == "" {
		return fmt.Errorf("short ID is required (use --id flag)")
	}
	if !shortIDPattern.MatchString(p.ShortID) {
		return fmt.Errorf("short ID %q must be 3-6 uppercase letters followed by 2-4 digits (e.g. CPA01)", p.ShortID)
	}
	return nil
}

// ValidateDates checks that the exam date falls strictly after the start date.
func (p *StudyPlan) ValidateDates() error {
	if !p.ExamDate.After(p.StartDate) {
		return fmt.Errorf("exam date %s must be after start date %s",
			p.ExamDate.Format("2006-01-02"), p.StartDate.Format("2006-01-02"))
	}
	return nil
}

// DisplayID returns the best short identifier for display.
// It prefers ShortID; if empty it truncates ID to 8 characters.
func (p *StudyPlan) DisplayID() string {
	if p.ShortID != "" {
		return p.ShortID
	}
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
