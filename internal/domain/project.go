package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/timeplan/internal/dateutil"
)

type Project struct {
	ID             string
	Name           string
	ClientID       string
	StartDate      time.Time
	EndDate        *time.Time
	Continuous     bool // no end date; the project runs indefinitely
	EstimatedHours float64
	Color          string
	Allocation     Allocation
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate checks the project-level invariants. It does not look at phases.
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return newValidationError(CodeRequired, "project name is required")
	}
	if p.StartDate.IsZero() {
		return newValidationError(CodeRequired, "project start date is required")
	}
	if p.EstimatedHours < 0 {
		return newValidationError(CodeNegativeHours,
			fmt.Sprintf("estimated hours must be >= 0 (got %g)", p.EstimatedHours))
	}
	if p.Continuous {
		if p.EndDate != nil {
			return newValidationError(CodeInvalidDateRange, "continuous project cannot have an end date")
		}
		return nil
	}
	if p.EndDate == nil {
		return newValidationError(CodeRequired, "end date is required unless the project is continuous")
	}
	if dateutil.BeforeDay(*p.EndDate, p.StartDate) {
		return newValidationError(CodeInvalidDateRange, fmt.Sprintf("end date %s is before start date %s",
			dateutil.DayKey(*p.EndDate), dateutil.DayKey(p.StartDate)))
	}
	return nil
}

// AllocationKind returns the active allocation mode, treating nil as none.
func (p *Project) AllocationKind() AllocationKind {
	if p.Allocation == nil {
		return AllocationNone
	}
	return p.Allocation.Kind()
}

// Phases returns the project's phases, or nil when it is not phase-allocated.
func (p *Project) Phases() []Phase {
	if pa, ok := p.Allocation.(PhaseAllocation); ok {
		return pa.Phases
	}
	return nil
}

// Recurring returns the recurring estimate when the project uses one.
func (p *Project) Recurring() (*RecurringEstimate, bool) {
	if ra, ok := p.Allocation.(RecurringAllocation); ok {
		est := ra.Estimate
		return &est, true
	}
	return nil, false
}

// Covers reports whether d falls within the project's date range.
// Continuous projects cover every day from the start date on.
func (p *Project) Covers(d time.Time) bool {
	if dateutil.BeforeDay(d, p.StartDate) {
		return false
	}
	if p.EndDate == nil {
		return true
	}
	return !dateutil.AfterDay(d, *p.EndDate)
}

// DisplayID returns a short identifier for display.
func (p *Project) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
