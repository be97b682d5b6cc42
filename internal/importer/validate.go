package importer

import (
	"fmt"

	"github.com/alexanderramin/timeplan/internal/dateutil"
	"github.com/alexanderramin/timeplan/internal/domain"
)

// ValidateImportSchema checks the plan for errors before conversion.
// Returns every problem found rather than stopping at the first. Phase
// overlap and budget rules depend on configured policy and are checked when
// the plan is persisted.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	errs = append(errs, validateProject(&schema.Project)...)
	if len(schema.Phases) > 0 && schema.Recurring != nil {
		errs = append(errs, fmt.Errorf("%s: a project takes phases or a recurring estimate, not both",
			domain.CodeAllocationConflict))
	}
	for i := range schema.Phases {
		errs = append(errs, validatePhase(i, &schema.Phases[i])...)
	}
	if schema.Recurring != nil {
		errs = append(errs, validateRecurring(schema.Recurring)...)
	}
	for i := range schema.Events {
		errs = append(errs, validateEvent(i, &schema.Events[i])...)
	}
	for i, h := range schema.Holidays {
		if _, err := dateutil.ParseDay(h.Date); err != nil {
			errs = append(errs, fmt.Errorf("holidays[%d].date: invalid date format %q (expected YYYY-MM-DD)", i, h.Date))
		}
	}
	return errs
}

func validateProject(p *ProjectImport) []error {
	var errs []error

	if p.Name == "" {
		errs = append(errs, fmt.Errorf("project.name is required"))
	}
	if p.EstimatedHours < 0 {
		errs = append(errs, fmt.Errorf("project.estimated_hours must be >= 0 (got %g)", p.EstimatedHours))
	}

	start, startErr := dateutil.ParseDay(p.StartDate)
	if p.StartDate == "" {
		errs = append(errs, fmt.Errorf("project.start_date is required"))
	} else if startErr != nil {
		errs = append(errs, fmt.Errorf("project.start_date: invalid date format %q (expected YYYY-MM-DD)", p.StartDate))
	}

	switch {
	case p.Continuous && p.EndDate != nil:
		errs = append(errs, fmt.Errorf("project.end_date must be omitted for a continuous project"))
	case !p.Continuous && p.EndDate == nil:
		errs = append(errs, fmt.Errorf("project.end_date is required unless continuous is set"))
	case p.EndDate != nil:
		end, err := dateutil.ParseDay(*p.EndDate)
		if err != nil {
			errs = append(errs, fmt.Errorf("project.end_date: invalid date format %q (expected YYYY-MM-DD)", *p.EndDate))
		} else if startErr == nil && end.Before(start) {
			errs = append(errs, fmt.Errorf("project.end_date %q must not be before start_date %q", *p.EndDate, p.StartDate))
		}
	}
	return errs
}

func validatePhase(i int, ph *PhaseImport) []error {
	var errs []error
	prefix := fmt.Sprintf("phases[%d]", i)

	start, startErr := dateutil.ParseDay(ph.StartDate)
	if startErr != nil {
		errs = append(errs, fmt.Errorf("%s.start_date: invalid date format %q (expected YYYY-MM-DD)", prefix, ph.StartDate))
	}
	end, endErr := dateutil.ParseDay(ph.EndDate)
	if endErr != nil {
		errs = append(errs, fmt.Errorf("%s.end_date: invalid date format %q (expected YYYY-MM-DD)", prefix, ph.EndDate))
	}
	if startErr == nil && endErr == nil && end.Before(start) {
		errs = append(errs, fmt.Errorf("%s: end_date %q is before start_date %q", prefix, ph.EndDate, ph.StartDate))
	}
	if ph.Hours < 0 {
		errs = append(errs, fmt.Errorf("%s.hours must be >= 0 (got %g)", prefix, ph.Hours))
	}
	return errs
}

func validateRecurring(r *RecurringImport) []error {
	var errs []error

	if !domain.ValidRecurrencePatterns[r.Pattern] {
		errs = append(errs, fmt.Errorf("recurring.pattern: invalid value %q", r.Pattern))
	}
	if r.Interval < 0 {
		errs = append(errs, fmt.Errorf("recurring.interval must be >= 1"))
	}
	if r.DayOfMonth < 0 || r.DayOfMonth > 31 {
		errs = append(errs, fmt.Errorf("recurring.day_of_month %d out of range", r.DayOfMonth))
	}
	if r.HoursPerOccurrence < 0 {
		errs = append(errs, fmt.Errorf("recurring.hours_per_occurrence must be >= 0"))
	}
	for _, wd := range r.Weekdays {
		if _, err := dateutil.ParseWeekday(wd); err != nil {
			errs = append(errs, fmt.Errorf("recurring.weekdays: %w", err))
		}
	}
	return errs
}

func validateEvent(i int, e *EventImport) []error {
	var errs []error
	prefix := fmt.Sprintf("events[%d]", i)

	start, startErr := dateutil.ParseWallClock(e.Start)
	if startErr != nil {
		errs = append(errs, fmt.Errorf("%s.start: %w", prefix, startErr))
	}
	end, endErr := dateutil.ParseWallClock(e.End)
	if endErr != nil {
		errs = append(errs, fmt.Errorf("%s.end: %w", prefix, endErr))
	}
	if startErr == nil && endErr == nil && end.Before(start) {
		errs = append(errs, fmt.Errorf("%s: end %q is before start %q", prefix, e.End, e.Start))
	}
	if e.Type != "" {
		if _, err := domain.ParseEventType(e.Type); err != nil {
			errs = append(errs, fmt.Errorf("%s.type: %w", prefix, err))
		}
	}
	if e.Category != "" {
		if _, err := domain.ParseEventCategory(e.Category); err != nil {
			errs = append(errs, fmt.Errorf("%s.category: %w", prefix, err))
		}
	}
	return errs
}
