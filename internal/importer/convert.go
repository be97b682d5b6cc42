package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/timeplan/internal/dateutil"
	"github.com/alexanderramin/timeplan/internal/domain"
	"github.com/google/uuid"
)

// Plan holds the domain objects produced from an ImportSchema, ready for
// persistence.
type Plan struct {
	Project   *domain.Project
	Phases    []*domain.Phase
	Recurring *domain.RecurringEstimate
	Events    []*domain.CalendarEvent
	Holidays  []*domain.Holiday
}

// Convert transforms a validated ImportSchema into domain objects.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema) (*Plan, error) {
	now := time.Now().UTC()

	startDate, err := dateutil.ParseDay(schema.Project.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	var endDate *time.Time
	if schema.Project.EndDate != nil {
		d, err := dateutil.ParseDay(*schema.Project.EndDate)
		if err != nil {
			return nil, fmt.Errorf("parsing end_date: %w", err)
		}
		endDate = &d
	}

	project := &domain.Project{
		ID:             uuid.New().String(),
		Name:           schema.Project.Name,
		ClientID:       schema.Project.ClientID,
		StartDate:      startDate,
		EndDate:        endDate,
		Continuous:     schema.Project.Continuous,
		EstimatedHours: schema.Project.EstimatedHours,
		Color:          schema.Project.Color,
		Allocation:     domain.NoAllocation{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	plan := &Plan{Project: project}

	for i, ph := range schema.Phases {
		start, err := dateutil.ParseDay(ph.StartDate)
		if err != nil {
			return nil, fmt.Errorf("phases[%d]: parsing start_date: %w", i, err)
		}
		end, err := dateutil.ParseDay(ph.EndDate)
		if err != nil {
			return nil, fmt.Errorf("phases[%d]: parsing end_date: %w", i, err)
		}
		name := ph.Name
		if name == "" {
			name = fmt.Sprintf("Phase %d", i+1)
		}
		plan.Phases = append(plan.Phases, &domain.Phase{
			ID:        uuid.New().String(),
			ProjectID: project.ID,
			Name:      name,
			StartDate: start,
			EndDate:   end,
			Hours:     ph.Hours,
			Order:     i,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	if r := schema.Recurring; r != nil {
		weekdays := make([]time.Weekday, 0, len(r.Weekdays))
		for _, s := range r.Weekdays {
			wd, err := dateutil.ParseWeekday(s)
			if err != nil {
				return nil, fmt.Errorf("recurring: %w", err)
			}
			weekdays = append(weekdays, wd)
		}
		plan.Recurring = &domain.RecurringEstimate{
			ID:                 uuid.New().String(),
			ProjectID:          project.ID,
			Pattern:            domain.RecurrencePattern(r.Pattern),
			Interval:           r.Interval,
			Weekdays:           weekdays,
			DayOfMonth:         r.DayOfMonth,
			HoursPerOccurrence: r.HoursPerOccurrence,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
	}

	for i, e := range schema.Events {
		ev, err := convertEvent(e, project.ID, now)
		if err != nil {
			return nil, fmt.Errorf("events[%d]: %w", i, err)
		}
		plan.Events = append(plan.Events, ev)
	}

	for i, h := range schema.Holidays {
		d, err := dateutil.ParseDay(h.Date)
		if err != nil {
			return nil, fmt.Errorf("holidays[%d]: %w", i, err)
		}
		plan.Holidays = append(plan.Holidays, &domain.Holiday{
			ID:        uuid.New().String(),
			Date:      d,
			Name:      h.Name,
			Recurring: h.Recurring,
			CreatedAt: now,
		})
	}

	return plan, nil
}

func convertEvent(e EventImport, projectID string, now time.Time) (*domain.CalendarEvent, error) {
	start, err := dateutil.ParseWallClock(e.Start)
	if err != nil {
		return nil, err
	}
	end, err := dateutil.ParseWallClock(e.End)
	if err != nil {
		return nil, err
	}
	typ, err := domain.ParseEventType(e.Type)
	if err != nil {
		return nil, err
	}
	cat, err := domain.ParseEventCategory(e.Category)
	if err != nil {
		return nil, err
	}

	ev := &domain.CalendarEvent{
		ID:        uuid.New().String(),
		Title:     e.Title,
		Start:     start,
		End:       end,
		Completed: e.Completed || typ == domain.EventCompleted,
		Type:      typ,
		Category:  cat,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if !e.Unassigned {
		pid := projectID
		ev.ProjectID = &pid
	}
	return ev, nil
}
