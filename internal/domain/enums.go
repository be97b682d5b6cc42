package domain

import "fmt"

type RiskLevel string

const (
	RiskOnTrack  RiskLevel = "on_track"
	RiskAtRisk   RiskLevel = "at_risk"
	RiskCritical RiskLevel = "critical"
)

// EventType distinguishes scheduled time from time that was actually spent.
type EventType string

const (
	EventPlanned   EventType = "planned"
	EventTracked   EventType = "tracked"
	EventCompleted EventType = "completed"
)

// ParseEventType maps a stored or user-supplied string onto an EventType.
// "normal" is accepted as a legacy alias for planned.
func ParseEventType(s string) (EventType, error) {
	switch s {
	case "", "planned", "normal":
		return EventPlanned, nil
	case "tracked":
		return EventTracked, nil
	case "completed":
		return EventCompleted, nil
	default:
		return "", fmt.Errorf("unknown event type %q", s)
	}
}

// EventCategory controls whether an event can count toward project time.
type EventCategory string

const (
	CategoryEvent EventCategory = "event"
	CategoryHabit EventCategory = "habit"
	CategoryTask  EventCategory = "task"
)

func ParseEventCategory(s string) (EventCategory, error) {
	switch s {
	case "", "event":
		return CategoryEvent, nil
	case "habit":
		return CategoryHabit, nil
	case "task":
		return CategoryTask, nil
	default:
		return "", fmt.Errorf("unknown event category %q", s)
	}
}

// CountsTowardProject reports whether events of this category may ever be
// attributed to project time.
func (c EventCategory) CountsTowardProject() bool {
	switch c {
	case CategoryHabit, CategoryTask:
		return false
	default:
		return true
	}
}

// EstimateSource tags which of the four kinds of time a DayEstimate shows.
type EstimateSource string

const (
	SourcePlannedEvent   EstimateSource = "planned-event"
	SourceCompletedEvent EstimateSource = "completed-event"
	SourceAutoEstimate   EstimateSource = "auto-estimate"
	SourceNone           EstimateSource = "none"
)

type AllocationKind string

const (
	AllocationNone      AllocationKind = "none"
	AllocationPhases    AllocationKind = "phases"
	AllocationRecurring AllocationKind = "recurring"
)

type RecurrencePattern string

const (
	RecurDaily   RecurrencePattern = "daily"
	RecurWeekly  RecurrencePattern = "weekly"
	RecurMonthly RecurrencePattern = "monthly"
)

// ValidRecurrencePatterns is the canonical set of accepted pattern strings.
var ValidRecurrencePatterns = map[string]bool{
	"daily": true, "weekly": true, "monthly": true,
}
