package domain

import (
	"fmt"
	"time"

	"github.com/alexanderramin/timeplan/internal/dateutil"
)

type CalendarEvent struct {
	ID              string
	Title           string
	Start           time.Time
	End             time.Time
	ProjectID       *string
	Completed       bool
	Type            EventType
	Category        EventCategory
	OriginalEventID *string // set on the continuation half of a midnight split
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (e *CalendarEvent) Validate() error {
	if e.Start.IsZero() || e.End.IsZero() {
		return &ValidationError{Code: CodeInvalidEvent, Message: "event start and end are required", EntityID: e.ID}
	}
	if e.End.Before(e.Start) {
		return &ValidationError{
			Code:     CodeInvalidEvent,
			Message:  fmt.Sprintf("event ends (%s) before it starts (%s)", e.End.Format(time.RFC3339), e.Start.Format(time.RFC3339)),
			EntityID: e.ID,
		}
	}
	if _, err := ParseEventType(string(e.Type)); err != nil {
		return &ValidationError{Code: CodeInvalidEvent, Message: err.Error(), EntityID: e.ID}
	}
	if _, err := ParseEventCategory(string(e.Category)); err != nil {
		return &ValidationError{Code: CodeInvalidEvent, Message: err.Error(), EntityID: e.ID}
	}
	return nil
}

// BelongsTo reports whether the event is linked to projectID.
func (e *CalendarEvent) BelongsTo(projectID string) bool {
	return e.ProjectID != nil && *e.ProjectID == projectID
}

// DurationHours is the event's total length in hours.
func (e *CalendarEvent) DurationHours() float64 {
	return dateutil.DurationHours(e.Start, e.End)
}

// CrossesMidnight reports whether the event ends on a later calendar day
// than it starts. An event ending exactly at midnight does not cross.
func (e *CalendarEvent) CrossesMidnight() bool {
	if dateutil.IsSameDay(e.Start, e.End) {
		return false
	}
	return !e.End.Equal(dateutil.StartOfDay(e.End)) || dateutil.DaysBetween(e.Start, e.End) > 1
}

// SplitAtMidnight cuts the event at every midnight it spans. The first part
// keeps the original ID; later parts get IDs from newID and point back to the
// original through OriginalEventID.
func (e CalendarEvent) SplitAtMidnight(newID func() string) []CalendarEvent {
	if !e.CrossesMidnight() {
		return []CalendarEvent{e}
	}

	var parts []CalendarEvent
	originalID := e.ID
	cursor := e.Start
	for cursor.Before(e.End) {
		next := dateutil.StartOfDay(cursor).AddDate(0, 0, 1)
		if next.After(e.End) {
			next = e.End
		}
		part := e
		part.Start = cursor
		part.End = next
		if len(parts) > 0 {
			part.ID = newID()
			part.OriginalEventID = &originalID
		}
		parts = append(parts, part)
		cursor = next
	}
	return parts
}
