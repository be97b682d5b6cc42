package contract

import (
	"time"

	"github.com/alexanderramin/timeplan/internal/domain"
)

// MaxTimelineDays bounds a single timeline request.
const MaxTimelineDays = 366

type TimelineRequest struct {
	From         time.Time
	To           time.Time
	Today        *time.Time
	ProjectScope []string
	// IncludeEmpty keeps projects whose days all resolve to none.
	IncludeEmpty bool
}

// NewTimelineRequest covers the 7 days starting at from.
func NewTimelineRequest(from time.Time) TimelineRequest {
	return TimelineRequest{
		From: from,
		To:   from.AddDate(0, 0, 6),
	}
}

type ProjectTimeline struct {
	ProjectID   string
	ProjectName string
	Color       string
	Days        []domain.DayEstimate
	TotalHours  float64
}

// DayTotal sums every project's hours on one date against that day's capacity.
type DayTotal struct {
	Date          time.Time
	Hours         float64
	CapacityHours float64
	Working       bool
}

type TimelineResponse struct {
	From     time.Time
	To       time.Time
	Today    time.Time
	Projects []ProjectTimeline
	Totals   []DayTotal
	Warnings []string
}
