package scheduler

import (
	"math"
	"time"

	"github.com/alexanderramin/timeplan/internal/dateutil"
	"github.com/alexanderramin/timeplan/internal/domain"
)

type RiskInput struct {
	Today          time.Time
	EndDate        *time.Time
	EstimatedHours float64
	CompletedHours float64
	// PlannedHours is planned-event time still ahead of today.
	PlannedHours float64
	// WorkingDaysLeft counts working days from today through the end date.
	WorkingDaysLeft int
	// CapacityHours is the schedule capacity over those working days.
	CapacityHours    float64
	RecentDailyHours float64
}

type RiskResult struct {
	Level              domain.RiskLevel
	DaysLeft           *int
	RemainingHours     float64
	RequiredDailyHours float64
	SlackHoursPerDay   float64
	ProgressPct        float64
	CapacityLoadPct    float64
}

// ProjectPace is one project's row in the insights view.
type ProjectPace struct {
	ProjectID   string
	ProjectName string
	EndDate     *time.Time
	Risk        RiskResult
}

func ComputeRisk(input RiskInput) RiskResult {
	remaining := math.Max(0, input.EstimatedHours-input.CompletedHours)

	var progressPct float64
	if input.EstimatedHours > 0 {
		progressPct = input.CompletedHours / input.EstimatedHours * 100
	}

	// No end date => on_track (no deadline to miss)
	if input.EndDate == nil {
		return RiskResult{
			Level:          domain.RiskOnTrack,
			RemainingHours: remaining,
			ProgressPct:    progressPct,
		}
	}

	daysLeft := dateutil.DaysBetween(input.Today, *input.EndDate)
	result := RiskResult{
		DaysLeft:       &daysLeft,
		RemainingHours: remaining,
		ProgressPct:    progressPct,
	}
	if input.CapacityHours > 0 {
		result.CapacityLoadPct = remaining / input.CapacityHours * 100
	}

	if remaining == 0 {
		result.Level = domain.RiskOnTrack
		return result
	}

	// Past due, or no working day left to put the hours on.
	if daysLeft < 0 || input.WorkingDaysLeft == 0 {
		result.Level = domain.RiskCritical
		result.RequiredDailyHours = remaining
		result.SlackHoursPerDay = input.RecentDailyHours - remaining
		return result
	}

	requiredDaily := remaining / float64(input.WorkingDaysLeft)
	result.RequiredDailyHours = requiredDaily
	result.SlackHoursPerDay = input.RecentDailyHours - requiredDaily

	switch {
	case input.CapacityHours > 0 && remaining > input.CapacityHours:
		// More work than the schedule has room for.
		result.Level = domain.RiskCritical
	case input.PlannedHours >= remaining:
		result.Level = domain.RiskOnTrack
	case input.RecentDailyHours == 0:
		result.Level = domain.RiskAtRisk
	default:
		ratio := requiredDaily / input.RecentDailyHours
		switch {
		case ratio > 1.5:
			result.Level = domain.RiskCritical
		case ratio > 1.0:
			result.Level = domain.RiskAtRisk
		case daysLeft <= 3 && remaining > input.RecentDailyHours*float64(input.WorkingDaysLeft):
			result.Level = domain.RiskAtRisk
		default:
			result.Level = domain.RiskOnTrack
		}
	}
	return result
}
