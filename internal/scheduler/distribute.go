package scheduler

import (
	"sort"
	"time"

	"github.com/alexanderramin/timeplan/internal/calendar"
	"github.com/alexanderramin/timeplan/internal/dateutil"
	"github.com/alexanderramin/timeplan/internal/domain"
)

// Distribution maps a day key (YYYY-MM-DD) to the hours assigned to it.
// An empty distribution means no estimate was possible for the range.
type Distribution map[string]float64

// Hours returns the hours assigned to d and whether d was an eligible day.
func (d Distribution) Hours(day time.Time) (float64, bool) {
	h, ok := d[dateutil.DayKey(day)]
	return h, ok
}

func (d Distribution) Total() float64 {
	var total float64
	for _, h := range d {
		total += h
	}
	return total
}

// Days returns the distribution's day keys in ascending order.
func (d Distribution) Days() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DistributeHours spreads remaining hours evenly over the working days in
// [start, end] that are not before today.
//
// An entirely past range or one with no working days yields an empty
// distribution. When remaining <= 0 every eligible day is present with 0.
func DistributeHours(remaining float64, start, end time.Time, cal calendar.WorkCalendar, today time.Time) Distribution {
	if dateutil.BeforeDay(end, today) {
		return Distribution{}
	}
	from := dateutil.MaxDay(start, today)
	days := cal.WorkingDays(from, end)
	if len(days) == 0 {
		return Distribution{}
	}

	daily := 0.0
	if remaining > 0 {
		daily = remaining / float64(len(days))
	}
	dist := make(Distribution, len(days))
	for _, d := range days {
		dist[dateutil.DayKey(d)] = daily
	}
	return dist
}

// RemainingForScope is the budget for a range minus the completed hours
// already logged on days inside it. events must already be filtered to the
// project. The result can be negative when the scope is overspent.
func RemainingForScope(budget float64, events []domain.CalendarEvent, start, end time.Time) float64 {
	return budget - CompletedHoursInRange(events, start, end)
}
