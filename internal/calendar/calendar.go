// Package calendar answers which days are working days and how many
// capacity hours each one offers, given a weekly schedule and holidays.
package calendar

import (
	"time"

	"github.com/alexanderramin/timeplan/internal/dateutil"
	"github.com/alexanderramin/timeplan/internal/domain"
)

// IsHoliday reports whether any holiday falls on d, either by exact date or
// by an annually recurring month and day.
func IsHoliday(d time.Time, holidays []domain.Holiday) bool {
	for i := range holidays {
		if holidays[i].Matches(d) {
			return true
		}
	}
	return false
}

// IsWorkingDay is true when d is not a holiday and the schedule has at least
// one slot on d's weekday.
func IsWorkingDay(d time.Time, schedule domain.WeeklySchedule, holidays []domain.Holiday) bool {
	if IsHoliday(d, holidays) {
		return false
	}
	return len(schedule.SlotsFor(d.Weekday())) > 0
}

// CapacityHoursForDate sums the slot hours for d's weekday. Holidays force 0.
func CapacityHoursForDate(d time.Time, schedule domain.WeeklySchedule, holidays []domain.Holiday) float64 {
	if !IsWorkingDay(d, schedule, holidays) {
		return 0
	}
	return schedule.HoursFor(d.Weekday())
}

// WorkingDays lists midnight of every working day in [start, end].
func WorkingDays(start, end time.Time, schedule domain.WeeklySchedule, holidays []domain.Holiday) []time.Time {
	var out []time.Time
	for _, d := range dateutil.EachDay(start, end) {
		if IsWorkingDay(d, schedule, holidays) {
			out = append(out, d)
		}
	}
	return out
}

// WorkCalendar is an immutable snapshot of everything that decides capacity:
// the permanent weekly schedule, memory-only per-week overrides and holidays.
type WorkCalendar struct {
	Schedule  domain.WeeklySchedule
	Overrides map[domain.WeekKey]domain.WeeklySchedule
	Holidays  []domain.Holiday
}

// New builds a WorkCalendar with no overrides.
func New(schedule domain.WeeklySchedule, holidays []domain.Holiday) WorkCalendar {
	return WorkCalendar{Schedule: schedule, Holidays: holidays}
}

// ScheduleFor returns the override for d's ISO week if one exists, else the
// permanent schedule.
func (c WorkCalendar) ScheduleFor(d time.Time) domain.WeeklySchedule {
	if ov, ok := c.Overrides[domain.WeekKeyOf(d)]; ok {
		return ov
	}
	return c.Schedule
}

func (c WorkCalendar) IsHoliday(d time.Time) bool {
	return IsHoliday(d, c.Holidays)
}

func (c WorkCalendar) IsWorkingDay(d time.Time) bool {
	return IsWorkingDay(d, c.ScheduleFor(d), c.Holidays)
}

func (c WorkCalendar) CapacityHours(d time.Time) float64 {
	return CapacityHoursForDate(d, c.ScheduleFor(d), c.Holidays)
}

// WorkingDays lists working days in [start, end], honouring overrides.
func (c WorkCalendar) WorkingDays(start, end time.Time) []time.Time {
	var out []time.Time
	for _, d := range dateutil.EachDay(start, end) {
		if c.IsWorkingDay(d) {
			out = append(out, d)
		}
	}
	return out
}

// CapacityBetween sums capacity hours over [start, end].
func (c WorkCalendar) CapacityBetween(start, end time.Time) float64 {
	var total float64
	for _, d := range dateutil.EachDay(start, end) {
		total += c.CapacityHours(d)
	}
	return total
}
