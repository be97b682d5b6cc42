package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// ClockTime is a wall-clock time of day in minutes after midnight.
// 24:00 (1440) is allowed as a slot end.
type ClockTime int

const minutesPerDay = 24 * 60

// ParseClockTime parses "HH:MM" (24h clock).
func ParseClockTime(s string) (ClockTime, error) {
	var h, m int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q (expected HH:MM): %w", s, err)
	}
	if h < 0 || m < 0 || m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("invalid time %q (expected HH:MM)", s)
	}
	return ClockTime(h*60 + m), nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// TimeSlot is one contiguous block of working time within a day.
type TimeSlot struct {
	Start ClockTime
	End   ClockTime
}

func (s TimeSlot) Hours() float64 {
	return float64(s.End-s.Start) / 60
}

func (s TimeSlot) String() string {
	return s.Start.String() + "-" + s.End.String()
}

// ParseTimeSlot parses "HH:MM-HH:MM".
func ParseTimeSlot(s string) (TimeSlot, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return TimeSlot{}, fmt.Errorf("invalid slot %q (expected HH:MM-HH:MM)", s)
	}
	start, err := ParseClockTime(parts[0])
	if err != nil {
		return TimeSlot{}, err
	}
	end, err := ParseClockTime(parts[1])
	if err != nil {
		return TimeSlot{}, err
	}
	return TimeSlot{Start: start, End: end}, nil
}

// WeeklySchedule maps each weekday to its ordered working slots. A weekday
// with no slots is a non-working day.
type WeeklySchedule map[time.Weekday][]TimeSlot

// DefaultWeeklySchedule is Monday to Friday, 09:00-17:00.
func DefaultWeeklySchedule() WeeklySchedule {
	ws := WeeklySchedule{}
	for wd := time.Monday; wd <= time.Friday; wd++ {
		ws[wd] = []TimeSlot{{Start: 9 * 60, End: 17 * 60}}
	}
	return ws
}

// SlotsFor returns the slots for a weekday.
func (ws WeeklySchedule) SlotsFor(wd time.Weekday) []TimeSlot {
	return ws[wd]
}

// HoursFor returns the total slot hours for a weekday.
func (ws WeeklySchedule) HoursFor(wd time.Weekday) float64 {
	var total float64
	for _, s := range ws[wd] {
		total += s.Hours()
	}
	return total
}

// Validate checks every slot is well-formed and slots within a day do not overlap.
func (ws WeeklySchedule) Validate() error {
	for wd, slots := range ws {
		sorted := make([]TimeSlot, len(slots))
		copy(sorted, slots)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })
		for i, s := range sorted {
			if s.Start < 0 || s.End > minutesPerDay || s.Start >= s.End {
				return newValidationError(CodeInvalidSchedule,
					fmt.Sprintf("%s slot %s is not a valid range", wd, s))
			}
			if i > 0 && s.Start < sorted[i-1].End {
				return newValidationError(CodeInvalidSchedule,
					fmt.Sprintf("%s slots %s and %s overlap", wd, sorted[i-1], s))
			}
		}
	}
	return nil
}

// Normalize returns a copy with each day's slots sorted by start time.
func (ws WeeklySchedule) Normalize() WeeklySchedule {
	out := make(WeeklySchedule, len(ws))
	for wd, slots := range ws {
		if len(slots) == 0 {
			continue
		}
		cp := make([]TimeSlot, len(slots))
		copy(cp, slots)
		sort.Slice(cp, func(i, j int) bool { return cp[i].Start < cp[j].Start })
		out[wd] = cp
	}
	return out
}

// WeekKey identifies an ISO week, used to key memory-only schedule overrides.
type WeekKey struct {
	Year int
	Week int
}

func WeekKeyOf(d time.Time) WeekKey {
	y, w := d.ISOWeek()
	return WeekKey{Year: y, Week: w}
}

func (k WeekKey) String() string {
	return fmt.Sprintf("%d-W%02d", k.Year, k.Week)
}
