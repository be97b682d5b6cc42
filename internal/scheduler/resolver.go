package scheduler

import (
	"time"

	"github.com/alexanderramin/timeplan/internal/calendar"
	"github.com/alexanderramin/timeplan/internal/dateutil"
	"github.com/alexanderramin/timeplan/internal/domain"
)

// DayEstimateInput is an immutable snapshot of everything that decides a
// project's displayed hours on one day. Events may include other projects'
// events; they are filtered here.
type DayEstimateInput struct {
	Project  domain.Project
	Date     time.Time
	Events   []domain.CalendarEvent
	Calendar calendar.WorkCalendar
	Today    time.Time
	Policy   domain.Policy
}

// RangeInput is DayEstimateInput over an inclusive day range.
type RangeInput struct {
	Project  domain.Project
	From     time.Time
	To       time.Time
	Events   []domain.CalendarEvent
	Calendar calendar.WorkCalendar
	Today    time.Time
	Policy   domain.Policy
}

// ResolveDayEstimate picks exactly one kind of time for the project on the
// given day:
//  1. any in-scope event on the day wins (completed or planned hours)
//  2. past days show nothing
//  3. non-working days show nothing
//  4. otherwise the auto-estimate for the phase, recurrence or project scope
func ResolveDayEstimate(in DayEstimateInput) domain.DayEstimate {
	r := newResolver(in.Project, in.Events, in.Calendar, in.Today, in.Policy)
	return r.resolve(in.Date)
}

// ResolveRange resolves every day in [From, To]. It computes each scope's
// distribution once, giving the same result as calling ResolveDayEstimate
// for each day.
func ResolveRange(in RangeInput) []domain.DayEstimate {
	r := newResolver(in.Project, in.Events, in.Calendar, in.Today, in.Policy)
	days := dateutil.EachDay(in.From, in.To)
	out := make([]domain.DayEstimate, 0, len(days))
	for _, d := range days {
		out = append(out, r.resolve(d))
	}
	return out
}

type scopeKey struct {
	start, end string
}

type resolver struct {
	project domain.Project
	events  []domain.CalendarEvent
	cal     calendar.WorkCalendar
	today   time.Time
	policy  domain.Policy
	dists   map[scopeKey]Distribution
}

func newResolver(p domain.Project, events []domain.CalendarEvent, cal calendar.WorkCalendar, today time.Time, policy domain.Policy) *resolver {
	return &resolver{
		project: p,
		events:  FilterEventsForProject(events, p.ID),
		cal:     cal,
		today:   dateutil.StartOfDay(today),
		policy:  policy,
		dists:   make(map[scopeKey]Distribution),
	}
}

func (r *resolver) estimate(d time.Time, src domain.EstimateSource, hours float64) domain.DayEstimate {
	return domain.DayEstimate{
		ProjectID: r.project.ID,
		Date:      dateutil.StartOfDay(d),
		Source:    src,
		Hours:     hours,
	}
}

func (r *resolver) resolve(d time.Time) domain.DayEstimate {
	tally := TallyDay(r.events, d)
	if tally.HasCompleted || tally.HasPlanned {
		if tally.HasCompleted && (r.policy.MixedDay != domain.MixedDayPlanned || !tally.HasPlanned) {
			return r.estimate(d, domain.SourceCompletedEvent, tally.CompletedHours)
		}
		return r.estimate(d, domain.SourcePlannedEvent, tally.PlannedHours)
	}

	none := r.estimate(d, domain.SourceNone, 0)
	if dateutil.BeforeDay(d, r.today) {
		return none
	}
	if !r.cal.IsWorkingDay(d) || !r.project.Covers(d) {
		return none
	}

	switch alloc := r.project.Allocation.(type) {
	case domain.RecurringAllocation:
		est := alloc.Estimate
		if est.HoursPerOccurrence <= 0 || !est.OccursOn(d, r.project.StartDate) {
			return none
		}
		return r.estimate(d, domain.SourceAutoEstimate, est.HoursPerOccurrence)

	case domain.PhaseAllocation:
		for i := range alloc.Phases {
			ph := &alloc.Phases[i]
			if ph.Covers(d) {
				return r.fromScope(d, ph.Hours, ph.StartDate, ph.EndDate)
			}
		}
		// Day falls in a gap between phases.
		return none

	default:
		if r.project.EndDate == nil {
			// Continuous projects have no deadline to distribute toward.
			return none
		}
		return r.fromScope(d, r.project.EstimatedHours, r.project.StartDate, *r.project.EndDate)
	}
}

func (r *resolver) fromScope(d time.Time, budget float64, start, end time.Time) domain.DayEstimate {
	key := scopeKey{dateutil.DayKey(start), dateutil.DayKey(end)}
	dist, ok := r.dists[key]
	if !ok {
		remaining := RemainingForScope(budget, r.events, start, end)
		dist = DistributeHours(remaining, start, end, r.cal, r.today)
		r.dists[key] = dist
	}
	// An eligible day of an exhausted scope still reads as a 0h estimate.
	h, ok := dist.Hours(d)
	if !ok {
		return r.estimate(d, domain.SourceNone, 0)
	}
	return r.estimate(d, domain.SourceAutoEstimate, h)
}
