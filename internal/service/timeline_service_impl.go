package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/timeplan/internal/calendar"
	"github.com/alexanderramin/timeplan/internal/contract"
	"github.com/alexanderramin/timeplan/internal/dateutil"
	"github.com/alexanderramin/timeplan/internal/domain"
	"github.com/alexanderramin/timeplan/internal/metrics"
	"github.com/alexanderramin/timeplan/internal/repository"
	"github.com/alexanderramin/timeplan/internal/scheduler"
)

type timelineService struct {
	projects  repository.ProjectRepo
	phases    repository.PhaseRepo
	recurring repository.RecurringRepo
	events    repository.EventRepo
	calendar  CalendarService
	cache     *scheduler.EstimateCache
	policy    domain.Policy
	clock     Clock
	observer  UseCaseObserver
}

// NewTimelineService builds the read side of the engine. cache may be nil,
// in which case every request is resolved from scratch.
func NewTimelineService(
	projects repository.ProjectRepo,
	phases repository.PhaseRepo,
	recurring repository.RecurringRepo,
	events repository.EventRepo,
	cal CalendarService,
	cache *scheduler.EstimateCache,
	policy domain.Policy,
	clock Clock,
	observers ...UseCaseObserver,
) TimelineService {
	return &timelineService{
		projects:  projects,
		phases:    phases,
		recurring: recurring,
		events:    events,
		calendar:  cal,
		cache:     cache,
		policy:    policy,
		clock:     clock.orDefault(),
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *timelineService) Timeline(ctx context.Context, req contract.TimelineRequest) (resp *contract.TimelineResponse, err error) {
	fields := map[string]any{"scope": len(req.ProjectScope)}
	defer observe(ctx, s.observer, "timeline", time.Now(), fields, &err)

	from := dateutil.StartOfDay(req.From)
	to := dateutil.StartOfDay(req.To)
	if err = checkRange(from, to); err != nil {
		return nil, err
	}
	today := s.today(req.Today)
	fields["days"] = dateutil.DaysInRange(from, to)

	projects, err := s.scopedProjects(ctx, req.ProjectScope)
	if err != nil {
		return nil, err
	}
	cal, err := s.calendar.WorkCalendar(ctx)
	if err != nil {
		return nil, err
	}

	resp = &contract.TimelineResponse{From: from, To: to, Today: today}
	days := dateutil.EachDay(from, to)
	totals := make([]float64, len(days))
	for _, p := range projects {
		events, err := s.events.List(ctx, repository.EventFilter{ProjectID: p.ID})
		if err != nil {
			return nil, err
		}
		estimates, err := s.resolve(scheduler.RangeInput{
			Project:  *p,
			From:     from,
			To:       to,
			Events:   events,
			Calendar: cal,
			Today:    today,
			Policy:   s.policy,
		})
		if err != nil {
			return nil, err
		}

		row := contract.ProjectTimeline{ProjectID: p.ID, ProjectName: p.Name, Color: p.Color, Days: estimates}
		empty := true
		for i, est := range estimates {
			metrics.DayEstimatesResolved.WithLabelValues(string(est.Source)).Inc()
			row.TotalHours += est.Hours
			totals[i] += est.Hours
			if est.Source != domain.SourceNone {
				empty = false
			}
		}
		if empty && !req.IncludeEmpty {
			continue
		}
		resp.Projects = append(resp.Projects, row)
		resp.Warnings = append(resp.Warnings, budgetWarnings(p)...)
		resp.Warnings = append(resp.Warnings, unschedulableWarnings(p, scheduler.FilterEventsForProject(events, p.ID), cal, today)...)
	}

	for i, d := range days {
		resp.Totals = append(resp.Totals, contract.DayTotal{
			Date:          d,
			Hours:         totals[i],
			CapacityHours: cal.CapacityHours(d),
			Working:       cal.IsWorkingDay(d),
		})
		if capacity := cal.CapacityHours(d); capacity > 0 && totals[i] > capacity {
			resp.Warnings = append(resp.Warnings, fmt.Sprintf("%s: %.1fh scheduled against %.1fh capacity",
				dateutil.DayKey(d), totals[i], capacity))
		}
	}
	return resp, nil
}

func (s *timelineService) Budget(ctx context.Context, projectID string) (analysis *scheduler.BudgetAnalysis, err error) {
	defer observe(ctx, s.observer, "budget", time.Now(), map[string]any{"project_id": projectID}, &err)

	p, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p.AllocationKind() == domain.AllocationRecurring {
		return nil, contract.NewError(contract.ErrNoAllocation,
			fmt.Sprintf("project %s uses a recurring estimate and has no phase budget", projectID))
	}
	a := scheduler.AnalyzeBudget(p, p.Phases())
	return &a, nil
}

// Preview distributes hours over a date range exactly as an auto-estimate
// would, without saving anything.
func (s *timelineService) Preview(ctx context.Context, req contract.PreviewRequest) (resp *contract.PreviewResponse, err error) {
	defer observe(ctx, s.observer, "preview", time.Now(), map[string]any{"hours": req.Hours}, &err)

	start := dateutil.StartOfDay(req.Start)
	end := dateutil.StartOfDay(req.End)
	if err = checkRange(start, end); err != nil {
		return nil, err
	}
	if req.Hours < 0 {
		return nil, contract.NewError(contract.ErrInvalidRequest, fmt.Sprintf("hours must be >= 0 (got %g)", req.Hours))
	}
	today := s.today(req.Today)
	cal, err := s.calendar.WorkCalendar(ctx)
	if err != nil {
		return nil, err
	}

	dist := scheduler.DistributeHours(req.Hours, start, end, cal, today)
	resp = &contract.PreviewResponse{TotalHours: dist.Total(), WorkingDays: len(dist)}
	for _, key := range dist.Days() {
		d, err := dateutil.ParseDay(key)
		if err != nil {
			return nil, err
		}
		capacity := cal.CapacityHours(d)
		resp.Days = append(resp.Days, contract.PreviewDay{Date: d, Hours: dist[key], CapacityHours: capacity})
		if dist[key] > capacity {
			resp.Warnings = append(resp.Warnings, fmt.Sprintf("%s: %.1fh exceeds %.1fh capacity", key, dist[key], capacity))
		}
	}
	switch {
	case dateutil.BeforeDay(end, today):
		resp.Warnings = append(resp.Warnings, fmt.Sprintf("%s: range ends before today", domain.CodeRangeInPast))
	case len(dist) == 0:
		resp.Warnings = append(resp.Warnings, "no working days left in range")
	}

	if req.ProjectID != "" {
		p, err := s.loadProject(ctx, req.ProjectID)
		if err != nil {
			return nil, err
		}
		a := scheduler.AnalyzeBudget(p, p.Phases())
		projected := a.TotalAllocated + req.Hours
		resp.Budget = &contract.BudgetProjection{
			EstimatedHours:     a.EstimatedHours,
			AllocatedHours:     a.TotalAllocated,
			ProjectedAllocated: projected,
			IsOverBudget:       projected > a.EstimatedHours,
		}
		if resp.Budget.IsOverBudget {
			resp.Budget.OverageHours = projected - a.EstimatedHours
		}
	}
	return resp, nil
}

func (s *timelineService) Insights(ctx context.Context, req contract.InsightsRequest) (resp *contract.InsightsResponse, err error) {
	defer observe(ctx, s.observer, "insights", time.Now(), map[string]any{"scope": len(req.ProjectScope)}, &err)

	today := s.today(req.Today)
	recentDays := req.RecentDays
	if recentDays <= 0 {
		recentDays = 7
	}
	projects, err := s.scopedProjects(ctx, req.ProjectScope)
	if err != nil {
		return nil, err
	}
	cal, err := s.calendar.WorkCalendar(ctx)
	if err != nil {
		return nil, err
	}

	paces := make([]scheduler.ProjectPace, 0, len(projects))
	rows := make(map[string]contract.ProjectInsight, len(projects))
	for _, p := range projects {
		events, err := s.events.List(ctx, repository.EventFilter{ProjectID: p.ID})
		if err != nil {
			return nil, err
		}
		in := riskInput(p, scheduler.FilterEventsForProject(events, p.ID), cal, today, recentDays)
		risk := scheduler.ComputeRisk(in)
		paces = append(paces, scheduler.ProjectPace{ProjectID: p.ID, ProjectName: p.Name, EndDate: p.EndDate, Risk: risk})

		row := contract.ProjectInsight{
			ProjectID:          p.ID,
			ProjectName:        p.Name,
			RiskLevel:          risk.Level,
			Allocation:         p.AllocationKind(),
			DaysLeft:           risk.DaysLeft,
			EstimatedHours:     p.EstimatedHours,
			CompletedHours:     in.CompletedHours,
			PlannedHours:       in.PlannedHours,
			RemainingHours:     risk.RemainingHours,
			RequiredDailyHours: risk.RequiredDailyHours,
			RecentDailyHours:   in.RecentDailyHours,
			SlackHoursPerDay:   risk.SlackHoursPerDay,
			ProgressPct:        risk.ProgressPct,
			CapacityLoadPct:    risk.CapacityLoadPct,
		}
		if p.EndDate != nil {
			end := dateutil.DayKey(*p.EndDate)
			row.EndDate = &end
		}
		rows[p.ID] = row
	}
	scheduler.CanonicalSort(paces)

	resp = &contract.InsightsResponse{Summary: contract.InsightsSummary{
		GeneratedAt: s.clock().UTC(),
		CountsTotal: len(paces),
	}}
	for _, pace := range paces {
		switch pace.Risk.Level {
		case domain.RiskCritical:
			resp.Summary.CountsCritical++
		case domain.RiskAtRisk:
			resp.Summary.CountsAtRisk++
		default:
			resp.Summary.CountsOnTrack++
		}
		resp.Projects = append(resp.Projects, rows[pace.ProjectID])
	}
	return resp, nil
}

// riskInput gathers pace figures for one project. events must already be
// filtered to the project.
func riskInput(p *domain.Project, events []domain.CalendarEvent, cal calendar.WorkCalendar, today time.Time, recentDays int) scheduler.RiskInput {
	historyEnd := today
	if p.EndDate != nil {
		historyEnd = dateutil.MaxDay(today, *p.EndDate)
	}
	in := scheduler.RiskInput{
		Today:          today,
		EndDate:        p.EndDate,
		EstimatedHours: p.EstimatedHours,
		CompletedHours: scheduler.CompletedHoursInRange(events, p.StartDate, historyEnd),
	}
	for i := range events {
		e := &events[i]
		if scheduler.IsPlannedTime(e) && !dateutil.BeforeDay(e.Start, today) {
			in.PlannedHours += e.DurationHours()
		}
	}
	if p.EndDate != nil && !dateutil.BeforeDay(*p.EndDate, today) {
		in.WorkingDaysLeft = len(cal.WorkingDays(today, *p.EndDate))
		in.CapacityHours = cal.CapacityBetween(today, *p.EndDate)
	}
	recent := scheduler.CompletedHoursInRange(events, dateutil.AddDays(today, -recentDays), dateutil.AddDays(today, -1))
	in.RecentDailyHours = recent / float64(recentDays)
	return in
}

func (s *timelineService) resolve(in scheduler.RangeInput) ([]domain.DayEstimate, error) {
	if s.cache == nil {
		return scheduler.ResolveRange(in), nil
	}
	return s.cache.ResolveRange(in)
}

func (s *timelineService) today(override *time.Time) time.Time {
	if override != nil {
		return dateutil.StartOfDay(dateutil.WallClock(*override))
	}
	return todayFrom(s.clock)
}

func (s *timelineService) loadProject(ctx context.Context, id string) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := loadAllocation(ctx, s.phases, s.recurring, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *timelineService) scopedProjects(ctx context.Context, scope []string) ([]*domain.Project, error) {
	all, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}
	projects, unknown := filterProjectsByScope(all, scope)
	if len(unknown) > 0 {
		return nil, contract.NewError(contract.ErrInvalidScope, "unknown project(s): "+strings.Join(unknown, ", "))
	}
	for _, p := range projects {
		if err := loadAllocation(ctx, s.phases, s.recurring, p); err != nil {
			return nil, err
		}
	}
	return projects, nil
}

func checkRange(from, to time.Time) error {
	if dateutil.BeforeDay(to, from) {
		return contract.NewError(contract.ErrInvalidRange,
			fmt.Sprintf("end %s is before start %s", dateutil.DayKey(to), dateutil.DayKey(from)))
	}
	if n := dateutil.DaysInRange(from, to); n > contract.MaxTimelineDays {
		return contract.NewError(contract.ErrInvalidRange,
			fmt.Sprintf("range covers %d days; at most %d allowed", n, contract.MaxTimelineDays))
	}
	return nil
}

// unschedulableWarnings names every scope of p that still has hours but no
// working day left from today on.
func unschedulableWarnings(p *domain.Project, events []domain.CalendarEvent, cal calendar.WorkCalendar, today time.Time) []string {
	var out []string
	switch p.AllocationKind() {
	case domain.AllocationRecurring:
		return nil
	case domain.AllocationPhases:
		for _, ph := range p.Phases() {
			if remaining, stuck := unschedulable(ph.Hours, events, ph.StartDate, ph.EndDate, cal, today); stuck {
				out = append(out, fmt.Sprintf("%s: cannot estimate phase %q, %.1fh left and no working days in %s..%s",
					p.Name, ph.Name, remaining, dateutil.DayKey(ph.StartDate), dateutil.DayKey(ph.EndDate)))
			}
		}
	default:
		if p.Continuous || p.EndDate == nil {
			return nil
		}
		if remaining, stuck := unschedulable(p.EstimatedHours, events, p.StartDate, *p.EndDate, cal, today); stuck {
			out = append(out, fmt.Sprintf("%s: cannot estimate, %.1fh left and no working days in %s..%s",
				p.Name, remaining, dateutil.DayKey(p.StartDate), dateutil.DayKey(*p.EndDate)))
		}
	}
	return out
}

func budgetWarnings(p *domain.Project) []string {
	phases := p.Phases()
	if len(phases) == 0 {
		return nil
	}
	a := scheduler.AnalyzeBudget(p, phases)
	if !a.IsOverBudget {
		return nil
	}
	return []string{fmt.Sprintf("%s: phases allocate %.1fh, %.1fh over the %.1fh budget",
		p.Name, a.TotalAllocated, a.OverageHours, a.EstimatedHours)}
}
