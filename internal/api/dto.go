package api

import (
	"time"

	"github.com/alexanderramin/timeplan/internal/contract"
	"github.com/alexanderramin/timeplan/internal/dateutil"
	"github.com/alexanderramin/timeplan/internal/domain"
	"github.com/alexanderramin/timeplan/internal/scheduler"
)

type dayEstimateDTO struct {
	Date   string  `json:"date"`
	Source string  `json:"source"`
	Hours  float64 `json:"hours"`
}

type projectTimelineDTO struct {
	ProjectID   string           `json:"project_id"`
	ProjectName string           `json:"project_name"`
	Color       string           `json:"color,omitempty"`
	TotalHours  float64          `json:"total_hours"`
	Days        []dayEstimateDTO `json:"days"`
}

type dayTotalDTO struct {
	Date          string  `json:"date"`
	Hours         float64 `json:"hours"`
	CapacityHours float64 `json:"capacity_hours"`
	Working       bool    `json:"working"`
}

type timelineDTO struct {
	From     string               `json:"from"`
	To       string               `json:"to"`
	Today    string               `json:"today"`
	Projects []projectTimelineDTO `json:"projects"`
	Totals   []dayTotalDTO        `json:"totals"`
	Warnings []string             `json:"warnings,omitempty"`
}

func newTimelineDTO(resp *contract.TimelineResponse) timelineDTO {
	out := timelineDTO{
		From:     dateutil.DayKey(resp.From),
		To:       dateutil.DayKey(resp.To),
		Today:    dateutil.DayKey(resp.Today),
		Projects: make([]projectTimelineDTO, 0, len(resp.Projects)),
		Totals:   make([]dayTotalDTO, 0, len(resp.Totals)),
		Warnings: resp.Warnings,
	}
	for _, p := range resp.Projects {
		row := projectTimelineDTO{
			ProjectID:   p.ProjectID,
			ProjectName: p.ProjectName,
			Color:       p.Color,
			TotalHours:  p.TotalHours,
			Days:        make([]dayEstimateDTO, 0, len(p.Days)),
		}
		for _, d := range p.Days {
			row.Days = append(row.Days, dayEstimateDTO{Date: dateutil.DayKey(d.Date), Source: string(d.Source), Hours: d.Hours})
		}
		out.Projects = append(out.Projects, row)
	}
	for _, t := range resp.Totals {
		out.Totals = append(out.Totals, dayTotalDTO{
			Date:          dateutil.DayKey(t.Date),
			Hours:         t.Hours,
			CapacityHours: t.CapacityHours,
			Working:       t.Working,
		})
	}
	return out
}

type budgetDTO struct {
	ProjectID          string  `json:"project_id"`
	EstimatedHours     float64 `json:"estimated_hours"`
	TotalAllocated     float64 `json:"total_allocated"`
	Remaining          float64 `json:"remaining"`
	IsOverBudget       bool    `json:"is_over_budget"`
	OverageHours       float64 `json:"overage_hours"`
	UtilizationPercent float64 `json:"utilization_percent"`
}

func newBudgetDTO(projectID string, a *scheduler.BudgetAnalysis) budgetDTO {
	return budgetDTO{
		ProjectID:          projectID,
		EstimatedHours:     a.EstimatedHours,
		TotalAllocated:     a.TotalAllocated,
		Remaining:          a.Remaining,
		IsOverBudget:       a.IsOverBudget,
		OverageHours:       a.OverageHours,
		UtilizationPercent: a.UtilizationPercent,
	}
}

type previewRequestDTO struct {
	ProjectID string  `json:"project_id,omitempty"`
	Start     string  `json:"start"`
	End       string  `json:"end"`
	Hours     float64 `json:"hours"`
	Today     string  `json:"today,omitempty"`
}

func (r previewRequestDTO) toContract() (contract.PreviewRequest, error) {
	start, err := parseDayParam("start", r.Start)
	if err != nil {
		return contract.PreviewRequest{}, err
	}
	end, err := parseDayParam("end", r.End)
	if err != nil {
		return contract.PreviewRequest{}, err
	}
	req := contract.PreviewRequest{ProjectID: r.ProjectID, Start: start, End: end, Hours: r.Hours}
	if r.Today != "" {
		today, err := parseDayParam("today", r.Today)
		if err != nil {
			return contract.PreviewRequest{}, err
		}
		req.Today = &today
	}
	return req, nil
}

type previewDayDTO struct {
	Date          string  `json:"date"`
	Hours         float64 `json:"hours"`
	CapacityHours float64 `json:"capacity_hours"`
}

type budgetProjectionDTO struct {
	EstimatedHours     float64 `json:"estimated_hours"`
	AllocatedHours     float64 `json:"allocated_hours"`
	ProjectedAllocated float64 `json:"projected_allocated"`
	IsOverBudget       bool    `json:"is_over_budget"`
	OverageHours       float64 `json:"overage_hours"`
}

type previewDTO struct {
	Days        []previewDayDTO      `json:"days"`
	TotalHours  float64              `json:"total_hours"`
	WorkingDays int                  `json:"working_days"`
	Budget      *budgetProjectionDTO `json:"budget,omitempty"`
	Warnings    []string             `json:"warnings,omitempty"`
}

func newPreviewDTO(resp *contract.PreviewResponse) previewDTO {
	out := previewDTO{
		Days:        make([]previewDayDTO, 0, len(resp.Days)),
		TotalHours:  resp.TotalHours,
		WorkingDays: resp.WorkingDays,
		Warnings:    resp.Warnings,
	}
	for _, d := range resp.Days {
		out.Days = append(out.Days, previewDayDTO{Date: dateutil.DayKey(d.Date), Hours: d.Hours, CapacityHours: d.CapacityHours})
	}
	if b := resp.Budget; b != nil {
		out.Budget = &budgetProjectionDTO{
			EstimatedHours:     b.EstimatedHours,
			AllocatedHours:     b.AllocatedHours,
			ProjectedAllocated: b.ProjectedAllocated,
			IsOverBudget:       b.IsOverBudget,
			OverageHours:       b.OverageHours,
		}
	}
	return out
}

type projectInsightDTO struct {
	ProjectID          string  `json:"project_id"`
	ProjectName        string  `json:"project_name"`
	RiskLevel          string  `json:"risk_level"`
	Allocation         string  `json:"allocation"`
	EndDate            *string `json:"end_date,omitempty"`
	DaysLeft           *int    `json:"days_left,omitempty"`
	EstimatedHours     float64 `json:"estimated_hours"`
	CompletedHours     float64 `json:"completed_hours"`
	PlannedHours       float64 `json:"planned_hours"`
	RemainingHours     float64 `json:"remaining_hours"`
	RequiredDailyHours float64 `json:"required_daily_hours"`
	RecentDailyHours   float64 `json:"recent_daily_hours"`
	SlackHoursPerDay   float64 `json:"slack_hours_per_day"`
	ProgressPct        float64 `json:"progress_pct"`
	CapacityLoadPct    float64 `json:"capacity_load_pct"`
}

type insightsSummaryDTO struct {
	GeneratedAt string `json:"generated_at"`
	Total       int    `json:"total"`
	OnTrack     int    `json:"on_track"`
	AtRisk      int    `json:"at_risk"`
	Critical    int    `json:"critical"`
}

type insightsDTO struct {
	Summary  insightsSummaryDTO  `json:"summary"`
	Projects []projectInsightDTO `json:"projects"`
}

func newInsightsDTO(resp *contract.InsightsResponse) insightsDTO {
	out := insightsDTO{
		Summary: insightsSummaryDTO{
			GeneratedAt: resp.Summary.GeneratedAt.Format(time.RFC3339),
			Total:       resp.Summary.CountsTotal,
			OnTrack:     resp.Summary.CountsOnTrack,
			AtRisk:      resp.Summary.CountsAtRisk,
			Critical:    resp.Summary.CountsCritical,
		},
		Projects: make([]projectInsightDTO, 0, len(resp.Projects)),
	}
	for _, p := range resp.Projects {
		out.Projects = append(out.Projects, projectInsightDTO{
			ProjectID:          p.ProjectID,
			ProjectName:        p.ProjectName,
			RiskLevel:          string(p.RiskLevel),
			Allocation:         string(p.Allocation),
			EndDate:            p.EndDate,
			DaysLeft:           p.DaysLeft,
			EstimatedHours:     p.EstimatedHours,
			CompletedHours:     p.CompletedHours,
			PlannedHours:       p.PlannedHours,
			RemainingHours:     p.RemainingHours,
			RequiredDailyHours: p.RequiredDailyHours,
			RecentDailyHours:   p.RecentDailyHours,
			SlackHoursPerDay:   p.SlackHoursPerDay,
			ProgressPct:        p.ProgressPct,
			CapacityLoadPct:    p.CapacityLoadPct,
		})
	}
	return out
}

type projectDTO struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	ClientID       string  `json:"client_id,omitempty"`
	StartDate      string  `json:"start_date"`
	EndDate        *string `json:"end_date,omitempty"`
	Continuous     bool    `json:"continuous"`
	EstimatedHours float64 `json:"estimated_hours"`
	Color          string  `json:"color,omitempty"`
	Allocation     string  `json:"allocation"`
}

func newProjectDTO(p *domain.Project) projectDTO {
	out := projectDTO{
		ID:             p.ID,
		Name:           p.Name,
		ClientID:       p.ClientID,
		StartDate:      dateutil.DayKey(p.StartDate),
		Continuous:     p.Continuous,
		EstimatedHours: p.EstimatedHours,
		Color:          p.Color,
		Allocation:     string(p.AllocationKind()),
	}
	if p.EndDate != nil {
		end := dateutil.DayKey(*p.EndDate)
		out.EndDate = &end
	}
	return out
}
