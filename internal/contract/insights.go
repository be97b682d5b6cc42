package contract

import (
	"time"

	"github.com/alexanderramin/timeplan/internal/domain"
)

type InsightsRequest struct {
	Today        *time.Time
	ProjectScope []string
	RecentDays   int
}

func NewInsightsRequest() InsightsRequest {
	return InsightsRequest{RecentDays: 7}
}

type ProjectInsight struct {
	ProjectID          string
	ProjectName        string
	RiskLevel          domain.RiskLevel
	Allocation         domain.AllocationKind
	EndDate            *string
	DaysLeft           *int
	EstimatedHours     float64
	CompletedHours     float64
	PlannedHours       float64
	RemainingHours     float64
	RequiredDailyHours float64
	RecentDailyHours   float64
	SlackHoursPerDay   float64
	ProgressPct        float64
	CapacityLoadPct    float64
}

type InsightsSummary struct {
	GeneratedAt    time.Time
	CountsTotal    int
	CountsOnTrack  int
	CountsAtRisk   int
	CountsCritical int
}

type InsightsResponse struct {
	Summary  InsightsSummary
	Projects []ProjectInsight
}
