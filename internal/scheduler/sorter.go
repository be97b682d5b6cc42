package scheduler

import (
	"sort"

	"github.com/alexanderramin/timeplan/internal/domain"
)

// RiskPriority returns a sort priority (lower = more urgent).
func RiskPriority(r domain.RiskLevel) int {
	switch r {
	case domain.RiskCritical:
		return 0
	case domain.RiskAtRisk:
		return 1
	default:
		return 2
	}
}

// CanonicalSort orders project paces deterministically:
// 1. Risk: critical > at_risk > on_track
// 2. End date: earliest first (continuous last)
// 3. Required daily hours: higher first
// 4. Project name: lexical ascending
// 5. Project ID: lexical ascending
func CanonicalSort(paces []ProjectPace) {
	sort.SliceStable(paces, func(i, j int) bool {
		a, b := paces[i], paces[j]

		riskA, riskB := RiskPriority(a.Risk.Level), RiskPriority(b.Risk.Level)
		if riskA != riskB {
			return riskA < riskB
		}

		if (a.EndDate == nil) != (b.EndDate == nil) {
			return a.EndDate != nil
		}
		if a.EndDate != nil && b.EndDate != nil && !a.EndDate.Equal(*b.EndDate) {
			return a.EndDate.Before(*b.EndDate)
		}

		if a.Risk.RequiredDailyHours != b.Risk.RequiredDailyHours {
			return a.Risk.RequiredDailyHours > b.Risk.RequiredDailyHours
		}

		if a.ProjectName != b.ProjectName {
			return a.ProjectName < b.ProjectName
		}
		return a.ProjectID < b.ProjectID
	})
}
