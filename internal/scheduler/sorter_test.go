package scheduler

import (
	"testing"
	"time"

	"github.com/alexanderramin/timeplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePace(name, id string, risk domain.RiskLevel, end *time.Time, required float64) ProjectPace {
	return ProjectPace{
		ProjectID:   id,
		ProjectName: name,
		EndDate:     end,
		Risk:        RiskResult{Level: risk, RequiredDailyHours: required},
	}
}

func TestCanonicalSort_RiskPriority(t *testing.T) {
	end := day(2025, 3, 1)
	paces := []ProjectPace{
		makePace("On Track", "p1", domain.RiskOnTrack, &end, 2),
		makePace("Critical", "p2", domain.RiskCritical, &end, 2),
		makePace("At Risk", "p3", domain.RiskAtRisk, &end, 2),
	}

	CanonicalSort(paces)

	assert.Equal(t, domain.RiskCritical, paces[0].Risk.Level, "critical should be first")
	assert.Equal(t, domain.RiskAtRisk, paces[1].Risk.Level, "at_risk should be second")
	assert.Equal(t, domain.RiskOnTrack, paces[2].Risk.Level, "on_track should be last")
}

func TestCanonicalSort_EndDateTiebreak(t *testing.T) {
	early, late := day(2025, 2, 1), day(2025, 4, 1)
	paces := []ProjectPace{
		makePace("Continuous", "p0", domain.RiskOnTrack, nil, 9),
		makePace("Late", "p1", domain.RiskOnTrack, &late, 9),
		makePace("Early", "p2", domain.RiskOnTrack, &early, 1),
	}

	CanonicalSort(paces)

	require.Len(t, paces, 3)
	assert.Equal(t, "Early", paces[0].ProjectName)
	assert.Equal(t, "Late", paces[1].ProjectName)
	assert.Equal(t, "Continuous", paces[2].ProjectName, "no end date sorts last")
}

func TestCanonicalSort_RequiredHoursThenName(t *testing.T) {
	end := day(2025, 3, 1)
	paces := []ProjectPace{
		makePace("Bravo", "p1", domain.RiskAtRisk, &end, 3),
		makePace("Alpha", "p2", domain.RiskAtRisk, &end, 3),
		makePace("Zulu", "p3", domain.RiskAtRisk, &end, 6),
	}

	CanonicalSort(paces)

	assert.Equal(t, []string{"Zulu", "Alpha", "Bravo"},
		[]string{paces[0].ProjectName, paces[1].ProjectName, paces[2].ProjectName})
}

func TestCanonicalSort_Deterministic(t *testing.T) {
	end := day(2025, 3, 1)
	build := func() []ProjectPace {
		return []ProjectPace{
			makePace("Same", "b", domain.RiskOnTrack, &end, 1),
			makePace("Same", "a", domain.RiskOnTrack, &end, 1),
		}
	}
	first, second := build(), build()
	CanonicalSort(first)
	CanonicalSort(second)
	assert.Equal(t, first, second)
	assert.Equal(t, "a", first[0].ProjectID)
}

func TestRiskPriority(t *testing.T) {
	assert.Less(t, RiskPriority(domain.RiskCritical), RiskPriority(domain.RiskAtRisk))
	assert.Less(t, RiskPriority(domain.RiskAtRisk), RiskPriority(domain.RiskOnTrack))
}
