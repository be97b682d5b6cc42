package formatter

import (
	"fmt"

	"github.com/alexanderramin/timeplan/internal/scheduler"
)

const budgetBarWidth = 20

// FormatBudget renders a project's phase budget analysis as a box.
func FormatBudget(projectName string, a *scheduler.BudgetAnalysis) string {
	pairs := [][2]string{
		{"Estimated", Hours(a.EstimatedHours)},
		{"Allocated", Hours(a.TotalAllocated)},
		{"Utilization", RenderUtilization(a.UtilizationPercent, budgetBarWidth)},
	}
	if a.IsOverBudget {
		pairs = append(pairs, [2]string{"Over by", StyleRed.Render(Hours(a.OverageHours))})
	} else {
		pairs = append(pairs, [2]string{"Unallocated", StyleGreen.Render(Hours(a.Remaining))})
	}
	return RenderBox(fmt.Sprintf("Budget · %s", projectName), KeyValue(pairs))
}
