package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/timeplan/internal/contract"
)

// FormatInsights renders the pace table, riskiest projects first.
func FormatInsights(resp *contract.InsightsResponse) string {
	var b strings.Builder
	b.WriteString(Header("Pace"))
	b.WriteString("\n\n")

	if len(resp.Projects) == 0 {
		b.WriteString(Dim("No projects."))
		b.WriteString("\n")
		return b.String()
	}

	headers := []string{"PROJECT", "RISK", "DONE", "REMAINING", "NEED/DAY", "RECENT/DAY", "DAYS LEFT", "DUE"}
	rows := make([][]string, 0, len(resp.Projects))
	for _, p := range resp.Projects {
		daysLeft, due := Dim("--"), Dim("ongoing")
		if p.DaysLeft != nil {
			daysLeft = fmt.Sprintf("%d", *p.DaysLeft)
		}
		if p.EndDate != nil {
			due = *p.EndDate
		}
		need := Hours(p.RequiredDailyHours)
		if p.RequiredDailyHours > p.RecentDailyHours {
			need = StyleYellow.Render(need)
		}
		rows = append(rows, []string{
			p.ProjectName,
			RiskIndicator(p.RiskLevel),
			fmt.Sprintf("%.0f%%", p.ProgressPct),
			Hours(p.RemainingHours),
			need,
			Hours(p.RecentDailyHours),
			daysLeft,
			due,
		})
	}
	b.WriteString(RenderTable(headers, rows, 2, 3, 4, 5, 6))

	s := resp.Summary
	fmt.Fprintf(&b, "\n%d project(s): %s on track, %s at risk, %s critical\n",
		s.CountsTotal,
		StyleGreen.Render(fmt.Sprint(s.CountsOnTrack)),
		StyleYellow.Render(fmt.Sprint(s.CountsAtRisk)),
		StyleRed.Render(fmt.Sprint(s.CountsCritical)))
	return b.String()
}
