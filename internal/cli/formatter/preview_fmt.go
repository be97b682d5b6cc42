package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/timeplan/internal/contract"
)

// FormatPreview shows how hours would spread over the remaining working
// days, with the budget projection when a project was given.
func FormatPreview(resp *contract.PreviewResponse) string {
	var b strings.Builder
	b.WriteString(Header("Distribution preview"))
	b.WriteString("\n\n")

	if len(resp.Days) > 0 {
		rows := make([][]string, 0, len(resp.Days))
		for _, d := range resp.Days {
			h := Hours(d.Hours)
			if d.Hours > d.CapacityHours {
				h = StyleRed.Render(h)
			}
			rows = append(rows, []string{ShortDay(d.Date), h, Dim(Hours(d.CapacityHours))})
		}
		b.WriteString(RenderTable([]string{"DAY", "HOURS", "CAPACITY"}, rows, 1, 2))
		fmt.Fprintf(&b, "%s over %d working day(s)\n", Bold(Hours(resp.TotalHours)), resp.WorkingDays)
	}

	if bp := resp.Budget; bp != nil {
		b.WriteString("\n")
		pairs := [][2]string{
			{"Estimated", Hours(bp.EstimatedHours)},
			{"Allocated now", Hours(bp.AllocatedHours)},
			{"With preview", Hours(bp.ProjectedAllocated)},
		}
		if bp.IsOverBudget {
			pairs = append(pairs, [2]string{"Over by", StyleRed.Render(Hours(bp.OverageHours))})
		}
		b.WriteString(KeyValue(pairs))
	}

	if len(resp.Warnings) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatWarnings(resp.Warnings))
	}
	return b.String()
}
