package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/timeplan/internal/contract"
	"github.com/alexanderramin/timeplan/internal/domain"
)

// FormatTimeline renders the day-by-day grid: one row per project, one
// column per day, followed by the day totals against capacity.
func FormatTimeline(resp *contract.TimelineResponse) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Timeline %s → %s", Day(resp.From), Day(resp.To))))
	b.WriteString("\n\n")

	if len(resp.Projects) == 0 {
		b.WriteString(Dim("No project time in this range."))
		b.WriteString("\n")
		return b.String()
	}

	headers := []string{"PROJECT"}
	for _, t := range resp.Totals {
		headers = append(headers, ShortDay(t.Date))
	}
	headers = append(headers, "TOTAL")

	numeric := make([]int, 0, len(headers)-1)
	for i := 1; i < len(headers); i++ {
		numeric = append(numeric, i)
	}

	rows := make([][]string, 0, len(resp.Projects)+2)
	for _, p := range resp.Projects {
		row := []string{p.ProjectName}
		for _, d := range p.Days {
			row = append(row, dayCell(d))
		}
		row = append(row, Bold(Hours(p.TotalHours)))
		rows = append(rows, row)
	}

	totals := []string{Bold("Σ")}
	capacity := []string{Dim("capacity")}
	var sum float64
	for _, t := range resp.Totals {
		cell := Hours(t.Hours)
		if t.Hours > t.CapacityHours {
			cell = StyleRed.Render(cell)
		}
		totals = append(totals, cell)
		capacity = append(capacity, Dim(Hours(t.CapacityHours)))
		sum += t.Hours
	}
	totals = append(totals, Bold(Hours(sum)))
	capacity = append(capacity, "")
	rows = append(rows, totals, capacity)

	b.WriteString(RenderTable(headers, rows, numeric...))
	b.WriteString(Dim("c completed · p planned · a auto-estimate"))
	b.WriteString("\n")
	if len(resp.Warnings) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatWarnings(resp.Warnings))
	}
	return b.String()
}

func dayCell(d domain.DayEstimate) string {
	if d.Source == domain.SourceNone {
		return Dim("·")
	}
	return SourceStyle(d.Source).Render(Hours(d.Hours) + " " + SourceMarker(d.Source))
}
