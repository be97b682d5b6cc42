package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/timeplan/internal/domain"
	"github.com/alexanderramin/timeplan/internal/scheduler"
	"github.com/charmbracelet/lipgloss"
)

// ProjectInspectData holds everything the inspect view shows.
type ProjectInspectData struct {
	Project *domain.Project
	// Budget is nil for projects without phases.
	Budget *scheduler.BudgetAnalysis
}

func allocationBadge(kind domain.AllocationKind) string {
	switch kind {
	case domain.AllocationPhases:
		return StyleBlue.Render("phases")
	case domain.AllocationRecurring:
		return StylePurple.Render("recurring")
	default:
		return Dim("auto")
	}
}

// FormatProjectList renders a styled project list inside a bordered box.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"ID", "NAME", "START", "END", "ESTIMATE", "ALLOCATION"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			Dim(p.DisplayID()),
			Bold(p.Name),
			Day(p.StartDate),
			OptionalDay(p.EndDate),
			Hours(p.EstimatedHours),
			allocationBadge(p.AllocationKind()),
		})
	}
	return RenderBox("Projects", RenderTable(headers, rows, 4))
}

// FormatProjectInspect renders project metadata beside its allocation.
func FormatProjectInspect(data ProjectInspectData) string {
	p := data.Project
	meta := [][2]string{
		{"ID", p.ID},
		{"Start", Day(p.StartDate)},
		{"End", OptionalDay(p.EndDate)},
		{"Estimate", Hours(p.EstimatedHours)},
		{"Allocation", allocationBadge(p.AllocationKind())},
	}
	if p.ClientID != "" {
		meta = append(meta, [2]string{"Client", p.ClientID})
	}
	left := KeyValue(meta)

	var right string
	switch p.AllocationKind() {
	case domain.AllocationPhases:
		right = FormatPhaseList(p.Phases())
		if data.Budget != nil {
			right += "\n" + fmt.Sprintf("%s allocated of %s  %s",
				Hours(data.Budget.TotalAllocated), Hours(data.Budget.EstimatedHours),
				RenderUtilization(data.Budget.UtilizationPercent, budgetBarWidth))
		}
	case domain.AllocationRecurring:
		r, _ := p.Recurring()
		right = FormatRecurring(r)
	default:
		right = Dim("Hours are spread evenly over the remaining working days.")
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)
	return RenderBox(p.Name, body)
}

// FormatPhaseList renders phases in chronological order.
func FormatPhaseList(phases []domain.Phase) string {
	if len(phases) == 0 {
		return Dim("No phases.")
	}
	rows := make([][]string, 0, len(phases))
	for _, ph := range domain.SortPhases(phases) {
		rows = append(rows, []string{
			Dim(shortID(ph.ID)),
			ph.Name,
			Day(ph.StartDate),
			Day(ph.EndDate),
			Hours(ph.Hours),
		})
	}
	return RenderTable([]string{"ID", "PHASE", "START", "END", "HOURS"}, rows, 4)
}

// FormatRecurring describes a recurring estimate in one line.
func FormatRecurring(r *domain.RecurringEstimate) string {
	if r == nil {
		return Dim("No recurring estimate.")
	}
	every := string(r.Pattern)
	if r.Interval > 1 {
		unit := map[domain.RecurrencePattern]string{
			domain.RecurDaily: "days", domain.RecurWeekly: "weeks", domain.RecurMonthly: "months",
		}[r.Pattern]
		every = fmt.Sprintf("every %d %s", r.Interval, unit)
	}
	var extra []string
	if len(r.Weekdays) > 0 {
		names := make([]string, 0, len(r.Weekdays))
		for _, wd := range r.Weekdays {
			names = append(names, wd.String()[:3])
		}
		extra = append(extra, "on "+strings.Join(names, ","))
	}
	if r.DayOfMonth > 0 {
		extra = append(extra, fmt.Sprintf("on day %d", r.DayOfMonth))
	}
	line := fmt.Sprintf("%s per occurrence, %s", Bold(Hours(r.HoursPerOccurrence)), every)
	if len(extra) > 0 {
		line += " " + strings.Join(extra, " ")
	}
	return line
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// FormatEventList renders events grouped by their start day.
func FormatEventList(events []domain.CalendarEvent) string {
	if len(events) == 0 {
		return Dim("No events.")
	}
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		project := Dim("--")
		if e.ProjectID != nil {
			project = shortID(*e.ProjectID)
		}
		end := e.End.Format("15:04")
		if e.Type == domain.EventTracked && e.End.Equal(e.Start) {
			end = StyleGreen.Render("running")
		}
		rows = append(rows, []string{
			Dim(shortID(e.ID)),
			e.Start.Format("2006-01-02 15:04"),
			end,
			e.Title,
			eventTypeLabel(e),
			project,
			Hours(e.DurationHours()),
		})
	}
	return RenderTable([]string{"ID", "START", "END", "TITLE", "TYPE", "PROJECT", "HOURS"}, rows, 6)
}

func eventTypeLabel(e domain.CalendarEvent) string {
	label := string(e.Type)
	if e.Category != domain.CategoryEvent {
		label += "/" + string(e.Category)
	}
	switch {
	case e.Completed || e.Type == domain.EventCompleted:
		return StyleGreen.Render(label)
	case e.Type == domain.EventTracked:
		return StyleYellow.Render(label)
	default:
		return StyleBlue.Render(label)
	}
}

var weekOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

// FormatSchedule lists each weekday's working slots, Monday first.
func FormatSchedule(ws domain.WeeklySchedule) string {
	rows := make([][]string, 0, len(weekOrder))
	var total float64
	for _, wd := range weekOrder {
		slots := ws.SlotsFor(wd)
		if len(slots) == 0 {
			rows = append(rows, []string{wd.String(), Dim("off"), Dim("0h")})
			continue
		}
		parts := make([]string, 0, len(slots))
		for _, s := range slots {
			parts = append(parts, s.String())
		}
		h := ws.HoursFor(wd)
		total += h
		rows = append(rows, []string{wd.String(), strings.Join(parts, ", "), Hours(h)})
	}
	return RenderTable([]string{"DAY", "SLOTS", "HOURS"}, rows, 2) +
		fmt.Sprintf("%s per week\n", Bold(Hours(total)))
}

// FormatHolidays renders holidays in date order.
func FormatHolidays(holidays []domain.Holiday) string {
	if len(holidays) == 0 {
		return Dim("No holidays.")
	}
	rows := make([][]string, 0, len(holidays))
	for _, h := range holidays {
		repeat := ""
		if h.Recurring {
			repeat = StylePurple.Render("yearly")
		}
		rows = append(rows, []string{Dim(shortID(h.ID)), Day(h.Date), h.Name, repeat})
	}
	return RenderTable([]string{"ID", "DATE", "NAME", "REPEATS"}, rows)
}
