package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/timeplan/internal/contract"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// Hours renders an hour value with at most one decimal: "8h", "2.5h".
func Hours(h float64) string {
	return strconv.FormatFloat(roundTenth(h), 'f', -1, 64) + "h"
}

func roundTenth(h float64) float64 {
	return math.Round(h*10) / 10
}

func Day(t time.Time) string {
	return t.Format("2006-01-02")
}

// ShortDay is the compact column heading used by the timeline grid.
func ShortDay(t time.Time) string {
	return t.Format("Mon 01/02")
}

func OptionalDay(t *time.Time) string {
	if t == nil {
		return Dim("ongoing")
	}
	return Day(*t)
}

// KeyValue renders aligned "label  value" lines.
func KeyValue(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		width = max(width, len(p[0]))
	}
	var b strings.Builder
	for _, p := range pairs {
		fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render(fmt.Sprintf("%-*s", width, p[0])), p[1])
	}
	return b.String()
}

// FormatNotices lists the automatic adjustments a mutation made.
func FormatNotices(notices []contract.Notice) string {
	if len(notices) == 0 {
		return ""
	}
	var b strings.Builder
	for _, n := range notices {
		style := StyleBlue
		if n.Kind == contract.NoticeBudgetWarning || n.Kind == contract.NoticeCannotEstimate {
			style = StyleYellow
		}
		fmt.Fprintf(&b, "%s %s\n", style.Render("›"), n.Message)
	}
	return b.String()
}

// FormatWarnings renders warning strings in yellow, one per line.
func FormatWarnings(warnings []string) string {
	var b strings.Builder
	for _, w := range warnings {
		fmt.Fprintf(&b, "%s %s\n", StyleYellow.Render("!"), w)
	}
	return b.String()
}
