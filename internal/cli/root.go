// Package cli implements the timeplan command tree.
package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/timeplan/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects service.ProjectService
	Phases   service.PhaseService
	Events   service.EventService
	Calendar service.CalendarService
	Timeline service.TimelineService
	Import   service.ImportService

	// Serve runs the HTTP API until ctx is canceled. Nil disables "serve".
	Serve func(ctx context.Context, addr string) error
	// IsInteractive reports whether stdin is a terminal; forms are only
	// offered when it is.
	IsInteractive func() bool
	// Now defaults to time.Now.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "timeplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "timeplan",
		Short:         "Project time planner with automatic day estimates",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newProjectCmd(app),
		newPhaseCmd(app),
		newEventCmd(app),
		newHoursCmd(app),
		newHolidayCmd(app),
		newTimelineCmd(app),
		newBudgetCmd(app),
		newPreviewCmd(app),
		newInsightsCmd(app),
		newImportCmd(app),
		newServeCmd(app),
	)

	return root
}
