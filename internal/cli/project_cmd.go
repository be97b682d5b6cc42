package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/timeplan/internal/cli/formatter"
	"github.com/alexanderramin/timeplan/internal/dateutil"
	"github.com/alexanderramin/timeplan/internal/domain"
	"github.com/alexanderramin/timeplan/internal/scheduler"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"p"},
		Short:   "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectInspectCmd(app),
		newProjectUpdateCmd(app),
		newProjectRemoveCmd(app),
		newProjectRecurringCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, start, end, client, color string
	var hours float64
	var continuous bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := parseDay("start", start)
			if err != nil {
				return err
			}
			endDate, err := parseOptionalDay("end", end)
			if err != nil {
				return err
			}

			p := &domain.Project{
				Name:           name,
				ClientID:       client,
				StartDate:      startDate,
				EndDate:        endDate,
				Continuous:     continuous,
				EstimatedHours: hours,
				Color:          color,
			}
			if err := app.Projects.Create(cmd.Context(), p); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s [%s]\n", p.Name, p.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&continuous, "continuous", false, "Project has no end date")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Estimated hours")
	cmd.Flags().StringVar(&client, "client", "", "Client ID")
	cmd.Flags().StringVar(&color, "color", "", "Display color")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("start")
	cmd.MarkFlagsMutuallyExclusive("end", "continuous")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(projects))
			return nil
		},
	}
}

func newProjectInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect PROJECT",
		Short: "Show project details and allocation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, projectID)
			if err != nil {
				return err
			}

			data := formatter.ProjectInspectData{Project: p}
			if p.AllocationKind() == domain.AllocationPhases {
				a := scheduler.AnalyzeBudget(p, p.Phases())
				data.Budget = &a
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectInspect(data))
			return nil
		},
	}
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var name, start, end, client, color string
	var hours float64
	var continuous bool

	cmd := &cobra.Command{
		Use:   "update PROJECT",
		Short: "Update project fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, projectID)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			p.Name = domain.ValueOr(p.Name, flagValue(flags, "name", name))
			var startDate, endDate time.Time
			if _, err := changedDay(flags, "start", &startDate); err != nil {
				return err
			}
			p.StartDate = domain.DateOr(p.StartDate, startDate)
			if set, err := changedDay(flags, "end", &endDate); err != nil {
				return err
			} else if set {
				p.EndDate = &endDate
				p.Continuous = false
			}
			if flags.Changed("continuous") {
				p.Continuous = continuous
				if continuous {
					p.EndDate = nil
				}
			}
			p.EstimatedHours = domain.ValueOr(p.EstimatedHours, flagValue(flags, "hours", hours))
			p.ClientID = domain.ValueOr(p.ClientID, flagValue(flags, "client", client))
			p.Color = domain.ValueOr(p.Color, flagValue(flags, "color", color))

			result, err := app.Projects.Update(ctx, p)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Updated project %s\n", p.Name)
			fmt.Fprint(out, formatter.FormatNotices(result.Notices))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&start, "start", "", "New start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "New end date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&continuous, "continuous", false, "Make the project open-ended")
	cmd.Flags().Float64Var(&hours, "hours", 0, "New estimated hours")
	cmd.Flags().StringVar(&client, "client", "", "New client ID")
	cmd.Flags().StringVar(&color, "color", "", "New display color")
	cmd.MarkFlagsMutuallyExclusive("end", "continuous")

	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove PROJECT",
		Aliases: []string{"rm"},
		Short:   "Delete a project with its phases and recurring estimate",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Delete(ctx, projectID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed project %s\n", projectID)
			return nil
		},
	}
}

func newProjectRecurringCmd(app *App) *cobra.Command {
	var pattern, weekdays string
	var hours float64
	var interval, dayOfMonth int
	var clear bool

	cmd := &cobra.Command{
		Use:   "recurring PROJECT",
		Short: "Set or clear a project's recurring estimate",
		Long: `Book a fixed number of hours on every date a pattern hits, counted from
the project start. A project uses either phases or a recurring estimate.

Examples:
  timeplan project recurring Website --pattern weekly --weekdays mon,thu --hours 2
  timeplan project recurring Website --pattern monthly --day 15 --hours 6
  timeplan project recurring Website --clear`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if clear {
				if err := app.Projects.ClearRecurring(ctx, projectID); err != nil {
					return err
				}
				fmt.Fprintln(out, "Cleared recurring estimate")
				return nil
			}

			if !domain.ValidRecurrencePatterns[pattern] {
				return fmt.Errorf("invalid --pattern %q (daily, weekly or monthly)", pattern)
			}
			days, err := dateutil.ParseWeekdays(weekdays)
			if err != nil {
				return err
			}
			rec := &domain.RecurringEstimate{
				ProjectID:          projectID,
				Pattern:            domain.RecurrencePattern(pattern),
				Interval:           interval,
				Weekdays:           days,
				DayOfMonth:         dayOfMonth,
				HoursPerOccurrence: hours,
			}
			if err := app.Projects.SetRecurring(ctx, rec); err != nil {
				return err
			}
			fmt.Fprintf(out, "Recurring estimate: %s\n", formatter.FormatRecurring(rec))
			return nil
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", "", "daily, weekly or monthly")
	cmd.Flags().IntVar(&interval, "every", 1, "Repeat every N days/weeks/months")
	cmd.Flags().StringVar(&weekdays, "weekdays", "", "Weekly only: comma-separated days, e.g. mon,thu")
	cmd.Flags().IntVar(&dayOfMonth, "day", 0, "Monthly only: day of month")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Hours per occurrence")
	cmd.Flags().BoolVar(&clear, "clear", false, "Remove the recurring estimate")
	cmd.MarkFlagsMutuallyExclusive("clear", "pattern")

	return cmd
}
