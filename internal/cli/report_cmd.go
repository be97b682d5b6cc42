package cli

import (
	"fmt"

	"github.com/alexanderramin/timeplan/internal/cli/formatter"
	"github.com/alexanderramin/timeplan/internal/contract"
	"github.com/alexanderramin/timeplan/internal/dateutil"
	"github.com/spf13/cobra"
)

func newTimelineCmd(app *App) *cobra.Command {
	var from, to, today string
	var projects []string
	var days int
	var includeEmpty bool

	cmd := &cobra.Command{
		Use:     "timeline",
		Aliases: []string{"tl"},
		Short:   "Show per-project day estimates for a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			start := dateutil.StartOfDay(dateutil.WallClock(app.now()))
			var err error
			if from != "" {
				if start, err = parseDay("from", from); err != nil {
					return err
				}
			}
			req := contract.NewTimelineRequest(start)
			if days > 0 {
				req.To = dateutil.AddDays(start, days-1)
			}
			if to != "" {
				if req.To, err = parseDay("to", to); err != nil {
					return err
				}
			}
			if req.Today, err = parseOptionalDay("today", today); err != nil {
				return err
			}
			if req.ProjectScope, err = projectScope(ctx, app, projects); err != nil {
				return err
			}
			req.IncludeEmpty = includeEmpty

			resp, err := app.Timeline.Timeline(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTimeline(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First day (default today)")
	cmd.Flags().StringVar(&to, "to", "", "Last day (default from + 6 days)")
	cmd.Flags().IntVar(&days, "days", 0, "Number of days from --from (instead of --to)")
	cmd.Flags().StringVar(&today, "today", "", "Treat this date as today (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&projects, "project", nil, "Limit to these projects (repeatable)")
	cmd.Flags().BoolVar(&includeEmpty, "empty", false, "Include projects with no time in range")
	cmd.MarkFlagsMutuallyExclusive("to", "days")

	return cmd
}

func newBudgetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "budget PROJECT",
		Short: "Compare a project's phase allocation with its estimate",
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
			a, err := app.Timeline.Budget(ctx, projectID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBudget(p.Name, a))
			return nil
		},
	}
}

func newPreviewCmd(app *App) *cobra.Command {
	var start, end, today, project string
	var hours float64

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview how hours would spread over a date range",
		Long: `Show the day-by-day auto-estimate for a phase before creating it.
With --project, also project the budget with these hours added.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			req := contract.PreviewRequest{Hours: hours}
			var err error
			if req.Start, err = parseDay("start", start); err != nil {
				return err
			}
			if req.End, err = parseDay("end", end); err != nil {
				return err
			}
			if req.Today, err = parseOptionalDay("today", today); err != nil {
				return err
			}
			if project != "" {
				if req.ProjectID, err = resolveProjectID(ctx, app, project); err != nil {
					return err
				}
			}

			resp, err := app.Timeline.Preview(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPreview(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Hours to distribute")
	cmd.Flags().StringVar(&today, "today", "", "Treat this date as today (YYYY-MM-DD)")
	cmd.Flags().StringVar(&project, "project", "", "Project for the budget projection")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	_ = cmd.MarkFlagRequired("hours")

	return cmd
}

func newInsightsCmd(app *App) *cobra.Command {
	var today string
	var projects []string
	var recent int

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Show pace and deadline risk per project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			req := contract.NewInsightsRequest()
			var err error
			if req.Today, err = parseOptionalDay("today", today); err != nil {
				return err
			}
			if req.ProjectScope, err = projectScope(ctx, app, projects); err != nil {
				return err
			}
			if recent > 0 {
				req.RecentDays = recent
			}

			resp, err := app.Timeline.Insights(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatInsights(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&today, "today", "", "Treat this date as today (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&projects, "project", nil, "Limit to these projects (repeatable)")
	cmd.Flags().IntVar(&recent, "recent", 7, "Days of history used for the recent pace")

	return cmd
}
