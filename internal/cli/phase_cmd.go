package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/timeplan/internal/cli/formatter"
	"github.com/alexanderramin/timeplan/internal/dateutil"
	"github.com/alexanderramin/timeplan/internal/domain"
	"github.com/spf13/cobra"
)

func newPhaseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phase",
		Short: "Manage project phases",
	}

	cmd.AddCommand(
		newPhaseAddCmd(app),
		newPhaseListCmd(app),
		newPhaseUpdateCmd(app),
		newPhaseRemoveCmd(app),
		newPhaseAdjustCmd(app),
	)

	return cmd
}

func newPhaseAddCmd(app *App) *cobra.Command {
	var name, start, end string
	var hours float64
	var order int
	var interactive bool

	cmd := &cobra.Command{
		Use:   "add PROJECT",
		Short: "Add a phase to a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if interactive {
				if !app.interactive() {
					return fmt.Errorf("--interactive needs a terminal")
				}
				v := phaseFormValues{Name: name, Start: start, End: end}
				if cmd.Flags().Changed("hours") {
					v.Hours = strconv.FormatFloat(hours, 'f', -1, 64)
				}
				if err := phaseForm(&v).Run(); err != nil {
					return err
				}
				name, start, end = strings.TrimSpace(v.Name), v.Start, v.End
				if hours, err = strconv.ParseFloat(strings.TrimSpace(v.Hours), 64); err != nil {
					return fmt.Errorf("invalid hours %q", v.Hours)
				}
			} else if name == "" || start == "" || end == "" {
				return fmt.Errorf("--name, --start and --end are required (or use --interactive)")
			}

			ph := &domain.Phase{ProjectID: projectID, Name: name, Hours: hours, Order: order}
			if ph.StartDate, err = parseDay("start", start); err != nil {
				return err
			}
			if ph.EndDate, err = parseDay("end", end); err != nil {
				return err
			}

			result, err := app.Phases.Create(ctx, ph)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Added phase %s (%s → %s, %s)\n",
				ph.Name, dateutil.DayKey(ph.StartDate), dateutil.DayKey(ph.EndDate), formatter.Hours(ph.Hours))
			fmt.Fprint(out, formatter.FormatNotices(result.Notices))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Phase name")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Hours budgeted to the phase")
	cmd.Flags().IntVar(&order, "order", 0, "Display order")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill in the phase with a form")

	return cmd
}

func newPhaseListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list PROJECT",
		Short: "List a project's phases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			phases, err := app.Phases.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPhaseList(phases))
			return nil
		},
	}
}

func newPhaseUpdateCmd(app *App) *cobra.Command {
	var name, start, end string
	var hours float64
	var order int

	cmd := &cobra.Command{
		Use:   "update PHASE",
		Short: "Change a phase's name, dates or hours",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			phaseID, err := resolvePhaseID(ctx, app, args[0])
			if err != nil {
				return err
			}
			ph, err := app.Phases.GetByID(ctx, phaseID)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			var start, end time.Time
			if _, err := changedDay(flags, "start", &start); err != nil {
				return err
			}
			if _, err := changedDay(flags, "end", &end); err != nil {
				return err
			}
			ph.Name = domain.ValueOr(ph.Name, flagValue(flags, "name", name))
			ph.StartDate = domain.DateOr(ph.StartDate, start)
			ph.EndDate = domain.DateOr(ph.EndDate, end)
			ph.Hours = domain.ValueOr(ph.Hours, flagValue(flags, "hours", hours))
			ph.Order = domain.ValueOr(ph.Order, flagValue(flags, "order", order))

			result, err := app.Phases.Update(ctx, ph)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Updated phase %s\n", ph.Name)
			fmt.Fprint(out, formatter.FormatNotices(result.Notices))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&start, "start", "", "New start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "New end date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "New hours")
	cmd.Flags().IntVar(&order, "order", 0, "New display order")

	return cmd
}

func newPhaseRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "remove PHASE",
		Aliases: []string{"rm"},
		Short:   "Delete a phase",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			phaseID, err := resolvePhaseID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if !yes && app.interactive() {
				ok := false
				if err := confirmForm("Delete this phase?", &ok).Run(); err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			result, err := app.Phases.Delete(ctx, phaseID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Removed phase %s\n", phaseID)
			fmt.Fprint(out, formatter.FormatNotices(result.Notices))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}

func newPhaseAdjustCmd(app *App) *cobra.Command {
	var today string

	cmd := &cobra.Command{
		Use:   "adjust PROJECT",
		Short: "Push overdue phases that still carry hours forward to today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			day := dateutil.StartOfDay(dateutil.WallClock(app.now()))
			if today != "" {
				if day, err = parseDay("today", today); err != nil {
					return err
				}
			}

			result, err := app.Phases.AdjustForToday(ctx, projectID, day)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(result.Notices) == 0 {
				fmt.Fprintln(out, "Phases already on schedule.")
				return nil
			}
			fmt.Fprint(out, formatter.FormatNotices(result.Notices))
			return nil
		},
	}

	cmd.Flags().StringVar(&today, "today", "", "Treat this date as today (YYYY-MM-DD)")

	return cmd
}
