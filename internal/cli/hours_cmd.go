package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/timeplan/internal/cli/formatter"
	"github.com/alexanderramin/timeplan/internal/dateutil"
	"github.com/alexanderramin/timeplan/internal/domain"
	"github.com/spf13/cobra"
)

func newHoursCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hours",
		Short: "Show or change the weekly work-hour schedule",
	}

	cmd.AddCommand(
		newHoursShowCmd(app),
		newHoursSetCmd(app),
		newHoursOverrideCmd(app),
	)

	return cmd
}

// parseScheduleSpecs turns repeated "mon=09:00-12:00,13:00-17:00" values into
// a schedule. "sat=off" marks a day as non-working.
func parseScheduleSpecs(base domain.WeeklySchedule, specs []string) (domain.WeeklySchedule, error) {
	ws := make(domain.WeeklySchedule, len(base))
	for wd, slots := range base {
		ws[wd] = append([]domain.TimeSlot(nil), slots...)
	}
	for _, spec := range specs {
		day, slotList, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --day %q (expected DAY=HH:MM-HH:MM[,HH:MM-HH:MM])", spec)
		}
		wd, err := dateutil.ParseWeekday(day)
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(strings.TrimSpace(slotList), "off") {
			delete(ws, wd)
			continue
		}
		var slots []domain.TimeSlot
		for _, s := range strings.Split(slotList, ",") {
			slot, err := domain.ParseTimeSlot(strings.TrimSpace(s))
			if err != nil {
				return nil, err
			}
			slots = append(slots, slot)
		}
		ws[wd] = slots
	}
	return ws, nil
}

func newHoursShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the weekly schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := app.Calendar.GetSchedule(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSchedule(ws))
			return nil
		},
	}
}

func newHoursSetCmd(app *App) *cobra.Command {
	var days []string
	var reset bool

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change working slots for one or more weekdays",
		Long: `Change the stored weekly schedule. Days not mentioned keep their slots.

Examples:
  timeplan hours set --day mon=09:00-12:00,13:00-17:00 --day fri=off
  timeplan hours set --reset`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			base := domain.DefaultWeeklySchedule()
			if !reset {
				current, err := app.Calendar.GetSchedule(ctx)
				if err != nil {
					return err
				}
				base = current
			}
			ws, err := parseScheduleSpecs(base, days)
			if err != nil {
				return err
			}
			if err := app.Calendar.SetSchedule(ctx, ws); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSchedule(ws.Normalize()))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&days, "day", nil, "DAY=HH:MM-HH:MM[,...] or DAY=off (repeatable)")
	cmd.Flags().BoolVar(&reset, "reset", false, "Start from the default Monday to Friday 09:00-17:00 week")

	return cmd
}

func newHoursOverrideCmd(app *App) *cobra.Command {
	var days []string
	var week string
	var clear bool

	cmd := &cobra.Command{
		Use:   "override",
		Short: "Use a different schedule for one week (held in memory)",
		Long: `Override the schedule for the ISO week containing --week. Overrides are
not stored; they last as long as the process, which makes them useful with
"serve" and for checking a week's capacity.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := parseDay("week", week)
			if err != nil {
				return err
			}
			key := domain.WeekKeyOf(d)
			out := cmd.OutOrStdout()

			if clear {
				app.Calendar.ClearWeekOverride(key)
				fmt.Fprintf(out, "Cleared override for %s\n", key)
				return nil
			}

			base, err := app.Calendar.GetSchedule(ctx)
			if err != nil {
				return err
			}
			if existing, ok := app.Calendar.WeekOverrides()[key]; ok {
				base = existing
			}
			ws, err := parseScheduleSpecs(base, days)
			if err != nil {
				return err
			}
			if err := app.Calendar.SetWeekOverride(key, ws); err != nil {
				return err
			}

			cal, err := app.Calendar.WorkCalendar(ctx)
			if err != nil {
				return err
			}
			monday := dateutil.AddDays(d, -int((d.Weekday()+6)%7))
			capacity := cal.CapacityBetween(monday, dateutil.AddDays(monday, 6))
			fmt.Fprintf(out, "Override for %s: %s of capacity\n", key, formatter.Hours(capacity))
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "Any date in the week (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&days, "day", nil, "DAY=HH:MM-HH:MM[,...] or DAY=off (repeatable)")
	cmd.Flags().BoolVar(&clear, "clear", false, "Remove the override")
	_ = cmd.MarkFlagRequired("week")

	return cmd
}
