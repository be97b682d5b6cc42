package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/timeplan/internal/cli/formatter"
	"github.com/alexanderramin/timeplan/internal/dateutil"
	"github.com/alexanderramin/timeplan/internal/domain"
	"github.com/spf13/cobra"
)

func newHolidayCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holiday",
		Short: "Manage non-working holidays",
	}

	cmd.AddCommand(
		newHolidayAddCmd(app),
		newHolidayListCmd(app),
		newHolidayRemoveCmd(app),
	)

	return cmd
}

func newHolidayAddCmd(app *App) *cobra.Command {
	var name string
	var recurring bool

	cmd := &cobra.Command{
		Use:   "add DATE",
		Short: "Add a holiday (YYYY-MM-DD)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dateutil.ParseDay(args[0])
			if err != nil {
				return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", args[0])
			}
			h := &domain.Holiday{Date: d, Name: name, Recurring: recurring}
			if err := app.Calendar.AddHoliday(cmd.Context(), h); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added holiday %s %s\n", dateutil.DayKey(h.Date), h.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Holiday name")
	cmd.Flags().BoolVar(&recurring, "yearly", false, "Repeat every year on the same day")

	return cmd
}

func newHolidayListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List holidays",
		RunE: func(cmd *cobra.Command, args []string) error {
			holidays, err := app.Calendar.ListHolidays(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatHolidays(holidays))
			return nil
		},
	}
}

// resolveHolidayID matches an ID, an ID prefix or a YYYY-MM-DD date.
func resolveHolidayID(ctx context.Context, app *App, input string) (string, error) {
	holidays, err := app.Calendar.ListHolidays(ctx)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, h := range holidays {
		if h.ID == input {
			return h.ID, nil
		}
		if strings.HasPrefix(h.ID, input) || dateutil.DayKey(h.Date) == input {
			matches = append(matches, h.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("holiday not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("holiday %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newHolidayRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove HOLIDAY",
		Aliases: []string{"rm"},
		Short:   "Delete a holiday by ID or date",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveHolidayID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Calendar.DeleteHoliday(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed holiday %s\n", id)
			return nil
		},
	}
}
