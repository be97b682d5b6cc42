package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/timeplan/internal/cli/formatter"
	"github.com/alexanderramin/timeplan/internal/dateutil"
	"github.com/alexanderramin/timeplan/internal/domain"
	"github.com/alexanderramin/timeplan/internal/repository"
	"github.com/spf13/cobra"
)

func newEventCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "event",
		Aliases: []string{"e"},
		Short:   "Manage calendar events and time tracking",
	}

	cmd.AddCommand(
		newEventAddCmd(app),
		newEventListCmd(app),
		newEventCompleteCmd(app),
		newEventRemoveCmd(app),
		newEventStartCmd(app),
		newEventStopCmd(app),
	)

	return cmd
}

func resolveEventID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("event ID is required")
	}
	events, err := app.Events.List(ctx, repository.EventFilter{})
	if err != nil {
		return "", err
	}
	var matches []string
	for _, e := range events {
		if e.ID == input {
			return e.ID, nil
		}
		if strings.HasPrefix(e.ID, input) {
			matches = append(matches, e.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("event not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("event ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func optionalProject(ctx context.Context, app *App, input string) (*string, error) {
	if input == "" {
		return nil, nil
	}
	id, err := resolveProjectID(ctx, app, input)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func newEventAddCmd(app *App) *cobra.Command {
	var title, start, end, project, typ, category string
	var duration time.Duration

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a planned or completed event",
		Long: `Add an event. Times are wall-clock "YYYY-MM-DD HH:MM". An event that
crosses midnight is stored as one part per day.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			startAt, err := dateutil.ParseWallClock(start)
			if err != nil {
				return err
			}
			var endAt time.Time
			switch {
			case end != "":
				if endAt, err = dateutil.ParseWallClock(end); err != nil {
					return err
				}
			case duration > 0:
				endAt = startAt.Add(duration)
			default:
				return fmt.Errorf("one of --end or --duration is required")
			}
			eventType, err := domain.ParseEventType(typ)
			if err != nil {
				return err
			}
			eventCategory, err := domain.ParseEventCategory(category)
			if err != nil {
				return err
			}
			projectID, err := optionalProject(ctx, app, project)
			if err != nil {
				return err
			}

			e := &domain.CalendarEvent{
				Title:     title,
				Start:     startAt,
				End:       endAt,
				ProjectID: projectID,
				Type:      eventType,
				Category:  eventCategory,
			}
			result, err := app.Events.Create(ctx, e)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Added event %s [%s]\n", e.Title, e.ID)
			fmt.Fprint(out, formatter.FormatNotices(result.Notices))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Event title")
	cmd.Flags().StringVar(&start, "start", "", `Start time ("YYYY-MM-DD HH:MM")`)
	cmd.Flags().StringVar(&end, "end", "", `End time ("YYYY-MM-DD HH:MM")`)
	cmd.Flags().DurationVar(&duration, "duration", 0, "Duration, e.g. 90m (instead of --end)")
	cmd.Flags().StringVar(&project, "project", "", "Project the time belongs to")
	cmd.Flags().StringVar(&typ, "type", "planned", "planned, tracked or completed")
	cmd.Flags().StringVar(&category, "category", "event", "event, habit or task")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("start")
	cmd.MarkFlagsMutuallyExclusive("end", "duration")

	return cmd
}

func newEventListCmd(app *App) *cobra.Command {
	var from, to, project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events in a date range (default: this week)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			today := dateutil.StartOfDay(dateutil.WallClock(app.now()))
			fromDay := dateutil.AddDays(today, -int((today.Weekday()+6)%7))
			toDay := dateutil.AddDays(fromDay, 6)
			var err error
			if from != "" {
				if fromDay, err = parseDay("from", from); err != nil {
					return err
				}
			}
			if to != "" {
				if toDay, err = parseDay("to", to); err != nil {
					return err
				}
			}

			events, err := app.Events.ListRange(ctx, fromDay, toDay)
			if err != nil {
				return err
			}
			if project != "" {
				projectID, err := resolveProjectID(ctx, app, project)
				if err != nil {
					return err
				}
				kept := events[:0]
				for _, e := range events {
					if e.BelongsTo(projectID) {
						kept = append(kept, e)
					}
				}
				events = kept
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatEventList(events))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&project, "project", "", "Only events of this project")

	return cmd
}

func newEventCompleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "complete EVENT",
		Short: "Mark an event (and its split parts) completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveEventID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Events.Complete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed event %s\n", id)
			return nil
		},
	}
}

func newEventRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove EVENT",
		Aliases: []string{"rm"},
		Short:   "Delete an event and its split parts",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveEventID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Events.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed event %s\n", id)
			return nil
		},
	}
}

func newEventStartCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "start TITLE",
		Short: "Start tracking time now; any running tracker is stopped",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := optionalProject(ctx, app, project)
			if err != nil {
				return err
			}
			tracked, result, err := app.Events.StartTracking(ctx, args[0], projectID, app.now())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatNotices(result.Notices))
			fmt.Fprintf(out, "Tracking %s since %s [%s]\n", tracked.Title, tracked.Start.Format("15:04"), tracked.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project the time belongs to")

	return cmd
}

func newEventStopCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stop [EVENT]",
		Short: "Stop a running tracker (the only one, when no ID is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var id string
			if len(args) == 1 {
				var err error
				if id, err = resolveEventID(ctx, app, args[0]); err != nil {
					return err
				}
			} else {
				running, err := app.Events.Running(ctx)
				if err != nil {
					return err
				}
				switch len(running) {
				case 0:
					return fmt.Errorf("no tracker is running")
				case 1:
					id = running[0].ID
				default:
					return fmt.Errorf("%d trackers are running; pass an event ID", len(running))
				}
			}

			result, err := app.Events.StopTracking(ctx, id, app.now())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Stopped tracker %s\n", id)
			fmt.Fprint(out, formatter.FormatNotices(result.Notices))
			return nil
		},
	}
}
