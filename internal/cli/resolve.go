package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/timeplan/internal/dateutil"
	"github.com/spf13/pflag"
)

// resolveProjectID accepts a full ID, an unambiguous ID prefix or a
// case-insensitive project name.
func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("project ID is required")
	}

	projects, err := app.Projects.List(ctx)
	if err != nil {
		return "", err
	}

	for _, p := range projects {
		if p.ID == input {
			return p.ID, nil
		}
	}

	var byName []string
	for _, p := range projects {
		if strings.EqualFold(p.Name, input) {
			byName = append(byName, p.ID)
		}
	}
	if len(byName) == 1 {
		return byName[0], nil
	}

	var matches []string
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		if len(byName) > 1 {
			return "", fmt.Errorf("project name %q is ambiguous (%d matches)", input, len(byName))
		}
		return "", fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolvePhaseID matches a full phase ID or an ID prefix among the phases of
// every project.
func resolvePhaseID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("phase ID is required")
	}
	projects, err := app.Projects.List(ctx)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, p := range projects {
		for _, ph := range p.Phases() {
			if ph.ID == input {
				return ph.ID, nil
			}
			if strings.HasPrefix(ph.ID, input) {
				matches = append(matches, ph.ID)
			}
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("phase not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("phase ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func parseDay(flag, value string) (time.Time, error) {
	d, err := dateutil.ParseDay(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q (expected YYYY-MM-DD)", flag, value)
	}
	return d, nil
}

// changedDay parses the named date flag into dst when it was set on the
// command line and reports whether it was.
func changedDay(flags *pflag.FlagSet, name string, dst *time.Time) (bool, error) {
	if !flags.Changed(name) {
		return false, nil
	}
	value, err := flags.GetString(name)
	if err != nil {
		return false, err
	}
	d, err := parseDay(name, value)
	if err != nil {
		return false, err
	}
	*dst = d
	return true, nil
}

// flagValue returns &v when the named flag was set on the command line, nil
// otherwise.
func flagValue[T any](flags *pflag.FlagSet, name string, v T) *T {
	if !flags.Changed(name) {
		return nil
	}
	return &v
}

func parseOptionalDay(flag, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	d, err := parseDay(flag, value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// projectScope resolves every --project value to a project ID.
func projectScope(ctx context.Context, app *App, inputs []string) ([]string, error) {
	ids := make([]string, 0, len(inputs))
	for _, in := range inputs {
		id, err := resolveProjectID(ctx, app, in)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
