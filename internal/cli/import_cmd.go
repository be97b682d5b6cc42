package cli

import (
	"fmt"

	"github.com/alexanderramin/timeplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a project plan from a JSON or YAML file",
		Long: `Import a project with its phases or recurring estimate, events and
holidays in one transaction. Nothing is written if any part is invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported project %s [%s]: %d phase(s), %d event(s), %d holiday(s)",
				result.Project.Name, result.Project.DisplayID(), result.PhaseCount, result.EventCount, result.HolidayCount)
			if result.Recurring {
				fmt.Fprint(out, ", recurring estimate")
			}
			fmt.Fprintln(out)
			fmt.Fprint(out, formatter.FormatNotices(result.Notices))
			return nil
		},
	}
}
