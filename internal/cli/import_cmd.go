package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/scoutline/internal/cli/formatter"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import an athlete with schools, contacts and history",
		Long: `Import an athlete from a JSON or YAML file (chosen by extension).
Schools and events declare a ref that interactions and events point at.
The whole file is validated first and written in one transaction.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := app.importAthleteUseCase()
			if uc == nil {
				return fmt.Errorf("import is not available")
			}
			res, err := uc.ImportAthlete(cmd.Context(), args[0])
			if res != nil {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatImportResult(res))
			}
			return err
		},
	}
}
