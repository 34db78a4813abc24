package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/scoutline/internal/app"
	"github.com/alexanderramin/scoutline/internal/cli/formatter"
	"github.com/alexanderramin/scoutline/internal/contract"
	"github.com/alexanderramin/scoutline/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Athletes    service.AthleteService
	Schools     service.SchoolService
	Activity    service.ActivityService
	Suggestions service.SuggestionService
	Trigger     service.TriggerService
	Import      service.ImportService

	// ImportAthlete overrides Import when set.
	ImportAthlete app.ImportAthleteUseCase

	// Now is the clock used for relative dates and grade levels.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now().UTC()
}

// NewRootCmd creates the top-level "scoutline" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "scoutline",
		Short:         "Recruiting tracker with next-step suggestions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newAthleteCmd(app),
		newSchoolCmd(app),
		newInteractionCmd(app),
		newVideoCmd(app),
		newEventCmd(app),
		newTaskCmd(app),
		newSuggestCmd(app),
		newFitCmd(app),
		newPhaseCmd(app),
		newImportCmd(app),
	)

	return root
}

// printTriggerResult reports the suggestion cycle that followed a write.
func printTriggerResult(cmd *cobra.Command, res *contract.TriggerResult) {
	if line := formatter.FormatTriggerResult(res); line != "" {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
}
