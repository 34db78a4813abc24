package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/scoutline/internal/cli/formatter"
	"github.com/alexanderramin/scoutline/internal/domain"
)

func newAthleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "athlete",
		Short: "Manage athletes",
	}

	cmd.AddCommand(
		newAthleteAddCmd(app),
		newAthleteListCmd(app),
		newAthleteCommitCmd(app),
	)

	return cmd
}

func newAthleteAddCmd(app *App) *cobra.Command {
	var (
		name     string
		gradYear int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an athlete",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := &domain.Athlete{Name: name, GraduationYear: gradYear}
			if err := app.Athletes.Create(cmd.Context(), a); err != nil {
				return fmt.Errorf("creating athlete: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created athlete %s (%s, class of %d, grade %d)\n",
				a.ID, a.Name, a.GraduationYear, a.GradeLevel(app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Athlete name")
	cmd.Flags().IntVar(&gradYear, "grad-year", 0, "High-school graduation year")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("grad-year")

	return cmd
}

func newAthleteListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List athletes",
		RunE: func(cmd *cobra.Command, args []string) error {
			athletes, err := app.Athletes.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing athletes: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatAthleteList(athletes, app.now()))
			return nil
		},
	}
}

func newAthleteCommitCmd(app *App) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "commit ATHLETE_ID",
		Short: "Mark an athlete as committed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Athletes.SetCommitted(cmd.Context(), args[0], !undo)
			if err != nil {
				return fmt.Errorf("updating commitment: %w", err)
			}
			state := "committed"
			if undo {
				state = "recruiting"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Athlete %s is now %s\n", args[0], state)
			printTriggerResult(cmd, res)
			return nil
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Clear a previous commitment")

	return cmd
}

func newPhaseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "phase ATHLETE_ID",
		Short: "Show the athlete's recruiting phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.Athletes.GetByID(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("loading athlete: %w", err)
			}
			phase, err := app.Athletes.Phase(cmd.Context(), a.ID)
			if err != nil {
				return fmt.Errorf("computing phase: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPhase(a.Name, phase))
			return nil
		},
	}
}
