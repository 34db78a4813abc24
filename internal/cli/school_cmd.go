package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/scoutline/internal/cli/formatter"
	"github.com/alexanderramin/scoutline/internal/domain"
)

func newSchoolCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "school",
		Short: "Manage an athlete's school list",
	}

	cmd.AddCommand(
		newSchoolAddCmd(app),
		newSchoolListCmd(app),
	)

	return cmd
}

func newSchoolAddCmd(app *App) *cobra.Command {
	var (
		athleteID string
		name      string
		priority  string
		status    string
		division  string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a school to an athlete's list",
		RunE: func(cmd *cobra.Command, args []string) error {
			school := &domain.School{AthleteID: athleteID, Name: name}

			var err error
			if school.Priority, err = parsePriority(priority); err != nil {
				return err
			}
			if school.Status, err = parseSchoolStatus(status); err != nil {
				return err
			}
			if division != "" {
				if school.Division, err = parseDivision(division); err != nil {
					return err
				}
			}

			res, err := app.Schools.Create(cmd.Context(), school)
			if err != nil {
				return fmt.Errorf("adding school: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) priority %s\n", school.Name, school.ID, school.Priority)
			printTriggerResult(cmd, res)
			return nil
		},
	}

	cmd.Flags().StringVar(&athleteID, "athlete", "", "Athlete ID")
	cmd.Flags().StringVar(&name, "name", "", "School name")
	cmd.Flags().StringVar(&priority, "priority", string(domain.PriorityC), "Priority tier (A, B, C)")
	cmd.Flags().StringVar(&status, "status", string(domain.SchoolInterested), "Recruiting status")
	cmd.Flags().StringVar(&division, "division", "", "Division (D1, D2, D3, NAIA, JUCO)")
	_ = cmd.MarkFlagRequired("athlete")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newSchoolListCmd(app *App) *cobra.Command {
	var athleteID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List an athlete's schools",
		RunE: func(cmd *cobra.Command, args []string) error {
			schools, err := app.Schools.ListByAthlete(cmd.Context(), athleteID)
			if err != nil {
				return fmt.Errorf("listing schools: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSchoolList(schools))
			return nil
		},
	}

	cmd.Flags().StringVar(&athleteID, "athlete", "", "Athlete ID")
	_ = cmd.MarkFlagRequired("athlete")

	return cmd
}

func newFitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Calculate a school fit score",
		Long: `Calculate a fit score from up to four sub-scores:
athletic (0-40), academic (0-25), opportunity (0-20), personal (0-15).
Omitted sub-scores count as zero and are reported as missing.
With --school the score is stored on that school.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			in := domain.FitInputs{
				AthleticFit:    optionalFloat(flags, "athletic"),
				AcademicFit:    optionalFloat(flags, "academic"),
				OpportunityFit: optionalFloat(flags, "opportunity"),
				PersonalFit:    optionalFloat(flags, "personal"),
			}

			schoolID := optionalString(flags, "school")
			if schoolID == nil {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatFit(domain.CalculateFitScore(in)))
				return nil
			}

			result, res, err := app.Schools.ScoreFit(cmd.Context(), *schoolID, in)
			if err != nil {
				return fmt.Errorf("scoring school: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatFit(result))
			printTriggerResult(cmd, res)
			return nil
		},
	}

	cmd.Flags().Float64("athletic", 0, "Athletic fit (0-40)")
	cmd.Flags().Float64("academic", 0, "Academic fit (0-25)")
	cmd.Flags().Float64("opportunity", 0, "Opportunity fit (0-20)")
	cmd.Flags().Float64("personal", 0, "Personal fit (0-15)")
	cmd.Flags().String("school", "", "Store the score on this school")

	return cmd
}
