package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/scoutline/internal/cli/formatter"
	"github.com/alexanderramin/scoutline/internal/contract"
	"github.com/alexanderramin/scoutline/internal/domain"
)

func newSuggestCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Review next-step suggestions",
	}

	cmd.AddCommand(
		newSuggestRefreshCmd(app),
		newSuggestListCmd(app),
		newSuggestPendingCmd(app),
		newSuggestDismissCmd(app),
		newSuggestCompleteCmd(app),
	)

	return cmd
}

func newSuggestRefreshCmd(app *App) *cobra.Command {
	var (
		athleteID string
		all       bool
	)

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Run a daily refresh for one athlete or all of them",
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				summary, err := app.refreshUseCase().RefreshAll(cmd.Context())
				if summary != nil {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRefreshSummary(summary))
				}
				if err != nil {
					return fmt.Errorf("refreshing athletes: %w", err)
				}
				return nil
			}
			if athleteID == "" {
				return fmt.Errorf("either --athlete or --all is required")
			}

			res, err := app.triggerUseCase().TriggerSuggestionUpdate(cmd.Context(),
				contract.NewTriggerRequest(athleteID, domain.TriggerDailyRefresh))
			if err != nil {
				return fmt.Errorf("refreshing suggestions: %w", err)
			}
			printTriggerResult(cmd, res)
			return nil
		},
	}

	cmd.Flags().StringVar(&athleteID, "athlete", "", "Athlete ID")
	cmd.Flags().BoolVar(&all, "all", false, "Refresh every athlete")
	cmd.MarkFlagsMutuallyExclusive("athlete", "all")

	return cmd
}

func newSuggestListCmd(app *App) *cobra.Command {
	var (
		athleteID string
		location  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show surfaced suggestions",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.NewSurfacedRequest(athleteID, domain.SurfaceLocation(location))
			req.SchoolID = optionalString(cmd.Flags(), "school")
			if req.SchoolID != nil && !cmd.Flags().Changed("location") {
				req.Location = domain.LocationSchoolDetail
			}

			list, err := app.surfacedUseCase().GetSurfacedSuggestions(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("listing suggestions: %w", err)
			}
			title := "Dashboard"
			if req.Location == domain.LocationSchoolDetail {
				title = "School detail"
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSuggestions(title, list, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&athleteID, "athlete", "", "Athlete ID")
	cmd.Flags().StringVar(&location, "location", string(domain.LocationDashboard), "Where the list is shown (dashboard, school_detail)")
	cmd.Flags().String("school", "", "School ID for school_detail")
	_ = cmd.MarkFlagRequired("athlete")

	return cmd
}

func newSuggestPendingCmd(app *App) *cobra.Command {
	var athleteID string

	cmd := &cobra.Command{
		Use:   "pending",
		Short: "Count suggestions waiting to be surfaced",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := app.pendingCountUseCase().GetPendingSuggestionCount(cmd.Context(), athleteID)
			if err != nil {
				return fmt.Errorf("counting pending suggestions: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d pending\n", n)
			return nil
		},
	}

	cmd.Flags().StringVar(&athleteID, "athlete", "", "Athlete ID")
	_ = cmd.MarkFlagRequired("athlete")

	return cmd
}

func newSuggestDismissCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dismiss SUGGESTION_ID",
		Short: "Dismiss a suggestion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.lifecycleUseCase().Dismiss(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("dismissing suggestion: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Dismissed %s\n", args[0])
			return nil
		},
	}
}

func newSuggestCompleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "complete SUGGESTION_ID",
		Short: "Mark a suggestion done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.lifecycleUseCase().Complete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("completing suggestion: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed %s\n", args[0])
			return nil
		},
	}
}
