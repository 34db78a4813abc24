package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/scoutline/internal/cli/formatter"
	"github.com/alexanderramin/scoutline/internal/domain"
)

func newInteractionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interaction",
		Short: "Record contact with schools and coaches",
	}
	cmd.AddCommand(newInteractionLogCmd(app))
	return cmd
}

func newInteractionLogCmd(app *App) *cobra.Command {
	var (
		athleteID string
		kind      string
		date      string
		notes     string
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log an interaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := &domain.Interaction{
				AthleteID:       athleteID,
				SchoolID:        optionalString(cmd.Flags(), "school"),
				CoachID:         optionalString(cmd.Flags(), "coach"),
				RelatedEventID:  optionalString(cmd.Flags(), "event"),
				InteractionType: kind,
				Notes:           notes,
			}
			if date != "" {
				occurred, err := parseDate(date)
				if err != nil {
					return err
				}
				in.OccurredAt = occurred
			}

			res, err := app.Activity.LogInteraction(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("logging interaction: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s on %s\n", in.InteractionType, in.OccurredAt.Format(dateLayout))
			printTriggerResult(cmd, res)
			return nil
		},
	}

	cmd.Flags().StringVar(&athleteID, "athlete", "", "Athlete ID")
	cmd.Flags().String("school", "", "School ID")
	cmd.Flags().String("coach", "", "Coach ID")
	cmd.Flags().String("event", "", "Related event ID")
	cmd.Flags().StringVar(&kind, "type", "email", "Interaction type (email, call, camp, official visit, ...)")
	cmd.Flags().StringVar(&date, "date", "", "When it happened (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	_ = cmd.MarkFlagRequired("athlete")

	return cmd
}

func newVideoCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "video",
		Short: "Manage highlight videos",
	}
	cmd.AddCommand(newVideoAddCmd(app))
	return cmd
}

func newVideoAddCmd(app *App) *cobra.Command {
	var (
		athleteID string
		title     string
		url       string
		health    string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a video link",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := parseVideoHealth(health)
			if err != nil {
				return err
			}
			v := &domain.Video{AthleteID: athleteID, Title: title, URL: url, HealthStatus: status}
			res, err := app.Activity.AddVideo(cmd.Context(), v)
			if err != nil {
				return fmt.Errorf("adding video: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added video %s (%s)\n", v.Title, v.ID)
			printTriggerResult(cmd, res)
			return nil
		},
	}

	cmd.Flags().StringVar(&athleteID, "athlete", "", "Athlete ID")
	cmd.Flags().StringVar(&title, "title", "", "Video title")
	cmd.Flags().StringVar(&url, "url", "", "Video URL")
	cmd.Flags().StringVar(&health, "health", string(domain.VideoHealthUnknown), "Link health (ok, broken, unknown)")
	_ = cmd.MarkFlagRequired("athlete")
	_ = cmd.MarkFlagRequired("url")

	return cmd
}

func newEventCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Manage camps and showcases",
	}
	cmd.AddCommand(newEventAddCmd(app))
	return cmd
}

func newEventAddCmd(app *App) *cobra.Command {
	var (
		athleteID string
		name      string
		date      string
		attended  bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an event",
		RunE: func(cmd *cobra.Command, args []string) error {
			eventDate, err := parseDate(date)
			if err != nil {
				return err
			}
			e := &domain.Event{
				AthleteID: athleteID,
				SchoolID:  optionalString(cmd.Flags(), "school"),
				Name:      name,
				EventDate: eventDate,
				Attended:  attended,
			}
			res, err := app.Activity.AddEvent(cmd.Context(), e)
			if err != nil {
				return fmt.Errorf("adding event: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added event %s (%s) on %s\n", e.Name, e.ID, e.EventDate.Format(dateLayout))
			printTriggerResult(cmd, res)
			return nil
		},
	}

	cmd.Flags().StringVar(&athleteID, "athlete", "", "Athlete ID")
	cmd.Flags().StringVar(&name, "name", "", "Event name")
	cmd.Flags().StringVar(&date, "date", "", "Event date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&attended, "attended", false, "The athlete attended")
	cmd.Flags().String("school", "", "Hosting school ID")
	_ = cmd.MarkFlagRequired("athlete")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Track recruiting checklist tasks",
	}
	cmd.AddCommand(
		newTaskListCmd(app),
		newTaskCompleteCmd(app),
	)
	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var athleteID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the task checklist",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, progress, err := app.Activity.ListTasks(cmd.Context(), athleteID)
			if err != nil {
				return fmt.Errorf("listing tasks: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTaskList(catalog, progress))
			return nil
		},
	}

	cmd.Flags().StringVar(&athleteID, "athlete", "", "Athlete ID")
	_ = cmd.MarkFlagRequired("athlete")

	return cmd
}

func newTaskCompleteCmd(app *App) *cobra.Command {
	var athleteID string

	cmd := &cobra.Command{
		Use:   "complete TASK_ID",
		Short: "Mark a checklist task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Activity.CompleteTask(cmd.Context(), athleteID, args[0])
			if err != nil {
				return fmt.Errorf("completing task: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed %s\n", args[0])
			printTriggerResult(cmd, res)
			return nil
		},
	}

	cmd.Flags().StringVar(&athleteID, "athlete", "", "Athlete ID")
	_ = cmd.MarkFlagRequired("athlete")

	return cmd
}
