package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/scoutline/internal/contract"
	"github.com/alexanderramin/scoutline/internal/domain"
)

func FormatAthleteList(athletes []*domain.Athlete, now time.Time) string {
	if len(athletes) == 0 {
		return RenderBox("Athletes", Dim("No athletes yet. Add one with `scoutline athlete add`."))
	}
	headers := []string{"ID", "NAME", "CLASS", "GRADE", "STATUS"}
	rows := make([][]string, 0, len(athletes))
	for _, a := range athletes {
		status := StyleBlue.Render("recruiting")
		if a.Committed {
			status = StyleGreen.Render("committed")
		}
		rows = append(rows, []string{
			a.ID,
			Bold(a.Name),
			fmt.Sprint(a.GraduationYear),
			fmt.Sprint(a.GradeLevel(now)),
			status,
		})
	}
	return RenderBox("Athletes", RenderTable(headers, rows))
}

func FormatSchoolList(schools []domain.School) string {
	if len(schools) == 0 {
		return RenderBox("Schools", Dim("No schools on the list."))
	}
	headers := []string{"ID", "NAME", "PRI", "STATUS", "DIV", "FIT"}
	rows := make([][]string, 0, len(schools))
	for _, s := range schools {
		fit := Dim("--")
		if s.FitScore > 0 {
			fit = TierBadge(domain.FitTierFor(s.FitScore)) + fmt.Sprintf(" %.0f", s.FitScore)
		}
		rows = append(rows, []string{
			s.ID,
			Bold(s.Name),
			priorityBadge(s.Priority),
			string(s.Status),
			orDash(string(s.Division)),
			fit,
		})
	}
	return RenderBox(fmt.Sprintf("Schools (%d)", len(schools)), RenderTable(headers, rows))
}

func priorityBadge(p domain.Priority) string {
	switch p {
	case domain.PriorityA:
		return StyleRed.Render("A")
	case domain.PriorityB:
		return StyleYellow.Render("B")
	default:
		return Dim(string(p))
	}
}

// FormatTaskList renders the task catalog with the athlete's progress.
func FormatTaskList(catalog []domain.Task, progress []domain.AthleteTask) string {
	status := make(map[string]domain.TaskStatus, len(progress))
	for _, p := range progress {
		status[p.TaskID] = p.Status
	}

	headers := []string{"", "TASK", "PHASE", "TITLE"}
	rows := make([][]string, 0, len(catalog))
	for _, t := range catalog {
		mark := Dim("○")
		switch status[t.ID] {
		case domain.TaskCompleted:
			mark = StyleGreen.Render("✔")
		case domain.TaskInProgress:
			mark = StyleYellow.Render("◐")
		}
		rows = append(rows, []string{mark, t.ID, Dim(t.Phase), t.Title})
	}
	return RenderBox("Tasks", RenderTable(headers, rows))
}

// FormatFit renders a fit score breakdown.
func FormatFit(r domain.FitResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s\n", Bold(fmt.Sprintf("%.1f / 100", r.Score)), TierBadge(r.Tier)))
	if len(r.MissingDimensions) > 0 {
		missing := make([]string, len(r.MissingDimensions))
		for i, d := range r.MissingDimensions {
			missing[i] = string(d)
		}
		b.WriteString(fmt.Sprintf("%s %s", Dim("missing:"), strings.Join(missing, ", ")))
	}
	return RenderBox("Fit score", strings.TrimRight(b.String(), "\n"))
}

func FormatPhase(name string, phase domain.Phase) string {
	return fmt.Sprintf("%s  %s", Bold(name), StyleBlue.Render(string(phase)))
}

// FormatImportResult summarizes an athlete import.
func FormatImportResult(r *contract.ImportResult) string {
	rows := [][]string{
		{"Schools", fmt.Sprint(r.SchoolCount)},
		{"Events", fmt.Sprint(r.EventCount)},
		{"Interactions", fmt.Sprint(r.InteractionCount)},
		{"Videos", fmt.Sprint(r.VideoCount)},
		{"Tasks done", fmt.Sprint(r.TaskCount)},
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s\n\n", Bold(r.Athlete.Name), Dim(r.Athlete.ID)))
	b.WriteString(RenderTable([]string{"RECORD", "COUNT"}, rows))
	if line := FormatTriggerResult(r.Trigger); line != "" {
		b.WriteString("\n" + line)
	}
	return RenderBox("Imported", strings.TrimRight(b.String(), "\n"))
}
