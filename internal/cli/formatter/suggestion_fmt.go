package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/scoutline/internal/contract"
	"github.com/alexanderramin/scoutline/internal/domain"
)

// FormatSuggestions renders surfaced suggestions for a location.
func FormatSuggestions(title string, list []*domain.Suggestion, now time.Time) string {
	if len(list) == 0 {
		return RenderBox(title, Dim("Nothing to act on right now."))
	}

	var b strings.Builder
	for i, s := range list {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("%s  %s\n", UrgencyIndicator(s.Urgency), Bold(s.Message)))

		meta := []string{s.RuleType, string(s.ActionType)}
		if s.SurfacedAt != nil {
			meta = append(meta, "surfaced "+Ago(*s.SurfacedAt, now))
		}
		b.WriteString(fmt.Sprintf("   %s\n", Dim(strings.Join(meta, " · "))))
		b.WriteString(fmt.Sprintf("   %s %s\n", Dim("id"), s.ID))
	}
	return RenderBox(title, strings.TrimRight(b.String(), "\n"))
}

// FormatTriggerResult summarizes one suggestion cycle on a single line.
func FormatTriggerResult(r *contract.TriggerResult) string {
	if r == nil {
		return ""
	}
	line := fmt.Sprintf("%s %d generated, %d surfaced", Dim("suggestions:"), r.Generated, r.Surfaced)
	if r.AutoCompleted > 0 {
		line += fmt.Sprintf(", %d auto-completed", r.AutoCompleted)
	}
	return line
}

// FormatRefreshSummary renders the outcome of a refresh across all athletes.
func FormatRefreshSummary(s *contract.RefreshSummary) string {
	rows := [][]string{
		{"Athletes", fmt.Sprint(s.Athletes)},
		{"Generated", fmt.Sprint(s.Generated)},
		{"Surfaced", fmt.Sprint(s.Surfaced)},
	}
	failed := fmt.Sprint(s.Failed)
	if s.Failed > 0 {
		failed = StyleRed.Render(failed)
	}
	rows = append(rows, []string{"Failed", failed})
	return RenderBox("Daily refresh", RenderTable([]string{"", "COUNT"}, rows))
}
