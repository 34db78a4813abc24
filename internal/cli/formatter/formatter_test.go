package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/scoutline/internal/contract"
	"github.com/alexanderramin/scoutline/internal/domain"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes ANSI escape codes so assertions are terminal-independent.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRenderTable_AlignsStyledCells(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"A", "B"},
		[][]string{
			{StyleRed.Render("long cell"), "x"},
			{"s", "y"},
		},
	))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "A          B", lines[0])
	assert.Equal(t, "─────────  ─", lines[1])
	assert.Equal(t, "long cell  x", lines[2])
	assert.Equal(t, "s          y", lines[3])
}

func TestRenderTable_EmptyHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestAgo(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	cases := map[time.Duration]string{
		0:               "today",
		-11 * time.Hour: "today",
		-13 * time.Hour: "yesterday",
		-day:            "yesterday",
		-3 * day:        "3d ago",
		-28 * day:       "4w ago",
		-200 * day:      "6mo ago",
		2 * day:         "upcoming",
	}
	for offset, want := range cases {
		assert.Equal(t, want, Ago(now.Add(offset), now), "offset %s", offset)
	}
}

func TestRenderBox_Title(t *testing.T) {
	out := stripANSI(RenderBox("Schools (2)", "body"))
	assert.Contains(t, out, "SCHOOLS (2)")
	assert.Contains(t, out, "───────────")
	assert.Contains(t, out, "body")
	assert.Contains(t, out, "╭")

	plain := stripANSI(RenderBox("", "plain"))
	assert.Len(t, strings.Split(plain, "\n"), 5, "border, padding, content, padding, border")
}

func TestUrgencyIndicator(t *testing.T) {
	assert.Equal(t, "● HIGH", stripANSI(UrgencyIndicator(domain.UrgencyHigh)))
	assert.Equal(t, "● LOW", stripANSI(UrgencyIndicator(domain.UrgencyLow)))
	assert.Equal(t, "● UNKNOWN", stripANSI(UrgencyIndicator("")))
}

func TestFormatSuggestions(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	surfaced := now.Add(-48 * time.Hour)
	list := []*domain.Suggestion{
		{
			ID: "sugg-1",
			SuggestionData: domain.SuggestionData{
				RuleType:   "interaction-gap",
				Urgency:    domain.UrgencyHigh,
				Message:    "It's been 30 days since you contacted State",
				ActionType: domain.ActionLogInteraction,
			},
			SurfacedAt: &surfaced,
		},
	}

	out := stripANSI(FormatSuggestions("Dashboard", list, now))

	assert.Contains(t, out, "DASHBOARD")
	assert.Contains(t, out, "● HIGH")
	assert.Contains(t, out, "It's been 30 days since you contacted State")
	assert.Contains(t, out, "interaction-gap · log_interaction · surfaced 2d ago")
	assert.Contains(t, out, "sugg-1")
}

func TestFormatSuggestions_Empty(t *testing.T) {
	out := stripANSI(FormatSuggestions("Dashboard", nil, time.Now()))
	assert.Contains(t, out, "Nothing to act on right now.")
}

func TestFormatTriggerResult(t *testing.T) {
	assert.Empty(t, FormatTriggerResult(nil))
	assert.Equal(t, "suggestions: 2 generated, 1 surfaced",
		stripANSI(FormatTriggerResult(&contract.TriggerResult{Generated: 2, Surfaced: 1})))
	assert.Equal(t, "suggestions: 0 generated, 0 surfaced, 3 auto-completed",
		stripANSI(FormatTriggerResult(&contract.TriggerResult{AutoCompleted: 3})))
}

func TestFormatRefreshSummary(t *testing.T) {
	out := stripANSI(FormatRefreshSummary(&contract.RefreshSummary{Athletes: 4, Generated: 9, Surfaced: 6, Failed: 1}))
	assert.Contains(t, out, "DAILY REFRESH")
	assert.Regexp(t, `Athletes\s+4`, out)
	assert.Regexp(t, `Generated\s+9`, out)
	assert.Regexp(t, `Failed\s+1`, out)
}

func TestFormatSchoolList(t *testing.T) {
	out := stripANSI(FormatSchoolList([]domain.School{
		{ID: "s1", Name: "Coastal State", Priority: domain.PriorityA, Status: domain.SchoolContacted, Division: domain.DivisionD1, FitScore: 72},
		{ID: "s2", Name: "Valley CC", Priority: domain.PriorityC, Status: domain.SchoolInterested},
	}))

	assert.Contains(t, out, "SCHOOLS (2)")
	assert.Contains(t, out, "Coastal State")
	assert.Contains(t, out, "match 72")
	assert.Regexp(t, `Valley CC\s+C\s+interested\s+--\s+--`, out)
}

func TestFormatTaskList_MarksProgress(t *testing.T) {
	out := stripANSI(FormatTaskList(
		[]domain.Task{
			{ID: "create-profile", Title: "Create recruiting profile", Phase: "freshman"},
			{ID: "academic-plan", Title: "Map out core-course academic plan", Phase: "freshman"},
		},
		[]domain.AthleteTask{{TaskID: "create-profile", Status: domain.TaskCompleted}},
	))

	assert.Regexp(t, `✔\s+create-profile`, out)
	assert.Regexp(t, `○\s+academic-plan`, out)
}

func TestFormatFit(t *testing.T) {
	out := stripANSI(FormatFit(domain.FitResult{
		Score:             52.5,
		Tier:              domain.FitReach,
		MissingDimensions: []domain.FitDimension{domain.DimensionOpportunity, domain.DimensionPersonal},
	}))

	assert.Contains(t, out, "52.5 / 100  reach")
	assert.Contains(t, out, "missing: opportunity, personal")
}

func TestFormatAthleteList(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	out := stripANSI(FormatAthleteList([]*domain.Athlete{
		{ID: "a1", Name: "Casey", GraduationYear: 2027},
		{ID: "a2", Name: "Riley", GraduationYear: 2026, Committed: true},
	}, now))

	assert.Regexp(t, `Casey\s+2027\s+11\s+recruiting`, out)
	assert.Regexp(t, `Riley\s+2026\s+12\s+committed`, out)
}
