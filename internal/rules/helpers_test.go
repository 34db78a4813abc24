package rules

import (
	"time"

	"github.com/alexanderramin/scoutline/internal/domain"
)

// testNow falls after August 1st, so the academic year ends in 2026.
var testNow = time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

// gradYearFor returns the graduation year that yields grade at testNow.
func gradYearFor(grade int) int {
	return 2026 + (12 - grade)
}

type ctxOption func(*RuleContext)

func withSchools(s ...domain.School) ctxOption {
	return func(rc *RuleContext) { rc.Schools = append(rc.Schools, s...) }
}

func withInteractions(in ...domain.Interaction) ctxOption {
	return func(rc *RuleContext) { rc.Interactions = append(rc.Interactions, in...) }
}

func withVideos(v ...domain.Video) ctxOption {
	return func(rc *RuleContext) { rc.Videos = append(rc.Videos, v...) }
}

func withEvents(e ...domain.Event) ctxOption {
	return func(rc *RuleContext) { rc.Events = append(rc.Events, e...) }
}

func withAthleteTasks(t ...domain.AthleteTask) ctxOption {
	return func(rc *RuleContext) { rc.AthleteTasks = append(rc.AthleteTasks, t...) }
}

func newTestContext(grade int, opts ...ctxOption) *RuleContext {
	athlete := &domain.Athlete{ID: "athlete-1", Name: "Casey", GraduationYear: gradYearFor(grade)}
	rc, err := NewRuleContext(Snapshot{Athlete: athlete}, testNow)
	if err != nil {
		panic(err)
	}
	for _, opt := range opts {
		opt(rc)
	}
	return rc
}

func school(id string, p domain.Priority, st domain.SchoolStatus) domain.School {
	return domain.School{ID: id, Name: "School " + id, Priority: p, Status: st, Division: domain.DivisionD3, FitScore: 60}
}

func contact(schoolID string, daysAgo int) domain.Interaction {
	return domain.Interaction{
		ID:              "int-" + schoolID,
		SchoolID:        domain.StrPtr(schoolID),
		InteractionType: "email",
		OccurredAt:      testNow.AddDate(0, 0, -daysAgo),
	}
}

func daysAgo(n int) time.Time {
	return testNow.AddDate(0, 0, -n)
}
