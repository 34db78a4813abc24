package rules

import (
	"fmt"
	"time"

	"github.com/alexanderramin/scoutline/internal/domain"
)

// NoContactDays stands in for "never contacted" in day-gap calculations.
const NoContactDays = 999

// RuleContext is the read-only snapshot every rule evaluates against.
// Collections are never nil.
type RuleContext struct {
	AthleteID    string
	Athlete      *domain.Athlete
	GradeLevel   int
	Now          time.Time
	Schools      []domain.School
	Interactions []domain.Interaction
	Tasks        []domain.Task
	AthleteTasks []domain.AthleteTask
	Videos       []domain.Video
	Events       []domain.Event
}

// Snapshot is the raw material for a RuleContext.
type Snapshot struct {
	Athlete      *domain.Athlete
	Schools      []domain.School
	Interactions []domain.Interaction
	Tasks        []domain.Task
	AthleteTasks []domain.AthleteTask
	Videos       []domain.Video
	Events       []domain.Event
}

// NewRuleContext validates a snapshot and derives the grade level. Nil
// collections become empty slices.
func NewRuleContext(snap Snapshot, now time.Time) (*RuleContext, error) {
	if snap.Athlete == nil || snap.Athlete.ID == "" {
		return nil, fmt.Errorf("athlete: %w", ErrMissingContext)
	}
	return &RuleContext{
		AthleteID:    snap.Athlete.ID,
		Athlete:      snap.Athlete,
		GradeLevel:   snap.Athlete.GradeLevel(now),
		Now:          now,
		Schools:      orEmpty(snap.Schools),
		Interactions: orEmpty(snap.Interactions),
		Tasks:        orEmpty(snap.Tasks),
		AthleteTasks: orEmpty(snap.AthleteTasks),
		Videos:       orEmpty(snap.Videos),
		Events:       orEmpty(snap.Events),
	}, nil
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// DaysSinceContact returns whole days since the latest interaction with the
// school, or NoContactDays when there is none.
func (rc *RuleContext) DaysSinceContact(schoolID string) int {
	var last *time.Time
	for i := range rc.Interactions {
		in := &rc.Interactions[i]
		if in.SchoolID == nil || *in.SchoolID != schoolID {
			continue
		}
		if last == nil || in.OccurredAt.After(*last) {
			last = &in.OccurredAt
		}
	}
	if last == nil {
		return NoContactDays
	}
	return daysBetween(*last, rc.Now)
}

// TopSchools returns priority A and B schools in context order.
func (rc *RuleContext) TopSchools() []domain.School {
	var out []domain.School
	for _, s := range rc.Schools {
		if s.Priority.IsTop() {
			out = append(out, s)
		}
	}
	return out
}

// SchoolName resolves a school id to its name for messages.
func (rc *RuleContext) SchoolName(id string) string {
	for _, s := range rc.Schools {
		if s.ID == id {
			return s.Name
		}
	}
	return "this school"
}

// TaskCompleted reports whether the athlete has completed the task.
func (rc *RuleContext) TaskCompleted(taskID string) bool {
	for _, t := range rc.AthleteTasks {
		if t.TaskID == taskID && t.Status == domain.TaskCompleted {
			return true
		}
	}
	return false
}

func (rc *RuleContext) requireAthlete() error {
	if rc == nil || rc.Athlete == nil {
		return fmt.Errorf("athlete: %w", ErrMissingContext)
	}
	return nil
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
