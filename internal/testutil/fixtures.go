package testutil

import (
	"time"

	"github.com/alexanderramin/scoutline/internal/domain"
	"github.com/google/uuid"
)

// Athlete options
type AthleteOption func(*domain.Athlete)

func WithGraduationYear(y int) AthleteOption {
	return func(a *domain.Athlete) {
		a.GraduationYear = y
	}
}

func WithCommitted() AthleteOption {
	return func(a *domain.Athlete) {
		a.Committed = true
	}
}

func NewTestAthlete(name string, opts ...AthleteOption) *domain.Athlete {
	now := time.Now().UTC()
	a := &domain.Athlete{
		ID:             uuid.New().String(),
		Name:           name,
		GraduationYear: now.Year() + 2,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// School options
type SchoolOption func(*domain.School)

func WithPriority(p domain.Priority) SchoolOption {
	return func(s *domain.School) {
		s.Priority = p
	}
}

func WithSchoolStatus(st domain.SchoolStatus) SchoolOption {
	return func(s *domain.School) {
		s.Status = st
	}
}

func WithDivision(d domain.Division) SchoolOption {
	return func(s *domain.School) {
		s.Division = d
	}
}

func WithFitScore(f float64) SchoolOption {
	return func(s *domain.School) {
		s.FitScore = f
	}
}

func WithSchoolCreatedAt(t time.Time) SchoolOption {
	return func(s *domain.School) {
		s.CreatedAt = t
		s.UpdatedAt = t
	}
}

func NewTestSchool(athleteID, name string, opts ...SchoolOption) *domain.School {
	now := time.Now().UTC()
	s := &domain.School{
		ID:        uuid.New().String(),
		AthleteID: athleteID,
		Name:      name,
		Priority:  domain.PriorityC,
		Status:    domain.SchoolInterested,
		Division:  domain.DivisionD1,
		FitScore:  60,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Interaction options
type InteractionOption func(*domain.Interaction)

func WithInteractionSchool(id string) InteractionOption {
	return func(i *domain.Interaction) {
		i.SchoolID = &id
	}
}

func WithInteractionType(typ string) InteractionOption {
	return func(i *domain.Interaction) {
		i.InteractionType = typ
	}
}

func WithRelatedEvent(id string) InteractionOption {
	return func(i *domain.Interaction) {
		i.RelatedEventID = &id
	}
}

func NewTestInteraction(athleteID string, occurredAt time.Time, opts ...InteractionOption) *domain.Interaction {
	i := &domain.Interaction{
		ID:              uuid.New().String(),
		AthleteID:       athleteID,
		InteractionType: "email",
		OccurredAt:      occurredAt,
		CreatedAt:       occurredAt,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

func NewTestVideo(athleteID, title string, health domain.VideoHealth) *domain.Video {
	return &domain.Video{
		ID:           uuid.New().String(),
		AthleteID:    athleteID,
		Title:        title,
		URL:          "https://video.example.com/" + title,
		HealthStatus: health,
		CreatedAt:    time.Now().UTC(),
	}
}

func NewTestEvent(athleteID, name string, eventDate time.Time, attended bool) *domain.Event {
	return &domain.Event{
		ID:        uuid.New().String(),
		AthleteID: athleteID,
		Name:      name,
		EventDate: eventDate,
		Attended:  attended,
		CreatedAt: eventDate,
	}
}

// Suggestion options
type SuggestionOption func(*domain.Suggestion)

func WithUrgency(u domain.Urgency) SuggestionOption {
	return func(s *domain.Suggestion) {
		s.Urgency = u
	}
}

func WithRelatedSchool(id string) SuggestionOption {
	return func(s *domain.Suggestion) {
		s.RelatedSchoolID = &id
	}
}

func WithAction(a domain.ActionType) SuggestionOption {
	return func(s *domain.Suggestion) {
		s.ActionType = a
	}
}

func WithCreatedAt(t time.Time) SuggestionOption {
	return func(s *domain.Suggestion) {
		s.CreatedAt = t
	}
}

func WithSurfacedAt(t time.Time) SuggestionOption {
	return func(s *domain.Suggestion) {
		s.PendingSurface = false
		s.SurfacedAt = &t
	}
}

func WithDismissedAt(t time.Time) SuggestionOption {
	return func(s *domain.Suggestion) {
		s.Dismissed = true
		s.DismissedAt = &t
	}
}

func WithSnapshot(snap map[string]any) SuggestionOption {
	return func(s *domain.Suggestion) {
		s.ConditionSnapshot = snap
	}
}

func NewTestSuggestion(athleteID, ruleType string, opts ...SuggestionOption) *domain.Suggestion {
	s := domain.NewPendingSuggestion(uuid.New().String(), athleteID, domain.SuggestionData{
		RuleType:   ruleType,
		Urgency:    domain.UrgencyMedium,
		Message:    "test suggestion for " + ruleType,
		ActionType: domain.ActionLogInteraction,
	}, time.Now().UTC())
	for _, opt := range opts {
		opt(s)
	}
	return s
}
