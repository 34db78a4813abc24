package domain

import (
	"errors"
	"time"
)

// ErrSuggestionClosed is returned when a lifecycle transition is applied to a
// suggestion that was already dismissed or completed.
var ErrSuggestionClosed = errors.New("suggestion already closed")

// SuggestionData is a candidate produced by a rule, not yet persisted.
type SuggestionData struct {
	RuleType          string
	Urgency           Urgency
	Message           string
	ActionType        ActionType
	RelatedSchoolID   *string
	RelatedTaskID     *string
	ConditionSnapshot map[string]any
}

// Suggestion is a persisted nudge with lifecycle state.
type Suggestion struct {
	SuggestionData

	ID             string
	AthleteID      string
	PendingSurface bool
	SurfacedAt     *time.Time
	Dismissed      bool
	DismissedAt    *time.Time
	Completed      bool
	CompletedAt    *time.Time
	CreatedAt      time.Time
}

// NewPendingSuggestion builds a suggestion in the pending state.
func NewPendingSuggestion(id, athleteID string, data SuggestionData, now time.Time) *Suggestion {
	return &Suggestion{
		SuggestionData: data,
		ID:             id,
		AthleteID:      athleteID,
		PendingSurface: true,
		CreatedAt:      now,
	}
}

// IsTerminal reports whether the suggestion was dismissed or completed.
func (s *Suggestion) IsTerminal() bool {
	return s.Dismissed || s.Completed
}

// IsOpen reports whether the suggestion is surfaced and still actionable.
func (s *Suggestion) IsOpen() bool {
	return !s.PendingSurface && !s.IsTerminal()
}

// Surface moves a pending suggestion to the surfaced state. Surfacing an
// already surfaced suggestion is a no-op.
func (s *Suggestion) Surface(now time.Time) error {
	if s.IsTerminal() {
		return ErrSuggestionClosed
	}
	if !s.PendingSurface {
		return nil
	}
	s.PendingSurface = false
	s.SurfacedAt = &now
	return nil
}

func (s *Suggestion) Dismiss(now time.Time) error {
	if s.IsTerminal() {
		return ErrSuggestionClosed
	}
	s.Dismissed = true
	s.DismissedAt = &now
	return nil
}

func (s *Suggestion) Complete(now time.Time) error {
	if s.IsTerminal() {
		return ErrSuggestionClosed
	}
	s.Completed = true
	s.CompletedAt = &now
	return nil
}
