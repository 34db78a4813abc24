// Package rules holds the suggestion rule contract, the built-in rule
// library, and the engine that evaluates rules against an athlete snapshot.
package rules

import (
	"context"
	"errors"

	"github.com/alexanderramin/scoutline/internal/domain"
)

// ErrMissingContext is returned by a rule when the snapshot lacks a field
// the rule cannot do without.
var ErrMissingContext = errors.New("rule context incomplete")

// Rule inspects a RuleContext and proposes zero or more suggestions.
// Returning nil, nil means "nothing to suggest"; an error is a rule fault.
// Rules must not mutate the context.
type Rule interface {
	// ID doubles as the rule_type stamped on generated suggestions.
	ID() string
	Name() string
	Description() string
	Evaluate(ctx context.Context, rc *RuleContext) ([]domain.SuggestionData, error)
}

// ReEvaluator lets a rule bring back a suggestion the athlete dismissed when
// the underlying condition has measurably worsened.
type ReEvaluator interface {
	ShouldReEvaluate(dismissed domain.Suggestion, rc *RuleContext) bool
}

// ConditionSnapshotter captures the quantities behind a firing so a later
// ShouldReEvaluate call can compare magnitudes.
type ConditionSnapshotter interface {
	ConditionSnapshot(rc *RuleContext, relatedSchoolID *string) map[string]any
}

// meta carries the static rule metadata and satisfies the descriptive half
// of Rule.
type meta struct {
	id          string
	name        string
	description string
}

func (m meta) ID() string          { return m.id }
func (m meta) Name() string        { return m.name }
func (m meta) Description() string { return m.description }

// one wraps a single suggestion into the slice form Evaluate returns.
func one(s domain.SuggestionData) []domain.SuggestionData {
	return []domain.SuggestionData{s}
}
