package rules

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/scoutline/internal/domain"
)

// Candidate pairs a proposed suggestion with the rule that produced it.
type Candidate struct {
	Rule Rule
	Data domain.SuggestionData
}

// Engine evaluates an ordered list of rules.
type Engine struct {
	rules       []Rule
	logger      *slog.Logger
	concurrency int
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithConcurrency bounds how many rules evaluate at once. Values < 1 mean
// sequential evaluation.
func WithConcurrency(n int) EngineOption {
	return func(e *Engine) {
		e.concurrency = n
	}
}

func NewEngine(logger *slog.Logger, opts ...EngineOption) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{logger: logger, concurrency: 4}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DefaultRules returns the built-in rule library in registration order.
func DefaultRules() []Rule {
	return []Rule{
		NewInteractionGapRule(),
		NewPrioritySchoolReminderRule(),
		NewMissingVideoRule(),
		NewVideoLinkHealthRule(),
		NewEventFollowUpRule(),
		NewPortfolioHealthRule(),
		NewSchoolListSizeRule(),
		NewShowcaseAttendanceRule(),
		NewNCAARegistrationRule(),
		NewFormalOutreachRule(),
		NewOfficialVisitRule(),
	}
}

// NewDefaultEngine builds an engine loaded with DefaultRules.
func NewDefaultEngine(logger *slog.Logger, opts ...EngineOption) *Engine {
	e := NewEngine(logger, opts...)
	for _, r := range DefaultRules() {
		e.AddRule(r)
	}
	return e
}

// AddRule appends r to the evaluation order.
func (e *Engine) AddRule(r Rule) {
	e.rules = append(e.rules, r)
}

// Rules returns the registered rules in order.
func (e *Engine) Rules() []Rule {
	return append([]Rule(nil), e.rules...)
}

// Rule looks up a registered rule by id.
func (e *Engine) Rule(id string) (Rule, bool) {
	for _, r := range e.rules {
		if r.ID() == id {
			return r, true
		}
	}
	return nil, false
}

// EvaluateAll runs every rule against rc and flattens the results in rule
// registration order. A rule that errors or panics is logged and
// contributes nothing; the remaining rules still run. Every candidate's
// RuleType is the producing rule's ID.
func (e *Engine) EvaluateAll(ctx context.Context, rc *RuleContext) []Candidate {
	results := make([][]domain.SuggestionData, len(e.rules))

	var g errgroup.Group
	if e.concurrency > 0 {
		g.SetLimit(e.concurrency)
	} else {
		g.SetLimit(1)
	}
	for i, r := range e.rules {
		g.Go(func() error {
			out, err := e.evaluate(ctx, r, rc)
			if err != nil {
				e.logger.WarnContext(ctx, "rule_evaluation_failed",
					"rule_id", r.ID(),
					"athlete_id", athleteIDOf(rc),
					"error", err.Error(),
				)
				return nil
			}
			results[i] = out
			return nil
		})
	}
	_ = g.Wait()

	var candidates []Candidate
	for i, out := range results {
		r := e.rules[i]
		for _, data := range out {
			if data.RuleType != r.ID() {
				if data.RuleType != "" {
					e.logger.WarnContext(ctx, "rule_type_mismatch",
						"rule_id", r.ID(),
						"rule_type", data.RuleType,
					)
				}
				data.RuleType = r.ID()
			}
			candidates = append(candidates, Candidate{Rule: r, Data: data})
		}
	}
	return candidates
}

func (e *Engine) evaluate(ctx context.Context, r Rule, rc *RuleContext) (out []domain.SuggestionData, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("rule panicked: %v\n%s", p, debug.Stack())
		}
	}()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.Evaluate(ctx, rc)
}

func athleteIDOf(rc *RuleContext) string {
	if rc == nil {
		return ""
	}
	return rc.AthleteID
}
