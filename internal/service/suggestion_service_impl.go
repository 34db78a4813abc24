package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/alexanderramin/scoutline/internal/contract"
	"github.com/alexanderramin/scoutline/internal/db"
	"github.com/alexanderramin/scoutline/internal/domain"
	"github.com/alexanderramin/scoutline/internal/repository"
	"github.com/alexanderramin/scoutline/internal/rules"
)

// SuggestionPolicy holds the suppression and staggering knobs.
type SuggestionPolicy struct {
	DuplicateWindowDays   int
	DismissalCooldownDays int
	SurfaceLimit          int
	StrictAutoComplete    bool
}

func DefaultSuggestionPolicy() SuggestionPolicy {
	return SuggestionPolicy{
		DuplicateWindowDays:   7,
		DismissalCooldownDays: 30,
		SurfaceLimit:          3,
	}
}

// Per-location caps for GetSurfacedSuggestions.
var surfacedCaps = map[domain.SurfaceLocation]uint64{
	domain.LocationDashboard:    3,
	domain.LocationSchoolDetail: 2,
}

type suggestionService struct {
	suggestions repository.SuggestionRepo
	engine      *rules.Engine
	uow         db.UnitOfWork
	sb          sq.StatementBuilderType
	policy      SuggestionPolicy
	logger      *slog.Logger
	observer    UseCaseObserver
	clock       func() time.Time
}

// SuggestionServiceOption tweaks a suggestion service.
type SuggestionServiceOption func(*suggestionService)

func WithSuggestionPolicy(p SuggestionPolicy) SuggestionServiceOption {
	return func(s *suggestionService) { s.policy = p }
}

func WithSuggestionLogger(l *slog.Logger) SuggestionServiceOption {
	return func(s *suggestionService) { s.logger = loggerOrDefault(l) }
}

func WithSuggestionObserver(o UseCaseObserver) SuggestionServiceOption {
	return func(s *suggestionService) { s.observer = observerOrNoop(o) }
}

// WithClock overrides time.Now for lifecycle timestamps.
func WithClock(clock func() time.Time) SuggestionServiceOption {
	return func(s *suggestionService) { s.clock = clock }
}

func NewSuggestionService(
	suggestions repository.SuggestionRepo,
	engine *rules.Engine,
	uow db.UnitOfWork,
	sb sq.StatementBuilderType,
	opts ...SuggestionServiceOption,
) SuggestionService {
	s := &suggestionService{
		suggestions: suggestions,
		engine:      engine,
		uow:         uow,
		sb:          sb,
		policy:      DefaultSuggestionPolicy(),
		logger:      slog.Default(),
		observer:    NoopUseCaseObserver{},
		clock:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateSuggestions evaluates every rule, drops duplicates and recently
// dismissed repeats, and inserts the survivors as pending. Windows and
// created_at are measured from rc.Now. It returns the number of rows
// actually inserted.
func (s *suggestionService) GenerateSuggestions(ctx context.Context, athleteID string, rc *rules.RuleContext) (int, error) {
	if rc == nil {
		return 0, fmt.Errorf("generating suggestions for %s: %w", athleteID, rules.ErrMissingContext)
	}
	if athleteID == "" {
		athleteID = rc.AthleteID
	}

	now := rc.Now
	if now.IsZero() {
		now = s.clock()
	}

	fields := map[string]any{"athlete_id": athleteID}
	inserted := 0
	err := observe(ctx, s.observer, "suggestion.generate", fields, func() error {
		candidates := s.engine.EvaluateAll(ctx, rc)
		fields["candidates"] = len(candidates)

		for _, c := range candidates {
			if s.isDuplicateAt(ctx, athleteID, c.Data, s.policy.DuplicateWindowDays, now) {
				continue
			}
			if s.inDismissalCooldown(ctx, athleteID, c, rc, now) {
				continue
			}

			data := c.Data
			if snap, ok := c.Rule.(rules.ConditionSnapshotter); ok && data.ConditionSnapshot == nil {
				data.ConditionSnapshot = snap.ConditionSnapshot(rc, data.RelatedSchoolID)
			}
			sugg := domain.NewPendingSuggestion(uuid.New().String(), athleteID, data, now)
			if err := s.suggestions.Create(ctx, sugg); err != nil {
				s.logger.WarnContext(ctx, "suggestion_insert_failed",
					"rule_id", c.Rule.ID(),
					"athlete_id", athleteID,
					"error", err.Error(),
				)
				continue
			}
			inserted++
		}
		fields["inserted"] = inserted
		return nil
	})
	return inserted, err
}

// IsDuplicateSuggestion reports whether a suggestion with the same rule
// type (and related school, when the candidate has one) was created inside
// the trailing window, in any lifecycle state. Store errors count as "not a
// duplicate".
func (s *suggestionService) IsDuplicateSuggestion(ctx context.Context, athleteID string, data domain.SuggestionData, windowDays int) bool {
	return s.isDuplicateAt(ctx, athleteID, data, windowDays, s.clock())
}

func (s *suggestionService) isDuplicateAt(ctx context.Context, athleteID string, data domain.SuggestionData, windowDays int, now time.Time) bool {
	if windowDays <= 0 {
		windowDays = DefaultSuggestionPolicy().DuplicateWindowDays
	}
	since := now.AddDate(0, 0, -windowDays)
	n, err := s.suggestions.Count(ctx, repository.SuggestionFilter{
		AthleteID:       athleteID,
		RuleType:        data.RuleType,
		RelatedSchoolID: data.RelatedSchoolID,
		CreatedSince:    &since,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "duplicate_check_failed",
			"rule_id", data.RuleType,
			"athlete_id", athleteID,
			"error", err.Error(),
		)
		return false
	}
	return n > 0
}

// inDismissalCooldown suppresses a candidate whose twin was dismissed
// recently, unless the rule says the condition has worsened enough.
func (s *suggestionService) inDismissalCooldown(ctx context.Context, athleteID string, c rules.Candidate, rc *rules.RuleContext, now time.Time) bool {
	if s.policy.DismissalCooldownDays <= 0 {
		return false
	}
	dismissed := true
	since := now.AddDate(0, 0, -s.policy.DismissalCooldownDays)
	found, err := s.suggestions.Find(ctx, repository.SuggestionQuery{
		Filter: repository.SuggestionFilter{
			AthleteID:       athleteID,
			RuleType:        c.Data.RuleType,
			RelatedSchoolID: c.Data.RelatedSchoolID,
			Dismissed:       &dismissed,
			DismissedSince:  &since,
		},
		Order: repository.OrderCreatedDesc,
		Limit: 1,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "dismissal_check_failed",
			"rule_id", c.Rule.ID(),
			"athlete_id", athleteID,
			"error", err.Error(),
		)
		return false
	}
	if len(found) == 0 {
		return false
	}
	if re, ok := c.Rule.(rules.ReEvaluator); ok && re.ShouldReEvaluate(*found[0], rc) {
		return false
	}
	return true
}

// SurfacePendingSuggestions promotes up to limit pending suggestions,
// highest urgency first and oldest first within a tier.
func (s *suggestionService) SurfacePendingSuggestions(ctx context.Context, athleteID string, limit int) (int, error) {
	return s.SurfacePendingSuggestionsAt(ctx, athleteID, limit, s.clock())
}

// SurfacePendingSuggestionsAt is SurfacePendingSuggestions with surfaced_at
// taken from now.
func (s *suggestionService) SurfacePendingSuggestionsAt(ctx context.Context, athleteID string, limit int, now time.Time) (int, error) {
	if limit <= 0 {
		limit = s.policy.SurfaceLimit
	}
	fields := map[string]any{"athlete_id": athleteID, "limit": limit}
	surfaced := 0
	err := observe(ctx, s.observer, "suggestion.surface", fields, func() error {
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			txSuggestions := repository.NewSQLSuggestionRepo(tx, s.sb)

			pending, closed := true, false
			batch, err := txSuggestions.Find(ctx, repository.SuggestionQuery{
				Filter: repository.SuggestionFilter{
					AthleteID:      athleteID,
					PendingSurface: &pending,
					Dismissed:      &closed,
					Completed:      &closed,
				},
				Order: repository.OrderUrgencyCreatedAsc,
				Limit: uint64(limit),
			})
			if err != nil {
				return fmt.Errorf("loading pending suggestions: %w", err)
			}
			if len(batch) == 0 {
				return nil
			}

			ids := make([]string, len(batch))
			for i, sugg := range batch {
				ids[i] = sugg.ID
				// surfaced_at must sort strictly after created_at at the
				// stored precision.
				if floor := sugg.CreatedAt.Add(time.Microsecond); now.Before(floor) {
					now = floor
				}
			}
			n, err := txSuggestions.MarkSurfaced(ctx, ids, now)
			if err != nil {
				return fmt.Errorf("surfacing suggestions: %w", err)
			}
			surfaced = n
			fields["surfaced"] = n
			return nil
		})
	})
	return surfaced, err
}

// GetSurfacedSuggestions lists open surfaced suggestions for a location.
func (s *suggestionService) GetSurfacedSuggestions(ctx context.Context, req contract.SurfacedRequest) ([]*domain.Suggestion, error) {
	limit, ok := surfacedCaps[req.Location]
	if !ok {
		return nil, &contract.TriggerError{
			Code:    contract.TriggerErrInvalidLocation,
			Message: fmt.Sprintf("unknown location %q", req.Location),
		}
	}
	pending, closed := false, false
	filter := repository.SuggestionFilter{
		AthleteID:      req.AthleteID,
		PendingSurface: &pending,
		Dismissed:      &closed,
		Completed:      &closed,
	}
	if req.Location == domain.LocationSchoolDetail {
		if req.SchoolID == nil || *req.SchoolID == "" {
			return nil, &contract.TriggerError{
				Code:    contract.TriggerErrInvalidLocation,
				Message: "school_detail requires a school id",
			}
		}
		filter.RelatedSchoolID = req.SchoolID
	}

	found, err := s.suggestions.Find(ctx, repository.SuggestionQuery{
		Filter: filter,
		Order:  repository.OrderUrgencySurfacedDesc,
		Limit:  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("loading surfaced suggestions: %w", err)
	}
	if found == nil {
		found = []*domain.Suggestion{}
	}
	return found, nil
}

func (s *suggestionService) GetPendingSuggestionCount(ctx context.Context, athleteID string) (int, error) {
	pending, closed := true, false
	n, err := s.suggestions.Count(ctx, repository.SuggestionFilter{
		AthleteID:      athleteID,
		PendingSurface: &pending,
		Dismissed:      &closed,
		Completed:      &closed,
	})
	if err != nil {
		return 0, fmt.Errorf("counting pending suggestions: %w", err)
	}
	return n, nil
}

// CompleteInteractionSuggestions closes open log_interaction suggestions
// after an interaction is logged. Without strict, every one of them is
// closed; with strict, only those about schoolID or about no school. A zero
// now means the service clock.
func (s *suggestionService) CompleteInteractionSuggestions(ctx context.Context, athleteID string, schoolID *string, strict bool, now time.Time) (int, error) {
	if now.IsZero() {
		now = s.clock()
	}
	closed := false
	open, err := s.suggestions.Find(ctx, repository.SuggestionQuery{
		Filter: repository.SuggestionFilter{
			AthleteID:  athleteID,
			ActionType: domain.ActionLogInteraction,
			Dismissed:  &closed,
			Completed:  &closed,
		},
	})
	if err != nil {
		return 0, fmt.Errorf("loading interaction suggestions: %w", err)
	}

	var ids []string
	for _, sugg := range open {
		if strict && !matchesSchool(sugg.RelatedSchoolID, schoolID) {
			continue
		}
		ids = append(ids, sugg.ID)
	}
	n, err := s.suggestions.MarkCompleted(ctx, ids, now)
	if err != nil {
		return 0, fmt.Errorf("completing interaction suggestions: %w", err)
	}
	return n, nil
}

func matchesSchool(related, schoolID *string) bool {
	if related == nil || *related == "" {
		return true
	}
	return schoolID != nil && *related == *schoolID
}

func (s *suggestionService) Dismiss(ctx context.Context, id string) error {
	return s.terminate(ctx, "suggestion.dismiss", id,
		(*domain.Suggestion).Dismiss,
		func(ctx context.Context, r repository.SuggestionRepo, at time.Time) (int, error) {
			return r.MarkDismissed(ctx, []string{id}, at)
		})
}

func (s *suggestionService) Complete(ctx context.Context, id string) error {
	return s.terminate(ctx, "suggestion.complete", id,
		(*domain.Suggestion).Complete,
		func(ctx context.Context, r repository.SuggestionRepo, at time.Time) (int, error) {
			return r.MarkCompleted(ctx, []string{id}, at)
		})
}

func (s *suggestionService) terminate(
	ctx context.Context,
	name, id string,
	transition func(*domain.Suggestion, time.Time) error,
	persist func(context.Context, repository.SuggestionRepo, time.Time) (int, error),
) error {
	return observe(ctx, s.observer, name, map[string]any{"suggestion_id": id}, func() error {
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			txSuggestions := repository.NewSQLSuggestionRepo(tx, s.sb)
			sugg, err := txSuggestions.GetByID(ctx, id)
			if err != nil {
				return err
			}
			now := s.clock()
			if err := transition(sugg, now); err != nil {
				return fmt.Errorf("suggestion %s: %w", id, err)
			}
			n, err := persist(ctx, txSuggestions, now)
			if err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("suggestion %s: %w", id, domain.ErrSuggestionClosed)
			}
			return nil
		})
	})
}

// IsValidationError reports whether err is a caller mistake rather than a
// fault.
func IsValidationError(err error) bool {
	var te *contract.TriggerError
	if !errors.As(err, &te) {
		return false
	}
	switch te.Code {
	case contract.TriggerErrInvalidReason, contract.TriggerErrMissingAthlete, contract.TriggerErrInvalidLocation:
		return true
	}
	return false
}
