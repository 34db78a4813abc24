package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/scoutline/internal/contract"
	"github.com/alexanderramin/scoutline/internal/domain"
	"github.com/alexanderramin/scoutline/internal/repository"
)

type triggerService struct {
	loader      *ContextLoader
	suggestions SuggestionService
	athletes    repository.AthleteRepo
	policy      SuggestionPolicy
	concurrency int
	logger      *slog.Logger
	observer    UseCaseObserver
}

// TriggerServiceOption tweaks a trigger service.
type TriggerServiceOption func(*triggerService)

func WithTriggerPolicy(p SuggestionPolicy) TriggerServiceOption {
	return func(t *triggerService) { t.policy = p }
}

// WithRefreshConcurrency bounds how many athletes RefreshAll processes at once.
func WithRefreshConcurrency(n int) TriggerServiceOption {
	return func(t *triggerService) {
		if n > 0 {
			t.concurrency = n
		}
	}
}

func WithTriggerLogger(l *slog.Logger) TriggerServiceOption {
	return func(t *triggerService) { t.logger = loggerOrDefault(l) }
}

func WithTriggerObserver(o UseCaseObserver) TriggerServiceOption {
	return func(t *triggerService) { t.observer = observerOrNoop(o) }
}

func NewTriggerService(
	loader *ContextLoader,
	suggestions SuggestionService,
	athletes repository.AthleteRepo,
	opts ...TriggerServiceOption,
) TriggerService {
	t := &triggerService{
		loader:      loader,
		suggestions: suggestions,
		athletes:    athletes,
		policy:      DefaultSuggestionPolicy(),
		concurrency: 4,
		logger:      slog.Default(),
		observer:    NoopUseCaseObserver{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// TriggerSuggestionUpdate runs one full cycle for an athlete: assemble
// context, auto-complete interaction suggestions when an interaction was
// just logged, generate, then surface. Any failure is logged and returned.
func (t *triggerService) TriggerSuggestionUpdate(ctx context.Context, req contract.TriggerRequest) (*contract.TriggerResult, error) {
	if req.AthleteID == "" {
		return nil, &contract.TriggerError{Code: contract.TriggerErrMissingAthlete, Message: "athlete id is required"}
	}
	if !domain.ValidTriggerReasons[req.Reason] {
		return nil, &contract.TriggerError{
			Code:    contract.TriggerErrInvalidReason,
			Message: fmt.Sprintf("unknown reason %q", req.Reason),
		}
	}

	now := time.Now().UTC()
	if req.Now != nil {
		now = *req.Now
	}

	result := &contract.TriggerResult{AthleteID: req.AthleteID, Reason: req.Reason}
	fields := map[string]any{"athlete_id": req.AthleteID, "reason": string(req.Reason)}
	err := observe(ctx, t.observer, "suggestion.trigger", fields, func() error {
		rc, err := t.loader.Load(ctx, req.AthleteID, now)
		if err != nil {
			return err
		}

		if req.Reason == domain.TriggerInteractionLogged && (req.SchoolID != nil || req.CoachID != nil) {
			n, err := t.suggestions.CompleteInteractionSuggestions(ctx, req.AthleteID, req.SchoolID, t.policy.StrictAutoComplete, now)
			if err != nil {
				return err
			}
			result.AutoCompleted = n
		}

		generated, err := t.suggestions.GenerateSuggestions(ctx, req.AthleteID, rc)
		if err != nil {
			return err
		}
		result.Generated = generated

		surfaced, err := t.suggestions.SurfacePendingSuggestionsAt(ctx, req.AthleteID, t.policy.SurfaceLimit, now)
		if err != nil {
			return err
		}
		result.Surfaced = surfaced

		fields["generated"] = generated
		fields["surfaced"] = surfaced
		fields["auto_completed"] = result.AutoCompleted
		return nil
	})
	if err != nil {
		t.logger.ErrorContext(ctx, "suggestion_trigger_failed",
			"athlete_id", req.AthleteID,
			"reason", string(req.Reason),
			"error", err.Error(),
		)
		return nil, err
	}
	return result, nil
}

// RefreshAll runs a daily_refresh for every athlete. One athlete's failure
// does not stop the others; all failures are joined into the returned error.
func (t *triggerService) RefreshAll(ctx context.Context) (*contract.RefreshSummary, error) {
	athletes, err := t.athletes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing athletes: %w", err)
	}

	var (
		mu      sync.Mutex
		summary = &contract.RefreshSummary{Athletes: len(athletes)}
		errs    []error
	)
	var g errgroup.Group
	g.SetLimit(t.concurrency)
	for _, a := range athletes {
		g.Go(func() error {
			res, err := t.TriggerSuggestionUpdate(ctx, contract.NewTriggerRequest(a.ID, domain.TriggerDailyRefresh))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				summary.Failed++
				errs = append(errs, fmt.Errorf("athlete %s: %w", a.ID, err))
				return nil
			}
			summary.Generated += res.Generated
			summary.Surfaced += res.Surfaced
			return nil
		})
	}
	_ = g.Wait()
	return summary, errors.Join(errs...)
}
