package service

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/scoutline/internal/cache"
	"github.com/alexanderramin/scoutline/internal/db"
	"github.com/alexanderramin/scoutline/internal/domain"
	"github.com/alexanderramin/scoutline/internal/repository"
	"github.com/alexanderramin/scoutline/internal/rules"
	"github.com/alexanderramin/scoutline/internal/testutil"
)

// harness bundles one in-memory database with every repository and service
// wired the way cmd/scoutline wires them.
type harness struct {
	db           *sql.DB
	uow          db.UnitOfWork
	athletes     *repository.SQLAthleteRepo
	schools      *repository.SQLSchoolRepo
	interactions *repository.SQLInteractionRepo
	tasks        *cache.TaskCatalog
	videos       *repository.SQLVideoRepo
	events       *repository.SQLEventRepo
	suggestions  *repository.SQLSuggestionRepo
	loader       *ContextLoader
	engine       *rules.Engine
	logs         *bytes.Buffer
	logger       *slog.Logger
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	database := testutil.NewTestDB(t)
	sb := testutil.Builder()
	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	h := &harness{
		db:           database,
		uow:          testutil.NewTestUoW(database),
		athletes:     repository.NewSQLAthleteRepo(database, sb),
		schools:      repository.NewSQLSchoolRepo(database, sb),
		interactions: repository.NewSQLInteractionRepo(database, sb),
		tasks:        cache.NewTaskCatalog(repository.NewSQLTaskRepo(database, sb), 4, time.Minute),
		videos:       repository.NewSQLVideoRepo(database, sb),
		events:       repository.NewSQLEventRepo(database, sb),
		suggestions:  repository.NewSQLSuggestionRepo(database, sb),
		engine:       rules.NewDefaultEngine(logger),
		logs:         logs,
		logger:       logger,
	}
	h.loader = NewContextLoader(h.athletes, h.schools, h.interactions, h.tasks, h.videos, h.events)
	return h
}

func (h *harness) suggestionService(opts ...SuggestionServiceOption) SuggestionService {
	return h.suggestionServiceWith(h.suggestions, h.engine, opts...)
}

func (h *harness) suggestionServiceWith(repo repository.SuggestionRepo, engine *rules.Engine, opts ...SuggestionServiceOption) SuggestionService {
	opts = append([]SuggestionServiceOption{WithSuggestionLogger(h.logger)}, opts...)
	return NewSuggestionService(repo, engine, h.uow, testutil.Builder(), opts...)
}

func (h *harness) triggerService(policy SuggestionPolicy) TriggerService {
	svc := h.suggestionService(WithSuggestionPolicy(policy))
	return NewTriggerService(h.loader, svc, h.athletes,
		WithTriggerPolicy(policy),
		WithTriggerLogger(h.logger),
	)
}

func (h *harness) createAthlete(t *testing.T, grade int, opts ...testutil.AthleteOption) *domain.Athlete {
	t.Helper()
	opts = append([]testutil.AthleteOption{testutil.WithGraduationYear(gradYearForGrade(grade))}, opts...)
	a := testutil.NewTestAthlete("Casey", opts...)
	require.NoError(t, h.athletes.Create(context.Background(), a))
	return a
}

func (h *harness) createSuggestion(t *testing.T, s *domain.Suggestion) *domain.Suggestion {
	t.Helper()
	require.NoError(t, h.suggestions.Create(context.Background(), s))
	return s
}

// gradYearForGrade returns the graduation year that puts an athlete in grade
// at the current wall-clock time.
func gradYearForGrade(grade int) int {
	now := time.Now().UTC()
	end := now.Year()
	if now.Month() >= time.August {
		end++
	}
	return end + 12 - grade
}

// stubRule returns a fixed set of suggestions.
type stubRule struct {
	id  string
	out []domain.SuggestionData
}

func (r stubRule) ID() string          { return r.id }
func (r stubRule) Name() string        { return r.id }
func (r stubRule) Description() string { return "stub" }

func (r stubRule) Evaluate(context.Context, *rules.RuleContext) ([]domain.SuggestionData, error) {
	return r.out, nil
}

func stubEngine(logger *slog.Logger, rs ...rules.Rule) *rules.Engine {
	e := rules.NewEngine(logger)
	for _, r := range rs {
		e.AddRule(r)
	}
	return e
}

func stubData(ruleType string, urgency domain.Urgency, schoolID *string) domain.SuggestionData {
	return domain.SuggestionData{
		RuleType:        ruleType,
		Urgency:         urgency,
		Message:         "stub " + ruleType,
		ActionType:      domain.ActionLogInteraction,
		RelatedSchoolID: schoolID,
	}
}

func ruleContextFor(t *testing.T, a *domain.Athlete, snap rules.Snapshot) *rules.RuleContext {
	t.Helper()
	snap.Athlete = a
	rc, err := rules.NewRuleContext(snap, time.Now().UTC())
	require.NoError(t, err)
	return rc
}

func boolPtr(b bool) *bool { return &b }
