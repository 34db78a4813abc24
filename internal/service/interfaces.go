package service

import (
	"context"
	"time"

	"github.com/alexanderramin/scoutline/internal/contract"
	"github.com/alexanderramin/scoutline/internal/domain"
	"github.com/alexanderramin/scoutline/internal/importer"
	"github.com/alexanderramin/scoutline/internal/rules"
)

type AthleteService interface {
	Create(ctx context.Context, a *domain.Athlete) error
	GetByID(ctx context.Context, id string) (*domain.Athlete, error)
	List(ctx context.Context) ([]*domain.Athlete, error)
	// SetCommitted records a commitment change and refreshes suggestions.
	SetCommitted(ctx context.Context, id string, committed bool) (*contract.TriggerResult, error)
	Phase(ctx context.Context, id string) (domain.Phase, error)
}

type SchoolService interface {
	Create(ctx context.Context, s *domain.School) (*contract.TriggerResult, error)
	ListByAthlete(ctx context.Context, athleteID string) ([]domain.School, error)
	// ScoreFit computes a fit score and stores it on the school.
	ScoreFit(ctx context.Context, schoolID string, in domain.FitInputs) (domain.FitResult, *contract.TriggerResult, error)
}

// ActivityService records athlete activity and kicks off the matching
// suggestion cycle.
type ActivityService interface {
	LogInteraction(ctx context.Context, in *domain.Interaction) (*contract.TriggerResult, error)
	AddVideo(ctx context.Context, v *domain.Video) (*contract.TriggerResult, error)
	AddEvent(ctx context.Context, e *domain.Event) (*contract.TriggerResult, error)
	CompleteTask(ctx context.Context, athleteID, taskID string) (*contract.TriggerResult, error)
	ListTasks(ctx context.Context, athleteID string) ([]domain.Task, []domain.AthleteTask, error)
}

type SuggestionService interface {
	GenerateSuggestions(ctx context.Context, athleteID string, rc *rules.RuleContext) (int, error)
	IsDuplicateSuggestion(ctx context.Context, athleteID string, data domain.SuggestionData, windowDays int) bool
	SurfacePendingSuggestions(ctx context.Context, athleteID string, limit int) (int, error)
	SurfacePendingSuggestionsAt(ctx context.Context, athleteID string, limit int, now time.Time) (int, error)
	GetSurfacedSuggestions(ctx context.Context, req contract.SurfacedRequest) ([]*domain.Suggestion, error)
	GetPendingSuggestionCount(ctx context.Context, athleteID string) (int, error)
	CompleteInteractionSuggestions(ctx context.Context, athleteID string, schoolID *string, strict bool, now time.Time) (int, error)
	Dismiss(ctx context.Context, id string) error
	Complete(ctx context.Context, id string) error
}

// ImportService loads an athlete with their history from a JSON or YAML file.
type ImportService interface {
	ImportAthlete(ctx context.Context, filePath string) (*contract.ImportResult, error)
	ImportAthleteFromSchema(ctx context.Context, schema *importer.ImportSchema) (*contract.ImportResult, error)
}

type TriggerService interface {
	TriggerSuggestionUpdate(ctx context.Context, req contract.TriggerRequest) (*contract.TriggerResult, error)
	RefreshAll(ctx context.Context) (*contract.RefreshSummary, error)
}
