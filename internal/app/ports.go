package app

import (
	"context"

	"github.com/alexanderramin/scoutline/internal/domain"
	"github.com/alexanderramin/scoutline/internal/importer"
)

type TriggerUseCase interface {
	TriggerSuggestionUpdate(ctx context.Context, req TriggerRequest) (*TriggerResult, error)
}

type RefreshUseCase interface {
	RefreshAll(ctx context.Context) (*RefreshSummary, error)
}

type SurfacedSuggestionsUseCase interface {
	GetSurfacedSuggestions(ctx context.Context, req SurfacedRequest) ([]*domain.Suggestion, error)
}

type PendingCountUseCase interface {
	GetPendingSuggestionCount(ctx context.Context, athleteID string) (int, error)
}

type SuggestionLifecycleUseCase interface {
	Dismiss(ctx context.Context, id string) error
	Complete(ctx context.Context, id string) error
}

// ImportResult reports what an athlete import created and the suggestion
// cycle that followed.
type ImportResult struct {
	Athlete          *domain.Athlete
	SchoolCount      int
	EventCount       int
	InteractionCount int
	VideoCount       int
	TaskCount        int
	Trigger          *TriggerResult
}

type ImportAthleteUseCase interface {
	ImportAthlete(ctx context.Context, filePath string) (*ImportResult, error)
	ImportAthleteFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}
