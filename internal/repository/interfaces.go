package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/scoutline/internal/domain"
)

// ErrNotFound is wrapped by repository lookups that match no row.
var ErrNotFound = errors.New("not found")

type AthleteRepo interface {
	Create(ctx context.Context, a *domain.Athlete) error
	GetByID(ctx context.Context, id string) (*domain.Athlete, error)
	List(ctx context.Context) ([]*domain.Athlete, error)
	Update(ctx context.Context, a *domain.Athlete) error
}

type SchoolRepo interface {
	Create(ctx context.Context, s *domain.School) error
	GetByID(ctx context.Context, id string) (*domain.School, error)
	ListByAthlete(ctx context.Context, athleteID string) ([]domain.School, error)
	Update(ctx context.Context, s *domain.School) error
}

type InteractionRepo interface {
	Create(ctx context.Context, i *domain.Interaction) error
	ListByAthlete(ctx context.Context, athleteID string) ([]domain.Interaction, error)
}

type TaskRepo interface {
	ListCatalog(ctx context.Context) ([]domain.Task, error)
	ListByAthlete(ctx context.Context, athleteID string) ([]domain.AthleteTask, error)
	Upsert(ctx context.Context, t *domain.AthleteTask) error
}

type VideoRepo interface {
	Create(ctx context.Context, v *domain.Video) error
	ListByAthlete(ctx context.Context, athleteID string) ([]domain.Video, error)
	UpdateHealth(ctx context.Context, id string, status domain.VideoHealth) error
}

type EventRepo interface {
	Create(ctx context.Context, e *domain.Event) error
	ListByAthlete(ctx context.Context, athleteID string) ([]domain.Event, error)
}

// SuggestionOrder selects the sort applied by SuggestionRepo.Find.
type SuggestionOrder int

const (
	// OrderCreatedDesc lists newest first.
	OrderCreatedDesc SuggestionOrder = iota
	// OrderUrgencyCreatedAsc ranks by urgency, oldest first within a tier.
	OrderUrgencyCreatedAsc
	// OrderUrgencySurfacedDesc ranks by urgency, most recently surfaced first.
	OrderUrgencySurfacedDesc
)

// SuggestionFilter is a conjunction of equality predicates. Zero-valued
// fields are ignored; pointer fields match only when non-nil.
type SuggestionFilter struct {
	AthleteID       string
	IDs             []string
	RuleType        string
	ActionType      domain.ActionType
	RelatedSchoolID *string
	CreatedSince    *time.Time
	PendingSurface  *bool
	Dismissed       *bool
	Completed       *bool
	DismissedSince  *time.Time
}

type SuggestionQuery struct {
	Filter SuggestionFilter
	Order  SuggestionOrder
	Limit  uint64
}

// SuggestionRepo is the persistence gateway for the suggestion lifecycle.
// Mark* methods only touch rows that are not yet dismissed or completed and
// return the number of rows changed.
type SuggestionRepo interface {
	Create(ctx context.Context, s *domain.Suggestion) error
	GetByID(ctx context.Context, id string) (*domain.Suggestion, error)
	Find(ctx context.Context, q SuggestionQuery) ([]*domain.Suggestion, error)
	Count(ctx context.Context, f SuggestionFilter) (int, error)
	MarkSurfaced(ctx context.Context, ids []string, at time.Time) (int, error)
	MarkCompleted(ctx context.Context, ids []string, at time.Time) (int, error)
	MarkDismissed(ctx context.Context, ids []string, at time.Time) (int, error)
}
