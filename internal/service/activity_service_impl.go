package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/scoutline/internal/contract"
	"github.com/alexanderramin/scoutline/internal/domain"
	"github.com/alexanderramin/scoutline/internal/repository"
)

type activityService struct {
	interactions repository.InteractionRepo
	videos       repository.VideoRepo
	events       repository.EventRepo
	tasks        repository.TaskRepo
	trigger      TriggerService
}

func NewActivityService(
	interactions repository.InteractionRepo,
	videos repository.VideoRepo,
	events repository.EventRepo,
	tasks repository.TaskRepo,
	trigger TriggerService,
) ActivityService {
	return &activityService{
		interactions: interactions,
		videos:       videos,
		events:       events,
		tasks:        tasks,
		trigger:      trigger,
	}
}

// LogInteraction stores the interaction and runs an interaction_logged cycle
// carrying its school and coach.
func (s *activityService) LogInteraction(ctx context.Context, in *domain.Interaction) (*contract.TriggerResult, error) {
	if in.AthleteID == "" {
		return nil, fmt.Errorf("interaction must belong to an athlete")
	}
	if in.ID == "" {
		in.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if in.OccurredAt.IsZero() {
		in.OccurredAt = now
	}
	in.CreatedAt = now
	if err := s.interactions.Create(ctx, in); err != nil {
		return nil, err
	}

	req := contract.NewTriggerRequest(in.AthleteID, domain.TriggerInteractionLogged)
	req.SchoolID = in.SchoolID
	req.CoachID = in.CoachID
	return s.trigger.TriggerSuggestionUpdate(ctx, req)
}

func (s *activityService) AddVideo(ctx context.Context, v *domain.Video) (*contract.TriggerResult, error) {
	if v.AthleteID == "" {
		return nil, fmt.Errorf("video must belong to an athlete")
	}
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	if v.HealthStatus == "" {
		v.HealthStatus = domain.VideoHealthUnknown
	}
	v.CreatedAt = time.Now().UTC()
	if err := s.videos.Create(ctx, v); err != nil {
		return nil, err
	}
	return s.trigger.TriggerSuggestionUpdate(ctx, contract.NewTriggerRequest(v.AthleteID, domain.TriggerProfileChange))
}

func (s *activityService) AddEvent(ctx context.Context, e *domain.Event) (*contract.TriggerResult, error) {
	if e.AthleteID == "" {
		return nil, fmt.Errorf("event must belong to an athlete")
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	e.CreatedAt = time.Now().UTC()
	if err := s.events.Create(ctx, e); err != nil {
		return nil, err
	}
	return s.trigger.TriggerSuggestionUpdate(ctx, contract.NewTriggerRequest(e.AthleteID, domain.TriggerProfileChange))
}

// CompleteTask marks a catalog task done for the athlete and re-evaluates.
func (s *activityService) CompleteTask(ctx context.Context, athleteID, taskID string) (*contract.TriggerResult, error) {
	catalog, err := s.tasks.ListCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading task catalog: %w", err)
	}
	if !catalogHas(catalog, taskID) {
		return nil, fmt.Errorf("task %s: %w", taskID, repository.ErrNotFound)
	}

	now := time.Now().UTC()
	if err := s.tasks.Upsert(ctx, &domain.AthleteTask{
		AthleteID:   athleteID,
		TaskID:      taskID,
		Status:      domain.TaskCompleted,
		CompletedAt: &now,
	}); err != nil {
		return nil, err
	}
	return s.trigger.TriggerSuggestionUpdate(ctx, contract.NewTriggerRequest(athleteID, domain.TriggerProfileChange))
}

func (s *activityService) ListTasks(ctx context.Context, athleteID string) ([]domain.Task, []domain.AthleteTask, error) {
	catalog, err := s.tasks.ListCatalog(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading task catalog: %w", err)
	}
	progress, err := s.tasks.ListByAthlete(ctx, athleteID)
	if err != nil {
		return nil, nil, fmt.Errorf("loading athlete tasks: %w", err)
	}
	return catalog, progress, nil
}

func catalogHas(catalog []domain.Task, id string) bool {
	for _, t := range catalog {
		if t.ID == id {
			return true
		}
	}
	return false
}
