package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/scoutline/internal/contract"
	"github.com/alexanderramin/scoutline/internal/domain"
	"github.com/alexanderramin/scoutline/internal/repository"
)

type athleteService struct {
	athletes repository.AthleteRepo
	tasks    repository.TaskRepo
	trigger  TriggerService
}

func NewAthleteService(athletes repository.AthleteRepo, tasks repository.TaskRepo, trigger TriggerService) AthleteService {
	return &athleteService{athletes: athletes, tasks: tasks, trigger: trigger}
}

func (s *athleteService) Create(ctx context.Context, a *domain.Athlete) error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("athlete name is required")
	}
	if a.GraduationYear < 2000 {
		return fmt.Errorf("graduation year %d is out of range", a.GraduationYear)
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	return s.athletes.Create(ctx, a)
}

func (s *athleteService) GetByID(ctx context.Context, id string) (*domain.Athlete, error) {
	return s.athletes.GetByID(ctx, id)
}

func (s *athleteService) List(ctx context.Context) ([]*domain.Athlete, error) {
	return s.athletes.List(ctx)
}

func (s *athleteService) SetCommitted(ctx context.Context, id string, committed bool) (*contract.TriggerResult, error) {
	a, err := s.athletes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Committed = committed
	a.UpdatedAt = time.Now().UTC()
	if err := s.athletes.Update(ctx, a); err != nil {
		return nil, err
	}
	return s.trigger.TriggerSuggestionUpdate(ctx, contract.NewTriggerRequest(id, domain.TriggerProfileChange))
}

// Phase derives the recruiting phase from completed catalog tasks.
func (s *athleteService) Phase(ctx context.Context, id string) (domain.Phase, error) {
	a, err := s.athletes.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	tasks, err := s.tasks.ListByAthlete(ctx, id)
	if err != nil {
		return "", fmt.Errorf("loading athlete tasks: %w", err)
	}
	return domain.CalculatePhase(completedTaskIDs(tasks), a.Committed), nil
}
