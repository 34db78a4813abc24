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

type schoolService struct {
	schools repository.SchoolRepo
	trigger TriggerService
}

func NewSchoolService(schools repository.SchoolRepo, trigger TriggerService) SchoolService {
	return &schoolService{schools: schools, trigger: trigger}
}

func (s *schoolService) Create(ctx context.Context, school *domain.School) (*contract.TriggerResult, error) {
	if strings.TrimSpace(school.Name) == "" {
		return nil, fmt.Errorf("school name is required")
	}
	if school.AthleteID == "" {
		return nil, fmt.Errorf("school must belong to an athlete")
	}
	if school.ID == "" {
		school.ID = uuid.New().String()
	}
	if school.Priority == "" {
		school.Priority = domain.PriorityC
	}
	if school.Status == "" {
		school.Status = domain.SchoolInterested
	}
	now := time.Now().UTC()
	school.CreatedAt = now
	school.UpdatedAt = now
	if err := s.schools.Create(ctx, school); err != nil {
		return nil, err
	}
	return s.trigger.TriggerSuggestionUpdate(ctx, contract.NewTriggerRequest(school.AthleteID, domain.TriggerProfileChange))
}

func (s *schoolService) ListByAthlete(ctx context.Context, athleteID string) ([]domain.School, error) {
	return s.schools.ListByAthlete(ctx, athleteID)
}

func (s *schoolService) ScoreFit(ctx context.Context, schoolID string, in domain.FitInputs) (domain.FitResult, *contract.TriggerResult, error) {
	result := domain.CalculateFitScore(in)

	school, err := s.schools.GetByID(ctx, schoolID)
	if err != nil {
		return result, nil, err
	}
	school.FitScore = result.Score
	school.UpdatedAt = time.Now().UTC()
	if err := s.schools.Update(ctx, school); err != nil {
		return result, nil, err
	}
	triggered, err := s.trigger.TriggerSuggestionUpdate(ctx, contract.NewTriggerRequest(school.AthleteID, domain.TriggerProfileChange))
	return result, triggered, err
}
