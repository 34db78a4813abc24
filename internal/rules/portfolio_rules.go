package rules

import (
	"context"
	"fmt"

	"github.com/alexanderramin/scoutline/internal/domain"
)

const (
	RulePortfolioHealth  = "portfolio-health"
	RuleSchoolListSize   = "school-list-size"
	RuleNCAARegistration = "ncaa-registration"
)

const (
	lowFitThreshold   = 50.0
	targetSchoolCount = 20
)

type portfolioHealthRule struct {
	meta
}

func NewPortfolioHealthRule() Rule {
	return &portfolioHealthRule{meta: meta{
		id:          RulePortfolioHealth,
		name:        "Portfolio health",
		description: "Every tracked school is a poor fit.",
	}}
}

func (r *portfolioHealthRule) Evaluate(_ context.Context, rc *RuleContext) ([]domain.SuggestionData, error) {
	if len(rc.Schools) == 0 {
		return nil, nil
	}
	for _, s := range rc.Schools {
		if s.FitScore >= lowFitThreshold {
			return nil, nil
		}
	}
	return one(domain.SuggestionData{
		RuleType:   r.ID(),
		Urgency:    domain.UrgencyHigh,
		Message:    "None of your schools scores 50 or better on fit. Add a few schools where you match athletically and academically.",
		ActionType: domain.ActionAddSchool,
	}), nil
}

type schoolListSizeRule struct {
	meta
}

func NewSchoolListSizeRule() Rule {
	return &schoolListSizeRule{meta: meta{
		id:          RuleSchoolListSize,
		name:        "School list size",
		description: "Sophomores and juniors should be tracking a broad list of schools.",
	}}
}

func (r *schoolListSizeRule) Evaluate(_ context.Context, rc *RuleContext) ([]domain.SuggestionData, error) {
	if err := rc.requireAthlete(); err != nil {
		return nil, err
	}
	if rc.GradeLevel != 10 && rc.GradeLevel != 11 {
		return nil, nil
	}
	count := len(rc.Schools)
	if count >= targetSchoolCount {
		return nil, nil
	}

	urgency := domain.UrgencyMedium
	if rc.GradeLevel == 11 {
		urgency = domain.UrgencyHigh
	}
	return one(domain.SuggestionData{
		RuleType:   r.ID(),
		Urgency:    urgency,
		Message:    fmt.Sprintf("You are tracking %d schools. Aim for at least %d to keep your options open.", count, targetSchoolCount),
		ActionType: domain.ActionAddSchool,
	}), nil
}

type ncaaRegistrationRule struct {
	meta
}

func NewNCAARegistrationRule() Rule {
	return &ncaaRegistrationRule{meta: meta{
		id:          RuleNCAARegistration,
		name:        "NCAA registration",
		description: "Juniors targeting D1 or D2 must register with the NCAA Eligibility Center.",
	}}
}

func (r *ncaaRegistrationRule) Evaluate(_ context.Context, rc *RuleContext) ([]domain.SuggestionData, error) {
	if err := rc.requireAthlete(); err != nil {
		return nil, err
	}
	if rc.GradeLevel != 11 || rc.TaskCompleted(domain.NCAARegistrationTaskID) {
		return nil, nil
	}

	targetsNCAA := false
	for _, s := range rc.Schools {
		if s.Division == domain.DivisionD1 || s.Division == domain.DivisionD2 {
			targetsNCAA = true
			break
		}
	}
	if !targetsNCAA {
		return nil, nil
	}

	title := "Register with the NCAA Eligibility Center"
	for _, t := range rc.Tasks {
		if t.ID == domain.NCAARegistrationTaskID {
			title = t.Title
			break
		}
	}
	return one(domain.SuggestionData{
		RuleType:      r.ID(),
		Urgency:       domain.UrgencyHigh,
		Message:       fmt.Sprintf("%s. D1 and D2 programs cannot recruit you officially until you do.", title),
		ActionType:    domain.ActionUpdateTask,
		RelatedTaskID: domain.StrPtr(domain.NCAARegistrationTaskID),
	}), nil
}
