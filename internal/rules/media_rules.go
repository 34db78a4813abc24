package rules

import (
	"context"
	"fmt"

	"github.com/alexanderramin/scoutline/internal/domain"
)

const (
	RuleMissingVideo    = "missing-video"
	RuleVideoLinkHealth = "video-link-health"
)

type missingVideoRule struct {
	meta
}

func NewMissingVideoRule() Rule {
	return &missingVideoRule{meta: meta{
		id:          RuleMissingVideo,
		name:        "Missing video",
		description: "Sophomores and up need at least one highlight video.",
	}}
}

func (r *missingVideoRule) Evaluate(_ context.Context, rc *RuleContext) ([]domain.SuggestionData, error) {
	if err := rc.requireAthlete(); err != nil {
		return nil, err
	}
	if rc.GradeLevel < 10 || len(rc.Videos) > 0 {
		return nil, nil
	}
	return one(domain.SuggestionData{
		RuleType:   r.ID(),
		Urgency:    domain.UrgencyMedium,
		Message:    "Coaches want to see you play. Add a highlight video to your profile.",
		ActionType: domain.ActionAddVideo,
	}), nil
}

type videoLinkHealthRule struct {
	meta
}

func NewVideoLinkHealthRule() Rule {
	return &videoLinkHealthRule{meta: meta{
		id:          RuleVideoLinkHealth,
		name:        "Broken video link",
		description: "A highlight video link no longer resolves.",
	}}
}

func (r *videoLinkHealthRule) Evaluate(_ context.Context, rc *RuleContext) ([]domain.SuggestionData, error) {
	for _, v := range rc.Videos {
		if v.HealthStatus != domain.VideoHealthBroken {
			continue
		}
		return one(domain.SuggestionData{
			RuleType:   r.ID(),
			Urgency:    domain.UrgencyHigh,
			Message:    fmt.Sprintf("The link for %q is broken. Update it before coaches try to watch.", v.Title),
			ActionType: domain.ActionUpdateVideo,
		}), nil
	}
	return nil, nil
}
