package rules

import (
	"context"
	"fmt"

	"github.com/alexanderramin/scoutline/internal/domain"
)

const (
	RuleEventFollowUp      = "event-follow-up"
	RuleShowcaseAttendance = "showcase-attendance"
)

const (
	followUpWindowDays  = 7
	showcaseStaleMonths = 6
)

type eventFollowUpRule struct {
	meta
}

func NewEventFollowUpRule() Rule {
	return &eventFollowUpRule{meta: meta{
		id:          RuleEventFollowUp,
		name:        "Event follow-up",
		description: "An event attended this week has no follow-up interaction yet.",
	}}
}

func (r *eventFollowUpRule) Evaluate(_ context.Context, rc *RuleContext) ([]domain.SuggestionData, error) {
	cutoff := rc.Now.AddDate(0, 0, -followUpWindowDays)
	for _, e := range rc.Events {
		if !e.Attended || e.EventDate.Before(cutoff) || e.EventDate.After(rc.Now) {
			continue
		}
		if followedUp(rc.Interactions, e) {
			continue
		}
		return one(domain.SuggestionData{
			RuleType:        r.ID(),
			Urgency:         domain.UrgencyMedium,
			Message:         fmt.Sprintf("Follow up with the coaches you met at %s while it is still fresh.", e.Name),
			ActionType:      domain.ActionLogInteraction,
			RelatedSchoolID: e.SchoolID,
		}), nil
	}
	return nil, nil
}

func followedUp(interactions []domain.Interaction, e domain.Event) bool {
	for _, in := range interactions {
		if in.RelatedEventID != nil && *in.RelatedEventID == e.ID {
			return true
		}
		if in.OccurredAt.After(e.EventDate) {
			return true
		}
	}
	return false
}

type showcaseAttendanceRule struct {
	meta
}

func NewShowcaseAttendanceRule() Rule {
	return &showcaseAttendanceRule{meta: meta{
		id:          RuleShowcaseAttendance,
		name:        "Showcase attendance",
		description: "Sophomores should be getting in front of coaches at showcases.",
	}}
}

func (r *showcaseAttendanceRule) Evaluate(_ context.Context, rc *RuleContext) ([]domain.SuggestionData, error) {
	if err := rc.requireAthlete(); err != nil {
		return nil, err
	}
	if rc.GradeLevel != 10 {
		return nil, nil
	}

	var latest *domain.Event
	for i := range rc.Events {
		if latest == nil || rc.Events[i].EventDate.After(latest.EventDate) {
			latest = &rc.Events[i]
		}
	}

	msg := "You have no showcases on your calendar. Pick one this season to get seen by college coaches."
	if latest != nil {
		if !latest.EventDate.Before(rc.Now.AddDate(0, -showcaseStaleMonths, 0)) {
			return nil, nil
		}
		msg = fmt.Sprintf("Your last event was %s. Find a showcase in the next few months.", latest.Name)
	}

	return one(domain.SuggestionData{
		RuleType:   r.ID(),
		Urgency:    domain.UrgencyMedium,
		Message:    msg,
		ActionType: domain.ActionLogInteraction,
	}), nil
}
