package rules

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/scoutline/internal/domain"
)

const (
	RuleInteractionGap         = "interaction-gap"
	RulePrioritySchoolReminder = "priority-school-reminder"
	RuleFormalOutreach         = "formal-outreach"
	RuleOfficialVisit          = "official-visit"
)

const (
	interactionGapDays    = 21
	priorityReminderDays  = 14
	outreachAverageDays   = 30
	outreachMaxDays       = 45
	minOfficialVisitTouch = 2
)

// gapSnapshot is shared by the two day-gap rules: both record the gap at
// firing time and come back once it has at least doubled and grown by two
// weeks.
type gapSnapshot struct{}

const snapshotDaysKey = "days_since_contact"

func (gapSnapshot) ConditionSnapshot(rc *RuleContext, relatedSchoolID *string) map[string]any {
	if relatedSchoolID == nil {
		return nil
	}
	return map[string]any{snapshotDaysKey: rc.DaysSinceContact(*relatedSchoolID)}
}

func (gapSnapshot) ShouldReEvaluate(dismissed domain.Suggestion, rc *RuleContext) bool {
	if dismissed.RelatedSchoolID == nil {
		return false
	}
	prev, ok := snapshotInt(dismissed.ConditionSnapshot, snapshotDaysKey)
	if !ok {
		return false
	}
	current := rc.DaysSinceContact(*dismissed.RelatedSchoolID)
	return current >= 2*prev && current-prev >= 14
}

// snapshotInt reads a numeric snapshot value that may have been decoded from JSON.
func snapshotInt(snap map[string]any, key string) (int, bool) {
	switch v := snap[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

type interactionGapRule struct {
	meta
	gapSnapshot
}

func NewInteractionGapRule() Rule {
	return &interactionGapRule{meta: meta{
		id:          RuleInteractionGap,
		name:        "Interaction gap",
		description: "A top-priority school still in play has not heard from the athlete in three weeks.",
	}}
}

func (r *interactionGapRule) Evaluate(_ context.Context, rc *RuleContext) ([]domain.SuggestionData, error) {
	for _, s := range rc.Schools {
		if !s.Priority.IsTop() || !s.Status.IsActivelyRecruiting() {
			continue
		}
		days := rc.DaysSinceContact(s.ID)
		if days < interactionGapDays {
			continue
		}
		return one(domain.SuggestionData{
			RuleType:        r.ID(),
			Urgency:         domain.UrgencyHigh,
			Message:         fmt.Sprintf("It has been %s since you last contacted %s. Reach out to keep the conversation going.", describeDays(days), s.Name),
			ActionType:      domain.ActionLogInteraction,
			RelatedSchoolID: domain.StrPtr(s.ID),
		}), nil
	}
	return nil, nil
}

type prioritySchoolReminderRule struct {
	meta
	gapSnapshot
}

func NewPrioritySchoolReminderRule() Rule {
	return &prioritySchoolReminderRule{meta: meta{
		id:          RulePrioritySchoolReminder,
		name:        "Priority school reminder",
		description: "A priority-A school has gone two weeks without contact.",
	}}
}

func (r *prioritySchoolReminderRule) Evaluate(_ context.Context, rc *RuleContext) ([]domain.SuggestionData, error) {
	for _, s := range rc.Schools {
		if s.Priority != domain.PriorityA {
			continue
		}
		days := rc.DaysSinceContact(s.ID)
		if days < priorityReminderDays {
			continue
		}
		return one(domain.SuggestionData{
			RuleType:        r.ID(),
			Urgency:         domain.UrgencyHigh,
			Message:         fmt.Sprintf("%s is one of your top schools and it has been %s since your last contact.", s.Name, describeDays(days)),
			ActionType:      domain.ActionLogInteraction,
			RelatedSchoolID: domain.StrPtr(s.ID),
		}), nil
	}
	return nil, nil
}

type formalOutreachRule struct {
	meta
}

func NewFormalOutreachRule() Rule {
	return &formalOutreachRule{meta: meta{
		id:          RuleFormalOutreach,
		name:        "Formal outreach",
		description: "Upperclassmen should keep steady contact with their A and B schools.",
	}}
}

func (r *formalOutreachRule) Evaluate(_ context.Context, rc *RuleContext) ([]domain.SuggestionData, error) {
	if err := rc.requireAthlete(); err != nil {
		return nil, err
	}
	if rc.GradeLevel < 11 {
		return nil, nil
	}
	top := rc.TopSchools()
	if len(top) == 0 {
		return nil, nil
	}

	total, worst := 0, 0
	for _, s := range top {
		days := rc.DaysSinceContact(s.ID)
		total += days
		if days > worst {
			worst = days
		}
	}
	avg := float64(total) / float64(len(top))
	if avg <= outreachAverageDays && worst <= outreachMaxDays {
		return nil, nil
	}

	return one(domain.SuggestionData{
		RuleType:   r.ID(),
		Urgency:    seniorUrgency(rc.GradeLevel),
		Message:    fmt.Sprintf("Your top schools average %.0f days since last contact. Send coaches an update with your schedule and latest stats.", avg),
		ActionType: domain.ActionLogInteraction,
	}), nil
}

type officialVisitRule struct {
	meta
}

func NewOfficialVisitRule() Rule {
	return &officialVisitRule{meta: meta{
		id:          RuleOfficialVisit,
		name:        "Official visit",
		description: "Upperclassmen with top schools should be lining up official visits.",
	}}
}

func (r *officialVisitRule) Evaluate(_ context.Context, rc *RuleContext) ([]domain.SuggestionData, error) {
	if err := rc.requireAthlete(); err != nil {
		return nil, err
	}
	if rc.GradeLevel < 11 || len(rc.TopSchools()) == 0 {
		return nil, nil
	}

	visits := 0
	for _, in := range rc.Interactions {
		typ := strings.ToLower(in.InteractionType)
		if strings.Contains(typ, "official") || strings.Contains(typ, "visit") {
			visits++
		}
	}
	if visits >= minOfficialVisitTouch {
		return nil, nil
	}

	return one(domain.SuggestionData{
		RuleType:   r.ID(),
		Urgency:    seniorUrgency(rc.GradeLevel),
		Message:    fmt.Sprintf("You have logged %d visit-related interactions. Ask your top schools about official visit dates.", visits),
		ActionType: domain.ActionLogInteraction,
	}), nil
}

// seniorUrgency escalates grade-gated nudges for seniors.
func seniorUrgency(grade int) domain.Urgency {
	if grade >= 12 {
		return domain.UrgencyHigh
	}
	return domain.UrgencyMedium
}

func describeDays(days int) string {
	if days >= NoContactDays {
		return "a long time"
	}
	return fmt.Sprintf("%d days", days)
}
