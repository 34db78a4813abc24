package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/scoutline/internal/domain"
	"github.com/alexanderramin/scoutline/internal/repository"
	"github.com/alexanderramin/scoutline/internal/rules"
	"github.com/alexanderramin/scoutline/internal/testutil"
)

func TestAthleteService_CreateValidatesAndAssignsID(t *testing.T) {
	h := newHarness(t)
	svc := NewAthleteService(h.athletes, h.tasks, h.triggerService(DefaultSuggestionPolicy()))
	ctx := context.Background()

	assert.Error(t, svc.Create(ctx, &domain.Athlete{Name: " ", GraduationYear: 2027}))
	assert.Error(t, svc.Create(ctx, &domain.Athlete{Name: "Jordan"}))

	a := &domain.Athlete{Name: "Jordan", GraduationYear: 2027}
	require.NoError(t, svc.Create(ctx, a))
	assert.NotEmpty(t, a.ID)

	got, err := svc.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jordan", got.Name)
}

func TestAthleteService_PhaseFollowsCompletedTasks(t *testing.T) {
	h := newHarness(t)
	trigger := h.triggerService(DefaultSuggestionPolicy())
	athletes := NewAthleteService(h.athletes, h.tasks, trigger)
	activity := NewActivityService(h.interactions, h.videos, h.events, h.tasks, trigger)
	ctx := context.Background()
	athlete := h.createAthlete(t, 9)

	phase, err := athletes.Phase(ctx, athlete.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseFreshman, phase)

	for _, id := range domain.FreshmanToSophomore {
		_, err := activity.CompleteTask(ctx, athlete.ID, id)
		require.NoError(t, err)
	}
	phase, err = athletes.Phase(ctx, athlete.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseSophomore, phase)

	_, err = athletes.SetCommitted(ctx, athlete.ID, true)
	require.NoError(t, err)
	phase, err = athletes.Phase(ctx, athlete.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseCommitted, phase)

	signed := h.createAthlete(t, 12, testutil.WithCommitted())
	phase, err = athletes.Phase(ctx, signed.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseCommitted, phase, "commitment outranks milestones")
}

func TestActivityService_CompleteUnknownTask(t *testing.T) {
	h := newHarness(t)
	activity := NewActivityService(h.interactions, h.videos, h.events, h.tasks, h.triggerService(DefaultSuggestionPolicy()))
	athlete := h.createAthlete(t, 11)

	_, err := activity.CompleteTask(context.Background(), athlete.ID, "learn-to-juggle")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestActivityService_CompletingNCAATaskSilencesRule(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	trigger := h.triggerService(DefaultSuggestionPolicy())
	activity := NewActivityService(h.interactions, h.videos, h.events, h.tasks, trigger)
	athlete := h.createAthlete(t, 11)
	require.NoError(t, h.schools.Create(ctx, testutil.NewTestSchool(athlete.ID, "Stanford",
		testutil.WithPriority(domain.PriorityC),
		testutil.WithDivision(domain.DivisionD1),
		testutil.WithFitScore(80),
	)))

	_, err := activity.CompleteTask(ctx, athlete.ID, domain.NCAARegistrationTaskID)
	require.NoError(t, err)

	n, err := h.suggestions.Count(ctx, repository.SuggestionFilter{AthleteID: athlete.ID, RuleType: rules.RuleNCAARegistration})
	require.NoError(t, err)
	assert.Zero(t, n)

	catalog, progress, err := activity.ListTasks(ctx, athlete.ID)
	require.NoError(t, err)
	assert.Len(t, catalog, 12)
	require.Len(t, progress, 1)
	assert.Equal(t, domain.TaskCompleted, progress[0].Status)
}

func TestActivityService_LogInteractionClosesOpenNudges(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	activity := NewActivityService(h.interactions, h.videos, h.events, h.tasks, h.triggerService(DefaultSuggestionPolicy()))
	athlete := h.createAthlete(t, 9)
	h.createSuggestion(t, testutil.NewTestSuggestion(athlete.ID, rules.RulePrioritySchoolReminder, testutil.WithRelatedSchool("school-b")))

	in := &domain.Interaction{AthleteID: athlete.ID, SchoolID: domain.StrPtr("school-a"), InteractionType: "phone call"}
	res, err := activity.LogInteraction(ctx, in)
	require.NoError(t, err)
	assert.NotEmpty(t, in.ID)
	assert.False(t, in.OccurredAt.IsZero())
	assert.Equal(t, domain.TriggerInteractionLogged, res.Reason)
	assert.Equal(t, 1, res.AutoCompleted)

	logged, err := h.interactions.ListByAthlete(ctx, athlete.ID)
	require.NoError(t, err)
	assert.Len(t, logged, 1)
}

func TestActivityService_VideoAndEventTriggerProfileChange(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	activity := NewActivityService(h.interactions, h.videos, h.events, h.tasks, h.triggerService(DefaultSuggestionPolicy()))
	athlete := h.createAthlete(t, 10)

	res, err := activity.AddVideo(ctx, &domain.Video{AthleteID: athlete.ID, Title: "Fall reel", URL: "https://video.example.com/reel"})
	require.NoError(t, err)
	assert.Equal(t, domain.TriggerProfileChange, res.Reason)
	// school-list-size and showcase-attendance; the video satisfies missing-video.
	assert.Equal(t, 2, res.Generated)

	videos, err := h.videos.ListByAthlete(ctx, athlete.ID)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, domain.VideoHealthUnknown, videos[0].HealthStatus)

	res, err = activity.AddEvent(ctx, &domain.Event{AthleteID: athlete.ID, Name: "PG Showcase", EventDate: time.Now().UTC().AddDate(0, 0, -1), Attended: true})
	require.NoError(t, err)
	// event-follow-up fires for the fresh event.
	assert.Equal(t, 1, res.Generated)
}

func TestSchoolService_ScoreFitStoresComposite(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	svc := NewSchoolService(h.schools, h.triggerService(DefaultSuggestionPolicy()))
	athlete := h.createAthlete(t, 12)

	school := &domain.School{AthleteID: athlete.ID, Name: "Rice", Division: domain.DivisionD1}
	_, err := svc.Create(ctx, school)
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityC, school.Priority)
	assert.Equal(t, domain.SchoolInterested, school.Status)

	fit, _, err := svc.ScoreFit(ctx, school.ID, domain.FitInputs{
		AthleticFit:    domain.Float64Ptr(35),
		AcademicFit:    domain.Float64Ptr(20),
		OpportunityFit: domain.Float64Ptr(18),
	})
	require.NoError(t, err)
	assert.InDelta(t, 73, fit.Score, 0.001)
	assert.Equal(t, domain.FitMatch, fit.Tier)
	assert.Equal(t, []domain.FitDimension{domain.DimensionPersonal}, fit.MissingDimensions)

	stored, err := h.schools.GetByID(ctx, school.ID)
	require.NoError(t, err)
	assert.InDelta(t, 73, stored.FitScore, 0.001)

	_, err = svc.Create(ctx, &domain.School{Name: "Orphan"})
	assert.Error(t, err)
}
