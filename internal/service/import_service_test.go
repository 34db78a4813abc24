package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/scoutline/internal/db"
	"github.com/alexanderramin/scoutline/internal/importer"
	"github.com/alexanderramin/scoutline/internal/repository"
	"github.com/alexanderramin/scoutline/internal/rules"
	"github.com/alexanderramin/scoutline/internal/testutil"
)

func juniorImportSchema() *importer.ImportSchema {
	lastWeek := time.Now().UTC().AddDate(0, 0, -7).Format("2006-01-02")
	coastal := "coastal"
	camp := "camp"
	return &importer.ImportSchema{
		Athlete: importer.AthleteImport{Name: "Casey Rivera", GraduationYear: gradYearForGrade(11)},
		Schools: []importer.SchoolImport{
			{Ref: "coastal", Name: "Coastal State", Priority: "A", Division: "D1"},
			{Ref: "valley", Name: "Valley Tech", Priority: "C"},
		},
		Events: []importer.EventImport{
			{Ref: "camp", SchoolRef: &coastal, Name: "Prospect Camp", Date: lastWeek, Attended: true},
		},
		Interactions: []importer.InteractionImport{
			{SchoolRef: &coastal, EventRef: &camp, Type: "camp conversation", Date: lastWeek},
		},
		Videos:         []importer.VideoImport{{Title: "Highlights", URL: "https://example.com/v/1", Health: "ok"}},
		CompletedTasks: []string{"create-profile", "academic-plan"},
	}
}

func (h *harness) importService() ImportService {
	return h.importServiceWith(h.uow)
}

func (h *harness) importServiceWith(uow db.UnitOfWork) ImportService {
	return NewImportService(uow, testutil.Builder(), h.tasks, h.triggerService(DefaultSuggestionPolicy()))
}

func TestImportAthlete_PersistsRecordsAndRunsCycle(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	res, err := h.importService().ImportAthleteFromSchema(ctx, juniorImportSchema())
	require.NoError(t, err)

	assert.Equal(t, 2, res.SchoolCount)
	assert.Equal(t, 1, res.EventCount)
	assert.Equal(t, 1, res.InteractionCount)
	assert.Equal(t, 1, res.VideoCount)
	assert.Equal(t, 2, res.TaskCount)
	require.NotNil(t, res.Trigger)
	assert.Positive(t, res.Trigger.Generated)

	id := res.Athlete.ID
	stored, err := h.athletes.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Casey Rivera", stored.Name)

	schools, err := h.schools.ListByAthlete(ctx, id)
	require.NoError(t, err)
	assert.Len(t, schools, 2)

	interactions, err := h.interactions.ListByAthlete(ctx, id)
	require.NoError(t, err)
	require.Len(t, interactions, 1)
	require.NotNil(t, interactions[0].RelatedEventID)

	events, err := h.events.ListByAthlete(ctx, id)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, events[0].ID, *interactions[0].RelatedEventID)

	tasks, err := h.tasks.ListByAthlete(ctx, id)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	// The camp follow-up is already logged, so the cycle skips it.
	pending, err := h.suggestions.Count(ctx, repository.SuggestionFilter{AthleteID: id, RuleType: rules.RuleEventFollowUp})
	require.NoError(t, err)
	assert.Zero(t, pending)
}

func TestImportAthlete_RejectsUnknownTasks(t *testing.T) {
	h := newHarness(t)
	schema := juniorImportSchema()
	schema.CompletedTasks = append(schema.CompletedTasks, "learn-knuckleball")
	schema.Athlete.Name = ""

	_, err := h.importService().ImportAthleteFromSchema(context.Background(), schema)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrImportInvalid)
	assert.Contains(t, err.Error(), "(2 errors)")
	assert.Contains(t, err.Error(), `completed_tasks[2]: unknown task "learn-knuckleball"`)
	assert.Contains(t, err.Error(), "athlete.name is required")

	athletes, err := h.athletes.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, athletes)
}

func TestImportAthlete_RollsBackOnWriteFailure(t *testing.T) {
	h := newHarness(t)
	boom := errors.New("disk full")

	// Third write is the second school.
	svc := h.importServiceWith(&testutil.FailingTxUoW{Inner: h.uow, FailOn: 3, Err: boom})
	_, err := svc.ImportAthleteFromSchema(context.Background(), juniorImportSchema())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `creating school "Valley Tech"`)

	athletes, err := h.athletes.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, athletes)
}

func TestImportAthlete_MissingFile(t *testing.T) {
	h := newHarness(t)
	_, err := h.importService().ImportAthlete(context.Background(), "/nonexistent/casey.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading import file")
}
