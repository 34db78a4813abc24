package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/scoutline/internal/domain"
	"github.com/alexanderramin/scoutline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAthleteRepo_CreateGetUpdate(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLAthleteRepo(database, testutil.Builder())
	ctx := context.Background()

	a := testutil.NewTestAthlete("Jordan", testutil.WithGraduationYear(2027))
	require.NoError(t, repo.Create(ctx, a))

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jordan", got.Name)
	assert.Equal(t, 2027, got.GraduationYear)
	assert.False(t, got.Committed)

	got.Committed = true
	got.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, got))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Committed)

	_, err = repo.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSchoolRepo_ListByAthleteKeepsInsertionOrder(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	athlete := testutil.NewTestAthlete("Riley")
	require.NoError(t, NewSQLAthleteRepo(database, testutil.Builder()).Create(ctx, athlete))

	repo := NewSQLSchoolRepo(database, testutil.Builder())
	base := time.Now().UTC().Add(-time.Hour)
	first := testutil.NewTestSchool(athlete.ID, "State", testutil.WithPriority(domain.PriorityA), testutil.WithSchoolCreatedAt(base))
	second := testutil.NewTestSchool(athlete.ID, "Tech", testutil.WithFitScore(42.5), testutil.WithSchoolCreatedAt(base.Add(time.Minute)))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, first))

	schools, err := repo.ListByAthlete(ctx, athlete.ID)
	require.NoError(t, err)
	require.Len(t, schools, 2)
	assert.Equal(t, first.ID, schools[0].ID)
	assert.Equal(t, domain.PriorityA, schools[0].Priority)
	assert.Equal(t, 42.5, schools[1].FitScore)

	empty, err := repo.ListByAthlete(ctx, "other")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestInteractionRepo_NullableColumnsRoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	athlete := testutil.NewTestAthlete("Avery")
	require.NoError(t, NewSQLAthleteRepo(database, testutil.Builder()).Create(ctx, athlete))

	repo := NewSQLInteractionRepo(database, testutil.Builder())
	now := time.Now().UTC()
	withSchool := testutil.NewTestInteraction(athlete.ID, now.AddDate(0, 0, -1), testutil.WithInteractionSchool("school-1"), testutil.WithRelatedEvent("event-1"))
	bare := testutil.NewTestInteraction(athlete.ID, now.AddDate(0, 0, -5), testutil.WithInteractionType("phone call"))
	require.NoError(t, repo.Create(ctx, bare))
	require.NoError(t, repo.Create(ctx, withSchool))

	list, err := repo.ListByAthlete(ctx, athlete.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, withSchool.ID, list[0].ID, "newest first")
	require.NotNil(t, list[0].SchoolID)
	assert.Equal(t, "school-1", *list[0].SchoolID)
	require.NotNil(t, list[0].RelatedEventID)
	assert.Nil(t, list[1].SchoolID)
	assert.Nil(t, list[1].CoachID)
	assert.Equal(t, "phone call", list[1].InteractionType)
	assert.Equal(t, "email", list[0].InteractionType)
}

func TestTaskRepo_CatalogSeededAndUpsert(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	athlete := testutil.NewTestAthlete("Morgan")
	require.NoError(t, NewSQLAthleteRepo(database, testutil.Builder()).Create(ctx, athlete))

	repo := NewSQLTaskRepo(database, testutil.Builder())
	catalog, err := repo.ListCatalog(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(catalog))
	for _, task := range catalog {
		ids = append(ids, task.ID)
	}
	assert.Contains(t, ids, domain.NCAARegistrationTaskID)
	for _, id := range domain.JuniorToSenior {
		assert.Contains(t, ids, id)
	}

	at := &domain.AthleteTask{AthleteID: athlete.ID, TaskID: domain.NCAARegistrationTaskID, Status: domain.TaskInProgress}
	require.NoError(t, repo.Upsert(ctx, at))
	done := time.Now().UTC()
	at.Status = domain.TaskCompleted
	at.CompletedAt = &done
	require.NoError(t, repo.Upsert(ctx, at))

	tasks, err := repo.ListByAthlete(ctx, athlete.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, domain.TaskCompleted, tasks[0].Status)
	assert.NotNil(t, tasks[0].CompletedAt)
}

func TestVideoAndEventRepos(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	athlete := testutil.NewTestAthlete("Quinn")
	require.NoError(t, NewSQLAthleteRepo(database, testutil.Builder()).Create(ctx, athlete))

	videos := NewSQLVideoRepo(database, testutil.Builder())
	v := testutil.NewTestVideo(athlete.ID, "Spring highlights", domain.VideoHealthOK)
	require.NoError(t, videos.Create(ctx, v))
	require.NoError(t, videos.UpdateHealth(ctx, v.ID, domain.VideoHealthBroken))
	assert.ErrorIs(t, videos.UpdateHealth(ctx, "missing", domain.VideoHealthOK), ErrNotFound)

	vids, err := videos.ListByAthlete(ctx, athlete.ID)
	require.NoError(t, err)
	require.Len(t, vids, 1)
	assert.Equal(t, domain.VideoHealthBroken, vids[0].HealthStatus)

	events := NewSQLEventRepo(database, testutil.Builder())
	now := time.Now().UTC()
	older := testutil.NewTestEvent(athlete.ID, "Fall showcase", now.AddDate(0, -3, 0), true)
	newer := testutil.NewTestEvent(athlete.ID, "Winter camp", now.AddDate(0, 0, -2), false)
	require.NoError(t, events.Create(ctx, older))
	require.NoError(t, events.Create(ctx, newer))

	evs, err := events.ListByAthlete(ctx, athlete.ID)
	require.NoError(t, err)
	require.Len(t, evs, 2)
	assert.Equal(t, newer.ID, evs[0].ID)
	assert.True(t, evs[1].Attended)
	assert.Nil(t, evs[0].SchoolID)
}
