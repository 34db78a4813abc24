package rules

import (
	"testing"

	"github.com/alexanderramin/scoutline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRuleContext_DefaultsCollectionsToEmpty(t *testing.T) {
	rc, err := NewRuleContext(Snapshot{Athlete: &domain.Athlete{ID: "a", GraduationYear: gradYearFor(11)}}, testNow)
	require.NoError(t, err)

	assert.Equal(t, 11, rc.GradeLevel)
	assert.NotNil(t, rc.Schools)
	assert.NotNil(t, rc.Interactions)
	assert.NotNil(t, rc.Tasks)
	assert.NotNil(t, rc.AthleteTasks)
	assert.NotNil(t, rc.Videos)
	assert.NotNil(t, rc.Events)
}

func TestNewRuleContext_RequiresAthlete(t *testing.T) {
	_, err := NewRuleContext(Snapshot{}, testNow)
	assert.ErrorIs(t, err, ErrMissingContext)
}

func TestDaysSinceContact(t *testing.T) {
	rc := newTestContext(11, withInteractions(contact("s1", 30), contact("s1", 5), contact("s2", 12)))

	assert.Equal(t, 5, rc.DaysSinceContact("s1"), "latest interaction wins")
	assert.Equal(t, 12, rc.DaysSinceContact("s2"))
	assert.Equal(t, NoContactDays, rc.DaysSinceContact("s3"))
}
