package contract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/scoutline/internal/domain"
)

func TestNewTriggerRequest_SetsDefaults(t *testing.T) {
	req := NewTriggerRequest("ath-1", domain.TriggerDailyRefresh)

	assert.Equal(t, "ath-1", req.AthleteID)
	assert.Equal(t, domain.TriggerDailyRefresh, req.Reason)
	assert.Nil(t, req.SchoolID)
	assert.Nil(t, req.CoachID)
	assert.Nil(t, req.Now)
}

func TestNewSurfacedRequest_NoSchoolFilter(t *testing.T) {
	req := NewSurfacedRequest("ath-1", domain.LocationDashboard)
	assert.Equal(t, domain.LocationDashboard, req.Location)
	assert.Nil(t, req.SchoolID)
}

func TestTriggerError_MessageAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &TriggerError{Code: TriggerErrContextLoad, Message: "loading schools", Err: cause}

	assert.Equal(t, "CONTEXT_LOAD: loading schools: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := &TriggerError{Code: TriggerErrInvalidReason, Message: `unknown reason "weekly"`}
	assert.Equal(t, `INVALID_REASON: unknown reason "weekly"`, bare.Error())
}
