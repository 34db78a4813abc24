package app

import (
	"time"

	"github.com/alexanderramin/scoutline/internal/domain"
)

// TriggerRequest asks for one suggestion cycle for an athlete.
type TriggerRequest struct {
	AthleteID string
	Reason    domain.TriggerReason
	// SchoolID and CoachID describe the interaction that caused an
	// interaction_logged trigger.
	SchoolID *string
	CoachID  *string
	Now      *time.Time
}

func NewTriggerRequest(athleteID string, reason domain.TriggerReason) TriggerRequest {
	return TriggerRequest{AthleteID: athleteID, Reason: reason}
}

type TriggerResult struct {
	AthleteID     string
	Reason        domain.TriggerReason
	Generated     int
	Surfaced      int
	AutoCompleted int
}

// RefreshSummary aggregates a daily refresh across all athletes.
type RefreshSummary struct {
	Athletes  int
	Generated int
	Surfaced  int
	Failed    int
}

type TriggerErrorCode string

const (
	TriggerErrInvalidReason   TriggerErrorCode = "INVALID_REASON"
	TriggerErrMissingAthlete  TriggerErrorCode = "MISSING_ATHLETE"
	TriggerErrInvalidLocation TriggerErrorCode = "INVALID_LOCATION"
	TriggerErrContextLoad     TriggerErrorCode = "CONTEXT_LOAD"
	TriggerErrInternal        TriggerErrorCode = "INTERNAL_ERROR"
)

type TriggerError struct {
	Code    TriggerErrorCode
	Message string
	Err     error
}

func (e *TriggerError) Error() string {
	if e.Err != nil {
		return string(e.Code) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Code) + ": " + e.Message
}

func (e *TriggerError) Unwrap() error {
	return e.Err
}
