package contract

import (
	"github.com/alexanderramin/scoutline/internal/app"
	"github.com/alexanderramin/scoutline/internal/domain"
)

type TriggerRequest = app.TriggerRequest

func NewTriggerRequest(athleteID string, reason domain.TriggerReason) TriggerRequest {
	return app.NewTriggerRequest(athleteID, reason)
}

type TriggerResult = app.TriggerResult

type RefreshSummary = app.RefreshSummary

type TriggerErrorCode = app.TriggerErrorCode

const (
	TriggerErrInvalidReason   TriggerErrorCode = app.TriggerErrInvalidReason
	TriggerErrMissingAthlete  TriggerErrorCode = app.TriggerErrMissingAthlete
	TriggerErrInvalidLocation TriggerErrorCode = app.TriggerErrInvalidLocation
	TriggerErrContextLoad     TriggerErrorCode = app.TriggerErrContextLoad
	TriggerErrInternal        TriggerErrorCode = app.TriggerErrInternal
)

type TriggerError = app.TriggerError

type SurfacedRequest = app.SurfacedRequest

func NewSurfacedRequest(athleteID string, location domain.SurfaceLocation) SurfacedRequest {
	return app.NewSurfacedRequest(athleteID, location)
}

type ImportResult = app.ImportResult
