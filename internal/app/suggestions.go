package app

import "github.com/alexanderramin/scoutline/internal/domain"

// SurfacedRequest selects the open suggestions for one UI location.
type SurfacedRequest struct {
	AthleteID string
	Location  domain.SurfaceLocation
	SchoolID  *string
}

func NewSurfacedRequest(athleteID string, location domain.SurfaceLocation) SurfacedRequest {
	return SurfacedRequest{AthleteID: athleteID, Location: location}
}
