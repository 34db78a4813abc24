package domain

import "math"

type FitTier string

const (
	FitMatch    FitTier = "match"
	FitReach    FitTier = "reach"
	FitUnlikely FitTier = "unlikely"
)

type FitDimension string

const (
	DimensionAthletic    FitDimension = "athletic"
	DimensionAcademic    FitDimension = "academic"
	DimensionOpportunity FitDimension = "opportunity"
	DimensionPersonal    FitDimension = "personal"
)

// Maximum points each dimension contributes to the 0..100 composite.
const (
	MaxAthleticFit    = 40.0
	MaxAcademicFit    = 25.0
	MaxOpportunityFit = 20.0
	MaxPersonalFit    = 15.0
)

const (
	matchThreshold = 70.0
	reachThreshold = 45.0
)

// FitInputs holds the sub-scores for a school. Nil means not yet rated.
type FitInputs struct {
	AthleticFit    *float64
	AcademicFit    *float64
	OpportunityFit *float64
	PersonalFit    *float64
}

type FitResult struct {
	Score             float64
	Tier              FitTier
	MissingDimensions []FitDimension
}

// CalculateFitScore sums the clamped sub-scores and tiers the result.
// Missing dimensions contribute zero and are reported in fixed order.
func CalculateFitScore(in FitInputs) FitResult {
	dims := []struct {
		name  FitDimension
		value *float64
		max   float64
	}{
		{DimensionAthletic, in.AthleticFit, MaxAthleticFit},
		{DimensionAcademic, in.AcademicFit, MaxAcademicFit},
		{DimensionOpportunity, in.OpportunityFit, MaxOpportunityFit},
		{DimensionPersonal, in.PersonalFit, MaxPersonalFit},
	}

	missing := []FitDimension{}
	var score float64
	for _, d := range dims {
		if d.value == nil {
			missing = append(missing, d.name)
			continue
		}
		score += math.Max(0, math.Min(*d.value, d.max))
	}

	return FitResult{
		Score:             score,
		Tier:              FitTierFor(score),
		MissingDimensions: missing,
	}
}

// FitTierFor maps a composite score to its tier.
func FitTierFor(score float64) FitTier {
	switch {
	case score >= matchThreshold:
		return FitMatch
	case score >= reachThreshold:
		return FitReach
	default:
		return FitUnlikely
	}
}
