package config

import (
	"os"
	"strconv"
)

// Recommendation scoring weights. Sub-scores are rescaled to [0,1] within
// the filtered candidate set; weights are renormalized over whichever
// signals a candidate actually has.
const (
	WeightPriceMatch   = 0.30
	WeightSentiment    = 0.30
	WeightRating       = 0.25
	WeightReviewVolume = 0.15
)

// Candidate pricing.
const (
	ClassBase          = 3.5
	ClassMultMin       = 0.5
	ClassMultMax       = 2.5
	PriceBandSpread    = 0.12
	defaultADRBaseline = 100.0
)

// Overbooking proxy.
const (
	ReassignmentWeight   = 0.7
	WaitingListWeight    = 0.3
	OverbookingMediumCut = 0.12
	OverbookingHighCut   = 0.25
	RepeatedGuestAdj     = -0.03
	PrevCancellationAdj  = 0.02
	PrevCancellationCap  = 0.10
)

// Price fairness bands (ratio upper bounds, inclusive).
const (
	FairnessClassMultMin = 0.6
	FairnessClassMultMax = 2.0
	GreatDealMaxRatio    = 0.92
	FairPriceMaxRatio    = 1.05
	SlightlyHighMaxRatio = 1.15
)

// Cancellation advice cuts.
const (
	CancellationHighCut     = 0.40
	CancellationModerateCut = 0.20
)

// Forecast signal.
const (
	StableBandPct       = 1.0
	VolatilityLowCut    = 0.10
	VolatilityMediumCut = 0.25
	ConfidenceFullDates = 30
	AdviceConfidenceCut = 0.6
)

// Best booking window.
const DefaultMinWindowSamples = 200

// CityMultipliers scales the global ADR baseline for localities with a known
// price level. Unknown localities get 1.0; the fallback is load-bearing, an
// unseen city must never fail a lookup.
var CityMultipliers = map[string]float64{
	"lisbon":    1.10,
	"porto":     0.95,
	"london":    1.45,
	"paris":     1.40,
	"new york":  1.55,
	"barcelona": 1.15,
	"madrid":    1.05,
	"rome":      1.10,
	"berlin":    1.00,
	"bangkok":   0.70,
}

// GlobalADRBaseline is the anchor nightly rate for candidate price
// estimates, overridable per deployment.
func GlobalADRBaseline() float64 {
	if v := os.Getenv("GLOBAL_ADR_BASELINE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return defaultADRBaseline
}
