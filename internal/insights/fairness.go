package insights

import (
	"fmt"

	"hotel-optimizer-go/internal/aggregator"
	"hotel-optimizer-go/internal/config"
	"hotel-optimizer-go/internal/types"
)

// EstimateFairness compares a quoted price against the seasonal median for
// (hotel type, arrival month), adjusted for hotel class. Bands are closed on
// the upper edge: ratio 1.05 is still a fair price. ok is false when the
// table has no baseline for the pair or the baseline is zero.
func EstimateFairness(table map[aggregator.FairnessKey]aggregator.FairnessCell, hotelType, arrivalMonth string, currentPrice, hotelClass float64) (types.PriceFairness, bool) {
	cell, ok := table[aggregator.FairnessKey{Hotel: aggregator.Norm(hotelType), Month: aggregator.Norm(arrivalMonth)}]
	if !ok || cell.N == 0 {
		return types.PriceFairness{}, false
	}

	classMult := 1.0
	if hotelClass > 0 {
		classMult = clip(hotelClass/config.ClassBase, config.FairnessClassMultMin, config.FairnessClassMultMax)
	}
	expected := cell.MedianADR * classMult
	if expected <= 0 {
		return types.PriceFairness{}, false
	}

	ratio := currentPrice / expected
	label, color, message := fairnessBand(ratio)

	return types.PriceFairness{
		HotelType:     hotelType,
		ArrivalMonth:  arrivalMonth,
		CurrentPrice:  currentPrice,
		ExpectedPrice: expected,
		Ratio:         ratio,
		PctDiff:       (currentPrice - expected) / expected * 100,
		Label:         label,
		Color:         color,
		Message:       message,
		TotalBookings: cell.N,
	}, true
}

func fairnessBand(ratio float64) (label, color, message string) {
	switch {
	case ratio <= config.GreatDealMaxRatio:
		return "Great deal", "green", "Price is well below the seasonal baseline for this month."
	case ratio <= config.FairPriceMaxRatio:
		return "Fair price", "green", "Price is in line with the seasonal baseline."
	case ratio <= config.SlightlyHighMaxRatio:
		return "Slightly high", "yellow", "Price is above the seasonal baseline; comparing nearby dates may pay off."
	default:
		return "Overpriced", "red", fmt.Sprintf("Price is %.0f%% above the seasonal baseline.", (ratio-1)*100)
	}
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
