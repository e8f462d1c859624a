package forecast

import (
	"math"
	"sort"
	"strings"
	"time"

	"hotel-optimizer-go/internal/aggregator"
	"hotel-optimizer-go/internal/candidates"
	"hotel-optimizer-go/internal/config"
	"hotel-optimizer-go/internal/types"
)

// Trend labels.
const (
	TrendUp     = "UP"
	TrendDown   = "DOWN"
	TrendStable = "STABLE"
)

// Booking advice labels.
const (
	AdviceBookNow  = "BOOK_NOW"
	AdviceWait     = "WAIT"
	AdviceFlexible = "FLEXIBLE_BOOKING"
)

// SeriesPoint is one date of the aggregated ADR series.
type SeriesPoint struct {
	Date time.Time `json:"date"`
	ADR  float64   `json:"adr"`
}

var monthsByName = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

// BuildSeries groups bookings by arrival date and takes the median ADR per
// date. Median, not mean: per-booking ADR is noisy and outlier-prone. Rows
// with an invalid ADR or an unparseable date are skipped.
func BuildSeries(bookings []types.BookingRecord) []SeriesPoint {
	byDate := map[time.Time][]float64{}
	for _, b := range bookings {
		if !b.ADRValid {
			continue
		}
		m, ok := monthsByName[strings.ToLower(strings.TrimSpace(b.ArrivalMonth))]
		if !ok || b.ArrivalYear <= 0 || b.ArrivalDay <= 0 || b.ArrivalDay > 31 {
			continue
		}
		d := time.Date(b.ArrivalYear, m, b.ArrivalDay, 0, 0, 0, 0, time.UTC)
		byDate[d] = append(byDate[d], b.ADR)
	}

	out := make([]SeriesPoint, 0, len(byDate))
	for d, adrs := range byDate {
		out = append(out, SeriesPoint{Date: d, ADR: aggregator.Median(adrs)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Signal fits a least-squares line over the (day index, ADR) series and
// projects it across the horizon. The series is scaled by the same city and
// class multipliers candidate pricing uses, so the signal reflects the
// requested context rather than the global average.
func Signal(series []SeriesPoint, horizonDays int, city string, hotelClass float64) types.ForecastSignal {
	if horizonDays <= 0 {
		horizonDays = 7
	}

	if len(series) < 2 {
		return types.ForecastSignal{
			Trend:         TrendStable,
			Confidence:    0,
			Volatility:    "LOW",
			BookingAdvice: AdviceFlexible,
			SampleDates:   len(series),
			Note:          "insufficient price history; signal quality is low",
		}
	}

	scale := candidates.CityMultiplier(city)
	if hotelClass > 0 {
		scale *= candidates.ClassMultiplier(hotelClass)
	}

	base := series[0].Date
	xs := make([]float64, len(series))
	ys := make([]float64, len(series))
	for i, p := range series {
		xs[i] = p.Date.Sub(base).Hours() / 24
		ys[i] = p.ADR * scale
	}

	slope, intercept := leastSquares(xs, ys)
	lastX := xs[len(xs)-1]
	start := intercept + slope*lastX
	end := intercept + slope*(lastX+float64(horizonDays))

	changePct := 0.0
	if start != 0 {
		changePct = (end - start) / start * 100
	}

	trend := TrendStable
	switch {
	case changePct >= config.StableBandPct:
		trend = TrendUp
	case changePct <= -config.StableBandPct:
		trend = TrendDown
	}

	cov := coefficientOfVariation(ys)
	volatility := "HIGH"
	switch {
	case cov < config.VolatilityLowCut:
		volatility = "LOW"
	case cov < config.VolatilityMediumCut:
		volatility = "MEDIUM"
	}

	// sample-count and stability terms, each clamped, then averaged
	sampleTerm := clip01(float64(len(series)) / config.ConfidenceFullDates)
	stabilityTerm := clip01(1 - cov)
	confidence := (sampleTerm + stabilityTerm) / 2

	advice := AdviceFlexible
	if confidence >= config.AdviceConfidenceCut {
		switch trend {
		case TrendUp:
			advice = AdviceBookNow
		case TrendDown:
			advice = AdviceWait
		}
	}

	return types.ForecastSignal{
		Trend:             trend,
		ExpectedChangePct: changePct,
		Confidence:        confidence,
		Volatility:        volatility,
		BookingAdvice:     advice,
		SampleDates:       len(series),
	}
}

func leastSquares(xs, ys []float64) (slope, intercept float64) {
	n := float64(len(xs))
	var sumX, sumY, sumXY, sumXX float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
	}
	den := n*sumXX - sumX*sumX
	if den == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / den
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

func coefficientOfVariation(vals []float64) float64 {
	n := float64(len(vals))
	var sum float64
	for _, v := range vals {
		sum += v
	}
	mean := sum / n
	if mean == 0 {
		return 0
	}
	var ss float64
	for _, v := range vals {
		ss += (v - mean) * (v - mean)
	}
	return math.Sqrt(ss/n) / mean
}

func clip01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

