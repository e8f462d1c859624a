package risk

import (
	"fmt"

	"hotel-optimizer-go/internal/aggregator"
	"hotel-optimizer-go/internal/config"
	"hotel-optimizer-go/internal/types"
)

// EstimateCancellation looks up the cancellation table by (hotel type,
// market segment, lead-time bucket). A miss widens progressively: first the
// market segment is relaxed, then the hotel type, merging the remaining
// cells weighted by their counts. A widened result is tagged as a fallback.
// ok is false only when even the widest aggregate has no rows.
func EstimateCancellation(table map[aggregator.CancellationKey]aggregator.CancellationCell, hotelType, marketSegment string, leadTime int) (types.CancellationRisk, bool) {
	if leadTime < 0 {
		leadTime = 0
	}
	hotel := aggregator.Norm(hotelType)
	segment := aggregator.Norm(marketSegment)
	bucket := aggregator.LeadTimeBucket(leadTime)

	res := types.CancellationRisk{
		HotelType:      hotelType,
		MarketSegment:  marketSegment,
		LeadTimeBucket: bucket,
	}

	if cell, ok := table[aggregator.CancellationKey{Hotel: hotel, Segment: segment, Bucket: bucket}]; ok && cell.N > 0 {
		res.CancellationRate = cell.Rate
		res.TotalBookings = cell.N
		res.Advice = cancellationAdvice(cell.Rate)
		return res, true
	}

	// relax market segment, then hotel type
	for _, match := range []func(aggregator.CancellationKey) bool{
		func(k aggregator.CancellationKey) bool { return k.Hotel == hotel && k.Bucket == bucket },
		func(k aggregator.CancellationKey) bool { return k.Bucket == bucket },
	} {
		if rate, n := mergeCells(table, match); n > 0 {
			res.CancellationRate = rate
			res.TotalBookings = n
			res.Fallback = true
			res.Advice = cancellationAdvice(rate)
			return res, true
		}
	}
	return types.CancellationRisk{}, false
}

func mergeCells(table map[aggregator.CancellationKey]aggregator.CancellationCell, match func(aggregator.CancellationKey) bool) (rate float64, n int) {
	var hits float64
	for k, cell := range table {
		if !match(k) {
			continue
		}
		hits += cell.Rate * float64(cell.N)
		n += cell.N
	}
	if n == 0 {
		return 0, 0
	}
	return hits / float64(n), n
}

func cancellationAdvice(rate float64) string {
	switch {
	case rate >= config.CancellationHighCut:
		return fmt.Sprintf("high cancellation risk (%.0f%%), consider flexible refund terms", rate*100)
	case rate >= config.CancellationModerateCut:
		return fmt.Sprintf("moderate cancellation risk (%.0f%%), a refundable rate may be worth it", rate*100)
	default:
		return fmt.Sprintf("low cancellation risk (%.0f%%), standard terms should be fine", rate*100)
	}
}
