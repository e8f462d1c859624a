package insights

import (
	"fmt"

	"hotel-optimizer-go/internal/aggregator"
	"hotel-optimizer-go/internal/config"
	"hotel-optimizer-go/internal/types"
)

// BestBookingWindow picks the lead-time bucket with the lowest median ADR
// for (hotel type, arrival month), considering only buckets with at least
// minSamples bookings. When no bucket qualifies the result says so instead
// of guessing. Buckets are walked in fixed order, so the answer is
// deterministic even on median ties.
func BestBookingWindow(table map[aggregator.WindowKey]aggregator.WindowCell, hotelType, arrivalMonth string, minSamples int) types.BookingWindow {
	if minSamples <= 0 {
		minSamples = config.DefaultMinWindowSamples
	}
	hotel := aggregator.Norm(hotelType)
	month := aggregator.Norm(arrivalMonth)

	res := types.BookingWindow{HotelType: hotelType, ArrivalMonth: arrivalMonth}

	bestBucket := ""
	var bestCell aggregator.WindowCell
	maxN := 0
	minMedian, maxMedian := 0.0, 0.0
	qualifying := 0
	for _, bucket := range aggregator.WindowBucketOrder {
		cell, ok := table[aggregator.WindowKey{Hotel: hotel, Month: month, Bucket: bucket}]
		if !ok || cell.N < minSamples {
			continue
		}
		qualifying++
		if cell.N > maxN {
			maxN = cell.N
		}
		if qualifying == 1 || cell.MedianADR < minMedian {
			minMedian = cell.MedianADR
		}
		if qualifying == 1 || cell.MedianADR > maxMedian {
			maxMedian = cell.MedianADR
		}
		if bestBucket == "" || cell.MedianADR < bestCell.MedianADR {
			bestBucket = bucket
			bestCell = cell
		}
	}

	if qualifying == 0 {
		res.Message = fmt.Sprintf("not enough historical bookings for %s in %s to recommend a window; try lowering min_samples", hotelType, arrivalMonth)
		return res
	}

	// confidence blends the winning bucket's sample weight with how much
	// price separation actually exists between qualifying buckets
	sampleTerm := float64(bestCell.N) / float64(maxN)
	separation := 0.0
	if maxMedian > 0 {
		separation = (maxMedian - minMedian) / maxMedian
	}
	confidence := (sampleTerm + separation) / 2
	if confidence > 1 {
		confidence = 1
	}

	res.Recommended = true
	res.RecommendedWindowDays = bestBucket
	res.MinMedianADR = bestCell.MedianADR
	res.Confidence = confidence
	res.Message = fmt.Sprintf("booking %s days before arrival has had the lowest median rate (%.2f, from %d bookings)", bestBucket, bestCell.MedianADR, bestCell.N)
	return res
}
