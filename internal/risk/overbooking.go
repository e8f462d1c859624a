package risk

import (
	"fmt"

	"hotel-optimizer-go/internal/aggregator"
	"hotel-optimizer-go/internal/config"
	"hotel-optimizer-go/internal/types"
)

// Adjustments shifts the table score for guest-specific factors before the
// level is re-derived with the standard thresholds.
type Adjustments struct {
	IsRepeatedGuest       bool
	PreviousCancellations int
}

// EstimateOverbooking looks up the proxy table by (hotel type, arrival
// month, market segment). An empty segment, or one with no cell, merges all
// segments for the (hotel, month) pair weighted by count. ok is false when
// no cell matches at all.
func EstimateOverbooking(table map[aggregator.OverbookingKey]aggregator.OverbookingCell, hotelType, arrivalMonth, marketSegment string, adj Adjustments) (types.OverbookingRisk, bool) {
	hotel := aggregator.Norm(hotelType)
	month := aggregator.Norm(arrivalMonth)
	segment := aggregator.Norm(marketSegment)

	var reassign, waitlist float64
	n := 0
	if segment != "" {
		if cell, ok := table[aggregator.OverbookingKey{Hotel: hotel, Month: month, Segment: segment}]; ok {
			reassign, waitlist, n = cell.ReassignmentRate, cell.WaitingListRate, cell.N
		}
	}
	if n == 0 {
		var rSum, wSum float64
		for k, cell := range table {
			if k.Hotel != hotel || k.Month != month {
				continue
			}
			rSum += cell.ReassignmentRate * float64(cell.N)
			wSum += cell.WaitingListRate * float64(cell.N)
			n += cell.N
		}
		if n == 0 {
			return types.OverbookingRisk{}, false
		}
		reassign = rSum / float64(n)
		waitlist = wSum / float64(n)
	}

	score := config.ReassignmentWeight*reassign + config.WaitingListWeight*waitlist
	if adj.IsRepeatedGuest {
		score += config.RepeatedGuestAdj
	}
	if adj.PreviousCancellations > 0 {
		bump := config.PrevCancellationAdj * float64(adj.PreviousCancellations)
		if bump > config.PrevCancellationCap {
			bump = config.PrevCancellationCap
		}
		score += bump
	}
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	level := aggregator.RiskLevel(score)
	return types.OverbookingRisk{
		HotelType:        hotelType,
		ArrivalMonth:     arrivalMonth,
		MarketSegment:    marketSegment,
		ReassignmentRate: reassign,
		WaitingListRate:  waitlist,
		RiskScore:        score,
		RiskLevel:        level,
		TotalBookings:    n,
		Advice:           overbookingAdvice(level, reassign),
	}, true
}

func overbookingAdvice(level string, reassign float64) string {
	switch level {
	case "high":
		return fmt.Sprintf("high overbooking pressure; %.0f%% of similar bookings were moved to another room type, confirm your room directly with the hotel", reassign*100)
	case "medium":
		return "some overbooking pressure in this month; reconfirming your reservation close to arrival is sensible"
	default:
		return "low overbooking pressure; room reassignment is unlikely"
	}
}
