package aggregator

import (
	"sort"
	"strings"

	"hotel-optimizer-go/internal/config"
	"hotel-optimizer-go/internal/logger"
	"hotel-optimizer-go/internal/types"
)

// Keys are case-normalized so lookups match regardless of request casing.
// Groups with no source rows are simply absent from the maps.

type CancellationKey struct {
	Hotel   string
	Segment string
	Bucket  string
}

type CancellationCell struct {
	Rate float64 `json:"cancellation_rate"`
	N    int     `json:"n"`
}

type OverbookingKey struct {
	Hotel   string
	Month   string
	Segment string
}

type OverbookingCell struct {
	ReassignmentRate float64 `json:"reassignment_rate"`
	WaitingListRate  float64 `json:"waiting_list_rate"`
	RiskScore        float64 `json:"risk_score"`
	Level            string  `json:"risk_level"`
	N                int     `json:"n"`
}

type FairnessKey struct {
	Hotel string
	Month string
}

type FairnessCell struct {
	MedianADR float64 `json:"median_adr"`
	N         int     `json:"n"`
}

type WindowKey struct {
	Hotel  string
	Month  string
	Bucket string
}

type WindowCell struct {
	MedianADR float64 `json:"median_adr"`
	N         int     `json:"n"`
}

// Tables holds the four precomputed aggregates. Built once per snapshot and
// read-only afterwards.
type Tables struct {
	Cancellation map[CancellationKey]CancellationCell
	Overbooking  map[OverbookingKey]OverbookingCell
	Fairness     map[FairnessKey]FairnessCell
	Window       map[WindowKey]WindowCell
}

// Norm is the key normalization applied to every categorical key component.
func Norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// LeadTimeBucket maps lead time in days onto the coarse closed-open buckets
// used by the cancellation table.
func LeadTimeBucket(days int) string {
	switch {
	case days <= 7:
		return "0-7"
	case days <= 30:
		return "8-30"
	case days <= 90:
		return "31-90"
	case days <= 180:
		return "91-180"
	default:
		return "181+"
	}
}

// WindowBucketOrder lists the finer booking-window buckets in ascending
// lead-time order, so selections over the window table are deterministic.
var WindowBucketOrder = []string{"0-7", "8-14", "15-21", "22-28", "29-60", "61-90", "91-180", "181+"}

// WindowBucket uses 7-day steps up to 28 days, then widening ranges and an
// open-ended 181+ tail.
func WindowBucket(days int) string {
	switch {
	case days <= 7:
		return "0-7"
	case days <= 14:
		return "8-14"
	case days <= 21:
		return "15-21"
	case days <= 28:
		return "22-28"
	case days <= 60:
		return "29-60"
	case days <= 90:
		return "61-90"
	case days <= 180:
		return "91-180"
	default:
		return "181+"
	}
}

// RiskLevel derives the overbooking tier from a score; the lower bound of
// each tier is inclusive.
func RiskLevel(score float64) string {
	switch {
	case score >= config.OverbookingHighCut:
		return "high"
	case score >= config.OverbookingMediumCut:
		return "medium"
	default:
		return "low"
	}
}

// Build scans bookings once and produces all four tables. Rows with a
// non-numeric ADR are excluded from the ADR-based aggregates (fairness,
// window) and not counted in their n; they still count toward the
// cancellation and overbooking tables, which do not read ADR.
func Build(bookings []types.BookingRecord) Tables {
	log := logger.Component("aggregator")

	t := Tables{
		Cancellation: map[CancellationKey]CancellationCell{},
		Overbooking:  map[OverbookingKey]OverbookingCell{},
		Fairness:     map[FairnessKey]FairnessCell{},
		Window:       map[WindowKey]WindowCell{},
	}

	cancelTotal := map[CancellationKey]int{}
	cancelHits := map[CancellationKey]int{}
	overTotal := map[OverbookingKey]int{}
	overReassigned := map[OverbookingKey]int{}
	overWaitlisted := map[OverbookingKey]int{}
	fairADRs := map[FairnessKey][]float64{}
	windowADRs := map[WindowKey][]float64{}

	for _, b := range bookings {
		hotel := Norm(b.Hotel)
		segment := Norm(b.MarketSegment)
		month := Norm(b.ArrivalMonth)

		ck := CancellationKey{Hotel: hotel, Segment: segment, Bucket: LeadTimeBucket(b.LeadTime)}
		cancelTotal[ck]++
		if b.IsCanceled {
			cancelHits[ck]++
		}

		ok := OverbookingKey{Hotel: hotel, Month: month, Segment: segment}
		overTotal[ok]++
		if b.ReservedRoomType != b.AssignedRoomType {
			overReassigned[ok]++
		}
		if b.DaysInWaitingList > 0 {
			overWaitlisted[ok]++
		}

		if b.ADRValid {
			fk := FairnessKey{Hotel: hotel, Month: month}
			fairADRs[fk] = append(fairADRs[fk], b.ADR)
			wk := WindowKey{Hotel: hotel, Month: month, Bucket: WindowBucket(b.LeadTime)}
			windowADRs[wk] = append(windowADRs[wk], b.ADR)
		}
	}

	for k, n := range cancelTotal {
		t.Cancellation[k] = CancellationCell{
			Rate: float64(cancelHits[k]) / float64(n),
			N:    n,
		}
	}
	for k, n := range overTotal {
		reassign := float64(overReassigned[k]) / float64(n)
		waitlist := float64(overWaitlisted[k]) / float64(n)
		score := config.ReassignmentWeight*reassign + config.WaitingListWeight*waitlist
		t.Overbooking[k] = OverbookingCell{
			ReassignmentRate: reassign,
			WaitingListRate:  waitlist,
			RiskScore:        score,
			Level:            RiskLevel(score),
			N:                n,
		}
	}
	for k, adrs := range fairADRs {
		t.Fairness[k] = FairnessCell{MedianADR: Median(adrs), N: len(adrs)}
	}
	for k, adrs := range windowADRs {
		t.Window[k] = WindowCell{MedianADR: Median(adrs), N: len(adrs)}
	}

	log.WithFields(map[string]interface{}{
		"bookings":           len(bookings),
		"cancellation_cells": len(t.Cancellation),
		"overbooking_cells":  len(t.Overbooking),
		"fairness_cells":     len(t.Fairness),
		"window_cells":       len(t.Window),
	}).Info("aggregation tables built")
	return t
}

// Median over a copy of the values; median over mean keeps tail fares from
// skewing the baselines.
func Median(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	s := make([]float64, len(vals))
	copy(s, vals)
	sort.Float64s(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}
	return (s[mid-1] + s[mid]) / 2
}
