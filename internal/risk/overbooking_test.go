package risk

import (
	"math"
	"testing"

	"hotel-optimizer-go/internal/aggregator"
)

func overbookingTable() map[aggregator.OverbookingKey]aggregator.OverbookingCell {
	return map[aggregator.OverbookingKey]aggregator.OverbookingCell{
		{Hotel: "city hotel", Month: "august", Segment: "online ta"}: {
			ReassignmentRate: 0.20, WaitingListRate: 0.10, RiskScore: 0.17, Level: "medium", N: 500,
		},
		{Hotel: "city hotel", Month: "august", Segment: "groups"}: {
			ReassignmentRate: 0.40, WaitingListRate: 0.30, RiskScore: 0.37, Level: "high", N: 100,
		},
	}
}

func TestEstimateOverbookingExactSegment(t *testing.T) {
	res, ok := EstimateOverbooking(overbookingTable(), "City Hotel", "August", "Online TA", Adjustments{})
	if !ok {
		t.Fatal("expected a result")
	}
	want := 0.7*0.20 + 0.3*0.10
	if math.Abs(res.RiskScore-want) > 1e-9 {
		t.Errorf("score = %v, want %v", res.RiskScore, want)
	}
	if res.RiskLevel != "medium" {
		t.Errorf("level = %q, want medium", res.RiskLevel)
	}
	if res.TotalBookings != 500 {
		t.Errorf("n = %d, want 500", res.TotalBookings)
	}
}

func TestEstimateOverbookingMergesSegments(t *testing.T) {
	res, ok := EstimateOverbooking(overbookingTable(), "City Hotel", "August", "", Adjustments{})
	if !ok {
		t.Fatal("expected a merged result")
	}
	if res.TotalBookings != 600 {
		t.Errorf("merged n = %d, want 600", res.TotalBookings)
	}
	wantReassign := (0.20*500 + 0.40*100) / 600
	if math.Abs(res.ReassignmentRate-wantReassign) > 1e-9 {
		t.Errorf("merged reassignment rate = %v, want %v", res.ReassignmentRate, wantReassign)
	}
}

func TestEstimateOverbookingRepeatedGuestAdjustment(t *testing.T) {
	base, _ := EstimateOverbooking(overbookingTable(), "City Hotel", "August", "Online TA", Adjustments{})
	repeat, _ := EstimateOverbooking(overbookingTable(), "City Hotel", "August", "Online TA", Adjustments{IsRepeatedGuest: true})
	if math.Abs((base.RiskScore-repeat.RiskScore)-0.03) > 1e-9 {
		t.Errorf("repeated guest should lower the score by 0.03: base=%v adjusted=%v", base.RiskScore, repeat.RiskScore)
	}
}

func TestEstimateOverbookingPreviousCancellationsCapped(t *testing.T) {
	one, _ := EstimateOverbooking(overbookingTable(), "City Hotel", "August", "Online TA", Adjustments{PreviousCancellations: 1})
	many, _ := EstimateOverbooking(overbookingTable(), "City Hotel", "August", "Online TA", Adjustments{PreviousCancellations: 50})
	base, _ := EstimateOverbooking(overbookingTable(), "City Hotel", "August", "Online TA", Adjustments{})

	if math.Abs((one.RiskScore-base.RiskScore)-0.02) > 1e-9 {
		t.Errorf("one prior cancellation should add 0.02, got +%v", one.RiskScore-base.RiskScore)
	}
	if math.Abs((many.RiskScore-base.RiskScore)-0.10) > 1e-9 {
		t.Errorf("adjustment must cap at +0.10, got +%v", many.RiskScore-base.RiskScore)
	}
}

func TestEstimateOverbookingLevelRederived(t *testing.T) {
	// base score 0.17 (medium); enough priors push it past the 0.25 high cut
	table := overbookingTable()
	res, _ := EstimateOverbooking(table, "City Hotel", "August", "Online TA", Adjustments{PreviousCancellations: 5})
	if res.RiskScore < 0.25 {
		t.Fatalf("score = %v, expected it to cross the high threshold", res.RiskScore)
	}
	if res.RiskLevel != "high" {
		t.Errorf("level = %q, want high after adjustment", res.RiskLevel)
	}
}

func TestEstimateOverbookingScoreClamped(t *testing.T) {
	table := map[aggregator.OverbookingKey]aggregator.OverbookingCell{
		{Hotel: "city hotel", Month: "august", Segment: "direct"}: {
			ReassignmentRate: 0.0, WaitingListRate: 0.0, N: 10,
		},
	}
	res, _ := EstimateOverbooking(table, "City Hotel", "August", "Direct", Adjustments{IsRepeatedGuest: true})
	if res.RiskScore < 0 || res.RiskScore > 1 {
		t.Errorf("score %v outside [0,1]", res.RiskScore)
	}
	if res.RiskScore != 0 {
		t.Errorf("score = %v, want clamp to 0", res.RiskScore)
	}
}

func TestEstimateOverbookingNoData(t *testing.T) {
	if _, ok := EstimateOverbooking(overbookingTable(), "Resort Hotel", "January", "", Adjustments{}); ok {
		t.Error("no matching cells must report no result")
	}
}
