package insights

import (
	"testing"

	"hotel-optimizer-go/internal/aggregator"
)

func windowKey(bucket string) aggregator.WindowKey {
	return aggregator.WindowKey{Hotel: "resort hotel", Month: "august", Bucket: bucket}
}

func TestBestBookingWindowPicksCheapestQualifyingBucket(t *testing.T) {
	table := map[aggregator.WindowKey]aggregator.WindowCell{
		windowKey("0-7"):   {MedianADR: 150, N: 400},
		windowKey("22-28"): {MedianADR: 95, N: 300},
		windowKey("61-90"): {MedianADR: 120, N: 250},
		windowKey("181+"):  {MedianADR: 60, N: 50}, // cheapest, but too few samples
	}
	res := BestBookingWindow(table, "Resort Hotel", "August", 200)
	if !res.Recommended {
		t.Fatal("expected a recommendation")
	}
	if res.RecommendedWindowDays != "22-28" {
		t.Errorf("window = %q, want 22-28 (cheapest with enough samples)", res.RecommendedWindowDays)
	}
	if res.MinMedianADR != 95 {
		t.Errorf("min median = %v, want 95", res.MinMedianADR)
	}
	if res.Confidence <= 0 || res.Confidence > 1 {
		t.Errorf("confidence %v outside (0,1]", res.Confidence)
	}
}

func TestBestBookingWindowNoQualifyingBucket(t *testing.T) {
	table := map[aggregator.WindowKey]aggregator.WindowCell{
		windowKey("0-7"):  {MedianADR: 150, N: 10},
		windowKey("8-14"): {MedianADR: 90, N: 30},
	}
	res := BestBookingWindow(table, "Resort Hotel", "August", 200)
	if res.Recommended {
		t.Error("no bucket meets the sample threshold; must not pick an arbitrary one")
	}
	if res.Message == "" {
		t.Error("no-recommendation outcome must explain itself")
	}
	if res.Confidence != 0 {
		t.Errorf("confidence = %v, want 0 when nothing qualifies", res.Confidence)
	}
}

func TestBestBookingWindowSingleQualifyingBucket(t *testing.T) {
	table := map[aggregator.WindowKey]aggregator.WindowCell{
		windowKey("0-7"):   {MedianADR: 150, N: 10},
		windowKey("29-60"): {MedianADR: 110, N: 500},
	}
	res := BestBookingWindow(table, "Resort Hotel", "August", 200)
	if !res.Recommended || res.RecommendedWindowDays != "29-60" {
		t.Fatalf("expected the only qualifying bucket 29-60, got %+v", res)
	}
	// full sample weight, zero price separation
	if res.Confidence != 0.5 {
		t.Errorf("confidence = %v, want 0.5 for a single qualifying bucket", res.Confidence)
	}
}

func TestBestBookingWindowDefaultMinSamples(t *testing.T) {
	table := map[aggregator.WindowKey]aggregator.WindowCell{
		windowKey("0-7"): {MedianADR: 150, N: 199},
	}
	res := BestBookingWindow(table, "Resort Hotel", "August", 0)
	if res.Recommended {
		t.Error("199 samples must not qualify under the default threshold of 200")
	}
}

func TestBestBookingWindowDeterministicOnTies(t *testing.T) {
	table := map[aggregator.WindowKey]aggregator.WindowCell{
		windowKey("0-7"):  {MedianADR: 100, N: 300},
		windowKey("8-14"): {MedianADR: 100, N: 300},
	}
	first := BestBookingWindow(table, "Resort Hotel", "August", 200)
	for i := 0; i < 10; i++ {
		again := BestBookingWindow(table, "Resort Hotel", "August", 200)
		if again.RecommendedWindowDays != first.RecommendedWindowDays {
			t.Fatalf("tie broken differently across calls: %q vs %q", again.RecommendedWindowDays, first.RecommendedWindowDays)
		}
	}
	if first.RecommendedWindowDays != "0-7" {
		t.Errorf("median tie should resolve to the earliest bucket in order, got %q", first.RecommendedWindowDays)
	}
}
