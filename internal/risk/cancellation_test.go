package risk

import (
	"math"
	"strings"
	"testing"

	"hotel-optimizer-go/internal/aggregator"
)

func cancellationTable() map[aggregator.CancellationKey]aggregator.CancellationCell {
	return map[aggregator.CancellationKey]aggregator.CancellationCell{
		{Hotel: "resort hotel", Segment: "online ta", Bucket: "0-7"}:  {Rate: 0.10, N: 100},
		{Hotel: "resort hotel", Segment: "groups", Bucket: "0-7"}:    {Rate: 0.50, N: 300},
		{Hotel: "city hotel", Segment: "online ta", Bucket: "31-90"}: {Rate: 0.45, N: 800},
	}
}

func TestEstimateCancellationExactHit(t *testing.T) {
	res, ok := EstimateCancellation(cancellationTable(), "Resort Hotel", "Online TA", 5)
	if !ok {
		t.Fatal("expected a result for an existing cell")
	}
	if res.Fallback {
		t.Error("exact cell hit must not be tagged as fallback")
	}
	if res.CancellationRate != 0.10 || res.TotalBookings != 100 {
		t.Errorf("got rate=%v n=%d, want rate=0.10 n=100", res.CancellationRate, res.TotalBookings)
	}
	if res.LeadTimeBucket != "0-7" {
		t.Errorf("bucket = %q, want 0-7", res.LeadTimeBucket)
	}
}

func TestEstimateCancellationRelaxesSegment(t *testing.T) {
	res, ok := EstimateCancellation(cancellationTable(), "Resort Hotel", "Direct", 5)
	if !ok {
		t.Fatal("expected a fallback result")
	}
	if !res.Fallback {
		t.Error("widened lookup must be tagged as fallback")
	}
	// count-weighted merge of the two resort 0-7 cells
	want := (0.10*100 + 0.50*300) / 400
	if math.Abs(res.CancellationRate-want) > 1e-9 {
		t.Errorf("merged rate = %v, want %v", res.CancellationRate, want)
	}
	if res.TotalBookings != 400 {
		t.Errorf("merged n = %d, want 400", res.TotalBookings)
	}
}

func TestEstimateCancellationRelaxesHotelType(t *testing.T) {
	res, ok := EstimateCancellation(cancellationTable(), "Hostel", "Direct", 45)
	if !ok {
		t.Fatal("expected a fallback result across hotel types")
	}
	if !res.Fallback {
		t.Error("hotel-type-relaxed lookup must be tagged as fallback")
	}
	if res.CancellationRate != 0.45 || res.TotalBookings != 800 {
		t.Errorf("got rate=%v n=%d, want the only 31-90 cell (0.45, 800)", res.CancellationRate, res.TotalBookings)
	}
}

func TestEstimateCancellationEmptyTable(t *testing.T) {
	if _, ok := EstimateCancellation(map[aggregator.CancellationKey]aggregator.CancellationCell{}, "Resort Hotel", "Direct", 5); ok {
		t.Error("empty table must report no result, not a fabricated one")
	}
}

func TestCancellationAdviceThresholds(t *testing.T) {
	tests := []struct {
		rate     float64
		contains string
	}{
		{0.55, "high cancellation risk"},
		{0.40, "high cancellation risk"},
		{0.25, "moderate cancellation risk"},
		{0.05, "low cancellation risk"},
	}
	for _, tt := range tests {
		if got := cancellationAdvice(tt.rate); !strings.Contains(got, tt.contains) {
			t.Errorf("cancellationAdvice(%v) = %q, want it to mention %q", tt.rate, got, tt.contains)
		}
	}
}

func TestEstimateCancellationNegativeLeadTime(t *testing.T) {
	// parameter misuse degrades gracefully: negative lead time clamps to 0
	res, ok := EstimateCancellation(cancellationTable(), "Resort Hotel", "Online TA", -3)
	if !ok || res.LeadTimeBucket != "0-7" {
		t.Errorf("negative lead time should resolve to the 0-7 bucket, got %+v ok=%v", res, ok)
	}
}
