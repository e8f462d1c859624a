// internal/types/results.go
package types

// --------------------------------------------
// Recommendation request (all filters optional;
// an unset filter is a no-op)
// --------------------------------------------
type RecommendationRequest struct {
	City      string   `json:"city,omitempty"`
	Budget    *float64 `json:"budget,omitempty"`
	MinRating *float64 `json:"min_rating,omitempty"`
	Adults    *int     `json:"adults,omitempty"`
	Children  *int     `json:"children,omitempty"`
	Meal      string   `json:"meal,omitempty"`
	HotelType string   `json:"hotel_type,omitempty"`
	Limit     int      `json:"limit,omitempty"`
}

// --------------------------------------------
// Ranked recommendation row
// --------------------------------------------
type ScoredCandidate struct {
	Candidate
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// --------------------------------------------
// Cancellation risk estimate
// --------------------------------------------
type CancellationRisk struct {
	HotelType        string  `json:"hotel_type"`
	MarketSegment    string  `json:"market_segment,omitempty"`
	LeadTimeBucket   string  `json:"lead_time_bucket"`
	CancellationRate float64 `json:"cancellation_rate"`
	TotalBookings    int     `json:"total_bookings"`
	Fallback         bool    `json:"fallback"`
	Advice           string  `json:"advice"`
}

// --------------------------------------------
// Overbooking proxy estimate
// --------------------------------------------
type OverbookingRisk struct {
	HotelType        string  `json:"hotel_type"`
	ArrivalMonth     string  `json:"arrival_month"`
	MarketSegment    string  `json:"market_segment,omitempty"`
	ReassignmentRate float64 `json:"reassignment_rate"`
	WaitingListRate  float64 `json:"waiting_list_rate"`
	RiskScore        float64 `json:"risk_score"`
	RiskLevel        string  `json:"risk_level"` // low|medium|high
	TotalBookings    int     `json:"total_bookings"`
	Advice           string  `json:"advice"`
}

// --------------------------------------------
// Price fairness verdict
// --------------------------------------------
type PriceFairness struct {
	HotelType     string  `json:"hotel_type"`
	ArrivalMonth  string  `json:"arrival_month"`
	CurrentPrice  float64 `json:"current_price"`
	ExpectedPrice float64 `json:"expected_price"`
	Ratio         float64 `json:"ratio"`
	PctDiff       float64 `json:"pct_diff"`
	Label         string  `json:"label"`
	Color         string  `json:"color"` // green|yellow|red
	Message       string  `json:"message"`
	TotalBookings int     `json:"total_bookings"`
}

// --------------------------------------------
// Best booking window recommendation.
// Recommended is false when no lead-time bucket
// has enough samples to say anything.
// --------------------------------------------
type BookingWindow struct {
	HotelType             string  `json:"hotel_type"`
	ArrivalMonth          string  `json:"arrival_month"`
	Recommended           bool    `json:"recommended"`
	RecommendedWindowDays string  `json:"recommended_window_days,omitempty"`
	MinMedianADR          float64 `json:"min_median_adr,omitempty"`
	Confidence            float64 `json:"confidence"`
	Message               string  `json:"message"`
}

// --------------------------------------------
// Forecast signal
// --------------------------------------------
type ForecastSignal struct {
	Trend             string  `json:"trend"`      // UP|DOWN|STABLE
	ExpectedChangePct float64 `json:"expected_change_pct"`
	Confidence        float64 `json:"confidence"` // 0..1
	Volatility        string  `json:"volatility"` // LOW|MEDIUM|HIGH
	BookingAdvice     string  `json:"booking_advice"` // BOOK_NOW|WAIT|FLEXIBLE_BOOKING
	SampleDates       int     `json:"sample_dates"`
	Note              string  `json:"note,omitempty"`
}
