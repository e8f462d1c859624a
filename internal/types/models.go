package types

// BookingRecord is one historical stay row. Loaded once per process and
// never mutated afterwards.
type BookingRecord struct {
	Hotel                 string  `json:"hotel"`
	IsCanceled            bool    `json:"is_canceled"`
	LeadTime              int     `json:"lead_time"`
	ArrivalYear           int     `json:"arrival_date_year"`
	ArrivalMonth          string  `json:"arrival_date_month"`
	ArrivalDay            int     `json:"arrival_date_day_of_month"`
	MarketSegment         string  `json:"market_segment"`
	ADR                   float64 `json:"adr"`
	ADRValid              bool    `json:"-"`
	ReservedRoomType      string  `json:"reserved_room_type"`
	AssignedRoomType      string  `json:"assigned_room_type"`
	DaysInWaitingList     int     `json:"days_in_waiting_list"`
	IsRepeatedGuest       bool    `json:"is_repeated_guest"`
	PreviousCancellations int     `json:"previous_cancellations"`
}

type OfferingRecord struct {
	ID         string  `json:"id"`
	Name       string  `json:"hotel"`
	HotelClass float64 `json:"hotel_class"`
	Address    string  `json:"address"`
	URL        string  `json:"url,omitempty"`
}

type ReviewSummaryRecord struct {
	OfferingID     string   `json:"offering_id"`
	SentimentScore float64  `json:"sentiment_score"`
	AvgRating      float64  `json:"avg_rating"`
	ReviewCount    int      `json:"n_reviews"`
	Pros           []string `json:"pros,omitempty"`
	Cons           []string `json:"cons,omitempty"`
}

// Candidate is an offering joined with its review summary (when one exists)
// plus the derived price estimate. Review fields are nil when no review row
// matched; the price band is always populated.
type Candidate struct {
	OfferingID      string   `json:"id"`
	Hotel           string   `json:"hotel"`
	City            string   `json:"city"`
	HotelClass      float64  `json:"hotel_class"`
	ADR             float64  `json:"adr"`
	ADRLow          float64  `json:"adr_low"`
	ADRHigh         float64  `json:"adr_high"`
	PriceConfidence string   `json:"price_confidence"` // low|medium
	URL             string   `json:"url,omitempty"`
	HasReview       bool     `json:"-"`
	SentimentScore  *float64 `json:"sentiment_score,omitempty"`
	AvgRating       *float64 `json:"avg_rating,omitempty"`
	ReviewCount     int      `json:"n_reviews"`
	Pros            []string `json:"pros,omitempty"`
	Cons            []string `json:"cons,omitempty"`
}
