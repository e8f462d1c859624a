package candidates

import (
	"strings"
	"unicode"

	"hotel-optimizer-go/internal/config"
	"hotel-optimizer-go/internal/logger"
	"hotel-optimizer-go/internal/types"
)

// ParseLocality extracts the city token from a free-text address: the first
// comma-delimited segment, trimmed and title-cased. It never fails; with no
// delimiter the whole address stands in for the locality.
func ParseLocality(address string) string {
	seg := address
	if i := strings.Index(address, ","); i >= 0 {
		seg = address[:i]
	}
	return titleCase(strings.TrimSpace(seg))
}

// ClassMultiplier scales the ADR baseline around the configured class base.
func ClassMultiplier(hotelClass float64) float64 {
	return clip(hotelClass/config.ClassBase, config.ClassMultMin, config.ClassMultMax)
}

// CityMultiplier is 1.0 for any locality without a configured price level.
func CityMultiplier(city string) float64 {
	if m, ok := config.CityMultipliers[strings.ToLower(strings.TrimSpace(city))]; ok {
		return m
	}
	return 1.0
}

// Prepare joins offerings with review summaries (left join) and derives the
// price estimate per offering. Output order matches offering input order.
func Prepare(offerings []types.OfferingRecord, reviews []types.ReviewSummaryRecord) []types.Candidate {
	log := logger.Component("candidates")

	byOffering := make(map[string]types.ReviewSummaryRecord, len(reviews))
	for _, r := range reviews {
		if _, dup := byOffering[r.OfferingID]; !dup {
			byOffering[r.OfferingID] = r
		}
	}

	baseline := config.GlobalADRBaseline()
	out := make([]types.Candidate, 0, len(offerings))
	for _, o := range offerings {
		city := ParseLocality(o.Address)
		estimate := baseline * ClassMultiplier(o.HotelClass) * CityMultiplier(city)
		c := types.Candidate{
			OfferingID:      o.ID,
			Hotel:           o.Name,
			City:            city,
			HotelClass:      o.HotelClass,
			ADR:             estimate,
			ADRLow:          estimate * (1 - config.PriceBandSpread),
			ADRHigh:         estimate * (1 + config.PriceBandSpread),
			PriceConfidence: "low",
			URL:             o.URL,
		}
		if r, ok := byOffering[o.ID]; ok {
			sent, rating := r.SentimentScore, r.AvgRating
			c.HasReview = true
			c.PriceConfidence = "medium"
			c.SentimentScore = &sent
			c.AvgRating = &rating
			c.ReviewCount = r.ReviewCount
			c.Pros = r.Pros
			c.Cons = r.Cons
		}
		out = append(out, c)
	}

	log.WithFields(map[string]interface{}{
		"offerings":  len(offerings),
		"reviews":    len(reviews),
		"candidates": len(out),
	}).Info("candidates prepared")
	return out
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
