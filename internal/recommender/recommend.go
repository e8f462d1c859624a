package recommender

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"hotel-optimizer-go/internal/config"
	"hotel-optimizer-go/internal/types"
)

const defaultLimit = 10

// subScores holds the raw signal values for one candidate; a nil entry
// means the signal is unavailable and its weight is renormalized away.
type subScores struct {
	price     *float64
	sentiment *float64
	rating    *float64
	reviews   *float64
}

// Recommend filters candidates by the request, scores the survivors with a
// weighted sum of rescaled sub-scores and returns the top results with an
// explanation each. Identical input always yields identical ordering.
func Recommend(cands []types.Candidate, req types.RecommendationRequest) []types.ScoredCandidate {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	filtered := filter(cands, req)
	if len(filtered) == 0 {
		return nil
	}

	raw := make([]subScores, len(filtered))
	for i, c := range filtered {
		if req.Budget != nil && *req.Budget > 0 {
			// closeness to budget; rescaling below turns it into [0,1]
			gap := -math.Abs(c.ADR - *req.Budget)
			raw[i].price = &gap
		}
		if c.SentimentScore != nil {
			v := *c.SentimentScore
			raw[i].sentiment = &v
		}
		if c.AvgRating != nil {
			v := *c.AvgRating
			raw[i].rating = &v
		}
		if c.HasReview {
			vol := float64(c.ReviewCount)
			raw[i].reviews = &vol
		}
	}

	rescale(raw, func(s *subScores) **float64 { return &s.price })
	rescale(raw, func(s *subScores) **float64 { return &s.sentiment })
	rescale(raw, func(s *subScores) **float64 { return &s.rating })
	rescale(raw, func(s *subScores) **float64 { return &s.reviews })

	out := make([]types.ScoredCandidate, len(filtered))
	for i, c := range filtered {
		out[i] = types.ScoredCandidate{
			Candidate: c,
			Score:     fuse(raw[i]),
			Reason:    buildReason(c, req),
		}
	}

	// stable sort keeps original candidate order as the final tie-break
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ReviewCount > out[j].ReviewCount
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func filter(cands []types.Candidate, req types.RecommendationRequest) []types.Candidate {
	city := strings.ToLower(strings.TrimSpace(req.City))
	var out []types.Candidate
	for _, c := range cands {
		if city != "" && strings.ToLower(c.City) != city {
			continue
		}
		// budget compares against the low end of the band, so borderline
		// candidates are not unfairly excluded
		if req.Budget != nil && *req.Budget > 0 && c.ADRLow > *req.Budget {
			continue
		}
		if req.MinRating != nil && *req.MinRating > 0 {
			if c.AvgRating == nil || *c.AvgRating < *req.MinRating {
				continue
			}
		}
		// adults/children/meal/hotel_type are accepted for contract
		// compatibility but candidates carry no capacity, board or
		// city/resort category data to filter on
		out = append(out, c)
	}
	return out
}

// rescale maps one signal linearly onto [0,1] within the filtered set.
// A constant signal carries no ranking information; it collapses to 0.5.
func rescale(raw []subScores, sel func(*subScores) **float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	n := 0
	for i := range raw {
		if v := *sel(&raw[i]); v != nil {
			lo = math.Min(lo, *v)
			hi = math.Max(hi, *v)
			n++
		}
	}
	if n == 0 {
		return
	}
	for i := range raw {
		p := sel(&raw[i])
		if *p == nil {
			continue
		}
		scaled := 0.5
		if hi > lo {
			scaled = (**p - lo) / (hi - lo)
		}
		**p = scaled
	}
}

// fuse renormalizes the weights over the available signals so candidates
// with sparse data still get a comparable score.
func fuse(s subScores) float64 {
	sum, wsum := 0.0, 0.0
	add := func(v *float64, w float64) {
		if v != nil {
			sum += *v * w
			wsum += w
		}
	}
	add(s.price, config.WeightPriceMatch)
	add(s.sentiment, config.WeightSentiment)
	add(s.rating, config.WeightRating)
	add(s.reviews, config.WeightReviewVolume)
	if wsum == 0 {
		return 0
	}
	return sum / wsum
}

// buildReason assembles the explanation from whichever signals exist; a
// candidate without review data gets a thinner reason, never no row.
func buildReason(c types.Candidate, req types.RecommendationRequest) string {
	var parts []string
	if c.SentimentScore != nil && *c.SentimentScore >= 0.5 {
		parts = append(parts, fmt.Sprintf("strong guest sentiment (%.2f)", *c.SentimentScore))
	}
	if c.AvgRating != nil && *c.AvgRating > 0 {
		parts = append(parts, fmt.Sprintf("rated %.1f across %d reviews", *c.AvgRating, c.ReviewCount))
	}
	if req.Budget != nil && *req.Budget > 0 && c.ADRLow <= *req.Budget {
		parts = append(parts, fmt.Sprintf("fits your budget (from %.0f)", c.ADRLow))
	}
	if len(c.Pros) > 0 {
		top := c.Pros
		if len(top) > 2 {
			top = top[:2]
		}
		parts = append(parts, "guests highlight: "+strings.Join(top, ", "))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("limited review data; estimated rate around %.0f", c.ADR)
	}
	return strings.Join(parts, "; ")
}
