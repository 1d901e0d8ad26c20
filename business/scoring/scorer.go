package scoring

import (
	"fmt"
	"math"

	"myStorefront/domain"
)

// Rule weights. All five firing yields a raw score of 100.
const (
	WeightCategory = 40.0
	WeightPrice    = 25.0
	WeightFeatures = 20.0
	WeightRating   = 10.0
	WeightQuality  = 5.0

	priceLowerFactor = 0.7
	priceUpperFactor = 1.3
	ratingTolerance  = 0.5
	qualityMinRating = 4.0

	// float slack so a 0.5 gap computed from decimals like 4.6-4.1 still counts
	epsilon = 1e-9

	MaxConfidence = 100
)

const (
	reasonPriceRange = "similar price range"
	reasonRating     = "similar rating"
	reasonQuality    = "high rated and in stock"
)

// referenceProfile is everything ScoreItem needs from the reference set,
// computed once per ranking pass.
type referenceProfile struct {
	ids        map[string]struct{}
	categories map[string]struct{}
	minPrice   float64
	maxPrice   float64
	features   map[string]struct{}
	avgRating  float64
	size       int
}

func buildProfile(reference []domain.Item) referenceProfile {
	p := referenceProfile{
		ids:        make(map[string]struct{}, len(reference)),
		categories: make(map[string]struct{}, len(reference)),
		features:   make(map[string]struct{}),
		size:       len(reference),
	}
	if len(reference) == 0 {
		return p
	}

	p.minPrice = math.Inf(1)
	p.maxPrice = math.Inf(-1)
	ratingSum := 0.0

	for _, it := range reference {
		p.ids[it.ID] = struct{}{}
		p.categories[it.Category] = struct{}{}
		p.minPrice = math.Min(p.minPrice, it.Price)
		p.maxPrice = math.Max(p.maxPrice, it.Price)
		ratingSum += it.Rating
		for _, f := range it.Features {
			p.features[f] = struct{}{}
		}
	}
	p.avgRating = ratingSum / float64(len(reference))

	return p
}

// ScoreItem scores candidate against the reference set. The result can reach
// 100; RankRecommendations applies the display ceiling. An empty reference set
// yields a zero score with the fallback reason, callers are expected to skip.
func ScoreItem(reference []domain.Item, candidate domain.Item) domain.ScoredCandidate {
	return buildProfile(reference).score(candidate)
}

func (p referenceProfile) score(candidate domain.Item) domain.ScoredCandidate {
	out := domain.ScoredCandidate{Item: candidate, Reasons: []string{}}
	if p.size == 0 {
		return out
	}

	sum := 0.0

	if _, ok := p.categories[candidate.Category]; ok {
		sum += WeightCategory
		out.Reasons = append(out.Reasons, fmt.Sprintf("same category (%s)", candidate.Category))
	}

	if candidate.Price >= priceLowerFactor*p.minPrice-epsilon &&
		candidate.Price <= priceUpperFactor*p.maxPrice+epsilon {
		sum += WeightPrice
		out.Reasons = append(out.Reasons, reasonPriceRange)
	}

	if overlap := p.featureOverlap(candidate.Features); overlap > 0 {
		denom := math.Max(float64(len(p.features)), 1)
		sum += WeightFeatures * float64(overlap) / denom
		out.Reasons = append(out.Reasons, fmt.Sprintf("shared features (%d items)", overlap))
	}

	if math.Abs(candidate.Rating-p.avgRating) <= ratingTolerance+epsilon {
		sum += WeightRating
		out.Reasons = append(out.Reasons, reasonRating)
	}

	if candidate.Rating >= qualityMinRating && candidate.InStock {
		sum += WeightQuality
		out.Reasons = append(out.Reasons, reasonQuality)
	}

	out.Confidence = clamp(int(math.Round(sum)), 0, MaxConfidence)
	return out
}

// featureOverlap counts distinct candidate features present in the reference union.
func (p referenceProfile) featureOverlap(features []string) int {
	if len(features) == 0 || len(p.features) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(features))
	n := 0
	for _, f := range features {
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		if _, ok := p.features[f]; ok {
			n++
		}
	}
	return n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
