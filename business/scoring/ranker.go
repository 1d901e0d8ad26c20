package scoring

import (
	"math/rand"
	"sort"

	"myStorefront/domain"
	"myStorefront/pkg/logger"
)

const (
	DefaultTopN = 6

	// MaxDisplayConfidence caps what users see even when every rule fires.
	MaxDisplayConfidence = 95

	// NoiseThreshold: candidates at or below it are dropped.
	NoiseThreshold = 20
)

// RankRecommendations scores every eligible candidate in pool against the
// reference set and returns at most topN of them, best first. Equal
// confidences keep pool order. Invalid items are skipped, never fatal.
func RankRecommendations(pool, reference []domain.Item, topN int) []domain.ScoredCandidate {
	if topN <= 0 {
		topN = DefaultTopN
	}

	validRef := make([]domain.Item, 0, len(reference))
	for _, it := range reference {
		if err := it.Validate(); err != nil {
			logger.Warn("skipping invalid reference item", "item_id", it.ID, err)
			SkippedItemsTotal.WithLabelValues("reference", "invalid").Inc()
			continue
		}
		validRef = append(validRef, it)
	}
	if len(validRef) == 0 {
		return []domain.ScoredCandidate{}
	}

	profile := buildProfile(validRef)
	seen := make(map[string]struct{}, len(pool))
	ranked := make([]domain.ScoredCandidate, 0, len(pool))

	for _, cand := range pool {
		if _, inRef := profile.ids[cand.ID]; inRef {
			continue
		}
		if err := cand.Validate(); err != nil {
			logger.Warn("skipping invalid candidate", "item_id", cand.ID, err)
			SkippedItemsTotal.WithLabelValues("candidate", "invalid").Inc()
			continue
		}
		if _, dup := seen[cand.ID]; dup {
			logger.Warn("skipping duplicate candidate", "item_id", cand.ID)
			SkippedItemsTotal.WithLabelValues("candidate", "duplicate").Inc()
			continue
		}
		seen[cand.ID] = struct{}{}

		sc := profile.score(cand)
		sc.Confidence = min(sc.Confidence, MaxDisplayConfidence)
		if sc.Confidence <= NoiseThreshold {
			continue
		}
		ranked = append(ranked, sc)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Confidence > ranked[j].Confidence
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	return ranked
}

// ShuffleForDisplay returns a shuffled copy for "refresh" affordances. It
// does not re-score and the order carries no relevance meaning.
func ShuffleForDisplay(list []domain.ScoredCandidate, rng *rand.Rand) []domain.ScoredCandidate {
	out := append([]domain.ScoredCandidate(nil), list...)
	if rng == nil {
		rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		return out
	}
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
