package personalization

import (
	"sort"

	"myStorefront/domain"
)

// PreferenceScore is the re-ranking key for one item.
func PreferenceScore(prefs domain.PreferenceModel, item domain.Item, priceBonus float64) float64 {
	score := prefs.Categories[item.Category]
	if prefs.PriceRange.Contains(item.Price) {
		score += priceBonus
	}
	return score
}

// ReorderByPreference returns results sorted by preference score, highest
// first, keeping input order between equal scores. The query only labels the
// request; ordering depends on preferences alone.
func ReorderByPreference(prefs domain.PreferenceModel, query string, results []domain.Item) []domain.Item {
	return reorder(prefs, results, defaultPriceRangeBonus)
}

func reorder(prefs domain.PreferenceModel, results []domain.Item, priceBonus float64) []domain.Item {
	type keyed struct {
		item  domain.Item
		score float64
	}

	list := make([]keyed, len(results))
	for i, it := range results {
		list[i] = keyed{item: it, score: PreferenceScore(prefs, it, priceBonus)}
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].score > list[j].score
	})

	out := make([]domain.Item, len(list))
	for i, k := range list {
		out[i] = k.item
	}
	return out
}
