//go:build !integration

package personalization

import (
	"testing"

	"myStorefront/domain"
)

func ids(items []domain.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestReorderByPreference(t *testing.T) {
	prefs := domain.NewPreferenceModel()
	prefs.Categories["shoes"] = 0.3
	prefs.Categories["bags"] = 0.1
	prefs.PriceRange = domain.PriceRange{Min: 50, Max: 150}

	results := []domain.Item{
		{ID: "book", Category: "books", Price: 10},
		{ID: "bag-cheap", Category: "bags", Price: 20},
		{ID: "bag-mid", Category: "bags", Price: 100},
		{ID: "shoe", Category: "shoes", Price: 500},
		{ID: "book-mid", Category: "books", Price: 100},
	}

	got := ids(ReorderByPreference(prefs, "anything", results))

	// shoe .3, bag-mid .3, book-mid .2, bag-cheap .1, book 0; ties keep input order
	want := []string{"bag-mid", "shoe", "book-mid", "bag-cheap", "book"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestReorderByPreference_StableOnEqualScores(t *testing.T) {
	prefs := domain.NewPreferenceModel()
	results := []domain.Item{{ID: "c"}, {ID: "a"}, {ID: "b"}, {ID: "d"}}

	got := ids(ReorderByPreference(prefs, "", results))

	want := []string{"c", "a", "b", "d"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want input order %v", got, want)
		}
	}
}

func TestReorderByPreference_UnsetRangeGivesNoBonus(t *testing.T) {
	prefs := domain.NewPreferenceModel()
	if s := PreferenceScore(prefs, domain.Item{ID: "free", Price: 0}, 0.2); s != 0 {
		t.Fatalf("score = %v, want 0", s)
	}
}

func TestReorderByPreference_DoesNotMutateInput(t *testing.T) {
	prefs := domain.NewPreferenceModel()
	prefs.Categories["b"] = 1
	results := []domain.Item{{ID: "1", Category: "a"}, {ID: "2", Category: "b"}}

	_ = ReorderByPreference(prefs, "", results)

	if results[0].ID != "1" || results[1].ID != "2" {
		t.Fatalf("input reordered: %v", ids(results))
	}
}

func TestNormalizePreferences(t *testing.T) {
	prefs := domain.NewPreferenceModel()
	prefs.Categories["shoes"] = 0.4
	prefs.Categories["bags"] = 0.1
	prefs.PriceRange = domain.PriceRange{Min: 1, Max: 2}

	norm := NormalizePreferences(prefs)

	if !approx(norm.Categories["shoes"], 1) || !approx(norm.Categories["bags"], 0.25) {
		t.Fatalf("normalized = %v", norm.Categories)
	}
	if prefs.Categories["shoes"] != 0.4 {
		t.Fatalf("source mutated: %v", prefs.Categories)
	}
	if norm.PriceRange != prefs.PriceRange {
		t.Fatalf("price range changed: %+v", norm.PriceRange)
	}
}

func TestUpdatePreferences_Accumulates(t *testing.T) {
	prefs := domain.NewPreferenceModel()
	for i := 0; i < 25; i++ {
		UpdatePreferences(&prefs, domain.ActionEvent{Type: domain.ActionView, Category: "shoes"}, 0.1)
	}
	UpdatePreferences(&prefs, domain.ActionEvent{Type: domain.ActionSearch}, 0.1)

	if !approx(prefs.Categories["shoes"], 2.5) {
		t.Fatalf("weight = %v, want 2.5 (no ceiling)", prefs.Categories["shoes"])
	}
	if len(prefs.Categories) != 1 {
		t.Fatalf("uncategorized event touched categories: %v", prefs.Categories)
	}
}
