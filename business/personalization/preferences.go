package personalization

import (
	"myStorefront/domain"
)

// UpdatePreferences applies one event to the model. Weights are plain
// additive accumulators with no decay.
func UpdatePreferences(m *domain.PreferenceModel, ev domain.ActionEvent, increment float64) {
	if ev.Category == "" {
		return
	}
	if m.Categories == nil {
		m.Categories = map[string]float64{}
	}
	m.Categories[ev.Category] += increment
}

// NormalizePreferences max-scales every weight map into [0, 1] on a copy.
// The price range is left untouched.
func NormalizePreferences(m domain.PreferenceModel) domain.PreferenceModel {
	out := m.Clone()
	maxScale(out.Categories)
	maxScale(out.Brands)
	maxScale(out.Features)
	maxScale(out.Colors)
	maxScale(out.Sizes)
	return out
}

func maxScale(weights map[string]float64) {
	top := 0.0
	for _, w := range weights {
		if w > top {
			top = w
		}
	}
	if top <= 0 {
		return
	}
	for k, w := range weights {
		weights[k] = w / top
	}
}
