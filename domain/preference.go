package domain

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// IsSet reports whether a range was ever stated. The zero range grants no bonus.
func (r PriceRange) IsSet() bool {
	return r.Min != 0 || r.Max != 0
}

func (r PriceRange) Contains(price float64) bool {
	return r.IsSet() && r.Min <= price && price <= r.Max
}

// PreferenceModel holds additive, unnormalized interest weights.
type PreferenceModel struct {
	Categories map[string]float64 `json:"categories"`
	PriceRange PriceRange         `json:"price_range"`
	Brands     map[string]float64 `json:"brands"`
	Features   map[string]float64 `json:"features"`
	Colors     map[string]float64 `json:"colors"`
	Sizes      map[string]float64 `json:"sizes"`
}

func NewPreferenceModel() PreferenceModel {
	return PreferenceModel{
		Categories: map[string]float64{},
		Brands:     map[string]float64{},
		Features:   map[string]float64{},
		Colors:     map[string]float64{},
		Sizes:      map[string]float64{},
	}
}

// Clone returns a deep copy safe to hand to readers.
func (m PreferenceModel) Clone() PreferenceModel {
	return PreferenceModel{
		Categories: cloneWeights(m.Categories),
		PriceRange: m.PriceRange,
		Brands:     cloneWeights(m.Brands),
		Features:   cloneWeights(m.Features),
		Colors:     cloneWeights(m.Colors),
		Sizes:      cloneWeights(m.Sizes),
	}
}

func cloneWeights(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// ChurnAssessment is recomputed on demand and never stored.
type ChurnAssessment struct {
	Risk    float64  `json:"risk"`
	Factors []string `json:"factors"`
}
