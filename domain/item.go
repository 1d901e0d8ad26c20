package domain

import (
	"math"
	"strings"
)

const (
	MinRating = 0.0
	MaxRating = 5.0
)

// Item is anything the storefront can compare or recommend.
type Item struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	Category      string   `json:"category"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"review_count"`
	Features      []string `json:"features,omitempty"`
	InStock       bool     `json:"in_stock"`
}

// Validate rejects items that must not enter a scoring pass.
func (i Item) Validate() error {
	switch {
	case strings.TrimSpace(i.ID) == "":
		return &InvalidItemError{Field: "id", Reason: "is required"}
	case !finite(i.Price):
		return &InvalidItemError{ItemID: i.ID, Field: "price", Reason: "must be a finite number"}
	case i.Price < 0:
		return &InvalidItemError{ItemID: i.ID, Field: "price", Reason: "cannot be negative"}
	case i.OriginalPrice != nil && !finite(*i.OriginalPrice):
		return &InvalidItemError{ItemID: i.ID, Field: "original_price", Reason: "must be a finite number"}
	case i.OriginalPrice != nil && *i.OriginalPrice < i.Price:
		return &InvalidItemError{ItemID: i.ID, Field: "original_price", Reason: "cannot be lower than price"}
	case !finite(i.Rating) || i.Rating < MinRating || i.Rating > MaxRating:
		return &InvalidItemError{ItemID: i.ID, Field: "rating", Reason: "must be between 0 and 5"}
	case i.ReviewCount < 0:
		return &InvalidItemError{ItemID: i.ID, Field: "review_count", Reason: "cannot be negative"}
	}
	return nil
}

// finite reports false for NaN and the infinities, which slip past
// ordinary range comparisons.
func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ScoredCandidate is an immutable result of one scoring pass.
type ScoredCandidate struct {
	Item       Item     `json:"item"`
	Confidence int      `json:"confidence"`
	Reasons    []string `json:"reasons"`
}

const (
	ReasonSeparator = ", "
	ReasonFallback  = "recommended for you"
)

// Reason joins the triggered rule descriptions for display.
func (s ScoredCandidate) Reason() string {
	if len(s.Reasons) == 0 {
		return ReasonFallback
	}
	return strings.Join(s.Reasons, ReasonSeparator)
}

// RecommendationResult wraps a ranked list. Empty is set when there was no
// basis to recommend from or nothing passed the threshold.
type RecommendationResult struct {
	Items          []ScoredCandidate `json:"items"`
	Empty          bool              `json:"empty"`
	Message        string            `json:"message,omitempty"`
	ReferenceCount int               `json:"reference_count"`
}
