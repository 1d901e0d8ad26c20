//go:build !integration

package personalization

import (
	"math"
	"testing"
	"time"

	"myStorefront/domain"
)

func repeat(typ domain.ActionType, n int, at time.Time) []domain.ActionEvent {
	out := make([]domain.ActionEvent, n)
	for i := range out {
		out[i] = event(typ, at)
	}
	return out
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAssessChurn(t *testing.T) {
	now := t0
	recent := now.Add(-time.Hour)
	old := now.Add(-8 * 24 * time.Hour)

	tests := []struct {
		name    string
		events  []domain.ActionEvent
		risk    float64
		factors []string
	}{
		{
			name:    "empty log",
			events:  nil,
			risk:    0.75,
			factors: []string{FactorLowActivity, FactorNoPurchase, FactorFewerBrowsing},
		},
		{
			name:    "engaged buyer",
			events:  append(repeat(domain.ActionView, 10, recent), event(domain.ActionPurchase, recent)),
			risk:    0.1,
			factors: []string{},
		},
		{
			name:    "browsing without buying",
			events:  repeat(domain.ActionView, 12, recent),
			risk:    0.3,
			factors: []string{FactorNoPurchase},
		},
		{
			name:    "old activity does not count",
			events:  append(repeat(domain.ActionView, 10, old), event(domain.ActionPurchase, old)),
			risk:    0.75,
			factors: []string{FactorLowActivity, FactorNoPurchase, FactorFewerBrowsing},
		},
		{
			name:    "exactly seven days old is outside the window",
			events:  repeat(domain.ActionPurchase, 6, now.Add(-ChurnWindow)),
			risk:    0.75,
			factors: []string{FactorLowActivity, FactorNoPurchase, FactorFewerBrowsing},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AssessChurn(tt.events, now)
			if !approx(got.Risk, tt.risk) {
				t.Errorf("risk = %v, want %v", got.Risk, tt.risk)
			}
			if len(got.Factors) != len(tt.factors) {
				t.Fatalf("factors = %v, want %v", got.Factors, tt.factors)
			}
			for i := range tt.factors {
				if got.Factors[i] != tt.factors[i] {
					t.Errorf("factor[%d] = %q, want %q", i, got.Factors[i], tt.factors[i])
				}
			}
		})
	}
}

func TestAssessChurn_LowActivityStepIsExactlyPointThree(t *testing.T) {
	now := t0
	recent := now.Add(-time.Minute)

	// both logs: a purchase, fewer than 10 views; only the size differs
	busy := append(repeat(domain.ActionClick, 5, recent), event(domain.ActionPurchase, recent))
	quiet := []domain.ActionEvent{event(domain.ActionPurchase, recent)}

	diff := AssessChurn(quiet, now).Risk - AssessChurn(busy, now).Risk
	if !approx(diff, 0.3) {
		t.Fatalf("risk step = %v, want 0.3", diff)
	}
}

func TestAssessChurn_Deterministic(t *testing.T) {
	events := repeat(domain.ActionView, 3, t0.Add(-time.Hour))
	a := AssessChurn(events, t0)
	b := AssessChurn(events, t0)
	if a.Risk != b.Risk || len(a.Factors) != len(b.Factors) {
		t.Fatalf("non-deterministic: %+v vs %+v", a, b)
	}
}
