package personalization

import (
	"math"
	"time"

	"myStorefront/domain"
)

const (
	ChurnWindow = 7 * 24 * time.Hour

	churnBaseline     = 0.1
	churnCeiling      = 0.95
	lowActivityEvents = 5
	lowActivityRisk   = 0.3
	noPurchaseRisk    = 0.2
	minRecentViews    = 10
	fewViewsRisk      = 0.15

	FactorLowActivity   = "low recent activity"
	FactorNoPurchase    = "no recent purchase"
	FactorFewerBrowsing = "declining browse frequency"
)

// AssessChurn scores disengagement risk from the events of the trailing
// ChurnWindow before now. Deterministic for a given log and now.
func AssessChurn(events []domain.ActionEvent, now time.Time) domain.ChurnAssessment {
	recent, purchases, views := 0, 0, 0
	for _, ev := range events {
		if now.Sub(ev.Timestamp) >= ChurnWindow {
			continue
		}
		recent++
		switch ev.Type {
		case domain.ActionPurchase:
			purchases++
		case domain.ActionView:
			views++
		}
	}

	risk := churnBaseline
	factors := []string{}

	if recent < lowActivityEvents {
		risk += lowActivityRisk
		factors = append(factors, FactorLowActivity)
	}
	if purchases == 0 {
		risk += noPurchaseRisk
		factors = append(factors, FactorNoPurchase)
	}
	if views < minRecentViews {
		risk += fewViewsRisk
		factors = append(factors, FactorFewerBrowsing)
	}

	// round away float noise like 0.1+0.3+0.2 = 0.6000000000000001
	risk = math.Round(math.Min(risk, churnCeiling)*1e6) / 1e6

	return domain.ChurnAssessment{Risk: risk, Factors: factors}
}
