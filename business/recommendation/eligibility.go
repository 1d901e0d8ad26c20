package recommendation

import (
	"context"

	"myStorefront/domain"
)

// EligibilityChecker decides if an item may be recommended to a user
// (visibility, region, age gating).
type EligibilityChecker interface {
	IsEligible(ctx context.Context, userID uint, item domain.Item) (bool, error)
}

// NoopEligibilityChecker is the default implementation that allows everything.
type NoopEligibilityChecker struct{}

func (NoopEligibilityChecker) IsEligible(ctx context.Context, userID uint, item domain.Item) (bool, error) {
	return true, nil
}
