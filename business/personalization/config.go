package personalization

import (
	"context"
	"time"

	"myStorefront/domain"
)

// RetentionPolicy bounds the action log. Zero values disable the bound.
type RetentionPolicy struct {
	MaxAge    time.Duration
	MaxEvents int
}

type Config struct {
	Retention RetentionPolicy

	// how many earlier action types are copied into each event's context
	PreviousActionsWindow int

	// additive weight per categorized event
	CategoryIncrement float64

	// re-ranker bonus for items inside the stated price range
	PriceRangeBonus float64

	// upper bound on sessions kept in process; older ones are reloaded from
	// the snapshot store on next access
	MaxLiveSessions int
}

const (
	defaultRetentionMaxAge    = ChurnWindow
	defaultRetentionMaxEvents = 1000
	defaultPreviousActions    = 5
	defaultCategoryIncrement  = 0.1
	defaultPriceRangeBonus    = 0.2
	defaultMaxLiveSessions    = 10000
)

func DefaultConfig() Config {
	return Config{
		Retention: RetentionPolicy{
			MaxAge:    defaultRetentionMaxAge,
			MaxEvents: defaultRetentionMaxEvents,
		},
		PreviousActionsWindow: defaultPreviousActions,
		CategoryIncrement:     defaultCategoryIncrement,
		PriceRangeBonus:       defaultPriceRangeBonus,
		MaxLiveSessions:       defaultMaxLiveSessions,
	}
}

// withDefaults fills zero fields so a partially loaded config stays sane.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.PreviousActionsWindow <= 0 {
		c.PreviousActionsWindow = d.PreviousActionsWindow
	}
	if c.CategoryIncrement <= 0 {
		c.CategoryIncrement = d.CategoryIncrement
	}
	if c.PriceRangeBonus <= 0 {
		c.PriceRangeBonus = d.PriceRangeBonus
	}
	if c.MaxLiveSessions <= 0 {
		c.MaxLiveSessions = d.MaxLiveSessions
	}
	return c
}

// Clock returns the current time. Tests inject fixed clocks.
type Clock func() time.Time

// SnapshotStore persists sessions across reloads. Implementations live in
// internal/repository.
type SnapshotStore interface {
	LoadSnapshot(ctx context.Context, userID uint) (*domain.SessionSnapshot, error)
	SaveSnapshot(ctx context.Context, snap domain.SessionSnapshot) error
	DeleteSnapshot(ctx context.Context, userID uint) error
}
