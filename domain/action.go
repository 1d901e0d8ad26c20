package domain

import (
	"fmt"
	"time"
)

type ActionType string

const (
	ActionView         ActionType = "view"
	ActionClick        ActionType = "click"
	ActionPurchase     ActionType = "purchase"
	ActionSearch       ActionType = "search"
	ActionCompare      ActionType = "compare"
	ActionWishlist     ActionType = "wishlist"
	ActionVoiceCommand ActionType = "voice_command"
)

var actionTypes = map[ActionType]struct{}{
	ActionView:         {},
	ActionClick:        {},
	ActionPurchase:     {},
	ActionSearch:       {},
	ActionCompare:      {},
	ActionWishlist:     {},
	ActionVoiceCommand: {},
}

func (t ActionType) Valid() bool {
	_, ok := actionTypes[t]
	return ok
}

func ParseActionType(s string) (ActionType, error) {
	t := ActionType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownActionType, s)
	}
	return t, nil
}

// ActionContext is captured when an event is recorded.
type ActionContext struct {
	Page                string       `json:"page"`
	Device              string       `json:"device"`
	TimeOfDay           int          `json:"time_of_day"`
	DayOfWeek           int          `json:"day_of_week"`
	SessionDurationMs   int64        `json:"session_duration_ms"`
	PreviousActionTypes []ActionType `json:"previous_action_types"`
}

// ActionEvent is an append-only record of one tracked interaction.
type ActionEvent struct {
	Type        ActionType    `json:"type"`
	ItemID      string        `json:"item_id,omitempty"`
	Category    string        `json:"category,omitempty"`
	SearchQuery string        `json:"search_query,omitempty"`
	Timestamp   time.Time     `json:"timestamp"`
	Context     ActionContext `json:"context"`
}

// ActionInput is what callers supply; timestamp and context are filled in
// by the session that records it.
type ActionInput struct {
	Type        ActionType
	ItemID      string
	Category    string
	SearchQuery string
	Page        string
}
