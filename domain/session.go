package domain

import "time"

// SessionContext is provided by the host environment when a session starts.
type SessionContext struct {
	Page     string    `json:"page"`
	Device   string    `json:"device"`
	Language string    `json:"language"`
	Start    time.Time `json:"start"`
}

// SessionSnapshot is the persisted form of a session's log and preferences.
type SessionSnapshot struct {
	SessionID   string          `json:"session_id"`
	UserID      uint            `json:"user_id"`
	Context     SessionContext  `json:"context"`
	Events      []ActionEvent   `json:"events"`
	Preferences PreferenceModel `json:"preferences"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
