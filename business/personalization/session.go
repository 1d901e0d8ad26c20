package personalization

import (
	"fmt"
	"sync"
	"time"

	"myStorefront/domain"
)

// Session owns one user's action log and preference model. All mutation goes
// through RecordAction and SetPriceRange; every read returns a copy.
type Session struct {
	mu sync.RWMutex
	// serializes snapshot-and-save so an older snapshot never lands last
	saveMu sync.Mutex

	id     string
	userID uint
	env    domain.SessionContext
	log    *ActionLog
	prefs  domain.PreferenceModel
	cfg    Config
	now    Clock
}

func NewSession(id string, userID uint, env domain.SessionContext, cfg Config, now Clock) *Session {
	if now == nil {
		now = time.Now
	}
	if env.Start.IsZero() {
		env.Start = now()
	}
	cfg = cfg.withDefaults()

	return &Session{
		id:     id,
		userID: userID,
		env:    env,
		log:    NewActionLog(cfg.Retention),
		prefs:  domain.NewPreferenceModel(),
		cfg:    cfg,
		now:    now,
	}
}

// RestoreSession rebuilds a session from a persisted snapshot.
func RestoreSession(snap domain.SessionSnapshot, cfg Config, now Clock) *Session {
	s := NewSession(snap.SessionID, snap.UserID, snap.Context, cfg, now)
	s.log.restore(snap.Events, s.now())
	s.prefs = snap.Preferences.Clone()
	return s
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) UserID() uint {
	return s.userID
}

// RecordAction stamps the input with time and context, appends it to the log
// and feeds it to the preference model.
func (s *Session) RecordAction(in domain.ActionInput) (domain.ActionEvent, error) {
	if !in.Type.Valid() {
		return domain.ActionEvent{}, fmt.Errorf("%w: %q", domain.ErrUnknownActionType, in.Type)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	page := in.Page
	if page == "" {
		page = s.env.Page
	} else {
		s.env.Page = page
	}

	ev := domain.ActionEvent{
		Type:        in.Type,
		ItemID:      in.ItemID,
		Category:    in.Category,
		SearchQuery: in.SearchQuery,
		Timestamp:   now,
		Context: domain.ActionContext{
			Page:                page,
			Device:              s.env.Device,
			TimeOfDay:           now.Hour(),
			DayOfWeek:           int(now.Weekday()),
			SessionDurationMs:   now.Sub(s.env.Start).Milliseconds(),
			PreviousActionTypes: s.log.RecentTypes(s.cfg.PreviousActionsWindow),
		},
	}

	if evicted := s.log.Append(ev); evicted > 0 {
		EvictedEventsTotal.Add(float64(evicted))
	}
	UpdatePreferences(&s.prefs, ev, s.cfg.CategoryIncrement)

	return ev, nil
}

// SetPriceRange records an explicitly stated budget.
func (s *Session) SetPriceRange(r domain.PriceRange) error {
	if r.Min < 0 || r.Max < r.Min {
		return fmt.Errorf("invalid price range [%v, %v]", r.Min, r.Max)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs.PriceRange = r
	return nil
}

func (s *Session) Preferences() domain.PreferenceModel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs.Clone()
}

// NormalizedPreferences is Preferences with weights max-scaled to [0, 1].
func (s *Session) NormalizedPreferences() domain.PreferenceModel {
	return NormalizePreferences(s.Preferences())
}

func (s *Session) Events() []domain.ActionEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.log.Events()
}

func (s *Session) Reorder(query string, results []domain.Item) []domain.Item {
	return reorder(s.Preferences(), results, s.cfg.PriceRangeBonus)
}

func (s *Session) AssessChurn() domain.ChurnAssessment {
	return AssessChurn(s.Events(), s.now())
}

func (s *Session) Snapshot() domain.SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.SessionSnapshot{
		SessionID:   s.id,
		UserID:      s.userID,
		Context:     s.env,
		Events:      s.log.Events(),
		Preferences: s.prefs.Clone(),
		UpdatedAt:   s.now(),
	}
}
