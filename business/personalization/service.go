package personalization

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"myStorefront/domain"
	"myStorefront/pkg/logger"
	"myStorefront/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/pobyzaarif/goshortcute"
)

// Service keeps one Session per user and mirrors it into an optional
// SnapshotStore. Store failures are logged and counted, never returned to the
// action that triggered them.
type Service struct {
	mu       sync.Mutex
	sessions map[uint]*Session
	lastSeen map[uint]time.Time

	store SnapshotStore
	cfg   Config
	now   Clock
}

func NewService(store SnapshotStore, cfg Config, now Clock) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		sessions: make(map[uint]*Session),
		lastSeen: make(map[uint]time.Time),
		store:    store,
		cfg:      cfg.withDefaults(),
		now:      now,
	}
}

// session returns the live session for userID, restoring it from the store or
// starting a fresh one with env. The store is read without holding s.mu so a
// slow load for one user does not stall requests for others.
func (s *Service) session(ctx context.Context, userID uint, env domain.SessionContext) *Session {
	s.mu.Lock()
	s.lastSeen[userID] = s.now()
	if sess, ok := s.sessions[userID]; ok {
		s.mu.Unlock()
		return sess
	}
	s.mu.Unlock()

	sess := s.loadSession(ctx, userID)
	if sess == nil {
		sess = NewSession(uuid.NewString(), userID, env, s.cfg, s.now)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// a concurrent request may have installed the session meanwhile
	if live, ok := s.sessions[userID]; ok {
		return live
	}
	s.sessions[userID] = sess
	s.lastSeen[userID] = s.now()
	s.capSessions(userID)
	return sess
}

// loadSession restores userID from the store, or returns nil when there is
// nothing usable to restore.
func (s *Service) loadSession(ctx context.Context, userID uint) *Session {
	if s.store == nil {
		return nil
	}

	snap, err := s.store.LoadSnapshot(ctx, userID)
	switch {
	case err == nil && snap != nil:
		sess := RestoreSession(*snap, s.cfg, s.now)
		logger.Debug("session restored",
			"trace_id", utils.TraceIDFromContext(ctx),
			"user_id", userID,
			"session_id", sess.ID(),
			"events", len(snap.Events),
		)
		return sess
	case err != nil && !errors.Is(err, domain.ErrSnapshotNotFound):
		PersistFailuresTotal.WithLabelValues("load").Inc()
		logger.Error("failed to load session snapshot", "user_id", userID, err)
	}
	return nil
}

// persist saves the session under its save lock, so snapshots reach the store
// in the order they were taken.
func (s *Service) persist(ctx context.Context, sess *Session) {
	if s.store == nil {
		return
	}

	sess.saveMu.Lock()
	defer sess.saveMu.Unlock()

	if err := s.store.SaveSnapshot(ctx, sess.Snapshot()); err != nil {
		PersistFailuresTotal.WithLabelValues("save").Inc()
		logger.Error("failed to save session snapshot",
			"trace_id", utils.TraceIDFromContext(ctx),
			"user_id", sess.UserID(),
			"session_id", sess.ID(),
			err,
		)
	}
}

// RecordAction appends an event to the user's session and updates preferences.
func (s *Service) RecordAction(ctx context.Context, userID uint, env domain.SessionContext, in domain.ActionInput) (domain.ActionEvent, error) {
	if err := ctx.Err(); err != nil {
		return domain.ActionEvent{}, fmt.Errorf("context error: %w", err)
	}

	sess := s.session(ctx, userID, env)
	ev, err := sess.RecordAction(in)
	if err != nil {
		return domain.ActionEvent{}, err
	}

	ActionsRecordedTotal.WithLabelValues(string(ev.Type), ev.Context.Device).Inc()
	logger.Debug("action_recorded",
		"trace_id", utils.TraceIDFromContext(ctx),
		"user_id", userID,
		"session_id", sess.ID(),
		"type", ev.Type,
		"item_id", ev.ItemID,
		"category", ev.Category,
	)

	s.persist(ctx, sess)
	return ev, nil
}

func (s *Service) GetPreferences(ctx context.Context, userID uint, normalized bool) (domain.PreferenceModel, error) {
	if err := ctx.Err(); err != nil {
		return domain.PreferenceModel{}, fmt.Errorf("context error: %w", err)
	}
	sess := s.session(ctx, userID, domain.SessionContext{})
	if normalized {
		return sess.NormalizedPreferences(), nil
	}
	return sess.Preferences(), nil
}

func (s *Service) SetPriceRange(ctx context.Context, userID uint, r domain.PriceRange) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	sess := s.session(ctx, userID, domain.SessionContext{})
	if err := sess.SetPriceRange(r); err != nil {
		return err
	}
	s.persist(ctx, sess)
	return nil
}

// ReorderResults re-ranks an arbitrary result list by the user's preferences.
func (s *Service) ReorderResults(ctx context.Context, userID uint, query string, results []domain.Item) ([]domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	sess := s.session(ctx, userID, domain.SessionContext{})
	out := sess.Reorder(query, results)

	logger.Debug("results_reordered",
		"trace_id", utils.TraceIDFromContext(ctx),
		"user_id", userID,
		"query", query,
		"count", len(out),
	)
	return out, nil
}

func (s *Service) AssessChurn(ctx context.Context, userID uint) (domain.ChurnAssessment, error) {
	if err := ctx.Err(); err != nil {
		return domain.ChurnAssessment{}, fmt.Errorf("context error: %w", err)
	}
	a := s.session(ctx, userID, domain.SessionContext{}).AssessChurn()
	ChurnRisk.Observe(a.Risk)
	return a, nil
}

func (s *Service) Events(ctx context.Context, userID uint) ([]domain.ActionEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	return s.session(ctx, userID, domain.SessionContext{}).Events(), nil
}

// ExportSession encodes the session snapshot as a portable base64 token.
func (s *Service) ExportSession(ctx context.Context, userID uint) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context error: %w", err)
	}
	snap := s.session(ctx, userID, domain.SessionContext{}).Snapshot()
	raw, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return goshortcute.StringtoBase64Encode(string(raw)), nil
}

// ImportSession replaces the user's session with one decoded from token.
func (s *Service) ImportSession(ctx context.Context, userID uint, token string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	decoded := goshortcute.StringtoBase64Decode(token)
	if decoded == "" {
		return ErrInvalidExportToken
	}

	var snap domain.SessionSnapshot
	if err := json.Unmarshal([]byte(decoded), &snap); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidExportToken, err)
	}
	snap.UserID = userID
	if snap.SessionID == "" {
		snap.SessionID = uuid.NewString()
	}
	for _, ev := range snap.Events {
		if !ev.Type.Valid() {
			return fmt.Errorf("%w: event type %q", ErrInvalidExportToken, ev.Type)
		}
	}

	sess := RestoreSession(snap, s.cfg, s.now)

	s.mu.Lock()
	s.sessions[userID] = sess
	s.lastSeen[userID] = s.now()
	s.capSessions(userID)
	s.mu.Unlock()

	s.persist(ctx, sess)
	return nil
}

// EndSession drops the in-process session and its stored snapshot.
func (s *Service) EndSession(ctx context.Context, userID uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	s.mu.Lock()
	delete(s.sessions, userID)
	delete(s.lastSeen, userID)
	s.mu.Unlock()

	if s.store == nil {
		return nil
	}
	if err := s.store.DeleteSnapshot(ctx, userID); err != nil {
		PersistFailuresTotal.WithLabelValues("delete").Inc()
		return fmt.Errorf("failed to delete session snapshot: %w", err)
	}
	return nil
}

var ErrInvalidExportToken = errors.New("invalid session export token")
