package memory

import (
	"context"
	"sync"
	"time"

	"myStorefront/domain"
)

const (
	DefaultSessionTTL = 24 * time.Hour
	sweepInterval     = time.Minute
)

// SessionRepository is a process-local snapshot store. Snapshots do not
// survive a restart. Each snapshot expires ttl after it was last saved or
// loaded, the same sliding expiry the redis store applies.
type SessionRepository struct {
	mu        sync.Mutex
	snaps     map[uint]storedSnapshot
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

type storedSnapshot struct {
	snap      domain.SessionSnapshot
	expiresAt time.Time
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionRepository{
		snaps: make(map[uint]storedSnapshot),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (r *SessionRepository) LoadSnapshot(ctx context.Context, userID uint) (*domain.SessionSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	stored, ok := r.snaps[userID]
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	if !now.Before(stored.expiresAt) {
		delete(r.snaps, userID)
		return nil, domain.ErrSnapshotNotFound
	}

	stored.expiresAt = now.Add(r.ttl)
	r.snaps[userID] = stored

	out := cloneSnapshot(stored.snap)
	return &out, nil
}

func (r *SessionRepository) SaveSnapshot(ctx context.Context, snap domain.SessionSnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.snaps[snap.UserID] = storedSnapshot{snap: cloneSnapshot(snap), expiresAt: now.Add(r.ttl)}
	if now.Sub(r.lastSweep) >= sweepInterval {
		r.sweep(now)
	}
	return nil
}

func (r *SessionRepository) DeleteSnapshot(ctx context.Context, userID uint) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	delete(r.snaps, userID)
	r.mu.Unlock()
	return nil
}

// Len reports how many snapshots are held, expired ones included until the
// next sweep.
func (r *SessionRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.snaps)
}

// sweep drops expired snapshots. Caller holds r.mu.
func (r *SessionRepository) sweep(now time.Time) {
	for userID, stored := range r.snaps {
		if !now.Before(stored.expiresAt) {
			delete(r.snaps, userID)
		}
	}
	r.lastSweep = now
}

func cloneSnapshot(s domain.SessionSnapshot) domain.SessionSnapshot {
	out := s
	out.Events = make([]domain.ActionEvent, len(s.Events))
	for i, ev := range s.Events {
		ev.Context.PreviousActionTypes = append([]domain.ActionType(nil), ev.Context.PreviousActionTypes...)
		out.Events[i] = ev
	}
	out.Preferences = s.Preferences.Clone()
	return out
}
