package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"myStorefront/domain"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const DefaultSessionTTL = 24 * time.Hour

type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionRepository{
		client: client,
		ttl:    ttl,
	}
}

func sessionKey(userID uint) string {
	return fmt.Sprintf("session:user:%d", userID)
}

func (r *SessionRepository) SaveSnapshot(ctx context.Context, snap domain.SessionSnapshot) error {
	jsonData, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal session snapshot: %w", err)
	}

	if err := r.client.Set(ctx, sessionKey(snap.UserID), jsonData, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session snapshot in Redis: %w", err)
	}

	return nil
}

// LoadSnapshot reads the snapshot and slides its expiry forward.
func (r *SessionRepository) LoadSnapshot(ctx context.Context, userID uint) (*domain.SessionSnapshot, error) {
	key := sessionKey(userID)

	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to get session snapshot from Redis: %w", err)
	}

	var snap domain.SessionSnapshot
	if err := json.Unmarshal(val, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session snapshot: %w", err)
	}

	if err := r.client.Expire(ctx, key, r.ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to refresh session TTL: %w", err)
	}

	return &snap, nil
}

func (r *SessionRepository) DeleteSnapshot(ctx context.Context, userID uint) error {
	if err := r.client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session snapshot: %w", err)
	}
	return nil
}
