package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// CompareRepository keeps each user's compare list as a Redis list in
// insertion order.
type CompareRepository struct {
	client *redis.Client
}

func NewCompareRepository(client *redis.Client) *CompareRepository {
	return &CompareRepository{client: client}
}

func compareKey(userID uint) string {
	return fmt.Sprintf("compare:user:%d", userID)
}

func (r *CompareRepository) List(ctx context.Context, userID uint) ([]uint64, error) {
	vals, err := r.client.LRange(ctx, compareKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read compare list: %w", err)
	}

	ids := make([]uint64, 0, len(vals))
	for _, v := range vals {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt compare list entry %q: %w", v, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func (r *CompareRepository) Add(ctx context.Context, userID uint, productID uint64) error {
	if err := r.client.RPush(ctx, compareKey(userID), productID).Err(); err != nil {
		return fmt.Errorf("failed to push compare item: %w", err)
	}
	return nil
}

func (r *CompareRepository) Remove(ctx context.Context, userID uint, productID uint64) error {
	if err := r.client.LRem(ctx, compareKey(userID), 0, productID).Err(); err != nil {
		return fmt.Errorf("failed to remove compare item: %w", err)
	}
	return nil
}

func (r *CompareRepository) Clear(ctx context.Context, userID uint) error {
	if err := r.client.Del(ctx, compareKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear compare list: %w", err)
	}
	return nil
}
