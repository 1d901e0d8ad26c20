package memory

import (
	"context"
	"slices"
	"sync"
)

type CompareRepository struct {
	mu    sync.Mutex
	lists map[uint][]uint64
}

func NewCompareRepository() *CompareRepository {
	return &CompareRepository{lists: make(map[uint][]uint64)}
}

func (r *CompareRepository) List(ctx context.Context, userID uint) ([]uint64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.lists[userID]), nil
}

func (r *CompareRepository) Add(ctx context.Context, userID uint, productID uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	r.lists[userID] = append(r.lists[userID], productID)
	r.mu.Unlock()
	return nil
}

func (r *CompareRepository) Remove(ctx context.Context, userID uint, productID uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists[userID] = slices.DeleteFunc(r.lists[userID], func(id uint64) bool {
		return id == productID
	})
	if len(r.lists[userID]) == 0 {
		delete(r.lists, userID)
	}
	return nil
}

func (r *CompareRepository) Clear(ctx context.Context, userID uint) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	delete(r.lists, userID)
	r.mu.Unlock()
	return nil
}
