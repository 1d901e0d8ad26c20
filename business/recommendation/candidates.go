package recommendation

import (
	"context"
	"fmt"

	"myStorefront/domain"
	"myStorefront/pkg/logger"
)

// loadReferenceSet resolves the user's compare list into items, in list order.
// Entries whose product has disappeared are skipped.
func (s *Service) loadReferenceSet(ctx context.Context, userID uint, catalog map[uint64]domain.Product) ([]domain.Item, error) {
	ids, err := s.compareRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load compare list: %w", err)
	}

	ref := make([]domain.Item, 0, len(ids))
	for _, id := range ids {
		p, ok := catalog[id]
		if !ok {
			logger.Warn("compare list references missing product", "user_id", userID, "product_id", id)
			continue
		}
		ref = append(ref, p.ToItem())
	}
	return ref, nil
}

// loadCandidates returns the catalog as items in catalog order plus an index
// by product id. Items the eligibility checker rejects are left out of the pool.
func (s *Service) loadCandidates(ctx context.Context, userID uint) ([]domain.Item, map[uint64]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("context error: %w", err)
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load products: %w", err)
	}

	index := make(map[uint64]domain.Product, len(products))
	pool := make([]domain.Item, 0, len(products))
	for _, p := range products {
		index[p.ID] = p
		item := p.ToItem()

		if s.eligChecker != nil {
			ok, err := s.eligChecker.IsEligible(ctx, userID, item)
			if err != nil {
				logger.Warn("eligibility check failed", "user_id", userID, "item_id", item.ID, err)
				continue
			}
			if !ok {
				continue
			}
		}
		pool = append(pool, item)
	}

	return pool, index, nil
}
