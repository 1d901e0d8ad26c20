package compare

import (
	"context"
	"errors"
	"fmt"

	"myStorefront/domain"
	"myStorefront/pkg/logger"
)

const DefaultLimit = 4

// CompareRepository stores product ids in insertion order per user.
type CompareRepository interface {
	List(ctx context.Context, userID uint) ([]uint64, error)
	Add(ctx context.Context, userID uint, productID uint64) error
	Remove(ctx context.Context, userID uint, productID uint64) error
	Clear(ctx context.Context, userID uint) error
}

type ProductRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
}

type compareService struct {
	compareRepo CompareRepository
	productRepo ProductRepository
	limit       int
}

func NewCompareService(compareRepo CompareRepository, productRepo ProductRepository, limit int) *compareService {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &compareService{
		compareRepo: compareRepo,
		productRepo: productRepo,
		limit:       limit,
	}
}

// GetCompareList returns the products in the user's compare list, skipping
// any that no longer exist in the catalog.
func (s *compareService) GetCompareList(ctx context.Context, userID uint) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	ids, err := s.compareRepo.List(ctx, userID)
	if err != nil {
		logger.Error("failed to load compare list", "user_id", userID, err)
		return nil, err
	}

	products := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		p, err := s.productRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				continue
			}
			return nil, err
		}
		products = append(products, p)
	}

	return products, nil
}

func (s *compareService) AddToCompare(ctx context.Context, userID uint, productID uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return err
	}

	ids, err := s.compareRepo.List(ctx, userID)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == productID {
			return domain.ErrAlreadyInCompareList
		}
	}
	if len(ids) >= s.limit {
		return domain.ErrCompareListFull
	}

	if err := s.compareRepo.Add(ctx, userID, productID); err != nil {
		logger.Error("failed to add to compare list", "user_id", userID, "product_id", productID, err)
		return fmt.Errorf("failed to add to compare list: %w", err)
	}

	return nil
}

func (s *compareService) RemoveFromCompare(ctx context.Context, userID uint, productID uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if err := s.compareRepo.Remove(ctx, userID, productID); err != nil {
		return fmt.Errorf("failed to remove from compare list: %w", err)
	}
	return nil
}

func (s *compareService) ClearCompare(ctx context.Context, userID uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if err := s.compareRepo.Clear(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear compare list: %w", err)
	}
	return nil
}
