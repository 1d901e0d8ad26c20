package postgres

import (
	"context"
	"fmt"

	"myStorefront/domain"

	"gorm.io/gorm"
)

// CategoryRepository reads the category taxonomy products are filed under.
type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{
		DB: db,
	}
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var categories []domain.Category
	err := r.DB.WithContext(ctx).Order("product_category ASC").Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}

	return categories, nil
}

func (r *CategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context error: %w", err)
	}

	var count int64
	err := r.DB.WithContext(ctx).
		Model(&domain.Category{}).
		Where("LOWER(product_category) = LOWER(?)", name).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check category: %w", err)
	}

	return count > 0, nil
}
