package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CREATE TABLE public.compare_items (
//     user_id     BIGINT NOT NULL,
//     product_id  BIGINT NOT NULL,
//     added_at    TIMESTAMPTZ DEFAULT NOW(),
//     PRIMARY KEY (user_id, product_id)
// );

type compareItemRow struct {
	UserID    uint      `gorm:"column:user_id;primaryKey"`
	ProductID uint64    `gorm:"column:product_id;primaryKey"`
	AddedAt   time.Time `gorm:"column:added_at;autoCreateTime"`
}

func (compareItemRow) TableName() string {
	return "compare_items"
}

type CompareRepository struct {
	DB *gorm.DB
}

func NewCompareRepository(db *gorm.DB) *CompareRepository {
	return &CompareRepository{DB: db}
}

func (r *CompareRepository) List(ctx context.Context, userID uint) ([]uint64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []compareItemRow
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at ASC, product_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list compare items: %w", err)
	}

	ids := make([]uint64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ProductID)
	}

	return ids, nil
}

func (r *CompareRepository) Add(ctx context.Context, userID uint, productID uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	row := compareItemRow{UserID: userID, ProductID: productID}
	if err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to add compare item: %w", err)
	}

	return nil
}

func (r *CompareRepository) Remove(ctx context.Context, userID uint, productID uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&compareItemRow{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove compare item: %w", err)
	}

	return nil
}

func (r *CompareRepository) Clear(ctx context.Context, userID uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&compareItemRow{}).Error; err != nil {
		return fmt.Errorf("failed to clear compare items: %w", err)
	}

	return nil
}
