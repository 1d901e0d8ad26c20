package postgres

import (
	"context"
	"errors"
	"fmt"

	"myStorefront/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// catalogColumns are the columns a catalog write may set. id and created_at
// are owned by the database.
var catalogColumns = []string{
	"product_name",
	"product_category",
	"normal_price",
	"sale_price",
	"rating",
	"review_count",
	"features",
	"quantity",
}

// ProductRepository is the catalog the recommender ranks against.
type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{DB: db}
}

func (r *ProductRepository) conn(ctx context.Context) (*gorm.DB, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	return r.DB.WithContext(ctx), nil
}

func insertProduct(tx *gorm.DB, product *domain.Product) *gorm.DB {
	return tx.Select(catalogColumns).Create(product)
}

// listCatalog orders by id so ranking ties resolve the same way between calls.
func listCatalog(tx *gorm.DB, dest *[]domain.Product) *gorm.DB {
	return tx.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).Find(dest)
}

// updateProduct writes every catalog column, zero values included, so a
// cleared sale price or emptied feature list is persisted.
func updateProduct(tx *gorm.DB, product *domain.Product) *gorm.DB {
	return tx.Model(&domain.Product{}).
		Where("id = ?", product.ID).
		Select(catalogColumns).
		Updates(product)
}

func deleteProduct(tx *gorm.DB, id uint64) *gorm.DB {
	return tx.Where("id = ?", id).Delete(&domain.Product{})
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	tx, err := r.conn(ctx)
	if err != nil {
		return err
	}
	if err := insertProduct(tx, product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint64) (domain.Product, error) {
	tx, err := r.conn(ctx)
	if err != nil {
		return domain.Product{}, err
	}

	var product domain.Product
	if err := tx.Where("id = ?", id).Take(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("failed to find product %d: %w", id, err)
	}
	return product, nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	tx, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}

	var products []domain.Product
	if err := listCatalog(tx, &products).Error; err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	tx, err := r.conn(ctx)
	if err != nil {
		return err
	}

	res := updateProduct(tx, product)
	switch {
	case res.Error != nil:
		return fmt.Errorf("failed to update product %d: %w", product.ID, res.Error)
	case res.RowsAffected == 0:
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uint64) error {
	tx, err := r.conn(ctx)
	if err != nil {
		return err
	}

	res := deleteProduct(tx, id)
	switch {
	case res.Error != nil:
		return fmt.Errorf("failed to delete product %d: %w", id, res.Error)
	case res.RowsAffected == 0:
		return domain.ErrProductNotFound
	}
	return nil
}
