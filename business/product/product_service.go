package product

import (
	"context"
	"errors"
	"fmt"

	"myStorefront/domain"
	"myStorefront/pkg/logger"
)

// ProductRepository contract interface
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uint64) error
}

// CategoryRepository exposes the fixed category taxonomy.
type CategoryRepository interface {
	ExistsByName(ctx context.Context, name string) (bool, error)
}

var ErrUnknownCategory = errors.New("product category is not in the taxonomy")

type productService struct {
	productRepo  ProductRepository
	categoryRepo CategoryRepository
}

func NewProductService(productRepo ProductRepository, categoryRepo CategoryRepository) *productService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *productService) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all product")
		return nil, fmt.Errorf("context error: %w", err)
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all product", err)
		return nil, err
	}

	return products, nil
}

func (s *productService) GetProductByID(ctx context.Context, id uint64) (domain.Product, error) {
	if id == 0 {
		return domain.Product{}, domain.ErrProductNotFound
	}

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("context error: %w", err)
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find product by id", "product_id", id, err)
		return domain.Product{}, err
	}

	return product, nil
}

// validate runs the ingestion checks: the item view of the product must be
// scorable and the category must belong to the taxonomy.
func (s *productService) validate(ctx context.Context, product *domain.Product) error {
	if product.ProductName == "" {
		return &domain.InvalidItemError{Field: "product_name", Reason: "is required"}
	}
	if product.ProductCategory == "" {
		return &domain.InvalidItemError{Field: "product_category", Reason: "is required"}
	}
	if product.NormalPrice < 0 || product.SalePrice < 0 {
		return &domain.InvalidItemError{Field: "price", Reason: "cannot be negative"}
	}
	if product.Quantity < 0 {
		return &domain.InvalidItemError{Field: "quantity", Reason: "cannot be negative"}
	}

	// ids are assigned by the database; validate the rest of the item view
	item := product.ToItem()
	if product.ID == 0 {
		item.ID = "new"
	}
	if err := item.Validate(); err != nil {
		return err
	}

	if s.categoryRepo != nil {
		ok, err := s.categoryRepo.ExistsByName(ctx, product.ProductCategory)
		if err != nil {
			return fmt.Errorf("failed to check category: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownCategory, product.ProductCategory)
		}
	}

	return nil
}

func (s *productService) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create product")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if err := s.validate(ctx, product); err != nil {
		logger.Error("Invalid product data", err)
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		logger.Error("failed to create new product", err)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	logger.Info("product created successfully", "product_id", product.ID)

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when updating product")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if product.ID == 0 {
		return nil, domain.ErrProductNotFound
	}

	if err := s.validate(ctx, product); err != nil {
		logger.Error("Invalid product data", err)
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		logger.Error("failed to update product", err)
		return nil, err
	}

	updatedProduct, err := s.productRepo.FindByID(ctx, product.ID)
	if err != nil {
		logger.Error("failed to fetch updated product", err)
		return nil, fmt.Errorf("failed to fetch updated product: %w", err)
	}

	logger.Info("product updated success", "product_id", product.ID)

	return &updatedProduct, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uint64) error {
	if id == 0 {
		return domain.ErrProductNotFound
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when deleting product")
		return fmt.Errorf("context error: %w", err)
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete product", err)
		return err
	}

	logger.Info("product deleted success", "product_id", id)

	return nil
}
