package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/khata/ledger-api/internal/core/domain"
	"github.com/khata/ledger-api/internal/core/ports"
)

// ProductService implements product CRUD. A product's category reference is
// checked against the category store before persisting.
type ProductService struct {
	products   ports.ProductRepository
	categories ports.CategoryRepository
	logger     zerolog.Logger
}

func NewProductService(products ports.ProductRepository, categories ports.CategoryRepository, logger zerolog.Logger) *ProductService {
	return &ProductService{products: products, categories: categories, logger: logger}
}

func (s *ProductService) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := s.checkCategory(ctx, product.CategoryID); err != nil {
		return nil, err
	}

	created, err := s.products.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("sku", created.SKU).Str("name", created.Name).Msg("product created")
	return created, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *ProductService) Update(ctx context.Context, id string, product *domain.Product) (*domain.Product, error) {
	existing, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, product.CategoryID); err != nil {
		return nil, err
	}

	existing.SKU = product.SKU
	existing.Name = product.Name
	existing.Quantity = product.Quantity
	existing.PurchasePrice = product.PurchasePrice
	existing.SellingPrice = product.SellingPrice
	existing.CategoryID = product.CategoryID

	return s.products.Update(ctx, existing)
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}

func (s *ProductService) List(ctx context.Context, q ports.ListQuery) ([]*domain.Product, int64, error) {
	return s.products.List(ctx, q.Normalized())
}

func (s *ProductService) checkCategory(ctx context.Context, categoryID string) error {
	if categoryID == "" {
		return nil
	}
	_, err := s.categories.FindByID(ctx, categoryID)
	return err
}
