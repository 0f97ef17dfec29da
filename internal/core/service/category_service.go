package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/khata/ledger-api/internal/core/domain"
	"github.com/khata/ledger-api/internal/core/ports"
)

type CategoryService struct {
	categories ports.CategoryRepository
	logger     zerolog.Logger
}

func NewCategoryService(categories ports.CategoryRepository, logger zerolog.Logger) *CategoryService {
	return &CategoryService{categories: categories, logger: logger}
}

func (s *CategoryService) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	created, err := s.categories.Create(ctx, category)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("title", created.Title).Msg("category created")
	return created, nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	return s.categories.FindByID(ctx, id)
}

func (s *CategoryService) Update(ctx context.Context, id string, category *domain.Category) (*domain.Category, error) {
	existing, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Title = category.Title
	return s.categories.Update(ctx, existing)
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return err
	}
	return s.categories.Delete(ctx, id)
}

func (s *CategoryService) List(ctx context.Context, q ports.ListQuery) ([]*domain.Category, int64, error) {
	return s.categories.List(ctx, q.Normalized())
}
