package ports

import (
	"context"

	"github.com/khata/ledger-api/internal/core/domain"
)

// PartyRepository is the persistence contract for parties.
type PartyRepository interface {
	Create(ctx context.Context, party *domain.Party) (*domain.Party, error)
	FindByID(ctx context.Context, id string) (*domain.Party, error)
	Update(ctx context.Context, party *domain.Party) (*domain.Party, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q ListQuery) ([]*domain.Party, int64, error)
	SearchByName(ctx context.Context, keyword string, q ListQuery) ([]*domain.Party, int64, error)
}

// ProductRepository is the persistence contract for products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q ListQuery) ([]*domain.Product, int64, error)
}

// CategoryRepository is the persistence contract for product categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q ListQuery) ([]*domain.Category, int64, error)
}
