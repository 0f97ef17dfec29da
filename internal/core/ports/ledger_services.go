package ports

import (
	"context"

	"github.com/khata/ledger-api/internal/core/domain"
)

// AccountUpdateInput carries the mutable account fields. Password is
// re-hashed only when non-empty.
type AccountUpdateInput struct {
	FullName    string
	PhoneNumber string
	Password    string
}

// AccountService implements account CRUD for the /users resource.
type AccountService interface {
	Create(ctx context.Context, input RegisterInput) (*domain.Account, error)
	Get(ctx context.Context, id string) (*domain.Account, error)
	Update(ctx context.Context, id string, input AccountUpdateInput) (*domain.Account, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q ListQuery) ([]*domain.Account, int64, error)
	SearchByName(ctx context.Context, keyword string, q ListQuery) ([]*domain.Account, int64, error)
}

// PartyService implements party CRUD and search.
type PartyService interface {
	Create(ctx context.Context, party *domain.Party) (*domain.Party, error)
	Get(ctx context.Context, id string) (*domain.Party, error)
	Update(ctx context.Context, id string, party *domain.Party) (*domain.Party, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q ListQuery) ([]*domain.Party, int64, error)
	SearchByName(ctx context.Context, keyword string, q ListQuery) ([]*domain.Party, int64, error)
}

// ProductService implements product CRUD.
type ProductService interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, id string, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q ListQuery) ([]*domain.Product, int64, error)
}

// CategoryService implements category CRUD.
type CategoryService interface {
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	Get(ctx context.Context, id string) (*domain.Category, error)
	Update(ctx context.Context, id string, category *domain.Category) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q ListQuery) ([]*domain.Category, int64, error)
}
