package ports

import (
	"context"

	"github.com/khata/ledger-api/internal/core/domain"
)

// AccountRepository is the persistence contract for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByResetToken(ctx context.Context, token string) (*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) (*domain.Account, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q ListQuery) ([]*domain.Account, int64, error)
	SearchByName(ctx context.Context, keyword string, q ListQuery) ([]*domain.Account, int64, error)
}

// PrincipalLoader resolves a token subject to the account it authenticates.
// The request authenticator depends only on this capability, not on a
// concrete store.
type PrincipalLoader interface {
	LoadBySubject(ctx context.Context, subject string) (*domain.Account, error)
}
