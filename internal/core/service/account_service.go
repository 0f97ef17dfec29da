package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/khata/ledger-api/internal/core/domain"
	"github.com/khata/ledger-api/internal/core/ports"
)

// AccountService implements the /users CRUD resource. Unlike registration it
// sends no verification mail; that is the auth flow's concern.
type AccountService struct {
	accounts ports.AccountRepository
	logger   zerolog.Logger
}

func NewAccountService(accounts ports.AccountRepository, logger zerolog.Logger) *AccountService {
	return &AccountService{accounts: accounts, logger: logger}
}

func (s *AccountService) Create(ctx context.Context, input ports.RegisterInput) (*domain.Account, error) {
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: string(hash),
		PhoneNumber:  input.PhoneNumber,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.accounts.Create(ctx, account)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("email", created.Email).Msg("account created")
	return created, nil
}

func (s *AccountService) Get(ctx context.Context, id string) (*domain.Account, error) {
	return s.accounts.FindByID(ctx, id)
}

// Update changes name and phone; the password is re-hashed only when a new
// one is provided. Email is immutable, it is the token subject.
func (s *AccountService) Update(ctx context.Context, id string, input ports.AccountUpdateInput) (*domain.Account, error) {
	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	account.FullName = input.FullName
	account.PhoneNumber = input.PhoneNumber
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		account.PasswordHash = string(hash)
	}
	account.UpdatedAt = time.Now().UTC()

	updated, err := s.accounts.Update(ctx, account)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("id", id).Msg("account updated")
	return updated, nil
}

func (s *AccountService) Delete(ctx context.Context, id string) error {
	if _, err := s.accounts.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.accounts.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("id", id).Msg("account deleted")
	return nil
}

func (s *AccountService) List(ctx context.Context, q ports.ListQuery) ([]*domain.Account, int64, error) {
	return s.accounts.List(ctx, q.Normalized())
}

func (s *AccountService) SearchByName(ctx context.Context, keyword string, q ports.ListQuery) ([]*domain.Account, int64, error) {
	return s.accounts.SearchByName(ctx, keyword, q.Normalized())
}
