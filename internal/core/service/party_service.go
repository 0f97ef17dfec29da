package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/khata/ledger-api/internal/core/domain"
	"github.com/khata/ledger-api/internal/core/ports"
)

// PartyService implements CRUD and substring search for customers and vendors.
type PartyService struct {
	parties ports.PartyRepository
	logger  zerolog.Logger
}

func NewPartyService(parties ports.PartyRepository, logger zerolog.Logger) *PartyService {
	return &PartyService{parties: parties, logger: logger}
}

func (s *PartyService) Create(ctx context.Context, party *domain.Party) (*domain.Party, error) {
	created, err := s.parties.Create(ctx, party)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("name", created.Name).Str("type", created.PartyType).Msg("party created")
	return created, nil
}

func (s *PartyService) Get(ctx context.Context, id string) (*domain.Party, error) {
	return s.parties.FindByID(ctx, id)
}

func (s *PartyService) Update(ctx context.Context, id string, party *domain.Party) (*domain.Party, error) {
	existing, err := s.parties.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = party.Name
	existing.Email = party.Email
	existing.PhoneNumber = party.PhoneNumber
	existing.Address = party.Address
	existing.BusinessName = party.BusinessName
	existing.PartyType = party.PartyType

	return s.parties.Update(ctx, existing)
}

func (s *PartyService) Delete(ctx context.Context, id string) error {
	if _, err := s.parties.FindByID(ctx, id); err != nil {
		return err
	}
	return s.parties.Delete(ctx, id)
}

func (s *PartyService) List(ctx context.Context, q ports.ListQuery) ([]*domain.Party, int64, error) {
	return s.parties.List(ctx, q.Normalized())
}

func (s *PartyService) SearchByName(ctx context.Context, keyword string, q ports.ListQuery) ([]*domain.Party, int64, error) {
	return s.parties.SearchByName(ctx, keyword, q.Normalized())
}
