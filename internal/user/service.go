// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(
	ctx context.Context,
	email, passwordHash string,
	gardenData json.RawMessage,
) (*User, error) {
	u := &User{
		ID:           uuid.New(),
		Email:        strings.ToLower(email),
		PasswordHash: passwordHash,
		GardenData:   gardenData,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	return s.repo.GetByEmail(ctx, strings.ToLower(email))
}

func (s *Service) SetPremium(
	ctx context.Context,
	id uuid.UUID,
	premium bool,
) error {
	return s.repo.SetPremium(ctx, id, premium)
}

func (s *Service) SetStripeCustomerID(
	ctx context.Context,
	id uuid.UUID,
	customerID string,
) error {
	return s.repo.SetStripeCustomerID(ctx, id, customerID)
}
