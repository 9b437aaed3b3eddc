// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/carterperez-dev/garden-api/internal/config"
	"github.com/carterperez-dev/garden-api/internal/core"
	"github.com/carterperez-dev/garden-api/internal/garden"
	"github.com/carterperez-dev/garden-api/internal/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
)

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	Create(
		ctx context.Context,
		email, passwordHash string,
		gardenData json.RawMessage,
	) (*user.User, error)
	SetPremium(ctx context.Context, id uuid.UUID, premium bool) error
}

// BillingGateway is the slice of the billing service auth needs. Both
// calls are best effort: a payment-provider outage must never block
// registration or sign-in.
type BillingGateway interface {
	EnsureCustomer(ctx context.Context, u *user.User) (string, error)
	HasActiveSubscription(ctx context.Context, u *user.User) (bool, error)
}

type Service struct {
	users   UserProvider
	jwt     *JWTManager
	billing BillingGateway
	economy config.EconomyConfig
}

func NewService(
	users UserProvider,
	jwtManager *JWTManager,
	billing BillingGateway,
	economy config.EconomyConfig,
) *Service {
	return &Service{
		users:   users,
		jwt:     jwtManager,
		billing: billing,
		economy: economy,
	}
}

// Register creates the account and its starter garden. No session is
// issued; the client signs in afterwards.
func (s *Service) Register(ctx context.Context, req RegisterRequest) error {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	blob := garden.DefaultBlob(s.economy.StartingCoins)
	gardenData, err := json.Marshal(blob)
	if err != nil {
		return fmt.Errorf("marshal starter garden: %w", err)
	}

	u, err := s.users.Create(ctx, req.Email, passwordHash, gardenData)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return ErrEmailExists
		}
		return fmt.Errorf("create user: %w", err)
	}

	if s.billing != nil {
		if _, err := s.billing.EnsureCustomer(ctx, u); err != nil {
			// Checkout creates the customer lazily if this fails.
			slog.Warn("billing customer setup failed",
				"user_id", u.ID,
				"error", err,
			)
		}
	}

	return nil
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*AuthResponse, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, err := core.VerifyPasswordTimingSafe(req.Password, &u.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return nil, ErrInvalidCredentials
	}

	s.refreshPremium(ctx, u)

	return s.buildAuthResponse(u)
}

// refreshPremium reconciles the stored premium flag with the payment
// provider. Failures only log; the stored flag stands until the next
// successful check.
func (s *Service) refreshPremium(ctx context.Context, u *user.User) {
	if s.billing == nil || !u.HasStripeCustomer() {
		return
	}

	active, err := s.billing.HasActiveSubscription(ctx, u)
	if err != nil {
		slog.Warn("premium re-check failed",
			"user_id", u.ID,
			"error", err,
		)
		return
	}

	if active != u.IsPremium {
		if err := s.users.SetPremium(ctx, u.ID, active); err != nil {
			slog.Warn("persist premium flag failed",
				"user_id", u.ID,
				"error", err,
			)
			return
		}
		u.IsPremium = active
	}
}

func (s *Service) buildAuthResponse(u *user.User) (*AuthResponse, error) {
	token, err := s.jwt.CreateAccessToken(u.ID.String(), u.Email)
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	data := u.GardenData
	if len(data) == 0 {
		blob := garden.DefaultBlob(s.economy.StartingCoins)
		if data, err = json.Marshal(blob); err != nil {
			return nil, fmt.Errorf("marshal starter garden: %w", err)
		}
	}

	return &AuthResponse{
		Auth:      true,
		Token:     token,
		Data:      data,
		IsPremium: u.IsPremium,
	}, nil
}
