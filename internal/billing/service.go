// AngelaMos | 2026
// service.go

package billing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/carterperez-dev/garden-api/internal/core"
	"github.com/carterperez-dev/garden-api/internal/user"
)

// ErrNoBillingAccount means the user never went through checkout, so there
// is no customer to open a portal for.
var ErrNoBillingAccount = errors.New("no billing account for user")

type UserProvider interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	SetPremium(ctx context.Context, id uuid.UUID, premium bool) error
	SetStripeCustomerID(ctx context.Context, id uuid.UUID, customerID string) error
}

// Service brokers between user rows and the payment provider. The premium
// flag on the user row is a cache of provider truth; VerifyPremium is the
// reconciliation point.
type Service struct {
	users    UserProvider
	provider Provider
}

func NewService(users UserProvider, provider Provider) *Service {
	return &Service{
		users:    users,
		provider: provider,
	}
}

// Checkout opens a subscription checkout session, creating and persisting a
// provider customer on first use.
func (s *Service) Checkout(ctx context.Context, userID uuid.UUID) (string, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("get user: %w", err)
	}

	customerID, err := s.EnsureCustomer(ctx, u)
	if err != nil {
		return "", err
	}

	url, err := s.provider.CreateCheckoutSession(ctx, customerID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrGateway, err)
	}
	return url, nil
}

// Portal opens the provider's self-service billing portal.
func (s *Service) Portal(ctx context.Context, userID uuid.UUID) (string, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("get user: %w", err)
	}

	if !u.HasStripeCustomer() {
		return "", ErrNoBillingAccount
	}

	url, err := s.provider.CreatePortalSession(ctx, *u.StripeCustomerID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrGateway, err)
	}
	return url, nil
}

// VerifyPremium asks the provider for subscription truth and persists any
// change to the stored flag. Users without a billing account are simply not
// premium.
func (s *Service) VerifyPremium(ctx context.Context, userID uuid.UUID) (bool, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("get user: %w", err)
	}

	if !u.HasStripeCustomer() {
		return false, nil
	}

	active, err := s.provider.HasActiveSubscription(ctx, *u.StripeCustomerID)
	if err != nil {
		return false, fmt.Errorf("%w: %v", core.ErrGateway, err)
	}

	if active != u.IsPremium {
		if err := s.users.SetPremium(ctx, userID, active); err != nil {
			return false, fmt.Errorf("persist premium flag: %w", err)
		}
	}
	return active, nil
}

// HasActiveSubscription satisfies the login-time premium re-check without
// touching the stored flag; the caller decides what to persist.
func (s *Service) HasActiveSubscription(ctx context.Context, u *user.User) (bool, error) {
	if !u.HasStripeCustomer() {
		return false, nil
	}
	return s.provider.HasActiveSubscription(ctx, *u.StripeCustomerID)
}

// EnsureCustomer returns the user's provider customer id, creating and
// persisting one if missing. Registration calls this eagerly so the
// checkout flow starts warm; checkout calls it again as the fallback.
func (s *Service) EnsureCustomer(ctx context.Context, u *user.User) (string, error) {
	if u.HasStripeCustomer() {
		return *u.StripeCustomerID, nil
	}

	customerID, err := s.provider.CreateCustomer(ctx, u.Email, u.ID.String())
	if err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrGateway, err)
	}

	if err := s.users.SetStripeCustomerID(ctx, u.ID, customerID); err != nil {
		// The orphaned provider customer is harmless; the next checkout
		// attempt creates a fresh one.
		slog.Warn("persist stripe customer id failed",
			"user_id", u.ID,
			"error", err,
		)
		return "", fmt.Errorf("persist customer id: %w", err)
	}
	return customerID, nil
}
