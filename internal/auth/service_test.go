// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/garden-api/internal/config"
	"github.com/carterperez-dev/garden-api/internal/core"
	"github.com/carterperez-dev/garden-api/internal/user"
)

type fakeUserStore struct {
	byEmail map[string]*user.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]*user.User{}}
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	u, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, core.ErrNotFound
	}
	return u, nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	for _, u := range s.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, core.ErrNotFound
}

func (s *fakeUserStore) Create(
	ctx context.Context,
	email, passwordHash string,
	gardenData json.RawMessage,
) (*user.User, error) {
	key := strings.ToLower(email)
	if _, exists := s.byEmail[key]; exists {
		return nil, core.ErrDuplicateKey
	}

	u := &user.User{
		ID:           uuid.New(),
		Email:        key,
		PasswordHash: passwordHash,
		GardenData:   gardenData,
	}
	s.byEmail[key] = u
	return u, nil
}

func (s *fakeUserStore) SetPremium(ctx context.Context, id uuid.UUID, premium bool) error {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	u.IsPremium = premium
	return nil
}

type fakeBillingGateway struct {
	active      bool
	ensureErr   error
	checkErr    error
	ensureCalls int
	checkCalls  int
}

func (f *fakeBillingGateway) EnsureCustomer(ctx context.Context, u *user.User) (string, error) {
	f.ensureCalls++
	if f.ensureErr != nil {
		return "", f.ensureErr
	}
	id := "cus_test"
	u.StripeCustomerID = &id
	return id, nil
}

func (f *fakeBillingGateway) HasActiveSubscription(ctx context.Context, u *user.User) (bool, error) {
	f.checkCalls++
	return f.active, f.checkErr
}

func newTestAuthService(t *testing.T, billing BillingGateway) (*Service, *fakeUserStore) {
	t.Helper()

	store := newFakeUserStore()
	manager := newTestJWTManager(t, 24*time.Hour)
	economy := config.EconomyConfig{MaxTaskReward: 50, StartingCoins: 50, FreeSlotLimit: 3}

	return NewService(store, manager, billing, economy), store
}

func TestRegister(t *testing.T) {
	t.Run("creates account with starter garden, no session", func(t *testing.T) {
		svc, store := newTestAuthService(t, nil)

		err := svc.Register(context.Background(), RegisterRequest{
			Email:    "Gardener@Example.com",
			Password: "correct-horse-battery",
		})
		require.NoError(t, err)

		u, err := store.GetByEmail(context.Background(), "gardener@example.com")
		require.NoError(t, err)
		assert.False(t, u.IsPremium)

		// The stored hash is argon2id, never the plaintext.
		assert.True(t, strings.HasPrefix(u.PasswordHash, "$argon2id$"))

		var blob struct {
			Coins         int      `json:"coins"`
			UnlockedItems []string `json:"unlockedItems"`
		}
		require.NoError(t, json.Unmarshal(u.GardenData, &blob))
		assert.Equal(t, 50, blob.Coins)
		assert.ElementsMatch(t, []string{"basic", "terra", "grape"}, blob.UnlockedItems)
	})

	t.Run("creates a billing customer", func(t *testing.T) {
		gateway := &fakeBillingGateway{}
		svc, store := newTestAuthService(t, gateway)

		err := svc.Register(context.Background(), RegisterRequest{
			Email:    "gardener@example.com",
			Password: "correct-horse-battery",
		})
		require.NoError(t, err)

		assert.Equal(t, 1, gateway.ensureCalls)

		u, err := store.GetByEmail(context.Background(), "gardener@example.com")
		require.NoError(t, err)
		assert.True(t, u.HasStripeCustomer())
	})

	t.Run("billing outage never blocks registration", func(t *testing.T) {
		gateway := &fakeBillingGateway{ensureErr: assert.AnError}
		svc, store := newTestAuthService(t, gateway)

		err := svc.Register(context.Background(), RegisterRequest{
			Email:    "gardener@example.com",
			Password: "correct-horse-battery",
		})
		require.NoError(t, err)

		// Checkout creates the customer lazily later on.
		u, err := store.GetByEmail(context.Background(), "gardener@example.com")
		require.NoError(t, err)
		assert.False(t, u.HasStripeCustomer())
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, _ := newTestAuthService(t, nil)

		req := RegisterRequest{Email: "gardener@example.com", Password: "correct-horse-battery"}
		require.NoError(t, svc.Register(context.Background(), req))

		err := svc.Register(context.Background(), req)
		assert.ErrorIs(t, err, ErrEmailExists)
	})
}

func TestLogin(t *testing.T) {
	register := func(t *testing.T, svc *Service) {
		t.Helper()
		err := svc.Register(context.Background(), RegisterRequest{
			Email:    "gardener@example.com",
			Password: "correct-horse-battery",
		})
		require.NoError(t, err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		svc, _ := newTestAuthService(t, nil)
		register(t, svc)

		resp, err := svc.Login(context.Background(), LoginRequest{
			Email:    "gardener@example.com",
			Password: "correct-horse-battery",
		})
		require.NoError(t, err)
		assert.True(t, resp.Auth)
		assert.NotEmpty(t, resp.Token)
		assert.NotEmpty(t, resp.Data)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _ := newTestAuthService(t, nil)
		register(t, svc)

		_, err := svc.Login(context.Background(), LoginRequest{
			Email:    "gardener@example.com",
			Password: "wrong",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, _ := newTestAuthService(t, nil)

		_, err := svc.Login(context.Background(), LoginRequest{
			Email:    "nobody@example.com",
			Password: "whatever",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("premium re-check flips the stored flag", func(t *testing.T) {
		gateway := &fakeBillingGateway{active: true}
		svc, store := newTestAuthService(t, gateway)
		register(t, svc)

		resp, err := svc.Login(context.Background(), LoginRequest{
			Email:    "gardener@example.com",
			Password: "correct-horse-battery",
		})
		require.NoError(t, err)

		assert.True(t, resp.IsPremium)
		assert.Equal(t, 1, gateway.checkCalls)

		u, err := store.GetByEmail(context.Background(), "gardener@example.com")
		require.NoError(t, err)
		assert.True(t, u.IsPremium)
	})

	t.Run("provider outage never blocks login", func(t *testing.T) {
		gateway := &fakeBillingGateway{checkErr: assert.AnError}
		svc, store := newTestAuthService(t, gateway)
		register(t, svc)

		u, err := store.GetByEmail(context.Background(), "gardener@example.com")
		require.NoError(t, err)
		u.IsPremium = true

		resp, err := svc.Login(context.Background(), LoginRequest{
			Email:    "gardener@example.com",
			Password: "correct-horse-battery",
		})
		require.NoError(t, err)

		// Stored flag stands until a successful check says otherwise.
		assert.True(t, resp.IsPremium)
	})

	t.Run("no billing account skips the provider", func(t *testing.T) {
		gateway := &fakeBillingGateway{active: true, ensureErr: assert.AnError}
		svc, _ := newTestAuthService(t, gateway)
		register(t, svc)

		resp, err := svc.Login(context.Background(), LoginRequest{
			Email:    "gardener@example.com",
			Password: "correct-horse-battery",
		})
		require.NoError(t, err)

		assert.False(t, resp.IsPremium)
		assert.Zero(t, gateway.checkCalls)
	})
}
