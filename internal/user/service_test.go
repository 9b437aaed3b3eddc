// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/garden-api/internal/core"
)

type memRepository struct {
	byEmail map[string]*User
}

func (r *memRepository) Create(ctx context.Context, u *User) error {
	if _, exists := r.byEmail[u.Email]; exists {
		return core.ErrDuplicateKey
	}
	r.byEmail[u.Email] = u
	return nil
}

func (r *memRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, core.ErrNotFound
}

func (r *memRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, core.ErrNotFound
}

func (r *memRepository) SetPremium(ctx context.Context, id uuid.UUID, premium bool) error {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	u.IsPremium = premium
	return nil
}

func (r *memRepository) SetStripeCustomerID(ctx context.Context, id uuid.UUID, customerID string) error {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	u.StripeCustomerID = &customerID
	return nil
}

func TestCreateNormalizesEmail(t *testing.T) {
	repo := &memRepository{byEmail: map[string]*User{}}
	svc := NewService(repo)

	data := json.RawMessage(`{"coins":50}`)
	u, err := svc.Create(context.Background(), "Gardener@Example.COM", "hash", data)
	require.NoError(t, err)

	assert.Equal(t, "gardener@example.com", u.Email)
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.Equal(t, data, u.GardenData)

	// Lookups are case-insensitive through the same normalization.
	found, err := svc.GetByEmail(context.Background(), "GARDENER@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)
}

func TestHasStripeCustomer(t *testing.T) {
	var u User
	assert.False(t, u.HasStripeCustomer())

	empty := ""
	u.StripeCustomerID = &empty
	assert.False(t, u.HasStripeCustomer())

	id := "cus_123"
	u.StripeCustomerID = &id
	assert.True(t, u.HasStripeCustomer())
}
