// AngelaMos | 2026
// entity.go

package user

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User is one garden account. GardenData holds the full serialized garden
// blob (coins, unlocked items, plants, habits); the server only ever treats
// coins and unlockedItems inside it as authoritative.
type User struct {
	ID               uuid.UUID       `db:"id"`
	Email            string          `db:"email"`
	PasswordHash     string          `db:"password_hash"`
	GardenData       json.RawMessage `db:"garden_data"`
	StripeCustomerID *string         `db:"stripe_customer_id"`
	IsPremium        bool            `db:"is_premium"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}

func (u *User) HasStripeCustomer() bool {
	return u.StripeCustomerID != nil && *u.StripeCustomerID != ""
}
