// AngelaMos | 2026
// dto.go

package auth

import (
	"encoding/json"
)

type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterResponse struct {
	Message string `json:"message"`
}

// AuthResponse is what login hands back: a bearer token plus the garden
// state so the client can render without a second round trip.
type AuthResponse struct {
	Auth      bool            `json:"auth"`
	Token     string          `json:"token"`
	Data      json.RawMessage `json:"data"`
	IsPremium bool            `json:"isPremium"`
}
