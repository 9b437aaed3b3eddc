// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/garden-api/internal/config"
	"github.com/carterperez-dev/garden-api/internal/core"
)

func newTestJWTManager(t *testing.T, expire time.Duration) *JWTManager {
	t.Helper()

	dir := t.TempDir()
	privPath := filepath.Join(dir, "jwt-private.pem")
	pubPath := filepath.Join(dir, "jwt-public.pem")

	require.NoError(t, GenerateKeyPair(privPath, pubPath))

	manager, err := NewJWTManager(config.JWTConfig{
		PrivateKeyPath:    privPath,
		PublicKeyPath:     pubPath,
		AccessTokenExpire: expire,
		Issuer:            "garden-api",
		Audience:          "garden-client",
	})
	require.NoError(t, err)
	return manager
}

func TestAccessTokenRoundTrip(t *testing.T) {
	manager := newTestJWTManager(t, 24*time.Hour)

	token, err := manager.CreateAccessToken("user-123", "gardener@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.VerifyAccessToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "gardener@example.com", claims.Email)
}

func TestVerifyExpiredToken(t *testing.T) {
	manager := newTestJWTManager(t, -time.Minute)

	token, err := manager.CreateAccessToken("user-123", "gardener@example.com")
	require.NoError(t, err)

	_, err = manager.VerifyAccessToken(context.Background(), token)
	assert.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestVerifyTamperedToken(t *testing.T) {
	manager := newTestJWTManager(t, 24*time.Hour)

	token, err := manager.CreateAccessToken("user-123", "gardener@example.com")
	require.NoError(t, err)

	tampered := token[:len(token)-4] + "AAAA"

	_, err = manager.VerifyAccessToken(context.Background(), tampered)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestVerifyTokenFromDifferentKey(t *testing.T) {
	signer := newTestJWTManager(t, 24*time.Hour)
	verifier := newTestJWTManager(t, 24*time.Hour)

	token, err := signer.CreateAccessToken("user-123", "gardener@example.com")
	require.NoError(t, err)

	_, err = verifier.VerifyAccessToken(context.Background(), token)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestVerifyGarbageToken(t *testing.T) {
	manager := newTestJWTManager(t, 24*time.Hour)

	_, err := manager.VerifyAccessToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestJWKSHandler(t *testing.T) {
	manager := newTestJWTManager(t, 24*time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/.well-known/jwks.json", nil)
	rec := httptest.NewRecorder()
	manager.GetJWKSHandler()(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"keys"`)
	assert.Contains(t, rec.Body.String(), manager.GetKeyID())
}
