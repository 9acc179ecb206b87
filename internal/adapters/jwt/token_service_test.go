package token_adapter

import (
	"context"
	"marketplace-service/internal/core/domain"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc, err := NewTokenService("test-secret")
	require.NoError(t, err)

	token, err := svc.GenerateToken(context.Background(), domain.Session{UserID: 42, Email: "a@b.c", Role: domain.RoleAdmin}, time.Hour)
	require.NoError(t, err)

	session, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), session.UserID)
	assert.Equal(t, "a@b.c", session.Email)
	assert.True(t, session.IsAdmin())
}

func TestTokenService_Rejects(t *testing.T) {
	svc, err := NewTokenService("test-secret")
	require.NoError(t, err)
	other, err := NewTokenService("another-secret")
	require.NoError(t, err)

	foreign, err := other.GenerateToken(context.Background(), domain.Session{UserID: 1, Role: domain.RoleAdmin}, time.Hour)
	require.NoError(t, err)

	anonymous, err := svc.GenerateToken(context.Background(), domain.Session{UserID: 0, Role: domain.RoleAdmin}, time.Hour)
	require.NoError(t, err)

	expired, err := svc.GenerateToken(context.Background(), domain.Session{UserID: 1, Role: domain.RoleUser}, -time.Minute)
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": 1, "role": domain.RoleAdmin, "iss": tokenIssuer,
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := map[string]string{
		"wrong key":    foreign,
		"no user":      anonymous,
		"expired":      expired,
		"alg none":     unsigned,
		"garbage":      "not.a.token",
		"empty string": "",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ValidateToken(context.Background(), token)
			assert.ErrorIs(t, err, domain.ErrTokenInvalid)
		})
	}
}

func TestNewTokenService_RequiresKey(t *testing.T) {
	_, err := NewTokenService("")
	assert.Error(t, err)
}
