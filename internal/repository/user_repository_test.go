package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinema-box-office/internal/model"
)

func TestRefreshTokenLifecycle(t *testing.T) {
	users := NewUserRepo(NewStore())
	now := time.Date(2024, 11, 12, 12, 0, 0, 0, time.UTC)

	token := model.RefreshToken{
		Username:  "admin",
		TokenHash: "abc123",
		ExpiresAt: now.Add(24 * time.Hour),
	}
	users.StoreRefreshToken(token)

	got, err := users.LookupRefreshToken("abc123", now)
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Username)

	users.DeleteRefreshToken("abc123")
	_, err = users.LookupRefreshToken("abc123", now)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRefreshTokenExpiry(t *testing.T) {
	users := NewUserRepo(NewStore())
	now := time.Date(2024, 11, 12, 12, 0, 0, 0, time.UTC)

	users.StoreRefreshToken(model.RefreshToken{
		Username:  "sell",
		TokenHash: "expired",
		ExpiresAt: now.Add(-time.Minute),
	})

	_, err := users.LookupRefreshToken("expired", now)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	// The expired token was removed, not just rejected.
	_, err = users.LookupRefreshToken("expired", now.Add(-time.Hour))
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestLookupUnknownRefreshToken(t *testing.T) {
	users := NewUserRepo(NewStore())
	_, err := users.LookupRefreshToken("never-issued", time.Now())
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
