package auth

import (
	"testing"
	"time"

	"github.com/bloghub/backend/internal/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, accessTTL time.Duration) *Manager {
	t.Helper()
	m, err := NewManager(config.JWTConfig{
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: time.Hour,
		SigningKey:      "test-signing-key",
	})
	require.NoError(t, err)
	return m
}

func TestManager_NewJWTParse(t *testing.T) {
	m := newTestManager(t, time.Minute)
	userID := uuid.New()

	token, ttl, err := m.NewJWT(&userID)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, ttl)

	subject, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), subject)
}

func TestManager_ParseExpiredToken(t *testing.T) {
	m := newTestManager(t, -time.Minute)
	userID := uuid.New()

	token, _, err := m.NewJWT(&userID)
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.Error(t, err)
}

func TestManager_ParseWrongKey(t *testing.T) {
	m := newTestManager(t, time.Minute)
	userID := uuid.New()

	token, _, err := m.NewJWT(&userID)
	require.NoError(t, err)

	other, err := NewManager(config.JWTConfig{
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
		SigningKey:      "another-key",
	})
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestNewManager_Validation(t *testing.T) {
	_, err := NewManager(config.JWTConfig{})
	assert.Error(t, err)

	_, err = NewManager(config.JWTConfig{SigningKey: "k"})
	assert.Error(t, err)

	_, err = NewManager(config.JWTConfig{SigningKey: "k", AccessTokenTTL: time.Minute})
	assert.Error(t, err)
}
