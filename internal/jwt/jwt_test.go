package jwt

import (
	"testing"
	"time"

	"github.com/lumiforge/tierhub-backend/internal/config"
	app_errors "github.com/lumiforge/tierhub-backend/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager() *JWTManager {
	return NewJWTManager(&config.Config{
		JWTSecretKey:    "test-secret",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 48 * time.Hour,
	})
}

func TestNewJWTManager_NoSecret(t *testing.T) {
	assert.Nil(t, NewJWTManager(&config.Config{}))
}

func TestGenerateAndValidate(t *testing.T) {
	m := newManager()

	access, refresh, err := m.GenerateTokenPair("u1", "a@example.com", "member", 3*time.Hour)
	require.NoError(t, err)

	claims, err := m.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "member", claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.WithinDuration(t, time.Now().Add(3*time.Hour), claims.ExpiresAt.Time, time.Minute)

	rc, err := m.ValidateToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, rc.TokenType)
	assert.WithinDuration(t, time.Now().Add(48*time.Hour), rc.ExpiresAt.Time, time.Minute)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	access, _, err := newManager().GenerateTokenPair("u1", "a@example.com", "member", 0)
	require.NoError(t, err)

	other := NewJWTManager(&config.Config{JWTSecretKey: "other"})
	_, err = other.ValidateToken(access)
	assert.ErrorIs(t, err, app_errors.ErrFailedToParseToken)
}

func TestGetTokenExpiry(t *testing.T) {
	m := newManager()
	assert.Equal(t, time.Hour, m.GetTokenExpiry(TokenTypeAccess))
	assert.Equal(t, 48*time.Hour, m.GetTokenExpiry(TokenTypeRefresh))

	defaults := NewJWTManager(&config.Config{JWTSecretKey: "s"})
	assert.Equal(t, 24*time.Hour, defaults.GetTokenExpiry(TokenTypeAccess))
	assert.Equal(t, 7*24*time.Hour, defaults.GetTokenExpiry(TokenTypeRefresh))
}

func TestExtractTokenFromHeader(t *testing.T) {
	_, err := ExtractTokenFromHeader("")
	assert.ErrorIs(t, err, app_errors.ErrAuthHeaderEmpty)

	_, err = ExtractTokenFromHeader("Basic abc")
	assert.ErrorIs(t, err, app_errors.ErrAuthHeaderWrongFormat)

	_, err = ExtractTokenFromHeader("Bearer ")
	assert.ErrorIs(t, err, app_errors.ErrAuthHeaderWrongFormat)

	tok, err := ExtractTokenFromHeader("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", tok)
}
