package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthenticator(accessExp, refreshExp time.Duration) *JWTAuthenticator {
	return NewJWTAuthenticator("access-secret", "refresh-secret", "sportmap", "sportmap", accessExp, refreshExp)
}

func TestJWTAuthenticator(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		a := newTestAuthenticator(time.Hour, 24*time.Hour)

		access, refresh, err := a.GenerateTokens(42, true)
		require.NoError(t, err)
		assert.NotEqual(t, access, refresh)

		parsed, err := a.ValidateAccessToken(access)
		require.NoError(t, err)
		claims := parsed.Claims.(jwt.MapClaims)
		assert.Equal(t, float64(42), claims["sub"])
		assert.Equal(t, true, claims["admin"])

		parsedRefresh, err := a.ValidateRefreshToken(refresh)
		require.NoError(t, err)
		refreshClaims := parsedRefresh.Claims.(jwt.MapClaims)
		assert.Equal(t, float64(42), refreshClaims["sub"])
	})

	t.Run("tokens are not interchangeable", func(t *testing.T) {
		a := newTestAuthenticator(time.Hour, 24*time.Hour)

		access, refresh, err := a.GenerateTokens(42, false)
		require.NoError(t, err)

		_, err = a.ValidateAccessToken(refresh)
		assert.Error(t, err, "refresh token must not pass access validation")
		_, err = a.ValidateRefreshToken(access)
		assert.Error(t, err, "access token must not pass refresh validation")
	})

	t.Run("expired access token", func(t *testing.T) {
		a := newTestAuthenticator(-time.Minute, 24*time.Hour)

		access, _, err := a.GenerateTokens(42, false)
		require.NoError(t, err)

		_, err = a.ValidateAccessToken(access)
		assert.Error(t, err)
	})

	t.Run("tampered secret", func(t *testing.T) {
		a := newTestAuthenticator(time.Hour, 24*time.Hour)
		b := NewJWTAuthenticator("other-secret", "other-refresh", "sportmap", "sportmap", time.Hour, 24*time.Hour)

		access, _, err := a.GenerateTokens(42, false)
		require.NoError(t, err)

		_, err = b.ValidateAccessToken(access)
		assert.Error(t, err)
	})
}
