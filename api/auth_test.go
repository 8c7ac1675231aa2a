package api

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func Test_parseSessionJWT(t *testing.T) {
	secret := "test-secret"
	userID := uuid.New()

	t.Run("valid token resolves the subject", func(t *testing.T) {
		signed := signToken(t, secret, jwt.MapClaims{
			"sub": userID.String(),
			"exp": time.Now().UTC().Add(time.Hour).Unix(),
		})

		claims, err := parseSessionJWT(signed, secret)
		require.NoError(t, err)
		require.Equal(t, userID.String(), claims.Subject)
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		signed := signToken(t, "other-secret", jwt.MapClaims{
			"sub": userID.String(),
			"exp": time.Now().UTC().Add(time.Hour).Unix(),
		})

		_, err := parseSessionJWT(signed, secret)
		require.Error(t, err)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		signed := signToken(t, secret, jwt.MapClaims{
			"sub": userID.String(),
			"exp": time.Now().UTC().Add(-time.Hour).Unix(),
		})

		_, err := parseSessionJWT(signed, secret)
		require.Error(t, err)
	})

	t.Run("missing subject is rejected", func(t *testing.T) {
		signed := signToken(t, secret, jwt.MapClaims{
			"exp": time.Now().UTC().Add(time.Hour).Unix(),
		})

		_, err := parseSessionJWT(signed, secret)
		require.Error(t, err)
	})
}
