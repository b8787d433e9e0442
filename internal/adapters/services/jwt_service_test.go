package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/adapters/services"
	"notekeeper/internal/domain/entities"
)

const testSecretKey = "test-secret-key"

func TestGenerateAccessToken(t *testing.T) {
	ctx := context.Background()
	service := services.NewJWT(testSecretKey, 15*time.Minute)

	principal := entities.Principal{Email: "alice@example.com", Role: entities.RoleUser}

	t.Run("token carries the principal claims", func(t *testing.T) {
		tokenString, expiresAt, err := service.GenerateAccessToken(ctx, principal)
		require.NoError(t, err)
		assert.NotEmpty(t, tokenString)
		assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

		claims := &services.Claims{}
		parsed, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
			return []byte(testSecretKey), nil
		})
		require.NoError(t, err)
		require.True(t, parsed.Valid)
		assert.Equal(t, "alice@example.com", claims.Email)
		assert.Equal(t, "user", claims.Role)
		assert.Equal(t, "alice@example.com", claims.Subject)
	})

	t.Run("empty secret key is rejected", func(t *testing.T) {
		emptyService := services.NewJWT("", 15*time.Minute)
		tokenString, _, err := emptyService.GenerateAccessToken(ctx, principal)
		assert.Empty(t, tokenString)
		assert.ErrorIs(t, err, services.ErrEmptySecretKey)
	})
}

func TestValidateAccessToken(t *testing.T) {
	ctx := context.Background()
	service := services.NewJWT(testSecretKey, 15*time.Minute)

	t.Run("round trip preserves the principal", func(t *testing.T) {
		original := entities.Principal{Email: "admin@example.com", Role: entities.RoleAdmin}
		tokenString, _, err := service.GenerateAccessToken(ctx, original)
		require.NoError(t, err)

		principal, err := service.ValidateAccessToken(ctx, tokenString)
		require.NoError(t, err)
		assert.Equal(t, original, principal)
	})

	t.Run("expired token maps to ErrExpiredToken", func(t *testing.T) {
		expiredService := services.NewJWT(testSecretKey, -1*time.Minute)
		tokenString, _, err := expiredService.GenerateAccessToken(ctx, entities.Principal{
			Email: "alice@example.com",
			Role:  entities.RoleUser,
		})
		require.NoError(t, err)

		_, err = service.ValidateAccessToken(ctx, tokenString)
		assert.ErrorIs(t, err, services.ErrExpiredToken)
	})

	t.Run("token signed with another key is rejected", func(t *testing.T) {
		otherService := services.NewJWT("another-secret", 15*time.Minute)
		tokenString, _, err := otherService.GenerateAccessToken(ctx, entities.Principal{
			Email: "alice@example.com",
			Role:  entities.RoleUser,
		})
		require.NoError(t, err)

		_, err = service.ValidateAccessToken(ctx, tokenString)
		assert.ErrorIs(t, err, services.ErrInvalidToken)
	})

	t.Run("token with non-HMAC algorithm is rejected", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, services.Claims{
			Email: "alice@example.com",
			Role:  "user",
		})
		tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = service.ValidateAccessToken(ctx, tokenString)
		assert.ErrorIs(t, err, services.ErrInvalidToken)
	})

	t.Run("token with empty email claim is rejected", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, services.Claims{
			Role: "user",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			},
		})
		tokenString, err := token.SignedString([]byte(testSecretKey))
		require.NoError(t, err)

		_, err = service.ValidateAccessToken(ctx, tokenString)
		assert.ErrorIs(t, err, services.ErrInvalidToken)
	})

	t.Run("token with unknown role claim is rejected", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, services.Claims{
			Email: "alice@example.com",
			Role:  "owner",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			},
		})
		tokenString, err := token.SignedString([]byte(testSecretKey))
		require.NoError(t, err)

		_, err = service.ValidateAccessToken(ctx, tokenString)
		assert.ErrorIs(t, err, services.ErrInvalidToken)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		_, err := service.ValidateAccessToken(ctx, "not.a.token")
		assert.ErrorIs(t, err, services.ErrInvalidToken)
	})
}
