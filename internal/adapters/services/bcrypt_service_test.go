package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"notekeeper/internal/adapters/services"
	"notekeeper/internal/domain/entities"
)

func TestBcryptHash(t *testing.T) {
	ctx := context.Background()
	service := services.NewBcrypt(bcrypt.MinCost)

	t.Run("hash is not the plaintext", func(t *testing.T) {
		hash, err := service.Hash(ctx, "secret123")
		require.NoError(t, err)
		assert.NotEmpty(t, hash)
		assert.NotEqual(t, "secret123", hash)
	})

	t.Run("same password hashes to different digests", func(t *testing.T) {
		first, err := service.Hash(ctx, "secret123")
		require.NoError(t, err)
		second, err := service.Hash(ctx, "secret123")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("empty password is rejected", func(t *testing.T) {
		hash, err := service.Hash(ctx, "")
		assert.Empty(t, hash)
		assert.ErrorIs(t, err, entities.ErrEmptyPassword)
	})
}

func TestBcryptVerify(t *testing.T) {
	ctx := context.Background()
	service := services.NewBcrypt(bcrypt.MinCost)

	hash, err := service.Hash(ctx, "secret123")
	require.NoError(t, err)

	t.Run("correct password verifies", func(t *testing.T) {
		valid, err := service.Verify(ctx, "secret123", hash)
		require.NoError(t, err)
		assert.True(t, valid)
	})

	t.Run("wrong password is a clean false, not an error", func(t *testing.T) {
		valid, err := service.Verify(ctx, "wrong-password", hash)
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("empty password is rejected", func(t *testing.T) {
		valid, err := service.Verify(ctx, "", hash)
		assert.False(t, valid)
		assert.ErrorIs(t, err, entities.ErrEmptyPassword)
	})

	t.Run("empty hash is rejected", func(t *testing.T) {
		valid, err := service.Verify(ctx, "secret123", "")
		assert.False(t, valid)
		assert.ErrorIs(t, err, entities.ErrEmptyPassword)
	})

	t.Run("malformed hash surfaces an error", func(t *testing.T) {
		valid, err := service.Verify(ctx, "secret123", "not-a-bcrypt-digest")
		assert.False(t, valid)
		assert.Error(t, err)
	})
}

func TestNewBcryptCostFallback(t *testing.T) {
	ctx := context.Background()

	// A cost below bcrypt.MinCost falls back to the library default.
	service := services.NewBcrypt(0)

	hash, err := service.Hash(ctx, "secret123")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
