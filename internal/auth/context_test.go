package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithPrincipalAndGetUserIDFromContext(t *testing.T) {
	t.Run("Store and retrieve user ID from context", func(t *testing.T) {
		ctx := WithPrincipal(context.Background(), Principal{UserID: "u-123", Verified: true})

		retrievedID, err := GetUserIDFromContext(ctx)
		assert.NoError(t, err)
		assert.Equal(t, "u-123", retrievedID)

		p, ok := PrincipalFromContext(ctx)
		assert.True(t, ok)
		assert.True(t, p.Verified)
	})

	t.Run("Error when user ID not in context", func(t *testing.T) {
		_, err := GetUserIDFromContext(context.Background())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found in context")
	})

	t.Run("Error when context value has another type", func(t *testing.T) {
		// Создаем контекст с неправильным типом значения
		ctx := context.WithValue(context.Background(), principalKey, "u-123")

		_, err := GetUserIDFromContext(ctx)
		assert.Error(t, err)
	})
}

func TestExtractTokenFromHeader(t *testing.T) {
	t.Run("Valid Bearer token", func(t *testing.T) {
		assert.Equal(t, "token123", extractTokenFromHeader("Bearer token123"))
	})

	t.Run("Invalid format - no Bearer prefix", func(t *testing.T) {
		assert.Equal(t, "", extractTokenFromHeader("NotBearer token123"))
	})

	t.Run("Invalid format - no space", func(t *testing.T) {
		assert.Equal(t, "", extractTokenFromHeader("Bearertoken123"))
	})

	t.Run("Empty header", func(t *testing.T) {
		assert.Equal(t, "", extractTokenFromHeader(""))
	})
}

func TestLooksLikeJWT(t *testing.T) {
	assert.True(t, looksLikeJWT("aaa.bbb.ccc"))
	assert.False(t, looksLikeJWT("6650b1c2e4b0a1f2c3d4e5f6"))
	assert.False(t, looksLikeJWT("a.b"))
}
