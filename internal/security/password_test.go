package security_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/api/internal/security"
)

func TestHashPassword(t *testing.T) {
	t.Run("produces encoded argon2id hash", func(t *testing.T) {
		hash, err := security.HashPassword("secret1")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
		assert.NotContains(t, hash, "secret1")
	})

	t.Run("same plaintext hashes differently", func(t *testing.T) {
		hash1, err := security.HashPassword("samepassword")
		require.NoError(t, err)
		hash2, err := security.HashPassword("samepassword")
		require.NoError(t, err)

		assert.NotEqual(t, hash1, hash2)
		assert.True(t, security.VerifyPassword("samepassword", hash1))
		assert.True(t, security.VerifyPassword("samepassword", hash2))
	})
}

func TestVerifyPassword(t *testing.T) {
	t.Run("correct password verifies", func(t *testing.T) {
		hash, err := security.HashPassword("correct horse")
		require.NoError(t, err)
		assert.True(t, security.VerifyPassword("correct horse", hash))
	})

	t.Run("wrong password fails", func(t *testing.T) {
		hash, err := security.HashPassword("correct horse")
		require.NoError(t, err)
		assert.False(t, security.VerifyPassword("battery staple", hash))
	})

	t.Run("malformed stored hash is a mismatch, not an error", func(t *testing.T) {
		for _, stored := range []string{
			"",
			"plaintext-left-over",
			"$argon2id$v=19$garbage",
			"$argon2i$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
			"$argon2id$v=19$m=65536,t=3,p=2$!!!$aGFzaA",
			"$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$!!!",
		} {
			assert.False(t, security.VerifyPassword("anything", stored), "stored=%q", stored)
		}
	})
}
