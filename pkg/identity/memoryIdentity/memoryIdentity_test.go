package memoryIdentity

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/solstice-labs/solana-signer-go/pkg/keys"
	"github.com/solstice-labs/solana-signer-go/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *MemoryIdentity {
	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: true})
	require.NoError(t, err)

	seed := make([]byte, ed25519.SeedSize)
	seed[0] = 9
	id, err := NewMemoryIdentityFromSeed(seed, l)
	require.NoError(t, err)
	return id
}

func Test_MemoryIdentity(t *testing.T) {
	id := setup(t)

	t.Run("Public key is deterministic and stable", func(t *testing.T) {
		first := id.PublicKey()
		for i := 0; i < 5; i++ {
			assert.True(t, first.Equals(id.PublicKey()))
		}

		other := setup(t)
		assert.True(t, first.Equals(other.PublicKey()))
	})

	t.Run("Signatures are 64 bytes and verify", func(t *testing.T) {
		message := []byte("transaction message bytes")
		sig, err := id.Sign(context.Background(), message)
		require.NoError(t, err)
		require.Len(t, sig, keys.SignatureLength)

		assert.True(t, ed25519.Verify(id.PublicKey().Bytes(), message, sig))
	})

	t.Run("Rejects malformed private keys", func(t *testing.T) {
		l, err := logger.NewLogger(&logger.LoggerConfig{Debug: true})
		require.NoError(t, err)

		_, err = NewMemoryIdentity(make([]byte, 32), l)
		require.Error(t, err)

		_, err = NewMemoryIdentityFromSeed(make([]byte, 16), l)
		require.Error(t, err)
	})

	t.Run("Generated identities are unique", func(t *testing.T) {
		l, err := logger.NewLogger(&logger.LoggerConfig{Debug: true})
		require.NoError(t, err)

		seenKeys := make(map[string]bool)
		for i := 0; i < 5; i++ {
			generated, err := NewGeneratedIdentity(l)
			require.NoError(t, err)

			key := generated.PublicKey().String()
			assert.False(t, seenKeys[key], "duplicate public key generated: %s", key)
			seenKeys[key] = true
		}
	})
}
