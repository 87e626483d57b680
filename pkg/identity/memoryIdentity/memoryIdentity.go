package memoryIdentity

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"github.com/solstice-labs/solana-signer-go/pkg/identity"
	"github.com/solstice-labs/solana-signer-go/pkg/keys"
	"go.uber.org/zap"
)

// MemoryIdentity holds an ed25519 private key in process memory. The key is
// supplied once at construction and kept for the identity's lifetime; it is
// never cloned or persisted.
type MemoryIdentity struct {
	logger     *zap.Logger
	privateKey ed25519.PrivateKey
	publicKey  keys.PublicKey
}

var _ identity.IIdentity = (*MemoryIdentity)(nil)

func NewMemoryIdentity(privateKey ed25519.PrivateKey, logger *zap.Logger) (*MemoryIdentity, error) {
	if len(privateKey) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid private key length: expected %d, got %d", ed25519.PrivateKeySize, len(privateKey))
	}

	pub, err := keys.PublicKeyFromPrivate(privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to derive public key: %w", err)
	}

	return &MemoryIdentity{
		logger:     logger,
		privateKey: privateKey,
		publicKey:  pub,
	}, nil
}

// NewMemoryIdentityFromSeed builds an identity from a 32-byte ed25519 seed.
func NewMemoryIdentityFromSeed(seed []byte, logger *zap.Logger) (*MemoryIdentity, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("invalid seed length: expected %d, got %d", ed25519.SeedSize, len(seed))
	}
	return NewMemoryIdentity(ed25519.NewKeyFromSeed(seed), logger)
}

// NewGeneratedIdentity creates an identity with a freshly generated keypair.
func NewGeneratedIdentity(logger *zap.Logger) (*MemoryIdentity, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate keypair: %w", err)
	}
	return NewMemoryIdentity(priv, logger)
}

func (m *MemoryIdentity) PublicKey() keys.PublicKey {
	return m.publicKey
}

func (m *MemoryIdentity) Sign(ctx context.Context, message []byte) ([]byte, error) {
	return ed25519.Sign(m.privateKey, message), nil
}

// PrivateKey exposes the held key for keystore persistence. The returned
// slice aliases the identity's key; callers must not mutate it.
func (m *MemoryIdentity) PrivateKey() ed25519.PrivateKey {
	return m.privateKey
}
