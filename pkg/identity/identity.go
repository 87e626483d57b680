package identity

import (
	"context"

	"github.com/solstice-labs/solana-signer-go/pkg/keys"
)

// IIdentity is a key capability able to report its public key and produce
// detached signatures over arbitrary byte sequences. Implementations return
// raw signature bytes; callers are responsible for validating the 64-byte
// invariant before use.
type IIdentity interface {
	// PublicKey returns the identity's public key. Must be deterministic
	// and stable across calls.
	PublicKey() keys.PublicKey

	// Sign produces a detached signature over message.
	Sign(ctx context.Context, message []byte) ([]byte, error)
}
