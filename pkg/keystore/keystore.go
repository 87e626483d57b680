package keystore

import (
	"context"
	"crypto/ed25519"
	"errors"
)

// ErrKeypairNotFound is returned when no keypair exists under the
// requested name.
var ErrKeypairNotFound = errors.New("keypair not found")

// IKeystore stores named ed25519 keypairs. Implementations are safe for
// concurrent use.
type IKeystore interface {
	// SaveKeypair stores priv under name, replacing any existing entry.
	SaveKeypair(ctx context.Context, name string, priv ed25519.PrivateKey) error

	// LoadKeypair returns the keypair stored under name, or
	// ErrKeypairNotFound.
	LoadKeypair(ctx context.Context, name string) (ed25519.PrivateKey, error)

	// ListKeypairs returns the stored names in lexical order.
	ListKeypairs(ctx context.Context) ([]string, error)

	// DeleteKeypair removes the entry under name, or returns
	// ErrKeypairNotFound.
	DeleteKeypair(ctx context.Context, name string) error

	// Close releases any underlying resources.
	Close() error
}
