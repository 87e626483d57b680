package wallet

import (
	"errors"
	"fmt"

	"github.com/solstice-labs/solana-signer-go/pkg/keys"
)

var (
	// ErrNotConnected is returned when an operation requires an identity
	// and none is held.
	ErrNotConnected = errors.New("wallet not connected")

	// ErrNoSigners is returned when legacy signing is invoked with zero
	// identities.
	ErrNoSigners = errors.New("no signers")

	// ErrInvalidSignatureLength is returned when an identity produces a
	// signature that is not exactly 64 bytes. Such a signature is never
	// written into a slot.
	ErrInvalidSignatureLength = errors.New("invalid signature length")
)

// UnknownSignerError reports an identity whose public key is not among the
// transaction's required signers.
type UnknownSignerError struct {
	PublicKey keys.PublicKey
}

func (e *UnknownSignerError) Error() string {
	return fmt.Sprintf("unknown signer: %s", e.PublicKey)
}
