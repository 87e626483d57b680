package keys

import (
	"bytes"
	"fmt"

	"github.com/decred/base58"
)

const (
	// PublicKeyLength is the size of an ed25519 public key.
	PublicKeyLength = 32

	// SignatureLength is the size of a detached ed25519 signature. Any
	// other length is invalid and must never reach a signature slot.
	SignatureLength = 64
)

// PublicKey is a fixed-size account identifier, displayed as base58.
type PublicKey [PublicKeyLength]byte

func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	var pk PublicKey
	if len(b) != PublicKeyLength {
		return pk, fmt.Errorf("invalid public key length: expected %d, got %d", PublicKeyLength, len(b))
	}
	copy(pk[:], b)
	return pk, nil
}

func PublicKeyFromBase58(s string) (PublicKey, error) {
	return PublicKeyFromBytes(base58.Decode(s))
}

func (pk PublicKey) Bytes() []byte {
	return pk[:]
}

func (pk PublicKey) String() string {
	return base58.Encode(pk[:])
}

func (pk PublicKey) Equals(other PublicKey) bool {
	return bytes.Equal(pk[:], other[:])
}

// IsZero reports whether the key is the all-zero value.
func (pk PublicKey) IsZero() bool {
	return pk == PublicKey{}
}

// Signature is a 64-byte detached signature. The zero value marks an
// unset signature slot.
type Signature [SignatureLength]byte

// SignatureFromBytes validates the 64-byte invariant before any slot
// assignment can happen.
func SignatureFromBytes(b []byte) (Signature, error) {
	var sig Signature
	if len(b) != SignatureLength {
		return sig, fmt.Errorf("invalid signature length: expected %d, got %d", SignatureLength, len(b))
	}
	copy(sig[:], b)
	return sig, nil
}

func (s Signature) Bytes() []byte {
	return s[:]
}

func (s Signature) String() string {
	return base58.Encode(s[:])
}

func (s Signature) IsZero() bool {
	return s == Signature{}
}
