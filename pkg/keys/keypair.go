package keys

import (
	"crypto/ed25519"
	"encoding/json"
	"fmt"
)

// Keypair files use the solana-cli format: a JSON array of 64 byte values
// holding the expanded ed25519 private key (seed || public key).

func MarshalKeypairJSON(priv ed25519.PrivateKey) ([]byte, error) {
	if len(priv) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid private key length: expected %d, got %d", ed25519.PrivateKeySize, len(priv))
	}

	ints := make([]int, len(priv))
	for i, b := range priv {
		ints[i] = int(b)
	}
	return json.Marshal(ints)
}

func UnmarshalKeypairJSON(raw []byte) (ed25519.PrivateKey, error) {
	var ints []int
	if err := json.Unmarshal(raw, &ints); err != nil {
		return nil, fmt.Errorf("invalid keypair file: %w", err)
	}
	if len(ints) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid keypair file: expected %d values, got %d", ed25519.PrivateKeySize, len(ints))
	}

	priv := make([]byte, ed25519.PrivateKeySize)
	for i, v := range ints {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("invalid keypair file: value %d out of byte range", v)
		}
		priv[i] = byte(v)
	}
	return ed25519.PrivateKey(priv), nil
}

// PublicKeyFromPrivate derives the public half of an expanded private key.
func PublicKeyFromPrivate(priv ed25519.PrivateKey) (PublicKey, error) {
	if len(priv) != ed25519.PrivateKeySize {
		return PublicKey{}, fmt.Errorf("invalid private key length: expected %d, got %d", ed25519.PrivateKeySize, len(priv))
	}
	pub, ok := priv.Public().(ed25519.PublicKey)
	if !ok {
		return PublicKey{}, fmt.Errorf("failed to derive public key")
	}
	return PublicKeyFromBytes(pub)
}
