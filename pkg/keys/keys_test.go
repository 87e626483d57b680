package keys

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicKey_Base58RoundTrip(t *testing.T) {
	pk := PublicKey{0x01, 0x02, 0x03, 0xff}

	encoded := pk.String()
	require.NotEmpty(t, encoded)

	decoded, err := PublicKeyFromBase58(encoded)
	require.NoError(t, err)
	assert.True(t, pk.Equals(decoded))
}

func TestPublicKey_FromBase58_Invalid(t *testing.T) {
	_, err := PublicKeyFromBase58("not!base58")
	require.Error(t, err)

	// Valid base58 but wrong decoded length
	_, err = PublicKeyFromBase58("abc")
	require.Error(t, err)
}

func TestPublicKey_FromBytes_LengthChecked(t *testing.T) {
	_, err := PublicKeyFromBytes(make([]byte, 31))
	require.Error(t, err)

	_, err = PublicKeyFromBytes(make([]byte, 33))
	require.Error(t, err)

	pk, err := PublicKeyFromBytes(make([]byte, 32))
	require.NoError(t, err)
	assert.True(t, pk.IsZero())
}

func TestSignature_FromBytes_RejectsWrongLength(t *testing.T) {
	for _, n := range []int{0, 1, 63, 65, 128} {
		_, err := SignatureFromBytes(make([]byte, n))
		require.Error(t, err, "length %d should be rejected", n)
	}

	sig, err := SignatureFromBytes(make([]byte, SignatureLength))
	require.NoError(t, err)
	assert.True(t, sig.IsZero())
}

func TestKeypairJSON_RoundTrip(t *testing.T) {
	seed := make([]byte, ed25519.SeedSize)
	seed[0] = 7
	priv := ed25519.NewKeyFromSeed(seed)

	raw, err := MarshalKeypairJSON(priv)
	require.NoError(t, err)

	decoded, err := UnmarshalKeypairJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, priv, decoded)
}

func TestKeypairJSON_Invalid(t *testing.T) {
	_, err := UnmarshalKeypairJSON([]byte("{}"))
	require.Error(t, err)

	_, err = UnmarshalKeypairJSON([]byte("[1,2,3]"))
	require.Error(t, err)

	_, err = UnmarshalKeypairJSON([]byte("[300" + repeatValues(63) + "]"))
	require.Error(t, err)
}

func repeatValues(n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += ",0"
	}
	return out
}

func TestPublicKeyFromPrivate_MatchesEd25519(t *testing.T) {
	seed := make([]byte, ed25519.SeedSize)
	seed[5] = 42
	priv := ed25519.NewKeyFromSeed(seed)

	pk, err := PublicKeyFromPrivate(priv)
	require.NoError(t, err)
	assert.Equal(t, []byte(priv.Public().(ed25519.PublicKey)), pk.Bytes())
}
