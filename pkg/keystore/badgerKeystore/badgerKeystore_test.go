package badgerKeystore

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/solstice-labs/solana-signer-go/pkg/keystore"
	"github.com/solstice-labs/solana-signer-go/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKeypair(seedByte byte) ed25519.PrivateKey {
	seed := make([]byte, ed25519.SeedSize)
	seed[0] = seedByte
	return ed25519.NewKeyFromSeed(seed)
}

func TestBadgerKeystore_SaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	testLogger, _ := logger.NewLogger(&logger.LoggerConfig{Debug: false})

	ks, err := NewBadgerKeystore(tmpDir, testLogger)
	require.NoError(t, err)
	defer func() { _ = ks.Close() }()

	ctx := context.Background()
	priv := testKeypair(1)

	require.NoError(t, ks.SaveKeypair(ctx, "payer", priv))

	loaded, err := ks.LoadKeypair(ctx, "payer")
	require.NoError(t, err)
	assert.Equal(t, priv, loaded)
}

func TestBadgerKeystore_Load_NotFound(t *testing.T) {
	tmpDir := t.TempDir()
	testLogger, _ := logger.NewLogger(&logger.LoggerConfig{Debug: false})

	ks, err := NewBadgerKeystore(tmpDir, testLogger)
	require.NoError(t, err)
	defer func() { _ = ks.Close() }()

	_, err = ks.LoadKeypair(context.Background(), "missing")
	require.ErrorIs(t, err, keystore.ErrKeypairNotFound)
}

func TestBadgerKeystore_ListAndDelete(t *testing.T) {
	tmpDir := t.TempDir()
	testLogger, _ := logger.NewLogger(&logger.LoggerConfig{Debug: false})

	ks, err := NewBadgerKeystore(tmpDir, testLogger)
	require.NoError(t, err)
	defer func() { _ = ks.Close() }()

	ctx := context.Background()
	require.NoError(t, ks.SaveKeypair(ctx, "bravo", testKeypair(1)))
	require.NoError(t, ks.SaveKeypair(ctx, "alpha", testKeypair(2)))

	names, err := ks.ListKeypairs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "bravo"}, names)

	require.NoError(t, ks.DeleteKeypair(ctx, "alpha"))
	require.ErrorIs(t, ks.DeleteKeypair(ctx, "alpha"), keystore.ErrKeypairNotFound)

	names, err = ks.ListKeypairs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"bravo"}, names)
}

func TestBadgerKeystore_RejectsInvalidInput(t *testing.T) {
	tmpDir := t.TempDir()
	testLogger, _ := logger.NewLogger(&logger.LoggerConfig{Debug: false})

	ks, err := NewBadgerKeystore(tmpDir, testLogger)
	require.NoError(t, err)
	defer func() { _ = ks.Close() }()

	ctx := context.Background()
	require.Error(t, ks.SaveKeypair(ctx, "", testKeypair(1)))
	require.Error(t, ks.SaveKeypair(ctx, "short", make([]byte, 32)))
}

func TestBadgerKeystore_PersistsAcrossReopen(t *testing.T) {
	tmpDir := t.TempDir()
	testLogger, _ := logger.NewLogger(&logger.LoggerConfig{Debug: false})

	ks, err := NewBadgerKeystore(tmpDir, testLogger)
	require.NoError(t, err)

	priv := testKeypair(1)
	require.NoError(t, ks.SaveKeypair(context.Background(), "payer", priv))
	require.NoError(t, ks.Close())

	reopened, err := NewBadgerKeystore(tmpDir, testLogger)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	loaded, err := reopened.LoadKeypair(context.Background(), "payer")
	require.NoError(t, err)
	assert.Equal(t, priv, loaded)
}

func TestBadgerKeystore_CloseIsIdempotent(t *testing.T) {
	tmpDir := t.TempDir()
	testLogger, _ := logger.NewLogger(&logger.LoggerConfig{Debug: false})

	ks, err := NewBadgerKeystore(tmpDir, testLogger)
	require.NoError(t, err)

	require.NoError(t, ks.Close())
	require.NoError(t, ks.Close())
}
