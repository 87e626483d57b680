package wallet

import (
	"context"
	"testing"

	"github.com/solstice-labs/solana-signer-go/pkg/config"
	"github.com/solstice-labs/solana-signer-go/pkg/keys"
	"github.com/solstice-labs/solana-signer-go/pkg/testutil"
	"github.com/solstice-labs/solana-signer-go/pkg/txn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Adapter(t *testing.T) {
	ctx := context.Background()

	t.Run("Reports static metadata", func(t *testing.T) {
		id := testutil.NewTestIdentity(t, 1)
		adapter, err := NewAdapter(nil, id, testutil.NewTestLogger(t))
		require.NoError(t, err)

		assert.Equal(t, config.DefaultAdapterName, adapter.Name())
		assert.Equal(t, config.DefaultAdapterURL, adapter.URL())
		assert.Contains(t, adapter.Icon(), "data:image/")
		assert.False(t, adapter.Connecting())
		assert.Equal(t, ReadyStateLoadable, adapter.ReadyState())
		assert.Equal(t, []txn.TransactionVersion{txn.TransactionVersionLegacy, txn.TransactionVersionV0}, adapter.SupportedTransactionVersions())

		pk, ok := adapter.PublicKey()
		require.True(t, ok)
		assert.True(t, pk.Equals(id.PublicKey()))
	})

	t.Run("Rejects invalid config", func(t *testing.T) {
		cfg := config.DefaultAdapterConfig()
		cfg.Icon = "https://example.com/icon.png"

		_, err := NewAdapter(cfg, nil, testutil.NewTestLogger(t))
		require.Error(t, err)
	})

	t.Run("Connect without identity fails", func(t *testing.T) {
		adapter, err := NewAdapter(nil, nil, testutil.NewTestLogger(t))
		require.NoError(t, err)

		require.ErrorIs(t, adapter.Connect(ctx), ErrNotConnected)

		_, ok := adapter.PublicKey()
		assert.False(t, ok)
	})

	t.Run("Connect notifies listeners with the public key", func(t *testing.T) {
		id := testutil.NewTestIdentity(t, 1)
		adapter, err := NewAdapter(nil, id, testutil.NewTestLogger(t))
		require.NoError(t, err)

		var connected []keys.PublicKey
		adapter.Subscribe(&ListenerFuncs{
			Connect: func(pk keys.PublicKey) { connected = append(connected, pk) },
		})

		require.NoError(t, adapter.Connect(ctx))
		require.Len(t, connected, 1)
		assert.True(t, connected[0].Equals(id.PublicKey()))
	})

	t.Run("Unsubscribe stops notifications", func(t *testing.T) {
		id := testutil.NewTestIdentity(t, 1)
		adapter, err := NewAdapter(nil, id, testutil.NewTestLogger(t))
		require.NoError(t, err)

		calls := 0
		token := adapter.Subscribe(&ListenerFuncs{
			Connect: func(keys.PublicKey) { calls++ },
		})

		require.NoError(t, adapter.Connect(ctx))
		adapter.Unsubscribe(token)
		require.NoError(t, adapter.Connect(ctx))

		assert.Equal(t, 1, calls)
	})

	t.Run("Disconnect retains identity by default", func(t *testing.T) {
		id := testutil.NewTestIdentity(t, 1)
		adapter, err := NewAdapter(nil, id, testutil.NewTestLogger(t))
		require.NoError(t, err)

		disconnects := 0
		adapter.Subscribe(&ListenerFuncs{
			Disconnect: func() { disconnects++ },
		})

		require.NoError(t, adapter.Disconnect(ctx))
		assert.Equal(t, 1, disconnects)

		// Identity retained: reconnect succeeds
		require.NoError(t, adapter.Connect(ctx))
	})

	t.Run("Disconnect clears identity under clear policy", func(t *testing.T) {
		cfg := config.DefaultAdapterConfig()
		cfg.DisconnectPolicy = config.DisconnectPolicyClearIdentity

		adapter, err := NewAdapter(cfg, testutil.NewTestIdentity(t, 1), testutil.NewTestLogger(t))
		require.NoError(t, err)

		require.NoError(t, adapter.Disconnect(ctx))
		require.ErrorIs(t, adapter.Connect(ctx), ErrNotConnected)
	})

	t.Run("SignTransaction requires identity", func(t *testing.T) {
		adapter, err := NewAdapter(nil, nil, testutil.NewTestLogger(t))
		require.NoError(t, err)

		signer := testutil.NewTestIdentity(t, 1)
		tx := testutil.NewTestTransfer(signer.PublicKey(), testutil.NewTestIdentity(t, 2).PublicKey())
		require.ErrorIs(t, adapter.SignTransaction(ctx, tx), ErrNotConnected)
	})

	t.Run("SignTransaction dispatches on envelope type", func(t *testing.T) {
		signer := testutil.NewTestIdentity(t, 1)
		recipient := testutil.NewTestIdentity(t, 2).PublicKey()
		adapter, err := NewAdapter(nil, signer, testutil.NewTestLogger(t))
		require.NoError(t, err)

		legacy := testutil.NewTestTransfer(signer.PublicKey(), recipient)
		require.NoError(t, adapter.SignTransaction(ctx, legacy))
		assert.False(t, legacy.Signatures[0].Signature.IsZero())

		versioned := testutil.NewTestVersionedTransaction(t, signer.PublicKey(), recipient)
		require.NoError(t, adapter.SignTransaction(ctx, versioned))
		assert.False(t, versioned.Signatures[0].IsZero())
	})

	t.Run("SetIdentity replaces the held identity", func(t *testing.T) {
		adapter, err := NewAdapter(nil, nil, testutil.NewTestLogger(t))
		require.NoError(t, err)

		id := testutil.NewTestIdentity(t, 4)
		adapter.SetIdentity(id)

		pk, ok := adapter.PublicKey()
		require.True(t, ok)
		assert.True(t, pk.Equals(id.PublicKey()))
	})
}
