package wallet

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/solstice-labs/solana-signer-go/pkg/config"
	"github.com/solstice-labs/solana-signer-go/pkg/identity"
	"github.com/solstice-labs/solana-signer-go/pkg/keys"
	"github.com/solstice-labs/solana-signer-go/pkg/txn"
	"go.uber.org/zap"
)

// ReadyState reports how a wallet becomes available to the surrounding
// adapter framework.
type ReadyState string

const (
	ReadyStateInstalled   ReadyState = "Installed"
	ReadyStateNotDetected ReadyState = "NotDetected"
	ReadyStateLoadable    ReadyState = "Loadable"
	ReadyStateUnsupported ReadyState = "Unsupported"
)

// Transaction is the envelope surface the adapter signs: either a
// *txn.LegacyTransaction or a *txn.VersionedTransaction.
type Transaction interface {
	Serialize() ([]byte, error)
}

// Adapter signs transactions with a locally held key identity instead of
// delegating to an external wallet process. It has no asynchronous
// connection handshake: Connecting is always false, and connect/disconnect
// only notify listeners.
type Adapter struct {
	mu        sync.Mutex
	cfg       *config.AdapterConfig
	logger    *zap.Logger
	identity  identity.IIdentity
	listeners map[uuid.UUID]EventListener
}

// NewAdapter creates an adapter holding id. A nil id is allowed; every
// operation then fails with ErrNotConnected until SetIdentity is called.
func NewAdapter(cfg *config.AdapterConfig, id identity.IIdentity, logger *zap.Logger) (*Adapter, error) {
	if cfg == nil {
		cfg = config.DefaultAdapterConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid adapter config: %w", err)
	}

	return &Adapter{
		cfg:       cfg,
		logger:    logger,
		identity:  id,
		listeners: make(map[uuid.UUID]EventListener),
	}, nil
}

func (a *Adapter) Name() string { return a.cfg.Name }
func (a *Adapter) URL() string  { return a.cfg.URL }
func (a *Adapter) Icon() string { return a.cfg.Icon }

// SupportedTransactionVersions returns {legacy, 0}.
func (a *Adapter) SupportedTransactionVersions() []txn.TransactionVersion {
	return txn.SupportedVersions()
}

// Connecting is always false: there is no handshake with an external
// wallet process.
func (a *Adapter) Connecting() bool { return false }

// ReadyState is always Loadable: no browser extension or external wallet
// needs to be detected.
func (a *Adapter) ReadyState() ReadyState { return ReadyStateLoadable }

// PublicKey returns the held identity's public key, or false if no
// identity is present.
func (a *Adapter) PublicKey() (keys.PublicKey, bool) {
	id := a.currentIdentity()
	if id == nil {
		return keys.PublicKey{}, false
	}
	return id.PublicKey(), true
}

// SetIdentity replaces the held identity.
func (a *Adapter) SetIdentity(id identity.IIdentity) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.identity = id
}

func (a *Adapter) currentIdentity() identity.IIdentity {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.identity
}

// Connect verifies an identity is held and notifies listeners with its
// public key. The adapter keeps no connection state beyond that.
func (a *Adapter) Connect(ctx context.Context) error {
	id := a.currentIdentity()
	if id == nil {
		return ErrNotConnected
	}

	pk := id.PublicKey()
	a.logger.Debug("wallet connected", zap.String("publicKey", pk.String()))
	a.notifyConnect(pk)
	return nil
}

// Disconnect always succeeds and notifies listeners. Whether the identity
// is retained is governed by the configured disconnect policy.
func (a *Adapter) Disconnect(ctx context.Context) error {
	if a.cfg.DisconnectPolicy == config.DisconnectPolicyClearIdentity {
		a.mu.Lock()
		a.identity = nil
		a.mu.Unlock()
	}

	a.logger.Debug("wallet disconnected", zap.String("policy", a.cfg.DisconnectPolicy.String()))
	a.notifyDisconnect()
	return nil
}

// SignTransaction signs tx with the held identity. It dispatches on the
// concrete envelope type.
func (a *Adapter) SignTransaction(ctx context.Context, tx Transaction) error {
	id := a.currentIdentity()
	if id == nil {
		return ErrNotConnected
	}

	switch t := tx.(type) {
	case *txn.LegacyTransaction:
		return SignLegacy(ctx, t, id)
	case *txn.VersionedTransaction:
		return SignVersioned(ctx, t, id)
	default:
		return fmt.Errorf("unsupported transaction type: %T", tx)
	}
}

// SignLegacyTransaction signs a legacy transaction with the held identity.
func (a *Adapter) SignLegacyTransaction(ctx context.Context, tx *txn.LegacyTransaction) error {
	id := a.currentIdentity()
	if id == nil {
		return ErrNotConnected
	}
	return SignLegacy(ctx, tx, id)
}

// SignVersionedTransaction signs a versioned transaction with the held
// identity.
func (a *Adapter) SignVersionedTransaction(ctx context.Context, tx *txn.VersionedTransaction) error {
	id := a.currentIdentity()
	if id == nil {
		return ErrNotConnected
	}
	return SignVersioned(ctx, tx, id)
}
