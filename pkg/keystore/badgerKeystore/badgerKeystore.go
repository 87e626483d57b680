package badgerKeystore

import (
	"context"
	"crypto/ed25519"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	badgerdb "github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"
	"github.com/solstice-labs/solana-signer-go/pkg/keystore"
	"go.uber.org/zap"
)

const keyPrefixKeypair = "keypair:"

// BadgerKeystore is a disk-backed keystore using Badger with SyncWrites
// enabled, so a saved keypair survives a crash.
type BadgerKeystore struct {
	db     *badgerdb.DB
	logger *zap.Logger
	mu     sync.Mutex
	closed bool
}

var _ keystore.IKeystore = (*BadgerKeystore)(nil)

func NewBadgerKeystore(dataPath string, logger *zap.Logger) (*BadgerKeystore, error) {
	absPath, err := filepath.Abs(dataPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve keystore path")
	}

	opts := badgerdb.DefaultOptions(absPath)
	opts.Logger = &badgerLoggerAdapter{logger: logger}
	opts.SyncWrites = true
	opts.CompactL0OnClose = true
	opts.NumVersionsToKeep = 1

	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open badger keystore at %s", absPath)
	}

	logger.Sugar().Infow("badger keystore opened", "path", absPath)

	return &BadgerKeystore{db: db, logger: logger}, nil
}

func storageKey(name string) []byte {
	return []byte(keyPrefixKeypair + name)
}

func (b *BadgerKeystore) SaveKeypair(ctx context.Context, name string, priv ed25519.PrivateKey) error {
	if name == "" {
		return errors.New("keypair name cannot be empty")
	}
	if len(priv) != ed25519.PrivateKeySize {
		return errors.Errorf("invalid private key length: expected %d, got %d", ed25519.PrivateKeySize, len(priv))
	}

	value := append([]byte(nil), priv...)
	err := b.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Set(storageKey(name), value)
	})
	if err != nil {
		return errors.Wrapf(err, "failed to save keypair %s", name)
	}
	return nil
}

func (b *BadgerKeystore) LoadKeypair(ctx context.Context, name string) (ed25519.PrivateKey, error) {
	var priv ed25519.PrivateKey
	err := b.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get(storageKey(name))
		if err == badgerdb.ErrKeyNotFound {
			return keystore.ErrKeypairNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) != ed25519.PrivateKeySize {
				return errors.Errorf("corrupt keypair %s: %d bytes", name, len(val))
			}
			priv = append(ed25519.PrivateKey(nil), val...)
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, keystore.ErrKeypairNotFound) {
			return nil, keystore.ErrKeypairNotFound
		}
		return nil, errors.Wrapf(err, "failed to load keypair %s", name)
	}
	return priv, nil
}

func (b *BadgerKeystore) ListKeypairs(ctx context.Context) ([]string, error) {
	names := make([]string, 0)
	err := b.db.View(func(txn *badgerdb.Txn) error {
		opts := badgerdb.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefixKeypair)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := string(it.Item().Key())
			names = append(names, strings.TrimPrefix(key, keyPrefixKeypair))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list keypairs")
	}
	sort.Strings(names)
	return names, nil
}

func (b *BadgerKeystore) DeleteKeypair(ctx context.Context, name string) error {
	err := b.db.Update(func(txn *badgerdb.Txn) error {
		key := storageKey(name)
		if _, err := txn.Get(key); err == badgerdb.ErrKeyNotFound {
			return keystore.ErrKeypairNotFound
		} else if err != nil {
			return err
		}
		return txn.Delete(key)
	})
	if errors.Is(err, keystore.ErrKeypairNotFound) {
		return keystore.ErrKeypairNotFound
	}
	if err != nil {
		return errors.Wrapf(err, "failed to delete keypair %s", name)
	}
	return nil
}

func (b *BadgerKeystore) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	return b.db.Close()
}
