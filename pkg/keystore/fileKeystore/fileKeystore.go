package fileKeystore

import (
	"context"
	"crypto/ed25519"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/solstice-labs/solana-signer-go/pkg/keys"
	"github.com/solstice-labs/solana-signer-go/pkg/keystore"
	"go.uber.org/zap"
)

const keypairExtension = ".json"

// FileKeystore stores one solana-cli-compatible keypair file per name
// under a root directory. Files are written with 0600 permissions.
type FileKeystore struct {
	root   string
	logger *zap.Logger
}

var _ keystore.IKeystore = (*FileKeystore)(nil)

func NewFileKeystore(root string, logger *zap.Logger) (*FileKeystore, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve keystore root")
	}
	if err := os.MkdirAll(absRoot, 0o700); err != nil {
		return nil, errors.Wrapf(err, "failed to create keystore directory %s", absRoot)
	}

	return &FileKeystore{root: absRoot, logger: logger}, nil
}

func (f *FileKeystore) pathFor(name string) (string, error) {
	if name == "" {
		return "", errors.New("keypair name cannot be empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", errors.Errorf("invalid keypair name: %q", name)
	}
	return filepath.Join(f.root, name+keypairExtension), nil
}

func (f *FileKeystore) SaveKeypair(ctx context.Context, name string, priv ed25519.PrivateKey) error {
	path, err := f.pathFor(name)
	if err != nil {
		return err
	}

	raw, err := keys.MarshalKeypairJSON(priv)
	if err != nil {
		return errors.Wrap(err, "failed to encode keypair")
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return errors.Wrapf(err, "failed to write keypair %s", name)
	}

	f.logger.Debug("saved keypair", zap.String("name", name), zap.String("path", path))
	return nil
}

func (f *FileKeystore) LoadKeypair(ctx context.Context, name string) (ed25519.PrivateKey, error) {
	path, err := f.pathFor(name)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, keystore.ErrKeypairNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read keypair %s", name)
	}

	priv, err := keys.UnmarshalKeypairJSON(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode keypair %s", name)
	}
	return priv, nil
}

func (f *FileKeystore) ListKeypairs(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(f.root)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read keystore directory")
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), keypairExtension) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), keypairExtension))
	}
	sort.Strings(names)
	return names, nil
}

func (f *FileKeystore) DeleteKeypair(ctx context.Context, name string) error {
	path, err := f.pathFor(name)
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if os.IsNotExist(err) {
		return keystore.ErrKeypairNotFound
	}
	if err != nil {
		return errors.Wrapf(err, "failed to delete keypair %s", name)
	}
	return nil
}

func (f *FileKeystore) Close() error {
	return nil
}
