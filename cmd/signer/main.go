package main

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/solstice-labs/solana-signer-go/pkg/config"
	"github.com/solstice-labs/solana-signer-go/pkg/identity/memoryIdentity"
	"github.com/solstice-labs/solana-signer-go/pkg/keys"
	"github.com/solstice-labs/solana-signer-go/pkg/keystore"
	"github.com/solstice-labs/solana-signer-go/pkg/keystore/badgerKeystore"
	"github.com/solstice-labs/solana-signer-go/pkg/keystore/fileKeystore"
	"github.com/solstice-labs/solana-signer-go/pkg/logger"
	"github.com/solstice-labs/solana-signer-go/pkg/txn"
	"github.com/solstice-labs/solana-signer-go/pkg/wallet"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	// Optional .env support; absence is not an error
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "signer",
		Usage: "Sign Solana transactions with locally stored keypairs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "keystore-path",
				Aliases: []string{"k"},
				Usage:   "Keystore location (directory for file backend, database path for badger)",
				Value:   "./keystore",
				EnvVars: []string{config.EnvSignerKeystorePath},
			},
			&cli.StringFlag{
				Name:    "keystore-backend",
				Usage:   "Keystore backend: file or badger",
				Value:   "file",
				EnvVars: []string{config.EnvSignerKeystoreBackend},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "Enable verbose logging",
				EnvVars: []string{config.EnvSignerVerbose},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "keygen",
				Usage:     "Generate a new keypair and store it under a name",
				ArgsUsage: "<name>",
				Action:    runKeygen,
			},
			{
				Name:      "pubkey",
				Usage:     "Print the base58 public key of a stored keypair",
				ArgsUsage: "<name>",
				Action:    runPubkey,
			},
			{
				Name:   "list",
				Usage:  "List stored keypair names",
				Action: runList,
			},
			{
				Name:      "sign",
				Usage:     "Sign a base64-serialized legacy transaction with a stored keypair",
				ArgsUsage: "<name> <base64-transaction>",
				Action:    runSign,
			},
			{
				Name:      "verify",
				Usage:     "Verify the signatures of a base64-serialized legacy transaction",
				ArgsUsage: "<base64-transaction>",
				Action:    runVerify,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func newLogger(c *cli.Context) (*zap.Logger, error) {
	return logger.NewLogger(&logger.LoggerConfig{Debug: c.Bool("verbose")})
}

func openKeystore(c *cli.Context, l *zap.Logger) (keystore.IKeystore, error) {
	path := c.String("keystore-path")
	switch backend := c.String("keystore-backend"); backend {
	case "file":
		return fileKeystore.NewFileKeystore(path, l)
	case "badger":
		return badgerKeystore.NewBadgerKeystore(path, l)
	default:
		return nil, fmt.Errorf("unsupported keystore backend: %q", backend)
	}
}

func runKeygen(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return fmt.Errorf("keypair name required")
	}

	l, err := newLogger(c)
	if err != nil {
		return err
	}
	ks, err := openKeystore(c, l)
	if err != nil {
		return err
	}
	defer ks.Close()

	id, err := memoryIdentity.NewGeneratedIdentity(l)
	if err != nil {
		return err
	}
	if err := ks.SaveKeypair(c.Context, name, id.PrivateKey()); err != nil {
		return err
	}

	fmt.Println(id.PublicKey())
	return nil
}

func runPubkey(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return fmt.Errorf("keypair name required")
	}

	l, err := newLogger(c)
	if err != nil {
		return err
	}
	ks, err := openKeystore(c, l)
	if err != nil {
		return err
	}
	defer ks.Close()

	priv, err := ks.LoadKeypair(c.Context, name)
	if err != nil {
		return err
	}
	pub, err := keys.PublicKeyFromPrivate(priv)
	if err != nil {
		return err
	}

	fmt.Println(pub)
	return nil
}

func runList(c *cli.Context) error {
	l, err := newLogger(c)
	if err != nil {
		return err
	}
	ks, err := openKeystore(c, l)
	if err != nil {
		return err
	}
	defer ks.Close()

	names, err := ks.ListKeypairs(c.Context)
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func runSign(c *cli.Context) error {
	name := c.Args().Get(0)
	encoded := c.Args().Get(1)
	if name == "" || encoded == "" {
		return fmt.Errorf("usage: sign <name> <base64-transaction>")
	}

	l, err := newLogger(c)
	if err != nil {
		return err
	}
	ks, err := openKeystore(c, l)
	if err != nil {
		return err
	}
	defer ks.Close()

	priv, err := ks.LoadKeypair(c.Context, name)
	if err != nil {
		return err
	}
	id, err := memoryIdentity.NewMemoryIdentity(priv, l)
	if err != nil {
		return err
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("invalid base64 transaction: %w", err)
	}
	tx, err := txn.DeserializeLegacyTransaction(raw)
	if err != nil {
		return fmt.Errorf("failed to parse transaction: %w", err)
	}

	if err := wallet.SignLegacy(context.Background(), tx, id); err != nil {
		return err
	}

	signed, err := tx.Serialize()
	if err != nil {
		return err
	}
	fmt.Println(base64.StdEncoding.EncodeToString(signed))
	return nil
}

func runVerify(c *cli.Context) error {
	encoded := c.Args().First()
	if encoded == "" {
		return fmt.Errorf("usage: verify <base64-transaction>")
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("invalid base64 transaction: %w", err)
	}
	tx, err := txn.DeserializeLegacyTransaction(raw)
	if err != nil {
		return fmt.Errorf("failed to parse transaction: %w", err)
	}

	msg, err := tx.CompileMessage()
	if err != nil {
		return err
	}
	msgBytes, err := msg.Serialize()
	if err != nil {
		return err
	}

	ok := true
	for _, slot := range tx.Signatures {
		if slot.Signature.IsZero() {
			fmt.Printf("%s  missing\n", slot.PublicKey)
			ok = false
			continue
		}
		if ed25519.Verify(slot.PublicKey.Bytes(), msgBytes, slot.Signature.Bytes()) {
			fmt.Printf("%s  ok\n", slot.PublicKey)
		} else {
			fmt.Printf("%s  INVALID\n", slot.PublicKey)
			ok = false
		}
	}

	if !ok {
		return fmt.Errorf("transaction is not fully signed")
	}
	return nil
}
