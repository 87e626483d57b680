package testutil

import (
	"testing"

	"github.com/solstice-labs/solana-signer-go/pkg/identity/memoryIdentity"
	"github.com/solstice-labs/solana-signer-go/pkg/keys"
	"github.com/solstice-labs/solana-signer-go/pkg/logger"
	"github.com/solstice-labs/solana-signer-go/pkg/txn"
	"go.uber.org/zap"
)

// NewTestLogger creates a debug logger for tests.
func NewTestLogger(t *testing.T) *zap.Logger {
	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: true})
	if err != nil {
		t.Fatalf("failed to create test logger: %v", err)
	}
	return l
}

// NewTestIdentity creates a deterministic identity from a single seed byte,
// so tests can refer to the same signer across runs.
func NewTestIdentity(t *testing.T, seedByte byte) *memoryIdentity.MemoryIdentity {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = seedByte
	}
	id, err := memoryIdentity.NewMemoryIdentityFromSeed(seed, NewTestLogger(t))
	if err != nil {
		t.Fatalf("failed to create test identity: %v", err)
	}
	return id
}

// TestProgramID is a fixed program account used by transaction fixtures.
var TestProgramID = keys.PublicKey{0xfe, 0xed, 0xfa, 0xce}

// NewTestTransfer builds a minimal legacy transaction moving lamports from
// fee payer to recipient.
func NewTestTransfer(feePayer, recipient keys.PublicKey) *txn.LegacyTransaction {
	return &txn.LegacyTransaction{
		FeePayer:        feePayer,
		RecentBlockhash: txn.Blockhash{1, 2, 3},
		Instructions: []txn.Instruction{
			{
				ProgramID: TestProgramID,
				Accounts: []txn.AccountMeta{
					{PublicKey: feePayer, IsSigner: true, IsWritable: true},
					{PublicKey: recipient, IsWritable: true},
				},
				Data: []byte{2, 0, 0, 0, 100, 0, 0, 0},
			},
		},
	}
}

// NewTestMultisigTransfer builds a legacy transaction requiring two
// signers: the fee payer and a co-signer.
func NewTestMultisigTransfer(feePayer, coSigner, recipient keys.PublicKey) *txn.LegacyTransaction {
	return &txn.LegacyTransaction{
		FeePayer:        feePayer,
		RecentBlockhash: txn.Blockhash{1, 2, 3},
		Instructions: []txn.Instruction{
			{
				ProgramID: TestProgramID,
				Accounts: []txn.AccountMeta{
					{PublicKey: feePayer, IsSigner: true, IsWritable: true},
					{PublicKey: coSigner, IsSigner: true},
					{PublicKey: recipient, IsWritable: true},
				},
				Data: []byte{3, 0, 0, 0},
			},
		},
	}
}

// NewTestVersionedTransaction compiles a transfer into a v0 envelope with
// an empty signature array sized to the signer count.
func NewTestVersionedTransaction(t *testing.T, feePayer, recipient keys.PublicKey) *txn.VersionedTransaction {
	msg, err := NewTestTransfer(feePayer, recipient).CompileMessage()
	if err != nil {
		t.Fatalf("failed to compile test message: %v", err)
	}
	msg.Version = txn.TransactionVersionV0
	return txn.NewVersionedTransaction(*msg)
}
