package txn

import (
	"fmt"
	"sort"

	"github.com/solstice-labs/solana-signer-go/pkg/keys"
)

// AccountMeta describes an account an instruction touches, before
// compilation assigns it an index.
type AccountMeta struct {
	PublicKey  keys.PublicKey
	IsSigner   bool
	IsWritable bool
}

// Instruction is the pre-compilation form of a program invocation.
type Instruction struct {
	ProgramID keys.PublicKey
	Accounts  []AccountMeta
	Data      []byte
}

// SignatureSlot pairs a required-signer key with its signature. A zero
// signature marks the slot as unset.
type SignatureSlot struct {
	PublicKey keys.PublicKey
	Signature keys.Signature
}

// LegacyTransaction carries instructions plus an ordered signature slot
// list. Slot order matches the required-signer order of the compiled
// message.
type LegacyTransaction struct {
	FeePayer        keys.PublicKey
	RecentBlockhash Blockhash
	Instructions    []Instruction
	Signatures      []SignatureSlot
}

// CompileMessage builds the canonical wire-format message for the
// transaction. Compilation is deterministic: the same fee payer,
// blockhash, and instructions always produce the same account ordering.
func (tx *LegacyTransaction) CompileMessage() (*Message, error) {
	if tx.FeePayer.IsZero() {
		return nil, fmt.Errorf("transaction fee payer required")
	}
	if len(tx.Instructions) == 0 {
		return nil, fmt.Errorf("transaction has no instructions")
	}

	// Collect every referenced account, merging duplicate entries by
	// OR-ing their signer/writable flags.
	metas := make(map[keys.PublicKey]*AccountMeta)
	order := make([]keys.PublicKey, 0)
	record := func(meta AccountMeta) {
		existing, ok := metas[meta.PublicKey]
		if !ok {
			m := meta
			metas[meta.PublicKey] = &m
			order = append(order, meta.PublicKey)
			return
		}
		existing.IsSigner = existing.IsSigner || meta.IsSigner
		existing.IsWritable = existing.IsWritable || meta.IsWritable
	}

	record(AccountMeta{PublicKey: tx.FeePayer, IsSigner: true, IsWritable: true})
	for _, ix := range tx.Instructions {
		for _, meta := range ix.Accounts {
			record(meta)
		}
		record(AccountMeta{PublicKey: ix.ProgramID})
	}

	// Canonical ordering: fee payer first, then writable signers,
	// read-only signers, writable non-signers, read-only non-signers,
	// each class sorted by base58 key for determinism.
	classOf := func(m *AccountMeta) int {
		switch {
		case m.PublicKey.Equals(tx.FeePayer):
			return 0
		case m.IsSigner && m.IsWritable:
			return 1
		case m.IsSigner:
			return 2
		case m.IsWritable:
			return 3
		default:
			return 4
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := metas[order[i]], metas[order[j]]
		ca, cb := classOf(a), classOf(b)
		if ca != cb {
			return ca < cb
		}
		return a.PublicKey.String() < b.PublicKey.String()
	})

	if len(order) > 256 {
		return nil, fmt.Errorf("too many account keys: %d", len(order))
	}

	msg := &Message{
		Version:         TransactionVersionLegacy,
		RecentBlockhash: tx.RecentBlockhash,
		AccountKeys:     order,
	}
	indexOf := make(map[keys.PublicKey]uint8, len(order))
	for i, key := range order {
		indexOf[key] = uint8(i)
		meta := metas[key]
		if meta.IsSigner {
			msg.Header.NumRequiredSignatures++
			if !meta.IsWritable {
				msg.Header.NumReadonlySignedAccounts++
			}
		} else if !meta.IsWritable {
			msg.Header.NumReadonlyUnsignedAccounts++
		}
	}

	msg.Instructions = make([]CompiledInstruction, 0, len(tx.Instructions))
	for _, ix := range tx.Instructions {
		compiled := CompiledInstruction{
			ProgramIDIndex: indexOf[ix.ProgramID],
			AccountIndexes: make([]uint8, 0, len(ix.Accounts)),
			Data:           ix.Data,
		}
		for _, meta := range ix.Accounts {
			compiled.AccountIndexes = append(compiled.AccountIndexes, indexOf[meta.PublicKey])
		}
		msg.Instructions = append(msg.Instructions, compiled)
	}

	return msg, nil
}

// SlotFor returns the index of the signature slot declared for pk, or -1.
func (tx *LegacyTransaction) SlotFor(pk keys.PublicKey) int {
	for i, slot := range tx.Signatures {
		if slot.PublicKey.Equals(pk) {
			return i
		}
	}
	return -1
}

// Serialize encodes the full transaction envelope: compact signature count,
// one 64-byte signature per required signer (zeroed when unset), then the
// compiled message bytes.
func (tx *LegacyTransaction) Serialize() ([]byte, error) {
	msg, err := tx.CompileMessage()
	if err != nil {
		return nil, err
	}
	msgBytes, err := msg.Serialize()
	if err != nil {
		return nil, err
	}

	signerKeys := msg.SignerKeys()
	buf, err := appendCompactU16(nil, len(signerKeys))
	if err != nil {
		return nil, err
	}
	for _, key := range signerKeys {
		var sig keys.Signature
		if i := tx.SlotFor(key); i >= 0 {
			sig = tx.Signatures[i].Signature
		}
		buf = append(buf, sig.Bytes()...)
	}

	return append(buf, msgBytes...), nil
}

// DeserializeLegacyTransaction parses a serialized legacy envelope back
// into its slot-list form. Account flags are recovered from the message
// header, and instructions are decompiled from their index form.
func DeserializeLegacyTransaction(data []byte) (*LegacyTransaction, error) {
	numSigs, n, err := decodeCompactU16(data)
	if err != nil {
		return nil, fmt.Errorf("signature count: %w", err)
	}
	data = data[n:]
	if len(data) < numSigs*keys.SignatureLength {
		return nil, fmt.Errorf("truncated signatures")
	}
	sigs := make([]keys.Signature, numSigs)
	for i := 0; i < numSigs; i++ {
		copy(sigs[i][:], data[:keys.SignatureLength])
		data = data[keys.SignatureLength:]
	}

	msg, rest, err := parseMessage(data)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("trailing bytes after message: %d", len(rest))
	}
	if msg.Version != TransactionVersionLegacy {
		return nil, fmt.Errorf("expected legacy message, got version %q", msg.Version)
	}
	if numSigs != int(msg.Header.NumRequiredSignatures) {
		return nil, fmt.Errorf("signature count %d does not match required signers %d", numSigs, msg.Header.NumRequiredSignatures)
	}
	if len(msg.AccountKeys) < numSigs {
		return nil, fmt.Errorf("fewer account keys than required signers")
	}

	tx := &LegacyTransaction{
		FeePayer:        msg.AccountKeys[0],
		RecentBlockhash: msg.RecentBlockhash,
	}
	for i := 0; i < numSigs; i++ {
		tx.Signatures = append(tx.Signatures, SignatureSlot{
			PublicKey: msg.AccountKeys[i],
			Signature: sigs[i],
		})
	}

	numSigners := int(msg.Header.NumRequiredSignatures)
	for _, compiled := range msg.Instructions {
		if int(compiled.ProgramIDIndex) >= len(msg.AccountKeys) {
			return nil, fmt.Errorf("program id index %d out of range", compiled.ProgramIDIndex)
		}
		ix := Instruction{
			ProgramID: msg.AccountKeys[compiled.ProgramIDIndex],
			Data:      compiled.Data,
		}
		for _, idx := range compiled.AccountIndexes {
			if int(idx) >= len(msg.AccountKeys) {
				return nil, fmt.Errorf("account index %d out of range", idx)
			}
			ix.Accounts = append(ix.Accounts, AccountMeta{
				PublicKey:  msg.AccountKeys[idx],
				IsSigner:   int(idx) < numSigners,
				IsWritable: msg.IsWritable(int(idx)),
			})
		}
		tx.Instructions = append(tx.Instructions, ix)
	}

	return tx, nil
}
