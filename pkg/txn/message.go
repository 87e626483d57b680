package txn

import (
	"fmt"

	"github.com/solstice-labs/solana-signer-go/pkg/keys"
)

// TransactionVersion identifies a transaction envelope format.
type TransactionVersion string

const (
	TransactionVersionLegacy TransactionVersion = "legacy"
	TransactionVersionV0     TransactionVersion = "0"
)

// SupportedVersions lists the envelope formats the signer understands.
func SupportedVersions() []TransactionVersion {
	return []TransactionVersion{TransactionVersionLegacy, TransactionVersionV0}
}

// versionPrefixV0 is the first message byte of a v0 message: high bit set,
// low 7 bits carrying the version number. Legacy messages have no prefix.
const versionPrefixV0 = 0x80

// BlockhashLength is the size of a recent blockhash.
const BlockhashLength = 32

type Blockhash [BlockhashLength]byte

// MessageHeader declares how the leading account keys are interpreted.
// The first NumRequiredSignatures keys are the transaction's signers.
type MessageHeader struct {
	NumRequiredSignatures       uint8
	NumReadonlySignedAccounts   uint8
	NumReadonlyUnsignedAccounts uint8
}

// CompiledInstruction references accounts by index into the message's
// account key list.
type CompiledInstruction struct {
	ProgramIDIndex uint8
	AccountIndexes []uint8
	Data           []byte
}

// MessageAddressTableLookup loads additional accounts from an on-chain
// address lookup table (v0 messages only).
type MessageAddressTableLookup struct {
	AccountKey      keys.PublicKey
	WritableIndexes []uint8
	ReadonlyIndexes []uint8
}

// Message is a compiled transaction message in wire-format layout. The
// account key ordering and header semantics are fixed by the ledger; this
// package reads and writes them but does not reinterpret them.
type Message struct {
	Version             TransactionVersion
	Header              MessageHeader
	AccountKeys         []keys.PublicKey
	RecentBlockhash     Blockhash
	Instructions        []CompiledInstruction
	AddressTableLookups []MessageAddressTableLookup
}

// StaticAccountKeys returns the accounts listed directly in the message,
// excluding any loaded through address table lookups.
func (m *Message) StaticAccountKeys() []keys.PublicKey {
	return m.AccountKeys
}

// SignerKeys returns the leading required-signer keys.
func (m *Message) SignerKeys() []keys.PublicKey {
	n := int(m.Header.NumRequiredSignatures)
	if n > len(m.AccountKeys) {
		n = len(m.AccountKeys)
	}
	return m.AccountKeys[:n]
}

// SignerIndex locates pk among the required signers, or -1 if pk is not a
// required signer of this message.
func (m *Message) SignerIndex(pk keys.PublicKey) int {
	for i, key := range m.SignerKeys() {
		if key.Equals(pk) {
			return i
		}
	}
	return -1
}

// IsWritable reports whether the account at index is writable, derived from
// the header the same way the runtime derives it.
func (m *Message) IsWritable(index int) bool {
	numSigners := int(m.Header.NumRequiredSignatures)
	if index < numSigners {
		return index < numSigners-int(m.Header.NumReadonlySignedAccounts)
	}
	return index < len(m.AccountKeys)-int(m.Header.NumReadonlyUnsignedAccounts)
}

// Serialize encodes the message to its wire format. These are the bytes an
// identity signs.
func (m *Message) Serialize() ([]byte, error) {
	var buf []byte
	var err error

	switch m.Version {
	case TransactionVersionLegacy:
		if len(m.AddressTableLookups) > 0 {
			return nil, fmt.Errorf("legacy message cannot carry address table lookups")
		}
	case TransactionVersionV0:
		buf = append(buf, versionPrefixV0)
	default:
		return nil, fmt.Errorf("unsupported message version: %q", m.Version)
	}

	buf = append(buf, m.Header.NumRequiredSignatures, m.Header.NumReadonlySignedAccounts, m.Header.NumReadonlyUnsignedAccounts)

	if buf, err = appendCompactU16(buf, len(m.AccountKeys)); err != nil {
		return nil, err
	}
	for _, key := range m.AccountKeys {
		buf = append(buf, key.Bytes()...)
	}

	buf = append(buf, m.RecentBlockhash[:]...)

	if buf, err = appendCompactU16(buf, len(m.Instructions)); err != nil {
		return nil, err
	}
	for _, ix := range m.Instructions {
		buf = append(buf, ix.ProgramIDIndex)
		if buf, err = appendCompactU16(buf, len(ix.AccountIndexes)); err != nil {
			return nil, err
		}
		buf = append(buf, ix.AccountIndexes...)
		if buf, err = appendCompactU16(buf, len(ix.Data)); err != nil {
			return nil, err
		}
		buf = append(buf, ix.Data...)
	}

	if m.Version == TransactionVersionV0 {
		if buf, err = appendCompactU16(buf, len(m.AddressTableLookups)); err != nil {
			return nil, err
		}
		for _, lookup := range m.AddressTableLookups {
			buf = append(buf, lookup.AccountKey.Bytes()...)
			if buf, err = appendCompactU16(buf, len(lookup.WritableIndexes)); err != nil {
				return nil, err
			}
			buf = append(buf, lookup.WritableIndexes...)
			if buf, err = appendCompactU16(buf, len(lookup.ReadonlyIndexes)); err != nil {
				return nil, err
			}
			buf = append(buf, lookup.ReadonlyIndexes...)
		}
	}

	return buf, nil
}

// DeserializeMessage parses a wire-format message, detecting the version
// from the leading byte.
func DeserializeMessage(data []byte) (*Message, error) {
	msg, rest, err := parseMessage(data)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("trailing bytes after message: %d", len(rest))
	}
	return msg, nil
}

func parseMessage(data []byte) (*Message, []byte, error) {
	msg := &Message{Version: TransactionVersionLegacy}

	if len(data) == 0 {
		return nil, nil, fmt.Errorf("empty message")
	}
	if data[0]&0x80 != 0 {
		version := data[0] & 0x7f
		if version != 0 {
			return nil, nil, fmt.Errorf("unsupported message version: %d", version)
		}
		msg.Version = TransactionVersionV0
		data = data[1:]
	}

	if len(data) < 3 {
		return nil, nil, fmt.Errorf("truncated message header")
	}
	msg.Header = MessageHeader{
		NumRequiredSignatures:       data[0],
		NumReadonlySignedAccounts:   data[1],
		NumReadonlyUnsignedAccounts: data[2],
	}
	data = data[3:]

	numKeys, n, err := decodeCompactU16(data)
	if err != nil {
		return nil, nil, fmt.Errorf("account key count: %w", err)
	}
	data = data[n:]
	if len(data) < numKeys*keys.PublicKeyLength {
		return nil, nil, fmt.Errorf("truncated account keys")
	}
	msg.AccountKeys = make([]keys.PublicKey, numKeys)
	for i := 0; i < numKeys; i++ {
		copy(msg.AccountKeys[i][:], data[:keys.PublicKeyLength])
		data = data[keys.PublicKeyLength:]
	}

	if len(data) < BlockhashLength {
		return nil, nil, fmt.Errorf("truncated recent blockhash")
	}
	copy(msg.RecentBlockhash[:], data[:BlockhashLength])
	data = data[BlockhashLength:]

	numIxs, n, err := decodeCompactU16(data)
	if err != nil {
		return nil, nil, fmt.Errorf("instruction count: %w", err)
	}
	data = data[n:]
	if numIxs > 0 {
		msg.Instructions = make([]CompiledInstruction, 0, numIxs)
	}
	for i := 0; i < numIxs; i++ {
		var ix CompiledInstruction
		if len(data) < 1 {
			return nil, nil, fmt.Errorf("truncated instruction %d", i)
		}
		ix.ProgramIDIndex = data[0]
		data = data[1:]

		numAccounts, n, err := decodeCompactU16(data)
		if err != nil {
			return nil, nil, fmt.Errorf("instruction %d account count: %w", i, err)
		}
		data = data[n:]
		if len(data) < numAccounts {
			return nil, nil, fmt.Errorf("truncated instruction %d accounts", i)
		}
		ix.AccountIndexes = append([]uint8(nil), data[:numAccounts]...)
		data = data[numAccounts:]

		dataLen, n, err := decodeCompactU16(data)
		if err != nil {
			return nil, nil, fmt.Errorf("instruction %d data length: %w", i, err)
		}
		data = data[n:]
		if len(data) < dataLen {
			return nil, nil, fmt.Errorf("truncated instruction %d data", i)
		}
		ix.Data = append([]byte(nil), data[:dataLen]...)
		data = data[dataLen:]

		msg.Instructions = append(msg.Instructions, ix)
	}

	if msg.Version == TransactionVersionV0 {
		numLookups, n, err := decodeCompactU16(data)
		if err != nil {
			return nil, nil, fmt.Errorf("address table lookup count: %w", err)
		}
		data = data[n:]
		if numLookups > 0 {
			msg.AddressTableLookups = make([]MessageAddressTableLookup, 0, numLookups)
		}
		for i := 0; i < numLookups; i++ {
			var lookup MessageAddressTableLookup
			if len(data) < keys.PublicKeyLength {
				return nil, nil, fmt.Errorf("truncated lookup %d account key", i)
			}
			copy(lookup.AccountKey[:], data[:keys.PublicKeyLength])
			data = data[keys.PublicKeyLength:]

			numWritable, n, err := decodeCompactU16(data)
			if err != nil {
				return nil, nil, fmt.Errorf("lookup %d writable count: %w", i, err)
			}
			data = data[n:]
			if len(data) < numWritable {
				return nil, nil, fmt.Errorf("truncated lookup %d writable indexes", i)
			}
			lookup.WritableIndexes = append([]uint8(nil), data[:numWritable]...)
			data = data[numWritable:]

			numReadonly, n, err := decodeCompactU16(data)
			if err != nil {
				return nil, nil, fmt.Errorf("lookup %d readonly count: %w", i, err)
			}
			data = data[n:]
			if len(data) < numReadonly {
				return nil, nil, fmt.Errorf("truncated lookup %d readonly indexes", i)
			}
			lookup.ReadonlyIndexes = append([]uint8(nil), data[:numReadonly]...)
			data = data[numReadonly:]

			msg.AddressTableLookups = append(msg.AddressTableLookups, lookup)
		}
	}

	return msg, data, nil
}
