package txn

import (
	"fmt"

	"github.com/solstice-labs/solana-signer-go/pkg/keys"
)

// VersionedTransaction is a compiled message plus a flat signature array
// indexed by position in the message's static account keys. The first
// NumRequiredSignatures static keys are the signers.
type VersionedTransaction struct {
	Message    Message
	Signatures []keys.Signature
}

// NewVersionedTransaction wraps a compiled message with an unset signature
// array sized to the message's required signer count.
func NewVersionedTransaction(msg Message) *VersionedTransaction {
	return &VersionedTransaction{
		Message:    msg,
		Signatures: make([]keys.Signature, msg.Header.NumRequiredSignatures),
	}
}

// Serialize encodes the envelope: compact signature count, signatures, then
// the message bytes.
func (tx *VersionedTransaction) Serialize() ([]byte, error) {
	msgBytes, err := tx.Message.Serialize()
	if err != nil {
		return nil, err
	}

	buf, err := appendCompactU16(nil, len(tx.Signatures))
	if err != nil {
		return nil, err
	}
	for _, sig := range tx.Signatures {
		buf = append(buf, sig.Bytes()...)
	}

	return append(buf, msgBytes...), nil
}

// DeserializeVersionedTransaction parses a serialized envelope of either
// version.
func DeserializeVersionedTransaction(data []byte) (*VersionedTransaction, error) {
	numSigs, n, err := decodeCompactU16(data)
	if err != nil {
		return nil, fmt.Errorf("signature count: %w", err)
	}
	data = data[n:]
	if len(data) < numSigs*keys.SignatureLength {
		return nil, fmt.Errorf("truncated signatures")
	}

	tx := &VersionedTransaction{Signatures: make([]keys.Signature, numSigs)}
	for i := 0; i < numSigs; i++ {
		copy(tx.Signatures[i][:], data[:keys.SignatureLength])
		data = data[keys.SignatureLength:]
	}

	msg, rest, err := parseMessage(data)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("trailing bytes after message: %d", len(rest))
	}
	tx.Message = *msg

	return tx, nil
}
