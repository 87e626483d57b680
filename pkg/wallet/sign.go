package wallet

import (
	"context"
	"fmt"

	"github.com/solstice-labs/solana-signer-go/pkg/identity"
	"github.com/solstice-labs/solana-signer-go/pkg/keys"
	"github.com/solstice-labs/solana-signer-go/pkg/txn"
)

// SignVersioned signs a versioned transaction with one identity. The signer
// is located among the first NumRequiredSignatures static account keys; if
// it is not there the signature array is left untouched.
func SignVersioned(ctx context.Context, tx *txn.VersionedTransaction, id identity.IIdentity) error {
	if id == nil {
		return ErrNoSigners
	}

	pk := id.PublicKey()
	msgBytes, err := tx.Message.Serialize()
	if err != nil {
		return fmt.Errorf("failed to serialize message: %w", err)
	}

	index := tx.Message.SignerIndex(pk)
	if index < 0 {
		return &UnknownSignerError{PublicKey: pk}
	}

	sig, err := produceSignature(ctx, id, msgBytes)
	if err != nil {
		return err
	}

	if n := int(tx.Message.Header.NumRequiredSignatures); len(tx.Signatures) < n {
		grown := make([]keys.Signature, n)
		copy(grown, tx.Signatures)
		tx.Signatures = grown
	}
	tx.Signatures[index] = sig

	return nil
}

// SignLegacy signs a legacy transaction with one or more identities.
// Identities are deduplicated by public key so each signer is asked to sign
// at most once. Existing signature slots are reused when they already match
// the compiled message's signer order, preserving co-signer signatures;
// otherwise the slot list is reset to the required signers with all
// signatures cleared.
//
// Signatures written before a failure are not rolled back.
func SignLegacy(ctx context.Context, tx *txn.LegacyTransaction, identities ...identity.IIdentity) error {
	if len(identities) == 0 {
		return ErrNoSigners
	}

	seen := make(map[string]struct{}, len(identities))
	unique := make([]identity.IIdentity, 0, len(identities))
	for _, id := range identities {
		if id == nil {
			continue
		}
		key := id.PublicKey().String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return ErrNoSigners
	}

	msg, err := tx.CompileMessage()
	if err != nil {
		return fmt.Errorf("failed to compile message: %w", err)
	}
	signerKeys := msg.SignerKeys()

	if !slotsMatch(tx.Signatures, signerKeys) {
		tx.Signatures = make([]txn.SignatureSlot, len(signerKeys))
		for i, key := range signerKeys {
			tx.Signatures[i].PublicKey = key
		}
	}

	msgBytes, err := msg.Serialize()
	if err != nil {
		return fmt.Errorf("failed to serialize message: %w", err)
	}

	for _, id := range unique {
		sig, err := produceSignature(ctx, id, msgBytes)
		if err != nil {
			return err
		}

		index := tx.SlotFor(id.PublicKey())
		if index < 0 {
			return &UnknownSignerError{PublicKey: id.PublicKey()}
		}
		tx.Signatures[index].Signature = sig
	}

	return nil
}

// slotsMatch reports whether the existing slots line up one-to-one with the
// compiled signer order.
func slotsMatch(slots []txn.SignatureSlot, signerKeys []keys.PublicKey) bool {
	if len(slots) != len(signerKeys) {
		return false
	}
	for i, key := range signerKeys {
		if !slots[i].PublicKey.Equals(key) {
			return false
		}
	}
	return true
}

func produceSignature(ctx context.Context, id identity.IIdentity, message []byte) (keys.Signature, error) {
	raw, err := id.Sign(ctx, message)
	if err != nil {
		return keys.Signature{}, fmt.Errorf("identity %s failed to sign: %w", id.PublicKey(), err)
	}
	if len(raw) != keys.SignatureLength {
		return keys.Signature{}, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidSignatureLength, keys.SignatureLength, len(raw))
	}
	return keys.SignatureFromBytes(raw)
}
