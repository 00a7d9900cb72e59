// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package envelope

import (
	"fmt"

	"github.com/kakobtg/ChainOfProducts-project/lib/canon"
)

// CanonicalSigningInput returns the exact bytes that seller_sig and
// buyer_sig are computed over: the canonical JSON encoding of e's
// SigningInput. Protect, Check, Unprotect, and BuyerSign all call this
// rather than trusting any transmitted signing-input, since trusting
// a transmitted copy would let an attacker sign one input and present
// a different one as "what was signed".
func CanonicalSigningInput(e Envelope) ([]byte, error) {
	data, err := canon.Marshal(e.SigningInput())
	if err != nil {
		return nil, fmt.Errorf("envelope: encoding signing input: %w", err)
	}
	return data, nil
}

// ContentAAD returns the associated data bound into the content AEAD
// seal/open: tx_id || seller || buyer, concatenated as raw bytes, so
// the content ciphertext cannot be replayed under a different
// transaction, seller, or buyer without detection.
func ContentAAD(txID []byte, seller, buyer string) []byte {
	aad := make([]byte, 0, len(txID)+len(seller)+len(buyer))
	aad = append(aad, txID...)
	aad = append(aad, seller...)
	aad = append(aad, buyer...)
	return aad
}

// ShareRecordSigningBytes returns the bytes whose SHA-256 digest a
// sharer signs: the canonical serialization of the record's body
// (every field except the signature itself).
func ShareRecordSigningBytes(s ShareRecord) ([]byte, error) {
	data, err := canon.Marshal(s.Body())
	if err != nil {
		return nil, fmt.Errorf("envelope: encoding share record body: %w", err)
	}
	return data, nil
}
