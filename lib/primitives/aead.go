// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package primitives

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// AEADKeySize is the size in bytes of an AES-256-GCM key.
const AEADKeySize = 32

// AEADNonceSize is the size in bytes of an AES-256-GCM nonce. Nonces
// are always fresh random values (see [RandomBytes]) and are never
// reused with the same key.
const AEADNonceSize = 12

// AEADTagSize is the size in bytes of the AES-256-GCM authentication
// tag appended to every ciphertext.
const AEADTagSize = 16

// AEADSeal encrypts plaintext under key and nonce using AES-256-GCM,
// binding aad into authentication without including it in the
// ciphertext. The returned slice is ciphertext with the 16-byte tag
// appended, matching the standard cipher.AEAD.Seal convention.
//
// key must be exactly AEADKeySize bytes and nonce exactly
// AEADNonceSize bytes; a wrong-length key or nonce is a precondition
// violation and is reported as a plain error, not ErrAuthFailure.
func AEADSeal(key, nonce, plaintext, aad []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != AEADNonceSize {
		return nil, fmt.Errorf("primitives: nonce must be %d bytes, got %d", AEADNonceSize, len(nonce))
	}
	return aead.Seal(nil, nonce, plaintext, aad), nil
}

// AEADOpen decrypts ciphertextWithTag under key and nonce using
// AES-256-GCM, verifying aad. Returns [ErrAuthFailure] if the tag does
// not verify — tampered ciphertext, wrong key, and mismatched aad are
// indistinguishable from this function's perspective.
func AEADOpen(key, nonce, ciphertextWithTag, aad []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != AEADNonceSize {
		return nil, fmt.Errorf("primitives: nonce must be %d bytes, got %d", AEADNonceSize, len(nonce))
	}
	plaintext, err := aead.Open(nil, nonce, ciphertextWithTag, aad)
	if err != nil {
		return nil, ErrAuthFailure
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != AEADKeySize {
		return nil, fmt.Errorf("primitives: AEAD key must be %d bytes, got %d", AEADKeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("primitives: constructing AES cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("primitives: constructing GCM mode: %w", err)
	}
	return aead, nil
}
