// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package primitives

import (
	"crypto/ed25519"
	"fmt"
)

// SigningPublicKeySize and SigningPrivateKeySize are the Ed25519 key
// sizes in bytes.
const (
	SigningPublicKeySize  = ed25519.PublicKeySize
	SigningPrivateKeySize = ed25519.PrivateKeySize
	SignatureSize         = ed25519.SignatureSize
)

// GenerateSigningKeypair generates a new Ed25519 signing key pair.
func GenerateSigningKeypair() (ed25519.PublicKey, ed25519.PrivateKey, error) {
	public, private, err := ed25519.GenerateKey(nil)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrRandomness, err)
	}
	return public, private, nil
}

// Sign returns a 64-byte Ed25519 signature over message.
func Sign(signingSecret ed25519.PrivateKey, message []byte) []byte {
	return ed25519.Sign(signingSecret, message)
}

// Verify reports whether signature is a valid Ed25519 signature over
// message under signingPublic. It does not return [ErrAuthFailure]
// itself — callers compare the boolean to the expected class of
// failure, keeping AuthFailure and SignatureInvalid distinguishable
// only at the pipeline layer where that distinction is meaningful
// (see lib/check).
func Verify(signingPublic ed25519.PublicKey, message, signature []byte) bool {
	return ed25519.Verify(signingPublic, message, signature)
}
