// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package unprotect

import (
	"fmt"

	"github.com/kakobtg/ChainOfProducts-project/lib/envelope"
	"github.com/kakobtg/ChainOfProducts-project/lib/primitives"
	"github.com/kakobtg/ChainOfProducts-project/lib/secret"
)

// Unwrap recovers the key sealed in wrapped using the recipient's
// X25519 encryption secret, reversing lib/protect.Wrap exactly.
// Returns [primitives.ErrAuthFailure] on any tampering or
// wrong-recipient attempt — the same exit code as a signature
// failure, though a distinct error.
func Unwrap(wrapped envelope.WrappedKey, recipientEncSecret []byte) ([]byte, error) {
	recipientEncPublic, err := primitives.X25519PublicFromPrivate(recipientEncSecret)
	if err != nil {
		return nil, err
	}

	shared, err := primitives.X25519(recipientEncSecret, wrapped.EphemeralPublic)
	if err != nil {
		return nil, fmt.Errorf("unprotect: deriving shared secret: %w", err)
	}
	defer secret.Zero(shared)

	salt := make([]byte, 0, len(wrapped.EphemeralPublic)+len(recipientEncPublic))
	salt = append(salt, wrapped.EphemeralPublic...)
	salt = append(salt, recipientEncPublic...)

	wrapKey, err := primitives.HKDF(shared, salt, []byte(envelope.WrapInfo), primitives.AEADKeySize)
	if err != nil {
		return nil, fmt.Errorf("unprotect: deriving wrap key: %w", err)
	}
	defer secret.Zero(wrapKey)

	return primitives.AEADOpen(wrapKey, wrapped.Nonce, wrapped.Ciphertext, recipientEncPublic)
}
