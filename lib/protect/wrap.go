// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package protect

import (
	"fmt"

	"github.com/kakobtg/ChainOfProducts-project/lib/envelope"
	"github.com/kakobtg/ChainOfProducts-project/lib/primitives"
	"github.com/kakobtg/ChainOfProducts-project/lib/secret"
)

// Wrap encrypts key (a content key or group key, 32 bytes) to
// recipientEncPub using ephemeral-ECDH + HKDF-SHA256 + AEAD. It is
// exported for lib/share, which performs the identical construction
// when building a post-Protect addendum.
//
// The ephemeral secret and the derived shared point and wrap key are
// zeroed before this function returns; none of them are retained past
// this call.
func Wrap(key []byte, recipientName string, recipientEncPub []byte) (envelope.WrappedKey, error) {
	ephemeralSecret, ephemeralPublic, err := primitives.GenerateX25519Keypair()
	if err != nil {
		return envelope.WrappedKey{}, err
	}
	defer secret.Zero(ephemeralSecret)

	shared, err := primitives.X25519(ephemeralSecret, recipientEncPub)
	if err != nil {
		return envelope.WrappedKey{}, fmt.Errorf("protect: deriving shared secret for %q: %w", recipientName, err)
	}
	defer secret.Zero(shared)

	salt := make([]byte, 0, len(ephemeralPublic)+len(recipientEncPub))
	salt = append(salt, ephemeralPublic...)
	salt = append(salt, recipientEncPub...)

	wrapKey, err := primitives.HKDF(shared, salt, []byte(envelope.WrapInfo), primitives.AEADKeySize)
	if err != nil {
		return envelope.WrappedKey{}, fmt.Errorf("protect: deriving wrap key for %q: %w", recipientName, err)
	}
	defer secret.Zero(wrapKey)

	nonce, err := primitives.RandomBytes(primitives.AEADNonceSize)
	if err != nil {
		return envelope.WrappedKey{}, err
	}

	ciphertext, err := primitives.AEADSeal(wrapKey, nonce, key, recipientEncPub)
	if err != nil {
		return envelope.WrappedKey{}, fmt.Errorf("protect: sealing wrapped key for %q: %w", recipientName, err)
	}

	return envelope.WrappedKey{
		Ciphertext:      ciphertext,
		EphemeralPublic: ephemeralPublic,
		RecipientName:   recipientName,
		Nonce:           nonce,
	}, nil
}
