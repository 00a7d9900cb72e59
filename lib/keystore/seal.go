// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package keystore

import (
	"bytes"
	"fmt"
	"io"

	"filippo.io/age"

	"github.com/kakobtg/ChainOfProducts-project/lib/coperr"
)

// sealSecrets encrypts plaintext to a passphrase-derived age scrypt
// recipient, applied here to a passphrase instead of a recipient
// public key since a KeyStore identity file has no natural
// third-party public key to seal to.
func sealSecrets(plaintext []byte, passphrase string) ([]byte, error) {
	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return nil, fmt.Errorf("%w: constructing passphrase recipient: %v", coperr.ErrKeyStoreFailure, err)
	}

	var ciphertext bytes.Buffer
	writer, err := age.Encrypt(&ciphertext, recipient)
	if err != nil {
		return nil, fmt.Errorf("%w: starting passphrase encryption: %v", coperr.ErrKeyStoreFailure, err)
	}
	if _, err := writer.Write(plaintext); err != nil {
		return nil, fmt.Errorf("%w: sealing identity secrets: %v", coperr.ErrKeyStoreFailure, err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("%w: finalizing sealed identity secrets: %v", coperr.ErrKeyStoreFailure, err)
	}
	return ciphertext.Bytes(), nil
}

// unsealSecrets reverses sealSecrets.
func unsealSecrets(ciphertext []byte, passphrase string) ([]byte, error) {
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, fmt.Errorf("%w: constructing passphrase identity: %v", coperr.ErrKeyStoreFailure, err)
	}

	reader, err := age.Decrypt(bytes.NewReader(ciphertext), identity)
	if err != nil {
		return nil, fmt.Errorf("%w: unsealing identity secrets: %v", coperr.ErrKeyStoreFailure, err)
	}

	plaintext, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading unsealed identity secrets: %v", coperr.ErrKeyStoreFailure, err)
	}
	return plaintext, nil
}
