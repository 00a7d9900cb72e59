// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package keystore

import (
	"crypto/ed25519"

	"github.com/kakobtg/ChainOfProducts-project/lib/primitives"
	"github.com/kakobtg/ChainOfProducts-project/lib/secret"
)

// IdentityKeyPair is one party's long-term signing and encryption key
// pair. SigningSecret and EncSecret are mmap-backed secret buffers;
// the caller must call Close when the identity is no longer needed.
type IdentityKeyPair struct {
	Name string

	SigningPublic ed25519.PublicKey
	SigningSecret *secret.Buffer // ed25519.PrivateKey bytes

	EncPublic []byte // X25519, 32 bytes
	EncSecret *secret.Buffer // X25519, 32 bytes
}

// Close releases the secret buffers. Idempotent.
func (id *IdentityKeyPair) Close() error {
	var firstError error
	if id.SigningSecret != nil {
		if err := id.SigningSecret.Close(); err != nil && firstError == nil {
			firstError = err
		}
	}
	if id.EncSecret != nil {
		if err := id.EncSecret.Close(); err != nil && firstError == nil {
			firstError = err
		}
	}
	return firstError
}

// generateIdentity creates a fresh IdentityKeyPair for name. The
// returned secrets live in mmap-backed buffers from the moment they
// are generated.
func generateIdentity(name string) (*IdentityKeyPair, error) {
	signingPublic, signingSecret, err := primitives.GenerateSigningKeypair()
	if err != nil {
		return nil, err
	}

	encSecretBytes, encPublic, err := primitives.GenerateX25519Keypair()
	if err != nil {
		return nil, err
	}

	signingSecretBuffer, err := secret.NewFromBytes(signingSecret)
	if err != nil {
		return nil, err
	}
	encSecretBuffer, err := secret.NewFromBytes(encSecretBytes)
	if err != nil {
		signingSecretBuffer.Close()
		return nil, err
	}

	return &IdentityKeyPair{
		Name:          name,
		SigningPublic: signingPublic,
		SigningSecret: signingSecretBuffer,
		EncPublic:     encPublic,
		EncSecret:     encSecretBuffer,
	}, nil
}
