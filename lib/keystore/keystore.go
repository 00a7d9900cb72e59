// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package keystore

import (
	"crypto/ed25519"
	"fmt"

	"github.com/kakobtg/ChainOfProducts-project/lib/coperr"
	"github.com/kakobtg/ChainOfProducts-project/lib/secret"
)

// KeyStore persists IdentityKeyPairs under a base directory, one
// subdirectory per party name. The zero value is not usable; construct
// with [Open].
type KeyStore struct {
	baseDir    string
	masterKey  []byte
	passphrase *secret.Buffer // nil means secrets are stored unsealed
}

// Option configures a KeyStore constructed by Open.
type Option func(*KeyStore)

// WithPassphrase additionally seals each identity's secret key
// material with a passphrase-derived age recipient before it is
// written to disk (see seal.go). Without this option, secrets are
// protected only by file permissions (0600) and the HMAC integrity
// tag, not by encryption at rest. passphrase is held as an
// mmap-backed [secret.Buffer] for its lifetime in the KeyStore; the
// caller retains ownership and must Close it once the KeyStore is no
// longer in use.
func WithPassphrase(passphrase *secret.Buffer) Option {
	return func(k *KeyStore) { k.passphrase = passphrase }
}

// Open returns a KeyStore rooted at baseDir, creating baseDir and its
// master integrity key on first use.
func Open(baseDir string, opts ...Option) (*KeyStore, error) {
	masterKey, err := loadOrCreateMasterKey(baseDir)
	if err != nil {
		return nil, err
	}

	k := &KeyStore{baseDir: baseDir, masterKey: masterKey}
	for _, opt := range opts {
		opt(k)
	}
	return k, nil
}

// Generate creates a new IdentityKeyPair for name and persists it.
// Fails with [coperr.ErrAlreadyExists] if an identity for name already
// exists.
func (k *KeyStore) Generate(name string) (*IdentityKeyPair, error) {
	if exists(k.baseDir, name) {
		return nil, fmt.Errorf("%w: %q", coperr.ErrAlreadyExists, name)
	}

	identity, err := generateIdentity(name)
	if err != nil {
		return nil, err
	}

	if err := k.persist(identity); err != nil {
		identity.Close()
		return nil, err
	}
	return identity, nil
}

// Load retrieves name's IdentityKeyPair, including secrets. Fails
// with [coperr.ErrNotFound] if no identity exists for name, or
// [coperr.ErrKeyStoreFailure] on I/O or integrity failure.
func (k *KeyStore) Load(name string) (*IdentityKeyPair, error) {
	record, err := readRecord(k.baseDir, k.masterKey, name)
	if err != nil {
		return nil, err
	}

	signingSecretBytes := record.SigningSecret
	encSecretBytes := record.EncSecret
	if record.Sealed {
		if k.passphrase == nil {
			return nil, fmt.Errorf("%w: identity for %q is passphrase-sealed but no passphrase was configured", coperr.ErrKeyStoreFailure, name)
		}
		signingSecretBytes, err = unsealSecrets(signingSecretBytes, k.passphrase.String())
		if err != nil {
			return nil, err
		}
		encSecretBytes, err = unsealSecrets(encSecretBytes, k.passphrase.String())
		if err != nil {
			return nil, err
		}
	}

	signingSecretBuffer, err := secret.NewFromBytes(signingSecretBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", coperr.ErrKeyStoreFailure, err)
	}
	encSecretBuffer, err := secret.NewFromBytes(encSecretBytes)
	if err != nil {
		signingSecretBuffer.Close()
		return nil, fmt.Errorf("%w: %v", coperr.ErrKeyStoreFailure, err)
	}

	return &IdentityKeyPair{
		Name:          name,
		SigningPublic: ed25519.PublicKey(record.SigningPublic),
		SigningSecret: signingSecretBuffer,
		EncPublic:     record.EncPublic,
		EncSecret:     encSecretBuffer,
	}, nil
}

// Publics returns name's published public keys without touching
// secrets. Fails with [coperr.ErrNotFound] if no identity exists.
func (k *KeyStore) Publics(name string) (signingPublic ed25519.PublicKey, encPublic []byte, err error) {
	record, err := readRecord(k.baseDir, k.masterKey, name)
	if err != nil {
		return nil, nil, err
	}
	return ed25519.PublicKey(record.SigningPublic), record.EncPublic, nil
}

func (k *KeyStore) persist(identity *IdentityKeyPair) error {
	signingSecretBytes := append([]byte(nil), identity.SigningSecret.Bytes()...)
	defer secret.Zero(signingSecretBytes)
	encSecretBytes := append([]byte(nil), identity.EncSecret.Bytes()...)
	defer secret.Zero(encSecretBytes)

	sealed := false
	if k.passphrase != nil {
		var err error
		signingSecretBytes, err = sealSecrets(signingSecretBytes, k.passphrase.String())
		if err != nil {
			return err
		}
		encSecretBytes, err = sealSecrets(encSecretBytes, k.passphrase.String())
		if err != nil {
			return err
		}
		sealed = true
	}

	record := onDiskRecord{
		Name:          identity.Name,
		SigningPublic: append([]byte(nil), identity.SigningPublic...),
		SigningSecret: signingSecretBytes,
		EncPublic:     append([]byte(nil), identity.EncPublic...),
		EncSecret:     encSecretBytes,
		Sealed:        sealed,
	}
	return writeRecord(k.baseDir, k.masterKey, record)
}
