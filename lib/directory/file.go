// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package directory

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/kakobtg/ChainOfProducts-project/lib/coperr"
)

// fileEntry is one party's record as written to the directory file:
// base64-standard-encoded public keys.
type fileEntry struct {
	SigningPublicKey    string `yaml:"signing_public_key"`
	EncryptionPublicKey string `yaml:"encryption_public_key"`
}

// FileDirectory is a PublicKeyDirectory backed by a single YAML file
// holding every known party's published public keys. Safe for
// concurrent use; Register persists immediately. Publics reads only
// the entries loaded by OpenFile plus this instance's own Registers, so
// another FileDirectory on the same file sees an update only after it
// is opened again.
type FileDirectory struct {
	path string

	mu      sync.RWMutex
	entries map[string]fileEntry
}

// OpenFile loads a FileDirectory from path. If no file exists yet, it
// returns an empty directory without creating the file; the file is
// first written by Register.
func OpenFile(path string) (*FileDirectory, error) {
	d := &FileDirectory{path: path, entries: make(map[string]fileEntry)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return d, nil
		}
		return nil, fmt.Errorf("%w: reading directory file: %v", coperr.ErrKeyStoreFailure, err)
	}

	if err := yaml.Unmarshal(data, &d.entries); err != nil {
		return nil, fmt.Errorf("%w: parsing directory file: %v", coperr.ErrKeyStoreFailure, err)
	}
	return d, nil
}

// Publics implements PublicKeyDirectory.
func (d *FileDirectory) Publics(name string) (ed25519.PublicKey, []byte, error) {
	d.mu.RLock()
	entry, ok := d.entries[name]
	d.mu.RUnlock()
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", coperr.ErrNotFound, name)
	}

	signingPublic, err := base64.StdEncoding.DecodeString(entry.SigningPublicKey)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: decoding signing public key for %q: %v", coperr.ErrKeyStoreFailure, name, err)
	}
	encPublic, err := base64.StdEncoding.DecodeString(entry.EncryptionPublicKey)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: decoding encryption public key for %q: %v", coperr.ErrKeyStoreFailure, name, err)
	}
	return ed25519.PublicKey(signingPublic), encPublic, nil
}

// Register publishes name's public keys, overwriting any existing
// entry, and persists the directory file.
func (d *FileDirectory) Register(name string, signingPublic ed25519.PublicKey, encPublic []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.entries[name] = fileEntry{
		SigningPublicKey:    base64.StdEncoding.EncodeToString(signingPublic),
		EncryptionPublicKey: base64.StdEncoding.EncodeToString(encPublic),
	}

	data, err := yaml.Marshal(d.entries)
	if err != nil {
		return fmt.Errorf("%w: encoding directory file: %v", coperr.ErrKeyStoreFailure, err)
	}
	if err := os.WriteFile(d.path, data, 0600); err != nil {
		return fmt.Errorf("%w: writing directory file: %v", coperr.ErrKeyStoreFailure, err)
	}
	return nil
}
