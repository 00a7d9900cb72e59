// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package keystore

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kakobtg/ChainOfProducts-project/lib/codec"
	"github.com/kakobtg/ChainOfProducts-project/lib/coperr"
)

const masterKeySize = 32
const masterKeyFile = "master.key"
const identityFile = "identity.cbor"

// onDiskRecord is the CBOR payload for one party's identity, before
// the integrity tag is attached. Secret fields may additionally be
// age-sealed (see seal.go); Sealed records which case applies.
type onDiskRecord struct {
	Name          string `cbor:"1,keyasint"`
	SigningPublic []byte `cbor:"2,keyasint"`
	SigningSecret []byte `cbor:"3,keyasint"`
	EncPublic     []byte `cbor:"4,keyasint"`
	EncSecret     []byte `cbor:"5,keyasint"`
	Sealed        bool   `cbor:"6,keyasint"`
}

// onDiskFile is the complete contents of identity.cbor: the record
// plus an HMAC-SHA256 tag over its CBOR encoding, keyed by the
// KeyStore's master key. A tag mismatch on load means the file was
// corrupted or tampered with outside the KeyStore.
type onDiskFile struct {
	Record onDiskRecord `cbor:"1,keyasint"`
	MAC    []byte       `cbor:"2,keyasint"`
}

func partyDir(baseDir, name string) string {
	return filepath.Join(baseDir, name)
}

func loadOrCreateMasterKey(baseDir string) ([]byte, error) {
	path := filepath.Join(baseDir, masterKeyFile)

	data, err := os.ReadFile(path)
	if err == nil {
		if len(data) != masterKeySize {
			return nil, fmt.Errorf("%w: master key at %s has wrong size", coperr.ErrKeyStoreFailure, path)
		}
		return data, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: reading master key: %v", coperr.ErrKeyStoreFailure, err)
	}

	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("%w: creating key store directory: %v", coperr.ErrKeyStoreFailure, err)
	}

	key := make([]byte, masterKeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("%w: generating master key: %v", coperr.ErrRandomness, err)
	}
	if err := os.WriteFile(path, key, 0600); err != nil {
		return nil, fmt.Errorf("%w: writing master key: %v", coperr.ErrKeyStoreFailure, err)
	}
	return key, nil
}

func tag(masterKey []byte, encoded []byte) []byte {
	mac := hmac.New(sha256.New, masterKey)
	mac.Write(encoded)
	return mac.Sum(nil)
}

func writeRecord(baseDir string, masterKey []byte, record onDiskRecord) error {
	dir := partyDir(baseDir, record.Name)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("%w: creating identity directory: %v", coperr.ErrKeyStoreFailure, err)
	}

	encodedRecord, err := codec.Marshal(record)
	if err != nil {
		return fmt.Errorf("%w: encoding identity record: %v", coperr.ErrKeyStoreFailure, err)
	}

	file := onDiskFile{Record: record, MAC: tag(masterKey, encodedRecord)}
	encodedFile, err := codec.Marshal(file)
	if err != nil {
		return fmt.Errorf("%w: encoding identity file: %v", coperr.ErrKeyStoreFailure, err)
	}

	path := filepath.Join(dir, identityFile)
	if err := os.WriteFile(path, encodedFile, 0600); err != nil {
		return fmt.Errorf("%w: writing identity file: %v", coperr.ErrKeyStoreFailure, err)
	}
	return nil
}

func readRecord(baseDir string, masterKey []byte, name string) (onDiskRecord, error) {
	path := filepath.Join(partyDir(baseDir, name), identityFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return onDiskRecord{}, fmt.Errorf("%w: no identity for %q", coperr.ErrNotFound, name)
		}
		return onDiskRecord{}, fmt.Errorf("%w: reading identity file: %v", coperr.ErrKeyStoreFailure, err)
	}

	var file onDiskFile
	if err := codec.Unmarshal(data, &file); err != nil {
		return onDiskRecord{}, fmt.Errorf("%w: decoding identity file: %v", coperr.ErrKeyStoreFailure, err)
	}

	encodedRecord, err := codec.Marshal(file.Record)
	if err != nil {
		return onDiskRecord{}, fmt.Errorf("%w: re-encoding identity record: %v", coperr.ErrKeyStoreFailure, err)
	}
	expectedTag := tag(masterKey, encodedRecord)
	if subtle.ConstantTimeCompare(expectedTag, file.MAC) != 1 {
		return onDiskRecord{}, fmt.Errorf("%w: identity file for %q failed integrity check", coperr.ErrKeyStoreFailure, name)
	}

	return file.Record, nil
}

func exists(baseDir, name string) bool {
	_, err := os.Stat(filepath.Join(partyDir(baseDir, name), identityFile))
	return err == nil
}
