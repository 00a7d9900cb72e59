// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package keystore

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kakobtg/ChainOfProducts-project/lib/coperr"
	"github.com/kakobtg/ChainOfProducts-project/lib/secret"
)

func TestGenerateLoadPublics_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	generated, err := store.Generate("Ching Chong Extractions")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	defer generated.Close()

	loaded, err := store.Load("Ching Chong Extractions")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer loaded.Close()

	if !bytes.Equal(generated.SigningPublic, loaded.SigningPublic) {
		t.Error("signing public mismatch after reload")
	}
	if !bytes.Equal(generated.EncPublic, loaded.EncPublic) {
		t.Error("encryption public mismatch after reload")
	}
	if !loaded.SigningSecret.Equal(generated.SigningSecret.Bytes()) {
		t.Error("signing secret mismatch after reload")
	}
	if !loaded.EncSecret.Equal(generated.EncSecret.Bytes()) {
		t.Error("encryption secret mismatch after reload")
	}

	signingPublic, encPublic, err := store.Publics("Ching Chong Extractions")
	if err != nil {
		t.Fatalf("Publics: %v", err)
	}
	if !bytes.Equal(signingPublic, generated.SigningPublic) || !bytes.Equal(encPublic, generated.EncPublic) {
		t.Error("Publics mismatch")
	}
}

func TestGenerate_AlreadyExists(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	id, err := store.Generate("Lays Chips")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	id.Close()

	_, err = store.Generate("Lays Chips")
	if !errors.Is(err, coperr.ErrAlreadyExists) {
		t.Fatalf("Generate again = %v, want ErrAlreadyExists", err)
	}
}

func TestLoad_NotFound(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if _, err := store.Load("Nobody"); !errors.Is(err, coperr.ErrNotFound) {
		t.Fatalf("Load = %v, want ErrNotFound", err)
	}
}

func TestLoad_DetectsTamperedIdentity(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	id, err := store.Generate("Auditor Corp")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	id.Close()

	path := filepath.Join(dir, "Auditor Corp", identityFile)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading identity file: %v", err)
	}
	data[len(data)-1] ^= 0xff
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("writing tampered identity file: %v", err)
	}

	if _, err := store.Load("Auditor Corp"); !errors.Is(err, coperr.ErrKeyStoreFailure) {
		t.Fatalf("Load after tamper = %v, want ErrKeyStoreFailure", err)
	}
}

func TestPassphraseSealing_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	passphrase, err := secret.NewFromBytes([]byte("correct horse battery staple"))
	if err != nil {
		t.Fatalf("secret.NewFromBytes: %v", err)
	}
	defer passphrase.Close()

	store, err := Open(dir, WithPassphrase(passphrase))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	id, err := store.Generate("Sealed Co")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	id.Close()

	loaded, err := store.Load("Sealed Co")
	if err != nil {
		t.Fatalf("Load with matching passphrase: %v", err)
	}
	loaded.Close()

	wrongPassphrase, err := secret.NewFromBytes([]byte("wrong passphrase"))
	if err != nil {
		t.Fatalf("secret.NewFromBytes: %v", err)
	}
	defer wrongPassphrase.Close()

	wrongPassphraseStore, err := Open(dir, WithPassphrase(wrongPassphrase))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := wrongPassphraseStore.Load("Sealed Co"); err == nil {
		t.Fatal("expected Load with wrong passphrase to fail")
	}
}
