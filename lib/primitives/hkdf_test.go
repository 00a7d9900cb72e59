// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package primitives

import (
	"bytes"
	"testing"
)

func TestHKDF_Deterministic(t *testing.T) {
	ikm := []byte("input-key-material-32-bytes-long")
	salt := []byte("tx-id-salt")
	info := []byte("group:tech_partners")

	first, err := HKDF(ikm, salt, info, 32)
	if err != nil {
		t.Fatalf("HKDF: %v", err)
	}
	second, err := HKDF(ikm, salt, info, 32)
	if err != nil {
		t.Fatalf("HKDF: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("expected HKDF to be deterministic for identical inputs")
	}
}

func TestHKDF_DomainSeparation(t *testing.T) {
	ikm := []byte("shared-content-key-material-here")
	salt := []byte("tx-id")

	groupA, err := HKDF(ikm, salt, []byte("group-a"), 32)
	if err != nil {
		t.Fatalf("HKDF: %v", err)
	}
	groupB, err := HKDF(ikm, salt, []byte("group-b"), 32)
	if err != nil {
		t.Fatalf("HKDF: %v", err)
	}
	if bytes.Equal(groupA, groupB) {
		t.Fatal("expected different info strings to derive different keys")
	}
}

func TestHKDF_NilSalt(t *testing.T) {
	if _, err := HKDF([]byte("ikm"), nil, []byte("info"), 32); err != nil {
		t.Fatalf("HKDF with nil salt: %v", err)
	}
}
