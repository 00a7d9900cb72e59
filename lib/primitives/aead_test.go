// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package primitives

import "testing"

func TestAEADSealOpen_RoundTrip(t *testing.T) {
	key, err := RandomBytes(AEADKeySize)
	if err != nil {
		t.Fatalf("RandomBytes: %v", err)
	}
	nonce, err := RandomBytes(AEADNonceSize)
	if err != nil {
		t.Fatalf("RandomBytes: %v", err)
	}
	plaintext := []byte("seller=acme;item=lithium;qty=100")
	aad := []byte("binding-context")

	ciphertext, err := AEADSeal(key, nonce, plaintext, aad)
	if err != nil {
		t.Fatalf("AEADSeal: %v", err)
	}
	if len(ciphertext) != len(plaintext)+AEADTagSize {
		t.Fatalf("ciphertext length = %d, want %d", len(ciphertext), len(plaintext)+AEADTagSize)
	}

	got, err := AEADOpen(key, nonce, ciphertext, aad)
	if err != nil {
		t.Fatalf("AEADOpen: %v", err)
	}
	if string(got) != string(plaintext) {
		t.Fatalf("AEADOpen = %q, want %q", got, plaintext)
	}
}

func TestAEADOpen_TamperedCiphertext(t *testing.T) {
	key, _ := RandomBytes(AEADKeySize)
	nonce, _ := RandomBytes(AEADNonceSize)
	ciphertext, err := AEADSeal(key, nonce, []byte("payload"), nil)
	if err != nil {
		t.Fatalf("AEADSeal: %v", err)
	}

	tampered := append([]byte(nil), ciphertext...)
	tampered[0] ^= 0xFF

	if _, err := AEADOpen(key, nonce, tampered, nil); err != ErrAuthFailure {
		t.Fatalf("AEADOpen on tampered ciphertext = %v, want ErrAuthFailure", err)
	}
}

func TestAEADOpen_WrongAAD(t *testing.T) {
	key, _ := RandomBytes(AEADKeySize)
	nonce, _ := RandomBytes(AEADNonceSize)
	ciphertext, err := AEADSeal(key, nonce, []byte("payload"), []byte("correct-aad"))
	if err != nil {
		t.Fatalf("AEADSeal: %v", err)
	}

	if _, err := AEADOpen(key, nonce, ciphertext, []byte("wrong-aad")); err != ErrAuthFailure {
		t.Fatalf("AEADOpen with wrong AAD = %v, want ErrAuthFailure", err)
	}
}

func TestAEADOpen_WrongKey(t *testing.T) {
	key, _ := RandomBytes(AEADKeySize)
	otherKey, _ := RandomBytes(AEADKeySize)
	nonce, _ := RandomBytes(AEADNonceSize)
	ciphertext, err := AEADSeal(key, nonce, []byte("payload"), nil)
	if err != nil {
		t.Fatalf("AEADSeal: %v", err)
	}

	if _, err := AEADOpen(otherKey, nonce, ciphertext, nil); err != ErrAuthFailure {
		t.Fatalf("AEADOpen with wrong key = %v, want ErrAuthFailure", err)
	}
}

func TestAEADSeal_WrongKeyLength(t *testing.T) {
	if _, err := AEADSeal(make([]byte, 16), make([]byte, AEADNonceSize), []byte("x"), nil); err == nil {
		t.Fatal("expected error for short key")
	}
}
