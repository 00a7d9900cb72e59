// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package primitives

import "testing"

func TestSignVerify_RoundTrip(t *testing.T) {
	public, private, err := GenerateSigningKeypair()
	if err != nil {
		t.Fatalf("GenerateSigningKeypair: %v", err)
	}

	message := []byte("canonical-signing-input")
	signature := Sign(private, message)
	if len(signature) != SignatureSize {
		t.Fatalf("signature length = %d, want %d", len(signature), SignatureSize)
	}

	if !Verify(public, message, signature) {
		t.Fatal("expected signature to verify")
	}
}

func TestVerify_TamperedMessage(t *testing.T) {
	public, private, err := GenerateSigningKeypair()
	if err != nil {
		t.Fatalf("GenerateSigningKeypair: %v", err)
	}

	signature := Sign(private, []byte("original"))
	if Verify(public, []byte("tampered"), signature) {
		t.Fatal("expected signature verification to fail on tampered message")
	}
}

func TestVerify_WrongKey(t *testing.T) {
	_, private, err := GenerateSigningKeypair()
	if err != nil {
		t.Fatalf("GenerateSigningKeypair: %v", err)
	}
	otherPublic, _, err := GenerateSigningKeypair()
	if err != nil {
		t.Fatalf("GenerateSigningKeypair: %v", err)
	}

	message := []byte("message")
	signature := Sign(private, message)
	if Verify(otherPublic, message, signature) {
		t.Fatal("expected signature verification to fail under wrong public key")
	}
}
