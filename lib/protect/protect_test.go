// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package protect

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/kakobtg/ChainOfProducts-project/lib/coperr"
	"github.com/kakobtg/ChainOfProducts-project/lib/directory"
	"github.com/kakobtg/ChainOfProducts-project/lib/envelope"
	"github.com/kakobtg/ChainOfProducts-project/lib/group"
	"github.com/kakobtg/ChainOfProducts-project/lib/keystore"
	"github.com/kakobtg/ChainOfProducts-project/lib/primitives"
)

type testFixture struct {
	keyStore  *keystore.KeyStore
	directory *directory.FileDirectory
	groups    *group.MemoryResolver
}

func newFixture(t *testing.T, names ...string) *testFixture {
	t.Helper()

	ks, err := keystore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("keystore.Open: %v", err)
	}
	dir, err := directory.OpenFile(filepath.Join(t.TempDir(), "directory.yaml"))
	if err != nil {
		t.Fatalf("directory.OpenFile: %v", err)
	}

	for _, name := range names {
		identity, err := ks.Generate(name)
		if err != nil {
			t.Fatalf("Generate(%q): %v", name, err)
		}
		if err := dir.Register(name, identity.SigningPublic, identity.EncPublic); err != nil {
			t.Fatalf("Register(%q): %v", name, err)
		}
		identity.Close()
	}

	return &testFixture{
		keyStore:  ks,
		directory: dir,
		groups:    group.NewMemoryResolver(),
	}
}

func TestProtect_DirectRecipientsOnly(t *testing.T) {
	fx := newFixture(t, "Lays Chips", "Auditor Corp", "Shipping Co")

	env, err := Protect(Request{
		Transaction:   []byte("50 tons lithium, batch 9912"),
		SellerName:    "Lays Chips",
		BuyerName:     "Auditor Corp",
		Recipients:    []string{"Shipping Co"},
		KeyStore:      fx.keyStore,
		Directory:     fx.directory,
		GroupResolver: fx.groups,
	})
	if err != nil {
		t.Fatalf("Protect: %v", err)
	}

	if len(env.DirectRecipients) != 3 {
		t.Fatalf("len(DirectRecipients) = %d, want 3", len(env.DirectRecipients))
	}
	if env.DirectRecipients[0].RecipientName != "Lays Chips" {
		t.Fatalf("first direct recipient = %q, want seller first", env.DirectRecipients[0].RecipientName)
	}
	if env.DirectRecipients[1].RecipientName != "Auditor Corp" {
		t.Fatalf("second direct recipient = %q, want buyer second", env.DirectRecipients[1].RecipientName)
	}
	if len(env.GroupRecipients) != 0 {
		t.Fatalf("expected no group recipients, got %d", len(env.GroupRecipients))
	}
	if len(env.TxID) != TxIDSize {
		t.Fatalf("len(TxID) = %d, want %d", len(env.TxID), TxIDSize)
	}

	signingInput, err := envelope.CanonicalSigningInput(env)
	if err != nil {
		t.Fatalf("CanonicalSigningInput: %v", err)
	}
	sellerPublic, _, err := fx.directory.Publics("Lays Chips")
	if err != nil {
		t.Fatalf("Publics: %v", err)
	}
	if !primitives.Verify(sellerPublic, signingInput, env.SellerSignature) {
		t.Fatal("seller signature does not verify")
	}
}

func TestProtect_DeduplicatesOverlappingRecipients(t *testing.T) {
	fx := newFixture(t, "Lays Chips", "Auditor Corp")

	env, err := Protect(Request{
		Transaction:   []byte("payload"),
		SellerName:    "Lays Chips",
		BuyerName:     "Auditor Corp",
		Recipients:    []string{"Auditor Corp", "Lays Chips"},
		KeyStore:      fx.keyStore,
		Directory:     fx.directory,
		GroupResolver: fx.groups,
	})
	if err != nil {
		t.Fatalf("Protect: %v", err)
	}
	if len(env.DirectRecipients) != 2 {
		t.Fatalf("len(DirectRecipients) = %d, want 2 (deduplicated)", len(env.DirectRecipients))
	}
}

func TestProtect_GroupRecipients(t *testing.T) {
	fx := newFixture(t, "Lays Chips", "Factory A", "Factory B")
	fx.groups.CreateGroup("tech_partners", []string{"Factory A", "Factory B"})

	env, err := Protect(Request{
		Transaction:   []byte("payload"),
		SellerName:    "Lays Chips",
		Groups:        []string{"tech_partners"},
		KeyStore:      fx.keyStore,
		Directory:     fx.directory,
		GroupResolver: fx.groups,
	})
	if err != nil {
		t.Fatalf("Protect: %v", err)
	}

	if len(env.GroupRecipients) != 1 {
		t.Fatalf("len(GroupRecipients) = %d, want 1", len(env.GroupRecipients))
	}
	groupSet := env.GroupRecipients[0]
	if groupSet.GroupID != "tech_partners" {
		t.Fatalf("GroupID = %q, want tech_partners", groupSet.GroupID)
	}
	if len(groupSet.Wraps) != 2 {
		t.Fatalf("len(Wraps) = %d, want 2", len(groupSet.Wraps))
	}
	if !bytes.Equal([]byte(groupSet.MemberSnapshot[0]), []byte("Factory A")) {
		t.Fatalf("unexpected member snapshot order: %v", groupSet.MemberSnapshot)
	}
}

func TestProtect_UnknownDirectRecipient(t *testing.T) {
	fx := newFixture(t, "Lays Chips")

	_, err := Protect(Request{
		Transaction:   []byte("payload"),
		SellerName:    "Lays Chips",
		Recipients:    []string{"Nonexistent Corp"},
		KeyStore:      fx.keyStore,
		Directory:     fx.directory,
		GroupResolver: fx.groups,
	})
	if !errors.Is(err, coperr.ErrUnknownParty) {
		t.Fatalf("Protect = %v, want ErrUnknownParty", err)
	}
}

func TestProtect_UnknownGroup(t *testing.T) {
	fx := newFixture(t, "Lays Chips")

	_, err := Protect(Request{
		Transaction:   []byte("payload"),
		SellerName:    "Lays Chips",
		Groups:        []string{"nonexistent_group"},
		KeyStore:      fx.keyStore,
		Directory:     fx.directory,
		GroupResolver: fx.groups,
	})
	if !errors.Is(err, coperr.ErrUnknownGroup) {
		t.Fatalf("Protect = %v, want ErrUnknownGroup", err)
	}
}

// TestProtect_IndependentEnvelopesForIdenticalInputs protects the
// same transaction twice with identical addressing and verifies every
// random component differs: tx_id, content nonce, wrap nonces, and
// ephemeral public keys. Identical plaintexts must never produce
// related envelopes.
func TestProtect_IndependentEnvelopesForIdenticalInputs(t *testing.T) {
	fx := newFixture(t, "Lays Chips", "Auditor Corp")

	request := Request{
		Transaction:   []byte("identical payload"),
		SellerName:    "Lays Chips",
		BuyerName:     "Auditor Corp",
		KeyStore:      fx.keyStore,
		Directory:     fx.directory,
		GroupResolver: fx.groups,
	}

	first, err := Protect(request)
	if err != nil {
		t.Fatalf("Protect (first): %v", err)
	}
	second, err := Protect(request)
	if err != nil {
		t.Fatalf("Protect (second): %v", err)
	}

	if bytes.Equal(first.TxID, second.TxID) {
		t.Fatal("tx_id reused across Protect calls")
	}
	if bytes.Equal(first.ContentNonce, second.ContentNonce) {
		t.Fatal("content_nonce reused across Protect calls")
	}
	if bytes.Equal(first.ContentCiphertext, second.ContentCiphertext) {
		t.Fatal("content_ciphertext identical across Protect calls")
	}
	for i := range first.DirectRecipients {
		if bytes.Equal(first.DirectRecipients[i].Nonce, second.DirectRecipients[i].Nonce) {
			t.Fatalf("wrap nonce for %q reused", first.DirectRecipients[i].RecipientName)
		}
		if bytes.Equal(first.DirectRecipients[i].EphemeralPublic, second.DirectRecipients[i].EphemeralPublic) {
			t.Fatalf("ephemeral public for %q reused", first.DirectRecipients[i].RecipientName)
		}
	}
}

func TestProtect_GroupMemberNotAddedToDirectRecipients(t *testing.T) {
	fx := newFixture(t, "Lays Chips", "Factory A")
	fx.groups.CreateGroup("tech_partners", []string{"Factory A"})

	env, err := Protect(Request{
		Transaction:   []byte("payload"),
		SellerName:    "Lays Chips",
		Groups:        []string{"tech_partners"},
		KeyStore:      fx.keyStore,
		Directory:     fx.directory,
		GroupResolver: fx.groups,
	})
	if err != nil {
		t.Fatalf("Protect: %v", err)
	}

	// Unwrap the member's group wrap and confirm it does not equal the
	// content ciphertext's key material by reconstructing the wrap
	// independently would require the member's secret; instead, assert
	// structurally that group wraps are never placed in
	// DirectRecipients and vice versa (no key confusion between the
	// two disclosure paths).
	for _, wrap := range env.DirectRecipients {
		if wrap.RecipientName == "Factory A" {
			t.Fatal("group member must not also appear in direct_recipients from a group-only protect call")
		}
	}
	if len(env.GroupRecipients[0].Wraps) != 1 {
		t.Fatalf("len(Wraps) = %d, want 1", len(env.GroupRecipients[0].Wraps))
	}
}
