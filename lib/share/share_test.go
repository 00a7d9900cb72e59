// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package share

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/kakobtg/ChainOfProducts-project/lib/check"
	"github.com/kakobtg/ChainOfProducts-project/lib/coperr"
	"github.com/kakobtg/ChainOfProducts-project/lib/directory"
	"github.com/kakobtg/ChainOfProducts-project/lib/envelope"
	"github.com/kakobtg/ChainOfProducts-project/lib/group"
	"github.com/kakobtg/ChainOfProducts-project/lib/keystore"
	"github.com/kakobtg/ChainOfProducts-project/lib/protect"
	"github.com/kakobtg/ChainOfProducts-project/lib/unprotect"
)

type fixture struct {
	keyStore  *keystore.KeyStore
	directory *directory.FileDirectory
	groups    *group.MemoryResolver
}

func newFixture(t *testing.T, names ...string) *fixture {
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
	return &fixture{keyStore: ks, directory: dir, groups: group.NewMemoryResolver()}
}

func TestBuyerSign_AttachesValidSignature(t *testing.T) {
	fx := newFixture(t, "Ching Chong Extractions", "Lays Chips")

	env, err := protect.Protect(protect.Request{
		Transaction:   []byte("payload"),
		SellerName:    "Ching Chong Extractions",
		BuyerName:     "Lays Chips",
		KeyStore:      fx.keyStore,
		Directory:     fx.directory,
		GroupResolver: fx.groups,
	})
	if err != nil {
		t.Fatalf("Protect: %v", err)
	}

	signed, err := BuyerSign(env, "Lays Chips", fx.keyStore)
	if err != nil {
		t.Fatalf("BuyerSign: %v", err)
	}

	report := check.Check(signed, fx.directory)
	if report.BuyerSigValid == nil || !*report.BuyerSigValid {
		t.Fatalf("BuyerSigValid = %v, want true", report.BuyerSigValid)
	}
	if !report.SellerSigValid {
		t.Fatal("SellerSigValid became invalid after BuyerSign; signing-input must be unchanged")
	}
}

func TestBuyerSign_WrongBuyer(t *testing.T) {
	fx := newFixture(t, "Ching Chong Extractions", "Lays Chips", "Random Co")

	env, err := protect.Protect(protect.Request{
		Transaction:   []byte("payload"),
		SellerName:    "Ching Chong Extractions",
		BuyerName:     "Lays Chips",
		KeyStore:      fx.keyStore,
		Directory:     fx.directory,
		GroupResolver: fx.groups,
	})
	if err != nil {
		t.Fatalf("Protect: %v", err)
	}

	_, err = BuyerSign(env, "Random Co", fx.keyStore)
	if !errors.Is(err, coperr.ErrWrongBuyer) {
		t.Fatalf("BuyerSign = %v, want ErrWrongBuyer", err)
	}
}

func TestShareDirect_NewRecipientCanThenUnprotect(t *testing.T) {
	fx := newFixture(t, "Ching Chong Extractions", "Lays Chips", "Auditor Corp")
	transaction := []byte("payload")

	env, err := protect.Protect(protect.Request{
		Transaction:   transaction,
		SellerName:    "Ching Chong Extractions",
		BuyerName:     "Lays Chips",
		KeyStore:      fx.keyStore,
		Directory:     fx.directory,
		GroupResolver: fx.groups,
	})
	if err != nil {
		t.Fatalf("Protect: %v", err)
	}

	addendum, err := ShareDirect(DirectShareRequest{
		Envelope:    env,
		SharerName:  "Lays Chips",
		DisclosedTo: "Auditor Corp",
		KeyStore:    fx.keyStore,
		Directory:   fx.directory,
	})
	if err != nil {
		t.Fatalf("ShareDirect: %v", err)
	}
	env.Addenda = append(env.Addenda, addendum)

	got, err := unprotect.Unprotect(unprotect.Request{
		Envelope:      env,
		RecipientName: "Auditor Corp",
		KeyStore:      fx.keyStore,
		Directory:     fx.directory,
	})
	if err != nil {
		t.Fatalf("Unprotect after ShareDirect: %v", err)
	}
	if string(got) != string(transaction) {
		t.Fatalf("Unprotect after ShareDirect = %q, want %q", got, transaction)
	}

	report := check.Check(env, fx.directory)
	if len(report.Addenda) != 1 {
		t.Fatalf("len(Addenda reports) = %d, want 1", len(report.Addenda))
	}
	if !report.Addenda[0].ShareRecordValid {
		t.Fatal("addendum ShareRecord did not verify")
	}
	if !report.SellerSigValid {
		t.Fatal("seller_sig invalidated by an addendum; addenda must not affect it")
	}
}

func TestShareDirect_UnauthorizedSharerFails(t *testing.T) {
	fx := newFixture(t, "Ching Chong Extractions", "Lays Chips", "Random Co", "Auditor Corp")

	env, err := protect.Protect(protect.Request{
		Transaction:   []byte("payload"),
		SellerName:    "Ching Chong Extractions",
		BuyerName:     "Lays Chips",
		KeyStore:      fx.keyStore,
		Directory:     fx.directory,
		GroupResolver: fx.groups,
	})
	if err != nil {
		t.Fatalf("Protect: %v", err)
	}

	_, err = ShareDirect(DirectShareRequest{
		Envelope:    env,
		SharerName:  "Random Co",
		DisclosedTo: "Auditor Corp",
		KeyStore:    fx.keyStore,
		Directory:   fx.directory,
	})
	if !errors.Is(err, coperr.ErrNotARecipient) {
		t.Fatalf("ShareDirect by a non-recipient = %v, want ErrNotARecipient", err)
	}
}

func TestShareGroup_ExcludesMembersAddedAfterSnapshot(t *testing.T) {
	fx := newFixture(t, "Ching Chong Extractions", "Lays Chips", "Factory A", "Factory B")
	fx.groups.CreateGroup("tech_partners", []string{"Factory A"})

	env, err := protect.Protect(protect.Request{
		Transaction:   []byte("payload"),
		SellerName:    "Ching Chong Extractions",
		BuyerName:     "Lays Chips",
		Groups:        []string{"tech_partners"},
		KeyStore:      fx.keyStore,
		Directory:     fx.directory,
		GroupResolver: fx.groups,
	})
	if err != nil {
		t.Fatalf("Protect: %v", err)
	}

	// Factory B joins after protect-time.
	if err := fx.groups.AddMember("tech_partners", "Factory B"); err != nil {
		t.Fatalf("AddMember: %v", err)
	}

	addendum, err := ShareGroup(GroupShareRequest{
		Envelope:      env,
		SharerName:    "Lays Chips",
		GroupID:       "tech_partners",
		KeyStore:      fx.keyStore,
		Directory:     fx.directory,
		GroupResolver: fx.groups,
	})
	if err != nil {
		t.Fatalf("ShareGroup: %v", err)
	}
	if addendum.GroupWrap == nil {
		t.Fatal("expected GroupWrap to be set")
	}
	if len(addendum.GroupWrap.Wraps) != 2 {
		t.Fatalf("len(Wraps) = %d, want 2 (share-time snapshot includes Factory B)", len(addendum.GroupWrap.Wraps))
	}

	// The original protect-time GroupWrapSet still reflects only
	// Factory A: group-snapshot-freeze is per-protect-call, not
	// mutated by a later share.
	if len(env.GroupRecipients[0].MemberSnapshot) != 1 {
		t.Fatalf("protect-time member_snapshot mutated: %v", env.GroupRecipients[0].MemberSnapshot)
	}
}

func TestShareGroup_ExcludesRemovedMembers(t *testing.T) {
	fx := newFixture(t, "Ching Chong Extractions", "Lays Chips", "Factory A", "Factory B")
	fx.groups.CreateGroup("tech_partners", []string{"Factory A", "Factory B"})

	env, err := protect.Protect(protect.Request{
		Transaction:   []byte("payload"),
		SellerName:    "Ching Chong Extractions",
		BuyerName:     "Lays Chips",
		Groups:        []string{"tech_partners"},
		KeyStore:      fx.keyStore,
		Directory:     fx.directory,
		GroupResolver: fx.groups,
	})
	if err != nil {
		t.Fatalf("Protect: %v", err)
	}

	if err := fx.groups.RemoveMember("tech_partners", "Factory B"); err != nil {
		t.Fatalf("RemoveMember: %v", err)
	}

	addendum, err := ShareGroup(GroupShareRequest{
		Envelope:      env,
		SharerName:    "Lays Chips",
		GroupID:       "tech_partners",
		KeyStore:      fx.keyStore,
		Directory:     fx.directory,
		GroupResolver: fx.groups,
	})
	if err != nil {
		t.Fatalf("ShareGroup: %v", err)
	}

	for _, wrap := range addendum.GroupWrap.Wraps {
		if wrap.RecipientName == "Factory B" {
			t.Fatal("share-time snapshot must exclude a removed member")
		}
	}
	// The protect-time snapshot still names Factory B: past access is
	// not revocable.
	if len(env.GroupRecipients[0].MemberSnapshot) != 2 {
		t.Fatalf("protect-time member_snapshot mutated: %v", env.GroupRecipients[0].MemberSnapshot)
	}
}

func TestAudit_DetectsForgedSignature(t *testing.T) {
	fx := newFixture(t, "Ching Chong Extractions", "Lays Chips", "Auditor Corp")

	env, err := protect.Protect(protect.Request{
		Transaction:   []byte("payload"),
		SellerName:    "Ching Chong Extractions",
		BuyerName:     "Lays Chips",
		KeyStore:      fx.keyStore,
		Directory:     fx.directory,
		GroupResolver: fx.groups,
	})
	if err != nil {
		t.Fatalf("Protect: %v", err)
	}

	addendum, err := ShareDirect(DirectShareRequest{
		Envelope:    env,
		SharerName:  "Lays Chips",
		DisclosedTo: "Auditor Corp",
		KeyStore:    fx.keyStore,
		Directory:   fx.directory,
	})
	if err != nil {
		t.Fatalf("ShareDirect: %v", err)
	}

	valid := addendum.ShareRecord
	forged := valid
	forged.Signature = append([]byte(nil), valid.Signature...)
	forged.Signature[0] ^= 0xFF

	report := Audit([]envelope.ShareRecord{valid, forged}, fx.directory)
	if !report.Records[0].Valid {
		t.Fatal("expected the genuine ShareRecord to verify")
	}
	if report.Records[1].Valid {
		t.Fatal("expected the forged ShareRecord to fail verification")
	}
	if report.AllValid() {
		t.Fatal("AllValid() = true, want false when one record is forged")
	}
}

func TestMonotonicClock_NeverGoesBackward(t *testing.T) {
	clock := NewMonotonicClock()

	first := clock.Next("Lays Chips")
	second := clock.Next("Lays Chips")
	if !second.After(first) {
		t.Fatalf("second timestamp %v is not strictly after first %v", second, first)
	}

	// A different sharer's clock is independent.
	otherFirst := clock.Next("Auditor Corp")
	if otherFirst.Before(first.Add(-time.Hour)) {
		t.Fatal("unexpectedly distant timestamp for a fresh sharer")
	}
}
