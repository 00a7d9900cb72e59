// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package share

import (
	"fmt"
	"time"

	"github.com/kakobtg/ChainOfProducts-project/lib/coperr"
	"github.com/kakobtg/ChainOfProducts-project/lib/directory"
	"github.com/kakobtg/ChainOfProducts-project/lib/envelope"
	"github.com/kakobtg/ChainOfProducts-project/lib/group"
	"github.com/kakobtg/ChainOfProducts-project/lib/keystore"
	"github.com/kakobtg/ChainOfProducts-project/lib/primitives"
	"github.com/kakobtg/ChainOfProducts-project/lib/protect"
	"github.com/kakobtg/ChainOfProducts-project/lib/secret"
	"github.com/kakobtg/ChainOfProducts-project/lib/unprotect"
)

// DirectShareRequest is the input to ShareDirect.
type DirectShareRequest struct {
	Envelope    envelope.Envelope
	SharerName  string
	DisclosedTo string
	KeyStore    KeyProvider
	Directory   directory.PublicKeyDirectory
	Clock       *MonotonicClock
}

// ShareDirect discloses req.Envelope's transaction to DisclosedTo, a
// party not already able to decrypt it. The sharer must itself
// already be able to recover K_T (directly or via its own addendum) —
// it is this recovered K_T, not a rederivation, that gets wrapped
// fresh for the new recipient. The returned Addendum is not yet
// attached to any envelope; callers append it (typically after
// submitting it to an application-server collaborator, see
// lib/appserverclient) to Envelope.Addenda.
func ShareDirect(req DirectShareRequest) (envelope.Addendum, error) {
	sharer, err := req.KeyStore.Load(req.SharerName)
	if err != nil {
		return envelope.Addendum{}, err
	}
	defer sharer.Close()

	contentKey, err := unprotect.RecoverContentKey(req.Envelope, req.SharerName, sharer.EncSecret.Bytes(), req.Directory)
	if err != nil {
		return envelope.Addendum{}, err
	}
	defer secret.Zero(contentKey)

	_, recipientEncPublic, err := req.Directory.Publics(req.DisclosedTo)
	if err != nil {
		return envelope.Addendum{}, fmt.Errorf("%w: %q", coperr.ErrUnknownParty, req.DisclosedTo)
	}

	wrap, err := protect.Wrap(contentKey, req.DisclosedTo, recipientEncPublic)
	if err != nil {
		return envelope.Addendum{}, err
	}

	shareRecord, err := buildShareRecord(req.Envelope.TxID, req.SharerName, req.DisclosedTo, envelope.ShareDirect, req.Clock, sharer)
	if err != nil {
		return envelope.Addendum{}, err
	}

	return envelope.Addendum{ShareRecord: shareRecord, Wrap: &wrap}, nil
}

// GroupShareRequest is the input to ShareGroup.
type GroupShareRequest struct {
	Envelope      envelope.Envelope
	SharerName    string
	GroupID       string
	KeyStore      KeyProvider
	Directory     directory.PublicKeyDirectory
	GroupResolver group.GroupResolver
	Clock         *MonotonicClock
}

// ShareGroup discloses req.Envelope's transaction to every member of
// GroupID's current snapshot. The group key GK_{g,TxID} is rederived
// deterministically from K_T (HKDF with the same salt and info
// Protect used), so a group share after a membership change produces
// the identical key for members who already held it and a fresh wrap
// of that same key for anyone newly added — no new group key is
// minted per share.
func ShareGroup(req GroupShareRequest) (envelope.Addendum, error) {
	sharer, err := req.KeyStore.Load(req.SharerName)
	if err != nil {
		return envelope.Addendum{}, err
	}
	defer sharer.Close()

	contentKey, err := unprotect.RecoverContentKey(req.Envelope, req.SharerName, sharer.EncSecret.Bytes(), req.Directory)
	if err != nil {
		return envelope.Addendum{}, err
	}
	defer secret.Zero(contentKey)

	members, err := req.GroupResolver.Snapshot(req.GroupID)
	if err != nil {
		return envelope.Addendum{}, fmt.Errorf("%w: %q", coperr.ErrUnknownGroup, req.GroupID)
	}

	groupKey, err := primitives.HKDF(contentKey, req.Envelope.TxID, []byte(req.GroupID), primitives.AEADKeySize)
	if err != nil {
		return envelope.Addendum{}, fmt.Errorf("share: deriving group key for %q: %w", req.GroupID, err)
	}
	defer secret.Zero(groupKey)

	wraps := make([]envelope.WrappedKey, 0, len(members))
	for _, member := range members {
		_, memberEncPublic, err := req.Directory.Publics(member)
		if err != nil {
			return envelope.Addendum{}, fmt.Errorf("%w: %q", coperr.ErrUnknownParty, member)
		}
		wrap, err := protect.Wrap(groupKey, member, memberEncPublic)
		if err != nil {
			return envelope.Addendum{}, err
		}
		wraps = append(wraps, wrap)
	}

	shareRecord, err := buildShareRecord(req.Envelope.TxID, req.SharerName, req.GroupID, envelope.ShareGroup, req.Clock, sharer)
	if err != nil {
		return envelope.Addendum{}, err
	}

	return envelope.Addendum{
		ShareRecord: shareRecord,
		GroupWrap: &envelope.GroupWrapSet{
			GroupID:        req.GroupID,
			MemberSnapshot: append([]string(nil), members...),
			Wraps:          wraps,
		},
	}, nil
}

func buildShareRecord(txID []byte, sharerName, disclosedTo string, kind envelope.ShareKind, clock *MonotonicClock, sharer *keystore.IdentityKeyPair) (envelope.ShareRecord, error) {
	if clock == nil {
		clock = defaultClock
	}
	timestamp := clock.Next(sharerName)

	record := envelope.ShareRecord{
		DisclosedTo: disclosedTo,
		Kind:        kind,
		Sharer:      sharerName,
		Timestamp:   timestamp.Format(time.RFC3339Nano),
		TxID:        txID,
	}

	body, err := envelope.ShareRecordSigningBytes(record)
	if err != nil {
		return envelope.ShareRecord{}, err
	}
	digest := primitives.SHA256(body)
	record.Signature = primitives.Sign(sharer.SigningSecret.Bytes(), digest[:])

	return record, nil
}

// defaultClock backs ShareDirect/ShareGroup calls that pass no
// explicit Clock, so monotonicity still holds within one process even
// without a caller-supplied clock.
var defaultClock = NewMonotonicClock()
