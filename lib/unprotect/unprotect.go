// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package unprotect

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/kakobtg/ChainOfProducts-project/lib/check"
	"github.com/kakobtg/ChainOfProducts-project/lib/coperr"
	"github.com/kakobtg/ChainOfProducts-project/lib/directory"
	"github.com/kakobtg/ChainOfProducts-project/lib/envelope"
	"github.com/kakobtg/ChainOfProducts-project/lib/keystore"
	"github.com/kakobtg/ChainOfProducts-project/lib/primitives"
	"github.com/kakobtg/ChainOfProducts-project/lib/secret"
)

// KeyProvider loads a party's full identity, including its encryption
// secret. *keystore.KeyStore satisfies this.
type KeyProvider interface {
	Load(name string) (*keystore.IdentityKeyPair, error)
}

// Request is the input to Unprotect.
type Request struct {
	Envelope      envelope.Envelope
	RecipientName string
	KeyStore      KeyProvider
	Directory     directory.PublicKeyDirectory

	// Logger receives non-secret progress metadata (tx_id, recipient
	// name). Never plaintext or key material. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

func (req Request) logger() *slog.Logger {
	if req.Logger != nil {
		return req.Logger
	}
	return slog.Default()
}

// Unprotect recovers the plaintext transaction for req.RecipientName.
// It runs Check first; a seller signature failure aborts before any
// unwrap is attempted. See the package doc for why bare group
// membership never by itself suffices.
func Unprotect(req Request) ([]byte, error) {
	report := check.Check(req.Envelope, req.Directory)
	if !report.SellerSigValid {
		return nil, coperr.ErrSignatureInvalid
	}

	identity, err := req.KeyStore.Load(req.RecipientName)
	if err != nil {
		return nil, err
	}
	defer identity.Close()

	contentKey, err := RecoverContentKey(req.Envelope, req.RecipientName, identity.EncSecret.Bytes(), req.Directory)
	if err != nil {
		return nil, err
	}
	defer secret.Zero(contentKey)

	aad := envelope.ContentAAD(req.Envelope.TxID, req.Envelope.Seller, req.Envelope.Buyer)
	plaintext, err := primitives.AEADOpen(contentKey, req.Envelope.ContentNonce, req.Envelope.ContentCiphertext, aad)
	if err != nil {
		return nil, err
	}

	digest := primitives.SHA256(plaintext)
	if !bytes.Equal(digest[:], req.Envelope.ContentHash) {
		return nil, fmt.Errorf("%w: content_hash does not match decrypted content", coperr.ErrAuthFailure)
	}

	req.logger().Info("unprotect: recovered transaction",
		"tx_id", hex.EncodeToString(req.Envelope.TxID), "recipient", req.RecipientName)

	return plaintext, nil
}

// RecoverContentKey finds a wrap of K_T addressed to recipientName:
// first in direct_recipients, then in a direct-disclosure addendum.
// A GroupWrapSet entry naming recipientName as a member never yields
// K_T — only GK_{g,TxID}, which cannot decrypt content under the
// single-ciphertext policy — so group membership alone always falls
// through to ErrNotARecipient. Exported so lib/share can recover K_T
// on a sharer's behalf before producing a new addendum.
func RecoverContentKey(e envelope.Envelope, recipientName string, recipientEncSecret []byte, dir directory.PublicKeyDirectory) ([]byte, error) {
	for _, wrap := range e.DirectRecipients {
		if wrap.RecipientName == recipientName {
			key, err := Unwrap(wrap, recipientEncSecret)
			if err != nil {
				return nil, err
			}
			return key, nil
		}
	}

	for _, addendum := range e.Addenda {
		if addendum.Wrap == nil || addendum.Wrap.RecipientName != recipientName {
			continue
		}
		if addendum.ShareRecord.Kind != envelope.ShareDirect || addendum.ShareRecord.DisclosedTo != recipientName {
			continue
		}
		if !verifyShareRecord(addendum.ShareRecord, dir) {
			continue
		}
		key, err := Unwrap(*addendum.Wrap, recipientEncSecret)
		if err != nil {
			return nil, err
		}
		return key, nil
	}

	return nil, fmt.Errorf("%w: %q", coperr.ErrNotARecipient, recipientName)
}

func verifyShareRecord(record envelope.ShareRecord, dir directory.PublicKeyDirectory) bool {
	body, err := envelope.ShareRecordSigningBytes(record)
	if err != nil {
		return false
	}
	digest := primitives.SHA256(body)

	sharerPublic, _, err := dir.Publics(record.Sharer)
	if err != nil {
		return false
	}
	return primitives.Verify(sharerPublic, digest[:], record.Signature)
}
