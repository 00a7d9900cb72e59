// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package protect

import (
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/kakobtg/ChainOfProducts-project/lib/coperr"
	"github.com/kakobtg/ChainOfProducts-project/lib/directory"
	"github.com/kakobtg/ChainOfProducts-project/lib/envelope"
	"github.com/kakobtg/ChainOfProducts-project/lib/group"
	"github.com/kakobtg/ChainOfProducts-project/lib/keystore"
	"github.com/kakobtg/ChainOfProducts-project/lib/primitives"
	"github.com/kakobtg/ChainOfProducts-project/lib/secret"
)

// TxIDSize is the size in bytes of a transaction identifier.
const TxIDSize = 16

// SigningKeyProvider loads a party's full identity, including its
// signing secret. *keystore.KeyStore satisfies this.
type SigningKeyProvider interface {
	Load(name string) (*keystore.IdentityKeyPair, error)
}

// Request is the input to Protect.
type Request struct {
	// Transaction is the plaintext bytes being protected.
	Transaction []byte

	// SellerName identifies the party calling Protect. Its signing
	// secret is loaded from KeyStore and its encryption public key
	// must be resolvable via Directory.
	SellerName string

	// BuyerName may be empty: the transaction can be protected before
	// a buyer is known, and bound to one later via BuyerSign.
	BuyerName string

	// Recipients is an additional set of direct recipient party
	// names, beyond seller and buyer.
	Recipients []string

	// Groups is a set of group ids to disclose a derived group key
	// to, one snapshot per group taken at the moment Protect runs.
	Groups []string

	KeyStore      SigningKeyProvider
	Directory     directory.PublicKeyDirectory
	GroupResolver group.GroupResolver

	// Logger receives non-secret progress metadata (tx_id, seller,
	// buyer, recipient and group counts). Never the transaction
	// plaintext or any key material. Defaults to slog.Default().
	Logger *slog.Logger
}

func (req Request) logger() *slog.Logger {
	if req.Logger != nil {
		return req.Logger
	}
	return slog.Default()
}

// Protect runs the full protect pipeline described in the package doc:
// generate transaction identity and content key, seal the content
// under AEAD, wrap the content key for every direct recipient and a
// derived group key for every group snapshot, and sign the result
// under the seller's identity.
//
// No partial envelope is ever returned: any failure returns a zero
// Envelope and a non-nil error.
func Protect(req Request) (envelope.Envelope, error) {
	txID, err := primitives.RandomBytes(TxIDSize)
	if err != nil {
		return envelope.Envelope{}, err
	}

	contentKey, err := primitives.RandomBytes(primitives.AEADKeySize)
	if err != nil {
		return envelope.Envelope{}, err
	}
	defer secret.Zero(contentKey)
	contentNonce, err := primitives.RandomBytes(primitives.AEADNonceSize)
	if err != nil {
		return envelope.Envelope{}, err
	}

	contentAAD := envelope.ContentAAD(txID, req.SellerName, req.BuyerName)
	contentCiphertext, err := primitives.AEADSeal(contentKey, contentNonce, req.Transaction, contentAAD)
	if err != nil {
		return envelope.Envelope{}, fmt.Errorf("protect: sealing content: %w", err)
	}
	contentHash := primitives.SHA256(req.Transaction)

	directRecipients, err := buildDirectRecipients(req, contentKey)
	if err != nil {
		return envelope.Envelope{}, err
	}

	groupRecipients, err := buildGroupRecipients(req, txID, contentKey)
	if err != nil {
		return envelope.Envelope{}, err
	}

	env := envelope.Envelope{
		Buyer:             req.BuyerName,
		ContentCiphertext: contentCiphertext,
		ContentHash:       contentHash[:],
		ContentNonce:      contentNonce,
		DirectRecipients:  directRecipients,
		GroupRecipients:   groupRecipients,
		Seller:            req.SellerName,
		TxID:              txID,
		Version:           envelope.Version,
	}

	signingInput, err := envelope.CanonicalSigningInput(env)
	if err != nil {
		return envelope.Envelope{}, err
	}

	seller, err := req.KeyStore.Load(req.SellerName)
	if err != nil {
		return envelope.Envelope{}, err
	}
	defer seller.Close()

	env.SellerSignature = primitives.Sign(seller.SigningSecret.Bytes(), signingInput)

	req.logger().Info("protect: sealed transaction",
		"tx_id", hex.EncodeToString(txID), "seller", req.SellerName, "buyer", req.BuyerName,
		"recipients", len(directRecipients), "groups", len(groupRecipients))

	return env, nil
}

// directRecipientNames returns {seller, buyer (if non-empty), extra
// recipients}, deduplicated, seller first, buyer second, the rest in
// the given order.
func directRecipientNames(sellerName, buyerName string, extra []string) []string {
	names := make([]string, 0, len(extra)+2)
	seen := make(map[string]bool, len(extra)+2)

	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}

	add(sellerName)
	add(buyerName)
	for _, name := range extra {
		add(name)
	}
	return names
}

func buildDirectRecipients(req Request, contentKey []byte) ([]envelope.WrappedKey, error) {
	names := directRecipientNames(req.SellerName, req.BuyerName, req.Recipients)

	wraps := make([]envelope.WrappedKey, 0, len(names))
	for _, name := range names {
		_, encPub, err := req.Directory.Publics(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", coperr.ErrUnknownParty, name)
		}
		wrap, err := Wrap(contentKey, name, encPub)
		if err != nil {
			return nil, err
		}
		wraps = append(wraps, wrap)
	}
	return wraps, nil
}

func buildGroupRecipients(req Request, txID, contentKey []byte) ([]envelope.GroupWrapSet, error) {
	groups := make([]envelope.GroupWrapSet, 0, len(req.Groups))

	for _, groupID := range req.Groups {
		members, err := req.GroupResolver.Snapshot(groupID)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", coperr.ErrUnknownGroup, groupID)
		}

		groupKey, err := primitives.HKDF(contentKey, txID, []byte(groupID), primitives.AEADKeySize)
		if err != nil {
			return nil, fmt.Errorf("protect: deriving group key for %q: %w", groupID, err)
		}

		wraps := make([]envelope.WrappedKey, 0, len(members))
		for _, member := range members {
			_, encPub, err := req.Directory.Publics(member)
			if err != nil {
				secret.Zero(groupKey)
				return nil, fmt.Errorf("%w: %q", coperr.ErrUnknownParty, member)
			}
			wrap, err := Wrap(groupKey, member, encPub)
			if err != nil {
				secret.Zero(groupKey)
				return nil, err
			}
			wraps = append(wraps, wrap)
		}
		secret.Zero(groupKey)

		groups = append(groups, envelope.GroupWrapSet{
			GroupID:        groupID,
			MemberSnapshot: append([]string(nil), members...),
			Wraps:          wraps,
		})
	}
	return groups, nil
}
