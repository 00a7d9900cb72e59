// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package share

import (
	"fmt"

	"github.com/kakobtg/ChainOfProducts-project/lib/coperr"
	"github.com/kakobtg/ChainOfProducts-project/lib/envelope"
	"github.com/kakobtg/ChainOfProducts-project/lib/keystore"
	"github.com/kakobtg/ChainOfProducts-project/lib/primitives"
)

// KeyProvider loads a party's full identity, including its signing
// secret. *keystore.KeyStore satisfies this.
type KeyProvider interface {
	Load(name string) (*keystore.IdentityKeyPair, error)
}

// BuyerSign attaches buyerName's signature to e. e.Buyer must already
// equal buyerName, or this fails with [coperr.ErrWrongBuyer] — a
// buyer cannot sign an envelope that was never addressed to them. No
// field of e other than BuyerSignature is changed; the signing-input
// (and therefore seller_signature's validity) is unaffected.
func BuyerSign(e envelope.Envelope, buyerName string, keyStore KeyProvider) (envelope.Envelope, error) {
	if e.Buyer != buyerName {
		return envelope.Envelope{}, fmt.Errorf("%w: envelope buyer is %q, not %q", coperr.ErrWrongBuyer, e.Buyer, buyerName)
	}

	signingInput, err := envelope.CanonicalSigningInput(e)
	if err != nil {
		return envelope.Envelope{}, err
	}

	buyer, err := keyStore.Load(buyerName)
	if err != nil {
		return envelope.Envelope{}, err
	}
	defer buyer.Close()

	e.BuyerSignature = primitives.Sign(buyer.SigningSecret.Bytes(), signingInput)
	return e, nil
}
