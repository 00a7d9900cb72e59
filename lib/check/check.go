// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package check

import (
	"fmt"

	"github.com/kakobtg/ChainOfProducts-project/lib/coperr"
	"github.com/kakobtg/ChainOfProducts-project/lib/directory"
	"github.com/kakobtg/ChainOfProducts-project/lib/envelope"
	"github.com/kakobtg/ChainOfProducts-project/lib/primitives"
)

// Report is the structured result of Check. BuyerSigValid is nil when
// the envelope carries no buyer signature at all.
type Report struct {
	EnvelopeWellFormed bool
	SellerSigValid     bool
	BuyerSigValid      *bool
	Failures           []error
	Addenda            []AddendumReport
}

// Valid reports whether the envelope is well-formed, the seller
// signature verifies, and (if present) the buyer signature verifies.
func (r Report) Valid() bool {
	if !r.EnvelopeWellFormed || !r.SellerSigValid {
		return false
	}
	if r.BuyerSigValid != nil && !*r.BuyerSigValid {
		return false
	}
	return true
}

// Check runs the full, side-effect-free Check pipeline against e:
// structural invariant checks, then seller_sig verification, then
// buyer_sig verification if present. It never decrypts content.
// Addenda are verified separately and reported in Addenda, since they
// carry their own ShareRecord signatures rather than being covered by
// seller_sig.
func Check(e envelope.Envelope, dir directory.PublicKeyDirectory) Report {
	report := Report{EnvelopeWellFormed: true}

	if err := envelope.ValidateStructure(e); err != nil {
		report.EnvelopeWellFormed = false
		report.Failures = append(report.Failures, err)
	}

	signingInput, err := envelope.CanonicalSigningInput(e)
	if err != nil {
		report.EnvelopeWellFormed = false
		report.Failures = append(report.Failures, fmt.Errorf("%w: %v", coperr.ErrMalformed, err))
		return report
	}

	sellerPublic, _, err := dir.Publics(e.Seller)
	if err != nil {
		report.Failures = append(report.Failures, fmt.Errorf("%w: %q", coperr.ErrUnknownParty, e.Seller))
	} else {
		report.SellerSigValid = primitives.Verify(sellerPublic, signingInput, e.SellerSignature)
		if !report.SellerSigValid {
			report.Failures = append(report.Failures, coperr.ErrSignatureInvalid)
		}
	}

	if len(e.BuyerSignature) > 0 {
		buyerValid := false
		buyerPublic, _, err := dir.Publics(e.Buyer)
		if err != nil {
			report.Failures = append(report.Failures, fmt.Errorf("%w: %q", coperr.ErrUnknownParty, e.Buyer))
		} else {
			buyerValid = primitives.Verify(buyerPublic, signingInput, e.BuyerSignature)
			if !buyerValid {
				report.Failures = append(report.Failures, coperr.ErrSignatureInvalid)
			}
		}
		report.BuyerSigValid = &buyerValid
	}

	report.Addenda = checkAddenda(e, dir)

	return report
}
