// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package check

import (
	"crypto/sha256"
	"fmt"

	"github.com/kakobtg/ChainOfProducts-project/lib/coperr"
	"github.com/kakobtg/ChainOfProducts-project/lib/directory"
	"github.com/kakobtg/ChainOfProducts-project/lib/envelope"
	"github.com/kakobtg/ChainOfProducts-project/lib/primitives"
)

// AddendumReport is the verification result for a single post-Protect
// addendum. ShareRecordValid is the only signal addenda carry — an
// addendum's wrap is not otherwise authenticated, so a valid
// ShareRecord is the full extent of what Check can detect
// (lib/unprotect's own AEAD open is the final backstop against a
// tampered wrap).
type AddendumReport struct {
	Index            int
	ShareRecordValid bool
	Failures         []error
}

func checkAddenda(e envelope.Envelope, dir directory.PublicKeyDirectory) []AddendumReport {
	if len(e.Addenda) == 0 {
		return nil
	}

	reports := make([]AddendumReport, 0, len(e.Addenda))
	for index, addendum := range e.Addenda {
		reports = append(reports, checkAddendum(index, addendum, dir))
	}
	return reports
}

func checkAddendum(index int, addendum envelope.Addendum, dir directory.PublicKeyDirectory) AddendumReport {
	report := AddendumReport{Index: index}

	body, err := envelope.ShareRecordSigningBytes(addendum.ShareRecord)
	if err != nil {
		report.Failures = append(report.Failures, fmt.Errorf("%w: %v", coperr.ErrMalformed, err))
		return report
	}
	digest := sha256.Sum256(body)

	sharerPublic, _, err := dir.Publics(addendum.ShareRecord.Sharer)
	if err != nil {
		report.Failures = append(report.Failures, fmt.Errorf("%w: %q", coperr.ErrUnknownParty, addendum.ShareRecord.Sharer))
		return report
	}

	report.ShareRecordValid = primitives.Verify(sharerPublic, digest[:], addendum.ShareRecord.Signature)
	if !report.ShareRecordValid {
		report.Failures = append(report.Failures, coperr.ErrSignatureInvalid)
	}
	return report
}
