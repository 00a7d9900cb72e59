// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package share

import (
	"github.com/kakobtg/ChainOfProducts-project/lib/coperr"
	"github.com/kakobtg/ChainOfProducts-project/lib/directory"
	"github.com/kakobtg/ChainOfProducts-project/lib/envelope"
	"github.com/kakobtg/ChainOfProducts-project/lib/primitives"
)

// DisclosureRecord is one verified (or rejected) entry in an audit.
type DisclosureRecord struct {
	ShareRecord envelope.ShareRecord
	Valid       bool
	Err         error
}

// AuditReport is the result of Audit: every ShareRecord the seller
// retrieved for a transaction, each independently verified.
type AuditReport struct {
	Records []DisclosureRecord
}

// AllValid reports whether every record in the report verified.
func (r AuditReport) AllValid() bool {
	for _, record := range r.Records {
		if !record.Valid {
			return false
		}
	}
	return true
}

// DisclosedTo returns the set of disclosed_to values across every
// valid record, deduplicated. Comparing this against the seller's own
// intended-disclosure list (business logic outside this package) is
// how a caller checks for unauthorized extras, per the completeness
// property Audit exists to support.
func (r AuditReport) DisclosedTo() []string {
	seen := make(map[string]bool)
	var disclosed []string
	for _, record := range r.Records {
		if !record.Valid {
			continue
		}
		target := record.ShareRecord.DisclosedTo
		if !seen[target] {
			seen[target] = true
			disclosed = append(disclosed, target)
		}
	}
	return disclosed
}

// Audit independently verifies every ShareRecord's signature under
// its sharer's signing public key: a disclosure graph is only as
// trustworthy as its weakest unverified signature.
func Audit(records []envelope.ShareRecord, dir directory.PublicKeyDirectory) AuditReport {
	report := AuditReport{Records: make([]DisclosureRecord, 0, len(records))}

	for _, record := range records {
		valid, err := verifyRecord(record, dir)
		report.Records = append(report.Records, DisclosureRecord{
			ShareRecord: record,
			Valid:       valid,
			Err:         err,
		})
	}
	return report
}

func verifyRecord(record envelope.ShareRecord, dir directory.PublicKeyDirectory) (bool, error) {
	body, err := envelope.ShareRecordSigningBytes(record)
	if err != nil {
		return false, err
	}
	digest := primitives.SHA256(body)

	sharerPublic, _, err := dir.Publics(record.Sharer)
	if err != nil {
		return false, coperr.ErrUnknownParty
	}

	if !primitives.Verify(sharerPublic, digest[:], record.Signature) {
		return false, coperr.ErrSignatureInvalid
	}
	return true, nil
}
