// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

// Package canon provides ChainOfProduct's canonical JSON
// serialization. It is the wire format for the protected-document
// envelope and for ShareRecords — both are signed structures, so the
// byte-level encoding is load-bearing: an implementation that
// re-encodes non-canonically before checking a signature would admit
// forgeries by re-encoding.
//
// Canonical form:
//
//   - A JSON object with keys in a fixed order. Go's encoding/json
//     already serializes struct fields in declaration order (never
//     reordering or randomizing), so canonical field order is
//     guaranteed simply by declaring wire-format struct fields in
//     lexicographic order of their `json` tag — every wire-format type
//     in lib/envelope, ShareRecord included, does this.
//   - All binary fields (keys, nonces, ciphertexts, signatures,
//     hashes) are base64url without padding, via [Bytes].
//   - Integers are decimal (encoding/json's default for int64/uint64).
//
// [Marshal] and [Unmarshal] are thin wrappers that additionally
// reject unknown fields on decode — an envelope or ShareRecord from a
// newer, unrecognized schema version is rejected rather than silently
// accepted with fields dropped. [VerifyRoundTrip] re-serializes a
// decoded value and compares it byte-for-byte against the original,
// rejecting any input whose canonical form does not match what was
// received (a non-canonical encoding is treated as tampering, since
// the signature covers only the canonical bytes).
package canon
