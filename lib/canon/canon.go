// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package canon

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotCanonical is returned by [VerifyRoundTrip] when re-serializing
// a decoded value does not reproduce the original bytes exactly.
var ErrNotCanonical = errors.New("canon: input does not round-trip to identical bytes")

// Marshal encodes v as canonical JSON. v's struct fields must be
// declared in lexicographic order of their `json` tag for the output
// to be canonical — see package doc.
func Marshal(v any) ([]byte, error) {
	encoded, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("canon: marshaling: %w", err)
	}
	return encoded, nil
}

// Unmarshal decodes canonical JSON into v, rejecting any field not
// present in v's type. An envelope or ShareRecord carrying fields from
// a newer, unrecognized schema version fails closed rather than
// silently dropping them.
func Unmarshal(data []byte, v any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("canon: decoding: %w", err)
	}
	if decoder.More() {
		return errors.New("canon: trailing data after JSON value")
	}
	return nil
}

// VerifyRoundTrip decodes data into a freshly zeroed value of type T,
// re-encodes it, and confirms the re-encoding matches data
// byte-for-byte. Signatures cover only the canonical encoding, so any
// envelope or ShareRecord that does not already present its canonical
// bytes must be rejected rather than silently re-canonicalized.
func VerifyRoundTrip[T any](data []byte) (T, error) {
	var value T
	if err := Unmarshal(data, &value); err != nil {
		return value, err
	}
	reEncoded, err := Marshal(value)
	if err != nil {
		return value, err
	}
	if !bytes.Equal(data, reEncoded) {
		return value, ErrNotCanonical
	}
	return value, nil
}
