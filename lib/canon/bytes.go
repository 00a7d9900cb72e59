// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package canon

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Bytes is a binary string that serializes to canonical JSON as
// base64url without padding (RFC 4648 §5, no trailing `=`). Every
// cryptographic byte string in the envelope and ShareRecord wire
// formats — keys, nonces, ciphertexts, hashes, signatures — uses this
// type instead of a raw []byte, which encoding/json would otherwise
// encode as standard (padded) base64.
type Bytes []byte

// MarshalJSON encodes b as a base64url (no padding) JSON string.
func (b Bytes) MarshalJSON() ([]byte, error) {
	encoded := base64.RawURLEncoding.EncodeToString(b)
	return json.Marshal(encoded)
}

// UnmarshalJSON decodes a base64url (no padding) JSON string into b.
// Input using standard base64 alphabet or padding is rejected — the
// canonical form is exact, not merely compatible.
func (b *Bytes) UnmarshalJSON(data []byte) error {
	var encoded string
	if err := json.Unmarshal(data, &encoded); err != nil {
		return fmt.Errorf("canon: decoding base64url string: %w", err)
	}
	decoded, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("canon: invalid base64url encoding: %w", err)
	}
	*b = decoded
	return nil
}
