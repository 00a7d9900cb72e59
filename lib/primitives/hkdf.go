// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package primitives

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// HKDF derives length bytes from ikm using HKDF-SHA256 (RFC 5869) with
// the given salt and info. salt may be nil, in which case HKDF's
// extract phase uses HMAC-SHA256 with a zero key — appropriate when
// ikm is already uniformly random (e.g. a freshly generated content
// key), per RFC 5869 §2.2.
func HKDF(ikm, salt, info []byte, length int) ([]byte, error) {
	reader := hkdf.New(sha256.New, ikm, salt, info)
	derived := make([]byte, length)
	if _, err := io.ReadFull(reader, derived); err != nil {
		return nil, fmt.Errorf("primitives: HKDF derivation failed: %w", err)
	}
	return derived, nil
}
