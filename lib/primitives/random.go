// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package primitives

import (
	"crypto/rand"
	"fmt"
	"io"
)

// RandomBytes returns n cryptographically secure random bytes read
// from the system CSPRNG. Every nonce, ephemeral key, and symmetric
// key in ChainOfProduct is generated this way — never derived
// deterministically from content or from another key.
func RandomBytes(n int) ([]byte, error) {
	buffer := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, buffer); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomness, err)
	}
	return buffer, nil
}
