// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package primitives

import "crypto/sha256"

// HashSize is the length in bytes of a SHA-256 digest.
const HashSize = sha256.Size

// SHA256 returns the SHA-256 digest of data. Used for content hashes
// (binding a transaction's plaintext to its envelope for signature and
// audit purposes) and for ShareRecord signing-input digests.
func SHA256(data []byte) [HashSize]byte {
	return sha256.Sum256(data)
}
