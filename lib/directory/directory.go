// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package directory

import "crypto/ed25519"

// PublicKeyDirectory maps a party name to its published public keys.
// Implementations must be safe for concurrent use and must provide
// read consistency for the duration of a single Publics call — no
// half-updated result may be observed even if the backing store is
// concurrently modified.
//
// Publics returns an error wrapping [coperr.ErrNotFound] when name has
// no published keys. Pipelines translate that into
// [coperr.ErrUnknownParty] at their own call sites, since "not found"
// is a directory-level concept while "unknown party" is a
// protect/check/unprotect-level failure kind.
type PublicKeyDirectory interface {
	Publics(name string) (signingPublic ed25519.PublicKey, encPublic []byte, err error)
}

// Entry is one party's published public keys, the unit both
// implementations read and write.
type Entry struct {
	SigningPublic ed25519.PublicKey
	EncPublic     []byte
}
