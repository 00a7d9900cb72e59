// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

// Package coperr defines the error kinds shared across ChainOfProduct's
// pipelines and maps them to CLI exit codes. Every pipeline package
// wraps one of these sentinels with fmt.Errorf("%w: ...") rather than
// minting its own error type, so callers can branch with errors.Is
// regardless of which pipeline produced the failure.
package coperr

import "errors"

var (
	// ErrMalformed is returned when an envelope or ShareRecord fails
	// structural or canonicalization checks.
	ErrMalformed = errors.New("coperr: malformed input")

	// ErrSignatureInvalid is returned when a seller, buyer, or sharer
	// signature fails to verify.
	ErrSignatureInvalid = errors.New("coperr: signature invalid")

	// ErrAuthFailure is returned when AEAD authentication fails: tamper,
	// wrong key, or wrong associated data. Deliberately reported with
	// the same text and timing class as ErrSignatureInvalid at call
	// sites that must not let an untrusted caller distinguish the two.
	ErrAuthFailure = errors.New("coperr: authentication failed")

	// ErrNotARecipient is returned when no wrapped key in an envelope
	// matches the caller.
	ErrNotARecipient = errors.New("coperr: not a recipient")

	// ErrUnknownParty is returned when a PublicKeyDirectory lookup
	// misses.
	ErrUnknownParty = errors.New("coperr: unknown party")

	// ErrUnknownGroup is returned when a GroupResolver lookup misses.
	ErrUnknownGroup = errors.New("coperr: unknown group")

	// ErrKeyStoreFailure is returned on I/O or integrity failure while
	// loading a secret from the KeyStore.
	ErrKeyStoreFailure = errors.New("coperr: key store failure")

	// ErrRandomness is returned when the CSPRNG is unavailable.
	ErrRandomness = errors.New("coperr: randomness source failed")

	// ErrWrongBuyer is returned when BuyerSign is invoked with a name
	// that does not match the envelope's buyer_name.
	ErrWrongBuyer = errors.New("coperr: wrong buyer")

	// ErrAlreadyExists is returned when KeyStore.Generate is invoked
	// against a party name that already has an identity.
	ErrAlreadyExists = errors.New("coperr: identity already exists")

	// ErrNotFound is returned by KeyStore.Load, PublicKeyDirectory, and
	// similar read paths when no record exists for the given name.
	ErrNotFound = errors.New("coperr: not found")
)
