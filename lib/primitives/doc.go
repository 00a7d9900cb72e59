// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

// Package primitives provides thin, typed wrappers over the
// cryptographic building blocks used throughout ChainOfProduct: AEAD
// (AES-256-GCM), signatures (Ed25519), key agreement (X25519), key
// derivation (HKDF-SHA256), hashing (SHA-256), and random byte
// generation.
//
// No custom cryptographic primitives are implemented here — every
// function composes a well-reviewed implementation from the standard
// library or golang.org/x/crypto. The point of this package is a
// single, typed seam between ChainOfProduct's pipelines and the
// underlying crypto libraries, so a reader never has to remember which
// package exports which constant or how a given primitive is supposed
// to be called.
//
// Error contract: these functions fail only with [ErrAuthFailure] (AEAD
// open failed) or an error wrapping [ErrRandomness] (the CSPRNG could
// not be read); [Verify] reports a bad signature as false rather than
// as an error. Passing a
// wrong-length key or nonce is a precondition violation — a caller
// bug, not a runtime condition — and is reported as a plain error
// rather than a sentinel, since no caller should ever branch on it.
//
// Nonces are always generated fresh from [RandomBytes] and must never
// be derived deterministically from key or plaintext material; see the
// pipelines in lib/protect and lib/share for the call sites that rely
// on this.
package primitives
