// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

// Package keystore persists a party's long-term IdentityKeyPair
// (Ed25519 signing key, X25519 encryption key) and loads it back by
// party name.
//
// Storage layout: one directory per party under the KeyStore's base
// directory, each holding a single identity.cbor file — CBOR Core
// Deterministic Encoding (lib/codec). The file's secret fields are
// integrity-protected by an HMAC-SHA256 tag keyed by a per-KeyStore
// master key (master.key, file mode 0600, generated on first use),
// satisfying the corruption-detection requirement without depending
// on a specific filesystem's own integrity guarantees.
//
// Secrets are held in [secret.Buffer] (mmap-backed, mlock'd,
// zero-on-close) from the moment they are read off disk or generated,
// matching the hygiene discipline used throughout this module.
//
// Optionally, when a passphrase is configured, the secret section is
// additionally sealed with filippo.io/age's scrypt recipient (see
// seal.go) before being written, adapted here from
// recipient-public-key sealing to passphrase sealing since a KeyStore
// has no natural third-party recipient.
package keystore
