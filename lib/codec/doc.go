// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides ChainOfProduct's standard CBOR encoding
// configuration.
//
// ChainOfProduct uses two serialization formats with a clear boundary:
//
//   - JSON for external interfaces: the canonical envelope and
//     ShareRecord wire formats exchanged with the application server
//     and group server, and CLI output.
//   - CBOR for internal, implementation-private state: the KeyStore's
//     on-disk identity key pair files.
//
// This package provides the shared CBOR encoding and decoding modes so
// that every package that needs CBOR encodes identically without
// duplicating configuration. The encoder uses Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items. Same logical data always
// produces identical bytes.
//
// For buffer-oriented operations (files, tokens):
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For stream-oriented operations:
//
//	encoder := codec.NewEncoder(conn)
//	decoder := codec.NewDecoder(conn)
//
// # Struct Tag Rules
//
// The struct tag on a type documents its serialization format:
//
//   - `cbor` tag: this type is ONLY ever serialized as CBOR. It will
//     never be marshaled to JSON or interact with CLI tooling.
//     Example: the KeyStore's on-disk identity file.
//   - `json` tag: this type may be serialized as JSON instead. The
//     envelope and ShareRecord wire types always use `json` tags
//     because their canonical form is JSON, never CBOR.
//
// Never use both `cbor` and `json` tags on the same field. The tag
// choice documents the contract — doubling up is noise that obscures
// whether a type participates in JSON serialization.
package codec
