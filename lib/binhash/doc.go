// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

// Package binhash provides SHA256 content hashing for binary files.
//
// ChainOfProduct uses binary content hashes to fingerprint the
// transaction payload files read by the protect command and written by
// the unprotect command, so that CLI output can refer to large blobs by
// a short digest instead of printing them in full.
//
// The API surface is three functions:
//
//   - [HashFile] -- streams a file through SHA256, returning a [32]byte
//     digest with constant memory usage regardless of file size
//   - [FormatDigest] -- converts a [32]byte digest to its canonical
//     hex-encoded string representation, used in CLI output and logs
//   - [ParseDigest] -- parses a hex-encoded digest string back to a
//     [32]byte array, validating length and encoding
//
// This package has no dependencies on other packages in this module.
package binhash
