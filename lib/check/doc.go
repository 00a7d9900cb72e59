// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

// Package check implements Check: a pure, side-effect-free structural
// and signature verification of an Envelope. Check never decrypts
// anything — it answers "is this envelope well-formed and properly
// signed", not "what does it contain". lib/unprotect calls Check
// first and only then attempts to recover content.
package check
