// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

// Package protect implements the Protect pipeline: turning a
// transaction's plaintext bytes, a seller identity, and a set of
// direct and group recipients into a signed, sealed Envelope.
//
// Content is encrypted exactly once, under a single content key
// K_T. Direct recipients get K_T wrapped to their own encryption
// public key. Group recipients never learn K_T directly — instead
// each group gets its own key GK_{g,TxID} derived from K_T via HKDF,
// wrapped to every member of the group's snapshot taken at
// protect-time. See [Request] and [Protect] for the entry point, and
// wrap.go for the per-recipient key-wrap construction shared with
// lib/share's addendum path.
package protect
