// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

// Package share implements everything that happens to an Envelope
// after Protect: attaching the buyer's signature (BuyerSign),
// disclosing a transaction to a new direct recipient or a group
// (ShareDirect, ShareGroup), and the seller-side audit of every
// disclosure ever made for a transaction (Audit).
//
// A disclosure never mutates the protect-time signing-input. It
// appends an Addendum — a wrap plus its own signed ShareRecord — so
// the original seller_signature (and buyer_signature, once attached)
// remain valid regardless of how many times a transaction is later
// shared. See lib/check for how the two signature layers are
// reported separately, and lib/unprotect for how an addendum is
// consumed.
package share
