// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

// Package unprotect implements Unprotect: recovering a transaction's
// plaintext for one recipient party. Unprotect always runs Check
// first — a seller signature failure aborts before any unwrap is
// attempted — then searches direct_recipients, then the addenda
// direct-wrap path, for a wrap of the content key matching the
// caller. A bare group membership (member_snapshot alone, or a
// group-wrap addendum) never suffices: group wraps carry only the
// derived group key, which under the single-ciphertext policy (see
// lib/envelope, lib/protect) cannot decrypt content. A group member
// reads content only after a sharer has produced a direct addendum
// rewrap of the content key, which is what addenda unwrapping
// recovers here.
package unprotect
