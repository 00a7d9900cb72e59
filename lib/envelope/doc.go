// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

// Package envelope defines the protected-document wire format and the
// canonical signing-input it is built from.
//
// Every wire-format struct in this package declares its json tags in
// lexicographic order — canon.Marshal then produces the same byte
// sequence on every implementation, which is what makes the seller
// and buyer signatures (and ShareRecord signatures) meaningful: a
// verifier must re-derive exactly the bytes the signer signed.
//
// [SigningInput] holds every envelope field except the signatures
// themselves; [Envelope] additionally carries seller_sig, buyer_sig,
// and addenda. The split exists because the signing-input must be
// recomputable from an Envelope without the signature fields leaking
// into what gets re-signed.
package envelope
