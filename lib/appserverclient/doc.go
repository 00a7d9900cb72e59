// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

// Package appserverclient is a typed HTTP client for the
// application-server collaborator: the DMZ service that stores and
// serves opaque protected envelopes without ever seeing plaintext.
// Every method maps to one collaborator route, using
// canon.Marshal/Unmarshal over envelope.Envelope and
// envelope.ShareRecord for the payloads the server treats as opaque.
//
// Nothing in lib/protect, lib/check, lib/unprotect, or lib/share
// imports this package: the core pipeline operates purely on
// in-memory Envelope values, and only cmd/chainofproduct wires it to a
// real collaborator.
package appserverclient
