// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

// Command chainofproduct is the command-line front end for a single
// party (seller, buyer, or a third party a transaction has been
// disclosed to). It wires lib/protect, lib/check, lib/unprotect, and
// lib/share against an on-disk identity keystore, a public-key
// directory (file- or HTTP-backed), a group resolver, and an
// application-server collaborator, all configured via lib/config.
package main
