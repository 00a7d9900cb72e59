// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

// Package directory implements PublicKeyDirectory: the read-only
// mapping from party name to published (signing public key,
// encryption public key) that the Protect, Check, and Unprotect
// pipelines consult.
//
// Two implementations are provided. [FileDirectory] reads and writes a
// local YAML file of per-party public keys. [HTTPDirectory] instead queries an
// application-server collaborator's company-registry endpoint,
// matching the production topology where the directory is a service
// the core consults rather than a local cache.
package directory
