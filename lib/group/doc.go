// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

// Package group implements GroupResolver: a read-only,
// snapshot-returning view of dynamic group membership that the
// Protect and Share pipelines consult.
//
// [HTTPResolver] queries a group-server collaborator's
// GET /groups/{group_id}/members endpoint. [MemoryResolver] is an in-memory, mutable test
// double used by the pipeline test suites to exercise the group
// snapshot freeze behavior (a member added after a snapshot was taken
// must not appear in it) without standing up an HTTP server.
//
// The core itself never mutates groups — group creation and
// membership changes are collaborator concerns (see lib/groupclient
// for the CLI-facing convenience methods that do call the mutating
// endpoints).
package group
