// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

// Package groupclient is a convenience HTTP client for the
// group-server collaborator's mutating routes: POST /groups/create,
// POST /groups/{id}/add_member, POST /groups/{id}/remove_member. These
// are demo/CLI conveniences, not core operations — lib/group's
// GroupResolver (the interface lib/protect and lib/share actually
// consume) is read-only; the group server splits mutation routes from
// the snapshot/info routes lib/group.HTTPResolver calls.
package groupclient
