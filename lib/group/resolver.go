// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package group

// Info is a group's metadata as returned by GroupResolver.Info.
type Info struct {
	GroupID string
	Members []string
}

// GroupResolver returns the current member list of a group, taken as
// a snapshot at the moment of the call. Implementations must provide
// read consistency for the duration of one Snapshot or Info call: a
// caller must never observe a half-updated membership list.
//
// Snapshot and Info return an error wrapping coperr.ErrNotFound when
// group_id is unknown; pipelines translate that into
// coperr.ErrUnknownGroup at their own call sites.
type GroupResolver interface {
	Snapshot(groupID string) (members []string, err error)
	Info(groupID string) (Info, error)
}
