// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package group

import (
	"fmt"
	"sync"

	"github.com/kakobtg/ChainOfProducts-project/lib/coperr"
)

// MemoryResolver is an in-memory GroupResolver, safe for concurrent
// use. It exists for tests that need to mutate group membership
// between a protect-time snapshot and a later share-time snapshot.
type MemoryResolver struct {
	mu     sync.RWMutex
	groups map[string][]string
}

// NewMemoryResolver returns an empty MemoryResolver.
func NewMemoryResolver() *MemoryResolver {
	return &MemoryResolver{groups: make(map[string][]string)}
}

// CreateGroup registers a group with an initial member list, replacing
// any existing group of the same id.
func (r *MemoryResolver) CreateGroup(groupID string, members []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.groups[groupID] = append([]string(nil), members...)
}

// AddMember appends member to groupID's membership if not already
// present.
func (r *MemoryResolver) AddMember(groupID, member string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.groups[groupID]
	if !ok {
		return fmt.Errorf("%w: %q", coperr.ErrNotFound, groupID)
	}
	for _, existing := range members {
		if existing == member {
			return nil
		}
	}
	r.groups[groupID] = append(members, member)
	return nil
}

// RemoveMember removes member from groupID's membership, if present.
func (r *MemoryResolver) RemoveMember(groupID, member string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.groups[groupID]
	if !ok {
		return fmt.Errorf("%w: %q", coperr.ErrNotFound, groupID)
	}
	filtered := make([]string, 0, len(members))
	for _, existing := range members {
		if existing != member {
			filtered = append(filtered, existing)
		}
	}
	r.groups[groupID] = filtered
	return nil
}

// Snapshot implements GroupResolver.
func (r *MemoryResolver) Snapshot(groupID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.groups[groupID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", coperr.ErrNotFound, groupID)
	}
	return append([]string(nil), members...), nil
}

// Info implements GroupResolver.
func (r *MemoryResolver) Info(groupID string) (Info, error) {
	members, err := r.Snapshot(groupID)
	if err != nil {
		return Info{}, err
	}
	return Info{GroupID: groupID, Members: members}, nil
}
