// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package envelope

import (
	"fmt"

	"github.com/kakobtg/ChainOfProducts-project/lib/coperr"
)

// ValidateStructure checks the envelope invariants that can be
// verified without any cryptographic secret: no duplicate recipient
// names within direct_recipients or within any one GroupWrapSet, and
// each GroupWrapSet's member_snapshot matches the set of recipient
// names actually wrapped for. Signature and decryption invariants are
// checked elsewhere (lib/check, lib/unprotect).
func ValidateStructure(e Envelope) error {
	seen := make(map[string]bool, len(e.DirectRecipients))
	for _, wrap := range e.DirectRecipients {
		if seen[wrap.RecipientName] {
			return fmt.Errorf("%w: duplicate direct recipient %q", coperr.ErrMalformed, wrap.RecipientName)
		}
		seen[wrap.RecipientName] = true
	}

	for _, group := range e.GroupRecipients {
		memberSeen := make(map[string]bool, len(group.Wraps))
		wrappedNames := make(map[string]bool, len(group.Wraps))
		for _, wrap := range group.Wraps {
			if memberSeen[wrap.RecipientName] {
				return fmt.Errorf("%w: duplicate member wrap %q in group %q", coperr.ErrMalformed, wrap.RecipientName, group.GroupID)
			}
			memberSeen[wrap.RecipientName] = true
			wrappedNames[wrap.RecipientName] = true
		}

		if len(group.MemberSnapshot) != len(wrappedNames) {
			return fmt.Errorf("%w: member_snapshot size does not match wrap count for group %q", coperr.ErrMalformed, group.GroupID)
		}
		for _, name := range group.MemberSnapshot {
			if !wrappedNames[name] {
				return fmt.Errorf("%w: member_snapshot entry %q has no wrap in group %q", coperr.ErrMalformed, name, group.GroupID)
			}
		}
	}

	return nil
}
