// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package envelope

import (
	"fmt"

	"github.com/kakobtg/ChainOfProducts-project/lib/canon"
	"github.com/kakobtg/ChainOfProducts-project/lib/coperr"
)

// Parse decodes data into an Envelope, requiring that data already is
// its own canonical encoding: re-serializing the decoded value must
// reproduce data byte-for-byte. An envelope transmitted with
// non-canonical field order, extra whitespace, or padded base64 is
// rejected as [coperr.ErrMalformed] rather than silently
// re-canonicalized, since the signatures cover only the canonical
// bytes.
func Parse(data []byte) (Envelope, error) {
	env, err := canon.VerifyRoundTrip[Envelope](data)
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", coperr.ErrMalformed, err)
	}
	return env, nil
}
