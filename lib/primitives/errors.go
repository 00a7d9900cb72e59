// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package primitives

import "github.com/kakobtg/ChainOfProducts-project/lib/coperr"

// ErrAuthFailure is returned by AEADOpen when authentication fails: a
// tampered ciphertext, a wrong key, or a mismatched AAD. It is an
// alias of [coperr.ErrAuthFailure] so that errors.Is composes for
// callers regardless of which package produced the failure.
var ErrAuthFailure = coperr.ErrAuthFailure

// ErrRandomness is returned when the system CSPRNG cannot be read. An
// alias of [coperr.ErrRandomness].
var ErrRandomness = coperr.ErrRandomness
