// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package coperr

import "errors"

// Exit codes for cmd/chainofproduct, in the order listed by the
// command surface: success, input error, authorization denied,
// cryptographic failure, other.
const (
	ExitSuccess            = 0
	ExitInputError         = 2
	ExitAuthorizationDenied = 3
	ExitCryptographicFailure = 4
	ExitOther              = 1
)

// ExitCode maps an error returned by a pipeline to the CLI exit code
// it should produce. A nil error maps to ExitSuccess. An error that
// does not wrap any sentinel in this package maps to ExitOther.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrMalformed), errors.Is(err, ErrUnknownParty), errors.Is(err, ErrUnknownGroup), errors.Is(err, ErrAlreadyExists):
		return ExitInputError
	case errors.Is(err, ErrNotARecipient), errors.Is(err, ErrWrongBuyer):
		return ExitAuthorizationDenied
	case errors.Is(err, ErrSignatureInvalid), errors.Is(err, ErrAuthFailure):
		return ExitCryptographicFailure
	default:
		return ExitOther
	}
}
