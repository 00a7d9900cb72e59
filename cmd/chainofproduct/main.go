// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/kakobtg/ChainOfProducts-project/lib/coperr"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	level := slog.LevelInfo
	if os.Getenv("CHAINOFPRODUCT_DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if len(args) == 0 {
		printUsage()
		return coperr.ExitInputError
	}

	subcommand := args[0]
	rest := args[1:]

	var err error
	switch subcommand {
	case "keygen":
		err = runKeygen(rest)
	case "protect":
		err = runProtect(rest)
	case "check":
		err = runCheck(rest)
	case "unprotect":
		err = runUnprotect(rest)
	case "buyer-sign":
		err = runBuyerSign(rest)
	case "share":
		err = runShare(rest)
	case "group":
		err = runGroup(rest)
	case "fetch":
		err = runFetch(rest)
	case "audit":
		err = runAudit(rest)
	case "-h", "--help", "help":
		printUsage()
		return coperr.ExitSuccess
	default:
		printUsage()
		return coperr.ExitInputError
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return coperr.ExitCode(err)
	}
	return coperr.ExitSuccess
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: chainofproduct <subcommand> [flags]

Subcommands:
  keygen      Generate an identity keypair and register it
  protect     Seal a transaction into an envelope
  check       Verify an envelope's signatures without decrypting it
  unprotect   Decrypt an envelope's transaction content
  buyer-sign  Attach a buyer's signature to an envelope
  share       Disclose a transaction to a new party or group
  group       Manage group membership on the group server
  fetch       Retrieve a stored envelope
  audit       Verify every disclosure recorded against a transaction

Run 'chainofproduct <subcommand> -h' for subcommand flags.
`)
}
