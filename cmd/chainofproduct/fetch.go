// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/kakobtg/ChainOfProducts-project/lib/canon"
)

// runFetch retrieves the envelope stored for --tx-id and prints its
// canonical JSON encoding to stdout.
func runFetch(args []string) error {
	flags := flag.NewFlagSet("fetch", flag.ContinueOnError)
	var (
		configPath string
		txIDHex    string
	)
	flags.StringVar(&configPath, "config", "", "path to config file (default: $CHAINOFPRODUCT_CONFIG)")
	flags.StringVar(&txIDHex, "tx-id", "", "hex-encoded transaction id (required)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if txIDHex == "" {
		flags.Usage()
		return fmt.Errorf("--tx-id is required")
	}

	txID, err := hex.DecodeString(txIDHex)
	if err != nil {
		return fmt.Errorf("decoding --tx-id: %w", err)
	}

	env, err := loadEnvironment(configPath)
	if err != nil {
		return err
	}
	defer env.Close()
	appServer, err := env.requireAppServer()
	if err != nil {
		return err
	}

	doc, err := appServer.Fetch(txID)
	if err != nil {
		return err
	}

	encoded, err := canon.Marshal(doc)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(encoded))
	return nil
}
