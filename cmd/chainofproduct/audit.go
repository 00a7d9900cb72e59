// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/kakobtg/ChainOfProducts-project/lib/coperr"
	"github.com/kakobtg/ChainOfProducts-project/lib/share"
)

// runAudit retrieves every ShareRecord submitted against --tx-id and
// independently verifies each one, printing the disclosure graph.
func runAudit(args []string) error {
	flags := flag.NewFlagSet("audit", flag.ContinueOnError)
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

	records, err := appServer.ShareRecords(txID)
	if err != nil {
		return err
	}

	report := share.Audit(records, env.directory)
	fmt.Fprintf(os.Stderr, "Transaction %s: %d disclosure(s)\n", txIDHex, len(report.Records))
	for _, record := range report.Records {
		fmt.Fprintf(os.Stderr, "  %s -> %s (%s) at %s: valid=%v\n",
			record.ShareRecord.Sharer, record.ShareRecord.DisclosedTo, record.ShareRecord.Kind,
			record.ShareRecord.Timestamp, record.Valid)
		if record.Err != nil {
			fmt.Fprintf(os.Stderr, "    error: %v\n", record.Err)
		}
	}
	fmt.Fprintf(os.Stderr, "Disclosed to: %v\n", report.DisclosedTo())

	if !report.AllValid() {
		return fmt.Errorf("%w: at least one disclosure record failed verification", coperr.ErrSignatureInvalid)
	}
	return nil
}
