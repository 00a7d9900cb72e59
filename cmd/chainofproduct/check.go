// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/kakobtg/ChainOfProducts-project/lib/check"
	"github.com/kakobtg/ChainOfProducts-project/lib/coperr"
	"github.com/kakobtg/ChainOfProducts-project/lib/envelope"
)

// runCheck verifies an envelope's signatures (and its addenda's
// ShareRecord signatures) without decrypting anything, printing a
// human-readable report. It exits non-zero if the envelope does not
// verify.
func runCheck(args []string) error {
	flags := flag.NewFlagSet("check", flag.ContinueOnError)
	var (
		configPath string
		txIDHex    string
		inPath     string
	)
	flags.StringVar(&configPath, "config", "", "path to config file (default: $CHAINOFPRODUCT_CONFIG)")
	flags.StringVar(&txIDHex, "tx-id", "", "hex-encoded transaction id (fetches via the application server)")
	flags.StringVar(&inPath, "in", "", "path to a canonical envelope JSON file (alternative to --tx-id)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	env, err := loadEnvironment(configPath)
	if err != nil {
		return err
	}
	defer env.Close()

	doc, err := resolveEnvelope(env, txIDHex, inPath)
	if err != nil {
		return err
	}

	report := check.Check(doc, env.directory)
	printCheckReport(doc, report)

	if !report.Valid() {
		return fmt.Errorf("%w: envelope %s failed verification", coperr.ErrSignatureInvalid, hex.EncodeToString(doc.TxID))
	}
	return nil
}

// resolveEnvelope loads an envelope either from inPath (a canonical
// JSON file) or, failing that, from the application server by tx-id.
// One trailing newline in the file (as protect prints after the JSON)
// is dropped before parsing; the rest must be canonical.
func resolveEnvelope(env *environment, txIDHex, inPath string) (envelope.Envelope, error) {
	if inPath != "" {
		data, err := os.ReadFile(inPath)
		if err != nil {
			return envelope.Envelope{}, fmt.Errorf("reading %s: %w", inPath, err)
		}
		return envelope.Parse(bytes.TrimSuffix(data, []byte("\n")))
	}
	if txIDHex == "" {
		return envelope.Envelope{}, fmt.Errorf("either --tx-id or --in is required")
	}
	txID, err := hex.DecodeString(txIDHex)
	if err != nil {
		return envelope.Envelope{}, fmt.Errorf("decoding --tx-id: %w", err)
	}
	appServer, err := env.requireAppServer()
	if err != nil {
		return envelope.Envelope{}, err
	}
	return appServer.Fetch(txID)
}

func printCheckReport(doc envelope.Envelope, report check.Report) {
	fmt.Fprintf(os.Stderr, "Transaction %s\n", hex.EncodeToString(doc.TxID))
	fmt.Fprintf(os.Stderr, "  well-formed:  %v\n", report.EnvelopeWellFormed)
	fmt.Fprintf(os.Stderr, "  seller_sig:   %v\n", report.SellerSigValid)
	if report.BuyerSigValid != nil {
		fmt.Fprintf(os.Stderr, "  buyer_sig:    %v\n", *report.BuyerSigValid)
	} else {
		fmt.Fprintf(os.Stderr, "  buyer_sig:    (not present)\n")
	}
	for _, failure := range report.Failures {
		fmt.Fprintf(os.Stderr, "  failure: %v\n", failure)
	}
	for i, addendum := range report.Addenda {
		fmt.Fprintf(os.Stderr, "  addendum[%d]: share_record_valid=%v\n", i, addendum.ShareRecordValid)
		for _, failure := range addendum.Failures {
			fmt.Fprintf(os.Stderr, "    failure: %v\n", failure)
		}
	}
}
