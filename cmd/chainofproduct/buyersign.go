// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/kakobtg/ChainOfProducts-project/lib/share"
)

// runBuyerSign attaches the config identity's signature, as buyer, to
// an envelope resolved via --tx-id or --in, then (if an
// application-server collaborator is configured) submits the
// signature back.
func runBuyerSign(args []string) error {
	flags := flag.NewFlagSet("buyer-sign", flag.ContinueOnError)
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
	if env.config.Identity == "" {
		return fmt.Errorf("config identity is required to buyer-sign")
	}

	doc, err := resolveEnvelope(env, txIDHex, inPath)
	if err != nil {
		return err
	}

	signed, err := share.BuyerSign(doc, env.config.Identity, env.keyStore)
	if err != nil {
		return err
	}

	if env.appServer != nil {
		if err := env.appServer.SubmitBuyerSignature(signed.TxID, signed.BuyerSignature); err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stderr, "Buyer-signed transaction %s\n", hex.EncodeToString(signed.TxID))
	return nil
}
