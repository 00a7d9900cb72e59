// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kakobtg/ChainOfProducts-project/lib/binhash"
	"github.com/kakobtg/ChainOfProducts-project/lib/canon"
	"github.com/kakobtg/ChainOfProducts-project/lib/protect"
)

// runProtect seals a transaction, read from --in (or stdin), into an
// envelope addressed to --buyer plus any --recipients/--groups, and
// either prints its canonical JSON encoding to stdout or (with
// --store) submits it to the application-server collaborator.
func runProtect(args []string) error {
	flags := flag.NewFlagSet("protect", flag.ContinueOnError)
	var (
		configPath string
		buyer      string
		recipients string
		groups     string
		inPath     string
		store      bool
	)
	flags.StringVar(&configPath, "config", "", "path to config file (default: $CHAINOFPRODUCT_CONFIG)")
	flags.StringVar(&buyer, "buyer", "", "buyer party name (required)")
	flags.StringVar(&recipients, "recipients", "", "comma-separated extra direct recipient names")
	flags.StringVar(&groups, "groups", "", "comma-separated group ids to address")
	flags.StringVar(&inPath, "in", "", "path to the transaction payload (default: stdin)")
	flags.BoolVar(&store, "store", false, "submit the envelope to the application-server collaborator instead of printing it")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if buyer == "" {
		flags.Usage()
		return fmt.Errorf("--buyer is required")
	}

	env, err := loadEnvironment(configPath)
	if err != nil {
		return err
	}
	defer env.Close()
	if env.config.Identity == "" {
		return fmt.Errorf("config identity is required to protect as a seller")
	}

	var reader io.Reader = os.Stdin
	if inPath != "" {
		digest, err := binhash.HashFile(inPath)
		if err != nil {
			return fmt.Errorf("hashing %s: %w", inPath, err)
		}
		fmt.Fprintf(os.Stderr, "Transaction payload %s: sha256 %s\n", inPath, binhash.FormatDigest(digest))

		file, err := os.Open(inPath)
		if err != nil {
			return fmt.Errorf("opening %s: %w", inPath, err)
		}
		defer file.Close()
		reader = file
	}
	transaction, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("reading transaction payload: %w", err)
	}

	envelope, err := protect.Protect(protect.Request{
		Transaction:   transaction,
		SellerName:    env.config.Identity,
		BuyerName:     buyer,
		Recipients:    splitNonEmpty(recipients),
		Groups:        splitNonEmpty(groups),
		KeyStore:      env.keyStore,
		Directory:     env.directory,
		GroupResolver: env.groups,
	})
	if err != nil {
		return err
	}

	if store {
		appServer, err := env.requireAppServer()
		if err != nil {
			return err
		}
		if err := appServer.Store(envelope); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Stored transaction %s\n", hex.EncodeToString(envelope.TxID))
		return nil
	}

	encoded, err := canon.Marshal(envelope)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(encoded))
	fmt.Fprintf(os.Stderr, "Protected transaction %s\n", hex.EncodeToString(envelope.TxID))
	return nil
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
