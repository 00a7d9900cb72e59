// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/kakobtg/ChainOfProducts-project/lib/binhash"
	"github.com/kakobtg/ChainOfProducts-project/lib/unprotect"
)

// runUnprotect decrypts the transaction content of an envelope
// resolved via --tx-id or --in, as the party named by the config
// identity, writing plaintext to --out (default: stdout).
func runUnprotect(args []string) error {
	flags := flag.NewFlagSet("unprotect", flag.ContinueOnError)
	var (
		configPath string
		txIDHex    string
		inPath     string
		outPath    string
	)
	flags.StringVar(&configPath, "config", "", "path to config file (default: $CHAINOFPRODUCT_CONFIG)")
	flags.StringVar(&txIDHex, "tx-id", "", "hex-encoded transaction id (fetches via the application server)")
	flags.StringVar(&inPath, "in", "", "path to a canonical envelope JSON file (alternative to --tx-id)")
	flags.StringVar(&outPath, "out", "", "path to write decrypted content (default: stdout)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	env, err := loadEnvironment(configPath)
	if err != nil {
		return err
	}
	defer env.Close()
	if env.config.Identity == "" {
		return fmt.Errorf("config identity is required to unprotect")
	}

	doc, err := resolveEnvelope(env, txIDHex, inPath)
	if err != nil {
		return err
	}

	plaintext, err := unprotect.Unprotect(unprotect.Request{
		Envelope:      doc,
		RecipientName: env.config.Identity,
		KeyStore:      env.keyStore,
		Directory:     env.directory,
	})
	if err != nil {
		return err
	}

	writer := os.Stdout
	if outPath != "" {
		file, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outPath, err)
		}
		defer file.Close()
		if _, err := file.Write(plaintext); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
		digest, err := binhash.HashFile(outPath)
		if err != nil {
			return fmt.Errorf("hashing %s: %w", outPath, err)
		}
		fmt.Fprintf(os.Stderr, "Decrypted transaction %s to %s (sha256 %s)\n",
			hex.EncodeToString(doc.TxID), outPath, binhash.FormatDigest(digest))
		return nil
	}

	if _, err := writer.Write(plaintext); err != nil {
		return fmt.Errorf("writing plaintext: %w", err)
	}
	return nil
}
