// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/base64"
	"flag"
	"fmt"
	"os"

	"github.com/kakobtg/ChainOfProducts-project/lib/coperr"
	"github.com/kakobtg/ChainOfProducts-project/lib/directory"
)

// runKeygen generates name's identity keypair, persists it to the
// local keystore, and (unless --no-register is set) registers its
// public keys in the local file directory so other local commands can
// resolve it.
func runKeygen(args []string) error {
	flags := flag.NewFlagSet("keygen", flag.ContinueOnError)
	var (
		configPath string
		name       string
		noRegister bool
	)
	flags.StringVar(&configPath, "config", "", "path to config file (default: $CHAINOFPRODUCT_CONFIG)")
	flags.StringVar(&name, "name", "", "party name to generate an identity for (required)")
	flags.BoolVar(&noRegister, "no-register", false, "skip registering the new identity in the local directory")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if name == "" {
		flags.Usage()
		return fmt.Errorf("%w: --name is required", coperr.ErrMalformed)
	}

	env, err := loadEnvironment(configPath)
	if err != nil {
		return err
	}
	defer env.Close()

	identity, err := env.keyStore.Generate(name)
	if err != nil {
		return err
	}
	defer identity.Close()

	if !noRegister {
		if fileDir, ok := env.directory.(*directory.FileDirectory); ok {
			if err := fileDir.Register(name, identity.SigningPublic, identity.EncPublic); err != nil {
				return fmt.Errorf("registering %q in local directory: %w", name, err)
			}
		}
	}

	fmt.Fprintf(os.Stderr, "Generated identity for %q\n", name)
	fmt.Fprintf(os.Stderr, "  signing public key:    %s\n", base64.StdEncoding.EncodeToString(identity.SigningPublic))
	fmt.Fprintf(os.Stderr, "  encryption public key:  %s\n", base64.StdEncoding.EncodeToString(identity.EncPublic))
	return nil
}
