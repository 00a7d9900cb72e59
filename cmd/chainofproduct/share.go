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

// runShare discloses an envelope's transaction to either a direct
// recipient (--to) or every member of a group (--group), as the
// config identity, and submits the resulting addendum to the
// application-server collaborator if one is configured.
func runShare(args []string) error {
	flags := flag.NewFlagSet("share", flag.ContinueOnError)
	var (
		configPath string
		txIDHex    string
		inPath     string
		to         string
		groupID    string
	)
	flags.StringVar(&configPath, "config", "", "path to config file (default: $CHAINOFPRODUCT_CONFIG)")
	flags.StringVar(&txIDHex, "tx-id", "", "hex-encoded transaction id (fetches via the application server)")
	flags.StringVar(&inPath, "in", "", "path to a canonical envelope JSON file (alternative to --tx-id)")
	flags.StringVar(&to, "to", "", "direct recipient party name")
	flags.StringVar(&groupID, "group", "", "group id to disclose to (mutually exclusive with --to)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if (to == "") == (groupID == "") {
		flags.Usage()
		return fmt.Errorf("exactly one of --to or --group is required")
	}

	env, err := loadEnvironment(configPath)
	if err != nil {
		return err
	}
	defer env.Close()
	if env.config.Identity == "" {
		return fmt.Errorf("config identity is required to share")
	}

	doc, err := resolveEnvelope(env, txIDHex, inPath)
	if err != nil {
		return err
	}

	if to != "" {
		result, err := share.ShareDirect(share.DirectShareRequest{
			Envelope:    doc,
			SharerName:  env.config.Identity,
			DisclosedTo: to,
			KeyStore:    env.keyStore,
			Directory:   env.directory,
		})
		if err != nil {
			return err
		}
		if env.appServer != nil {
			if err := env.appServer.SubmitAddendum(doc.TxID, result); err != nil {
				return err
			}
		}
		fmt.Fprintf(os.Stderr, "Disclosed transaction %s to %q\n", hex.EncodeToString(doc.TxID), to)
		return nil
	}

	result, err := share.ShareGroup(share.GroupShareRequest{
		Envelope:      doc,
		SharerName:    env.config.Identity,
		GroupID:       groupID,
		KeyStore:      env.keyStore,
		Directory:     env.directory,
		GroupResolver: env.groups,
	})
	if err != nil {
		return err
	}
	if env.appServer != nil {
		if err := env.appServer.SubmitAddendum(doc.TxID, result); err != nil {
			return err
		}
	}
	fmt.Fprintf(os.Stderr, "Disclosed transaction %s to group %q (%d members)\n",
		hex.EncodeToString(doc.TxID), groupID, len(result.GroupWrap.MemberSnapshot))
	return nil
}
