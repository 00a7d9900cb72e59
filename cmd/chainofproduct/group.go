// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/kakobtg/ChainOfProducts-project/lib/groupclient"
)

// runGroup manages group membership on the group-server collaborator:
// create a group, add or remove a member, or show the current
// snapshot. Mutations require collaborators.group_server_url; show
// also works against the in-memory resolver for offline use.
func runGroup(args []string) error {
	if len(args) == 0 {
		printGroupUsage()
		return fmt.Errorf("a group action is required")
	}
	action := args[0]
	rest := args[1:]

	flags := flag.NewFlagSet("group "+action, flag.ContinueOnError)
	var (
		configPath string
		groupID    string
		member     string
		members    string
	)
	flags.StringVar(&configPath, "config", "", "path to config file (default: $CHAINOFPRODUCT_CONFIG)")
	flags.StringVar(&groupID, "id", "", "group id (required)")
	switch action {
	case "create":
		flags.StringVar(&members, "members", "", "comma-separated initial member names")
	case "add", "remove":
		flags.StringVar(&member, "member", "", "party name (required)")
	case "show":
	default:
		printGroupUsage()
		return fmt.Errorf("unknown group action %q", action)
	}
	if err := flags.Parse(rest); err != nil {
		return err
	}
	if groupID == "" {
		flags.Usage()
		return fmt.Errorf("--id is required")
	}

	env, err := loadEnvironment(configPath)
	if err != nil {
		return err
	}
	defer env.Close()

	if action == "show" {
		snapshot, err := env.groups.Snapshot(groupID)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Group %q: %d member(s)\n", groupID, len(snapshot))
		for _, name := range snapshot {
			fmt.Fprintf(os.Stderr, "  %s\n", name)
		}
		return nil
	}

	if env.config.Collaborators.GroupServerURL == "" {
		return fmt.Errorf("no collaborators.group_server_url configured")
	}
	client := groupclient.New(env.config.Collaborators.GroupServerURL)

	switch action {
	case "create":
		initial := splitNonEmpty(members)
		if err := client.CreateGroup(groupID, initial); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Created group %q with %d member(s)\n", groupID, len(initial))
	case "add":
		if member == "" {
			flags.Usage()
			return fmt.Errorf("--member is required")
		}
		if err := client.AddMember(groupID, member); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Added %q to group %q\n", member, groupID)
	case "remove":
		if member == "" {
			flags.Usage()
			return fmt.Errorf("--member is required")
		}
		if err := client.RemoveMember(groupID, member); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Removed %q from group %q\n", member, groupID)
	}
	return nil
}

func printGroupUsage() {
	fmt.Fprintf(os.Stderr, `Usage: chainofproduct group <action> [flags]

Actions:
  create  Create a group (--id, --members)
  add     Add a member (--id, --member)
  remove  Remove a member (--id, --member)
  show    Print the current member snapshot (--id)
`)
}
