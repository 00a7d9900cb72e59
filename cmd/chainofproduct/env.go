// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/kakobtg/ChainOfProducts-project/lib/appserverclient"
	"github.com/kakobtg/ChainOfProducts-project/lib/config"
	"github.com/kakobtg/ChainOfProducts-project/lib/directory"
	"github.com/kakobtg/ChainOfProducts-project/lib/group"
	"github.com/kakobtg/ChainOfProducts-project/lib/keystore"
	"github.com/kakobtg/ChainOfProducts-project/lib/secret"
)

// environment bundles every collaborator a subcommand needs, wired
// from a loaded config.
type environment struct {
	config     *config.Config
	keyStore   *keystore.KeyStore
	directory  directory.PublicKeyDirectory
	groups     group.GroupResolver
	appServer  *appserverclient.Client
	passphrase *secret.Buffer // non-nil only when keystore.Sealed; closed by Close
}

// Close releases resources held by env, including the keystore sealing
// passphrase buffer.
func (env *environment) Close() error {
	if env.passphrase != nil {
		return env.passphrase.Close()
	}
	return nil
}

// loadEnvironment reads config from configPath (or CHAINOFPRODUCT_CONFIG
// if configPath is empty), validates it, and opens every collaborator
// it names.
func loadEnvironment(configPath string) (*environment, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.EnsurePaths(); err != nil {
		return nil, err
	}

	var keyStoreOpts []keystore.Option
	var passphrase *secret.Buffer
	if cfg.KeyStore.Sealed {
		passphrase, err = secret.ReadFromPath(cfg.KeyStore.PassphraseFile)
		if err != nil {
			return nil, fmt.Errorf("reading keystore passphrase: %w", err)
		}
		keyStoreOpts = append(keyStoreOpts, keystore.WithPassphrase(passphrase))
	}
	ks, err := keystore.Open(cfg.Paths.KeyStore, keyStoreOpts...)
	if err != nil {
		if passphrase != nil {
			passphrase.Close()
		}
		return nil, fmt.Errorf("opening keystore: %w", err)
	}

	var dir directory.PublicKeyDirectory
	if cfg.Collaborators.DirectoryURL != "" {
		dir = directory.NewHTTPDirectory(cfg.Collaborators.DirectoryURL)
	} else {
		fileDir, err := directory.OpenFile(cfg.Paths.LocalDirectory)
		if err != nil {
			return nil, fmt.Errorf("opening local directory: %w", err)
		}
		dir = fileDir
	}

	var groups group.GroupResolver
	if cfg.Collaborators.GroupServerURL != "" {
		groups = group.NewHTTPResolver(cfg.Collaborators.GroupServerURL)
	} else {
		groups = group.NewMemoryResolver()
	}

	var appServer *appserverclient.Client
	if cfg.Collaborators.AppServerURL != "" {
		appServer = appserverclient.New(cfg.Collaborators.AppServerURL)
	}

	return &environment{
		config:     cfg,
		keyStore:   ks,
		directory:  dir,
		groups:     groups,
		appServer:  appServer,
		passphrase: passphrase,
	}, nil
}

// requireAppServer returns env.appServer, or an error if no
// application-server collaborator is configured.
func (env *environment) requireAppServer() (*appserverclient.Client, error) {
	if env.appServer == nil {
		return nil, fmt.Errorf("no collaborators.app_server_url configured")
	}
	return env.appServer, nil
}
