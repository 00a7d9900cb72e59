// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development and manual demo flows.
	Development Environment = "development"
	// Staging is for pre-production testing against real collaborators.
	Staging Environment = "staging"
	// Production is for production deployments.
	Production Environment = "production"
)

// Config is the master configuration for a chainofproduct party
// (seller, buyer, or intermediate handler).
type Config struct {
	// Environment identifies the deployment type.
	Environment Environment `yaml:"environment"`

	// Identity names this party as it is known to collaborators (the
	// "name" field used throughout signing inputs and directory
	// entries).
	Identity string `yaml:"identity"`

	// Paths configures local on-disk locations.
	Paths PathsConfig `yaml:"paths"`

	// Collaborators configures the external services this party talks
	// to: the public-key directory, the group server, and the
	// application server.
	Collaborators CollaboratorsConfig `yaml:"collaborators"`

	// KeyStore configures at-rest protection of the local identity
	// keystore.
	KeyStore KeyStoreConfig `yaml:"keystore"`

	// EnvironmentOverrides contains per-environment overrides, applied
	// after the base config is loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Paths         *PathsConfig         `yaml:"paths,omitempty"`
	Collaborators *CollaboratorsConfig `yaml:"collaborators,omitempty"`
	KeyStore      *KeyStoreConfig      `yaml:"keystore,omitempty"`
}

// PathsConfig configures directory locations.
type PathsConfig struct {
	// Root is the base directory for this party's local state.
	Root string `yaml:"root"`

	// KeyStore is where identity keypairs are stored (see lib/keystore).
	KeyStore string `yaml:"keystore"`

	// LocalDirectory is the path to a file-backed public key directory,
	// used in place of Collaborators.DirectoryURL when no directory
	// collaborator is available (demo and test use).
	LocalDirectory string `yaml:"local_directory"`
}

// CollaboratorsConfig configures the external services this party
// depends on.
type CollaboratorsConfig struct {
	// DirectoryURL is the base URL of the public-key directory
	// collaborator. Empty means use Paths.LocalDirectory instead.
	DirectoryURL string `yaml:"directory_url"`

	// GroupServerURL is the base URL of the group membership
	// collaborator.
	GroupServerURL string `yaml:"group_server_url"`

	// AppServerURL is the base URL of the application server that
	// stores envelopes and addenda.
	AppServerURL string `yaml:"app_server_url"`
}

// KeyStoreConfig configures at-rest protection of the local keystore.
type KeyStoreConfig struct {
	// Sealed enables passphrase sealing of stored secret material.
	// Default: false (development), true (production).
	Sealed bool `yaml:"sealed"`

	// PassphraseFile is a path to read the sealing passphrase from, or
	// "-" to read it from stdin. The passphrase itself is never
	// written to the config file; only this path is. Read via
	// secret.ReadFromPath into an mmap-backed buffer, never held as a
	// plain Go string.
	PassphraseFile string `yaml:"passphrase_file"`
}

// Default returns the default configuration. These defaults exist
// primarily to ensure all fields have sensible zero-values, not as a
// fallback — the config file is required.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultRoot := filepath.Join(homeDir, ".cache", "chainofproduct")

	return &Config{
		Environment: Development,
		Paths: PathsConfig{
			Root:           defaultRoot,
			KeyStore:       filepath.Join(defaultRoot, "keystore"),
			LocalDirectory: filepath.Join(defaultRoot, "directory.yaml"),
		},
		Collaborators: CollaboratorsConfig{},
		KeyStore: KeyStoreConfig{
			Sealed:         false,
			PassphraseFile: "",
		},
	}
}

// Load loads configuration from the CHAINOFPRODUCT_CONFIG environment
// variable.
//
// This is the only way to load configuration without an explicit
// path. There are no fallbacks or defaults - if CHAINOFPRODUCT_CONFIG
// is not set, this fails. This ensures deterministic, auditable
// configuration with no hidden overrides.
func Load() (*Config, error) {
	configPath := os.Getenv("CHAINOFPRODUCT_CONFIG")
	if configPath == "" {
		return nil, fmt.Errorf("CHAINOFPRODUCT_CONFIG environment variable not set; " +
			"set it to the path of your config file, or use --config flag")
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
//
// The config file is the single source of truth. Environment
// variables do not override config values, except ${VAR} expansion
// inside path-like fields for portability.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, c)
}

func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
		if overrides == nil || overrides.KeyStore == nil {
			withDefault := ConfigOverrides{}
			if overrides != nil {
				withDefault = *overrides
			}
			withDefault.KeyStore = &KeyStoreConfig{Sealed: true}
			overrides = &withDefault
		}
	}

	if overrides == nil {
		return
	}

	if overrides.Paths != nil {
		if overrides.Paths.Root != "" {
			c.Paths.Root = overrides.Paths.Root
		}
		if overrides.Paths.KeyStore != "" {
			c.Paths.KeyStore = overrides.Paths.KeyStore
		}
		if overrides.Paths.LocalDirectory != "" {
			c.Paths.LocalDirectory = overrides.Paths.LocalDirectory
		}
	}

	if overrides.Collaborators != nil {
		if overrides.Collaborators.DirectoryURL != "" {
			c.Collaborators.DirectoryURL = overrides.Collaborators.DirectoryURL
		}
		if overrides.Collaborators.GroupServerURL != "" {
			c.Collaborators.GroupServerURL = overrides.Collaborators.GroupServerURL
		}
		if overrides.Collaborators.AppServerURL != "" {
			c.Collaborators.AppServerURL = overrides.Collaborators.AppServerURL
		}
	}

	if overrides.KeyStore != nil {
		// Sealed is a bool, always applied from overrides.
		c.KeyStore.Sealed = overrides.KeyStore.Sealed
		if overrides.KeyStore.PassphraseFile != "" {
			c.KeyStore.PassphraseFile = overrides.KeyStore.PassphraseFile
		}
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in
// path-like fields.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"CHAINOFPRODUCT_ROOT": c.Paths.Root,
		"HOME":                os.Getenv("HOME"),
	}

	c.Paths.Root = expandVars(c.Paths.Root, vars)
	vars["CHAINOFPRODUCT_ROOT"] = c.Paths.Root

	c.Paths.KeyStore = expandVars(c.Paths.KeyStore, vars)
	c.Paths.LocalDirectory = expandVars(c.Paths.LocalDirectory, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if c.Identity == "" {
		errs = append(errs, fmt.Errorf("identity is required"))
	}

	if c.Paths.Root == "" {
		errs = append(errs, fmt.Errorf("paths.root is required"))
	}

	if c.Paths.KeyStore == "" {
		errs = append(errs, fmt.Errorf("paths.keystore is required"))
	}

	if c.Collaborators.DirectoryURL == "" && c.Paths.LocalDirectory == "" {
		errs = append(errs, fmt.Errorf("either collaborators.directory_url or paths.local_directory is required"))
	}

	if c.KeyStore.Sealed && c.KeyStore.PassphraseFile == "" {
		errs = append(errs, fmt.Errorf("keystore.passphrase_file is required when keystore.sealed is true"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// EnsurePaths creates all configured local directories if they don't
// exist.
func (c *Config) EnsurePaths() error {
	paths := []string{c.Paths.Root, c.Paths.KeyStore}

	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := os.MkdirAll(path, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
	}
	return nil
}
