// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package directory

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/kakobtg/ChainOfProducts-project/lib/coperr"
)

// HTTPDirectory queries an application-server collaborator's
// GET /companies/{name} endpoint: {"company_name",
// "signing_public_key", "encryption_public_key"}, both keys
// base64-standard-encoded.
type HTTPDirectory struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewHTTPDirectory returns an HTTPDirectory querying baseURL (e.g.
// "https://app-server.internal"), logging request summaries via
// slog.Default().
func NewHTTPDirectory(baseURL string) *HTTPDirectory {
	return &HTTPDirectory{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  slog.Default(),
	}
}

type companyResponse struct {
	CompanyName         string `json:"company_name"`
	SigningPublicKey    string `json:"signing_public_key"`
	EncryptionPublicKey string `json:"encryption_public_key"`
}

// Publics implements PublicKeyDirectory.
func (d *HTTPDirectory) Publics(name string) (ed25519.PublicKey, []byte, error) {
	endpoint, err := url.Parse(d.baseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid directory base URL: %v", coperr.ErrKeyStoreFailure, err)
	}
	endpoint.Path = path.Join(endpoint.Path, "companies", name)

	start := time.Now()
	resp, err := d.client.Get(endpoint.String())
	if err != nil {
		return nil, nil, fmt.Errorf("%w: querying directory: %v", coperr.ErrKeyStoreFailure, err)
	}
	defer resp.Body.Close()
	d.logger.Debug("directory request",
		"method", "GET", "url", endpoint.String(), "status", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds())

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil, fmt.Errorf("%w: %q", coperr.ErrNotFound, name)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("%w: directory returned status %d for %q", coperr.ErrKeyStoreFailure, resp.StatusCode, name)
	}

	var company companyResponse
	if err := json.NewDecoder(resp.Body).Decode(&company); err != nil {
		return nil, nil, fmt.Errorf("%w: decoding directory response: %v", coperr.ErrKeyStoreFailure, err)
	}

	signingPublic, err := base64.StdEncoding.DecodeString(company.SigningPublicKey)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: decoding signing public key for %q: %v", coperr.ErrKeyStoreFailure, name, err)
	}
	encPublic, err := base64.StdEncoding.DecodeString(company.EncryptionPublicKey)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: decoding encryption public key for %q: %v", coperr.ErrKeyStoreFailure, name, err)
	}
	return ed25519.PublicKey(signingPublic), encPublic, nil
}
