// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package group

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/kakobtg/ChainOfProducts-project/lib/coperr"
)

// HTTPResolver queries a group-server collaborator:
// GET /groups/{group_id}/members and GET /groups/{group_id}.
type HTTPResolver struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewHTTPResolver returns an HTTPResolver querying baseURL (e.g.
// "https://group-server.internal"), logging request summaries via
// slog.Default().
func NewHTTPResolver(baseURL string) *HTTPResolver {
	return &HTTPResolver{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  slog.Default(),
	}
}

type membersResponse struct {
	GroupID string   `json:"group_id"`
	Members []string `json:"members"`
	Count   int      `json:"count"`
}

func (r *HTTPResolver) get(groupID string, subpath string, out any) error {
	endpoint, err := url.Parse(r.baseURL)
	if err != nil {
		return fmt.Errorf("%w: invalid group server base URL: %v", coperr.ErrUnknownGroup, err)
	}
	endpoint.Path = path.Join(endpoint.Path, "groups", groupID, subpath)

	start := time.Now()
	resp, err := r.client.Get(endpoint.String())
	if err != nil {
		return fmt.Errorf("%w: querying group server: %v", coperr.ErrUnknownGroup, err)
	}
	defer resp.Body.Close()
	r.logger.Debug("group request",
		"method", "GET", "url", endpoint.String(), "status", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds())

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %q", coperr.ErrNotFound, groupID)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: group server returned status %d for %q", coperr.ErrUnknownGroup, resp.StatusCode, groupID)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding group server response: %v", coperr.ErrUnknownGroup, err)
	}
	return nil
}

// Snapshot implements GroupResolver.
func (r *HTTPResolver) Snapshot(groupID string) ([]string, error) {
	var members membersResponse
	if err := r.get(groupID, "members", &members); err != nil {
		return nil, err
	}
	return members.Members, nil
}

type groupResponse struct {
	GroupID     string   `json:"group_id"`
	Members     []string `json:"members"`
	MemberCount int      `json:"member_count"`
}

// Info implements GroupResolver.
func (r *HTTPResolver) Info(groupID string) (Info, error) {
	var group groupResponse
	if err := r.get(groupID, "", &group); err != nil {
		return Info{}, err
	}
	return Info{GroupID: group.GroupID, Members: group.Members}, nil
}
