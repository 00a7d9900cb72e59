// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package groupclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/kakobtg/ChainOfProducts-project/lib/coperr"
)

// Client mutates group membership on a group-server collaborator
// via its /groups routes.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// New returns a Client targeting baseURL (e.g.
// "https://group-server.internal"), logging request summaries via
// slog.Default().
func New(baseURL string) *Client {
	return NewWithLogger(baseURL, slog.Default())
}

// NewWithLogger is like New but logs request summaries (method, path,
// status, latency) at slog.LevelDebug via logger instead of the
// default logger.
func NewWithLogger(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

func (c *Client) post(segments []string, payload any) (*http.Response, error) {
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid group server base URL: %v", coperr.ErrUnknownGroup, err)
	}
	endpoint.Path = path.Join(append([]string{endpoint.Path}, segments...)...)

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding group server request: %v", coperr.ErrUnknownGroup, err)
	}

	start := time.Now()
	resp, err := c.client.Post(endpoint.String(), "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: calling group server: %v", coperr.ErrUnknownGroup, err)
	}
	c.logger.Debug("groupclient request",
		"method", "POST", "url", endpoint.String(), "status", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds())
	return resp, nil
}

type groupCreateRequest struct {
	GroupID string   `json:"group_id"`
	Members []string `json:"members"`
}

// CreateGroup creates groupID with an initial member list. Fails with
// [coperr.ErrAlreadyExists] if the group already exists.
func (c *Client) CreateGroup(groupID string, members []string) error {
	if members == nil {
		members = []string{}
	}
	resp, err := c.post([]string{"groups", "create"}, groupCreateRequest{GroupID: groupID, Members: members})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated, http.StatusOK:
		return nil
	case http.StatusConflict:
		return fmt.Errorf("%w: group %q", coperr.ErrAlreadyExists, groupID)
	default:
		return statusError(resp)
	}
}

type memberRequest struct {
	Member string `json:"member"`
}

// AddMember adds member to groupID. Fails with [coperr.ErrNotFound] if
// the group does not exist, [coperr.ErrAlreadyExists] if member is
// already a member.
func (c *Client) AddMember(groupID, member string) error {
	resp, err := c.post([]string{"groups", groupID, "add_member"}, memberRequest{Member: member})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("%w: group %q", coperr.ErrNotFound, groupID)
	case http.StatusConflict:
		return fmt.Errorf("%w: %q already a member of %q", coperr.ErrAlreadyExists, member, groupID)
	default:
		return statusError(resp)
	}
}

// RemoveMember removes member from groupID. Fails with
// [coperr.ErrNotFound] if the group or the membership does not exist.
func (c *Client) RemoveMember(groupID, member string) error {
	resp, err := c.post([]string{"groups", groupID, "remove_member"}, memberRequest{Member: member})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("%w: %q in group %q", coperr.ErrNotFound, member, groupID)
	default:
		return statusError(resp)
	}
}

func statusError(resp *http.Response) error {
	return fmt.Errorf("%w: group server returned status %d", coperr.ErrUnknownGroup, resp.StatusCode)
}
