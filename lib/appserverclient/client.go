// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package appserverclient

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/kakobtg/ChainOfProducts-project/lib/canon"
	"github.com/kakobtg/ChainOfProducts-project/lib/coperr"
	"github.com/kakobtg/ChainOfProducts-project/lib/envelope"
)

// Client talks to an application-server collaborator over HTTP via
// its /transactions routes.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// New returns a Client targeting baseURL (e.g.
// "https://app-server.internal"), logging request summaries via
// slog.Default().
func New(baseURL string) *Client {
	return NewWithLogger(baseURL, slog.Default())
}

// NewWithLogger returns a Client targeting baseURL that logs request
// summaries (method, path, status, latency) at slog.LevelDebug via
// logger rather than the default logger. Never logs envelope or
// share-record bodies, which are opaque ciphertext or signed
// disclosures.
func NewWithLogger(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

func (c *Client) logRequest(method, endpoint string, status int, start time.Time) {
	c.logger.Debug("appserverclient request",
		"method", method, "url", endpoint, "status", status,
		"latency_ms", time.Since(start).Milliseconds())
}

func (c *Client) endpoint(segments ...string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: invalid application-server base URL: %v", coperr.ErrKeyStoreFailure, err)
	}
	u.Path = path.Join(append([]string{u.Path}, segments...)...)
	return u.String(), nil
}

// transactionRequest is the POST /transactions body, with the
// protected_document field holding the envelope's canonical JSON
// encoding rather than an arbitrary dict.
type transactionRequest struct {
	ProtectedDocument json.RawMessage `json:"protected_document"`
}

// Store submits e to the application server as a new transaction.
// Fails with [coperr.ErrAlreadyExists] if e.TxID is already known.
func (c *Client) Store(e envelope.Envelope) error {
	body, err := canon.Marshal(e)
	if err != nil {
		return err
	}

	endpoint, err := c.endpoint("transactions")
	if err != nil {
		return err
	}

	payload, err := json.Marshal(transactionRequest{ProtectedDocument: body})
	if err != nil {
		return fmt.Errorf("%w: encoding transaction request: %v", coperr.ErrKeyStoreFailure, err)
	}

	start := time.Now()
	resp, err := c.client.Post(endpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: storing transaction: %v", coperr.ErrKeyStoreFailure, err)
	}
	defer resp.Body.Close()
	c.logRequest("POST", endpoint, resp.StatusCode, start)

	switch resp.StatusCode {
	case http.StatusCreated, http.StatusOK:
		return nil
	case http.StatusConflict:
		return fmt.Errorf("%w: transaction %x already exists", coperr.ErrAlreadyExists, e.TxID)
	default:
		return statusError(resp)
	}
}

type transactionResponse struct {
	Transaction       json.RawMessage   `json:"transaction"`
	ShareRecords      []json.RawMessage `json:"share_records"`
	GroupShareRecords []json.RawMessage `json:"group_share_records"`
}

// Fetch retrieves the envelope stored for txID, re-validating that the
// bytes the server returned are themselves canonical.
func (c *Client) Fetch(txID []byte) (envelope.Envelope, error) {
	endpoint, err := c.endpoint("transactions", fmt.Sprintf("%x", txID))
	if err != nil {
		return envelope.Envelope{}, err
	}

	start := time.Now()
	resp, err := c.client.Get(endpoint)
	if err != nil {
		return envelope.Envelope{}, fmt.Errorf("%w: fetching transaction: %v", coperr.ErrKeyStoreFailure, err)
	}
	defer resp.Body.Close()
	c.logRequest("GET", endpoint, resp.StatusCode, start)

	if resp.StatusCode == http.StatusNotFound {
		return envelope.Envelope{}, fmt.Errorf("%w: transaction %x", coperr.ErrNotFound, txID)
	}
	if resp.StatusCode != http.StatusOK {
		return envelope.Envelope{}, statusError(resp)
	}

	var decoded transactionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return envelope.Envelope{}, fmt.Errorf("%w: decoding transaction response: %v", coperr.ErrKeyStoreFailure, err)
	}

	return envelope.Parse(decoded.Transaction)
}

// buyerSignRequest is the POST .../buyer_sign body.
type buyerSignRequest struct {
	BuyerSignature string `json:"buyer_signature"`
}

// SubmitBuyerSignature records a buyer's signature against txID.
// Fails with [coperr.ErrAlreadyExists] if the transaction is already
// buyer-signed.
func (c *Client) SubmitBuyerSignature(txID []byte, buyerSignature []byte) error {
	endpoint, err := c.endpoint("transactions", fmt.Sprintf("%x", txID), "buyer_sign")
	if err != nil {
		return err
	}

	payload, err := json.Marshal(buyerSignRequest{BuyerSignature: base64.StdEncoding.EncodeToString(buyerSignature)})
	if err != nil {
		return fmt.Errorf("%w: encoding buyer-sign request: %v", coperr.ErrKeyStoreFailure, err)
	}

	start := time.Now()
	resp, err := c.client.Post(endpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: submitting buyer signature: %v", coperr.ErrKeyStoreFailure, err)
	}
	defer resp.Body.Close()
	c.logRequest("POST", endpoint, resp.StatusCode, start)

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("%w: transaction %x", coperr.ErrNotFound, txID)
	case http.StatusConflict:
		return fmt.Errorf("%w: transaction %x already buyer-signed", coperr.ErrAlreadyExists, txID)
	default:
		return statusError(resp)
	}
}

// shareRequest is the POST .../addenda body: the ShareRecord plus
// (for a direct share) the fresh WrappedKey it authenticates.
type shareRequest struct {
	ShareRecord json.RawMessage `json:"share_record"`
	Wrap        json.RawMessage `json:"wrap,omitempty"`
	GroupWrap   json.RawMessage `json:"group_wrap,omitempty"`
}

// SubmitAddendum appends addendum to txID's envelope on the server.
// Direct and group addenda share one wire envelope; the server keys
// off which of wrap/group_wrap is present.
func (c *Client) SubmitAddendum(txID []byte, addendum envelope.Addendum) error {
	endpoint, err := c.endpoint("transactions", fmt.Sprintf("%x", txID), "addenda")
	if err != nil {
		return err
	}

	shareRecordBytes, err := canon.Marshal(addendum.ShareRecord)
	if err != nil {
		return err
	}
	req := shareRequest{ShareRecord: shareRecordBytes}
	if addendum.Wrap != nil {
		wrapBytes, err := canon.Marshal(*addendum.Wrap)
		if err != nil {
			return err
		}
		req.Wrap = wrapBytes
	}
	if addendum.GroupWrap != nil {
		groupWrapBytes, err := canon.Marshal(*addendum.GroupWrap)
		if err != nil {
			return err
		}
		req.GroupWrap = groupWrapBytes
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("%w: encoding addendum request: %v", coperr.ErrKeyStoreFailure, err)
	}

	start := time.Now()
	resp, err := c.client.Post(endpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: submitting addendum: %v", coperr.ErrKeyStoreFailure, err)
	}
	defer resp.Body.Close()
	c.logRequest("POST", endpoint, resp.StatusCode, start)

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("%w: transaction %x", coperr.ErrNotFound, txID)
	default:
		return statusError(resp)
	}
}

// ShareRecords retrieves every ShareRecord submitted against txID, for
// lib/share.Audit to verify.
func (c *Client) ShareRecords(txID []byte) ([]envelope.ShareRecord, error) {
	endpoint, err := c.endpoint("transactions", fmt.Sprintf("%x", txID), "shares")
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.client.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching share records: %v", coperr.ErrKeyStoreFailure, err)
	}
	defer resp.Body.Close()
	c.logRequest("GET", endpoint, resp.StatusCode, start)

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var decoded struct {
		ShareRecords []json.RawMessage `json:"share_records"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: decoding share records response: %v", coperr.ErrKeyStoreFailure, err)
	}

	records := make([]envelope.ShareRecord, 0, len(decoded.ShareRecords))
	for _, raw := range decoded.ShareRecords {
		var record envelope.ShareRecord
		if err := canon.Unmarshal(raw, &record); err != nil {
			return nil, fmt.Errorf("%w: decoding share record: %v", coperr.ErrMalformed, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("%w: application server returned status %d: %s", coperr.ErrKeyStoreFailure, resp.StatusCode, body)
}
