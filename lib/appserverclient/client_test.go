// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package appserverclient

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kakobtg/ChainOfProducts-project/lib/canon"
	"github.com/kakobtg/ChainOfProducts-project/lib/coperr"
	"github.com/kakobtg/ChainOfProducts-project/lib/envelope"
)

func sampleEnvelope() envelope.Envelope {
	return envelope.Envelope{
		Buyer:             "Lays Chips",
		ContentCiphertext: []byte{1, 2, 3},
		ContentHash:       []byte{4, 5, 6},
		ContentNonce:      []byte{7, 8, 9},
		DirectRecipients:  []envelope.WrappedKey{},
		GroupRecipients:   []envelope.GroupWrapSet{},
		Seller:            "Ching Chong Extractions",
		SellerSignature:   []byte{10, 11, 12},
		TxID:              []byte{0xAA, 0xBB},
		Version:           envelope.Version,
	}
}

func TestClient_StoreThenFetch(t *testing.T) {
	env := sampleEnvelope()
	stored := false

	mux := http.NewServeMux()
	mux.HandleFunc("/transactions", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method %s", r.Method)
		}
		stored = true
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("/transactions/aabb", func(w http.ResponseWriter, r *http.Request) {
		body, err := canon.Marshal(env)
		if err != nil {
			t.Fatalf("canon.Marshal: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"transaction":         json.RawMessage(body),
			"share_records":       []any{},
			"group_share_records": []any{},
		})
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	client := New(server.URL)

	if err := client.Store(env); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if !stored {
		t.Fatal("server never received a POST /transactions")
	}

	got, err := client.Fetch(env.TxID)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got.Seller != env.Seller || got.Buyer != env.Buyer {
		t.Fatalf("Fetch = %+v, want seller/buyer to match %+v", got, env)
	}
}

func TestClient_StoreConflict(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/transactions", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := New(server.URL)
	err := client.Store(sampleEnvelope())
	if !errors.Is(err, coperr.ErrAlreadyExists) {
		t.Fatalf("Store = %v, want ErrAlreadyExists", err)
	}
}

func TestClient_FetchNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/transactions/aabb", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := New(server.URL)
	_, err := client.Fetch([]byte{0xAA, 0xBB})
	if !errors.Is(err, coperr.ErrNotFound) {
		t.Fatalf("Fetch = %v, want ErrNotFound", err)
	}
}

func TestClient_SubmitAddendum(t *testing.T) {
	var receivedPath string
	var received shareRequest

	mux := http.NewServeMux()
	mux.HandleFunc("/transactions/aabb/addenda", func(w http.ResponseWriter, r *http.Request) {
		receivedPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decoding addendum request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := New(server.URL)
	addendum := envelope.Addendum{
		ShareRecord: envelope.ShareRecord{
			DisclosedTo: "Auditor Corp",
			Kind:        envelope.ShareDirect,
			Sharer:      "Lays Chips",
			Signature:   []byte{1, 2, 3},
			Timestamp:   "2026-08-03T00:00:00Z",
			TxID:        []byte{0xAA, 0xBB},
		},
		Wrap: &envelope.WrappedKey{
			Ciphertext:      []byte{9, 9, 9},
			EphemeralPublic: []byte{8, 8, 8},
			RecipientName:   "Auditor Corp",
			Nonce:           []byte{7, 7, 7},
		},
	}

	if err := client.SubmitAddendum([]byte{0xAA, 0xBB}, addendum); err != nil {
		t.Fatalf("SubmitAddendum: %v", err)
	}
	if receivedPath != "/transactions/aabb/addenda" {
		t.Fatalf("received path = %q", receivedPath)
	}
	if len(received.ShareRecord) == 0 || len(received.Wrap) == 0 {
		t.Fatal("server did not receive both share_record and wrap")
	}
}

func TestClient_ShareRecords(t *testing.T) {
	record := envelope.ShareRecord{
		DisclosedTo: "Auditor Corp",
		Kind:        envelope.ShareDirect,
		Sharer:      "Lays Chips",
		Signature:   []byte{1, 2, 3},
		Timestamp:   "2026-08-03T00:00:00Z",
		TxID:        []byte{0xAA, 0xBB},
	}
	recordBytes, err := canon.Marshal(record)
	if err != nil {
		t.Fatalf("canon.Marshal: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/transactions/aabb/shares", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"share_records": []json.RawMessage{recordBytes},
		})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := New(server.URL)
	records, err := client.ShareRecords([]byte{0xAA, 0xBB})
	if err != nil {
		t.Fatalf("ShareRecords: %v", err)
	}
	if len(records) != 1 || records[0].Sharer != "Lays Chips" {
		t.Fatalf("ShareRecords = %+v, want one record from Lays Chips", records)
	}
}
