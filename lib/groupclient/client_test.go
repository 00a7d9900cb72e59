// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package groupclient

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kakobtg/ChainOfProducts-project/lib/coperr"
)

func TestClient_CreateGroup(t *testing.T) {
	var received groupCreateRequest

	mux := http.NewServeMux()
	mux.HandleFunc("/groups/create", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := New(server.URL)
	if err := client.CreateGroup("tech_partners", []string{"Factory A", "Factory B"}); err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	if received.GroupID != "tech_partners" || len(received.Members) != 2 {
		t.Fatalf("received = %+v", received)
	}
}

func TestClient_CreateGroup_AlreadyExists(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/groups/create", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := New(server.URL)
	err := client.CreateGroup("tech_partners", nil)
	if !errors.Is(err, coperr.ErrAlreadyExists) {
		t.Fatalf("CreateGroup = %v, want ErrAlreadyExists", err)
	}
}

func TestClient_AddMember(t *testing.T) {
	var path string
	var received memberRequest

	mux := http.NewServeMux()
	mux.HandleFunc("/groups/tech_partners/add_member", func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusOK)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := New(server.URL)
	if err := client.AddMember("tech_partners", "Factory C"); err != nil {
		t.Fatalf("AddMember: %v", err)
	}
	if path != "/groups/tech_partners/add_member" || received.Member != "Factory C" {
		t.Fatalf("path=%q received=%+v", path, received)
	}
}

func TestClient_AddMember_GroupNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/groups/missing/add_member", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := New(server.URL)
	err := client.AddMember("missing", "Factory C")
	if !errors.Is(err, coperr.ErrNotFound) {
		t.Fatalf("AddMember = %v, want ErrNotFound", err)
	}
}

func TestClient_RemoveMember(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/groups/tech_partners/remove_member", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := New(server.URL)
	if err := client.RemoveMember("tech_partners", "Factory A"); err != nil {
		t.Fatalf("RemoveMember: %v", err)
	}
}

func TestClient_RemoveMember_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/groups/tech_partners/remove_member", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := New(server.URL)
	err := client.RemoveMember("tech_partners", "Nobody")
	if !errors.Is(err, coperr.ErrNotFound) {
		t.Fatalf("RemoveMember = %v, want ErrNotFound", err)
	}
}
