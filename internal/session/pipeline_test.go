// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jeranaias/askvision-tui/internal/ollama"
	"github.com/jeranaias/askvision-tui/internal/prompt"
	"github.com/jeranaias/askvision-tui/internal/session"
)

// submit drives one full cycle against a real HTTP server: resolve, build,
// dispatch, normalize, store.
func submit(t *testing.T, s *session.Session, client *ollama.Client) ollama.ChatRequest {
	t.Helper()

	sub, err := s.Begin()
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	effective, err := prompt.Resolve(sub.Mode, sub.PromptKind, sub.CustomText, sub.Question, prompt.DefaultRegistry())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	req := ollama.BuildRequest(effective, sub.Question, "llama3.2-vision", nil)
	outcome := client.Ask(context.Background(), req)
	s.Complete(sub.ID, outcome.Display())
	return req
}

func TestPipeline_ClassicNoImage(t *testing.T) {
	var received ollama.ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
		json.NewEncoder(w).Encode(map[string]any{
			"message": map[string]string{"role": "assistant", "content": "Water moves across membranes."},
		})
	}))
	defer srv.Close()

	s := session.New("placeholder")
	s.Question = "define osmosis"
	s.Mode = prompt.ModeClassic

	submit(t, s, ollama.NewClientWithConfig(&ollama.ClientConfig{BaseURL: srv.URL}))

	if len(received.Messages) != 1 {
		t.Fatalf("server saw %d messages, want 1", len(received.Messages))
	}
	if !strings.Contains(received.Messages[0].Content, "define osmosis") {
		t.Errorf("content %q does not contain the question", received.Messages[0].Content)
	}
	if received.Images != nil {
		t.Error("no image attached, images field must be absent")
	}
	if s.LastResult != "Water moves across membranes." {
		t.Errorf("LastResult = %q", s.LastResult)
	}
	if s.InFlight() {
		t.Error("session must return to idle")
	}
}

func TestPipeline_TransportFailureStoredAndIdle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close() // every request now fails at the connection level

	s := session.New("placeholder")
	s.Question = "define osmosis"

	submit(t, s, ollama.NewClientWithConfig(&ollama.ClientConfig{BaseURL: url}))

	if !strings.HasPrefix(s.LastResult, "Error: ") {
		t.Errorf("LastResult = %q, want the failure message", s.LastResult)
	}
	if s.InFlight() {
		t.Error("inFlight must reset on the failure path")
	}
}
