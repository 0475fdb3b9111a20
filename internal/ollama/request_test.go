// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ollama

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/jeranaias/askvision-tui/internal/prompt"
	"github.com/jeranaias/askvision-tui/internal/vision"
)

func TestBuildRequest_QuestionAlwaysPresent(t *testing.T) {
	const question = "define osmosis"
	reg := prompt.DefaultRegistry()

	tests := []struct {
		name   string
		mode   prompt.Mode
		kind   string
		custom string
	}{
		{"classic", prompt.ModeClassic, "", ""},
		{"premade", prompt.ModePreMade, prompt.KindDictionaryToCSV, ""},
		{"custom", prompt.ModeCustom, "", "Answer briefly."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			effective, err := prompt.Resolve(tc.mode, tc.kind, tc.custom, question, reg)
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}

			req := BuildRequest(effective, question, "llama3.2-vision", nil)

			if len(req.Messages) != 1 {
				t.Fatalf("messages = %d, want exactly 1", len(req.Messages))
			}
			if req.Messages[0].Role != "user" {
				t.Errorf("role = %q, want user", req.Messages[0].Role)
			}
			if !strings.Contains(req.Messages[0].Content, question) {
				t.Errorf("content %q does not contain the raw question", req.Messages[0].Content)
			}
			if req.Stream {
				t.Error("stream must always be false")
			}
		})
	}
}

func TestBuildRequest_ImagesOmittedWhenAbsent(t *testing.T) {
	req := BuildRequest("p", "q", "m", nil)

	if req.Images != nil {
		t.Errorf("Images = %v, want nil", req.Images)
	}

	// The wire format must omit the key entirely, not send an empty list.
	body, err := json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(body), `"images"`) {
		t.Errorf("serialized request %s must not contain an images field", body)
	}
}

func TestBuildRequest_SingleImageAttached(t *testing.T) {
	img := vision.EncodeBytes([]byte{0x89, 'P', 'N', 'G'})
	req := BuildRequest("p", "q", "m", img)

	if len(req.Images) != 1 {
		t.Fatalf("Images length = %d, want 1", len(req.Images))
	}
	if req.Images[0] != img.Payload {
		t.Error("attached payload does not match the encoded image")
	}
}
