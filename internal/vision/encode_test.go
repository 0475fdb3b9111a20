// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// pngStub is a minimal valid PNG header, enough for MIME sniffing.
var pngStub = append(
	[]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A},
	bytes.Repeat([]byte{0x00}, 64)...,
)

func TestEncodeBytes(t *testing.T) {
	enc := EncodeBytes(pngStub)

	decoded, err := base64.StdEncoding.DecodeString(enc.Payload)
	if err != nil {
		t.Fatalf("payload is not valid base64: %v", err)
	}
	if !bytes.Equal(decoded, pngStub) {
		t.Error("payload does not round-trip to the original bytes")
	}
	if strings.HasPrefix(enc.Payload, "data:") {
		t.Error("payload must not carry a data-URL prefix")
	}
	if enc.MimeType != "image/png" {
		t.Errorf("MimeType = %q, want image/png", enc.MimeType)
	}
}

func TestEncode_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.png")
	if err := os.WriteFile(path, pngStub, 0644); err != nil {
		t.Fatal(err)
	}

	enc, err := Encode(context.Background(), path)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if enc.SuspiciouslyShort() {
		t.Error("a real image payload should pass the advisory length check")
	}
}

func TestEncode_MissingFile(t *testing.T) {
	_, err := Encode(context.Background(), filepath.Join(t.TempDir(), "absent.png"))
	if !errors.Is(err, ErrImageRead) {
		t.Errorf("err = %v, want ErrImageRead", err)
	}
}

func TestEncode_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Encode(ctx, "irrelevant.png")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestSuspiciouslyShort_Advisory(t *testing.T) {
	// A near-empty file still encodes; the check only flags it.
	enc := EncodeBytes([]byte{0x01})
	if !enc.SuspiciouslyShort() {
		t.Error("one-byte payload should be flagged")
	}
	if enc.Payload == "" {
		t.Error("flagged payload must still be usable")
	}
}
