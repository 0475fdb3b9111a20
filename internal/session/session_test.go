// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"errors"
	"testing"

	"github.com/jeranaias/askvision-tui/internal/prompt"
)

func newReady() *Session {
	s := New("placeholder")
	s.Question = "define osmosis"
	return s
}

// =============================================================================
// TRANSITION TESTS
// =============================================================================

func TestBegin_NoImage(t *testing.T) {
	s := newReady()

	sub, err := s.Begin()
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	if s.Phase() != PhaseAwaitingCompletion {
		t.Errorf("phase = %v, want AwaitingCompletion", s.Phase())
	}
	if !s.InFlight() {
		t.Error("InFlight must be true from dispatch onward")
	}
	if sub.HasImage() {
		t.Error("no image was attached")
	}
	if sub.ID == "" {
		t.Error("submission must carry a correlation ID")
	}
}

func TestBegin_WithImage(t *testing.T) {
	s := newReady()
	s.ImagePath = "/tmp/cat.png"

	sub, err := s.Begin()
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	if s.Phase() != PhaseAwaitingImageEncode {
		t.Errorf("phase = %v, want AwaitingImageEncode", s.Phase())
	}

	if !s.ImageEncoded(sub.ID) {
		t.Fatal("ImageEncoded rejected the current submission")
	}
	if s.Phase() != PhaseAwaitingCompletion {
		t.Errorf("phase = %v, want AwaitingCompletion after encode", s.Phase())
	}

	if !s.Complete(sub.ID, "answer") {
		t.Fatal("Complete rejected the current submission")
	}
	if s.InFlight() {
		t.Error("InFlight must be false after completion")
	}
	if s.LastResult != "answer" {
		t.Errorf("LastResult = %q", s.LastResult)
	}
}

func TestBegin_RejectsWhileInFlight(t *testing.T) {
	s := newReady()
	if _, err := s.Begin(); err != nil {
		t.Fatal(err)
	}

	_, err := s.Begin()
	if !errors.Is(err, ErrRequestInFlight) {
		t.Errorf("err = %v, want ErrRequestInFlight", err)
	}
}

func TestBegin_RejectsEmptyQuestion(t *testing.T) {
	s := New("placeholder")
	s.Question = "   \n\t"

	_, err := s.Begin()
	if !errors.Is(err, ErrEmptyQuestion) {
		t.Errorf("err = %v, want ErrEmptyQuestion", err)
	}
	if s.InFlight() {
		t.Error("a rejected submit must not enter flight")
	}
}

func TestComplete_EveryExitPathResetsInFlight(t *testing.T) {
	displays := []string{
		"real answer",
		"Error: connection refused",
		"The model returned a response that could not be understood.",
	}

	for _, display := range displays {
		s := newReady()
		sub, err := s.Begin()
		if err != nil {
			t.Fatal(err)
		}
		s.Complete(sub.ID, display)
		if s.InFlight() {
			t.Errorf("display %q left the session in flight", display)
		}
		if s.LastResult != display {
			t.Errorf("LastResult = %q, want %q", s.LastResult, display)
		}
	}
}

func TestStaleRepliesAreIgnored(t *testing.T) {
	s := newReady()
	sub, err := s.Begin()
	if err != nil {
		t.Fatal(err)
	}

	if s.ImageEncoded(sub.ID) {
		t.Error("encode reply without an image phase must be rejected")
	}
	if s.Complete("some-old-id", "stale") {
		t.Error("stale completion must be rejected")
	}
	if s.LastResult == "stale" {
		t.Error("stale completion must not overwrite state")
	}

	if !s.Complete(sub.ID, "fresh") {
		t.Error("the real completion must still land")
	}
}

// =============================================================================
// STALE FIELD HYGIENE
// =============================================================================

func TestBegin_SnapshotsOnlyActiveModeFields(t *testing.T) {
	s := newReady()
	s.CustomPrompt = "stale custom text"
	s.PromptKind = prompt.KindDictionaryToCSV

	s.Mode = prompt.ModeClassic
	sub, err := s.Begin()
	if err != nil {
		t.Fatal(err)
	}
	if sub.CustomText != "" || sub.PromptKind != "" {
		t.Errorf("classic snapshot leaked inactive fields: %+v", sub)
	}
	s.Complete(sub.ID, "x")

	s.Mode = prompt.ModeCustom
	sub, err = s.Begin()
	if err != nil {
		t.Fatal(err)
	}
	if sub.CustomText != "stale custom text" {
		t.Error("custom mode must capture the custom text")
	}
	if sub.PromptKind != "" {
		t.Error("custom snapshot leaked the pre-made kind")
	}
}
