// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ask provides the single-page question view for the TUI.
//
// This file defines the Bubble Tea message types used by the view. All carry
// the submission ID they belong to where relevant, so stale replies from an
// abandoned cycle can be ignored.
package ask

import (
	"github.com/jeranaias/askvision-tui/internal/ollama"
	"github.com/jeranaias/askvision-tui/internal/prompt"
	"github.com/jeranaias/askvision-tui/internal/vision"
)

// ImageEncodedMsg delivers the result of the asynchronous image read.
type ImageEncodedMsg struct {
	ID      string
	Encoded *vision.Encoded
	Err     error
}

// CompletionMsg delivers the normalized outcome of the network round trip.
type CompletionMsg struct {
	ID      string
	Outcome ollama.Outcome
}

// OllamaStatusMsg reports the startup health check.
type OllamaStatusMsg struct {
	Running bool
	Err     error
}

// ExportDoneMsg reports the artifact save.
type ExportDoneMsg struct {
	Path string
	Err  error
}

// CopyDoneMsg reports the clipboard write.
type CopyDoneMsg struct {
	Err error
}

// RegistryReloadedMsg delivers a freshly loaded prompt registry after the
// config file changed on disk.
type RegistryReloadedMsg struct {
	Registry prompt.Registry
}
