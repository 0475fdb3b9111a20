// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ask

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/askvision-tui/internal/export"
	"github.com/jeranaias/askvision-tui/internal/ollama"
	"github.com/jeranaias/askvision-tui/internal/prompt"
	"github.com/jeranaias/askvision-tui/internal/vision"
)

// =============================================================================
// ASYNC COMMANDS
// =============================================================================

// encodeImageCmd reads and encodes the attached image off the UI loop.
func encodeImageCmd(id, path string) tea.Cmd {
	return func() tea.Msg {
		enc, err := vision.Encode(context.Background(), path)
		return ImageEncodedMsg{ID: id, Encoded: enc, Err: err}
	}
}

// askCmd dispatches the completion request. The client already normalizes
// every failure into an Outcome, so this command cannot fail.
func askCmd(client *ollama.Client, id string, req ollama.ChatRequest) tea.Cmd {
	return func() tea.Msg {
		return CompletionMsg{ID: id, Outcome: client.Ask(context.Background(), req)}
	}
}

// checkOllamaCmd pings the server once at startup.
func checkOllamaCmd(client *ollama.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		err := client.CheckRunning(ctx)
		return OllamaStatusMsg{Running: err == nil, Err: err}
	}
}

// exportCmd saves the artifact through the sink.
func exportCmd(sink export.ArtifactSink, a export.Artifact) tea.Cmd {
	return func() tea.Msg {
		path, err := sink.Save(a)
		return ExportDoneMsg{Path: path, Err: err}
	}
}

// copyCmd writes the result text to the system clipboard.
func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return CopyDoneMsg{Err: clipboard.WriteAll(text)}
	}
}

// waitForReload blocks on the registry watcher until the next reload. The
// update loop re-issues this command after each delivery.
func waitForReload(reloads <-chan prompt.Registry) tea.Cmd {
	return func() tea.Msg {
		reg, ok := <-reloads
		if !ok {
			return nil
		}
		return RegistryReloadedMsg{Registry: reg}
	}
}
