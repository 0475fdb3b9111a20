// askvision TUI - Ask a vision-capable local model a question, with or
// without an attached image, and export the answer.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/askvision-tui/internal/cli"
	"github.com/jeranaias/askvision-tui/internal/config"
	"github.com/jeranaias/askvision-tui/internal/export"
	"github.com/jeranaias/askvision-tui/internal/ollama"
	"github.com/jeranaias/askvision-tui/internal/prompt"
	"github.com/jeranaias/askvision-tui/internal/ui/ask"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI()
	case cli.CmdAsk:
		cli.HandleAsk(args)
	case cli.CmdRepl:
		cli.HandleRepl(args)
	case cli.CmdStatus:
		cli.HandleStatus(args)
	case cli.CmdPrompts:
		cli.HandlePrompts(args)
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	default:
		cli.PrintUsage()
		os.Exit(1)
	}
}

// runTUI starts the single-page Bubble Tea interface.
func runTUI() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	client := ollama.NewClientWithConfig(&ollama.ClientConfig{
		BaseURL:      cfg.ServerURL,
		Timeout:      time.Duration(cfg.TimeoutSecs) * time.Second,
		DefaultModel: cfg.Model,
	})

	registry := prompt.DefaultRegistry().Merge(cfg.Prompts)

	// Hot-reload pre-made prompts when the config file changes.
	// A missing or unwatchable config file just disables reloads.
	var reloads <-chan prompt.Registry
	if path, err := config.PathTOML(); err == nil {
		if watcher, werr := prompt.NewWatcher(path, 250*time.Millisecond); werr == nil {
			defer watcher.Close()
			reloads = watcher.Reloads()
		}
	}

	sink := &export.FileSink{Dir: cfg.ExportDir, OpenAfterSave: cfg.OpenAfterExport}

	m := ask.New(cfg, client, registry, sink, reloads)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
