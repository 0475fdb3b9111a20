// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// prompts.go - Prompt registry listing command for the askvision CLI.
package cli

import (
	"fmt"
	"os"

	"github.com/jeranaias/askvision-tui/internal/config"
	"github.com/jeranaias/askvision-tui/internal/prompt"
	"github.com/jeranaias/askvision-tui/internal/util"
)

// HandlePrompts lists the pre-made prompt kinds, defaults merged with
// any [prompts] entries from the config file.
func HandlePrompts(args []string) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	registry := prompt.DefaultRegistry().Merge(cfg.Prompts)

	fmt.Println("Pre-made prompt kinds:")
	for _, kind := range registry.Kinds() {
		fmt.Printf("  %-20s %s\n", kind, util.TruncateRunes(util.FirstLine(registry[kind]), 56))
	}
}
