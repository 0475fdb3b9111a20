// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Connectivity check command for the askvision CLI.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jeranaias/askvision-tui/internal/config"
	"github.com/jeranaias/askvision-tui/internal/ollama"
)

// HandleStatus reports whether the Ollama server is reachable and
// whether the configured model is available. Exit code 1 when the
// server is down.
func HandleStatus(args []string) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	client := ollama.NewClientWithConfig(&ollama.ClientConfig{
		BaseURL:      cfg.ServerURL,
		Timeout:      time.Duration(cfg.TimeoutSecs) * time.Second,
		DefaultModel: cfg.Model,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	fmt.Println("Server: ", cfg.ServerURL)
	fmt.Println("Model:  ", cfg.Model)

	if err := client.CheckRunning(ctx); err != nil {
		fmt.Println("Status:  not reachable")
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	fmt.Println("Status:  running")

	models, err := client.ListModels(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning: could not list models:", err)
		return
	}

	found := false
	fmt.Println("Available models:")
	for _, m := range models {
		marker := "  "
		if m.Name == cfg.Model {
			marker = "* "
			found = true
		}
		fmt.Printf("  %s%s\n", marker, m.Name)
	}
	if !found {
		fmt.Printf("Warning: configured model %q is not installed (try: ollama pull %s)\n", cfg.Model, cfg.Model)
	}
}
