// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single query command handler for the askvision CLI.
//
// Handles "askvision ask", which runs one submission through the same
// pipeline as the TUI and prints the answer to stdout.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jeranaias/askvision-tui/internal/config"
	"github.com/jeranaias/askvision-tui/internal/export"
	"github.com/jeranaias/askvision-tui/internal/ollama"
	"github.com/jeranaias/askvision-tui/internal/prompt"
	"github.com/jeranaias/askvision-tui/internal/vision"
)

// askOptions holds the parsed ask flags.
type askOptions struct {
	mode      prompt.Mode
	kind      string
	custom    string
	imagePath string
	model     string
	doExport  bool
	plain     bool
	question  string
}

func parseAskArgs(args []string) (askOptions, error) {
	opts := askOptions{
		mode: prompt.ModeClassic,
		kind: prompt.KindDictionaryToCSV,
	}

	var question []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		next := func() (string, error) {
			i++
			if i >= len(args) {
				return "", fmt.Errorf("flag %s needs a value", arg)
			}
			return args[i], nil
		}

		switch arg {
		case "-m", "--mode":
			v, err := next()
			if err != nil {
				return opts, err
			}
			switch strings.ToLower(v) {
			case "classic":
				opts.mode = prompt.ModeClassic
			case "premade", "pre-made":
				opts.mode = prompt.ModePreMade
			case "custom":
				opts.mode = prompt.ModeCustom
			default:
				return opts, fmt.Errorf("unknown mode %q", v)
			}
		case "-k", "--kind":
			v, err := next()
			if err != nil {
				return opts, err
			}
			opts.kind = v
			opts.mode = prompt.ModePreMade
		case "-p", "--prompt":
			v, err := next()
			if err != nil {
				return opts, err
			}
			opts.custom = v
			opts.mode = prompt.ModeCustom
		case "-i", "--image":
			v, err := next()
			if err != nil {
				return opts, err
			}
			opts.imagePath = v
		case "--model":
			v, err := next()
			if err != nil {
				return opts, err
			}
			opts.model = v
		case "-e", "--export":
			opts.doExport = true
		case "--plain":
			opts.plain = true
		default:
			question = append(question, arg)
		}
	}

	opts.question = strings.TrimSpace(strings.Join(question, " "))
	return opts, nil
}

// HandleAsk runs a one-shot submission. Exit code 1 on any failure.
func HandleAsk(args []string) {
	opts, err := parseAskArgs(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	if opts.question == "" {
		fmt.Fprintln(os.Stderr, "Error: no question given")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	if opts.model != "" {
		cfg.Model = opts.model
	}

	registry := prompt.DefaultRegistry().Merge(cfg.Prompts)
	effective, err := prompt.Resolve(opts.mode, opts.kind, opts.custom, opts.question, registry)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	var img *vision.Encoded
	if opts.imagePath != "" {
		img, err = vision.Encode(context.Background(), opts.imagePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		if img.SuspiciouslyShort() {
			fmt.Fprintln(os.Stderr, "Warning: attached image looks too small to be valid; sending anyway")
		}
	}

	client := ollama.NewClientWithConfig(&ollama.ClientConfig{
		BaseURL:      cfg.ServerURL,
		Timeout:      time.Duration(cfg.TimeoutSecs) * time.Second,
		DefaultModel: cfg.Model,
	})

	outcome := client.Ask(context.Background(), ollama.BuildRequest(effective, opts.question, cfg.Model, img))
	display := outcome.Display()

	if opts.plain || !outcome.OK() {
		fmt.Println(display)
	} else {
		renderMarkdown(display)
	}

	if !outcome.OK() {
		os.Exit(1)
	}

	if opts.doExport {
		artifact, err := export.Format(display, opts.mode, opts.kind, time.Now())
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		sink := &export.FileSink{Dir: cfg.ExportDir, OpenAfterSave: cfg.OpenAfterExport}
		path, err := sink.Save(artifact)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "Exported to", path)
	}
}
