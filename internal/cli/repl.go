// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// repl.go - Interactive readline loop for the askvision CLI.
//
// Each line is an independent submission: no conversation history is
// carried between turns, matching the single-page model of the TUI.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterh/liner"

	"github.com/jeranaias/askvision-tui/internal/config"
	"github.com/jeranaias/askvision-tui/internal/ollama"
	"github.com/jeranaias/askvision-tui/internal/prompt"
	"github.com/jeranaias/askvision-tui/internal/vision"
)

// inputCLI wraps liner with persistent history.
// USABILITY: Supports arrow keys for history navigation and line editing.
type inputCLI struct {
	line        *liner.State
	historyFile string
}

func newInputCLI() *inputCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	dir, err := config.Dir()
	if err != nil {
		dir = os.TempDir()
	}

	c := &inputCLI{
		line:        line,
		historyFile: filepath.Join(dir, "history"),
	}
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
	return c
}

func (c *inputCLI) readInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

func (c *inputCLI) close() {
	if err := os.MkdirAll(filepath.Dir(c.historyFile), 0755); err == nil {
		if f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			c.line.WriteHistory(f)
			f.Close()
		}
	}
	c.line.Close()
}

// replState holds the per-session toggles adjustable with slash commands.
type replState struct {
	mode      prompt.Mode
	kind      string
	custom    string
	imagePath string
}

// HandleRepl runs the interactive loop. Exits on /quit, ctrl+c, or EOF.
func HandleRepl(args []string) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	registry := prompt.DefaultRegistry().Merge(cfg.Prompts)
	client := ollama.NewClientWithConfig(&ollama.ClientConfig{
		BaseURL:      cfg.ServerURL,
		Timeout:      time.Duration(cfg.TimeoutSecs) * time.Second,
		DefaultModel: cfg.Model,
	})

	if err := client.CheckRunning(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: Ollama is not reachable at", cfg.ServerURL)
	}

	in := newInputCLI()
	defer in.close()

	st := replState{mode: prompt.ModeClassic, kind: prompt.KindDictionaryToCSV}

	fmt.Printf("askvision repl (model %s) - /help for commands, /quit to exit\n", cfg.Model)

	for {
		input, err := in.readInput("> ")
		if err != nil {
			// liner.ErrPromptAborted on ctrl+c, io.EOF on ctrl+d
			fmt.Println()
			return
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if handleReplCommand(input, &st, registry) {
				return
			}
			continue
		}

		effective, err := prompt.Resolve(st.mode, st.kind, st.custom, input, registry)
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}

		var img *vision.Encoded
		if st.imagePath != "" {
			img, err = vision.Encode(context.Background(), st.imagePath)
			if err != nil {
				fmt.Println("Error:", err)
				continue
			}
			if img.SuspiciouslyShort() {
				fmt.Println("Warning: attached image looks too small to be valid; sending anyway")
			}
		}

		outcome := client.Ask(context.Background(), ollama.BuildRequest(effective, input, cfg.Model, img))
		if outcome.OK() {
			renderMarkdown(outcome.Display())
		} else {
			fmt.Println(outcome.Display())
		}
	}
}

// handleReplCommand processes a slash command. Returns true to quit.
func handleReplCommand(input string, st *replState, registry prompt.Registry) bool {
	fields := strings.Fields(input)
	cmd := fields[0]
	arg := ""
	if len(fields) > 1 {
		arg = strings.Join(fields[1:], " ")
	}

	switch cmd {
	case "/quit", "/exit", "/q":
		return true
	case "/help":
		fmt.Println(`Commands:
  /mode classic|premade|custom   select prompt strategy
  /kind <name>                   pre-made prompt kind (implies premade)
  /prompt <text>                 custom prompt text (implies custom)
  /image <path>                  attach an image to each question
  /image                         clear the attached image
  /state                         show current settings
  /quit                          exit`)
	case "/mode":
		switch strings.ToLower(arg) {
		case "classic":
			st.mode = prompt.ModeClassic
		case "premade", "pre-made":
			st.mode = prompt.ModePreMade
		case "custom":
			st.mode = prompt.ModeCustom
		default:
			fmt.Println("Error: unknown mode", arg)
		}
	case "/kind":
		if arg == "" {
			for _, k := range registry.Kinds() {
				fmt.Println(" ", k)
			}
			break
		}
		st.kind = arg
		st.mode = prompt.ModePreMade
	case "/prompt":
		st.custom = arg
		st.mode = prompt.ModeCustom
	case "/image":
		st.imagePath = arg
		if arg == "" {
			fmt.Println("Image cleared")
		}
	case "/state":
		fmt.Println("  mode: ", st.mode)
		fmt.Println("  kind: ", st.kind)
		fmt.Println("  image:", st.imagePath)
	default:
		fmt.Println("Error: unknown command", cmd)
	}
	return false
}
