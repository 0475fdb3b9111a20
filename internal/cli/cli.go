// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the non-TUI command surface of askvision.
package cli

import (
	"os"
	"strings"
)

// Version information (set at build time)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command identifies the invoked subcommand.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdRepl
	CmdStatus
	CmdPrompts
	CmdVersion
	CmdHelp
)

// Parse inspects os.Args and returns the command plus its remaining
// arguments. No arguments defaults to the TUI.
func Parse() (Command, []string) {
	args := os.Args[1:]
	if len(args) == 0 {
		return CmdTUI, nil
	}

	cmd := strings.ToLower(args[0])
	rest := args[1:]

	switch cmd {
	case "tui":
		return CmdTUI, rest
	case "ask":
		return CmdAsk, rest
	case "repl", "chat":
		return CmdRepl, rest
	case "status", "s":
		return CmdStatus, rest
	case "prompts":
		return CmdPrompts, rest
	case "version", "-v", "--version":
		return CmdVersion, rest
	case "help", "-h", "--help":
		return CmdHelp, rest
	default:
		// Bare text is treated as a one-shot question.
		return CmdAsk, args
	}
}

const usage = `askvision - ask a local vision model, export the answer

Usage:
  askvision                 Start the TUI
  askvision ask [flags] Q   Ask a single question
  askvision repl            Interactive loop; each line is one question
  askvision status          Check the Ollama server and model
  askvision prompts         List pre-made prompt kinds
  askvision version         Print version information

Ask flags:
  -m, --mode MODE     classic (default), premade, custom
  -k, --kind KIND     Pre-made prompt kind (default: dictionary-to-csv)
  -p, --prompt TEXT   Custom prompt text (implies --mode custom)
  -i, --image PATH    Attach an image file
  -e, --export        Export the answer after printing it
  --model NAME        Override the configured model
  --plain             Print the raw answer without markdown rendering
`

// PrintUsage writes the usage text to stdout.
func PrintUsage() {
	os.Stdout.WriteString(usage)
}

// PrintVersion writes the build information to stdout.
func PrintVersion() {
	os.Stdout.WriteString("askvision " + Version + " (" + GitCommit + ", " + BuildDate + ")\n")
}
