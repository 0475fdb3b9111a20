// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prompt resolves the effective prompt sent to the model from the
// active prompt mode and the user's inputs.
package prompt

import (
	"errors"
	"fmt"
	"sort"
)

// =============================================================================
// PROMPT MODES
// =============================================================================

// Mode selects the strategy used to derive the effective prompt.
// Exactly one mode is active at a time.
type Mode int

const (
	// ModeClassic sends the raw question with no separate instruction text.
	ModeClassic Mode = iota

	// ModePreMade uses a named template from the registry.
	ModePreMade

	// ModeCustom uses free text supplied by the user.
	ModeCustom
)

// String returns the display name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeClassic:
		return "Classic"
	case ModePreMade:
		return "Pre-made"
	case ModeCustom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// =============================================================================
// REGISTRY
// =============================================================================

// KindDictionaryToCSV is the built-in pre-made prompt that asks the model for
// term/definition pairs. Results produced under this kind export as CSV.
const KindDictionaryToCSV = "dictionary-to-csv"

// dictionaryTemplate references "the user input" positionally: the raw
// question is appended after the template by the request builder.
const dictionaryTemplate = "You are a dictionary. For every term named in the user input below, " +
	"answer with exactly one line per term in the form: term; definition. " +
	"Keep definitions to a single sentence and add no other commentary."

// Registry is an open mapping from pre-made prompt kind to template text.
// New entries can be added (from the config file) without touching Resolve.
type Registry map[string]string

// DefaultRegistry returns the built-in pre-made prompts.
func DefaultRegistry() Registry {
	return Registry{
		KindDictionaryToCSV: dictionaryTemplate,
	}
}

// Merge overlays extra entries onto the registry and returns it.
// Existing kinds are overridden by the extra entries.
func (r Registry) Merge(extra map[string]string) Registry {
	for kind, template := range extra {
		r[kind] = template
	}
	return r
}

// Kinds returns the registered kinds in sorted order.
func (r Registry) Kinds() []string {
	kinds := make([]string, 0, len(r))
	for kind := range r {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// =============================================================================
// RESOLVER
// =============================================================================

// ErrUnknownPromptKind reports a pre-made kind missing from the registry.
// Defensive: the UI only offers registered kinds.
var ErrUnknownPromptKind = errors.New("unknown prompt kind")

// Resolve maps the active mode and user inputs to the effective prompt text.
// Pure and deterministic.
//
// Classic uses the raw question itself as the prompt. PreMade looks kind up
// in the registry. Custom returns customText verbatim, including the empty
// string; whether an empty custom prompt is acceptable is the caller's call.
func Resolve(mode Mode, kind, customText, question string, reg Registry) (string, error) {
	switch mode {
	case ModeClassic:
		return question, nil
	case ModePreMade:
		template, ok := reg[kind]
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrUnknownPromptKind, kind)
		}
		return template, nil
	case ModeCustom:
		return customText, nil
	default:
		return "", fmt.Errorf("%w: mode %d", ErrUnknownPromptKind, int(mode))
	}
}
