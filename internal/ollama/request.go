// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ollama

import "github.com/jeranaias/askvision-tui/internal/vision"

// promptSeparator sits between the effective prompt and the raw question.
const promptSeparator = "\n\n"

// BuildRequest assembles the request body from the effective prompt, the raw
// question, and an optional encoded image.
//
// The content echoes the raw question after the effective prompt even when
// the prompt already is the question (Classic mode): pre-made templates
// reference "the user input" positionally and rely on it following them.
func BuildRequest(effectivePrompt, rawQuestion, model string, image *vision.Encoded) ChatRequest {
	req := ChatRequest{
		Model:    model,
		Messages: []Message{NewUserMessage(effectivePrompt + promptSeparator + rawQuestion)},
		Stream:   false,
	}
	if image != nil {
		req.Images = []string{image.Payload}
	}
	return req
}
