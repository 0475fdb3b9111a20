// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama provides the HTTP client for the local Ollama chat endpoint.
package ollama

import "time"

// =============================================================================
// REQUEST TYPES
// =============================================================================

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`    // "user", "assistant", "system"
	Content string `json:"content"` // The message content
}

// ChatRequest is the request body for the /api/chat endpoint.
//
// Images is base64 without a data-URL prefix. When no image is attached the
// field is omitted entirely rather than sent as an empty list: the endpoint
// treats an empty list differently from a missing field. Stream is always
// false here; no partial outcomes are produced.
type ChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Images   []string  `json:"images,omitempty"`
	Stream   bool      `json:"stream"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// ChatResponse is the response from the /api/chat endpoint. Only
// message.content is load-bearing; a body without it is treated as malformed.
type ChatResponse struct {
	Model         string    `json:"model"`
	CreatedAt     time.Time `json:"created_at"`
	Message       *Message  `json:"message"`
	Done          bool      `json:"done"`
	TotalDuration int64     `json:"total_duration,omitempty"` // nanoseconds
	EvalCount     int       `json:"eval_count,omitempty"`     // tokens generated
}

// apiError is the error body Ollama returns on non-2xx statuses.
type apiError struct {
	Error string `json:"error"`
}

// ModelInfo describes one locally available model.
type ModelInfo struct {
	Name       string    `json:"name"`
	ModifiedAt time.Time `json:"modified_at"`
	Size       int64     `json:"size"`
}

// listModelsResponse is the response from the /api/tags endpoint.
type listModelsResponse struct {
	Models []ModelInfo `json:"models"`
}

// =============================================================================
// HELPERS
// =============================================================================

// NewUserMessage creates a new user message.
func NewUserMessage(content string) Message {
	return Message{Role: "user", Content: content}
}
