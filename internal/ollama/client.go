// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the Ollama client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeNotRunning
	ErrTypeTimeout
	ErrTypeConnection
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrNotRunning = &ClientError{Type: ErrTypeNotRunning, Message: "Ollama is not running"}
	ErrTimeout    = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
)

// IsNotRunning checks if an error indicates Ollama is not running.
func IsNotRunning(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeNotRunning
	}
	return errors.Is(err, ErrNotRunning)
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the Ollama client.
type ClientConfig struct {
	// BaseURL is the Ollama API base URL (default: http://127.0.0.1:11434)
	// Note: Uses explicit IPv4 address instead of localhost to avoid IPv6 resolution issues on Windows
	BaseURL string

	// Timeout for requests (default: 120s; vision models are slow to answer)
	Timeout time.Duration

	// DefaultModel to use if the request names none (default: "llama3.2-vision")
	DefaultModel string
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:      "http://127.0.0.1:11434",
		Timeout:      120 * time.Second,
		DefaultModel: "llama3.2-vision",
	}
}

// =============================================================================
// OUTCOMES
// =============================================================================

// OutcomeKind tags the three ways a completion call can resolve.
type OutcomeKind int

const (
	// OutcomeSuccess carries the model's answer text.
	OutcomeSuccess OutcomeKind = iota

	// OutcomeMalformed means the endpoint answered with an unexpected shape.
	OutcomeMalformed

	// OutcomeTransportFailure means the request never produced a usable
	// response (connection refused, timeout, non-2xx status).
	OutcomeTransportFailure
)

// malformedFallback is the fixed message shown for unexpected response shapes.
const malformedFallback = "The model returned a response that could not be understood."

// Outcome is the normalized result of one completion call. Exactly one
// outcome is produced per call, and exactly one text value reaches the user
// regardless of which kind occurred.
type Outcome struct {
	Kind OutcomeKind
	Text string // answer text (success) or failure message (transport)
}

// Display reduces the outcome to the single string shown to the user.
func (o Outcome) Display() string {
	switch o.Kind {
	case OutcomeSuccess:
		return o.Text
	case OutcomeMalformed:
		return malformedFallback
	default:
		return "Error: " + o.Text
	}
}

// OK reports whether the outcome carries a real answer.
func (o Outcome) OK() bool {
	return o.Kind == OutcomeSuccess
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the Ollama API.
//
// The Client is safe for concurrent use, though the app serializes
// submissions: at most one Ask is outstanding at a time.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a new Ollama client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new Ollama client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:11434"
	}
	if config.Timeout == 0 {
		config.Timeout = 120 * time.Second
	}
	if config.DefaultModel == "" {
		config.DefaultModel = "llama3.2-vision"
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// DefaultModel returns the model used when a request names none.
func (c *Client) DefaultModel() string {
	return c.config.DefaultModel
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// CheckRunning verifies that Ollama is reachable and running.
func (c *Client) CheckRunning(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL, nil)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return ErrNotRunning
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ClientError{
			Type:    ErrTypeConnection,
			Message: "unexpected status from Ollama: " + resp.Status,
		}
	}

	return nil
}

// ListModels retrieves all locally available models.
func (c *Client) ListModels(ctx context.Context) ([]ModelInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/api/tags", nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ErrNotRunning
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ClientError{
			Type:    ErrTypeInvalidResponse,
			Message: "failed to list models: " + resp.Status,
		}
	}

	var result listModelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return result.Models, nil
}

// =============================================================================
// COMPLETION
// =============================================================================

// Ask dispatches the assembled request and reduces every possible result to
// a single Outcome. The network round trip is the only suspension point, and
// no error escapes: transport and decode failures come back as outcomes so
// the caller always has exactly one display value.
func (c *Client) Ask(ctx context.Context, chatReq ChatRequest) Outcome {
	if chatReq.Model == "" {
		chatReq.Model = c.config.DefaultModel
	}

	body, err := json.Marshal(chatReq)
	if err != nil {
		return Outcome{Kind: OutcomeTransportFailure, Text: "failed to marshal request: " + err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return Outcome{Kind: OutcomeTransportFailure, Text: "failed to create request: " + err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Outcome{Kind: OutcomeTransportFailure, Text: ErrTimeout.Message}
		}
		return Outcome{Kind: OutcomeTransportFailure, Text: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Try to surface Ollama's own error message
		var ollamaErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&ollamaErr); err == nil && ollamaErr.Error != "" {
			return Outcome{Kind: OutcomeTransportFailure, Text: ollamaErr.Error}
		}
		return Outcome{Kind: OutcomeTransportFailure, Text: "chat request failed: " + resp.Status}
	}

	var result ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Outcome{Kind: OutcomeMalformed}
	}
	if result.Message == nil {
		return Outcome{Kind: OutcomeMalformed}
	}

	return Outcome{Kind: OutcomeSuccess, Text: result.Message.Content}
}
