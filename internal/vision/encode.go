// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package vision turns an attached image file into the base64 payload
// fragment carried in a chat request.
package vision

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrImageRead reports an attached image that could not be read.
// The current submission is aborted; no request is sent.
var ErrImageRead = errors.New("image could not be read")

// MinPayloadLen is the advisory lower bound on an encoded payload. A result
// shorter than this is almost certainly not a real image, but the request is
// still sent; callers surface a warning instead of blocking.
const MinPayloadLen = 64

// =============================================================================
// ENCODED IMAGE
// =============================================================================

// Encoded is the base64 payload fragment for one attached image, without any
// data-URL prefix, plus the sniffed MIME type.
type Encoded struct {
	Payload  string
	MimeType string
}

// SuspiciouslyShort reports whether the payload failed the advisory length
// check.
func (e *Encoded) SuspiciouslyShort() bool {
	return len(e.Payload) < MinPayloadLen
}

// =============================================================================
// ENCODING
// =============================================================================

// Encode reads the entire image file into memory and encodes it. This is the
// single suspension point of the encoder: the read either completes, fails
// with an ErrImageRead-wrapped error, or is abandoned via ctx.
func Encode(ctx context.Context, path string) (*Encoded, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrImageRead, path, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return EncodeBytes(data), nil
}

// EncodeBytes encodes an in-memory image. The MIME type is sniffed from the
// leading bytes rather than trusted from any declared type.
func EncodeBytes(data []byte) *Encoded {
	return &Encoded{
		Payload:  base64.StdEncoding.EncodeToString(data),
		MimeType: http.DetectContentType(data),
	}
}
