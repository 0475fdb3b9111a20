// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export turns an answer into a downloadable artifact: plain text or
// CSV depending on the prompt mode that produced it.
package export

import (
	"errors"
	"strings"
	"time"

	"github.com/jeranaias/askvision-tui/internal/prompt"
)

// =============================================================================
// PLACEHOLDERS AND GUARD
// =============================================================================

// Placeholder strings shown before any real answer exists. Both are rejected
// by the export guard, and the clipboard copy action shares the same check.
const (
	PlaceholderAnswer     = "Your answer will appear here."
	PlaceholderNoQuestion = "Please enter a question first."
)

// ErrNothingToExport reports an export attempt before a real answer exists.
var ErrNothingToExport = errors.New("nothing to export yet")

// Exportable reports whether the result is a real answer rather than empty
// or one of the placeholder sentinels.
func Exportable(resultText string) bool {
	return resultText != "" &&
		resultText != PlaceholderAnswer &&
		resultText != PlaceholderNoQuestion
}

// =============================================================================
// ARTIFACT
// =============================================================================

// MIME types for the two export branches.
const (
	MimeCSV  = "text/csv;charset=utf-8"
	MimeText = "text/plain;charset=utf-8"
)

// Artifact is the exported file's content, MIME type, and filename, prior to
// the actual save action.
type Artifact struct {
	Bytes    []byte
	MimeType string
	Filename string
}

// =============================================================================
// FORMAT
// =============================================================================

// Format derives the artifact for the current result deterministically from
// the result text, the prompt mode that produced it, and the current instant.
// Pure: the save side effect lives behind ArtifactSink.
func Format(resultText string, mode prompt.Mode, kind string, now time.Time) (Artifact, error) {
	if !Exportable(resultText) {
		return Artifact{}, ErrNothingToExport
	}

	if mode == prompt.ModePreMade && kind == prompt.KindDictionaryToCSV {
		return Artifact{
			Bytes:    dictionaryCSV(resultText),
			MimeType: MimeCSV,
			Filename: "answer_" + timestampName(now) + ".csv",
		}, nil
	}

	return Artifact{
		Bytes:    []byte(resultText),
		MimeType: MimeText,
		Filename: "answer_" + timestampName(now) + ".txt",
	}, nil
}

// timestampName renders the instant as ISO-8601 with every ':' and '.'
// replaced by '-' to stay filesystem-safe on Windows and Unix alike.
func timestampName(now time.Time) string {
	iso := now.UTC().Format("2006-01-02T15:04:05.000Z")
	iso = strings.ReplaceAll(iso, ":", "-")
	return strings.ReplaceAll(iso, ".", "-")
}
