// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the state of the single in-flight submission cycle.
//
// The state machine is deliberately free of any rendering or transport
// concern so the transitions are testable on their own:
//
//	Idle → AwaitingCompletion → Idle                          (no image)
//	Idle → AwaitingImageEncode → AwaitingCompletion → Idle    (image attached)
//
// Every exit path, success or failure, lands back in Idle; nothing may leave
// the session stuck in flight.
package session

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/jeranaias/askvision-tui/internal/prompt"
)

// =============================================================================
// PHASES
// =============================================================================

// Phase is the position in the submission cycle.
type Phase int

const (
	// PhaseIdle means no submission is outstanding.
	PhaseIdle Phase = iota

	// PhaseAwaitingImageEncode means the attached image is being read.
	PhaseAwaitingImageEncode

	// PhaseAwaitingCompletion means the network round trip is outstanding.
	PhaseAwaitingCompletion
)

// String returns the phase name for status display.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingImageEncode:
		return "reading image"
	case PhaseAwaitingCompletion:
		return "waiting for model"
	default:
		return "unknown"
	}
}

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrRequestInFlight rejects a submit while another is outstanding.
	ErrRequestInFlight = errors.New("a request is already in flight")

	// ErrEmptyQuestion rejects a submit with no question text.
	ErrEmptyQuestion = errors.New("no question entered")
)

// =============================================================================
// SUBMISSION SNAPSHOT
// =============================================================================

// Submission is the immutable snapshot of session fields taken at submit
// time. Only the fields relevant to the active mode are captured, so stale
// text in inactive fields can never leak into a request.
type Submission struct {
	ID         string
	Question   string
	Mode       prompt.Mode
	PromptKind string
	CustomText string
	ImagePath  string
}

// HasImage reports whether this submission carries an attached image.
func (s Submission) HasImage() bool {
	return s.ImagePath != ""
}

// =============================================================================
// SESSION
// =============================================================================

// Session is the mutable aggregate behind the single page: the current
// inputs, the last display value, and the submission cycle phase. It is only
// ever touched from the single control sequence; no lock is needed.
type Session struct {
	Question     string
	Mode         prompt.Mode
	PromptKind   string
	CustomPrompt string
	ImagePath    string
	LastResult   string

	phase     Phase
	currentID string
}

// New returns an idle session showing the initial placeholder.
func New(initialResult string) *Session {
	return &Session{
		Mode:       prompt.ModeClassic,
		PromptKind: prompt.KindDictionaryToCSV,
		LastResult: initialResult,
	}
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// InFlight reports whether a submission is outstanding. True for the entire
// span from dispatch to outcome normalization.
func (s *Session) InFlight() bool {
	return s.phase != PhaseIdle
}

// =============================================================================
// TRANSITIONS
// =============================================================================

// Begin starts a submission cycle and returns the snapshot to act on. The
// snapshot's ID correlates the asynchronous replies that finish the cycle;
// replies carrying any other ID are stale and must be ignored.
func (s *Session) Begin() (Submission, error) {
	if s.InFlight() {
		return Submission{}, ErrRequestInFlight
	}
	if strings.TrimSpace(s.Question) == "" {
		return Submission{}, ErrEmptyQuestion
	}

	sub := Submission{
		ID:        uuid.NewString(),
		Question:  s.Question,
		Mode:      s.Mode,
		ImagePath: s.ImagePath,
	}
	// Mode-gated fields: read only what the active mode needs.
	switch s.Mode {
	case prompt.ModePreMade:
		sub.PromptKind = s.PromptKind
	case prompt.ModeCustom:
		sub.CustomText = s.CustomPrompt
	}

	s.currentID = sub.ID
	if sub.HasImage() {
		s.phase = PhaseAwaitingImageEncode
	} else {
		s.phase = PhaseAwaitingCompletion
	}
	return sub, nil
}

// ImageEncoded moves the cycle from the image read to the network round trip.
// Returns false for stale or out-of-phase replies, which leave the session
// untouched.
func (s *Session) ImageEncoded(id string) bool {
	if id != s.currentID || s.phase != PhaseAwaitingImageEncode {
		return false
	}
	s.phase = PhaseAwaitingCompletion
	return true
}

// Complete finishes the cycle with the normalized display value. Used by
// every terminal path: success, malformed body, transport failure, and the
// image-read abort. Returns false for stale replies.
func (s *Session) Complete(id, display string) bool {
	if id != s.currentID || s.phase == PhaseIdle {
		return false
	}
	s.LastResult = display
	s.phase = PhaseIdle
	s.currentID = ""
	return true
}
