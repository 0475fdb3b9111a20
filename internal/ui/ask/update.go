// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ask

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/askvision-tui/internal/export"
	"github.com/jeranaias/askvision-tui/internal/ollama"
	"github.com/jeranaias/askvision-tui/internal/prompt"
	"github.com/jeranaias/askvision-tui/internal/session"
	"github.com/jeranaias/askvision-tui/internal/util"
	"github.com/jeranaias/askvision-tui/internal/vision"
)

// Update routes messages to the submission pipeline and the input widgets.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case OllamaStatusMsg:
		if !msg.Running {
			m.setStatus(statusWarn, "Ollama is not reachable at "+m.cfg.ServerURL)
		}
		return m, nil

	case ImageEncodedMsg:
		return m.handleImageEncoded(msg)

	case CompletionMsg:
		return m.handleCompletion(msg)

	case ExportDoneMsg:
		if msg.Err != nil {
			m.setStatus(statusError, "Export failed: "+msg.Err.Error())
		} else {
			m.setStatus(statusInfo, "Exported to "+msg.Path)
		}
		return m, nil

	case CopyDoneMsg:
		if msg.Err != nil {
			m.setStatus(statusError, "Copy failed: "+msg.Err.Error())
		} else {
			m.setStatus(statusInfo, "Copied answer to clipboard")
		}
		return m, nil

	case RegistryReloadedMsg:
		m.registry = msg.Registry
		m.kindIdx = 0
		m.setStatus(statusInfo, "Prompt registry reloaded")
		return m, waitForReload(m.reloads)
	}

	return m.updateInputs(msg)
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "tab":
		m.cycleFocus()
		return m, nil

	case "ctrl+o":
		m.cycleMode()
		return m, nil

	case "ctrl+k":
		if m.sess.Mode == prompt.ModePreMade && len(m.kinds()) > 0 {
			m.kindIdx = (m.kindIdx + 1) % len(m.kinds())
		}
		return m, nil

	case "enter":
		return m.submit()

	case "ctrl+e":
		return m.exportResult()

	case "ctrl+y":
		return m.copyResult()

	case "up", "down", "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m.updateInputs(msg)
}

// cycleFocus moves focus to the next visible input. The custom prompt field
// only participates in Custom mode.
func (m *Model) cycleFocus() {
	order := []focusField{focusQuestion, focusImage}
	if m.sess.Mode == prompt.ModeCustom {
		order = []focusField{focusQuestion, focusCustom, focusImage}
	}

	next := order[0]
	for i, f := range order {
		if f == m.focus {
			next = order[(i+1)%len(order)]
			break
		}
	}
	m.setFocus(next)
}

func (m *Model) setFocus(f focusField) {
	m.focus = f
	m.question.Blur()
	m.custom.Blur()
	m.imagePath.Blur()
	switch f {
	case focusQuestion:
		m.question.Focus()
	case focusCustom:
		m.custom.Focus()
	case focusImage:
		m.imagePath.Focus()
	}
}

// cycleMode advances Classic → Pre-made → Custom → Classic.
func (m *Model) cycleMode() {
	switch m.sess.Mode {
	case prompt.ModeClassic:
		m.sess.Mode = prompt.ModePreMade
	case prompt.ModePreMade:
		m.sess.Mode = prompt.ModeCustom
	default:
		m.sess.Mode = prompt.ModeClassic
	}
	if m.sess.Mode != prompt.ModeCustom && m.focus == focusCustom {
		m.setFocus(focusQuestion)
	}
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.question, cmd = m.question.Update(msg)
	cmds = append(cmds, cmd)
	m.custom, cmd = m.custom.Update(msg)
	cmds = append(cmds, cmd)
	m.imagePath, cmd = m.imagePath.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// =============================================================================
// SUBMISSION PIPELINE
// =============================================================================

// submit begins a submission cycle: straight to the completion call, or via
// the image encode when a path is attached.
func (m Model) submit() (tea.Model, tea.Cmd) {
	m.syncSession()

	sub, err := m.sess.Begin()
	switch {
	case errors.Is(err, session.ErrRequestInFlight):
		m.setStatus(statusWarn, "A request is already in flight")
		return m, nil
	case errors.Is(err, session.ErrEmptyQuestion):
		m.sess.LastResult = export.PlaceholderNoQuestion
		m.refreshViewport()
		return m, nil
	case err != nil:
		m.setStatus(statusError, err.Error())
		return m, nil
	}

	m.pending = &sub
	m.setStatus(statusInfo, "")

	if sub.HasImage() {
		return m, encodeImageCmd(sub.ID, sub.ImagePath)
	}
	return m.dispatch(sub, nil)
}

// dispatch resolves the prompt, builds the request, and fires the completion
// command. A resolver failure is recovered here into the display value; the
// session still returns to idle.
func (m Model) dispatch(sub session.Submission, img *vision.Encoded) (tea.Model, tea.Cmd) {
	effective, err := prompt.Resolve(sub.Mode, sub.PromptKind, sub.CustomText, sub.Question, m.registry)
	if err != nil {
		m.sess.Complete(sub.ID, "Error: "+err.Error())
		m.pending = nil
		m.refreshViewport()
		return m, nil
	}

	req := ollama.BuildRequest(effective, sub.Question, m.cfg.Model, img)
	return m, askCmd(m.client, sub.ID, req)
}

func (m Model) handleImageEncoded(msg ImageEncodedMsg) (tea.Model, tea.Cmd) {
	if m.pending == nil || msg.ID != m.pending.ID {
		return m, nil // stale reply from an abandoned cycle
	}

	if msg.Err != nil {
		// Abort this submission only; no request is sent.
		m.sess.Complete(msg.ID, "Error: "+msg.Err.Error())
		m.pending = nil
		m.refreshViewport()
		return m, nil
	}

	if msg.Encoded.SuspiciouslyShort() {
		// Advisory only: flag it and send the request anyway.
		m.setStatus(statusWarn, "Attached image looks too small to be valid; sending anyway")
	}

	if !m.sess.ImageEncoded(msg.ID) {
		return m, nil
	}
	return m.dispatch(*m.pending, msg.Encoded)
}

func (m Model) handleCompletion(msg CompletionMsg) (tea.Model, tea.Cmd) {
	if !m.sess.Complete(msg.ID, msg.Outcome.Display()) {
		return m, nil
	}
	m.pending = nil
	m.refreshViewport()
	if msg.Outcome.OK() {
		m.setStatus(statusInfo, "Answer received")
	} else {
		m.setStatus(statusError, util.TruncateWidth(msg.Outcome.Display(), 60))
	}
	return m, nil
}

// =============================================================================
// EXPORT AND COPY
// =============================================================================

func (m Model) exportResult() (tea.Model, tea.Cmd) {
	artifact, err := export.Format(m.sess.LastResult, m.sess.Mode, m.currentKind(), time.Now())
	if err != nil {
		m.setStatus(statusWarn, "Nothing to export yet")
		return m, nil
	}
	return m, exportCmd(m.sink, artifact)
}

func (m Model) copyResult() (tea.Model, tea.Cmd) {
	// Same guard as export: placeholders are not real results.
	if !export.Exportable(m.sess.LastResult) {
		m.setStatus(statusWarn, "Nothing to copy yet")
		return m, nil
	}
	return m, copyCmd(m.sess.LastResult)
}
