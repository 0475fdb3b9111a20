// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ask

import (
	"strings"

	"github.com/jeranaias/askvision-tui/internal/prompt"
	"github.com/jeranaias/askvision-tui/internal/util"
)

// View renders the single page: mode line, inputs, result, status, help.
func (m Model) View() string {
	if !m.ready {
		return "Starting askvision..."
	}

	var b strings.Builder

	b.WriteString(m.theme.Title.Render("askvision"))
	b.WriteString(m.theme.Label.Render("  model: " + m.cfg.Model))
	b.WriteString("\n\n")

	b.WriteString(m.renderModeLine())
	b.WriteString("\n")

	b.WriteString(m.renderInput("Question", m.question.View(), m.focus == focusQuestion))
	b.WriteString("\n")
	if m.sess.Mode == prompt.ModeCustom {
		b.WriteString(m.renderInput("Prompt", m.custom.View(), m.focus == focusCustom))
		b.WriteString("\n")
	}
	b.WriteString(m.renderInput("Image", m.imagePath.View(), m.focus == focusImage))
	b.WriteString("\n")

	b.WriteString(m.theme.Result.Width(m.width - 4).Render(m.viewport.View()))
	b.WriteString("\n")

	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render(
		"enter send • tab focus • ctrl+o mode • ctrl+k kind • ctrl+e export • ctrl+y copy • ctrl+c quit"))

	return b.String()
}

func (m Model) renderModeLine() string {
	mode := m.sess.Mode.String()
	if m.sess.Mode == prompt.ModePreMade {
		mode += " (" + m.currentKind() + ")"
	}
	return m.theme.Label.Render("  Mode: ") + m.theme.ModeValue.Render(mode)
}

func (m Model) renderInput(label, field string, active bool) string {
	style := m.theme.Label
	if active {
		style = m.theme.LabelActive
	}
	return style.Render("  "+label+": ") + field
}

func (m Model) renderStatus() string {
	if m.sess.InFlight() {
		return "  " + m.spinner.View() + " " + m.theme.Status.Render(m.sess.Phase().String()+"...")
	}

	if m.status == "" {
		return " "
	}

	text := util.TruncateWidth(m.status, m.width-4)
	switch m.statusLv {
	case statusError:
		return "  " + m.theme.StatusError.Render(text)
	case statusWarn:
		return "  " + m.theme.StatusWarn.Render(text)
	default:
		return "  " + m.theme.Status.Render(text)
	}
}
