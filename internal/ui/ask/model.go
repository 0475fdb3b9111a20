// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ask

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/askvision-tui/internal/config"
	"github.com/jeranaias/askvision-tui/internal/export"
	"github.com/jeranaias/askvision-tui/internal/ollama"
	"github.com/jeranaias/askvision-tui/internal/prompt"
	"github.com/jeranaias/askvision-tui/internal/session"
	"github.com/jeranaias/askvision-tui/internal/ui/styles"
)

// =============================================================================
// FOCUS
// =============================================================================

// focusField identifies which input currently has keyboard focus.
type focusField int

const (
	focusQuestion focusField = iota
	focusCustom
	focusImage
)

// =============================================================================
// STATUS
// =============================================================================

type statusLevel int

const (
	statusInfo statusLevel = iota
	statusWarn
	statusError
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the single-page ask view. It owns the
// Session and sequences the encode/dispatch/export pipeline; every other
// component receives plain values.
type Model struct {
	cfg   *config.Config
	theme *styles.Theme

	client   *ollama.Client
	registry prompt.Registry
	sess     *session.Session
	sink     export.ArtifactSink

	// Pending submission context between async steps
	pending *session.Submission

	// UI components
	question  textinput.Model
	custom    textinput.Model
	imagePath textinput.Model
	spinner   spinner.Model
	viewport  viewport.Model
	renderer  *glamour.TermRenderer

	// Registry reloads (nil when no watcher is running)
	reloads <-chan prompt.Registry

	focus    focusField
	kindIdx  int
	width    int
	height   int
	status   string
	statusLv statusLevel
	ready    bool
}

// New builds the ask view from the loaded configuration.
func New(cfg *config.Config, client *ollama.Client, registry prompt.Registry, sink export.ArtifactSink, reloads <-chan prompt.Registry) Model {
	theme := styles.New(cfg.Theme)

	question := textinput.New()
	question.Placeholder = "Ask anything..."
	question.Prompt = ""
	question.CharLimit = 0
	question.Focus()

	custom := textinput.New()
	custom.Placeholder = "Custom system prompt..."
	custom.Prompt = ""
	custom.CharLimit = 0

	imagePath := textinput.New()
	imagePath.Placeholder = "Path to an image (optional)"
	imagePath.Prompt = ""

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.LabelActive

	return Model{
		cfg:       cfg,
		theme:     theme,
		client:    client,
		registry:  registry,
		sess:      session.New(export.PlaceholderAnswer),
		sink:      sink,
		question:  question,
		custom:    custom,
		imagePath: imagePath,
		spinner:   sp,
		reloads:   reloads,
	}
}

// Init starts the spinner, cursor blink, startup health check, and the
// registry reload wait.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		m.spinner.Tick,
		checkOllamaCmd(m.client),
	}
	if m.reloads != nil {
		cmds = append(cmds, waitForReload(m.reloads))
	}
	return tea.Batch(cmds...)
}

// =============================================================================
// HELPERS
// =============================================================================

// kinds returns the registered pre-made kinds, stable order.
func (m *Model) kinds() []string {
	return m.registry.Kinds()
}

// currentKind returns the selected pre-made kind, or "" when none exist.
func (m *Model) currentKind() string {
	kinds := m.kinds()
	if len(kinds) == 0 {
		return ""
	}
	return kinds[m.kindIdx%len(kinds)]
}

// setStatus records a transient status-line message.
func (m *Model) setStatus(lv statusLevel, text string) {
	m.statusLv = lv
	m.status = text
}

// syncSession copies the current input values into the session ahead of a
// transition. The session snapshots mode-relevant fields itself.
func (m *Model) syncSession() {
	m.sess.Question = m.question.Value()
	m.sess.CustomPrompt = m.custom.Value()
	m.sess.ImagePath = m.imagePath.Value()
	m.sess.PromptKind = m.currentKind()
}

// renderResult runs the last result through glamour for the viewport,
// falling back to the raw text if rendering fails.
func (m *Model) renderResult() string {
	text := m.sess.LastResult
	if m.renderer == nil {
		return text
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text
	}
	return out
}

// refreshViewport re-renders the result into the viewport.
func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.renderResult())
	m.viewport.GotoTop()
}

// resize lays the components out for a new terminal size.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	inputWidth := width - 16
	if inputWidth < 20 {
		inputWidth = 20
	}
	m.question.Width = inputWidth
	m.custom.Width = inputWidth
	m.imagePath.Width = inputWidth

	// Header, three input rows, mode row, status, help
	chrome := 9
	vpHeight := height - chrome
	if vpHeight < 3 {
		vpHeight = 3
	}
	m.viewport = viewport.New(width-4, vpHeight)

	wrap := width - 8
	if wrap < 20 {
		wrap = 20
	}
	if r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.theme.GlamourStyle()),
		glamour.WithWordWrap(wrap),
	); err == nil {
		m.renderer = r
	}

	m.refreshViewport()
	m.ready = true
}
