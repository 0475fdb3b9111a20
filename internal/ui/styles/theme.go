// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the lip gloss theme for the askvision TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// =============================================================================
// COLORS
// =============================================================================

var (
	Purple        = lipgloss.Color("#8B5CF6")
	Cyan          = lipgloss.Color("#22D3EE")
	Green         = lipgloss.Color("#34D399")
	Yellow        = lipgloss.Color("#FBBF24")
	Red           = lipgloss.Color("#F87171")
	TextPrimary   = lipgloss.Color("#E5E7EB")
	TextSecondary = lipgloss.Color("#9CA3AF")
	SurfaceDim    = lipgloss.Color("#1F2937")
)

// =============================================================================
// THEME
// =============================================================================

// Theme holds the configured styles for the single-page view.
type Theme struct {
	IsDark       bool
	ColorProfile termenv.Profile

	Title       lipgloss.Style
	Label       lipgloss.Style
	LabelActive lipgloss.Style
	ModeValue   lipgloss.Style
	Result      lipgloss.Style
	Status      lipgloss.Style
	StatusWarn  lipgloss.Style
	StatusError lipgloss.Style
	Help        lipgloss.Style
}

// New creates a theme, detecting terminal capabilities. The forced argument
// overrides background detection: "dark", "light", or "" / "auto".
func New(forced string) *Theme {
	isDark := termenv.HasDarkBackground()
	switch forced {
	case "dark":
		isDark = true
	case "light":
		isDark = false
	}

	t := &Theme{
		IsDark:       isDark,
		ColorProfile: termenv.ColorProfile(),
	}

	primary := TextPrimary
	secondary := TextSecondary
	if !isDark {
		primary = lipgloss.Color("#111827")
		secondary = lipgloss.Color("#4B5563")
	}

	t.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple).
		Padding(0, 1)

	t.Label = lipgloss.NewStyle().
		Foreground(secondary)

	t.LabelActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.ModeValue = lipgloss.NewStyle().
		Bold(true).
		Foreground(Green)

	t.Result = lipgloss.NewStyle().
		Foreground(primary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(0, 1)

	t.Status = lipgloss.NewStyle().
		Foreground(secondary)

	t.StatusWarn = lipgloss.NewStyle().
		Foreground(Yellow)

	t.StatusError = lipgloss.NewStyle().
		Foreground(Red)

	t.Help = lipgloss.NewStyle().
		Foreground(secondary).
		Italic(true)

	return t
}

// GlamourStyle returns the glamour style name matching the theme.
func (t *Theme) GlamourStyle() string {
	if t.IsDark {
		return "dark"
	}
	return "light"
}
