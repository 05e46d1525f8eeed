// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the yuna TUI.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds terminal capabilities and the derived style set.
type Theme struct {
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	Header       lipgloss.Style
	UserLabel    lipgloss.Style
	YunaLabel    lipgloss.Style
	SystemLabel  lipgloss.Style
	Error        lipgloss.Style
	Muted        lipgloss.Style
	StatusBar    lipgloss.Style
	InputBox     lipgloss.Style
	PickerCursor lipgloss.Style
}

// NewTheme builds a theme from the detected terminal capabilities.
func NewTheme() *Theme {
	profile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       lipgloss.HasDarkBackground(),
		HasTrueColor: profile == termenv.TrueColor,
		ColorProfile: profile,
	}
	t.buildStyles()
	return t
}

// ApplyThemeSetting forces the light/dark assumption from the config value
// ("dark", "light", or "auto"). Auto keeps the detected background.
func ApplyThemeSetting(name string) {
	switch strings.ToLower(name) {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	}
}

// GlamourStyle maps the config theme value onto a glamour style name.
func GlamourStyle(name string) string {
	switch strings.ToLower(name) {
	case "dark":
		return "dark"
	case "light":
		return "light"
	default:
		return "auto"
	}
}

func (t *Theme) buildStyles() {
	t.Header = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Bold(true).
		Padding(0, 1)

	t.UserLabel = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.YunaLabel = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)

	t.SystemLabel = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.Error = lipgloss.NewStyle().
		Foreground(Rose)

	t.Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.InputBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay)

	t.PickerCursor = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)
}
