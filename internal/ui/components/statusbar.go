// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the yuna TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/yuna-tui/internal/ui/styles"
)

// =============================================================================
// STATUS LINE
// =============================================================================

var statusLineStyle = lipgloss.NewStyle().
	Background(styles.SurfaceDim).
	Padding(0, 1)

// RenderStatusLine renders a single status bar line padded to the given
// width. Content wider than the bar is truncated rather than wrapped so
// the bar never grows a second line.
func RenderStatusLine(width int, content string) string {
	if width <= 0 {
		return statusLineStyle.Render(content)
	}

	rendered := statusLineStyle.Render(content)
	w := lipgloss.Width(rendered)
	if w > width {
		return statusLineStyle.MaxWidth(width).Render(content)
	}
	return rendered + strings.Repeat(" ", width-w)
}
