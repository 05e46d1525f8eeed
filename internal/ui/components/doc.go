// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI components for the yuna TUI.

Components are built on top of the Bubble Tea and Lip Gloss libraries and
share the styles package palette.

# Components

Spinner (spinner.go) - Animated thinking indicator shown while waiting for
the first streamed token, with an optional elapsed timer.

RenderStatusLine (statusbar.go) - Renders a full-width status bar line,
padding or truncating the content to the window width.

# Usage

	sp := components.NewThinkingSpinner()
	sp.Start()
	view := sp.View()

	bar := components.RenderStatusLine(width, helpText)
*/
package components
