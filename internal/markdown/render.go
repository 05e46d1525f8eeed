// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markdown renders assistant responses as styled terminal output.
//
// Rendering is a pure function of the accumulated text: every streaming
// delta triggers a full re-render of the whole message, so a construct that
// opens in one chunk and closes in a later one (a code fence, bold marker,
// half a link) is only ever styled from complete input. No incremental
// parser state survives between calls.
package markdown

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// defaultWrap is the wrap width used when the caller has no viewport.
const defaultWrap = 100

// Building a TermRenderer is expensive, so one renderer is cached and reused
// until the wrap width or style changes. The width only changes on terminal
// resize, the style once at startup.
var (
	mu            sync.Mutex
	renderer      *glamour.TermRenderer
	rendererWidth int
	styleName     = "auto"
)

// SetStyle selects the glamour style ("dark", "light", or "auto") and
// invalidates the cached renderer. Called once at startup with the
// config theme.
func SetStyle(name string) {
	mu.Lock()
	defer mu.Unlock()
	if name != styleName {
		styleName = name
		renderer = nil
	}
}

// Render converts markdown text to styled ANSI output at the default wrap
// width. Falls back to raw text if the renderer is unavailable.
func Render(md string) string {
	return RenderWidth(md, defaultWrap)
}

// RenderWidth renders with an explicit wrap width, for viewports narrower
// or wider than the default.
func RenderWidth(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return md
	}

	mu.Lock()
	defer mu.Unlock()

	if renderer == nil || width != rendererWidth {
		r, err := glamour.NewTermRenderer(
			styleOption(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		renderer = r
		rendererWidth = width
	}

	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	// glamour adds trailing newlines; trim for inline display.
	return strings.TrimRight(out, "\n")
}

// styleOption resolves the configured style name to a glamour option.
// Callers hold mu.
func styleOption() glamour.TermRendererOption {
	if styleName == "auto" {
		return glamour.WithAutoStyle()
	}
	return glamour.WithStandardStyle(styleName)
}
