// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file contains all rendering logic for the chat interface:
//   - Transcript rendering (user, assistant, system bubbles)
//   - Header and status bar
//   - Persona picker and persona create form
//
// Assistant messages re-render the full accumulated markdown on every
// refresh. Rendering is a pure function of the text, so a partial stream
// with an unclosed code fence simply renders as best it can and corrects
// itself on the next flush.
package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/yuna-tui/internal/markdown"
	"github.com/jeranaias/yuna-tui/internal/model"
	"github.com/jeranaias/yuna-tui/internal/ui/components"
	"github.com/jeranaias/yuna-tui/internal/ui/styles"
	"github.com/jeranaias/yuna-tui/internal/util"
)

// =============================================================================
// STYLES
// =============================================================================

// Role labels, errors, the header and the picker cursor come from the shared
// styles.Theme on the model. Only styles the theme does not carry live here.
var (
	plainTextStyle = lipgloss.NewStyle().
			Foreground(styles.TextPrimary)

	statusStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	pickerTitleStyle = lipgloss.NewStyle().
				Foreground(styles.Purple).
				Bold(true).
				Padding(0, 1)
)

// newTranscriptViewport creates the scrollable transcript area.
func newTranscriptViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.MouseWheelEnabled = true
	return vp
}

// =============================================================================
// MAIN VIEW
// =============================================================================

// View renders the whole chat interface.
func (m *Model) View() string {
	if !m.ready {
		return "Starting..."
	}

	switch m.mode {
	case ModePersonaPicker:
		return m.renderPersonaPicker()
	case ModePersonaCreate:
		return m.renderPersonaCreate()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.textarea.View())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

// refreshViewport re-renders the transcript and follows the tail.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// renderTranscript renders every message in order.
func (m *Model) renderTranscript() string {
	history := m.conversation.GetHistory()
	if len(history) == 0 {
		return m.theme.Muted.Render("\n  No messages yet. Say hi!")
	}

	var b strings.Builder
	for i, msg := range history {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderMessage(msg))
		b.WriteString("\n")
	}
	return b.String()
}

// renderMessage renders one message with its role label.
func (m *Model) renderMessage(msg *model.Message) string {
	var b strings.Builder

	label := msg.Role.DisplayName()
	switch msg.Role {
	case model.RoleUser:
		b.WriteString(m.theme.UserLabel.Render(label))
	case model.RoleAssistant:
		if p, ok := m.roster.Current(); ok && p.Name != "" {
			label = p.Name
		}
		b.WriteString(m.theme.YunaLabel.Render(label))
	default:
		b.WriteString(m.theme.SystemLabel.Render(label))
	}
	b.WriteString("\n")
	b.WriteString(m.renderMessageBody(msg))

	if annotation := msg.FormatDuration(); annotation != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.Muted.Render("  took " + annotation))
	}
	return b.String()
}

// renderMessageBody renders the content area of one message.
func (m *Model) renderMessageBody(msg *model.Message) string {
	content := msg.GetDisplayContent()

	if msg.Failed {
		// An aborted turn carries its display string (cancellation or
		// error text); render it in the error color.
		return m.theme.Error.Render(content)
	}

	if msg.Role == model.RoleAssistant {
		if msg.IsStreaming && content == "" {
			return m.spinner.View()
		}
		return markdown.RenderWidth(content, m.wrapWidth())
	}

	// User and system text is shown literally, never parsed as markdown.
	return plainTextStyle.Render(content)
}

// wrapWidth returns the markdown wrap width for the current window.
func (m *Model) wrapWidth() int {
	if m.cfg.UI.WordWrap > 0 {
		return m.cfg.UI.WordWrap
	}
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

// =============================================================================
// HEADER AND STATUS
// =============================================================================

func (m *Model) renderHeader() string {
	title := "Yuna"
	if p, ok := m.roster.Current(); ok {
		title = "Yuna - " + p.Name
	}

	voice := " voice off"
	if m.ttsEnabled {
		voice = " voice on"
	}
	if m.speaking {
		voice = " speaking..."
	}

	left := m.theme.Header.Render(title)
	right := m.theme.Muted.Render(voice)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m *Model) renderStatusBar() string {
	if m.status != "" {
		return components.RenderStatusLine(m.width, m.theme.Error.Render(m.status))
	}

	help := "Enter send | Esc cancel | C-p personas | C-n new | C-t voice | C-l clear | C-c quit"
	return components.RenderStatusLine(m.width, statusStyle.Render(help))
}

// =============================================================================
// PERSONA PICKER
// =============================================================================

func (m *Model) renderPersonaPicker() string {
	var b strings.Builder
	b.WriteString(pickerTitleStyle.Render("Choose a persona"))
	b.WriteString("\n\n")

	personas := m.roster.Personas()
	if len(personas) == 0 {
		b.WriteString(m.theme.Muted.Render("  No personas loaded."))
		b.WriteString("\n")
	}

	for i, p := range personas {
		cursor := "  "
		line := p.Name
		if p.ID == m.roster.CurrentID() {
			line += " (current)"
		}
		if p.Description != "" {
			line += " - " + p.Description
		}
		if m.width > 4 {
			line = util.TruncateWidth(line, m.width-4)
		}

		if i == m.personaCursor {
			b.WriteString(m.theme.PickerCursor.Render("> " + line))
		} else {
			b.WriteString(cursor + plainTextStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render("Enter select | Del delete | C-n new | Esc back"))
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.Error.Render(m.status))
	}
	return b.String()
}

// =============================================================================
// PERSONA CREATE FORM
// =============================================================================

func (m *Model) renderPersonaCreate() string {
	var b strings.Builder
	b.WriteString(pickerTitleStyle.Render("New persona"))
	b.WriteString("\n\n")

	labels := [fieldCount]string{"Name", "Description", "System prompt"}
	for i := range m.createInputs {
		b.WriteString(statusStyle.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(m.createInputs[i].View())
		b.WriteString("\n\n")
	}

	if m.drafting {
		b.WriteString(m.theme.Muted.Render("Drafting a system prompt..."))
		b.WriteString("\n")
	}

	b.WriteString(statusStyle.Render("Tab next field | C-g draft prompt | Enter create | Esc back"))
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.Error.Render(m.status))
	}

	return m.theme.InputBox.Padding(1, 2).Width(m.width - 2).Render(b.String())
}
