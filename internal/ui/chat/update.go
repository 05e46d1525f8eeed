// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file contains the Update loop: key handling per mode, the stream
// message lifecycle, and persona management flows.
package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/yuna-tui/internal/model"
)

// cancelledDisplay is shown inside an aborted response bubble.
const cancelledDisplay = "Response cancelled."

// Update handles all incoming messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		switch m.mode {
		case ModePersonaPicker:
			return m.handlePickerKey(msg)
		case ModePersonaCreate:
			return m.handleCreateKey(msg)
		default:
			return m.handleChatKey(msg)
		}

	case StreamStartMsg:
		// The placeholder is already in the transcript; nothing to do
		// until the first token lands.
		return m, nil

	case StreamTokenMsg:
		return m.handleStreamToken(msg)

	case StreamTickMsg:
		return m.handleStreamTick()

	case StreamCompleteMsg:
		return m.handleStreamComplete(msg)

	case StreamErrorMsg:
		return m.handleStreamError(msg)

	case PersonasLoadedMsg:
		if msg.Error != nil {
			m.status = errorText(msg.Error)
			return m, nil
		}
		m.roster.SetPersonas(msg.Personas)
		return m, nil

	case PersonaCreatedMsg:
		if msg.Error != nil {
			m.status = errorText(msg.Error)
			return m, nil
		}
		m.roster.Add(msg.Persona)
		_ = m.roster.Select(msg.Persona.ID)
		m.mode = ModeChat
		m.textarea.Focus()
		m.status = "Persona \"" + msg.Persona.Name + "\" created"
		return m, nil

	case PersonaDeletedMsg:
		if msg.Error != nil {
			m.status = errorText(msg.Error)
			return m, nil
		}
		if err := m.roster.Remove(msg.ID); err != nil && !errors.Is(err, model.ErrPersonaNotFound) {
			m.status = err.Error()
		}
		if m.personaCursor >= m.roster.Len() && m.personaCursor > 0 {
			m.personaCursor--
		}
		return m, nil

	case PromptGeneratedMsg:
		m.drafting = false
		if msg.Error != nil {
			m.status = errorText(msg.Error)
			return m, nil
		}
		m.createInputs[fieldPrompt].SetValue(msg.Prompt)
		return m, nil

	case SpeechDoneMsg:
		m.speaking = false
		m.status = ""
		if msg.Error != nil {
			m.status = errorText(msg.Error)
		}
		return m, nil

	case ErrorMsg:
		m.status = msg.Title + ": " + msg.Message
		return m, nil
	}

	return m.updateChildren(msg)
}

// =============================================================================
// RESIZE
// =============================================================================

func (m *Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	// Header and status take one line each; the input area takes its own
	// height plus a border line.
	inputHeight := m.textarea.Height() + 1
	viewportHeight := msg.Height - inputHeight - 2
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	if !m.ready {
		m.viewport = newTranscriptViewport(msg.Width, viewportHeight)
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = viewportHeight
	}
	m.textarea.SetWidth(msg.Width - 2)
	for i := range m.createInputs {
		m.createInputs[i].Width = msg.Width - 6
	}

	m.refreshViewport()
	return m, nil
}

// =============================================================================
// CHAT MODE KEYS
// =============================================================================

func (m *Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		// First press cancels an active stream, second press quits.
		if m.conversation.IsStreaming() {
			m.abortActiveStream(cancelledDisplay)
			return m, nil
		}
		m.player.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		if m.conversation.IsStreaming() {
			m.abortActiveStream(cancelledDisplay)
			return m, nil
		}
		if m.speaking || m.player.IsPlaying() {
			m.player.Stop()
			m.speaking = false
			return m, nil
		}
		m.status = ""
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m, m.submit()

	case key.Matches(msg, m.keys.Clear):
		if m.conversation.IsStreaming() {
			m.abortActiveStream(cancelledDisplay)
		}
		m.conversation.Clear()
		m.status = ""
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, m.keys.Personas):
		m.mode = ModePersonaPicker
		m.personaCursor = m.currentPersonaIndex()
		m.textarea.Blur()
		return m, nil

	case key.Matches(msg, m.keys.NewPersona):
		m.enterCreateMode()
		return m, nil

	case key.Matches(msg, m.keys.Speak):
		m.ttsEnabled = !m.ttsEnabled
		if !m.ttsEnabled {
			m.player.Stop()
			m.speaking = false
		}
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// =============================================================================
// PERSONA PICKER KEYS
// =============================================================================

func (m *Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		m.mode = ModeChat
		m.textarea.Focus()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.personaCursor > 0 {
			m.personaCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.personaCursor < m.roster.Len()-1 {
			m.personaCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.selectPersonaAtCursor()

	case key.Matches(msg, m.keys.Delete):
		return m.deletePersonaAtCursor()

	case key.Matches(msg, m.keys.NewPersona):
		m.enterCreateMode()
		return m, nil
	}
	return m, nil
}

func (m *Model) selectPersonaAtCursor() (tea.Model, tea.Cmd) {
	personas := m.roster.Personas()
	if m.personaCursor < 0 || m.personaCursor >= len(personas) {
		return m, nil
	}

	chosen := personas[m.personaCursor]
	previous := m.roster.CurrentID()
	if err := m.roster.Select(chosen.ID); err != nil {
		m.status = err.Error()
		return m, nil
	}

	if chosen.ID != previous {
		if m.cfg.Chat.ResetOnPersonaSwitch {
			m.conversation.Clear()
		}
		m.conversation.AddSystemMessage("Now talking to " + chosen.Name)
	}

	m.mode = ModeChat
	m.textarea.Focus()
	m.refreshViewport()
	return m, nil
}

func (m *Model) deletePersonaAtCursor() (tea.Model, tea.Cmd) {
	personas := m.roster.Personas()
	if m.personaCursor < 0 || m.personaCursor >= len(personas) {
		return m, nil
	}

	target := personas[m.personaCursor]
	if target.IsDefault() {
		m.status = "The default persona cannot be deleted"
		return m, nil
	}
	return m, deletePersonaCmd(m.client, target.ID)
}

// =============================================================================
// PERSONA CREATE KEYS
// =============================================================================

func (m *Model) enterCreateMode() {
	m.mode = ModePersonaCreate
	m.createField = fieldName
	for i := range m.createInputs {
		m.createInputs[i].SetValue("")
		m.createInputs[i].Blur()
	}
	m.createInputs[fieldName].Focus()
	m.textarea.Blur()
}

func (m *Model) handleCreateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		m.mode = ModePersonaPicker
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.createInputs[m.createField].Blur()
		m.createField = (m.createField + 1) % fieldCount
		m.createInputs[m.createField].Focus()
		return m, nil

	case key.Matches(msg, m.keys.Generate):
		instruction := strings.TrimSpace(m.createInputs[fieldDescription].Value())
		if instruction == "" {
			m.status = "Fill in the description first, then C-g drafts a prompt from it"
			return m, nil
		}
		m.drafting = true
		return m, generatePromptCmd(m.client, instruction)

	case key.Matches(msg, m.keys.Submit):
		name := strings.TrimSpace(m.createInputs[fieldName].Value())
		if name == "" {
			m.status = "A persona needs a name"
			return m, nil
		}
		description := strings.TrimSpace(m.createInputs[fieldDescription].Value())
		prompt := strings.TrimSpace(m.createInputs[fieldPrompt].Value())
		return m, createPersonaCmd(m.client, name, description, prompt)
	}

	var cmd tea.Cmd
	m.createInputs[m.createField], cmd = m.createInputs[m.createField].Update(msg)
	return m, cmd
}

// =============================================================================
// STREAM LIFECYCLE
// =============================================================================

func (m *Model) handleStreamToken(msg StreamTokenMsg) (tea.Model, tea.Cmd) {
	if msg.MessageID != m.streamingID {
		return m, nil
	}
	m.streamBuf.Write(msg.Token)
	if m.awaitingFirst {
		m.awaitingFirst = false
		m.spinner.Stop()
	}
	return m, nil
}

func (m *Model) handleStreamTick() (tea.Model, tea.Cmd) {
	if content, ok := m.streamBuf.Flush(); ok {
		m.conversation.AppendToStreaming(content)
		m.refreshViewport()
	}
	if m.conversation.IsStreaming() {
		return m, streamTickCmd()
	}
	return m, nil
}

func (m *Model) handleStreamComplete(msg StreamCompleteMsg) (tea.Model, tea.Cmd) {
	if msg.MessageID != m.streamingID {
		return m, nil
	}

	if content, ok := m.streamBuf.ForceFlush(); ok {
		m.conversation.AppendToStreaming(content)
	}
	m.conversation.FinalizeStreaming(msg.Final, msg.Duration, msg.HasDuration)
	m.clearCancelFunc()
	m.spinner.Stop()
	m.awaitingFirst = false
	m.streamingID = ""
	m.refreshViewport()

	if m.ttsEnabled && msg.Final != "" {
		m.speaking = true
		if last := m.conversation.GetLastMessage(); last != nil {
			m.status = "Speaking: " + last.Preview(48)
		}
		return m, speakCmd(m.client, m.player, msg.Final, m.cfg.TTS.Speaker)
	}
	return m, nil
}

func (m *Model) handleStreamError(msg StreamErrorMsg) (tea.Model, tea.Cmd) {
	// A late error after a local abort carries a stale message id.
	if msg.MessageID != m.streamingID {
		return m, nil
	}

	display := errorText(msg.Error)
	if errors.Is(msg.Error, context.Canceled) {
		display = cancelledDisplay
	}
	m.abortActiveStream(display)
	return m, nil
}

// abortActiveStream cancels the in-flight request and closes the placeholder
// with the given display string. The bubble stays visible in the transcript
// but the turn is excluded from future request history.
func (m *Model) abortActiveStream(display string) {
	m.cancelStream()
	m.streamBuf.Reset()
	m.conversation.AbortStreaming(display)
	m.spinner.Stop()
	m.awaitingFirst = false
	m.streamingID = ""
	m.refreshViewport()
}

// =============================================================================
// CHILD COMPONENT UPDATES
// =============================================================================

func (m *Model) updateChildren(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.spinner, cmd = m.spinner.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	switch m.mode {
	case ModeChat:
		m.textarea, cmd = m.textarea.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		m.viewport, cmd = m.viewport.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	case ModePersonaCreate:
		m.createInputs[m.createField], cmd = m.createInputs[m.createField].Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

// currentPersonaIndex returns the roster index of the active persona.
func (m *Model) currentPersonaIndex() int {
	for i, p := range m.roster.Personas() {
		if p.ID == m.roster.CurrentID() {
			return i
		}
	}
	return 0
}
