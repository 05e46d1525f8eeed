// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// The chat Model owns the transcript viewport, the input area, the persona
// roster, and the lifecycle of one streaming response at a time. Tokens
// arrive from a background goroutine via program messages and are batched
// through a StreamingBuffer before the transcript re-renders.
package chat

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/yuna-tui/internal/audio"
	"github.com/jeranaias/yuna-tui/internal/config"
	"github.com/jeranaias/yuna-tui/internal/model"
	"github.com/jeranaias/yuna-tui/internal/ui/components"
	"github.com/jeranaias/yuna-tui/internal/ui/styles"
	"github.com/jeranaias/yuna-tui/internal/yuna"
)

// =============================================================================
// MODES
// =============================================================================

// Mode identifies which surface of the chat UI has focus.
type Mode int

const (
	// ModeChat is the main transcript + input surface.
	ModeChat Mode = iota
	// ModePersonaPicker is the persona selection overlay.
	ModePersonaPicker
	// ModePersonaCreate is the new-persona form.
	ModePersonaCreate
)

// Persona-create form field indices.
const (
	fieldName = iota
	fieldDescription
	fieldPrompt
	fieldCount
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat interface.
type Model struct {
	client *yuna.Client
	cfg    *config.Config

	conversation *model.Conversation
	roster       *model.Roster

	viewport viewport.Model
	textarea textarea.Model
	spinner  components.Spinner
	keys     KeyMap
	theme    *styles.Theme

	// Streaming state. cancelMgr and streamBuf are pointers so Bubble Tea
	// model copies share them with the streaming goroutine.
	cancelMgr     *cancelManager
	streamBuf     *StreamingBuffer
	runner        *StreamRunner
	streamingID   string
	awaitingFirst bool

	// Voice output
	player     *audio.Player
	ttsEnabled bool
	speaking   bool

	// Persona picker / create form
	mode          Mode
	personaCursor int
	createInputs  [fieldCount]textinput.Model
	createField   int
	drafting      bool

	status string
	width  int
	height int
	ready  bool
}

// New creates a chat model wired to the given backend client and config.
func New(client *yuna.Client, cfg *config.Config) *Model {
	ta := textarea.New()
	ta.Placeholder = "Say something to Yuna..."
	ta.CharLimit = 0
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.Focus()

	var inputs [fieldCount]textinput.Model
	labels := [fieldCount]string{"Name", "Description", "System prompt (C-g drafts one from the description)"}
	for i := range inputs {
		in := textinput.New()
		in.Placeholder = labels[i]
		in.CharLimit = 0
		inputs[i] = in
	}
	inputs[fieldName].Focus()

	return &Model{
		client:       client,
		cfg:          cfg,
		conversation: model.NewConversation(),
		roster:       model.NewRoster(),
		textarea:     ta,
		spinner:      components.NewThinkingSpinner(),
		keys:         DefaultKeyMap(),
		theme:        styles.NewTheme(),
		cancelMgr:    newCancelManager(),
		streamBuf:    NewStreamingBuffer(),
		player:       audio.NewPlayer(),
		ttsEnabled:   cfg.TTS.Enabled,
		createInputs: inputs,
	}
}

// SetRunner attaches the stream runner once the Bubble Tea program exists.
// Must be called before the first submission. A nil runner is tolerated for
// tests, which drive Update with synthetic stream messages instead.
func (m *Model) SetRunner(r *StreamRunner) {
	m.runner = r
}

// Conversation exposes the transcript, primarily for tests and export.
func (m *Model) Conversation() *model.Conversation {
	return m.conversation
}

// Roster exposes the persona roster.
func (m *Model) Roster() *model.Roster {
	return m.roster
}

// Init starts the initial commands: cursor blink and persona load.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		loadPersonasCmd(m.client),
	)
}

// =============================================================================
// SUBMISSION
// =============================================================================

// submit validates and dispatches the current input as a chat turn.
// Blank input is a silent no-op, and a second submission while a response
// is still streaming is rejected without touching the transcript.
func (m *Model) submit() tea.Cmd {
	text := strings.TrimSpace(m.textarea.Value())
	if text == "" {
		return nil
	}
	if m.conversation.IsStreaming() {
		m.status = "Still responding - press Esc to cancel"
		return nil
	}

	m.conversation.AddUserMessage(text)
	placeholder, err := m.conversation.BeginAssistantMessage()
	if err != nil {
		m.status = err.Error()
		return nil
	}

	m.textarea.Reset()
	m.status = ""
	m.streamBuf.Reset()
	m.streamingID = placeholder.ID
	m.awaitingFirst = true

	req := yuna.ChatRequest{
		Messages: m.conversation.ToChatMessages(),
	}
	if p, ok := m.roster.Current(); ok {
		req.SystemPrompt = p.SystemPrompt
		req.CharacterID = p.ID
	}

	m.refreshViewport()
	return tea.Batch(
		m.startStream(req, placeholder.ID),
		m.spinner.Start(),
		streamTickCmd(),
	)
}

// startStream launches the streaming goroutine for one response.
func (m *Model) startStream(req yuna.ChatRequest, messageID string) tea.Cmd {
	if m.runner == nil {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.setCancelFunc(cancel)

	go m.runner.Run(ctx, req, messageID)
	return nil
}
