// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file contains the command creators that talk to the backend, and
// the StreamRunner that bridges the streaming goroutine into the Bubble
// Tea program via program.Send.
package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/yuna-tui/internal/audio"
	"github.com/jeranaias/yuna-tui/internal/model"
	"github.com/jeranaias/yuna-tui/internal/yuna"
)

// requestTimeout bounds the non-streaming API calls issued from the UI.
const requestTimeout = 15 * time.Second

// =============================================================================
// PERSONA COMMANDS
// =============================================================================

// loadPersonasCmd fetches the persona roster from the backend.
func loadPersonasCmd(client *yuna.Client) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return PersonasLoadedMsg{Error: yuna.ErrNotRunning}
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		chars, err := client.Characters(ctx)
		if err != nil {
			return PersonasLoadedMsg{Error: err}
		}

		personas := make([]model.Persona, 0, len(chars))
		for _, c := range chars {
			personas = append(personas, characterToPersona(c))
		}
		return PersonasLoadedMsg{Personas: personas}
	}
}

// createPersonaCmd creates a new persona upstream.
func createPersonaCmd(client *yuna.Client, name, description, prompt string) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return PersonaCreatedMsg{Error: yuna.ErrNotRunning}
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		char, err := client.CreateCharacter(ctx, yuna.CreateCharacterRequest{
			Name:         name,
			Description:  description,
			SystemPrompt: prompt,
		})
		if err != nil {
			return PersonaCreatedMsg{Error: err}
		}
		return PersonaCreatedMsg{Persona: characterToPersona(*char)}
	}
}

// deletePersonaCmd deletes a persona upstream. The client refuses the
// built-in persona before any request is made.
func deletePersonaCmd(client *yuna.Client, id string) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return PersonaDeletedMsg{ID: id, Error: yuna.ErrNotRunning}
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := client.DeleteCharacter(ctx, id); err != nil {
			return PersonaDeletedMsg{ID: id, Error: err}
		}
		return PersonaDeletedMsg{ID: id}
	}
}

// generatePromptCmd asks the backend to draft a system prompt from a
// natural-language instruction.
func generatePromptCmd(client *yuna.Client, instruction string) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return PromptGeneratedMsg{Error: yuna.ErrNotRunning}
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		prompt, err := client.GeneratePrompt(ctx, instruction)
		if err != nil {
			return PromptGeneratedMsg{Error: err}
		}
		return PromptGeneratedMsg{Prompt: prompt}
	}
}

// characterToPersona maps the wire representation into the UI model.
func characterToPersona(c yuna.Character) model.Persona {
	return model.Persona{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		SystemPrompt: c.SystemPrompt,
		Avatar:       c.Avatar,
	}
}

// =============================================================================
// SPEECH COMMANDS
// =============================================================================

// speakCmd synthesizes text and plays it through the audio player.
// Synthesis can take a while for long responses, so the whole cycle runs
// as one command and reports back with SpeechDoneMsg.
func speakCmd(client *yuna.Client, player *audio.Player, text string, speaker int) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return SpeechDoneMsg{Error: yuna.ErrNotRunning}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		wav, err := client.Synthesize(ctx, text, speaker)
		if err != nil {
			return SpeechDoneMsg{Error: err}
		}
		if err := player.Play(wav); err != nil {
			return SpeechDoneMsg{Error: err}
		}
		return SpeechDoneMsg{}
	}
}

// =============================================================================
// STREAM RUNNER
// =============================================================================

// StreamRunner executes streaming chats on behalf of a Bubble Tea program.
// Run is called in its own goroutine; every event is delivered through
// program.Send, which is safe to call from any goroutine.
type StreamRunner struct {
	program *tea.Program
	client  *yuna.Client
}

// NewStreamRunner creates a stream runner.
func NewStreamRunner(program *tea.Program, client *yuna.Client) *StreamRunner {
	return &StreamRunner{
		program: program,
		client:  client,
	}
}

// Run executes one streaming chat and forwards events to the program.
// Events preserve the client's ordering contract: StreamStartMsg, then
// tokens in order, then exactly one of StreamCompleteMsg or StreamErrorMsg.
func (r *StreamRunner) Run(ctx context.Context, req yuna.ChatRequest, messageID string) {
	if r.client == nil {
		r.program.Send(NewStreamErrorMsg(messageID, yuna.ErrNotRunning))
		return
	}

	r.program.Send(StreamStartMsg{
		MessageID: messageID,
		StartTime: time.Now(),
	})

	isFirst := true
	completeSent := false

	err := r.client.ChatStream(ctx, req, func(chunk yuna.StreamChunk) {
		if chunk.Error != nil {
			return
		}

		if chunk.Content != "" {
			r.program.Send(NewStreamTokenMsg(messageID, chunk.Content, isFirst))
			isFirst = false
		}

		if chunk.Done {
			r.program.Send(NewStreamCompleteMsg(messageID, chunk.Final, chunk.Duration, chunk.HasDuration))
			completeSent = true
		}
	})

	if err != nil && !completeSent {
		r.program.Send(NewStreamErrorMsg(messageID, err))
	}
}

// =============================================================================
// ERROR PRESENTATION
// =============================================================================

// errorText maps a backend error to the line shown in a failed bubble or
// the status bar.
func errorText(err error) string {
	switch {
	case err == nil:
		return ""
	case yuna.IsNotRunning(err):
		return "Cannot reach the Yuna server. Is it running?"
	case yuna.IsTimeout(err):
		return "The request timed out."
	case yuna.IsTTSEngineDown(err):
		return "VOICEVOX engine is not running; voice output is unavailable."
	default:
		return err.Error()
	}
}
