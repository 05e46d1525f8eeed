// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file centralizes all Bubble Tea message types used by the chat
// interface so that Update logic and command creators share one catalog.
package chat

import (
	"time"

	"github.com/jeranaias/yuna-tui/internal/model"
)

// =============================================================================
// STREAMING MESSAGES
// =============================================================================

// StreamStartMsg is sent when a streaming response begins.
type StreamStartMsg struct {
	MessageID string
	StartTime time.Time
}

// StreamTokenMsg is sent for each content delta received from the backend.
type StreamTokenMsg struct {
	MessageID string
	Token     string
	IsFirst   bool
}

// StreamCompleteMsg is sent when a streaming response completes.
// Final carries the canonical response text with the duration trailer
// stripped; Duration is the server-reported generation time in seconds.
type StreamCompleteMsg struct {
	MessageID   string
	Final       string
	Duration    float64
	HasDuration bool
}

// StreamErrorMsg is sent when streaming fails.
type StreamErrorMsg struct {
	MessageID string
	Error     error
}

// StreamTickMsg drives the flush cycle of the streaming buffer.
type StreamTickMsg struct {
	Time time.Time
}

// =============================================================================
// PERSONA MESSAGES
// =============================================================================

// PersonasLoadedMsg is sent when the persona roster has been fetched.
type PersonasLoadedMsg struct {
	Personas []model.Persona
	Error    error
}

// PersonaCreatedMsg is sent when a new persona has been created upstream.
type PersonaCreatedMsg struct {
	Persona model.Persona
	Error   error
}

// PersonaDeletedMsg is sent when a persona has been deleted upstream.
type PersonaDeletedMsg struct {
	ID    string
	Error error
}

// PromptGeneratedMsg is sent when the backend has drafted a system prompt
// from a natural-language instruction.
type PromptGeneratedMsg struct {
	Prompt string
	Error  error
}

// =============================================================================
// SPEECH MESSAGES
// =============================================================================

// SpeechDoneMsg is sent when a synthesize-and-play cycle finishes.
// Error is nil on success; a TTS engine outage arrives here rather than
// as a chat error so the transcript is never disturbed by voice failures.
type SpeechDoneMsg struct {
	Error error
}

// =============================================================================
// GENERAL MESSAGES
// =============================================================================

// ErrorMsg is a generic error notification for the status line.
type ErrorMsg struct {
	Title   string
	Message string
}

// =============================================================================
// MESSAGE CONSTRUCTORS
// =============================================================================

// NewStreamTokenMsg creates a token message.
func NewStreamTokenMsg(messageID, token string, isFirst bool) StreamTokenMsg {
	return StreamTokenMsg{
		MessageID: messageID,
		Token:     token,
		IsFirst:   isFirst,
	}
}

// NewStreamCompleteMsg creates a completion message.
func NewStreamCompleteMsg(messageID, final string, duration float64, hasDuration bool) StreamCompleteMsg {
	return StreamCompleteMsg{
		MessageID:   messageID,
		Final:       final,
		Duration:    duration,
		HasDuration: hasDuration,
	}
}

// NewStreamErrorMsg creates a stream error message.
func NewStreamErrorMsg(messageID string, err error) StreamErrorMsg {
	return StreamErrorMsg{
		MessageID: messageID,
		Error:     err,
	}
}

// NewErrorMsg creates a generic error message.
func NewErrorMsg(title, message string) ErrorMsg {
	return ErrorMsg{
		Title:   title,
		Message: message,
	}
}
