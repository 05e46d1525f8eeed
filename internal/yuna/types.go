// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package yuna provides the HTTP client for communicating with the Yuna
// backend API.
package yuna

// =============================================================================
// CHAT TYPES
// =============================================================================

// ChatMessage is a single turn in the wire format.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /api/chat. The system prompt travels in
// its own field; the server prepends it to the message list itself.
type ChatRequest struct {
	Messages     []ChatMessage `json:"messages"`
	SystemPrompt string        `json:"system_prompt,omitempty"`
	CharacterID  string        `json:"character_id,omitempty"`
}

// StreamChunk is one event from a streaming chat response.
//
// Ordering guarantee: zero or more content chunks arrive strictly in stream
// order, followed by exactly one chunk with Done set (or Error set on
// failure). No content chunk follows the Done chunk.
type StreamChunk struct {
	// Content is a body text delta. Empty on the terminal chunk.
	Content string

	// Done marks the terminal chunk of a successful stream.
	Done bool

	// Final is the complete body text, whitespace-trimmed. Set only when
	// Done is true.
	Final string

	// Duration is the server-reported generation time in seconds, valid
	// only when Done and HasDuration are both true. The trailer can be
	// missing (old server) or unparsable; rendering then skips the
	// annotation rather than showing a zero.
	Duration    float64
	HasDuration bool

	// Error is set when the stream failed. Terminal.
	Error error
}

// =============================================================================
// CHARACTER TYPES
// =============================================================================

// Character is a persona as the server stores it.
type Character struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	SystemPrompt string `json:"system_prompt"`
	Avatar       string `json:"avatar,omitempty"`
}

// CreateCharacterRequest is the body of POST /api/characters.
// The server assigns the id and the default avatar.
type CreateCharacterRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	SystemPrompt string `json:"system_prompt"`
}

// =============================================================================
// TTS TYPES
// =============================================================================

// TTSRequest is the body of POST /api/tts. Speaker selects the VOICEVOX
// voice; the server falls back to its own default when omitted.
type TTSRequest struct {
	Text    string `json:"text"`
	Speaker int    `json:"speaker,omitempty"`
}

// =============================================================================
// PROMPT GENERATION TYPES
// =============================================================================

// GeneratePromptRequest is the body of POST /api/generate_prompt.
type GeneratePromptRequest struct {
	Instruction string `json:"instruction"`
}

// GeneratePromptResponse carries either a generated prompt or a server-side
// error message, never both.
type GeneratePromptResponse struct {
	SystemPrompt string `json:"system_prompt,omitempty"`
	Error        string `json:"error,omitempty"`
}

// apiError is the generic {"error": "..."} envelope the server uses for
// failures on every endpoint.
type apiError struct {
	Error string `json:"error"`
}
