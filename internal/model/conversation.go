// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations, messages,
// and character personas.
package model

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/jeranaias/yuna-tui/internal/yuna"
)

// MaxMessages is the maximum number of messages to keep in conversation history.
// When exceeded, old messages are pruned to prevent unbounded memory growth.
const MaxMessages = 1000

// ErrStreamInProgress is returned when an assistant placeholder is requested
// while a previous one is still streaming. At most one response streams at a
// time.
var ErrStreamInProgress = errors.New("a response is already streaming")

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds a complete chat conversation with history and metadata.
type Conversation struct {
	// Identity
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Messages, append-only; streamed turns mutate in place.
	Messages []*Message `json:"messages"`

	// streaming points at the open assistant placeholder, nil when idle.
	streaming *Message
}

// NewConversation creates a new conversation with a generated ID.
func NewConversation() *Conversation {
	return &Conversation{
		ID:        generateConversationID(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Messages:  make([]*Message, 0),
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// AddMessage adds a message to the conversation.
func (c *Conversation) AddMessage(msg *Message) {
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = time.Now()
	c.pruneOldMessages()
}

// AddUserMessage creates and adds a user message. Callers are expected to
// trim input and drop empty submissions before reaching here.
func (c *Conversation) AddUserMessage(content string) *Message {
	msg := NewUserMessage(content)
	c.AddMessage(msg)
	return msg
}

// AddSystemMessage creates and adds a system message.
func (c *Conversation) AddSystemMessage(content string) *Message {
	msg := NewSystemMessage(content)
	c.AddMessage(msg)
	return msg
}

// BeginAssistantMessage appends a streaming assistant placeholder.
// Only one placeholder may be open at a time; a second request while a
// stream is in flight returns ErrStreamInProgress.
func (c *Conversation) BeginAssistantMessage() (*Message, error) {
	if c.streaming != nil {
		return nil, ErrStreamInProgress
	}
	msg := NewAssistantMessage()
	c.AddMessage(msg)
	c.streaming = msg
	return msg, nil
}

// IsStreaming reports whether an assistant placeholder is open.
func (c *Conversation) IsStreaming() bool {
	return c.streaming != nil
}

// AppendToStreaming appends a body delta to the open placeholder.
// A delta arriving with no open placeholder is dropped.
func (c *Conversation) AppendToStreaming(token string) {
	if c.streaming != nil {
		c.streaming.AppendToken(token)
	}
}

// FinalizeStreaming closes the open placeholder with the final body text and
// the server-reported duration (hasDuration false when the trailer was
// missing or unparsable).
func (c *Conversation) FinalizeStreaming(final string, duration float64, hasDuration bool) {
	if c.streaming == nil {
		return
	}
	c.streaming.FinalizeStream(final, duration, hasDuration)
	c.streaming = nil
	c.UpdatedAt = time.Now()
}

// AbortStreaming closes the open placeholder as failed. The message stays in
// the visible transcript but ToChatMessages skips it, so a retry is built
// from clean history.
func (c *Conversation) AbortStreaming(display string) {
	if c.streaming == nil {
		return
	}
	c.streaming.FailStream(display)
	c.streaming = nil
	c.UpdatedAt = time.Now()
}

// GetLastMessage returns the most recent message, or nil if empty.
func (c *Conversation) GetLastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// Clear removes all messages from the conversation.
// An open placeholder is dropped along with everything else.
func (c *Conversation) Clear() {
	c.Messages = make([]*Message, 0)
	c.streaming = nil
	c.UpdatedAt = time.Now()
}

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty returns true if there are no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// GetHistory returns the message history for display, failed turns included.
func (c *Conversation) GetHistory() []*Message {
	return c.Messages
}

// =============================================================================
// WIRE CONVERSION
// =============================================================================

// ToChatMessages converts the conversation to the server's message format.
// Failed turns and the still-open placeholder are excluded: the server must
// never see a partial or aborted response as assistant history. The system
// prompt travels in its own request field, not in the message list.
func (c *Conversation) ToChatMessages() []yuna.ChatMessage {
	messages := make([]yuna.ChatMessage, 0, len(c.Messages))

	for _, msg := range c.Messages {
		if msg.Failed || msg.IsStreaming {
			continue
		}

		var role string
		switch msg.Role {
		case RoleUser:
			role = "user"
		case RoleAssistant:
			role = "assistant"
		default:
			continue
		}

		if msg.Content != "" {
			messages = append(messages, yuna.ChatMessage{
				Role:    role,
				Content: msg.Content,
			})
		}
	}

	return messages
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateConversationID creates a unique conversation ID.
func generateConversationID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return "conv_" + hex.EncodeToString(bytes)
}

// pruneOldMessages removes old messages when conversation history exceeds
// MaxMessages. The open placeholder, if any, is always in the kept tail.
func (c *Conversation) pruneOldMessages() {
	if len(c.Messages) <= MaxMessages {
		return
	}
	startIdx := len(c.Messages) - MaxMessages
	c.Messages = c.Messages[startIdx:]
}
