// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations, messages,
// and character personas.
//
// This package defines the core domain types used throughout the application
// for representing the chat transcript and the active character.
//
// # Key Types
//
//   - Conversation: Append-only message log with a single in-place streaming slot
//   - Message: Single message with role, content, timestamp, and stream state
//   - Persona: A selectable character with its system prompt
//   - Roster: The fetched personas plus the current selection
//   - Role: Message role enumeration (user, assistant, system)
//
// # Usage
//
// Drive a streamed assistant turn:
//
//	conv := model.NewConversation()
//	conv.AddUserMessage("Hello!")
//	msg, err := conv.BeginAssistantMessage()
//	// ... AppendToStreaming per delta ...
//	conv.FinalizeStreaming(finalText, 2.5, true)
package model
