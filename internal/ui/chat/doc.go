// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat implements the interactive chat interface for yuna.

The package is a single Bubble Tea model with three modes: the chat
transcript, the persona picker, and the persona create form.

# Key Components

## Model (model.go)

The Model struct holds all UI state: the conversation, the persona
roster, the transcript viewport, the input textarea, and the streaming
bookkeeping (current stream ID, cancel function, token buffer).

## Streaming (streaming.go, commands.go)

Responses stream over HTTP in a background goroutine. The StreamRunner
reads chunks from the server and pushes them into the update loop via
program.Send; the StreamingBuffer batches tokens so the transcript
re-renders at a capped frame rate instead of once per token. Each
stream carries the placeholder message ID, so events from an aborted
stream are recognized and dropped.

## Update Loop (update.go)

Handles keyboard input per mode, stream lifecycle messages, persona
CRUD results, and speech completion. Esc cancels an in-flight response
locally: the placeholder shows a cancellation notice in the transcript
and the turn is excluded from the history sent upstream.

## View Rendering (view.go)

Assistant messages are rendered as markdown; the full accumulated text
is re-rendered on every flush, so partial constructs (unclosed code
fences) correct themselves as more tokens arrive.

# Usage

	client := yuna.NewClientWithConfig(cfg)
	m := chat.New(client, appConfig)
	p := tea.NewProgram(m, tea.WithAltScreen())
	m.SetRunner(chat.NewStreamRunner(p, client))
	p.Run()
*/
package chat
