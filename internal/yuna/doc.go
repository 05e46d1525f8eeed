// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package yuna provides the HTTP client for communicating with the Yuna
// backend API.
//
// The backend streams chat responses as a chunked HTTP body: markdown text,
// then the literal __DURATION__ sentinel, then the generation time in
// seconds. StreamReader turns that byte stream into ordered StreamChunk
// events regardless of how the transport slices it; Client wraps the REST
// endpoints for chat, characters, prompt generation, and speech synthesis.
//
// # Usage
//
//	client := yuna.NewClient()
//	err := client.ChatStream(ctx, yuna.ChatRequest{
//	    Messages:    history,
//	    CharacterID: "default",
//	}, func(chunk yuna.StreamChunk) {
//	    if chunk.Done {
//	        // chunk.Final, chunk.Duration
//	        return
//	    }
//	    // chunk.Content is the next body delta
//	})
//
// All errors are *ClientError values; use the Is* predicates to branch on
// category (server down, timeout, speech engine offline).
package yuna
