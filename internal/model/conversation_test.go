// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"errors"
	"testing"
)

// =============================================================================
// STREAMING LIFECYCLE TESTS
// =============================================================================

func TestConversation_StreamLifecycle(t *testing.T) {
	conv := NewConversation()
	conv.AddUserMessage("hello")

	msg, err := conv.BeginAssistantMessage()
	if err != nil {
		t.Fatalf("BeginAssistantMessage() error = %v", err)
	}
	if !msg.IsStreaming {
		t.Error("placeholder should be streaming")
	}
	if !conv.IsStreaming() {
		t.Error("conversation should report streaming")
	}

	conv.AppendToStreaming("Hel")
	conv.AppendToStreaming("lo ")
	if got := msg.GetDisplayContent(); got != "Hello " {
		t.Errorf("display content = %q, want %q", got, "Hello ")
	}

	conv.FinalizeStreaming("Hello", 2.5, true)
	if msg.IsStreaming {
		t.Error("message should no longer be streaming")
	}
	if conv.IsStreaming() {
		t.Error("conversation should be idle after finalize")
	}
	if msg.Content != "Hello" {
		t.Errorf("Content = %q, want %q", msg.Content, "Hello")
	}
	if !msg.HasDuration || msg.Duration != 2.5 {
		t.Errorf("duration = (%v, %v), want (2.5, true)", msg.Duration, msg.HasDuration)
	}
}

func TestConversation_SingleFlight(t *testing.T) {
	conv := NewConversation()
	conv.AddUserMessage("first")

	if _, err := conv.BeginAssistantMessage(); err != nil {
		t.Fatalf("first BeginAssistantMessage() error = %v", err)
	}

	_, err := conv.BeginAssistantMessage()
	if !errors.Is(err, ErrStreamInProgress) {
		t.Errorf("second BeginAssistantMessage() error = %v, want ErrStreamInProgress", err)
	}
	if conv.MessageCount() != 2 {
		t.Errorf("MessageCount() = %d, want 2 (rejected begin must not append)", conv.MessageCount())
	}
}

func TestConversation_AbortKeepsTranscriptCleansHistory(t *testing.T) {
	conv := NewConversation()
	conv.AddUserMessage("hi")
	msg, _ := conv.BeginAssistantMessage()
	conv.AppendToStreaming("partial answ")

	conv.AbortStreaming("Error: Could not connect to the server.")

	if msg.IsStreaming {
		t.Error("aborted message should not be streaming")
	}
	if !msg.Failed {
		t.Error("aborted message should be marked failed")
	}
	// Still visible in the transcript.
	if conv.MessageCount() != 2 {
		t.Errorf("MessageCount() = %d, want 2", conv.MessageCount())
	}
	// But excluded from upstream-bound history.
	wire := conv.ToChatMessages()
	if len(wire) != 1 || wire[0].Role != "user" {
		t.Errorf("ToChatMessages() = %+v, want only the user turn", wire)
	}

	// The next turn can open a fresh placeholder.
	if _, err := conv.BeginAssistantMessage(); err != nil {
		t.Errorf("BeginAssistantMessage() after abort error = %v", err)
	}
}

func TestConversation_ToChatMessagesSkipsOpenPlaceholder(t *testing.T) {
	conv := NewConversation()
	conv.AddUserMessage("q1")
	streamTurn(t, conv, "a1")
	conv.AddUserMessage("q2")
	if _, err := conv.BeginAssistantMessage(); err != nil {
		t.Fatal(err)
	}
	conv.AppendToStreaming("in flight")

	wire := conv.ToChatMessages()
	want := []struct{ role, content string }{
		{"user", "q1"}, {"assistant", "a1"}, {"user", "q2"},
	}
	if len(wire) != len(want) {
		t.Fatalf("ToChatMessages() len = %d, want %d", len(wire), len(want))
	}
	for i, w := range want {
		if wire[i].Role != w.role || wire[i].Content != w.content {
			t.Errorf("wire[%d] = %+v, want %+v", i, wire[i], w)
		}
	}
}

// streamTurn streams one complete assistant turn.
func streamTurn(t *testing.T, c *Conversation, text string) {
	t.Helper()
	if _, err := c.BeginAssistantMessage(); err != nil {
		t.Fatal(err)
	}
	c.AppendToStreaming(text)
	c.FinalizeStreaming(text, 0, false)
}

func TestConversation_Clear(t *testing.T) {
	conv := NewConversation()
	conv.AddUserMessage("hi")
	if _, err := conv.BeginAssistantMessage(); err != nil {
		t.Fatal(err)
	}

	conv.Clear()

	if !conv.IsEmpty() {
		t.Error("Clear() should empty the transcript")
	}
	if conv.IsStreaming() {
		t.Error("Clear() should drop the open placeholder")
	}
	if _, err := conv.BeginAssistantMessage(); err != nil {
		t.Errorf("BeginAssistantMessage() after Clear() error = %v", err)
	}
}

func TestConversation_PruneOldMessages(t *testing.T) {
	conv := NewConversation()
	for i := 0; i < MaxMessages+10; i++ {
		conv.AddUserMessage("msg")
	}
	if conv.MessageCount() != MaxMessages {
		t.Errorf("MessageCount() = %d, want %d", conv.MessageCount(), MaxMessages)
	}
}

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestMessage_FormatDuration(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want string
	}{
		{"no duration", Message{Role: RoleAssistant}, ""},
		{"user message never annotated", Message{Role: RoleUser, Duration: 2.5, HasDuration: true}, ""},
		{"fractional", Message{Role: RoleAssistant, Duration: 2.5, HasDuration: true}, "2.5s"},
		{"two decimals", Message{Role: RoleAssistant, Duration: 1.87, HasDuration: true}, "1.87s"},
		{"whole", Message{Role: RoleAssistant, Duration: 3.0, HasDuration: true}, "3s"},
		{"zero reported", Message{Role: RoleAssistant, Duration: 0, HasDuration: true}, "0s"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.msg.FormatDuration(); got != tc.want {
				t.Errorf("FormatDuration() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestMessage_Preview(t *testing.T) {
	msg := NewUserMessage("こんにちは、元気ですか?今日はいい天気ですね")
	got := msg.Preview(10)
	if runes := []rune(got); len(runes) != 10 {
		t.Errorf("Preview(10) rune length = %d, want 10 (%q)", len(runes), got)
	}
}

func TestMessage_AppendAfterFinalizeIgnored(t *testing.T) {
	msg := NewAssistantMessage()
	msg.AppendToken("done")
	msg.FinalizeStream("done", 0, false)
	msg.AppendToken(" more")
	if msg.GetDisplayContent() != "done" {
		t.Errorf("content = %q, want %q", msg.GetDisplayContent(), "done")
	}
}
