// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"testing"
	"time"
)

// =============================================================================
// STREAMING BUFFER TESTS
// =============================================================================

func TestStreamingBuffer_BatchSizeFlush(t *testing.T) {
	sb := NewStreamingBufferWithConfig(3, 30)

	sb.Write("a")
	sb.Write("b")
	if _, ok := sb.Flush(); ok {
		t.Error("buffer below batch size should not flush immediately")
	}

	sb.Write("c")
	content, ok := sb.Flush()
	if !ok {
		t.Fatal("buffer at batch size should flush")
	}
	if content != "abc" {
		t.Errorf("flushed content = %q", content)
	}
	if sb.Pending() != 0 {
		t.Errorf("pending after flush = %d", sb.Pending())
	}
}

func TestStreamingBuffer_TimeBasedFlush(t *testing.T) {
	sb := NewStreamingBufferWithConfig(100, 60)

	sb.Write("slow token")
	time.Sleep(25 * time.Millisecond)

	content, ok := sb.Flush()
	if !ok {
		t.Fatal("buffer should flush after the frame interval")
	}
	if content != "slow token" {
		t.Errorf("flushed content = %q", content)
	}
}

func TestStreamingBuffer_ForceFlush(t *testing.T) {
	sb := NewStreamingBuffer()

	sb.Write("tail")
	content, ok := sb.ForceFlush()
	if !ok || content != "tail" {
		t.Errorf("ForceFlush = %q, %v", content, ok)
	}

	if _, ok := sb.ForceFlush(); ok {
		t.Error("empty buffer should not force-flush")
	}
}

func TestStreamingBuffer_Reset(t *testing.T) {
	sb := NewStreamingBuffer()

	sb.Write("discard me")
	sb.Reset()

	if _, ok := sb.ForceFlush(); ok {
		t.Error("reset buffer should be empty")
	}
}

func TestStreamingBuffer_PreservesTokenOrder(t *testing.T) {
	sb := NewStreamingBufferWithConfig(1000, 30)

	tokens := []string{"The ", "quick ", "brown ", "fox"}
	for _, tok := range tokens {
		sb.Write(tok)
	}

	content, ok := sb.ForceFlush()
	if !ok {
		t.Fatal("expected content")
	}
	if content != strings.Join(tokens, "") {
		t.Errorf("content = %q", content)
	}
}

func TestStreamingBuffer_ConcurrentWrites(t *testing.T) {
	sb := NewStreamingBufferWithConfig(10000, 30)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 500; i++ {
			sb.Write("x")
		}
		close(done)
	}()
	for i := 0; i < 500; i++ {
		sb.Write("y")
	}
	<-done

	content, ok := sb.ForceFlush()
	if !ok {
		t.Fatal("expected content")
	}
	if len(content) != 1000 {
		t.Errorf("lost tokens under concurrency: got %d bytes", len(content))
	}
}
