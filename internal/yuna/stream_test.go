// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package yuna

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// chunkedReader replays a fixed sequence of byte chunks, one per Read call,
// simulating arbitrary transport chunking.
type chunkedReader struct {
	chunks [][]byte
	pos    int
}

func (r *chunkedReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.chunks) {
		return 0, io.EOF
	}
	n := copy(p, r.chunks[r.pos])
	r.pos++
	return n, nil
}

// collect runs a reader over the given chunks and gathers the results.
func collect(t *testing.T, chunks [][]byte) (deltas []string, done StreamChunk) {
	t.Helper()
	reader := NewStreamReader(&chunkedReader{chunks: chunks})
	var gotDone bool
	err := reader.Process(context.Background(), func(chunk StreamChunk) {
		if gotDone {
			t.Fatal("chunk delivered after Done")
		}
		if chunk.Done {
			gotDone = true
			done = chunk
			return
		}
		deltas = append(deltas, chunk.Content)
	})
	require.NoError(t, err)
	require.True(t, gotDone, "stream must end with a Done chunk")
	return deltas, done
}

func TestStreamReader_SentinelAcrossChunks(t *testing.T) {
	// The canonical boundary case: the sentinel and the duration digits
	// are both split across reads.
	deltas, done := collect(t, [][]byte{
		[]byte("Hel"), []byte("lo __DUR"), []byte("ATION__2."), []byte("5"),
	})

	require.Equal(t, "Hello ", strings.Join(deltas, ""))
	require.Equal(t, "Hello", done.Final)
	require.True(t, done.HasDuration)
	require.Equal(t, 2.5, done.Duration)
}

func TestStreamReader_AllSplitPoints(t *testing.T) {
	// Splitting the same stream at every byte position must always yield
	// the same body and duration.
	full := "It was a **dark** and stormy night.\n__DURATION__3.14"
	wantDeltas := "It was a **dark** and stormy night.\n"
	wantFinal := "It was a **dark** and stormy night."

	for i := 0; i <= len(full); i++ {
		chunks := [][]byte{[]byte(full[:i]), []byte(full[i:])}
		deltas, done := collect(t, chunks)

		require.Equal(t, wantDeltas, strings.Join(deltas, ""), "split at %d", i)
		require.Equal(t, wantFinal, done.Final, "split at %d", i)
		require.True(t, done.HasDuration, "split at %d", i)
		require.Equal(t, 3.14, done.Duration, "split at %d", i)
	}
}

func TestStreamReader_MultiByteRuneSplit(t *testing.T) {
	// こんにちは, with every rune's bytes torn across two reads.
	body := "こんにちは!"
	full := body + "\n__DURATION__0.8"
	for i := 0; i <= len(full); i++ {
		deltas, done := collect(t, [][]byte{[]byte(full[:i]), []byte(full[i:])})

		require.Equal(t, body+"\n", strings.Join(deltas, ""), "split at %d", i)
		require.Equal(t, body, done.Final, "split at %d", i)
		require.Equal(t, 0.8, done.Duration, "split at %d", i)
	}
}

func TestStreamReader_OneBytePerRead(t *testing.T) {
	full := "応答テスト\n__DURATION__1.25"
	var chunks [][]byte
	for i := 0; i < len(full); i++ {
		chunks = append(chunks, []byte{full[i]})
	}

	deltas, done := collect(t, chunks)
	require.Equal(t, "応答テスト\n", strings.Join(deltas, ""))
	require.Equal(t, "応答テスト", done.Final)
	require.Equal(t, 1.25, done.Duration)
}

func TestStreamReader_NoTrailer(t *testing.T) {
	// Old or misbehaving server: stream ends without a sentinel.
	deltas, done := collect(t, [][]byte{[]byte("plain answer")})

	require.Equal(t, "plain answer", strings.Join(deltas, "")+done.Content)
	require.Equal(t, "plain answer", done.Final)
	require.False(t, done.HasDuration, "missing trailer must not invent a duration")
}

func TestStreamReader_UnparsableTrailer(t *testing.T) {
	_, done := collect(t, [][]byte{[]byte("answer\n__DURATION__fast")})

	require.Equal(t, "answer", done.Final)
	require.False(t, done.HasDuration, "garbage trailer must not produce a duration")
}

func TestStreamReader_EmptyTrailer(t *testing.T) {
	_, done := collect(t, [][]byte{[]byte("answer\n__DURATION__")})

	require.Equal(t, "answer", done.Final)
	require.False(t, done.HasDuration)
}

func TestStreamReader_SentinelLookalikes(t *testing.T) {
	// Underscore runs that almost form the sentinel must pass through as
	// body text.
	tests := []struct {
		name string
		body string
	}{
		{"single underscores", "snake_case_name here"},
		{"double underscores", "__init__ method"},
		{"truncated sentinel", "__DURATION_ is close"},
		{"lowercase", "__duration__ is not it"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			full := tc.body + "\n__DURATION__2.0"
			for i := 0; i <= len(full); i++ {
				deltas, done := collect(t, [][]byte{[]byte(full[:i]), []byte(full[i:])})
				require.Equal(t, tc.body+"\n", strings.Join(deltas, ""), "split at %d", i)
				require.Equal(t, tc.body, done.Final, "split at %d", i)
				require.True(t, done.HasDuration, "split at %d", i)
			}
		})
	}
}

func TestStreamReader_BodyAfterSentinelDiscardedFromDeltas(t *testing.T) {
	// Everything after the sentinel is trailer, even when it looks like
	// prose; no delta may contain it.
	deltas, done := collect(t, [][]byte{[]byte("yes\n__DURATION__1.0 trailing junk")})

	for _, d := range deltas {
		require.NotContains(t, d, "junk")
	}
	require.Equal(t, "yes", done.Final)
	// "1.0 trailing junk" does not parse as a float.
	require.False(t, done.HasDuration)
}

func TestStreamReader_EmptyBody(t *testing.T) {
	deltas, done := collect(t, [][]byte{[]byte("__DURATION__0.5")})

	require.Empty(t, strings.Join(deltas, ""))
	require.Equal(t, "", done.Final)
	require.Equal(t, 0.5, done.Duration)
	require.True(t, done.HasDuration)
}

func TestStreamReader_EmptyStream(t *testing.T) {
	deltas, done := collect(t, nil)

	require.Empty(t, deltas)
	require.Equal(t, "", done.Final)
	require.False(t, done.HasDuration)
}

func TestStreamReader_InvalidUTF8Replaced(t *testing.T) {
	// A stray invalid byte becomes U+FFFD instead of killing the stream.
	deltas, done := collect(t, [][]byte{{'o', 'k', 0xFF, '!'}})

	joined := strings.Join(deltas, "") + done.Content
	require.Equal(t, "ok�!", joined)
	require.Equal(t, "ok�!", done.Final)
}

func TestStreamReader_DanglingRuneAtEOF(t *testing.T) {
	// Stream dies mid-rune: the partial bytes surface as a replacement
	// char in the final text, not as garbage.
	kon := []byte("こ")
	_, done := collect(t, [][]byte{append([]byte("x"), kon[:2]...)})

	require.Equal(t, "x�", done.Final)
}

func TestStreamReader_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reader := NewStreamReader(strings.NewReader("never delivered"))
	err := reader.Process(ctx, func(chunk StreamChunk) {
		t.Fatal("no chunk should be delivered after cancellation")
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestStreamReader_TransportError(t *testing.T) {
	boom := errors.New("connection reset")
	reader := NewStreamReader(io.MultiReader(
		strings.NewReader("partial "),
		&failingReader{err: boom},
	))

	var deltas []string
	err := reader.Process(context.Background(), func(chunk StreamChunk) {
		require.False(t, chunk.Done, "no Done chunk on transport failure")
		deltas = append(deltas, chunk.Content)
	})

	require.ErrorIs(t, err, boom)
	require.Equal(t, "partial ", strings.Join(deltas, ""))
}

type failingReader struct{ err error }

func (r *failingReader) Read(p []byte) (int, error) { return 0, r.err }
