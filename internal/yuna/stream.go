// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package yuna provides the HTTP client for communicating with the Yuna
// backend API.
package yuna

import (
	"context"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// DurationSentinel separates the response body from the duration trailer in
// a chat stream. Everything before it is body text; everything after it, to
// end of stream, is the server's generation time in seconds.
//
// The protocol has no escaping: a response body that legitimately contains
// this literal would be truncated at its first occurrence. Accepted
// server-compatibility limitation.
const DurationSentinel = "__DURATION__"

// readBufSize is the per-Read buffer. Chunks from the server are typically
// token-sized, far below this.
const readBufSize = 4096

// =============================================================================
// STREAM READER
// =============================================================================

// StreamReader incrementally parses a chat response stream: raw bytes in,
// ordered StreamChunk events out.
//
// The reader never assumes anything about chunk boundaries. Multi-byte UTF-8
// runes may be split across reads (the dangling bytes are buffered, never
// emitted as garbage), and the sentinel may be split across reads (a
// possible sentinel prefix at the tail is withheld until disambiguated).
type StreamReader struct {
	reader io.Reader
	buf    []byte

	// pending holds trailing bytes that do not yet form a complete rune.
	pending []byte

	// window holds decoded body text not yet released as a delta, at most
	// len(DurationSentinel)-1 long after each step.
	window string

	// PERFORMANCE: strings.Builder avoids quadratic allocations
	body    strings.Builder // all released body text
	trailer strings.Builder // everything after the sentinel

	sentinelSeen bool
}

// NewStreamReader creates a new stream reader from an io.Reader.
func NewStreamReader(r io.Reader) *StreamReader {
	return &StreamReader{
		reader: r,
		buf:    make([]byte, readBufSize),
	}
}

// Process reads the stream and calls the callback for each chunk.
// Blocks until the stream is complete or the context is cancelled.
// The terminal chunk (Done) is delivered through the callback; transport
// errors are returned and no Done chunk is emitted.
func (s *StreamReader) Process(ctx context.Context, callback StreamCallback) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			n, err := s.reader.Read(s.buf)
			if n > 0 {
				if delta := s.consume(s.buf[:n]); delta != "" {
					callback(StreamChunk{Content: delta})
				}
			}
			if err != nil {
				if err == io.EOF {
					callback(s.finish())
					return nil
				}
				return err
			}
		}
	}
}

// consume folds a raw chunk into the reader state and returns the body
// delta it releases, if any.
func (s *StreamReader) consume(p []byte) string {
	s.pending = append(s.pending, p...)
	decoded, rest := decodeComplete(s.pending)
	s.pending = rest

	if decoded == "" {
		return ""
	}

	if s.sentinelSeen {
		s.trailer.WriteString(decoded)
		return ""
	}

	s.window += decoded

	if idx := strings.Index(s.window, DurationSentinel); idx >= 0 {
		delta := s.window[:idx]
		s.trailer.WriteString(s.window[idx+len(DurationSentinel):])
		s.window = ""
		s.sentinelSeen = true
		s.body.WriteString(delta)
		return delta
	}

	// Withhold the longest tail that could still grow into the sentinel.
	hold := sentinelOverlap(s.window)
	delta := s.window[:len(s.window)-hold]
	s.window = s.window[len(s.window)-hold:]
	s.body.WriteString(delta)
	return delta
}

// finish builds the terminal chunk at end of stream.
func (s *StreamReader) finish() StreamChunk {
	// Whatever bytes remain can no longer complete a rune; decode with
	// replacement so nothing is silently dropped.
	if len(s.pending) > 0 {
		leftover := strings.ToValidUTF8(string(s.pending), string(utf8.RuneError))
		s.pending = nil
		if s.sentinelSeen {
			s.trailer.WriteString(leftover)
		} else {
			s.window += leftover
		}
	}

	chunk := StreamChunk{Done: true}

	if !s.sentinelSeen {
		// Stream ended without a trailer: the withheld tail is body
		// text after all.
		if idx := strings.Index(s.window, DurationSentinel); idx >= 0 {
			s.body.WriteString(s.window[:idx])
			s.trailer.WriteString(s.window[idx+len(DurationSentinel):])
			s.sentinelSeen = true
		} else if s.window != "" {
			chunk.Content = s.window
			s.body.WriteString(s.window)
		}
		s.window = ""
	}

	chunk.Final = strings.TrimSpace(s.body.String())

	if s.sentinelSeen {
		raw := strings.TrimSpace(s.trailer.String())
		if d, err := strconv.ParseFloat(raw, 64); err == nil {
			chunk.Duration = d
			chunk.HasDuration = true
		}
	}

	return chunk
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// decodeComplete splits b into the longest decodable prefix and the
// trailing bytes of an incomplete rune. Invalid bytes in the middle are
// replaced with U+FFFD rather than failing the stream.
func decodeComplete(b []byte) (string, []byte) {
	var sb strings.Builder
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			if !utf8.FullRune(b) && len(b) < utf8.UTFMax {
				// Possibly the head of a rune whose remaining
				// bytes are still in flight.
				break
			}
			sb.WriteRune(utf8.RuneError)
			b = b[1:]
			continue
		}
		sb.WriteRune(r)
		b = b[size:]
	}
	rest := make([]byte, len(b))
	copy(rest, b)
	return sb.String(), rest
}

// sentinelOverlap returns the length of the longest suffix of s that is a
// proper prefix of the sentinel.
func sentinelOverlap(s string) int {
	max := len(DurationSentinel) - 1
	if len(s) < max {
		max = len(s)
	}
	for k := max; k > 0; k-- {
		if strings.HasPrefix(DurationSentinel, s[len(s)-k:]) {
			return k
		}
	}
	return 0
}
