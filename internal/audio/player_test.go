// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package audio

import "testing"

func TestPlayer_StopIdempotent(t *testing.T) {
	p := NewPlayer()

	// Stop on an idle player must be a no-op, any number of times.
	p.Stop()
	p.Stop()

	if p.IsPlaying() {
		t.Error("idle player should not report playing")
	}
}

func TestPlayer_StopAfterFailedPlay(t *testing.T) {
	p := NewPlayer()

	// An empty byte slice still writes and starts (the player binary will
	// reject it) unless no binary exists; either way the player must stay
	// consistent.
	_ = p.Play([]byte{})
	p.Stop()
	p.Stop()

	if p.IsPlaying() {
		t.Error("player should be idle after Stop")
	}
}
