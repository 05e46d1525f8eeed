// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package audio plays synthesized speech through the platform's audio
// player binary.
//
// At most one clip plays at a time: starting a new one first stops the
// previous player process and deletes its temp file, so rapid-fire TTS
// never stacks overlapping voices or leaks WAV files.
package audio

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// Player manages playback of WAV clips. The zero value is not usable; call
// NewPlayer. Safe for concurrent use.
type Player struct {
	mu   sync.Mutex
	cmd  *exec.Cmd
	file string
	done chan struct{}
}

// NewPlayer creates an idle player.
func NewPlayer() *Player {
	return &Player{}
}

// Play writes the WAV bytes to a temp file and starts the platform player
// on it. Any clip still playing is stopped and its file removed first.
// Returns once playback has started; the clip finishes in the background.
func (p *Player) Play(wav []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()

	path := filepath.Join(os.TempDir(), "yuna-tts-"+uuid.NewString()+".wav")
	if err := os.WriteFile(path, wav, 0o600); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	cmd, err := playbackCommand(path)
	if err != nil {
		os.Remove(path)
		return err
	}
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to start audio player: %w", err)
	}

	done := make(chan struct{})
	p.cmd = cmd
	p.file = path
	p.done = done

	// Reap the process and clean up the temp file when the clip ends,
	// whether it finished naturally or was killed by Stop.
	go func(cmd *exec.Cmd, path string) {
		cmd.Wait()
		os.Remove(path)
		close(done)
	}(cmd, path)

	return nil
}

// Wait blocks until the current clip finishes or is stopped. Returns
// immediately when nothing is playing.
func (p *Player) Wait() {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()

	if done != nil {
		<-done
	}
}

// Stop halts the current clip, if any. Idempotent.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// IsPlaying reports whether a player process has been started and not yet
// stopped. The process may have finished on its own.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cmd != nil
}

// stopLocked kills the active player process. Caller holds p.mu.
func (p *Player) stopLocked() {
	if p.cmd != nil && p.cmd.Process != nil {
		p.cmd.Process.Kill()
	}
	p.cmd = nil
	p.file = ""
}
