// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !windows
// +build !windows

// Package audio plays synthesized speech through the platform's audio
// player binary.
package audio

import (
	"fmt"
	"os/exec"
)

// playerCandidates are tried in order. afplay ships with macOS; paplay and
// aplay cover PulseAudio and bare ALSA on Linux; ffplay is the last resort.
var playerCandidates = [][]string{
	{"afplay"},
	{"paplay"},
	{"aplay", "-q"},
	{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
}

// playbackCommand builds the command that plays a WAV file on Unix/macOS.
func playbackCommand(path string) (*exec.Cmd, error) {
	for _, candidate := range playerCandidates {
		bin, err := exec.LookPath(candidate[0])
		if err != nil {
			continue
		}
		args := append(candidate[1:], path)
		return exec.Command(bin, args...), nil
	}

	return nil, fmt.Errorf("no audio player found in PATH. " +
		"Checked: afplay, paplay, aplay, ffplay")
}
