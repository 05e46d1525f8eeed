// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build windows
// +build windows

// Package audio plays synthesized speech through the platform's audio
// player binary.
package audio

import (
	"fmt"
	"os/exec"
	"syscall"
)

// playbackCommand builds the command that plays a WAV file on Windows.
// Uses the built-in SoundPlayer so no third-party binary is required.
func playbackCommand(path string) (*exec.Cmd, error) {
	ps, err := exec.LookPath("powershell.exe")
	if err != nil {
		return nil, fmt.Errorf("powershell.exe not found: %w", err)
	}

	script := fmt.Sprintf(
		"(New-Object System.Media.SoundPlayer '%s').PlaySync()", path)
	cmd := exec.Command(ps, "-NoProfile", "-NonInteractive", "-Command", script)

	// Hide the console window that PowerShell would otherwise flash up.
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: 0x08000000, // CREATE_NO_WINDOW
	}

	return cmd, nil
}
