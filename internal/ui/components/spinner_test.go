// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"
)

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{5 * time.Second, "5s"},
		{59 * time.Second, "59s"},
		{60 * time.Second, "1m 0s"},
		{125 * time.Second, "2m 5s"},
		{10 * time.Minute, "10m 0s"},
	}

	for _, tc := range tests {
		if got := formatElapsed(tc.d); got != tc.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestSpinner_ViewOnlyWhenActive(t *testing.T) {
	s := NewThinkingSpinner()
	if s.View() != "" {
		t.Error("inactive spinner should render nothing")
	}

	s.Start()
	if !strings.Contains(s.View(), "Thinking") {
		t.Errorf("active spinner should show its message, got %q", s.View())
	}

	s.Stop()
	if s.View() != "" {
		t.Error("stopped spinner should render nothing")
	}
}
