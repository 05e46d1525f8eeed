// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// THEME CREATION TESTS
// =============================================================================

func TestNewTheme(t *testing.T) {
	theme := NewTheme()

	if theme == nil {
		t.Fatal("NewTheme() returned nil")
	}

	styles := []struct {
		name  string
		style lipgloss.Style
	}{
		{"Header", theme.Header},
		{"UserLabel", theme.UserLabel},
		{"YunaLabel", theme.YunaLabel},
		{"SystemLabel", theme.SystemLabel},
		{"Error", theme.Error},
		{"Muted", theme.Muted},
		{"StatusBar", theme.StatusBar},
		{"InputBox", theme.InputBox},
		{"PickerCursor", theme.PickerCursor},
	}
	for _, s := range styles {
		if s.style.Render("test") == "" {
			t.Errorf("%s style should render content", s.name)
		}
	}
}

// =============================================================================
// THEME SETTING TESTS
// =============================================================================

func TestApplyThemeSetting(t *testing.T) {
	original := lipgloss.HasDarkBackground()
	defer lipgloss.SetHasDarkBackground(original)

	ApplyThemeSetting("dark")
	if !lipgloss.HasDarkBackground() {
		t.Error("dark setting should force dark background")
	}

	ApplyThemeSetting("light")
	if lipgloss.HasDarkBackground() {
		t.Error("light setting should force light background")
	}

	// Auto keeps whatever is currently detected.
	before := lipgloss.HasDarkBackground()
	ApplyThemeSetting("auto")
	if lipgloss.HasDarkBackground() != before {
		t.Error("auto should not change the background assumption")
	}
}

func TestGlamourStyle(t *testing.T) {
	tests := []struct {
		setting string
		want    string
	}{
		{"dark", "dark"},
		{"Light", "light"},
		{"auto", "auto"},
		{"", "auto"},
		{"unknown", "auto"},
	}

	for _, tc := range tests {
		if got := GlamourStyle(tc.setting); got != tc.want {
			t.Errorf("GlamourStyle(%q) = %q, want %q", tc.setting, got, tc.want)
		}
	}
}
