// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.URL != "http://127.0.0.1:5000" {
		t.Errorf("Server.URL = %q", cfg.Server.URL)
	}
	if cfg.Server.TimeoutSecs != 30 {
		t.Errorf("Server.TimeoutSecs = %d, want 30", cfg.Server.TimeoutSecs)
	}
	if cfg.TTS.Speaker != 2 {
		t.Errorf("TTS.Speaker = %d, want 2", cfg.TTS.Speaker)
	}
	if cfg.TTS.Enabled {
		t.Error("TTS should be off by default")
	}
	if cfg.Chat.ResetOnPersonaSwitch {
		t.Error("persona switch should keep history by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestConfig_Timeout(t *testing.T) {
	cfg := &Config{Server: ServerConfig{TimeoutSecs: 45}}
	if got := cfg.Timeout(); got != 45*time.Second {
		t.Errorf("Timeout() = %v", got)
	}
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[server]
url = "http://192.168.1.10:5000"
timeout_secs = 60

[chat]
reset_on_persona_switch = true

[tts]
enabled = true
speaker = 8

[ui]
theme = "light"
word_wrap = 80
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}

	if cfg.Server.URL != "http://192.168.1.10:5000" {
		t.Errorf("Server.URL = %q", cfg.Server.URL)
	}
	if cfg.Server.TimeoutSecs != 60 {
		t.Errorf("TimeoutSecs = %d", cfg.Server.TimeoutSecs)
	}
	if !cfg.Chat.ResetOnPersonaSwitch {
		t.Error("ResetOnPersonaSwitch should be true")
	}
	if !cfg.TTS.Enabled || cfg.TTS.Speaker != 8 {
		t.Errorf("TTS = %+v", cfg.TTS)
	}
	if cfg.UI.Theme != "light" || cfg.UI.WordWrap != 80 {
		t.Errorf("UI = %+v", cfg.UI)
	}
}

func TestLoadFromPath_PartialFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[tts]\nenabled = true\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}

	if cfg.Server.URL != "http://127.0.0.1:5000" {
		t.Errorf("missing server.url should default, got %q", cfg.Server.URL)
	}
	if cfg.TTS.Speaker != 2 {
		t.Errorf("missing tts.speaker should default, got %d", cfg.TTS.Speaker)
	}
	if !cfg.TTS.Enabled {
		t.Error("explicit tts.enabled should survive")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"bad url", func(c *Config) { c.Server.URL = "not a url" }, true},
		{"negative timeout", func(c *Config) { c.Server.TimeoutSecs = -1 }, true},
		{"negative speaker", func(c *Config) { c.TTS.Speaker = -3 }, true},
		{"bad theme", func(c *Config) { c.UI.Theme = "solarized" }, true},
		{"negative wrap", func(c *Config) { c.UI.WordWrap = -80 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("YUNA_SERVER_URL", "http://10.0.0.5:5000")
	t.Setenv("YUNA_SPEAKER", "14")
	t.Setenv("YUNA_TTS", "true")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Server.URL != "http://10.0.0.5:5000" {
		t.Errorf("Server.URL = %q", cfg.Server.URL)
	}
	if cfg.TTS.Speaker != 14 {
		t.Errorf("TTS.Speaker = %d", cfg.TTS.Speaker)
	}
	if !cfg.TTS.Enabled {
		t.Error("YUNA_TTS=true should enable TTS")
	}
}

func TestApplyEnvOverrides_BadSpeakerIgnored(t *testing.T) {
	t.Setenv("YUNA_SPEAKER", "loud")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.TTS.Speaker != 2 {
		t.Errorf("non-numeric YUNA_SPEAKER should be ignored, got %d", cfg.TTS.Speaker)
	}
}

func TestLoad_FirstRunWritesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if _, err := Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	path := filepath.Join(home, ".yuna", "config.toml")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("first run should write the default config file: %v", err)
	}

	// The written file holds the pristine defaults.
	got := Default()
	if err := LoadTOML(got, path); err != nil {
		t.Fatalf("LoadTOML() error = %v", err)
	}
	if got.Server.URL != "http://127.0.0.1:5000" {
		t.Errorf("written server.url = %q", got.Server.URL)
	}
	if got.TTS.Speaker != 2 {
		t.Errorf("written tts.speaker = %d", got.TTS.Speaker)
	}

	// A second load reads the file back without error.
	if _, err := Load(); err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
}

func TestSaveTOMLRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	want := Default()
	want.Server.URL = "http://127.0.0.1:9999"
	want.TTS.Enabled = true

	if err := SaveTOML(want, path); err != nil {
		t.Fatalf("SaveTOML() error = %v", err)
	}

	got := Default()
	if err := LoadTOML(got, path); err != nil {
		t.Fatalf("LoadTOML() error = %v", err)
	}

	if got.Server.URL != want.Server.URL {
		t.Errorf("round-tripped URL = %q", got.Server.URL)
	}
	if got.TTS.Enabled != want.TTS.Enabled {
		t.Error("round-tripped TTS.Enabled lost")
	}
}
