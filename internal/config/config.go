// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for yuna.
//
// Configuration is TOML with sensible defaults, environment variable
// overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.yuna/config.toml
//   - Built-in defaults
package config

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/yuna-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete yuna configuration.
type Config struct {
	// Server configuration
	Server ServerConfig `toml:"server"`

	// Chat behavior
	Chat ChatConfig `toml:"chat"`

	// TTS configuration
	TTS TTSConfig `toml:"tts"`

	// UI configuration
	UI UIConfig `toml:"ui"`
}

// ServerConfig points the client at the Yuna backend.
type ServerConfig struct {
	// URL is the backend base URL
	URL string `toml:"url"`
	// TimeoutSecs is the timeout for non-streaming requests
	TimeoutSecs int `toml:"timeout_secs"`
}

// ChatConfig contains chat behavior settings.
type ChatConfig struct {
	// ResetOnPersonaSwitch clears the conversation when the active persona
	// changes. Off by default: the dialogue continues with the new voice.
	ResetOnPersonaSwitch bool `toml:"reset_on_persona_switch"`
}

// TTSConfig contains speech synthesis settings.
type TTSConfig struct {
	// Enabled speaks each completed response aloud
	Enabled bool `toml:"enabled"`
	// Speaker is the VOICEVOX voice id
	Speaker int `toml:"speaker"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme"`
	// WordWrap is the markdown wrap width in columns (0 = renderer default)
	WordWrap int `toml:"word_wrap"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL:         "http://127.0.0.1:5000",
			TimeoutSecs: 30,
		},
		Chat: ChatConfig{
			ResetOnPersonaSwitch: false,
		},
		TTS: TTSConfig{
			Enabled: false,
			Speaker: 2,
		},
		UI: UIConfig{
			Theme:    "dark",
			WordWrap: 0,
		},
	}
}

// Timeout returns the server timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Server.TimeoutSecs) * time.Second
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the yuna configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".yuna"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file, falling back to defaults
// when no file exists. Environment overrides are applied last, then the
// result is validated.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadTOML(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load config: %w", err)
			}
		} else if os.IsNotExist(statErr) {
			// First run: write the defaults so there is a file to edit.
			// Best effort; a read-only home directory is not fatal.
			if err := EnsureConfigDir(); err == nil {
				_ = Save(cfg)
			}
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadTOML loads configuration from a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation, for the --config flag.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file. The write is atomic so
// a crash mid-save never leaves a truncated config behind.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# yuna configuration file\n")
	buf.WriteString("# Generated by yuna - edit with care\n\n")

	encoder := toml.NewEncoder(&buf)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.Server.URL != "" {
		u, err := url.Parse(c.Server.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			errs = append(errs, ValidationError{
				Field:   "server.url",
				Message: fmt.Sprintf("invalid URL '%s'", c.Server.URL),
			})
		}
	}

	if c.Server.TimeoutSecs < 0 {
		errs = append(errs, ValidationError{
			Field:   "server.timeout_secs",
			Message: "must be non-negative",
		})
	}

	if c.TTS.Speaker < 0 {
		errs = append(errs, ValidationError{
			Field:   "tts.speaker",
			Message: fmt.Sprintf("speaker id must be non-negative, got %d", c.TTS.Speaker),
		})
	}

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	if c.UI.WordWrap < 0 {
		errs = append(errs, ValidationError{
			Field:   "ui.word_wrap",
			Message: "must be non-negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults sets default values for any missing or zero-value fields.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Server.URL == "" {
		c.Server.URL = defaults.Server.URL
	}
	if c.Server.TimeoutSecs == 0 {
		c.Server.TimeoutSecs = defaults.Server.TimeoutSecs
	}
	if c.TTS.Speaker == 0 {
		c.TTS.Speaker = defaults.TTS.Speaker
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - YUNA_SERVER_URL: overrides server.url
//   - YUNA_SPEAKER: overrides tts.speaker
//   - YUNA_TTS: set to "1" or "true" to enable spoken responses
func (c *Config) ApplyEnvOverrides() {
	if serverURL := os.Getenv("YUNA_SERVER_URL"); serverURL != "" {
		c.Server.URL = serverURL
	}

	if speaker := os.Getenv("YUNA_SPEAKER"); speaker != "" {
		if id, err := strconv.Atoi(speaker); err == nil {
			c.TTS.Speaker = id
		}
	}

	if tts := os.Getenv("YUNA_TTS"); tts != "" {
		c.TTS.Enabled = tts == "1" || strings.ToLower(tts) == "true"
	}
}
