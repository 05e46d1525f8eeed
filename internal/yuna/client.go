// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package yuna provides the HTTP client for communicating with the Yuna
// backend API.
package yuna

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the Yuna client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeNotRunning
	ErrTypeTimeout
	ErrTypeConnection
	ErrTypeInvalidResponse
	ErrTypeTTSEngineDown
	ErrTypeServer
)

// Sentinel errors for easy checking.
var (
	ErrNotRunning    = &ClientError{Type: ErrTypeNotRunning, Message: "the Yuna server is not running"}
	ErrTimeout       = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrTTSEngineDown = &ClientError{Type: ErrTypeTTSEngineDown, Message: "the VOICEVOX engine is not running"}
)

// IsNotRunning checks if an error indicates the server is not running.
func IsNotRunning(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeNotRunning
	}
	return errors.Is(err, ErrNotRunning)
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// IsTTSEngineDown checks if an error means the speech engine is offline.
// This is the 503 path of /api/tts, surfaced distinctly so the UI can name
// the engine instead of showing a generic failure.
func IsTTSEngineDown(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTTSEngineDown
	}
	return errors.Is(err, ErrTTSEngineDown)
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the Yuna client.
type ClientConfig struct {
	// BaseURL is the backend base URL (default: http://127.0.0.1:5000)
	// Note: Uses explicit IPv4 address instead of localhost to avoid IPv6 resolution issues on Windows
	BaseURL string

	// Timeout for non-streaming requests (default: 30s)
	Timeout time.Duration

	// Speaker is the VOICEVOX voice id for TTS requests (default: 2)
	Speaker int
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: "http://127.0.0.1:5000",
		Timeout: 30 * time.Second,
		Speaker: 2,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the Yuna backend API.
//
// The Client is thread-safe for concurrent use.
//
// Example:
//
//	client := yuna.NewClient()
//	err := client.ChatStream(ctx, req, func(chunk yuna.StreamChunk) { ... })
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a new Yuna client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new Yuna client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:5000"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.Speaker == 0 {
		config.Speaker = 2
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// GetConfig returns the client configuration.
func (c *Client) GetConfig() *ClientConfig {
	return c.config
}

// =============================================================================
// STREAMING CHAT
// =============================================================================

// StreamCallback is called for each chunk received during streaming.
type StreamCallback func(chunk StreamChunk)

// ChatStream sends a streaming chat request and calls the callback for each
// chunk, strictly in stream order, ending with one Done chunk.
//
// A non-2xx status fails the call before any chunk is delivered, so a server
// that errors out never leaves a half-open turn behind. A transport failure
// mid-stream is returned as an error; the chunks already delivered stand,
// but no Done chunk follows.
func (c *Client) ChatStream(ctx context.Context, chatReq ChatRequest, callback StreamCallback) error {
	body, err := json.Marshal(chatReq)
	if err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	// Use a client without timeout for streaming (we handle timeout via context)
	// SECURITY: TLS not required - the backend runs locally over HTTP
	streamClient := &http.Client{}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := streamClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return ErrTimeout
		}
		return ErrNotRunning
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.statusError(resp, "chat request failed")
	}

	reader := NewStreamReader(resp.Body)
	return reader.Process(ctx, callback)
}

// =============================================================================
// CHARACTERS
// =============================================================================

// Characters retrieves all personas from the server.
func (c *Client) Characters(ctx context.Context) ([]Character, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/api/characters", nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ErrNotRunning
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp, "failed to list characters")
	}

	var result []Character
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return result, nil
}

// CreateCharacter saves a new persona and returns it with the server-assigned
// id and avatar.
func (c *Client) CreateCharacter(ctx context.Context, create CreateCharacterRequest) (*Character, error) {
	body, err := json.Marshal(create)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/api/characters", bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ErrNotRunning
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp, "failed to create character")
	}

	var result Character
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return &result, nil
}

// DeleteCharacter removes a persona by id. Deleting "default" is rejected
// client-side with the same error the server would return, saving a round
// trip for a request that can never succeed.
func (c *Client) DeleteCharacter(ctx context.Context, id string) error {
	if id == "default" {
		return &ClientError{Type: ErrTypeServer, Message: "Cannot delete default character"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.config.BaseURL+"/api/characters/"+id, nil)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return ErrNotRunning
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.statusError(resp, "failed to delete character")
	}

	io.Copy(io.Discard, resp.Body)
	return nil
}

// =============================================================================
// PROMPT GENERATION
// =============================================================================

// GeneratePrompt asks the server to write a system prompt from a free-form
// instruction. The server can answer 200 with an error field, which is
// surfaced the same way as a failure status.
func (c *Client) GeneratePrompt(ctx context.Context, instruction string) (string, error) {
	body, err := json.Marshal(GeneratePromptRequest{Instruction: instruction})
	if err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/api/generate_prompt", bytes.NewReader(body))
	if err != nil {
		return "", &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", ErrNotRunning
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", c.statusError(resp, "prompt generation failed")
	}

	var result GeneratePromptResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	if result.Error != "" {
		return "", &ClientError{Type: ErrTypeServer, Message: result.Error}
	}

	return result.SystemPrompt, nil
}

// =============================================================================
// TEXT TO SPEECH
// =============================================================================

// Synthesize converts text to WAV audio via the server's VOICEVOX bridge.
// A 503 means the engine itself is offline and maps to ErrTypeTTSEngineDown;
// everything else is a generic failure.
func (c *Client) Synthesize(ctx context.Context, text string, speaker int) ([]byte, error) {
	if speaker == 0 {
		speaker = c.config.Speaker
	}

	body, err := json.Marshal(TTSRequest{Text: text, Speaker: speaker})
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/api/tts", bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ErrNotRunning
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusServiceUnavailable {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return nil, &ClientError{Type: ErrTypeTTSEngineDown, Message: apiErr.Error}
		}
		return nil, ErrTTSEngineDown
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp, "speech synthesis failed")
	}

	wav, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to read audio", Cause: err}
	}

	return wav, nil
}

// =============================================================================
// HELPERS
// =============================================================================

// statusError turns a failure response into a ClientError, preferring the
// server's own error message when the body carries one.
func (c *Client) statusError(resp *http.Response, fallback string) error {
	var apiErr apiError
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
		return &ClientError{Type: ErrTypeServer, Message: apiErr.Error}
	}
	return &ClientError{
		Type:    ErrTypeInvalidResponse,
		Message: fallback + ": " + resp.Status,
	}
}
