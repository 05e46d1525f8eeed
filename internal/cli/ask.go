// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single query command handler for the yuna CLI.
//
// Handles the "yuna ask" command which sends one question to the backend
// and streams the response to stdout.
//
// Examples:
//
//	yuna ask "What should I cook tonight?"
//	yuna ask --render "Explain goroutines"
//	yuna ask --speak "Good morning!"
//	echo prompt | xargs yuna ask
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/yuna-tui/internal/audio"
	"github.com/jeranaias/yuna-tui/internal/config"
	"github.com/jeranaias/yuna-tui/internal/markdown"
	"github.com/jeranaias/yuna-tui/internal/ui/styles"
	"github.com/jeranaias/yuna-tui/internal/yuna"
)

// =============================================================================
// OPTIONS
// =============================================================================

// AskOptions configures the one-shot ask command.
type AskOptions struct {
	// Render buffers the whole response and prints it as rendered
	// markdown instead of streaming raw text. Only honored on a TTY.
	Render bool

	// Speak synthesizes the response and plays it after printing.
	Speak bool

	// Quiet suppresses the duration footer.
	Quiet bool
}

// =============================================================================
// STYLES
// =============================================================================

var askFooterStyle = lipgloss.NewStyle().
	Foreground(styles.TextMuted)

// =============================================================================
// ASK COMMAND
// =============================================================================

// RunAsk sends a single question and writes the response to stdout.
// Returns a process exit code.
func RunAsk(cfg *config.Config, question string, opts AskOptions) int {
	client := yuna.NewClientWithConfig(&yuna.ClientConfig{
		BaseURL: cfg.Server.URL,
		Timeout: cfg.Timeout(),
		Speaker: cfg.TTS.Speaker,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	req := yuna.ChatRequest{
		Messages: []yuna.ChatMessage{{Role: "user", Content: question}},
	}

	render := opts.Render && IsStdoutTTY()
	if render {
		markdown.SetStyle(styles.GlamourStyle(cfg.UI.Theme))
	}

	var final string
	var duration float64
	var hasDuration bool

	err := client.ChatStream(ctx, req, func(chunk yuna.StreamChunk) {
		if chunk.Error != nil {
			return
		}
		if chunk.Content != "" && !render {
			fmt.Print(chunk.Content)
		}
		if chunk.Done {
			final = chunk.Final
			duration = chunk.Duration
			hasDuration = chunk.HasDuration
		}
	})
	if err != nil {
		if !render {
			fmt.Println()
		}
		printAskError(err)
		return 1
	}

	if render {
		fmt.Print(markdown.RenderWidth(final, GetTerminalWidth()-2))
	}
	fmt.Println()

	if hasDuration && !opts.Quiet && IsStdoutTTY() {
		fmt.Println(askFooterStyle.Render(fmt.Sprintf("(took %.2fs)", duration)))
	}

	if opts.Speak && final != "" {
		if code := speakResponse(ctx, client, cfg, final); code != 0 {
			return code
		}
	}
	return 0
}

// speakResponse synthesizes and plays the response, blocking until the
// clip has been handed to the platform player.
func speakResponse(ctx context.Context, client *yuna.Client, cfg *config.Config, text string) int {
	wav, err := client.Synthesize(ctx, text, cfg.TTS.Speaker)
	if err != nil {
		printAskError(err)
		return 1
	}

	player := audio.NewPlayer()
	if err := player.Play(wav); err != nil {
		printAskError(err)
		return 1
	}
	player.Wait()
	return 0
}

// printAskError writes a friendly error line to stderr.
func printAskError(err error) {
	var msg string
	switch {
	case yuna.IsNotRunning(err):
		msg = "Cannot reach the Yuna server. Start it and try again."
	case yuna.IsTimeout(err):
		msg = "The request timed out."
	case yuna.IsTTSEngineDown(err):
		msg = "VOICEVOX engine is not running; cannot speak the response."
	default:
		msg = err.Error()
	}
	fmt.Fprintln(os.Stderr, styles.RenderError(msg))
}
