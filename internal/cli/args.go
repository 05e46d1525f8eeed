// args.go - Argument parsing for the yuna CLI.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/jeranaias/yuna-tui/internal/config"
)

// Version information, overwritten at build time by the linker.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// COMMAND ROUTING
// =============================================================================

// Command identifies the top-level CLI command.
type Command int

const (
	// CmdTUI launches the interactive chat interface (the default).
	CmdTUI Command = iota
	// CmdAsk sends a single question and prints the response.
	CmdAsk
	// CmdVersion prints version information.
	CmdVersion
	// CmdHelp prints usage.
	CmdHelp
)

// Parse inspects os.Args and returns the command plus its remaining args.
func Parse() (Command, []string) {
	args := os.Args[1:]
	if len(args) == 0 {
		return CmdTUI, nil
	}

	switch args[0] {
	case "ask":
		return CmdAsk, args[1:]
	case "version", "--version", "-v":
		return CmdVersion, nil
	case "help", "--help", "-h":
		return CmdHelp, nil
	default:
		return CmdTUI, args
	}
}

// =============================================================================
// ARG PARSER
// =============================================================================

// ArgParser separates flags from positional arguments.
// Supported flag formats:
//
//	--flag value     Long flag with space-separated value
//	--flag=value     Long flag with equals sign
//	--flag           Boolean flag (no value)
type ArgParser struct {
	flags      map[string]string
	boolFlags  map[string]bool
	positional []string
}

// boolArgFlags names the flags that never take a value.
var boolArgFlags = map[string]bool{
	"render": true,
	"speak":  true,
	"quiet":  true,
}

// NewArgParser creates an argument parser from raw arguments.
func NewArgParser(raw []string) *ArgParser {
	parser := &ArgParser{
		flags:     make(map[string]string),
		boolFlags: make(map[string]bool),
	}

	i := 0
	for i < len(raw) {
		arg := raw[i]

		if strings.HasPrefix(arg, "-") {
			name := strings.TrimLeft(arg, "-")

			if eq := strings.Index(name, "="); eq >= 0 {
				value := name[eq+1:]
				name = name[:eq]
				if value == "true" || value == "false" {
					parser.boolFlags[name] = value == "true"
				} else {
					parser.flags[name] = value
				}
				i++
				continue
			}

			if boolArgFlags[name] || i+1 >= len(raw) {
				parser.boolFlags[name] = true
				i++
				continue
			}

			parser.flags[name] = raw[i+1]
			i += 2
			continue
		}

		parser.positional = append(parser.positional, arg)
		i++
	}

	return parser
}

// Flag returns a string flag value, or "" when unset.
func (p *ArgParser) Flag(name string) string {
	return p.flags[name]
}

// BoolFlag reports whether a boolean flag was set.
func (p *ArgParser) BoolFlag(name string) bool {
	return p.boolFlags[name]
}

// Positional returns the positional arguments.
func (p *ArgParser) Positional() []string {
	return p.positional
}

// =============================================================================
// COMMAND HANDLERS
// =============================================================================

// HandleAsk parses flags for the ask command and runs it.
// Exits the process with the command's exit code.
func HandleAsk(args []string) {
	parser := NewArgParser(args)

	question := strings.TrimSpace(strings.Join(parser.Positional(), " "))
	if question == "" {
		fmt.Fprintln(os.Stderr, "Usage: yuna ask [--render] [--speak] [--quiet] <question>")
		os.Exit(2)
	}

	cfg, err := loadConfig(parser.Flag("config"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := AskOptions{
		Render: parser.BoolFlag("render"),
		Speak:  parser.BoolFlag("speak"),
		Quiet:  parser.BoolFlag("quiet"),
	}
	os.Exit(RunAsk(cfg, question, opts))
}

// loadConfig loads configuration, honoring an explicit --config path.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("yuna %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
}

// PrintUsage prints top-level usage.
func PrintUsage() {
	fmt.Println(`yuna - terminal client for the Yuna chat server

Usage:
  yuna                 Launch the interactive chat TUI
  yuna ask <question>  Ask one question and print the streamed answer
  yuna version         Print version information
  yuna help            Show this help

Ask flags:
  --render   Render the response as markdown (TTY only, buffers output)
  --speak    Speak the response through VOICEVOX
  --quiet    Suppress the duration footer
  --config   Path to an alternate config file

Environment:
  YUNA_SERVER_URL  Backend base URL (default http://127.0.0.1:5000)
  YUNA_SPEAKER     VOICEVOX speaker id
  YUNA_TTS         Set to 1/true to speak responses in the TUI`)
}
