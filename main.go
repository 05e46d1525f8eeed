// yuna TUI - A terminal client for the Yuna chat server.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/yuna-tui/internal/cli"
	"github.com/jeranaias/yuna-tui/internal/config"
	"github.com/jeranaias/yuna-tui/internal/markdown"
	"github.com/jeranaias/yuna-tui/internal/ui/chat"
	"github.com/jeranaias/yuna-tui/internal/ui/styles"
	"github.com/jeranaias/yuna-tui/internal/yuna"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdAsk:
		cli.HandleAsk(args)
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	default:
		runTUI(args)
	}
}

// runTUI starts the interactive chat interface.
func runTUI(args []string) {
	configPath := ""
	for i := 0; i < len(args)-1; i++ {
		if args[i] == "--config" {
			configPath = args[i+1]
		}
	}

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFromPath(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	styles.ApplyThemeSetting(cfg.UI.Theme)
	markdown.SetStyle(styles.GlamourStyle(cfg.UI.Theme))

	client := yuna.NewClientWithConfig(&yuna.ClientConfig{
		BaseURL: cfg.Server.URL,
		Timeout: cfg.Timeout(),
		Speaker: cfg.TTS.Speaker,
	})

	m := chat.New(client, cfg)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	// The runner needs the program handle to push stream events back into
	// the update loop, so it is attached after the program is built.
	m.SetRunner(chat.NewStreamRunner(p, client))

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
