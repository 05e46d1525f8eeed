// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the non-interactive
// commands for yuna.
//
// The default invocation launches the chat TUI; this package handles
// everything else:
//
//   - ask: send one question, stream the answer to stdout
//   - version, help: informational output
//
// It also owns terminal capability detection (TTY checks, width, color
// support) shared by the ask command and the TUI bootstrap.
//
// # Usage
//
//	cmd, args := cli.Parse()
//	switch cmd {
//	case cli.CmdAsk:
//		cli.HandleAsk(args)
//	case cli.CmdVersion:
//		cli.PrintVersion()
//	}
package cli
