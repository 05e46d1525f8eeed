// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the yuna TUI.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection.

# Color System (colors.go)

Accent colors:

  - Purple - Primary accent, assistant messages
  - Cyan - User highlights and info
  - Emerald - Success states
  - Amber - Warnings and system notices
  - Rose - Errors and failed responses

Text colors form a hierarchy:

	TextPrimary   - Main content text
	TextSecondary - Supporting text
	TextMuted     - De-emphasized text (timestamps, hints)
	TextInverse   - Text on colored backgrounds

# Theme System (theme.go)

The Theme struct bundles the derived styles and terminal capabilities:

	theme := styles.NewTheme()
	if theme.IsDark {
		// Dark terminal detected
	}

ApplyThemeSetting maps the config "ui.theme" value onto the light/dark
assumption, and GlamourStyle picks the matching markdown style name.

# Usage Example

	headerStyle := lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextPrimary)
*/
package styles
