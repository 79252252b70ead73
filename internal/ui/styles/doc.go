// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling for the padbot TUI.

# Colors (colors.go)

Every color is a Lip Gloss AdaptiveColor, so light and dark terminals both
read well:

	Indigo  - brand, header, bot label
	Cyan    - user label, info toasts
	Emerald - success
	Amber   - warnings
	Rose    - errors and failed turns

# Styles (theme.go)

Named styles for each region of the chat view: header, FAQ box, turn log,
input box (with a disabled variant shown while a question is in flight) and
status bar. StatusIndicators pair every color with an ASCII marker so state
is readable with NO_COLOR.

# Animations (animations.go)

SpinnerConfig frame sets for the pending-turn spinner.
*/
package styles
