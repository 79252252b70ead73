// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling for the padbot TUI.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
package styles

import "github.com/charmbracelet/lipgloss"

// StatusIndicators are ASCII symbols paired with colors so state is readable
// without color.
var StatusIndicators = struct {
	Success string
	Error   string
	Warning string
	Info    string
	Pending string
}{
	Success: "[OK]",
	Error:   "[!!]",
	Warning: "[!]",
	Info:    "[i]",
	Pending: "[..]",
}

// =============================================================================
// HEADER
// =============================================================================

// HeaderTitle renders the application title.
var HeaderTitle = lipgloss.NewStyle().
	Foreground(TextInverse).
	Background(Indigo).
	Bold(true).
	Padding(0, 2)

// HeaderDescription renders the line under the title.
var HeaderDescription = lipgloss.NewStyle().
	Foreground(TextSecondary).
	Italic(true).
	PaddingLeft(1)

// =============================================================================
// FAQ
// =============================================================================

// FAQBox frames the FAQ section.
var FAQBox = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(Overlay).
	Padding(0, 1)

// FAQHeading renders the "Frequently Asked Questions" label.
var FAQHeading = lipgloss.NewStyle().
	Foreground(Indigo).
	Bold(true)

// FAQQuestion renders an FAQ question.
var FAQQuestion = lipgloss.NewStyle().
	Foreground(TextPrimary).
	Bold(true)

// FAQAnswer renders an FAQ answer.
var FAQAnswer = lipgloss.NewStyle().
	Foreground(TextSecondary).
	PaddingLeft(2)

// =============================================================================
// TURNS
// =============================================================================

// UserLabel renders "User:".
var UserLabel = lipgloss.NewStyle().
	Foreground(Cyan).
	Bold(true)

// BotLabel renders "PAD-Bot:".
var BotLabel = lipgloss.NewStyle().
	Foreground(Indigo).
	Bold(true)

// QuestionText renders the user's question.
var QuestionText = lipgloss.NewStyle().
	Foreground(TextPrimary)

// PendingText renders the waiting indicator.
var PendingText = lipgloss.NewStyle().
	Foreground(TextMuted).
	Italic(true)

// FailedAnswer frames the answer of a failed turn.
var FailedAnswer = lipgloss.NewStyle().
	Foreground(Rose).
	BorderStyle(lipgloss.NormalBorder()).
	BorderLeft(true).
	BorderForeground(Rose).
	PaddingLeft(1)

// Timestamp renders the turn time and latency.
var Timestamp = lipgloss.NewStyle().
	Foreground(TextMuted)

// Separator renders the rule between turns.
var Separator = lipgloss.NewStyle().
	Foreground(Overlay)

// =============================================================================
// INPUT & STATUS
// =============================================================================

// InputBox frames the question input.
var InputBox = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(Indigo).
	Padding(0, 1)

// InputBoxDisabled frames the input while a request is outstanding.
var InputBoxDisabled = InputBox.
	BorderForeground(Overlay)

// StatusBar renders the bottom help line.
var StatusBar = lipgloss.NewStyle().
	Foreground(TextMuted).
	Background(SurfaceDim).
	Padding(0, 1)

// ErrorText renders inline errors.
var ErrorText = lipgloss.NewStyle().
	Foreground(Rose).
	Bold(true)
