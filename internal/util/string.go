// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Ellipsis is appended to truncated text.
const Ellipsis = "..."

// Truncate shortens s to at most maxWidth terminal columns, appending an
// ellipsis when it cuts. Double-width characters count as two columns.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= len(Ellipsis) {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, Ellipsis)
}

// FirstLine returns the first line of s, truncated to maxWidth columns. It is
// used for one-line previews of questions.
func FirstLine(s string, maxWidth int) string {
	line, rest, found := strings.Cut(strings.TrimSpace(s), "\n")
	if found && strings.TrimSpace(rest) != "" {
		line = strings.TrimRight(line, " ") + " " + Ellipsis
	}
	return Truncate(line, maxWidth)
}

// Width returns the display width of s.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// Wrap word-wraps s to lines of at most width columns. Existing newlines are
// kept. Words wider than width are placed on their own line unbroken.
func Wrap(s string, width int) string {
	if width <= 0 {
		return s
	}

	var out strings.Builder
	for i, para := range strings.Split(s, "\n") {
		if i > 0 {
			out.WriteByte('\n')
		}
		lineWidth := 0
		for j, word := range strings.Fields(para) {
			w := runewidth.StringWidth(word)
			switch {
			case j == 0:
			case lineWidth+1+w > width:
				out.WriteByte('\n')
				lineWidth = 0
			default:
				out.WriteByte(' ')
				lineWidth++
			}
			out.WriteString(word)
			lineWidth += w
		}
	}
	return out.String()
}
