// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// MarkdownRenderer renders answers with glamour, rebuilding the underlying
// renderer only when the wrap width changes.
type MarkdownRenderer struct {
	mu       sync.Mutex
	style    string
	width    int
	renderer *glamour.TermRenderer
	cache    map[string]string
}

// BackgroundStyle returns the glamour style name for the terminal background.
// It must be called before the Bubble Tea program takes over stdin.
func BackgroundStyle() string {
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

// NewMarkdownRenderer creates a renderer using a glamour standard style
// ("dark", "light", "notty").
func NewMarkdownRenderer(style string) *MarkdownRenderer {
	if style == "" {
		style = "dark"
	}
	return &MarkdownRenderer{style: style, cache: make(map[string]string)}
}

// Render renders md wrapped to width. On renderer failure the raw text is
// returned so an answer is never lost.
func (r *MarkdownRenderer) Render(md string, width int) string {
	if width < 20 {
		width = 20
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.renderer == nil || width != r.width {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(r.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		r.renderer = renderer
		r.width = width
		r.cache = make(map[string]string)
	}

	if out, ok := r.cache[md]; ok {
		return out
	}

	out, err := r.renderer.Render(md)
	if err != nil {
		return md
	}
	out = strings.Trim(out, "\n")
	r.cache[md] = out
	return out
}
