// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SerenePrince/PAD-Chatbot/internal/config"
	"github.com/SerenePrince/PAD-Chatbot/internal/ui/styles"
	"github.com/SerenePrince/PAD-Chatbot/internal/util"
)

// =============================================================================
// HEADER
// =============================================================================

// Header is the title bar with the application description.
type Header struct {
	Title       string
	Description string
	// Deployment is shown on the right of the title bar.
	Deployment string
	Width      int
}

// Render returns the header as two lines.
func (h Header) Render() string {
	width := max(h.Width, 20)

	title := styles.HeaderTitle.Render(h.Title)
	right := ""
	if h.Deployment != "" {
		right = styles.Timestamp.Render(h.Deployment)
	}
	gap := width - lipgloss.Width(title) - lipgloss.Width(right)
	if gap < 1 {
		right, gap = "", 1
	}
	bar := title + strings.Repeat(" ", gap) + right

	desc := styles.HeaderDescription.Render(util.Truncate(h.Description, width-2))
	return bar + "\n" + desc
}

// =============================================================================
// FAQ
// =============================================================================

// FAQ renders the frequently asked questions box.
type FAQ struct {
	Items []config.FAQItem
	Width int
	// Collapsed shows only the heading.
	Collapsed bool
}

// Render returns the FAQ box, or "" when there are no items.
func (f FAQ) Render() string {
	if len(f.Items) == 0 {
		return ""
	}
	width := max(f.Width, 24)
	inner := width - 4

	heading := styles.FAQHeading.Render("Frequently Asked Questions")
	if f.Collapsed {
		heading += styles.Timestamp.Render("  (F1 to expand)")
		return styles.FAQBox.Width(width - 2).Render(heading)
	}

	lines := []string{heading}
	for _, item := range f.Items {
		lines = append(lines,
			styles.FAQQuestion.Render(util.Wrap("Q: "+item.Question, inner)),
			styles.FAQAnswer.Render(util.Wrap(item.Answer, inner-2)),
		)
	}
	return styles.FAQBox.Width(width - 2).Render(strings.Join(lines, "\n"))
}
