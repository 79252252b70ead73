// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/SerenePrince/PAD-Chatbot/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports transcripts to Markdown.
type MarkdownExporter struct {
	// IncludeTimestamps adds the ask time to each question heading.
	IncludeTimestamps bool
}

// NewMarkdownExporter creates a Markdown exporter with timestamps on.
func NewMarkdownExporter() *MarkdownExporter {
	return &MarkdownExporter{IncludeTimestamps: true}
}

// Export converts a transcript to Markdown.
func (e *MarkdownExporter) Export(t *Transcript) ([]byte, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}

	var sb strings.Builder

	// YAML frontmatter
	sb.WriteString("---\n")
	fmt.Fprintf(&sb, "title: %s\n", escapeYAML(t.Title))
	if t.Deployment != "" {
		fmt.Fprintf(&sb, "deployment: %s\n", escapeYAML(t.Deployment))
	}
	fmt.Fprintf(&sb, "turns: %d\n", len(t.Turns))
	fmt.Fprintf(&sb, "exported: %s\n", t.ExportedAt.Format(time.RFC3339))
	sb.WriteString("generator: padbot\n")
	sb.WriteString("---\n\n")

	fmt.Fprintf(&sb, "# %s\n\n", escapeMarkdown(t.Title))

	for i, turn := range t.Turns {
		heading := fmt.Sprintf("### [%d] User", i+1)
		if e.IncludeTimestamps {
			heading += fmt.Sprintf(" <sub>%s</sub>", formatShortTimestamp(turn.AskedAt))
		}
		sb.WriteString(heading + "\n\n")
		sb.WriteString(strings.TrimSpace(turn.Question))
		sb.WriteString("\n\n")

		sb.WriteString("### PAD-Bot\n\n")
		sb.WriteString(e.formatAnswer(turn))
		sb.WriteString("\n\n")

		if i < len(t.Turns)-1 {
			sb.WriteString("---\n\n")
		}
	}

	sb.WriteString("\n---\n\n")
	fmt.Fprintf(&sb, "*Exported from padbot on %s*\n", formatTimestamp(t.ExportedAt))

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// =============================================================================
// FORMATTING HELPERS
// =============================================================================

func (e *MarkdownExporter) formatAnswer(turn model.Turn) string {
	switch turn.Status {
	case model.StatusPending:
		return "*(awaiting answer)*"
	case model.StatusFailed:
		return "> " + strings.TrimSpace(turn.Answer)
	}
	answer := strings.TrimSpace(turn.Answer)
	if latency := turn.Latency(); latency > 0 {
		answer += fmt.Sprintf("\n\n<sub>%s</sub>", formatDuration(latency))
	}
	return answer
}

// =============================================================================
// ESCAPING HELPERS
// =============================================================================

// escapeMarkdown escapes characters that would break a heading.
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "#", "\\#")
	s = strings.ReplaceAll(s, "*", "\\*")
	s = strings.ReplaceAll(s, "_", "\\_")
	s = strings.ReplaceAll(s, "[", "\\[")
	s = strings.ReplaceAll(s, "]", "\\]")
	return s
}

// escapeYAML quotes a frontmatter value when it contains special characters.
func escapeYAML(s string) string {
	if strings.ContainsAny(s, ":#|>@`\"'[]{}!%&*\n\r\\") || strings.HasPrefix(s, " ") || strings.HasSuffix(s, " ") {
		s = strings.ReplaceAll(s, "\\", "\\\\")
		s = strings.ReplaceAll(s, "\"", "\\\"")
		s = strings.ReplaceAll(s, "\n", "\\n")
		s = strings.ReplaceAll(s, "\r", "\\r")
		return fmt.Sprintf("\"%s\"", s)
	}
	return s
}
