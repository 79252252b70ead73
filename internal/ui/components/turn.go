// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/SerenePrince/PAD-Chatbot/internal/model"
	"github.com/SerenePrince/PAD-Chatbot/internal/ui/styles"
	"github.com/SerenePrince/PAD-Chatbot/internal/util"
)

// Labels shown before each side of a turn.
const (
	UserLabel = "User:"
	BotLabel  = "PAD-Bot:"
)

// TurnView renders one question/answer entry.
type TurnView struct {
	Turn  model.Turn
	Width int
	// Spinner is the current spinner frame, shown while the turn is pending.
	Spinner  string
	Markdown *MarkdownRenderer
}

// Render returns the entry as a block of lines.
func (v TurnView) Render() string {
	width := v.Width
	if width < 20 {
		width = 20
	}

	var b strings.Builder

	b.WriteString(styles.UserLabel.Render(UserLabel))
	b.WriteString(" ")
	b.WriteString(styles.QuestionText.Render(util.Wrap(v.Turn.Question, width-len(UserLabel)-1)))
	b.WriteString("\n")

	b.WriteString(styles.BotLabel.Render(BotLabel))
	switch v.Turn.Status {
	case model.StatusPending:
		b.WriteString(" ")
		b.WriteString(styles.PendingText.Render(strings.TrimSpace(v.Spinner + " Retrieving answer...")))

	case model.StatusFailed:
		b.WriteString("\n")
		b.WriteString(styles.FailedAnswer.Render(styles.StatusIndicators.Error + " " + v.Turn.Answer))

	default:
		b.WriteString("\n")
		if v.Markdown != nil {
			b.WriteString(v.Markdown.Render(v.Turn.Answer, width))
		} else {
			b.WriteString(util.Wrap(v.Turn.Answer, width))
		}
	}

	if meta := turnMeta(v.Turn); meta != "" {
		b.WriteString("\n")
		b.WriteString(styles.Timestamp.Render(meta))
	}
	return b.String()
}

// turnMeta formats "15:04 · 2.3s" for settled turns.
func turnMeta(t model.Turn) string {
	if t.IsPending() || t.AskedAt.IsZero() {
		return ""
	}
	meta := t.AskedAt.Format("15:04")
	if d := t.Latency(); d > 0 {
		meta += fmt.Sprintf(" · %.1fs", d.Round(100*time.Millisecond).Seconds())
	}
	return meta
}

// RenderTurns renders every turn separated by a rule.
func RenderTurns(turns []model.Turn, width int, spinner string, md *MarkdownRenderer) string {
	if len(turns) == 0 {
		return ""
	}
	sep := styles.Separator.Render(strings.Repeat("─", max(width, 1)))
	blocks := make([]string, 0, len(turns))
	for _, t := range turns {
		blocks = append(blocks, TurnView{Turn: t, Width: width, Spinner: spinner, Markdown: md}.Render())
	}
	return lipgloss.JoinVertical(lipgloss.Left, strings.Join(blocks, "\n"+sep+"\n"))
}
