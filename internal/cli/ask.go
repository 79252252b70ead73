// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot question command.
//
// Usage:
//   padbot ask "What is a PAD?"
//   echo "Who approves a PAD?" | padbot ask
//   padbot ask --json "What is a PAD?"

package cli

import (
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/SerenePrince/PAD-Chatbot/internal/model"
	"github.com/SerenePrince/PAD-Chatbot/internal/ui/components"
)

// askResult is the --json payload for ask.
type askResult struct {
	Turn      model.Turn `json:"turn"`
	LatencyMS int64      `json:"latency_ms"`
}

// answerError reports a Failed turn. The message stays generic; the cause
// is kept for exit code mapping.
type answerError struct {
	cause error
}

func (e *answerError) Error() string { return errAnswerFailed.Error() }

func (e *answerError) Unwrap() []error {
	if e.cause == nil {
		return []error{errAnswerFailed}
	}
	return []error{errAnswerFailed, e.cause}
}

func newAskCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ask [question...]",
		Short: "Ask a single question and print the answer",
		Long: `Ask a single question and print the answer.

The question is taken from the arguments, or from stdin when no arguments
are given and stdin is not a terminal.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			question, err := readQuestion(cmd, args)
			if err != nil {
				return err
			}
			return runAsk(cmd, opts, question)
		},
	}
}

// readQuestion joins args, or reads stdin when there are none.
func readQuestion(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if IsTTY() {
		return "", &UsageError{
			Reason:  "no question given",
			Example: `padbot ask "What is a PAD?"`,
		}
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read question from stdin: %w", err)
	}
	return string(data), nil
}

func runAsk(cmd *cobra.Command, opts *rootOptions, question string) error {
	a, err := newApp(opts, false)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	turn, err := a.ctrl.Ask(ctx, question)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.jsonOut {
		resp := NewJSONResponse("ask", askResult{
			Turn:      turn,
			LatencyMS: turn.Latency().Milliseconds(),
		})
		resp.Success = !turn.IsFailed()
		if perr := resp.Print(out); perr != nil {
			return perr
		}
	} else {
		displayAnswer(out, turn, a.cfg.UI.WordWrap)
	}

	if turn.IsFailed() {
		return &answerError{cause: turn.Err}
	}
	return nil
}

// displayAnswer prints the answer, rendering markdown only for a terminal.
func displayAnswer(w io.Writer, turn model.Turn, wrap int) {
	if turn.IsFailed() || !IsStdoutTTY() {
		fmt.Fprintln(w, strings.TrimRight(turn.Answer, "\n"))
		return
	}
	if wrap <= 0 {
		wrap = min(GetTerminalWidth(), 100)
	}
	md := components.NewMarkdownRenderer(components.BackgroundStyle())
	fmt.Fprint(w, md.Render(turn.Answer, wrap))
	fmt.Fprintln(w, DimStyle.Render(fmt.Sprintf("(%s)", turn.Latency().Round(10*time.Millisecond))))
}
