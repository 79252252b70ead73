// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Line-based interactive chat.
//
// A lighter alternative to the full-screen view: one prompt per question,
// with line editing and input history.
//
// Slash commands:
//   /help      Show commands
//   /clear     Clear the conversation
//   /history   Show the conversation so far
//   /status    Show session status
//   /export    Save the conversation (markdown or json)
//   /quit      Exit (also /exit, Ctrl+D)

package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/SerenePrince/PAD-Chatbot/internal/config"
	"github.com/SerenePrince/PAD-Chatbot/internal/export"
	"github.com/SerenePrince/PAD-Chatbot/internal/session"
	"github.com/SerenePrince/PAD-Chatbot/internal/ui/components"
	"github.com/SerenePrince/PAD-Chatbot/internal/util"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for the chat prompt.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a ChatCLI and loads the saved input history.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	dir, err := config.ConfigDir()
	if err != nil {
		dir = os.TempDir()
	}

	c := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(dir, "chat_history"),
	}
	c.LoadHistory()
	return c
}

// LoadHistory loads input history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line with the given prompt.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists input history with owner-only permissions.
func (c *ChatCLI) SaveHistory() error {
	var buf bytes.Buffer
	if _, err := c.line.WriteHistory(&buf); err != nil {
		return err
	}
	return util.AtomicWriteFile(c.historyFile, buf.Bytes(), 0600)
}

// Close saves history and restores the terminal.
func (c *ChatCLI) Close() {
	_ = c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// CHAT COMMAND
// =============================================================================

func newChatCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat in the terminal without the full-screen view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChat(cmd, opts)
		},
	}
}

// chatSession is the state shared by the REPL and its slash commands.
type chatSession struct {
	app *app
	out io.Writer
	md  *components.MarkdownRenderer
}

func runChat(cmd *cobra.Command, opts *rootOptions) error {
	if err := RequiresTTY("chat"); err != nil {
		return err
	}

	a, err := newApp(opts, false)
	if err != nil {
		return err
	}
	defer a.Close()

	s := &chatSession{
		app: a,
		out: cmd.OutOrStdout(),
		md:  components.NewMarkdownRenderer(components.BackgroundStyle()),
	}

	input := NewChatCLI()
	defer input.Close()

	s.printWelcome()

	prompt := PromptStyle.Render("pad> ")
	if !ColorsEnabled() {
		prompt = "pad> "
	}

	for {
		line, err := input.ReadInput(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out)
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "/") {
			if quit := s.handleSlashCommand(line); quit {
				return nil
			}
			continue
		}

		s.ask(cmd.Context(), line)
	}
}

// ask sends one question. Ctrl+C while waiting cancels the request.
func (s *chatSession) ask(parent context.Context, question string) {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()

	fmt.Fprintln(s.out, DimStyle.Render("Thinking... (Ctrl+C to cancel)"))

	turn, err := s.app.ctrl.Ask(ctx, question)
	for _, n := range s.app.ctrl.Notices() {
		s.printNotice(n)
	}
	if err != nil {
		return
	}

	if turn.IsFailed() {
		fmt.Fprintln(s.out, ErrorStyle.Render(turn.Answer))
		return
	}
	fmt.Fprint(s.out, s.md.Render(turn.Answer, min(GetTerminalWidth(), 100)))
	fmt.Fprintln(s.out, DimStyle.Render(fmt.Sprintf("(%s)", turn.Latency().Round(10*time.Millisecond))))
}

func (s *chatSession) printNotice(n session.Notice) {
	switch n.Kind {
	case session.NoticeError:
		fmt.Fprintln(s.out, ErrorStyle.Render("[!!] "+n.Text))
	case session.NoticeWarning:
		fmt.Fprintln(s.out, WarningStyle.Render("[!] "+n.Text))
	default:
		fmt.Fprintln(s.out, DimStyle.Render("[i] "+n.Text))
	}
}

// handleSlashCommand runs a slash command and reports whether to quit.
func (s *chatSession) handleSlashCommand(line string) bool {
	name := strings.ToLower(strings.Fields(line)[0])
	switch name {
	case "/quit", "/exit", "/q":
		return true
	case "/help", "/?":
		s.printHelp()
	case "/clear":
		if err := s.app.ctrl.Reset(); err != nil {
			fmt.Fprintln(s.out, WarningStyle.Render(err.Error()))
			return false
		}
		fmt.Fprintln(s.out, SuccessStyle.Render("Conversation cleared."))
	case "/history":
		s.printHistory()
	case "/status":
		s.printStatus()
	case "/export":
		s.export(strings.Fields(line)[1:])
	default:
		fmt.Fprintf(s.out, "%s %s\n", WarningStyle.Render("Unknown command:"), name)
		fmt.Fprintln(s.out, DimStyle.Render("Type /help for the list of commands."))
	}
	return false
}

// export writes the conversation. args are an optional format then path.
func (s *chatSession) export(args []string) {
	format, path := "markdown", ""
	if len(args) > 0 {
		format = args[0]
	}
	if len(args) > 1 {
		path = args[1]
	}

	exp, err := export.ForFormat(format)
	if err != nil {
		fmt.Fprintln(s.out, WarningStyle.Render(err.Error()))
		return
	}
	t := export.NewTranscript(s.app.cfg.UI.Title, s.app.deployment, s.app.ctrl.Turns())
	written, err := export.ToFile(t, exp, ".", path)
	if err != nil {
		fmt.Fprintln(s.out, ErrorStyle.Render(err.Error()))
		return
	}
	fmt.Fprintf(s.out, "%s saved %s\n", RenderStatus("ok"), written)
}

// =============================================================================
// OUTPUT
// =============================================================================

func (s *chatSession) printWelcome() {
	cfg := s.app.cfg
	fmt.Fprintln(s.out, TitleStyle.Render(cfg.UI.Title))
	if cfg.UI.Description != "" {
		fmt.Fprintln(s.out, DimStyle.Render(cfg.UI.Description))
	}
	fmt.Fprintln(s.out, RenderSeparator())
	if cfg.UI.ShowFAQ && len(cfg.FAQ) > 0 {
		fmt.Fprintln(s.out, components.FAQ{Items: cfg.FAQ, Width: min(GetTerminalWidth(), 100)}.Render())
	}
	fmt.Fprintln(s.out, DimStyle.Render("Type a question, or /help for commands."))
	fmt.Fprintln(s.out)
}

func (s *chatSession) printHelp() {
	fmt.Fprintln(s.out, TitleStyle.Render("Commands"))
	for _, c := range [][2]string{
		{"/help", "Show this help"},
		{"/clear", "Clear the conversation"},
		{"/history", "Show the conversation so far"},
		{"/status", "Show session status"},
		{"/export [md|json] [file]", "Save the conversation"},
		{"/quit", "Exit (also Ctrl+D)"},
	} {
		fmt.Fprintf(s.out, "  %s %s\n", RenderLabel(c[0]), c[1])
	}
}

func (s *chatSession) printStatus() {
	snap := s.app.ctrl.Snapshot()
	fmt.Fprintln(s.out, TitleStyle.Render("Session"))
	fmt.Fprintf(s.out, "  %s %s\n", RenderLabel("Deployment"), ValueStyle.Render(s.app.deployment))
	fmt.Fprintf(s.out, "  %s %s\n", RenderLabel("State"), ValueStyle.Render(snap.State.String()))
	fmt.Fprintf(s.out, "  %s %d\n", RenderLabel("Turns"), len(snap.Turns))
	fmt.Fprintf(s.out, "  %s %d\n", RenderLabel("History window"), s.app.ctrl.Window())
	fmt.Fprintf(s.out, "  %s %s\n", RenderLabel("Config"), DimStyle.Render(s.app.configPath))
}

func (s *chatSession) printHistory() {
	turns := s.app.ctrl.Turns()
	if len(turns) == 0 {
		fmt.Fprintln(s.out, DimStyle.Render("No questions yet."))
		return
	}
	for i, t := range turns {
		fmt.Fprintf(s.out, "%s %s\n", PromptStyle.Render(fmt.Sprintf("[%d] Q:", i+1)), t.Question)
		answer := util.FirstLine(t.Answer, 100)
		if t.IsFailed() {
			answer = ErrorStyle.Render(answer)
		}
		fmt.Fprintf(s.out, "    A: %s\n", answer)
	}
}
