// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// tui.go - Full-screen chat view (default command).

package cli

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SerenePrince/PAD-Chatbot/internal/config"
	"github.com/SerenePrince/PAD-Chatbot/internal/session"
	"github.com/SerenePrince/PAD-Chatbot/internal/ui/chat"
	"github.com/SerenePrince/PAD-Chatbot/internal/ui/components"
)

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	if err := RequiresTTY("open the chat view"); err != nil {
		return err
	}

	a, err := newApp(opts, false)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Query the background before Bubble Tea owns the terminal.
	mdStyle := components.BackgroundStyle()

	m := chat.New(ctx, a.ctrl, chat.Options{
		Title:         a.cfg.UI.Title,
		Description:   a.cfg.UI.Description,
		Deployment:    a.deployment,
		FAQ:           a.cfg.FAQ,
		ShowFAQ:       a.cfg.UI.ShowFAQ,
		MarkdownStyle: mdStyle,
		Logger:        a.logger,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	go func() {
		err := config.WatchFAQ(ctx, a.configPath,
			func(items []config.FAQItem) {
				p.Send(chat.FAQReloadedMsg{Items: items})
			},
			func(err error) {
				a.logger.Warn().Err(err).Msg("faq reload failed")
				p.Send(chat.NoticeMsg{Notice: session.Notice{
					Kind: session.NoticeWarning,
					Text: "FAQ reload failed: " + err.Error(),
				}})
			})
		if err != nil && !errors.Is(err, context.Canceled) {
			a.logger.Debug().Err(err).Msg("faq watcher stopped")
		}
	}()

	_, err = p.Run()
	a.ctrl.Cancel()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
