// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the main chat view for the padbot TUI.

The package renders the conversation held by a session.Controller and turns
key presses into controller calls. It owns no conversation state of its own.

# Key Components

## Model (model.go)

The Model wraps the controller together with the Bubble Tea widgets:
  - Viewport for the turn list
  - Text input for the question draft
  - Spinner shown while an answer is outstanding
  - Toast stack for notices

## Update Loop (update.go)

  - Enter submits the draft; the request runs as a tea.Cmd
  - AnswerMsg resolves the outstanding turn
  - Esc cancels the outstanding request
  - F1 toggles the FAQ box
  - Ctrl+C quits

## View Rendering (view.go)

Header, FAQ, turn list, toasts, input box and status bar, top to bottom.

# Usage

	ctrl := session.NewController(client, session.Options{Window: cfg.History.Window})
	m := chat.New(ctx, ctrl, chat.Options{Title: cfg.UI.Title, FAQ: cfg.FAQ})
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
*/
package chat
