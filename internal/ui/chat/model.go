// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/SerenePrince/PAD-Chatbot/internal/config"
	"github.com/SerenePrince/PAD-Chatbot/internal/session"
	"github.com/SerenePrince/PAD-Chatbot/internal/ui/components"
	"github.com/SerenePrince/PAD-Chatbot/internal/ui/styles"
)

// inputCharLimit caps the question length accepted by the input box.
const inputCharLimit = 2000

// Options configures the chat view.
type Options struct {
	Title       string
	Description string
	Deployment  string
	FAQ         []config.FAQItem
	ShowFAQ     bool
	// WordWrap caps the answer width; 0 uses the terminal width.
	WordWrap int
	// MarkdownStyle is a glamour standard style name.
	MarkdownStyle string
	Logger        zerolog.Logger
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	ctx  context.Context
	ctrl *session.Controller

	// Dimensions
	width  int
	height int

	// Header and FAQ
	title       string
	description string
	deployment  string
	faq         []config.FAQItem
	showFAQ     bool
	wordWrap    int

	// UI Components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	help     help.Model
	keyMap   KeyMap

	markdown *components.MarkdownRenderer
	toasts   *components.ToastManager

	logger zerolog.Logger
}

// New creates a chat view over ctrl. ctx bounds every request the view
// starts; canceling it aborts the outstanding request.
func New(ctx context.Context, ctrl *session.Controller, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question about the PAD..."
	ti.CharLimit = inputCharLimit
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: styles.LineSpinner.Frames,
		FPS:    styles.LineSpinner.Duration(),
	}

	title := opts.Title
	if title == "" {
		title = "PAD Chatbot"
	}

	return Model{
		ctx:         ctx,
		ctrl:        ctrl,
		title:       title,
		description: opts.Description,
		deployment:  opts.Deployment,
		faq:         opts.FAQ,
		showFAQ:     opts.ShowFAQ,
		wordWrap:    opts.WordWrap,
		viewport:    vp,
		input:       ti,
		spinner:     sp,
		help:        help.New(),
		keyMap:      DefaultKeyMap(),
		markdown:    components.NewMarkdownRenderer(opts.MarkdownStyle),
		toasts:      components.NewToastManager(),
		logger:      opts.Logger,
	}
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// View renders the chat view.
func (m Model) View() string {
	return m.renderChat()
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Controller returns the controller driving the view.
func (m Model) Controller() *session.Controller {
	return m.ctrl
}

// InputValue returns the current input text.
func (m Model) InputValue() string {
	return m.input.Value()
}

// FAQVisible reports whether the FAQ box is expanded.
func (m Model) FAQVisible() bool {
	return m.showFAQ
}

// Toasts returns the visible toasts, newest first.
func (m Model) Toasts() []components.Toast {
	return m.toasts.Toasts()
}

// contentWidth is the wrap width for turns.
func (m Model) contentWidth() int {
	w := m.width - 2
	if m.wordWrap > 0 && m.wordWrap < w {
		w = m.wordWrap
	}
	return max(w, 20)
}
