// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/SerenePrince/PAD-Chatbot/internal/session"
	"github.com/SerenePrince/PAD-Chatbot/internal/ui/components"
)

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// fetchCmd runs the request for p off the update loop.
func (m Model) fetchCmd(p session.Pending) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return AnswerMsg{Outcome: ctrl.Fetch(ctx, p)}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-8, 10)
		m.layout()
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case AnswerMsg:
		return m.handleAnswer(msg)

	case FAQReloadedMsg:
		m.faq = msg.Items
		m.toasts.AddStatus("FAQ reloaded")
		m.layout()
		return m, components.ToastTickCmd()

	case NoticeMsg:
		m.addNotice(msg.Notice)
		m.layout()
		return m, components.ToastTickCmd()

	case components.ToastTickMsg:
		more := m.toasts.Tick()
		m.layout()
		if more {
			return m, components.ToastTickCmd()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.InFlight() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh()
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// =============================================================================
// MESSAGE HANDLERS
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		m.ctrl.Cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Cancel):
		if m.ctrl.Cancel() {
			m.logger.Debug().Msg("cancel requested")
		}
		return m, nil

	case key.Matches(msg, m.keyMap.ToggleFAQ):
		m.showFAQ = !m.showFAQ
		m.layout()
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		return m.submit()

	case key.Matches(msg, m.keyMap.Clear):
		if err := m.ctrl.Reset(); err != nil {
			m.drainNotices()
			m.toasts.AddWarning(session.NoticeBusy)
			m.layout()
			return m, components.ToastTickCmd()
		}
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keyMap.PageUp, m.keyMap.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	// The input is read-only while an answer is outstanding.
	if m.ctrl.InFlight() {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetDraft(m.input.Value())
	return m, cmd
}

// submit hands the draft to the controller and starts the request.
func (m Model) submit() (tea.Model, tea.Cmd) {
	pending, err := m.ctrl.Submit(m.input.Value())
	m.drainNotices()
	if err != nil {
		m.layout()
		return m, components.ToastTickCmd()
	}

	m.input.Reset()
	m.input.Blur()
	m.layout()
	m.refresh()
	m.viewport.GotoBottom()

	return m, tea.Batch(m.fetchCmd(pending), m.spinner.Tick)
}

func (m Model) handleAnswer(msg AnswerMsg) (tea.Model, tea.Cmd) {
	if _, err := m.ctrl.Resolve(msg.Outcome); err != nil {
		if errors.Is(err, session.ErrStaleOutcome) {
			m.logger.Debug().Str("turn", msg.Outcome.TurnID).Msg("dropped stale answer")
		} else {
			m.logger.Error().Err(err).Str("turn", msg.Outcome.TurnID).Msg("resolve failed")
		}
	}
	m.drainNotices()

	m.layout()
	m.refresh()
	m.viewport.GotoBottom()

	var cmds []tea.Cmd
	cmds = append(cmds, m.input.Focus())
	if m.toasts.HasToasts() {
		cmds = append(cmds, components.ToastTickCmd())
	}
	return m, tea.Batch(cmds...)
}

// =============================================================================
// HELPERS
// =============================================================================

// drainNotices moves controller notices into the toast stack.
func (m *Model) drainNotices() {
	for _, n := range m.ctrl.Notices() {
		m.addNotice(n)
	}
}

func (m *Model) addNotice(n session.Notice) {
	switch n.Kind {
	case session.NoticeError:
		m.toasts.AddError(n.Text)
	case session.NoticeWarning:
		m.toasts.AddWarning(n.Text)
	default:
		m.toasts.AddStatus(n.Text)
	}
}

// refresh re-renders the turn list into the viewport.
func (m *Model) refresh() {
	m.viewport.SetContent(components.RenderTurns(
		m.ctrl.Turns(),
		m.contentWidth(),
		m.spinner.View(),
		m.markdown,
	))
}
