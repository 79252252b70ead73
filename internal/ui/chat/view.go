// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file contains the rendering logic for the chat interface.
package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SerenePrince/PAD-Chatbot/internal/ui/components"
	"github.com/SerenePrince/PAD-Chatbot/internal/ui/styles"
)

// =============================================================================
// MAIN RENDER
// =============================================================================

// renderChat renders the complete chat view.
// Layout: header + [FAQ] + turns (viewport) + [toasts] + input + status.
func (m Model) renderChat() string {
	if m.width == 0 {
		return "Loading..."
	}

	parts := []string{m.renderHeader()}
	if faq := m.renderFAQ(); faq != "" {
		parts = append(parts, faq)
	}

	if len(m.ctrl.Turns()) == 0 {
		vp := m.viewport
		vp.SetContent(m.renderEmptyState())
		parts = append(parts, vp.View())
	} else {
		parts = append(parts, m.viewport.View())
	}

	if toasts := components.RenderToastStack(m.toasts.Toasts(), m.width); toasts != "" {
		parts = append(parts, toasts)
	}
	parts = append(parts, m.renderInput(), m.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// layout sizes the viewport to whatever height the other sections leave.
func (m *Model) layout() {
	if m.width == 0 {
		return
	}
	used := lipgloss.Height(m.renderHeader()) +
		lipgloss.Height(m.renderInput()) +
		lipgloss.Height(m.renderStatusBar())
	if faq := m.renderFAQ(); faq != "" {
		used += lipgloss.Height(faq)
	}
	if toasts := components.RenderToastStack(m.toasts.Toasts(), m.width); toasts != "" {
		used += lipgloss.Height(toasts)
	}

	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-used, 1)
}

// =============================================================================
// SECTIONS
// =============================================================================

func (m Model) renderHeader() string {
	return components.Header{
		Title:       m.title,
		Description: m.description,
		Deployment:  m.deployment,
		Width:       m.width,
	}.Render()
}

func (m Model) renderFAQ() string {
	return components.FAQ{
		Items:     m.faq,
		Width:     m.width,
		Collapsed: !m.showFAQ,
	}.Render()
}

func (m Model) renderEmptyState() string {
	width := min(max(m.width-4, 20), 72)
	style := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Width(width).
		Align(lipgloss.Center).
		PaddingTop(1)
	return style.Render("No questions yet.\nType a question about the PAD and press Enter.")
}

func (m Model) renderInput() string {
	box := styles.InputBox
	if m.ctrl.InFlight() {
		box = styles.InputBoxDisabled
	}
	return box.Width(max(m.width-2, 10)).Render(m.input.View())
}

func (m Model) renderStatusBar() string {
	snap := m.ctrl.Snapshot()

	state := styles.StatusIndicators.Success + " ready"
	if snap.InFlight {
		state = styles.StatusIndicators.Pending + " awaiting response"
	}

	left := fmt.Sprintf("%s | %d turns", state, len(snap.Turns))
	right := m.help.ShortHelpView(m.keyMap.ShortHelp())

	width := max(m.width-2, 10)
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return styles.StatusBar.Width(width).Render(left)
	}
	return styles.StatusBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
