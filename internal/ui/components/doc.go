// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the render helpers used by the padbot TUI.
//
// Components are plain values with a Render method; they hold no Bubble Tea
// state of their own except ToastManager, which is shared by pointer.
//
// # Key Types
//
//   - Header: title bar and description
//   - FAQ: frequently asked questions box
//   - TurnView: one "User:" / "PAD-Bot:" entry with markdown answers
//   - MarkdownRenderer: glamour renderer cached per wrap width
//   - ToastManager: auto-dismissing notices
package components
