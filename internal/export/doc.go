// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes the current conversation to a file.
//
// Only the turns of the running session are exported; nothing is read back.
//
// # Formats
//
//   - Markdown: human-readable, one section per turn
//   - JSON: the turns as the API returns them
//
// # Usage
//
//	t := export.NewTranscript("PAD Chatbot", deployment, ctrl.Turns())
//	exp, _ := export.ForFormat("markdown")
//	path, err := export.ToFile(t, exp, ".", "")
package export
