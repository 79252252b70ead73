// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the conversation data structures.
//
// # Key Types
//
//   - Turn: one question/answer exchange with a lifecycle status
//   - TurnStatus: Pending, Resolved or Failed
//   - History: ordered turn log with windowing for outbound requests
//
// # Usage
//
//	h := model.NewHistory()
//	window := h.Windowed(10) // prior settled turns, oldest first
//	turn := h.Append("What is the PAD?")
//	_, err := h.Resolve(turn.ID, answer)
package model
