// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session implements the conversation controller.
//
// A Controller owns one conversation history and lets at most one question
// be outstanding at a time. A request cycle has three steps:
//
//   - Submit validates the question, appends a pending turn and returns a
//     Pending handle. This happens synchronously.
//   - Fetch calls the chat adapter with the history window captured at
//     submit time. It does not touch controller state, so it can run on any
//     goroutine (a Bubble Tea command, an HTTP handler).
//   - Resolve applies the Outcome to the turn named by the handle and
//     returns the controller to Idle.
//
// Ask runs all three for synchronous callers.
//
// # Usage
//
//	ctrl := session.NewController(client, session.Options{Window: 10, Timeout: time.Minute})
//	turn, err := ctrl.Ask(ctx, "What is the PAD?")
//	if session.IsValidation(err) {
//	    // empty question or busy
//	}
//	fmt.Println(turn.Status, turn.Answer)
package session
