// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/SerenePrince/PAD-Chatbot/internal/config"
	"github.com/SerenePrince/PAD-Chatbot/internal/session"
)

// AnswerMsg carries the result of a fetch back into the update loop.
type AnswerMsg struct {
	Outcome session.Outcome
}

// FAQReloadedMsg replaces the FAQ entries after the config file changed.
type FAQReloadedMsg struct {
	Items []config.FAQItem
}

// NoticeMsg shows a toast originating outside the controller, such as a
// config watcher error.
type NoticeMsg struct {
	Notice session.Notice
}
