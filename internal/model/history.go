// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"errors"
	"time"
)

// MaxTurns is the number of turns kept for display. When exceeded, the oldest
// settled turns are dropped. It is also the largest allowed history window,
// so pruning never removes a turn the adapter would be sent.
const MaxTurns = 1000

var (
	// ErrTurnNotFound is returned when a handle does not name any turn.
	ErrTurnNotFound = errors.New("turn not found")
	// ErrNotPending is returned when resolving a turn that already settled.
	ErrNotPending = errors.New("turn is not pending")
)

// =============================================================================
// HISTORY TYPE
// =============================================================================

// History is the ordered log of turns for one session. Insertion order is
// chronological order.
//
// History is not safe for concurrent use; the session controller serializes
// access to it.
type History struct {
	turns []Turn
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{turns: make([]Turn, 0)}
}

// Append adds a pending turn for question to the end and returns it.
// Content is not validated here.
func (h *History) Append(question string) Turn {
	turn := NewTurn(question)
	h.turns = append(h.turns, turn)
	h.prune()
	return turn
}

// Windowed returns copies of the last n settled turns, oldest first. Pending
// turns are skipped. Calling it twice without an intervening change yields
// identical results.
func (h *History) Windowed(n int) []Turn {
	if n <= 0 {
		return []Turn{}
	}

	window := make([]Turn, 0, n)
	for i := len(h.turns) - 1; i >= 0 && len(window) < n; i-- {
		if h.turns[i].IsPending() {
			continue
		}
		window = append(window, h.turns[i])
	}

	// Collected newest first; reverse into chronological order.
	for i, j := 0, len(window)-1; i < j; i, j = i+1, j-1 {
		window[i], window[j] = window[j], window[i]
	}
	return window
}

// Resolve marks the pending turn with the given handle as answered.
func (h *History) Resolve(id, answer string) (Turn, error) {
	return h.settle(id, func(t *Turn) {
		t.Answer = answer
		t.Status = StatusResolved
	})
}

// Fail marks the pending turn with the given handle as failed. message is
// the user-facing text; cause is kept for logging.
func (h *History) Fail(id, message string, cause error) (Turn, error) {
	return h.settle(id, func(t *Turn) {
		t.Answer = message
		t.Status = StatusFailed
		t.Err = cause
	})
}

func (h *History) settle(id string, apply func(*Turn)) (Turn, error) {
	i := h.index(id)
	if i < 0 {
		return Turn{}, ErrTurnNotFound
	}
	if !h.turns[i].IsPending() {
		return h.turns[i], ErrNotPending
	}
	apply(&h.turns[i])
	h.turns[i].AnsweredAt = time.Now()
	return h.turns[i], nil
}

// Get returns the turn with the given handle.
func (h *History) Get(id string) (Turn, bool) {
	if i := h.index(id); i >= 0 {
		return h.turns[i], true
	}
	return Turn{}, false
}

// Pending returns the pending turn, if any.
func (h *History) Pending() (Turn, bool) {
	for i := len(h.turns) - 1; i >= 0; i-- {
		if h.turns[i].IsPending() {
			return h.turns[i], true
		}
	}
	return Turn{}, false
}

// Last returns the most recent turn, or false if the history is empty.
func (h *History) Last() (Turn, bool) {
	if len(h.turns) == 0 {
		return Turn{}, false
	}
	return h.turns[len(h.turns)-1], true
}

// Turns returns a copy of every turn, oldest first.
func (h *History) Turns() []Turn {
	out := make([]Turn, len(h.turns))
	copy(out, h.turns)
	return out
}

// Len returns the number of turns.
func (h *History) Len() int {
	return len(h.turns)
}

// Clear removes every turn.
func (h *History) Clear() {
	h.turns = h.turns[:0]
}

func (h *History) index(id string) int {
	// Handles are almost always the newest turn.
	for i := len(h.turns) - 1; i >= 0; i-- {
		if h.turns[i].ID == id {
			return i
		}
	}
	return -1
}

// prune drops the oldest settled turns once MaxTurns is exceeded. A pending
// turn is never dropped.
func (h *History) prune() {
	excess := len(h.turns) - MaxTurns
	if excess <= 0 {
		return
	}
	kept := make([]Turn, 0, MaxTurns)
	for _, t := range h.turns {
		if excess > 0 && !t.IsPending() {
			excess--
			continue
		}
		kept = append(kept, t)
	}
	h.turns = kept
}
