// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// TURN STATUS
// =============================================================================

// TurnStatus is the lifecycle state of a turn.
type TurnStatus int

const (
	// StatusPending means the question was sent and no answer has arrived.
	StatusPending TurnStatus = iota
	// StatusResolved means the answer holds the service's reply.
	StatusResolved
	// StatusFailed means the request failed and the answer holds a user-facing apology.
	StatusFailed
)

// String returns the lowercase name of the status.
func (s TurnStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusResolved:
		return "resolved"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so JSON carries the name.
func (s TurnStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a name written by MarshalText.
func (s *TurnStatus) UnmarshalText(text []byte) error {
	switch string(text) {
	case "pending":
		*s = StatusPending
	case "resolved":
		*s = StatusResolved
	case "failed":
		*s = StatusFailed
	default:
		return fmt.Errorf("unknown turn status %q", text)
	}
	return nil
}

// =============================================================================
// TURN TYPE
// =============================================================================

// Turn is one question/answer exchange.
type Turn struct {
	// ID is the handle used to resolve this turn.
	ID       string     `json:"id"`
	Question string     `json:"question"`
	Answer   string     `json:"answer"`
	Status   TurnStatus `json:"status"`

	AskedAt    time.Time `json:"asked_at"`
	AnsweredAt time.Time `json:"answered_at,omitempty"`

	// Err is the raw failure for Failed turns. It is logged, never displayed.
	Err error `json:"-"`
}

// NewTurn creates a pending turn with a fresh handle.
func NewTurn(question string) Turn {
	return Turn{
		ID:       uuid.New().String(),
		Question: question,
		Status:   StatusPending,
		AskedAt:  time.Now(),
	}
}

// IsPending reports whether the turn is still waiting for an answer.
func (t Turn) IsPending() bool {
	return t.Status == StatusPending
}

// IsFailed reports whether the turn ended in failure.
func (t Turn) IsFailed() bool {
	return t.Status == StatusFailed
}

// Latency returns how long the turn took, or 0 while pending.
func (t Turn) Latency() time.Duration {
	if t.AnsweredAt.IsZero() {
		return 0
	}
	return t.AnsweredAt.Sub(t.AskedAt)
}
