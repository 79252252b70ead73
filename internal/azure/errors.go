// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package azure

import (
	"errors"
	"fmt"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

var (
	// ErrRemote is matched by every RemoteError.
	ErrRemote = errors.New("remote chat request failed")

	// ErrNoChoices indicates the service returned an empty choices array.
	ErrNoChoices = errors.New("no choices in response")

	// ErrEmptyAnswer indicates the first choice had no usable content.
	ErrEmptyAnswer = errors.New("empty answer in response")

	// ErrRateLimited indicates the local request budget was exhausted.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// RemoteError is the single error type returned by Client.Ask. It covers
// transport failures, timeouts, cancellation, HTTP errors and malformed or
// empty responses.
type RemoteError struct {
	// Op names the step that failed: "request", "response" or "rate limit".
	Op string
	// StatusCode is the HTTP status when the service answered, otherwise 0.
	StatusCode int
	Err        error
}

func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("azure openai %s: HTTP %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("azure openai %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrRemote) match any RemoteError.
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemote
}

// IsRemote reports whether err is or wraps a RemoteError.
func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}
