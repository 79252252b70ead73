// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import "errors"

// User-facing text.
const (
	// FailedAnswer replaces the answer of a turn whose request failed.
	FailedAnswer = "An error occurred while retrieving a response."

	// NoticeEmptyQuestion is shown when an empty question is submitted.
	NoticeEmptyQuestion = "Please enter a question"

	// NoticeBusy is shown when a question is submitted while one is outstanding.
	NoticeBusy = "Please wait for the current answer"

	// NoticeRemoteFailure is shown when a request fails.
	NoticeRemoteFailure = "Failed to get a response."

	// NoticeCanceled is shown when the user cancels the outstanding request.
	NoticeCanceled = "Request canceled"
)

var (
	// ErrEmptyQuestion rejects empty or whitespace-only questions.
	ErrEmptyQuestion = errors.New("question is empty")

	// ErrBusy rejects a submission while a request is outstanding.
	ErrBusy = errors.New("a request is already in flight")

	// ErrStaleOutcome is returned when an outcome names a turn that is no
	// longer pending, e.g. after Reset.
	ErrStaleOutcome = errors.New("outcome does not match the pending turn")

	// ErrEmptyAnswer is recorded when the adapter returns no text and no error.
	ErrEmptyAnswer = errors.New("adapter returned an empty answer")
)

// ValidationError is returned when a submission is rejected. Nothing in the
// session changes when it is returned.
type ValidationError struct {
	Reason error
	// Notice is the transient message to show the user.
	Notice string
}

func (e *ValidationError) Error() string {
	return "submission rejected: " + e.Reason.Error()
}

// Unwrap returns ErrEmptyQuestion or ErrBusy.
func (e *ValidationError) Unwrap() error {
	return e.Reason
}

// IsValidation reports whether err is a rejected submission.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
