// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Error display and exit codes for padbot commands.
//
// Commands always return errors; Execute decides how to show them and which
// exit code to use.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/SerenePrince/PAD-Chatbot/internal/azure"
	"github.com/SerenePrince/PAD-Chatbot/internal/config"
	"github.com/SerenePrince/PAD-Chatbot/internal/session"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates a missing or invalid configuration value
	ExitConfigError = 3
	// ExitRemoteError indicates the chat service failed to answer
	ExitRemoteError = 5
	// ExitTimeoutError indicates an operation timed out
	ExitTimeoutError = 8
)

// errAnswerFailed is returned by ask when the turn resolved as Failed.
var errAnswerFailed = errors.New("no answer was retrieved")

// UsageError wraps a command-line usage mistake.
type UsageError struct {
	Reason  string
	Example string
}

func (e *UsageError) Error() string {
	if e.Example != "" {
		return fmt.Sprintf("%s\nExample: %s", e.Reason, e.Example)
	}
	return e.Reason
}

// GetExitCode determines the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) || session.IsValidation(err) {
		return ExitUsageError
	}

	var cfgErr *config.ConfigurationError
	var validateErrs config.ValidateErrors
	if errors.As(err, &cfgErr) || errors.As(err, &validateErrs) {
		return ExitConfigError
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ExitTimeoutError
	}
	if azure.IsRemote(err) || errors.Is(err, errAnswerFailed) {
		return ExitRemoteError
	}
	return ExitGeneralError
}

// DisplayError writes err to w in the human or JSON format.
func DisplayError(w io.Writer, command string, err error, jsonMode bool) {
	if err == nil {
		return
	}
	if jsonMode {
		_ = NewJSONErrorResponse(command, err).Print(w)
		return
	}
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("[ERROR]"), err.Error())
}
