// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/SerenePrince/PAD-Chatbot/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrMissingValue is matched by every ConfigurationError.
var ErrMissingValue = errors.New("missing required configuration value")

// ConfigurationError reports a required connection value that was never set.
// It is fatal at startup.
type ConfigurationError struct {
	Key string // dotted TOML key, e.g. openai.endpoint
	Env string // preferred environment variable
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing required configuration value: %s (set %s)", e.Key, e.Env)
}

// Unwrap lets errors.Is match ErrMissingValue.
func (e *ConfigurationError) Unwrap() error {
	return ErrMissingValue
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// =============================================================================
// VALIDATION
// =============================================================================

// RequireRemote checks that every value needed to reach the chat and search
// services is present. It returns the first missing one.
func (c *Config) RequireRemote() error {
	for _, b := range requiredBindings {
		if strings.TrimSpace(*b.target(c)) == "" {
			return &ConfigurationError{Key: b.Key, Env: b.Name}
		}
	}
	return nil
}

// MissingRemote returns every missing connection value, for `config check`.
func (c *Config) MissingRemote() []*ConfigurationError {
	var missing []*ConfigurationError
	for _, b := range requiredBindings {
		if strings.TrimSpace(*b.target(c)) == "" {
			missing = append(missing, &ConfigurationError{Key: b.Key, Env: b.Name})
		}
	}
	return missing
}

// Validate checks value ranges. Missing connection values are not reported
// here; see RequireRemote.
func (c *Config) Validate() error {
	var errs ValidateErrors

	for _, u := range []struct{ field, value string }{
		{"openai.endpoint", c.OpenAI.Endpoint},
		{"search.endpoint", c.Search.Endpoint},
	} {
		if u.value == "" {
			continue
		}
		parsed, err := url.Parse(u.value)
		if err != nil || parsed.Host == "" || (parsed.Scheme != "https" && parsed.Scheme != "http") {
			errs = append(errs, ValidationError{Field: u.field, Message: fmt.Sprintf("invalid URL %q", u.value)})
		}
	}

	g := c.Generation
	if g.MaxTokens < 1 || g.MaxTokens > 32768 {
		errs = append(errs, ValidationError{Field: "generation.max_tokens", Message: "must be between 1 and 32768"})
	}
	if g.Temperature < 0 || g.Temperature > 2 {
		errs = append(errs, ValidationError{Field: "generation.temperature", Message: "must be between 0 and 2"})
	}
	if g.TopP < 0 || g.TopP > 1 {
		errs = append(errs, ValidationError{Field: "generation.top_p", Message: "must be between 0 and 1"})
	}
	if g.FrequencyPenalty < -2 || g.FrequencyPenalty > 2 {
		errs = append(errs, ValidationError{Field: "generation.frequency_penalty", Message: "must be between -2 and 2"})
	}
	if g.PresencePenalty < -2 || g.PresencePenalty > 2 {
		errs = append(errs, ValidationError{Field: "generation.presence_penalty", Message: "must be between -2 and 2"})
	}

	if c.History.Window < 0 || c.History.Window > model.MaxTurns {
		errs = append(errs, ValidationError{Field: "history.window", Message: fmt.Sprintf("must be between 0 and %d", model.MaxTurns)})
	}
	if c.RequestTimeoutSecs < 0 {
		errs = append(errs, ValidationError{Field: "request_timeout_secs", Message: "must not be negative"})
	}
	if c.RateLimitPerMinute < 0 {
		errs = append(errs, ValidationError{Field: "rate_limit_per_minute", Message: "must not be negative"})
	}
	if c.Server.RateLimitPerMinute < 0 {
		errs = append(errs, ValidationError{Field: "server.rate_limit_per_minute", Message: "must not be negative"})
	}

	switch c.Log.Level {
	case "", "trace", "debug", "info", "warn", "error", "disabled":
	default:
		errs = append(errs, ValidationError{Field: "log.level", Message: fmt.Sprintf("unknown level %q", c.Log.Level)})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
