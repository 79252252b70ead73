// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// envBinding maps a config field to its environment variables. The PADBOT_
// name wins over the legacy name when both are set.
type envBinding struct {
	Key    string
	Name   string
	Legacy string
	target func(c *Config) *string
}

var requiredBindings = []envBinding{
	{"openai.endpoint", "PADBOT_OPENAI_ENDPOINT", "VITE_OPENAI_ENDPOINT", func(c *Config) *string { return &c.OpenAI.Endpoint }},
	{"openai.api_key", "PADBOT_OPENAI_API_KEY", "VITE_OPENAI_API_KEY", func(c *Config) *string { return &c.OpenAI.APIKey }},
	{"openai.api_version", "PADBOT_OPENAI_API_VERSION", "VITE_OPENAI_API_VERSION", func(c *Config) *string { return &c.OpenAI.APIVersion }},
	{"openai.deployment", "PADBOT_OPENAI_DEPLOYMENT", "VITE_OPENAI_DEPLOYMENT", func(c *Config) *string { return &c.OpenAI.Deployment }},
	{"search.endpoint", "PADBOT_SEARCH_ENDPOINT", "VITE_AI_SEARCH_ENDPOINT", func(c *Config) *string { return &c.Search.Endpoint }},
	{"search.api_key", "PADBOT_SEARCH_API_KEY", "VITE_AI_SEARCH_API_KEY", func(c *Config) *string { return &c.Search.APIKey }},
	{"search.index", "PADBOT_SEARCH_INDEX", "VITE_AI_SEARCH_INDEX", func(c *Config) *string { return &c.Search.Index }},
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment.
// Variables that are already set are left alone. A missing file is ignored.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - PADBOT_OPENAI_ENDPOINT, PADBOT_OPENAI_API_KEY, PADBOT_OPENAI_API_VERSION,
//     PADBOT_OPENAI_DEPLOYMENT (legacy VITE_OPENAI_*)
//   - PADBOT_SEARCH_ENDPOINT, PADBOT_SEARCH_API_KEY, PADBOT_SEARCH_INDEX
//     (legacy VITE_AI_SEARCH_*)
//   - PADBOT_HISTORY_WINDOW: overrides history.window
//   - PADBOT_REQUEST_TIMEOUT: overrides request_timeout_secs
//   - PADBOT_SERVER_ADDR, PADBOT_SERVER_API_KEY: override server.addr / server.api_key
//   - PADBOT_LOG_LEVEL: overrides log.level
func (c *Config) ApplyEnvOverrides() {
	for _, b := range requiredBindings {
		if v := lookupEnv(b.Name, b.Legacy); v != "" {
			*b.target(c) = v
		}
	}

	if v := os.Getenv("PADBOT_HISTORY_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.History.Window = n
		}
	}
	if v := os.Getenv("PADBOT_REQUEST_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSuffix(v, "s")); err == nil {
			c.RequestTimeoutSecs = n
		}
	}
	if v := os.Getenv("PADBOT_SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("PADBOT_SERVER_API_KEY"); v != "" {
		c.Server.APIKey = v
	}
	if v := os.Getenv("PADBOT_LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
}

func lookupEnv(names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}
