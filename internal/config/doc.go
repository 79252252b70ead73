// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for padbot.
//
// # Configuration Precedence
//
// Later sources win:
//   - Built-in defaults
//   - ~/.padbot/config.toml (or the --config path)
//   - .env in the working directory (never overrides variables already set)
//   - Environment variables (PADBOT_*, with the legacy VITE_* names accepted)
//
// # Required Values
//
// The chat endpoint, API key, API version and deployment, and the search
// endpoint, API key and index are required before any remote call. Load does
// not enforce them so that `padbot config init` works on an empty machine;
// commands that talk to the service call RequireRemote, which returns a
// *ConfigurationError naming the first missing value.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	if err := cfg.RequireRemote(); err != nil {
//	    return err
//	}
package config
