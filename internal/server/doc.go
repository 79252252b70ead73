// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server exposes the conversation controller over a small JSON API.
//
// The server holds a single conversation, the same one a terminal user
// would see. Requests go through the controller, so the one-question-at-a-
// time rule applies to HTTP clients as well: a second ask while one is
// outstanding gets 409 Conflict.
//
// # Endpoints
//
//   - GET    /health          - Liveness and controller state
//   - GET    /stats           - Request counters
//   - GET    /api/v1/turns    - Conversation so far
//   - POST   /api/v1/ask      - Ask a question and wait for the answer
//   - POST   /api/v1/cancel   - Cancel the outstanding question
//   - DELETE /api/v1/turns    - Clear the conversation
//   - GET    /api/v1/turns/export?format=markdown|json - Download the conversation
//   - GET    /api/v1/faq      - FAQ entries
//
// # Middleware
//
//   - Panic recovery and request logging with zerolog
//   - Security headers
//   - CORS for configured origins
//   - Per-IP rate limiting
//   - Bearer token authentication on /api/v1 when an API key is set
//
// # Usage
//
//	srv := server.New(ctrl, server.Options{Addr: cfg.Server.Addr, APIKey: cfg.Server.APIKey})
//	if err := srv.Run(ctx); err != nil {
//		return err
//	}
package server
