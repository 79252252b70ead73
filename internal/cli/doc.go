// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the padbot command tree.
//
// Every command shares one setup path: load the config, check the
// connection values, open the log and build a session.Controller around the
// Azure OpenAI client. The commands differ only in how they present the
// conversation.
//
// # Commands
//
//   - (none): full-screen chat view (Bubble Tea)
//   - ask: one question, answer on stdout, --json for scripts
//   - chat: line-based chat with input history
//   - serve: HTTP API for the same controller
//   - config: show, check, init and path
//
// # Usage
//
//	func main() {
//	    os.Exit(cli.Execute())
//	}
//
// # Exit Codes
//
//   - 0: success
//   - 1: general error
//   - 2: usage error or rejected question
//   - 3: missing or invalid configuration
//   - 5: the service failed to answer
//   - 8: timeout
package cli
