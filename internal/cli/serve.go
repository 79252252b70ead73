// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// serve.go - HTTP API command.
//
// Usage:
//   padbot serve                     Listen on server.addr (default 127.0.0.1:8080)
//   padbot serve --addr :9000        Override the listen address

package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/SerenePrince/PAD-Chatbot/internal/config"
	"github.com/SerenePrince/PAD-Chatbot/internal/server"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the question API over HTTP",
		Long: `Serve the question API over HTTP.

Endpoints live under /api/v1 (ask, turns, turns/export, cancel, faq) plus /health and
/stats. Set server.api_key to require a bearer token.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

func runServe(cmd *cobra.Command, opts *rootOptions, addr string) error {
	a, err := newApp(opts, true)
	if err != nil {
		return err
	}
	defer a.Close()

	if !opts.verbose {
		gin.SetMode(gin.ReleaseMode)
	}
	if addr == "" {
		addr = a.cfg.Server.Addr
	}

	srv := server.New(a.ctrl, server.Options{
		Addr:               addr,
		APIKey:             a.cfg.Server.APIKey,
		CORSOrigins:        a.cfg.Server.CORSOrigins,
		RateLimitPerMinute: a.cfg.Server.RateLimitPerMinute,
		FAQ:                a.cfg.FAQ,
		Deployment:         a.deployment,
		Title:              a.cfg.UI.Title,
		Logger:             a.logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		err := config.WatchFAQ(ctx, a.configPath,
			func(items []config.FAQItem) {
				srv.SetFAQ(items)
				a.logger.Info().Int("entries", len(items)).Msg("faq reloaded")
			},
			func(err error) {
				a.logger.Warn().Err(err).Msg("faq reload failed")
			})
		if err != nil && !errors.Is(err, context.Canceled) {
			a.logger.Debug().Err(err).Msg("faq watcher stopped")
		}
	}()

	if a.cfg.Server.APIKey == "" {
		a.logger.Warn().Msg("server.api_key is empty; the API is unauthenticated")
	}
	return srv.Run(ctx)
}
