// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// root.go - Root command and shared setup for padbot.
//
// Usage:
//   padbot                     Start the chat view
//   padbot ask "question"      Ask one question and print the answer
//   padbot chat                Line-based chat
//   padbot serve               Serve the JSON API
//   padbot config show         Show the effective configuration
//
// Global flags:
//   --config PATH   Config file (default ~/.padbot/config.toml)
//   --json          JSON output where supported
//   -v, --verbose   Debug logging

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/SerenePrince/PAD-Chatbot/internal/azure"
	"github.com/SerenePrince/PAD-Chatbot/internal/config"
	"github.com/SerenePrince/PAD-Chatbot/internal/logging"
	"github.com/SerenePrince/PAD-Chatbot/internal/server"
	"github.com/SerenePrince/PAD-Chatbot/internal/session"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// rootOptions holds the global flags.
type rootOptions struct {
	configPath string
	jsonOut    bool
	verbose    bool
}

// newAdapter builds the chat service client. Tests replace it with a stub.
var newAdapter = func(cfg *config.Config, logger zerolog.Logger) (session.Adapter, string) {
	client := azure.NewClient(cfg, azure.WithLogger(logger))
	return client, client.Deployment()
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

// NewRootCmd builds the padbot command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "padbot",
		Short: "Ask questions about the Project Approval Document",
		Long: `padbot answers questions about the Project Approval Document (PAD)
using an Azure OpenAI deployment grounded on an Azure AI Search index.

Run without a subcommand to open the chat view.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.padbot/config.toml)")
	root.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "output JSON where supported")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newAskCmd(opts),
		newChatCmd(opts),
		newServeCmd(opts),
		newConfigCmd(opts),
	)
	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	server.Version = Version

	root := NewRootCmd()
	cmd, err := root.ExecuteC()
	if err != nil {
		jsonOut, _ := cmd.Flags().GetBool("json")
		DisplayError(os.Stderr, cmd.Name(), err, jsonOut)
		return GetExitCode(err)
	}
	return ExitSuccess
}

// =============================================================================
// SHARED SETUP
// =============================================================================

// app bundles what the session commands need.
type app struct {
	cfg        *config.Config
	configPath string
	logger     zerolog.Logger
	closer     io.Closer
	ctrl       *session.Controller
	deployment string
}

// loadConfig resolves the config path and loads the config.
func loadConfig(opts *rootOptions) (*config.Config, string, error) {
	path := opts.configPath
	load := func() (*config.Config, error) { return config.LoadFromPath(path) }
	if path == "" {
		p, err := config.ConfigPath()
		if err != nil {
			return nil, "", err
		}
		path = p
		load = config.Load
	}
	cfg, err := load()
	if err != nil {
		return nil, path, err
	}
	if opts.verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, path, nil
}

// newApp loads the config, checks the connection values and builds the
// controller. When console is set the log goes to stderr instead of the
// log file.
func newApp(opts *rootOptions, console bool) (*app, error) {
	cfg, path, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	if err := cfg.RequireRemote(); err != nil {
		return nil, err
	}

	var (
		logger zerolog.Logger
		closer io.Closer = io.NopCloser(nil)
	)
	if console {
		level, err := logging.ParseLevel(cfg.Log.Level)
		if err != nil {
			return nil, err
		}
		logger = logging.Console(level)
	} else {
		logger, closer, err = logging.New(cfg.Log)
		if err != nil {
			return nil, err
		}
	}

	adapter, deployment := newAdapter(cfg, logger)
	ctrl := session.NewController(adapter, session.Options{
		Window:  cfg.History.Window,
		Timeout: cfg.RequestTimeout(),
		Logger:  logger,
	})

	logger.Debug().
		Str("config", path).
		Str("deployment", deployment).
		Int("window", cfg.History.Window).
		Msg("session ready")

	return &app{
		cfg:        cfg,
		configPath: path,
		logger:     logger,
		closer:     closer,
		ctrl:       ctrl,
		deployment: deployment,
	}, nil
}

// Close releases the log file.
func (a *app) Close() error {
	return a.closer.Close()
}
