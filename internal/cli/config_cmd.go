// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Configuration management commands.
//
// Usage:
//   padbot config show [--json]   Show the effective config, secrets redacted
//   padbot config check [--remote] Check required values (and the connection)
//   padbot config init [--force]  Write a starter config file
//   padbot config path            Print the config file path

package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/SerenePrince/PAD-Chatbot/internal/config"
)

// pingTimeout bounds `config check --remote`.
const pingTimeout = 30 * time.Second

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show, check or create the configuration",
	}
	cmd.AddCommand(
		newConfigShowCmd(opts),
		newConfigCheckCmd(opts),
		newConfigInitCmd(opts),
		newConfigPathCmd(opts),
	)
	return cmd
}

func newConfigShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration with secrets redacted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, path, err := loadConfig(opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			safe := cfg.Redacted()

			if opts.jsonOut {
				return NewJSONResponse("config show", safe).Print(out)
			}

			fmt.Fprintln(out, TitleStyle.Render("padbot configuration"))
			fmt.Fprintf(out, "%s %s\n", RenderLabel("File"), DimStyle.Render(path))
			fmt.Fprintln(out, RenderSeparator())
			for _, row := range [][2]string{
				{"OpenAI endpoint", safe.OpenAI.Endpoint},
				{"OpenAI API key", safe.OpenAI.APIKey},
				{"API version", safe.OpenAI.APIVersion},
				{"Deployment", safe.OpenAI.Deployment},
				{"Search endpoint", safe.Search.Endpoint},
				{"Search API key", safe.Search.APIKey},
				{"Search index", safe.Search.Index},
				{"History window", fmt.Sprint(safe.History.Window)},
				{"Request timeout", cfg.RequestTimeout().String()},
				{"Server address", safe.Server.Addr},
				{"Log level", safe.Log.Level},
				{"FAQ entries", fmt.Sprint(len(safe.FAQ))},
			} {
				value := row[1]
				if value == "" {
					value = DimStyle.Render("(not set)")
				} else {
					value = ValueStyle.Render(value)
				}
				fmt.Fprintf(out, "%s %s\n", RenderLabel(row[0]), value)
			}
			return nil
		},
	}
}

// checkResult is the --json payload for config check.
type checkResult struct {
	Path    string   `json:"path"`
	Missing []string `json:"missing"`
	Remote  string   `json:"remote,omitempty"`
}

func newConfigCheckCmd(opts *rootOptions) *cobra.Command {
	var remote bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that every required connection value is set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, path, err := loadConfig(opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			result := checkResult{Path: path, Missing: []string{}}

			missing := cfg.MissingRemote()
			for _, m := range missing {
				result.Missing = append(result.Missing, m.Key)
			}

			var remoteErr error
			if len(missing) == 0 && remote {
				remoteErr = pingRemote(cmd.Context(), cfg)
				result.Remote = "ok"
				if remoteErr != nil {
					result.Remote = remoteErr.Error()
				}
			}

			if opts.jsonOut {
				resp := NewJSONResponse("config check", result)
				resp.Success = len(missing) == 0 && remoteErr == nil
				if err := resp.Print(out); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(out, "%s %s\n", RenderLabel("File"), DimStyle.Render(path))
				if len(missing) == 0 {
					fmt.Fprintf(out, "%s %s\n", RenderStatus("ok"), "all required values are set")
				}
				for _, m := range missing {
					fmt.Fprintf(out, "%s %s\n", RenderStatus("fail"), m.Error())
				}
				if remote && len(missing) == 0 {
					if remoteErr != nil {
						fmt.Fprintf(out, "%s %s\n", RenderStatus("fail"), "connection: "+remoteErr.Error())
					} else {
						fmt.Fprintf(out, "%s %s\n", RenderStatus("ok"), "connection")
					}
				}
			}

			if len(missing) > 0 {
				return missing[0]
			}
			return remoteErr
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "also send a test question to the service")
	return cmd
}

// pingRemote sends a minimal request using the configured adapter.
func pingRemote(parent context.Context, cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(parent, pingTimeout)
	defer cancel()

	adapter, _ := newAdapter(cfg, zerolog.Nop())
	if p, ok := adapter.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	_, err := adapter.Ask(ctx, "Reply with the single word: ok", nil)
	return err
}

func newConfigInitCmd(opts *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := opts.configPath
			if path == "" {
				p, err := config.ConfigPath()
				if err != nil {
					return err
				}
				path = p
			}
			if _, err := os.Stat(path); err == nil && !force {
				return &UsageError{
					Reason:  fmt.Sprintf("config file already exists: %s", path),
					Example: "padbot config init --force",
				}
			}

			cfg := config.Default()
			cfg.SetDefaults()
			cfg.OpenAI.APIVersion = config.DefaultAPIVersion
			if err := config.SaveTOML(cfg, path); err != nil {
				return err
			}

			if opts.jsonOut {
				return NewJSONResponse("config init", map[string]string{"path": path}).Print(cmd.OutOrStdout())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s wrote %s\n", RenderStatus("ok"), path)
			fmt.Fprintln(cmd.OutOrStdout(), DimStyle.Render("Fill in the [openai] and [search] sections, then run: padbot config check --remote"))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func newConfigPathCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := opts.configPath
			if path == "" {
				p, err := config.ConfigPath()
				if err != nil {
					return err
				}
				path = p
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
