// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/SerenePrince/PAD-Chatbot/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete padbot configuration.
type Config struct {
	// OpenAI holds the Azure OpenAI chat deployment settings.
	OpenAI OpenAIConfig `toml:"openai" json:"openai"`

	// Search holds the Azure AI Search data source used for retrieval.
	Search SearchConfig `toml:"search" json:"search"`

	// Generation holds the completion parameters sent with every request.
	Generation GenerationConfig `toml:"generation" json:"generation"`

	History HistoryConfig `toml:"history" json:"history"`

	// RequestTimeoutSecs bounds a single remote call. 0 disables the timeout.
	RequestTimeoutSecs int `toml:"request_timeout_secs" json:"request_timeout_secs"`

	// RateLimitPerMinute caps outbound chat requests. 0 disables the limiter.
	RateLimitPerMinute int `toml:"rate_limit_per_minute" json:"rate_limit_per_minute"`

	Server ServerConfig `toml:"server" json:"server"`
	UI     UIConfig     `toml:"ui" json:"ui"`
	Log    LogConfig    `toml:"log" json:"log"`

	// FAQ entries shown next to the conversation.
	FAQ []FAQItem `toml:"faq" json:"faq"`
}

// OpenAIConfig contains the Azure OpenAI connection settings.
type OpenAIConfig struct {
	// Endpoint is the resource URL, e.g. https://my-resource.openai.azure.com
	Endpoint string `toml:"endpoint" json:"endpoint"`
	APIKey   string `toml:"api_key" json:"api_key"`
	// APIVersion is the api-version query parameter, e.g. 2024-02-15-preview
	APIVersion string `toml:"api_version" json:"api_version"`
	// Deployment is the model deployment name.
	Deployment string `toml:"deployment" json:"deployment"`
}

// SearchConfig contains the Azure AI Search data source settings.
type SearchConfig struct {
	Endpoint string `toml:"endpoint" json:"endpoint"`
	APIKey   string `toml:"api_key" json:"api_key"`
	Index    string `toml:"index" json:"index"`
}

// GenerationConfig contains the sampling parameters.
type GenerationConfig struct {
	MaxTokens        int     `toml:"max_tokens" json:"max_tokens"`
	Temperature      float64 `toml:"temperature" json:"temperature"`
	TopP             float64 `toml:"top_p" json:"top_p"`
	FrequencyPenalty float64 `toml:"frequency_penalty" json:"frequency_penalty"`
	PresencePenalty  float64 `toml:"presence_penalty" json:"presence_penalty"`
}

// HistoryConfig controls how much of the conversation is sent upstream.
type HistoryConfig struct {
	// Window is the number of prior turns included with each request.
	Window int `toml:"window" json:"window"`
}

// ServerConfig contains settings for the HTTP API (padbot serve).
type ServerConfig struct {
	Addr string `toml:"addr" json:"addr"`
	// APIKey enables bearer-token auth when non-empty.
	APIKey             string   `toml:"api_key" json:"api_key"`
	CORSOrigins        []string `toml:"cors_origins" json:"cors_origins"`
	RateLimitPerMinute int      `toml:"rate_limit_per_minute" json:"rate_limit_per_minute"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	Title       string `toml:"title" json:"title"`
	Description string `toml:"description" json:"description"`
	// WordWrap is the markdown wrap width for non-interactive output.
	WordWrap int  `toml:"word_wrap" json:"word_wrap"`
	ShowFAQ  bool `toml:"show_faq" json:"show_faq"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `toml:"level" json:"level"`
	// File is the log file path (empty = ~/.padbot/padbot.log).
	File string `toml:"file" json:"file"`
}

// FAQItem is a single question/answer pair in the FAQ section.
type FAQItem struct {
	Question string `toml:"question" json:"question"`
	Answer   string `toml:"answer" json:"answer"`
}

// RequestTimeout returns the remote call timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSecs) * time.Second
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// DefaultAPIVersion is the api-version written by `padbot config init`. It is
// not applied at load time; the version must be configured explicitly.
const DefaultAPIVersion = "2024-02-15-preview"

// Default returns a Config with default values. Connection settings are left
// empty and must come from the config file or the environment.
func Default() *Config {
	return &Config{
		Generation: GenerationConfig{
			MaxTokens:        500,
			Temperature:      0,
			TopP:             0.5,
			FrequencyPenalty: 0,
			PresencePenalty:  0,
		},
		History: HistoryConfig{
			Window: 10,
		},
		RequestTimeoutSecs: 60,
		RateLimitPerMinute: 30,
		Server: ServerConfig{
			Addr:               "127.0.0.1:8080",
			RateLimitPerMinute: 60,
		},
		UI: UIConfig{
			Title:       "PAD Chatbot",
			Description: "Ask about the Project Approval Directive (PAD) and receive fast, accurate answers powered by AI.",
			WordWrap:    80,
			ShowFAQ:     true,
		},
		Log: LogConfig{
			Level: "info",
		},
		FAQ: DefaultFAQ(),
	}
}

// DefaultFAQ returns the built-in FAQ entries.
func DefaultFAQ() []FAQItem {
	return []FAQItem{
		{
			Question: "What is the PAD document?",
			Answer:   "The PAD provides the direction necessary to meet your obligations under the new Treasury Board policies on managing investments, projects, and programs.",
		},
		{
			Question: "How often is the PAD updated?",
			Answer:   "It is reviewed quarterly or following significant project changes.",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the padbot configuration directory path.
func ConfigDir() (string, error) {
	if dir := os.Getenv("PADBOT_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".padbot"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ensureSecurePermissions tightens a config file to 0600 since it may hold API keys.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the default config file, the .env file in the
// working directory and the environment, in that order.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific TOML file. A missing file
// is not an error; defaults and the environment still apply.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadTOML(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
			}
		}
	}

	if err := LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	// An explicit [[faq]] list replaces the defaults rather than appending.
	if md.IsDefined("faq") {
		cfg.FAQ = dedupeFAQ(cfg.FAQ)
	}
	return nil
}

// LoadFAQ reads only the FAQ list from a config file. Used for hot reload.
func LoadFAQ(path string) ([]FAQItem, error) {
	var partial struct {
		FAQ []FAQItem `toml:"faq"`
	}
	md, err := toml.DecodeFile(path, &partial)
	if err != nil {
		return nil, fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if !md.IsDefined("faq") {
		return DefaultFAQ(), nil
	}
	return dedupeFAQ(partial.FAQ), nil
}

func dedupeFAQ(items []FAQItem) []FAQItem {
	seen := make(map[string]bool, len(items))
	out := make([]FAQItem, 0, len(items))
	for _, item := range items {
		if item.Question == "" || seen[item.Question] {
			continue
		}
		seen[item.Question] = true
		out = append(out, item)
	}
	return out
}

// SetDefaults fills zero values that have no meaningful zero.
func (c *Config) SetDefaults() {
	d := Default()
	if c.Generation.MaxTokens == 0 {
		c.Generation.MaxTokens = d.Generation.MaxTokens
	}
	if c.History.Window == 0 {
		c.History.Window = d.History.Window
	}
	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}
	if c.UI.Title == "" {
		c.UI.Title = d.UI.Title
	}
	if c.UI.Description == "" {
		c.UI.Description = d.UI.Description
	}
	if c.UI.WordWrap == 0 {
		c.UI.WordWrap = d.UI.WordWrap
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// SaveTOML writes the configuration to a TOML file with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# padbot configuration file\n")
	buf.WriteString("#\n")
	buf.WriteString("# Connection values may also come from the environment or a .env file:\n")
	buf.WriteString("#   PADBOT_OPENAI_ENDPOINT, PADBOT_OPENAI_API_KEY, PADBOT_OPENAI_API_VERSION,\n")
	buf.WriteString("#   PADBOT_OPENAI_DEPLOYMENT, PADBOT_SEARCH_ENDPOINT, PADBOT_SEARCH_API_KEY,\n")
	buf.WriteString("#   PADBOT_SEARCH_INDEX\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

// Clone returns a deep copy of the config.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Server.CORSOrigins = append([]string(nil), c.Server.CORSOrigins...)
	clone.FAQ = append([]FAQItem(nil), c.FAQ...)
	return &clone
}

// String returns the config as indented JSON with secrets redacted.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c.Redacted(), "", "  ")
	return string(data)
}

// Redacted returns a copy with every secret replaced by "[REDACTED]".
func (c *Config) Redacted() *Config {
	safe := c.Clone()
	for _, key := range []*string{&safe.OpenAI.APIKey, &safe.Search.APIKey, &safe.Server.APIKey} {
		if *key != "" {
			*key = "[REDACTED]"
		}
	}
	return safe
}
