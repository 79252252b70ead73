// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SerenePrince/PAD-Chatbot/internal/model"
)

// clearEnv blanks every variable ApplyEnvOverrides reads so the host
// environment cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, b := range requiredBindings {
		t.Setenv(b.Name, "")
		t.Setenv(b.Legacy, "")
	}
	for _, name := range []string{"PADBOT_HISTORY_WINDOW", "PADBOT_REQUEST_TIMEOUT", "PADBOT_SERVER_ADDR", "PADBOT_SERVER_API_KEY", "PADBOT_LOG_LEVEL"} {
		t.Setenv(name, "")
	}
}

func setRemoteEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PADBOT_OPENAI_ENDPOINT", "https://example.openai.azure.com")
	t.Setenv("PADBOT_OPENAI_API_KEY", "key")
	t.Setenv("PADBOT_OPENAI_API_VERSION", "2024-02-15-preview")
	t.Setenv("PADBOT_OPENAI_DEPLOYMENT", "gpt-4o")
	t.Setenv("PADBOT_SEARCH_ENDPOINT", "https://example.search.windows.net")
	t.Setenv("PADBOT_SEARCH_API_KEY", "search-key")
	t.Setenv("PADBOT_SEARCH_INDEX", "pad-index")
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 500, cfg.Generation.MaxTokens)
	assert.Equal(t, 0.0, cfg.Generation.Temperature)
	assert.Equal(t, 0.5, cfg.Generation.TopP)
	assert.Equal(t, 10, cfg.History.Window)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout())
	assert.Equal(t, "PAD Chatbot", cfg.UI.Title)
	assert.Len(t, cfg.FAQ, 2)
	assert.NoError(t, cfg.Validate())
}

func TestRequireRemote_NamesFirstMissingValue(t *testing.T) {
	clearEnv(t)
	cfg := Default()
	cfg.ApplyEnvOverrides()

	err := cfg.RequireRemote()
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "openai.endpoint", cfgErr.Key)
	assert.Equal(t, "PADBOT_OPENAI_ENDPOINT", cfgErr.Env)
	assert.True(t, errors.Is(err, ErrMissingValue))
	assert.Contains(t, err.Error(), "PADBOT_OPENAI_ENDPOINT")
}

func TestRequireRemote_SearchIndexMissing(t *testing.T) {
	clearEnv(t)
	setRemoteEnv(t)
	t.Setenv("PADBOT_SEARCH_INDEX", "")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	var cfgErr *ConfigurationError
	require.True(t, errors.As(cfg.RequireRemote(), &cfgErr))
	assert.Equal(t, "search.index", cfgErr.Key)
	assert.Len(t, cfg.MissingRemote(), 1)
}

func TestRequireRemote_APIVersionMissing(t *testing.T) {
	clearEnv(t)
	setRemoteEnv(t)
	t.Setenv("PADBOT_OPENAI_API_VERSION", "")

	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Empty(t, cfg.OpenAI.APIVersion, "no api-version is assumed at load time")

	var cfgErr *ConfigurationError
	require.True(t, errors.As(cfg.RequireRemote(), &cfgErr))
	assert.Equal(t, "openai.api_version", cfgErr.Key)
	assert.Equal(t, "PADBOT_OPENAI_API_VERSION", cfgErr.Env)
	missing := cfg.MissingRemote()
	require.Len(t, missing, 1)
	assert.Equal(t, "openai.api_version", missing[0].Key)
}

func TestApplyEnvOverrides_LegacyNames(t *testing.T) {
	clearEnv(t)
	t.Setenv("VITE_OPENAI_ENDPOINT", "https://legacy.openai.azure.com")
	t.Setenv("VITE_AI_SEARCH_INDEX", "legacy-index")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "https://legacy.openai.azure.com", cfg.OpenAI.Endpoint)
	assert.Equal(t, "legacy-index", cfg.Search.Index)

	// The PADBOT_ name wins when both are present.
	t.Setenv("PADBOT_OPENAI_ENDPOINT", "https://new.openai.azure.com")
	cfg.ApplyEnvOverrides()
	assert.Equal(t, "https://new.openai.azure.com", cfg.OpenAI.Endpoint)
}

func TestApplyEnvOverrides_Tuning(t *testing.T) {
	clearEnv(t)
	t.Setenv("PADBOT_HISTORY_WINDOW", "4")
	t.Setenv("PADBOT_REQUEST_TIMEOUT", "15s")
	t.Setenv("PADBOT_LOG_LEVEL", "DEBUG")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, 4, cfg.History.Window)
	assert.Equal(t, 15, cfg.RequestTimeoutSecs)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFromPath(t *testing.T) {
	clearEnv(t)
	setRemoteEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
request_timeout_secs = 20

[generation]
top_p = 0.9

[history]
window = 6

[[faq]]
question = "Who owns the PAD?"
answer = "The Assistant Deputy Minister (Materiel)."
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.RequestTimeoutSecs)
	assert.Equal(t, 0.9, cfg.Generation.TopP)
	assert.Equal(t, 500, cfg.Generation.MaxTokens, "unset fields keep defaults")
	assert.Equal(t, 6, cfg.History.Window)
	require.Len(t, cfg.FAQ, 1)
	assert.Equal(t, "Who owns the PAD?", cfg.FAQ[0].Question)
	assert.NoError(t, cfg.RequireRemote())
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Generation, cfg.Generation)
}

func TestLoadFromPath_InvalidValues(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[generation]
temperature = 3.5
top_p = 1.5

[openai]
endpoint = "not a url"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	_, err := LoadFromPath(path)
	require.Error(t, err)

	var verrs ValidateErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 3)
}

func TestValidate_WindowBounds(t *testing.T) {
	cfg := Default()
	cfg.History.Window = model.MaxTurns
	assert.NoError(t, cfg.Validate())

	cfg.History.Window = model.MaxTurns + 1
	var verrs ValidateErrors
	require.True(t, errors.As(cfg.Validate(), &verrs))
	require.Len(t, verrs, 1)
	assert.Equal(t, "history.window", verrs[0].Field)
}

func TestSaveTOML_RoundTrip(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Search.Index = "pad-index"

	require.NoError(t, SaveTOML(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "pad-index", loaded.Search.Index)
	assert.Equal(t, cfg.FAQ, loaded.FAQ)
}

func TestString_RedactsSecrets(t *testing.T) {
	cfg := Default()
	cfg.OpenAI.APIKey = "sk-secret"
	cfg.Search.APIKey = "search-secret"

	out := cfg.String()
	assert.NotContains(t, out, "sk-secret")
	assert.NotContains(t, out, "search-secret")
	assert.Contains(t, out, "[REDACTED]")
	assert.Equal(t, "sk-secret", cfg.OpenAI.APIKey, "original must not be modified")
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PADBOT_SEARCH_INDEX=from-dotenv\n"), 0600))
	t.Setenv("PADBOT_SEARCH_INDEX", "")
	os.Unsetenv("PADBOT_SEARCH_INDEX")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-dotenv", os.Getenv("PADBOT_SEARCH_INDEX"))

	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}

func TestWatchFAQ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ui]\ntitle = \"x\"\n"), 0600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan []FAQItem, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = WatchFAQ(ctx, path, func(items []FAQItem) {
			select {
			case got <- items:
			default:
			}
		}, nil)
	}()

	// Give the watcher time to register.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("[[faq]]\nquestion = \"Q\"\nanswer = \"A\"\n"), 0600))

	select {
	case items := <-got:
		require.Len(t, items, 1)
		assert.Equal(t, "Q", items[0].Question)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for FAQ reload")
	}

	cancel()
	<-done
}
