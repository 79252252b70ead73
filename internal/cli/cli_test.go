// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SerenePrince/PAD-Chatbot/internal/azure"
	"github.com/SerenePrince/PAD-Chatbot/internal/config"
	"github.com/SerenePrince/PAD-Chatbot/internal/model"
	"github.com/SerenePrince/PAD-Chatbot/internal/session"
)

// stubAdapter answers every question the same way and records the last one.
type stubAdapter struct {
	answer string
	err    error
	asked  []string
}

func (s *stubAdapter) Ask(_ context.Context, question string, _ []model.Turn) (string, error) {
	s.asked = append(s.asked, question)
	return s.answer, s.err
}

// setupEnv points the config directory at a temp dir, sets every required
// connection value and swaps in stub. It returns the config file path.
func setupEnv(t *testing.T, stub *stubAdapter) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("PADBOT_HOME", home)
	t.Setenv("PADBOT_OPENAI_ENDPOINT", "https://example.openai.azure.com")
	t.Setenv("PADBOT_OPENAI_API_KEY", "openai-secret")
	t.Setenv("PADBOT_OPENAI_API_VERSION", "2024-02-15-preview")
	t.Setenv("PADBOT_OPENAI_DEPLOYMENT", "gpt-test")
	t.Setenv("PADBOT_SEARCH_ENDPOINT", "https://example.search.windows.net")
	t.Setenv("PADBOT_SEARCH_API_KEY", "search-secret")
	t.Setenv("PADBOT_SEARCH_INDEX", "pad-index")

	orig := newAdapter
	newAdapter = func(*config.Config, zerolog.Logger) (session.Adapter, string) {
		return stub, "gpt-test"
	}
	t.Cleanup(func() { newAdapter = orig })

	return filepath.Join(home, "config.toml")
}

// run executes the command tree with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// =============================================================================
// EXIT CODES
// =============================================================================

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"generic", errors.New("boom"), ExitGeneralError},
		{"usage", &UsageError{Reason: "no question"}, ExitUsageError},
		{"validation", &session.ValidationError{Reason: session.ErrEmptyQuestion}, ExitUsageError},
		{"missing config", &config.ConfigurationError{Key: "openai.endpoint"}, ExitConfigError},
		{"wrapped missing config", fmt.Errorf("load: %w", &config.ConfigurationError{Key: "search.index"}), ExitConfigError},
		{"invalid config", config.ValidateErrors{{Field: "history.window", Message: "must be >= 0"}}, ExitConfigError},
		{"timeout", context.DeadlineExceeded, ExitTimeoutError},
		{"remote", &azure.RemoteError{StatusCode: 500}, ExitRemoteError},
		{"failed answer", &answerError{cause: errors.New("connection reset")}, ExitRemoteError},
		{"failed answer timeout", &answerError{cause: context.DeadlineExceeded}, ExitTimeoutError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestUsageError_IncludesExample(t *testing.T) {
	err := &UsageError{Reason: "no question given", Example: `padbot ask "hi"`}
	assert.Contains(t, err.Error(), "no question given")
	assert.Contains(t, err.Error(), `Example: padbot ask "hi"`)
}

func TestAnswerError_HidesCause(t *testing.T) {
	err := &answerError{cause: errors.New("401 Unauthorized: key abc123")}
	assert.Equal(t, errAnswerFailed.Error(), err.Error())
	assert.ErrorIs(t, err, errAnswerFailed)
}

// =============================================================================
// JSON OUTPUT
// =============================================================================

func TestJSONResponse(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONResponse("ask", map[string]int{"n": 1}).Print(&buf))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, true, got["success"])
	assert.Equal(t, "ask", got["command"])
	assert.Nil(t, got["error"])
	assert.NotEmpty(t, got["timestamp"])
}

func TestJSONErrorResponse(t *testing.T) {
	var buf bytes.Buffer
	DisplayError(&buf, "ask", errors.New("boom"), true)

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, false, got["success"])
	assert.Equal(t, "boom", got["error"])
}

func TestDisplayError_Text(t *testing.T) {
	var buf bytes.Buffer
	DisplayError(&buf, "ask", errors.New("boom"), false)
	assert.Contains(t, buf.String(), "[ERROR] boom")
}

// =============================================================================
// ASK
// =============================================================================

func TestAsk_PrintsAnswer(t *testing.T) {
	stub := &stubAdapter{answer: "A PAD is a Project Approval Document."}
	path := setupEnv(t, stub)

	out, err := run(t, "--config", path, "ask", "What", "is", "a", "PAD?")
	require.NoError(t, err)
	assert.Contains(t, out, "A PAD is a Project Approval Document.")
	assert.Equal(t, []string{"What is a PAD?"}, stub.asked)
}

func TestAsk_JSON(t *testing.T) {
	stub := &stubAdapter{answer: "Yes."}
	path := setupEnv(t, stub)

	out, err := run(t, "--config", path, "--json", "ask", "Is it required?")
	require.NoError(t, err)

	var resp struct {
		Success bool      `json:"success"`
		Data    askResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Is it required?", resp.Data.Turn.Question)
	assert.Equal(t, "Yes.", resp.Data.Turn.Answer)
	assert.Equal(t, model.StatusResolved, resp.Data.Turn.Status)
}

func TestAsk_FailedTurn(t *testing.T) {
	stub := &stubAdapter{err: errors.New("upstream exploded")}
	path := setupEnv(t, stub)

	out, err := run(t, "--config", path, "ask", "Who approves a PAD?")
	require.Error(t, err)
	assert.Equal(t, ExitRemoteError, GetExitCode(err))
	assert.Contains(t, out, session.FailedAnswer)
	assert.NotContains(t, out, "upstream exploded")
}

func TestAsk_Timeout(t *testing.T) {
	stub := &stubAdapter{err: context.DeadlineExceeded}
	path := setupEnv(t, stub)

	_, err := run(t, "--config", path, "ask", "slow question")
	require.Error(t, err)
	assert.Equal(t, ExitTimeoutError, GetExitCode(err))
}

func TestAsk_EmptyQuestion(t *testing.T) {
	stub := &stubAdapter{answer: "unused"}
	path := setupEnv(t, stub)

	_, err := run(t, "--config", path, "ask", "   ")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, GetExitCode(err))
	assert.Empty(t, stub.asked)
}

func TestAsk_MissingConfig(t *testing.T) {
	stub := &stubAdapter{answer: "unused"}
	path := setupEnv(t, stub)
	os.Unsetenv("PADBOT_SEARCH_INDEX")

	_, err := run(t, "--config", path, "ask", "hello")
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, GetExitCode(err))
	assert.Contains(t, err.Error(), "search.index")
	assert.Empty(t, stub.asked)
}

func TestReadQuestion_Stdin(t *testing.T) {
	if IsTTY() {
		t.Skip("stdin is a terminal")
	}
	cmd := newAskCmd(&rootOptions{})
	cmd.SetIn(strings.NewReader("From stdin?\n"))
	q, err := readQuestion(cmd, nil)
	require.NoError(t, err)
	assert.Equal(t, "From stdin?\n", q)
}

// =============================================================================
// CONFIG
// =============================================================================

func TestConfigShow_RedactsSecrets(t *testing.T) {
	path := setupEnv(t, &stubAdapter{})

	out, err := run(t, "--config", path, "--json", "config", "show")
	require.NoError(t, err)
	assert.NotContains(t, out, "openai-secret")
	assert.NotContains(t, out, "search-secret")
	assert.Contains(t, out, "[REDACTED]")
	assert.Contains(t, out, "pad-index")
}

func TestConfigShow_Text(t *testing.T) {
	path := setupEnv(t, &stubAdapter{})

	out, err := run(t, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Deployment")
	assert.Contains(t, out, "gpt-test")
	assert.NotContains(t, out, "openai-secret")
}

func TestConfigInit(t *testing.T) {
	path := setupEnv(t, &stubAdapter{})

	out, err := run(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)
	assert.FileExists(t, path)

	_, err = run(t, "--config", path, "config", "init")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, GetExitCode(err))

	_, err = run(t, "--config", path, "config", "init", "--force")
	require.NoError(t, err)

	cfg, err := config.LoadFromPath(path)
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.FAQ)
	assert.Equal(t, config.DefaultAPIVersion, cfg.OpenAI.APIVersion)
}

func TestAsk_DefaultConfigPath(t *testing.T) {
	stub := &stubAdapter{answer: "From the default path."}
	setupEnv(t, stub)

	out, err := run(t, "ask", "hello")
	require.NoError(t, err)
	assert.Contains(t, out, "From the default path.")
}

func TestAsk_MissingAPIVersion(t *testing.T) {
	stub := &stubAdapter{answer: "unused"}
	path := setupEnv(t, stub)
	t.Setenv("PADBOT_OPENAI_API_VERSION", "")
	t.Setenv("VITE_OPENAI_API_VERSION", "")

	_, err := run(t, "--config", path, "ask", "hello")
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, GetExitCode(err))
	assert.Contains(t, err.Error(), "openai.api_version")
	assert.Empty(t, stub.asked)
}

func TestConfigCheck(t *testing.T) {
	stub := &stubAdapter{answer: "ok"}
	path := setupEnv(t, stub)

	out, err := run(t, "--config", path, "config", "check", "--remote")
	require.NoError(t, err)
	assert.Contains(t, out, "[OK]")
	assert.Len(t, stub.asked, 1)
}

func TestConfigCheck_Missing(t *testing.T) {
	path := setupEnv(t, &stubAdapter{})
	os.Unsetenv("PADBOT_OPENAI_API_KEY")

	out, err := run(t, "--config", path, "config", "check")
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, GetExitCode(err))
	assert.Contains(t, out, "openai.api_key")
}

func TestConfigCheck_RemoteFailure(t *testing.T) {
	path := setupEnv(t, &stubAdapter{err: &azure.RemoteError{StatusCode: 401}})

	_, err := run(t, "--config", path, "config", "check", "--remote")
	require.Error(t, err)
	assert.Equal(t, ExitRemoteError, GetExitCode(err))
}

func TestConfigPath(t *testing.T) {
	path := setupEnv(t, &stubAdapter{})

	out, err := run(t, "--config", path, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, path, strings.TrimSpace(out))
}

// =============================================================================
// STYLES
// =============================================================================

func TestRenderStatus(t *testing.T) {
	assert.Contains(t, RenderStatus("ok"), "[OK]")
	assert.Contains(t, RenderStatus("fail"), "[FAIL]")
	assert.Contains(t, RenderStatus("warn"), "[WARN]")
	assert.Contains(t, RenderStatus("skipped"), "[SKIPPED]")
}
