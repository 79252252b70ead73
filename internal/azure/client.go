// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package azure provides the Azure OpenAI chat client used to answer PAD
// questions.
//
// Every request carries the PAD-Bot persona, a window of prior turns and an
// Azure AI Search data source so the service grounds its answer in the
// indexed directive. The client holds no conversation state of its own.
package azure

import (
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/azure"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/SerenePrince/PAD-Chatbot/internal/config"
	"github.com/SerenePrince/PAD-Chatbot/internal/model"
)

// Configuration constants for the Azure OpenAI client.
const (
	// DefaultTimeout bounds the underlying HTTP client. Callers usually set a
	// tighter deadline through the context.
	DefaultTimeout = 90 * time.Second

	// DefaultMaxRetries is the number of retries for transient HTTP errors.
	DefaultMaxRetries = 2

	// DataSourceType is the data source kind for Azure AI Search.
	DataSourceType = "azure_search"
)

// sharedHTTPClient pools connections across requests. TLS 1.2 is the floor.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig:     &tls.Config{MinVersion: tls.VersionTLS12},
	},
	Timeout: DefaultTimeout,
}

// =============================================================================
// CLIENT
// =============================================================================

// Client sends questions to an Azure OpenAI deployment.
type Client struct {
	api        openai.Client
	deployment string
	generation config.GenerationConfig
	dataSource DataSource
	limiter    *rate.Limiter
	logger     zerolog.Logger
	keyID      string
}

// Option customizes a Client.
type Option func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
	maxRetries int
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = c }
}

// WithMaxRetries overrides the retry count for transient failures.
func WithMaxRetries(n int) Option {
	return func(o *clientOptions) { o.maxRetries = n }
}

// WithRateLimit limits outbound requests to perMinute. 0 disables limiting.
func WithRateLimit(perMinute int) Option {
	return func(o *clientOptions) {
		if perMinute <= 0 {
			o.limiter = nil
			return
		}
		o.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *clientOptions) { o.logger = l }
}

// NewClient creates a client from the chat, search and generation settings.
// cfg.RequireRemote should have been checked by the caller.
func NewClient(cfg *config.Config, opts ...Option) *Client {
	o := clientOptions{
		httpClient: sharedHTTPClient,
		maxRetries: DefaultMaxRetries,
		logger:     zerolog.Nop(),
	}
	WithRateLimit(cfg.RateLimitPerMinute)(&o)
	for _, opt := range opts {
		opt(&o)
	}

	api := openai.NewClient(
		azure.WithEndpoint(strings.TrimRight(cfg.OpenAI.Endpoint, "/"), cfg.OpenAI.APIVersion),
		azure.WithAPIKey(cfg.OpenAI.APIKey),
		option.WithHTTPClient(o.httpClient),
		option.WithMaxRetries(o.maxRetries),
	)

	return &Client{
		api:        api,
		deployment: cfg.OpenAI.Deployment,
		generation: cfg.Generation,
		dataSource: NewSearchDataSource(cfg.Search),
		limiter:    o.limiter,
		logger:     o.logger.With().Str("component", "azure").Logger(),
		keyID:      keyFingerprint(cfg.OpenAI.APIKey),
	}
}

// Deployment returns the deployment name requests are sent to.
func (c *Client) Deployment() string {
	return c.deployment
}

// =============================================================================
// ASK
// =============================================================================

// Ask sends question with the given prior turns and returns the trimmed
// answer. history is sent as is; windowing is the caller's job. Any failure
// is returned as a *RemoteError.
func (c *Client) Ask(ctx context.Context, question string, history []model.Turn) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", &RemoteError{Op: "rate limit", Err: fmt.Errorf("%w: %w", ErrRateLimited, err)}
		}
	}

	params := c.buildParams(question, history)
	start := time.Now()

	resp, err := c.api.Chat.Completions.New(ctx, params, option.WithJSONSet("data_sources", []DataSource{c.dataSource}))
	if err != nil {
		remoteErr := &RemoteError{Op: "request", Err: err}
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			remoteErr.StatusCode = apiErr.StatusCode
		}
		c.logger.Warn().
			Err(err).
			Int("status", remoteErr.StatusCode).
			Str("deployment", c.deployment).
			Str("key_id", c.keyID).
			Dur("elapsed", time.Since(start)).
			Msg("chat completion failed")
		return "", remoteErr
	}

	if len(resp.Choices) == 0 {
		return "", &RemoteError{Op: "response", Err: ErrNoChoices}
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", &RemoteError{Op: "response", Err: ErrEmptyAnswer}
	}

	c.logger.Debug().
		Str("deployment", c.deployment).
		Int("history_turns", len(history)).
		Int64("prompt_tokens", resp.Usage.PromptTokens).
		Int64("completion_tokens", resp.Usage.CompletionTokens).
		Str("finish_reason", string(resp.Choices[0].FinishReason)).
		Dur("elapsed", time.Since(start)).
		Msg("chat completion")

	return answer, nil
}

// Ping sends a minimal request to confirm the deployment and data source are
// reachable with the configured credentials.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Ask(ctx, "Reply with the single word: ok", nil)
	return err
}

// buildParams assembles the message list: persona, then each prior turn as a
// user/assistant pair oldest first, then the new question.
func (c *Client) buildParams(question string, history []model.Turn) openai.ChatCompletionNewParams {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2*len(history)+2)
	messages = append(messages, openai.SystemMessage(Persona))
	for _, turn := range history {
		if turn.IsPending() {
			continue
		}
		messages = append(messages,
			openai.UserMessage(turn.Question),
			openai.AssistantMessage(turn.Answer),
		)
	}
	messages = append(messages, openai.UserMessage(question))

	g := c.generation
	return openai.ChatCompletionNewParams{
		Model:            c.deployment,
		Messages:         messages,
		MaxTokens:        openai.Int(int64(g.MaxTokens)),
		Temperature:      openai.Float(g.Temperature),
		TopP:             openai.Float(g.TopP),
		FrequencyPenalty: openai.Float(g.FrequencyPenalty),
		PresencePenalty:  openai.Float(g.PresencePenalty),
	}
}

// =============================================================================
// DATA SOURCE
// =============================================================================

// DataSource is the "data_sources" entry that points the service at the
// search index.
type DataSource struct {
	Type       string               `json:"type"`
	Parameters DataSourceParameters `json:"parameters"`
}

// DataSourceParameters holds the search index connection details.
type DataSourceParameters struct {
	Endpoint       string         `json:"endpoint"`
	IndexName      string         `json:"index_name"`
	Authentication Authentication `json:"authentication"`
}

// Authentication is the data source credential.
type Authentication struct {
	Type string `json:"type"`
	Key  string `json:"key"`
}

// NewSearchDataSource builds an api_key-authenticated search data source.
func NewSearchDataSource(s config.SearchConfig) DataSource {
	return DataSource{
		Type: DataSourceType,
		Parameters: DataSourceParameters{
			Endpoint:  s.Endpoint,
			IndexName: s.Index,
			Authentication: Authentication{
				Type: "api_key",
				Key:  s.APIKey,
			},
		},
	}
}

// keyFingerprint identifies a key in logs without revealing it.
func keyFingerprint(key string) string {
	if key == "" {
		return "none"
	}
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])[:8]
}
