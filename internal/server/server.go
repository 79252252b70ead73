// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/SerenePrince/PAD-Chatbot/internal/config"
	"github.com/SerenePrince/PAD-Chatbot/internal/export"
	"github.com/SerenePrince/PAD-Chatbot/internal/model"
	"github.com/SerenePrince/PAD-Chatbot/internal/session"
)

// ============================================================================
// CONSTANTS
// ============================================================================

const (
	// DefaultAddr is used when Options.Addr is empty.
	DefaultAddr = "127.0.0.1:8080"

	// MaxQuestionLength bounds the question accepted by /api/v1/ask.
	MaxQuestionLength = 4000

	// MaxRequestBodySize bounds request bodies (64KB).
	MaxRequestBodySize = 64 * 1024

	// shutdownTimeout bounds graceful shutdown in Run.
	shutdownTimeout = 10 * time.Second
)

// Version is reported by /health. It is set by the cli package.
var Version = "dev"

// ============================================================================
// SERVER STATS
// ============================================================================

// Stats counts API requests by outcome.
type Stats struct {
	Asked     int64     `json:"asked"`
	Resolved  int64     `json:"resolved"`
	Failed    int64     `json:"failed"`
	Rejected  int64     `json:"rejected"`
	StartTime time.Time `json:"start_time"`
}

type serverStats struct {
	asked, resolved, failed, rejected atomic.Int64
	start                             time.Time
}

func (s *serverStats) snapshot() Stats {
	return Stats{
		Asked:     s.asked.Load(),
		Resolved:  s.resolved.Load(),
		Failed:    s.failed.Load(),
		Rejected:  s.rejected.Load(),
		StartTime: s.start,
	}
}

// ============================================================================
// SERVER
// ============================================================================

// Options configures the server.
type Options struct {
	Addr               string
	APIKey             string
	CORSOrigins        []string
	RateLimitPerMinute int
	FAQ                []config.FAQItem
	// Deployment is reported by /health.
	Deployment string
	// Title heads exported transcripts.
	Title  string
	Logger zerolog.Logger
}

// Server serves the JSON API for one controller.
type Server struct {
	ctrl   *session.Controller
	opts   Options
	engine *gin.Engine
	stats  *serverStats
	logger zerolog.Logger

	faqMu sync.RWMutex
	faq   []config.FAQItem
}

// New creates a server for ctrl and registers its routes.
func New(ctrl *session.Controller, opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = DefaultAddr
	}
	if opts.Title == "" {
		opts.Title = "PAD Chatbot"
	}

	s := &Server{
		ctrl:   ctrl,
		opts:   opts,
		stats:  &serverStats{start: time.Now()},
		logger: opts.Logger.With().Str("component", "server").Logger(),
		faq:    opts.FAQ,
	}
	s.engine = s.setupRouter()
	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// SetFAQ replaces the FAQ entries served by /api/v1/faq.
func (s *Server) SetFAQ(items []config.FAQItem) {
	s.faqMu.Lock()
	defer s.faqMu.Unlock()
	s.faq = items
}

func (s *Server) currentFAQ() []config.FAQItem {
	s.faqMu.RLock()
	defer s.faqMu.RUnlock()
	return s.faq
}

// ============================================================================
// ROUTES
// ============================================================================

func (s *Server) setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(Recovery(s.logger))
	router.Use(RequestLogger(s.logger))
	router.Use(SecurityHeaders())
	router.Use(CORS(s.opts.CORSOrigins))
	if s.opts.RateLimitPerMinute > 0 {
		router.Use(RateLimit(NewRateLimiter(s.opts.RateLimitPerMinute)))
	}

	router.GET("/health", s.handleHealth)
	router.GET("/stats", s.handleStats)

	v1 := router.Group("/api/v1")
	if s.opts.APIKey != "" {
		v1.Use(Auth(s.opts.APIKey, s.logger))
	}
	{
		v1.GET("/turns", s.handleTurns)
		v1.DELETE("/turns", s.handleReset)
		v1.GET("/turns/export", s.handleExport)
		v1.POST("/ask", s.handleAsk)
		v1.POST("/cancel", s.handleCancel)
		v1.GET("/faq", s.handleFAQ)
	}
	return router
}

// ============================================================================
// TYPES
// ============================================================================

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Turn      model.Turn `json:"turn"`
	LatencyMs int64      `json:"latency_ms"`
	Notices   []string   `json:"notices,omitempty"`
}

type turnsResponse struct {
	Turns []model.Turn `json:"turns"`
	State string       `json:"state"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ============================================================================
// HANDLERS
// ============================================================================

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"version":    Version,
		"state":      s.ctrl.State().String(),
		"deployment": s.opts.Deployment,
	})
}

func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.stats.snapshot())
}

func (s *Server) handleTurns(c *gin.Context) {
	snap := s.ctrl.Snapshot()
	turns := snap.Turns
	if turns == nil {
		turns = []model.Turn{}
	}
	c.JSON(http.StatusOK, turnsResponse{Turns: turns, State: snap.State.String()})
}

func (s *Server) handleExport(c *gin.Context) {
	exp, err := export.ForFormat(c.DefaultQuery("format", "markdown"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	t := export.NewTranscript(s.opts.Title, s.opts.Deployment, s.ctrl.Turns())
	content, err := exp.Export(t)
	if errors.Is(err, export.ErrEmptyTranscript) {
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "export failed"})
		return
	}
	filename := "pad_conversation" + exp.FileExtension()
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, exp.MimeType()+"; charset=utf-8", content)
}

func (s *Server) handleAsk(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxRequestBodySize)

	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.stats.rejected.Add(1)
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request format"})
		return
	}
	if len(req.Question) > MaxQuestionLength {
		s.stats.rejected.Add(1)
		c.JSON(http.StatusBadRequest, errorResponse{Error: "question is too long"})
		return
	}

	start := time.Now()
	turn, err := s.ctrl.Ask(c.Request.Context(), req.Question)
	notices := s.drainNotices()
	if err != nil {
		s.stats.rejected.Add(1)
		var verr *session.ValidationError
		switch {
		case errors.As(err, &verr) && errors.Is(err, session.ErrBusy):
			c.JSON(http.StatusConflict, errorResponse{Error: verr.Notice})
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, errorResponse{Error: verr.Notice})
		default:
			s.logger.Error().Err(err).Msg("ask failed")
			c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
		}
		return
	}

	s.stats.asked.Add(1)
	if turn.IsFailed() {
		s.stats.failed.Add(1)
	} else {
		s.stats.resolved.Add(1)
	}

	c.JSON(http.StatusOK, askResponse{
		Turn:      turn,
		LatencyMs: time.Since(start).Milliseconds(),
		Notices:   notices,
	})
}

func (s *Server) handleCancel(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"canceled": s.ctrl.Cancel()})
}

func (s *Server) handleReset(c *gin.Context) {
	if err := s.ctrl.Reset(); err != nil {
		c.JSON(http.StatusConflict, errorResponse{Error: session.NoticeBusy})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleFAQ(c *gin.Context) {
	faq := s.currentFAQ()
	if faq == nil {
		faq = []config.FAQItem{}
	}
	c.JSON(http.StatusOK, gin.H{"faq": faq})
}

// drainNotices empties the controller's notice queue. HTTP clients get the
// notices in the response body instead of as toasts.
func (s *Server) drainNotices() []string {
	var out []string
	for _, n := range s.ctrl.Notices() {
		out = append(out, n.Text)
	}
	return out
}

// ============================================================================
// SERVER LIFECYCLE
// ============================================================================

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      180 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.opts.Addr).Str("version", Version).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down")
	s.ctrl.Cancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
