// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"

	"github.com/SerenePrince/PAD-Chatbot/internal/model"
)

// DefaultWindow is the number of prior turns sent with each question.
const DefaultWindow = 10

// Adapter answers a question given prior turns. *azure.Client satisfies it.
type Adapter interface {
	Ask(ctx context.Context, question string, history []model.Turn) (string, error)
}

// =============================================================================
// STATE
// =============================================================================

// State is the controller's request state.
type State int

const (
	// StateIdle accepts new questions.
	StateIdle State = iota
	// StateAwaitingResponse has one question outstanding and rejects others.
	StateAwaitingResponse
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingResponse:
		return "awaiting_response"
	default:
		return "unknown"
	}
}

// NoticeKind classifies a transient notice.
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeWarning
	NoticeError
)

// Notice is a transient message for the user, e.g. a toast.
type Notice struct {
	Kind NoticeKind
	Text string
}

// =============================================================================
// REQUEST CYCLE TYPES
// =============================================================================

// Pending is the handle returned by Submit.
type Pending struct {
	Turn model.Turn
	// Window holds the prior settled turns, oldest first, captured at submit.
	Window []model.Turn

	reqCtx context.Context
}

// Outcome is the result of Fetch, applied by Resolve.
type Outcome struct {
	TurnID  string
	Answer  string
	Err     error
	Elapsed time.Duration
}

// Failed reports whether the request failed.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Snapshot is a consistent view of the session for rendering.
type Snapshot struct {
	Turns    []model.Turn
	State    State
	InFlight bool
	Draft    string
}

// Options configures a Controller.
type Options struct {
	// Window is the number of prior turns sent upstream. 0 means DefaultWindow.
	Window int
	// Timeout bounds each remote call. 0 disables the timeout.
	Timeout time.Duration
	Logger  zerolog.Logger
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller sequences questions so that at most one request is outstanding.
// It is safe for concurrent use.
type Controller struct {
	adapter Adapter
	window  int
	timeout time.Duration
	logger  zerolog.Logger

	mu        sync.Mutex
	history   *model.History
	state     State
	pendingID string
	draft     string
	notices   []Notice

	cancels cancelManager
}

// NewController creates a controller with an empty history.
func NewController(adapter Adapter, opts Options) *Controller {
	window := opts.Window
	if window == 0 {
		window = DefaultWindow
	}
	return &Controller{
		adapter: adapter,
		window:  window,
		timeout: opts.Timeout,
		logger:  opts.Logger.With().Str("component", "session").Logger(),
		history: model.NewHistory(),
		state:   StateIdle,
	}
}

// Submit validates question and, if accepted, appends a pending turn and
// clears the draft. Rejections return a *ValidationError and change nothing
// except queuing a notice.
func (c *Controller) Submit(question string) (Pending, error) {
	question = normalize(question)

	c.mu.Lock()
	defer c.mu.Unlock()

	if question == "" {
		return Pending{}, c.reject(ErrEmptyQuestion, NoticeEmptyQuestion)
	}
	if c.state == StateAwaitingResponse {
		return Pending{}, c.reject(ErrBusy, NoticeBusy)
	}

	window := c.history.Windowed(c.window)
	turn := c.history.Append(question)

	reqCtx, cancel := context.WithCancel(context.Background())
	c.cancels.set(turn.ID, cancel)

	c.state = StateAwaitingResponse
	c.pendingID = turn.ID
	c.draft = ""

	c.logger.Debug().
		Str("turn", turn.ID).
		Int("question_len", len(question)).
		Int("window", len(window)).
		Msg("question submitted")

	return Pending{Turn: turn, Window: window, reqCtx: reqCtx}, nil
}

func (c *Controller) reject(reason error, notice string) error {
	c.notices = append(c.notices, Notice{Kind: NoticeWarning, Text: notice})
	return &ValidationError{Reason: reason, Notice: notice}
}

// Fetch calls the adapter for p. It honors ctx, the configured timeout and
// Cancel. It never touches controller state.
func (c *Controller) Fetch(ctx context.Context, p Pending) Outcome {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if p.reqCtx != nil {
		stop := context.AfterFunc(p.reqCtx, cancel)
		defer stop()
	}
	if c.timeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, c.timeout)
		defer cancelTimeout()
	}

	start := time.Now()
	answer, err := c.adapter.Ask(ctx, p.Turn.Question, p.Window)
	if err == nil && strings.TrimSpace(answer) == "" {
		err = ErrEmptyAnswer
	}
	return Outcome{
		TurnID:  p.Turn.ID,
		Answer:  answer,
		Err:     err,
		Elapsed: time.Since(start),
	}
}

// Resolve applies o to its pending turn and returns the controller to Idle.
// A failed outcome becomes a Failed turn with FailedAnswer; the raw error
// is logged and kept on the turn but never used as the answer.
func (c *Controller) Resolve(o Outcome) (model.Turn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateAwaitingResponse || o.TurnID != c.pendingID {
		return model.Turn{}, ErrStaleOutcome
	}

	var (
		turn model.Turn
		err  error
	)
	if o.Failed() {
		turn, err = c.history.Fail(o.TurnID, FailedAnswer, o.Err)
		if errors.Is(o.Err, context.Canceled) {
			c.notices = append(c.notices, Notice{Kind: NoticeInfo, Text: NoticeCanceled})
		} else {
			c.notices = append(c.notices, Notice{Kind: NoticeError, Text: NoticeRemoteFailure})
		}
		c.logger.Error().
			Err(o.Err).
			Str("turn", o.TurnID).
			Dur("elapsed", o.Elapsed).
			Msg("request failed")
	} else {
		turn, err = c.history.Resolve(o.TurnID, o.Answer)
		c.logger.Info().
			Str("turn", o.TurnID).
			Int("answer_len", len(o.Answer)).
			Dur("elapsed", o.Elapsed).
			Msg("request resolved")
	}

	c.cancels.clear(o.TurnID)
	c.state = StateIdle
	c.pendingID = ""
	return turn, err
}

// Ask submits question, waits for the answer and resolves it. The returned
// error is non-nil only when the submission was rejected or the outcome
// could not be applied; a failed request yields a Failed turn and nil error.
func (c *Controller) Ask(ctx context.Context, question string) (model.Turn, error) {
	pending, err := c.Submit(question)
	if err != nil {
		return model.Turn{}, err
	}
	return c.Resolve(c.Fetch(ctx, pending))
}

// Cancel aborts the outstanding request, if any. The turn is resolved as
// Failed once the adapter returns. It reports whether a request was canceled.
func (c *Controller) Cancel() bool {
	return c.cancels.cancel()
}

// Reset clears the history. It is rejected while a request is outstanding.
func (c *Controller) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateAwaitingResponse {
		return &ValidationError{Reason: ErrBusy, Notice: NoticeBusy}
	}
	c.history.Clear()
	c.draft = ""
	return nil
}

// =============================================================================
// ACCESSORS
// =============================================================================

// State returns the current request state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// InFlight reports whether a request is outstanding. Input should be
// disabled while it is true.
func (c *Controller) InFlight() bool {
	return c.State() == StateAwaitingResponse
}

// Turns returns a copy of every turn, oldest first.
func (c *Controller) Turns() []model.Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.history.Turns()
}

// Snapshot returns the turns, state and draft in one consistent read.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Turns:    c.history.Turns(),
		State:    c.state,
		InFlight: c.state == StateAwaitingResponse,
		Draft:    c.draft,
	}
}

// SetDraft stores the unsubmitted input text.
func (c *Controller) SetDraft(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = text
}

// Draft returns the unsubmitted input text.
func (c *Controller) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Notices returns and clears the queued notices.
func (c *Controller) Notices() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.notices
	c.notices = nil
	return out
}

// Window returns the configured history window.
func (c *Controller) Window() int {
	return c.window
}

// normalize trims surrounding whitespace and applies NFC so visually equal
// questions are sent identically.
func normalize(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}
