// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/SerenePrince/PAD-Chatbot/internal/config"
	"github.com/SerenePrince/PAD-Chatbot/internal/model"
)

// =============================================================================
// TOAST TESTS
// =============================================================================

func TestNewToast_Durations(t *testing.T) {
	if d := NewToast("x", ToastKindError).Duration; d != ErrorToastDuration {
		t.Errorf("Expected error duration %v, got %v", ErrorToastDuration, d)
	}
	if d := NewToast("x", ToastKindWarning).Duration; d != WarningToastDuration {
		t.Errorf("Expected warning duration %v, got %v", WarningToastDuration, d)
	}
	if d := NewToast("x", ToastKindStatus).Duration; d != DefaultToastDuration {
		t.Errorf("Expected status duration %v, got %v", DefaultToastDuration, d)
	}
}

func TestToastIsExpired(t *testing.T) {
	toast := NewToast("old", ToastKindStatus)
	toast.Duration = 10 * time.Millisecond
	toast.CreatedAt = time.Now().Add(-20 * time.Millisecond)

	if !toast.IsExpired() {
		t.Error("Toast should be expired")
	}
	if toast.TimeRemaining() != 0 {
		t.Error("Expired toast should have no time remaining")
	}
	if NewToast("fresh", ToastKindStatus).IsExpired() {
		t.Error("Fresh toast should not be expired")
	}
}

func TestToastManager(t *testing.T) {
	m := NewToastManager()
	if m.HasToasts() {
		t.Error("New manager should have no toasts")
	}

	id := m.AddError("Failed to get a response.")
	m.AddWarning("Please enter a question")

	toasts := m.Toasts()
	if len(toasts) != 2 {
		t.Fatalf("Expected 2 toasts, got %d", len(toasts))
	}
	if toasts[0].Message != "Please enter a question" {
		t.Errorf("Expected newest first, got %q", toasts[0].Message)
	}

	m.Remove(id)
	if len(m.Toasts()) != 1 {
		t.Errorf("Expected 1 toast after remove, got %d", len(m.Toasts()))
	}
}

func TestToastManager_CollapsesRepeats(t *testing.T) {
	m := NewToastManager()
	m.AddWarning("Please enter a question")
	m.AddWarning("Please enter a question")

	if got := len(m.Toasts()); got != 1 {
		t.Errorf("Expected repeated toast to collapse, got %d", got)
	}
}

func TestToastManager_Limit(t *testing.T) {
	m := NewToastManager()
	for i := 0; i < 10; i++ {
		m.AddStatus(strings.Repeat("x", i+1))
	}
	if got := len(m.Toasts()); got != maxToasts {
		t.Errorf("Expected %d toasts, got %d", maxToasts, got)
	}
}

func TestToastManager_Tick(t *testing.T) {
	m := NewToastManager()
	expired := NewToast("old", ToastKindStatus)
	expired.CreatedAt = time.Now().Add(-time.Minute)
	m.Add(expired)
	m.AddStatus("fresh")

	if !m.Tick() {
		t.Error("Tick should report remaining toasts")
	}
	toasts := m.Toasts()
	if len(toasts) != 1 || toasts[0].Message != "fresh" {
		t.Errorf("Expected only the fresh toast, got %+v", toasts)
	}
}

func TestRenderToast(t *testing.T) {
	out := ansi.Strip(RenderToast(NewToast("Failed to get a response.", ToastKindError), 80))
	if !strings.Contains(out, "Failed to get a response.") {
		t.Errorf("Rendered toast missing message: %q", out)
	}
	if !strings.Contains(out, "[!!]") {
		t.Errorf("Rendered toast missing error indicator: %q", out)
	}
	if RenderToastStack(nil, 80) != "" {
		t.Error("Empty stack should render nothing")
	}
}

// =============================================================================
// TURN TESTS
// =============================================================================

func TestTurnView_Pending(t *testing.T) {
	turn := model.NewTurn("What is the PAD?")
	out := ansi.Strip(TurnView{Turn: turn, Width: 60, Spinner: "|"}.Render())

	for _, want := range []string{"User:", "What is the PAD?", "PAD-Bot:", "Retrieving answer"} {
		if !strings.Contains(out, want) {
			t.Errorf("Pending turn missing %q: %q", want, out)
		}
	}
}

func TestTurnView_Failed(t *testing.T) {
	turn := model.NewTurn("X")
	turn.Status = model.StatusFailed
	turn.Answer = "An error occurred while retrieving a response."
	turn.AnsweredAt = turn.AskedAt.Add(time.Second)

	out := ansi.Strip(TurnView{Turn: turn, Width: 60}.Render())
	if !strings.Contains(out, "An error occurred while retrieving a response.") {
		t.Errorf("Failed turn missing apology: %q", out)
	}
	if strings.Contains(out, "Retrieving answer") {
		t.Error("Failed turn should not show the pending indicator")
	}
}

func TestTurnView_ResolvedPlain(t *testing.T) {
	turn := model.NewTurn("Q")
	turn.Status = model.StatusResolved
	turn.Answer = "The PAD provides... (p. 3)"

	out := ansi.Strip(TurnView{Turn: turn, Width: 60}.Render())
	if !strings.Contains(out, "The PAD provides... (p. 3)") {
		t.Errorf("Resolved turn missing answer: %q", out)
	}
}

func TestMarkdownRenderer(t *testing.T) {
	r := NewMarkdownRenderer("dark")
	out := ansi.Strip(r.Render("**Gate 1** requires a business case (p. 7).", 60))
	if !strings.Contains(out, "Gate 1") || !strings.Contains(out, "(p. 7)") {
		t.Errorf("Markdown output lost content: %q", out)
	}
	if strings.Contains(out, "**") {
		t.Errorf("Markdown emphasis was not rendered: %q", out)
	}
}

// =============================================================================
// HEADER & FAQ TESTS
// =============================================================================

func TestHeader_Render(t *testing.T) {
	out := ansi.Strip(Header{Title: "PAD Chatbot", Description: "Ask about the PAD.", Deployment: "gpt-4o", Width: 60}.Render())
	for _, want := range []string{"PAD Chatbot", "Ask about the PAD.", "gpt-4o"} {
		if !strings.Contains(out, want) {
			t.Errorf("Header missing %q: %q", want, out)
		}
	}
}

func TestFAQ_Render(t *testing.T) {
	faq := FAQ{Items: config.DefaultFAQ(), Width: 80}

	out := ansi.Strip(faq.Render())
	if !strings.Contains(out, "What is the PAD document?") {
		t.Errorf("FAQ missing question: %q", out)
	}

	faq.Collapsed = true
	if strings.Contains(ansi.Strip(faq.Render()), "What is the PAD document?") {
		t.Error("Collapsed FAQ should hide questions")
	}

	if (FAQ{}).Render() != "" {
		t.Error("Empty FAQ should render nothing")
	}
}
