// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile_Basic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "history")
	data := []byte("What is the PAD?\n")

	if err := AtomicWriteFile(path, data, 0600); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != string(data) {
		t.Errorf("Content mismatch: got %q, want %q", content, data)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected 0600, got %o", info.Mode().Perm())
	}
}

func TestAtomicWriteFile_OverwritesAndCleansUp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history")

	if err := AtomicWriteFile(path, []byte("initial"), 0600); err != nil {
		t.Fatalf("First write failed: %v", err)
	}
	if err := AtomicWriteFile(path, []byte("updated"), 0600); err != nil {
		t.Fatalf("Second write failed: %v", err)
	}

	content, _ := os.ReadFile(path)
	if string(content) != "updated" {
		t.Errorf("Expected 'updated', got %q", content)
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("Temp file left behind: %s", e.Name())
		}
	}
}

// =============================================================================
// STRING TESTS
// =============================================================================

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "PAD", 10, "PAD"},
		{"exact", "PAD-Bot", 7, "PAD-Bot"},
		{"cut", "Project Approval Directive", 10, "Project..."},
		{"tiny", "Project", 2, "Pr"},
		{"zero", "Project", 0, ""},
		{"wide chars", "項目承認指令", 7, "項目..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.in, tt.width)
			if got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
			if Width(got) > tt.width {
				t.Errorf("Result %q is %d columns wide, limit %d", got, Width(got), tt.width)
			}
		})
	}
}

func TestFirstLine(t *testing.T) {
	if got := FirstLine("one line", 40); got != "one line" {
		t.Errorf("FirstLine = %q", got)
	}
	if got := FirstLine("first\nsecond", 40); got != "first ..." {
		t.Errorf("FirstLine = %q", got)
	}
	if got := FirstLine("first\n  \n", 40); got != "first" {
		t.Errorf("FirstLine = %q", got)
	}
}

func TestWrap(t *testing.T) {
	got := Wrap("The PAD provides the direction necessary", 15)
	for _, line := range strings.Split(got, "\n") {
		if Width(line) > 15 {
			t.Errorf("Line %q exceeds width", line)
		}
	}
	if strings.Join(strings.Fields(got), " ") != "The PAD provides the direction necessary" {
		t.Errorf("Wrap lost words: %q", got)
	}

	if got := Wrap("a\nb", 10); got != "a\nb" {
		t.Errorf("Wrap should keep newlines, got %q", got)
	}
	if got := Wrap("unbreakable", 4); got != "unbreakable" {
		t.Errorf("Long word should stay whole, got %q", got)
	}
}
