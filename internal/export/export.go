// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/SerenePrince/PAD-Chatbot/internal/model"
	"github.com/SerenePrince/PAD-Chatbot/internal/util"
)

// ErrEmptyTranscript is returned when there is nothing to export.
var ErrEmptyTranscript = errors.New("conversation has no turns")

// =============================================================================
// TRANSCRIPT
// =============================================================================

// Transcript is the conversation as it is exported.
type Transcript struct {
	Title      string       `json:"title"`
	Deployment string       `json:"deployment,omitempty"`
	ExportedAt time.Time    `json:"exported_at"`
	Turns      []model.Turn `json:"turns"`
}

// NewTranscript captures turns for export.
func NewTranscript(title, deployment string, turns []model.Turn) *Transcript {
	return &Transcript{
		Title:      title,
		Deployment: deployment,
		ExportedAt: time.Now(),
		Turns:      turns,
	}
}

func (t *Transcript) validate() error {
	if t == nil || len(t.Turns) == 0 {
		return ErrEmptyTranscript
	}
	return nil
}

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter converts a transcript to one file format.
type Exporter interface {
	// Export converts a transcript to the target format and returns the content.
	Export(t *Transcript) ([]byte, error)

	// FileExtension returns the file extension, e.g. ".md".
	FileExtension() string

	// MimeType returns the MIME type for the exported format.
	MimeType() string
}

// ForFormat returns the exporter for a format name ("markdown", "md" or "json").
func ForFormat(format string) (Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "md", "markdown":
		return NewMarkdownExporter(), nil
	case "json":
		return NewJSONExporter(), nil
	default:
		return nil, fmt.Errorf("unknown export format %q (use markdown or json)", format)
	}
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ToFile exports t with exporter. When path is empty the file is named
// after the export time and written to dir. Returns the path written.
func ToFile(t *Transcript, exporter Exporter, dir, path string) (string, error) {
	content, err := exporter.Export(t)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	if path == "" {
		if dir == "" {
			dir = "."
		}
		name := fmt.Sprintf("pad_conversation_%s%s", t.ExportedAt.Format("20060102_150405"), exporter.FileExtension())
		path = filepath.Join(dir, name)
	}

	if err := util.AtomicWriteFile(path, content, 0600); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return path, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	ms := d.Milliseconds()
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	seconds := float64(ms) / 1000.0
	if seconds < 60 {
		return fmt.Sprintf("%.2fs", seconds)
	}
	minutes := int(seconds / 60)
	return fmt.Sprintf("%dm %ds", minutes, int(seconds)%60)
}

// formatTimestamp formats a timestamp for display.
func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// formatShortTimestamp formats a timestamp for inline display.
func formatShortTimestamp(t time.Time) string {
	return t.Format("15:04:05")
}
