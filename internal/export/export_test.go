// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SerenePrince/PAD-Chatbot/internal/model"
)

func sampleTranscript() *Transcript {
	asked := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	return &Transcript{
		Title:      "PAD Chatbot",
		Deployment: "gpt-4o",
		ExportedAt: asked.Add(time.Hour),
		Turns: []model.Turn{
			{
				ID: "1", Question: "What is a PAD?", Answer: "A Project Approval Document.",
				Status: model.StatusResolved, AskedAt: asked, AnsweredAt: asked.Add(1500 * time.Millisecond),
			},
			{
				ID: "2", Question: "Who signs it?", Answer: "An error occurred while retrieving a response.",
				Status: model.StatusFailed, AskedAt: asked.Add(time.Minute),
				Err: errors.New("HTTP 401: invalid api key"),
			},
			{ID: "3", Question: "Still there?", Status: model.StatusPending, AskedAt: asked.Add(2 * time.Minute)},
		},
	}
}

func TestMarkdownExporter(t *testing.T) {
	out, err := NewMarkdownExporter().Export(sampleTranscript())
	require.NoError(t, err)
	md := string(out)

	assert.True(t, strings.HasPrefix(md, "---\ntitle: PAD Chatbot\n"))
	assert.Contains(t, md, "deployment: gpt-4o")
	assert.Contains(t, md, "turns: 3")
	assert.Contains(t, md, "### [1] User <sub>09:30:00</sub>")
	assert.Contains(t, md, "A Project Approval Document.")
	assert.Contains(t, md, "<sub>1.50s</sub>")
	assert.Contains(t, md, "> An error occurred while retrieving a response.")
	assert.Contains(t, md, "*(awaiting answer)*")
	assert.NotContains(t, md, "invalid api key")
}

func TestMarkdownExporter_NoTimestamps(t *testing.T) {
	e := &MarkdownExporter{IncludeTimestamps: false}
	out, err := e.Export(sampleTranscript())
	require.NoError(t, err)
	assert.Contains(t, string(out), "### [1] User\n")
}

func TestJSONExporter(t *testing.T) {
	out, err := NewJSONExporter().Export(sampleTranscript())
	require.NoError(t, err)
	assert.NotContains(t, string(out), "invalid api key")

	var decoded Transcript
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded.Turns, 3)
	assert.Equal(t, model.StatusFailed, decoded.Turns[1].Status)
	assert.Equal(t, "gpt-4o", decoded.Deployment)
}

func TestExport_EmptyTranscript(t *testing.T) {
	_, err := NewMarkdownExporter().Export(&Transcript{Title: "x"})
	assert.ErrorIs(t, err, ErrEmptyTranscript)

	_, err = NewJSONExporter().Export(nil)
	assert.ErrorIs(t, err, ErrEmptyTranscript)
}

func TestForFormat(t *testing.T) {
	for format, ext := range map[string]string{"": ".md", "md": ".md", "Markdown": ".md", "json": ".json"} {
		e, err := ForFormat(format)
		require.NoError(t, err, format)
		assert.Equal(t, ext, e.FileExtension(), format)
	}
	_, err := ForFormat("html")
	assert.Error(t, err)
}

func TestToFile(t *testing.T) {
	dir := t.TempDir()
	tr := sampleTranscript()

	path, err := ToFile(tr, NewMarkdownExporter(), dir, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pad_conversation_20250301_103000.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "What is a PAD?")

	explicit := filepath.Join(dir, "nested", "out.json")
	path, err = ToFile(tr, NewJSONExporter(), dir, explicit)
	require.NoError(t, err)
	assert.Equal(t, explicit, path)
	assert.FileExists(t, explicit)
}

func TestEscaping(t *testing.T) {
	assert.Equal(t, `\#1 \*bold\*`, escapeMarkdown("#1 *bold*"))
	assert.Equal(t, "plain", escapeYAML("plain"))
	assert.Equal(t, `"a: b"`, escapeYAML("a: b"))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "250ms", formatDuration(250*time.Millisecond))
	assert.Equal(t, "2.50s", formatDuration(2500*time.Millisecond))
	assert.Equal(t, "1m 5s", formatDuration(65*time.Second))
}
