// Copyright 2026 The RepoScan Authors
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/corvidsec/reposcan/internal/scanner"
)

func init() {
	RegisterFormatter(NewJSONFormatter())
}

// JSONEnvelope wraps results with metadata for the JSON output format.
type JSONEnvelope struct {
	Results  []scanner.ScanResult `json:"results"`
	Metadata JSONMetadata         `json:"metadata"`
}

// JSONMetadata contains information about the scan that produced these results.
type JSONMetadata struct {
	TotalCount  int    `json:"total_count"`
	GeneratedAt string `json:"generated_at"`
}

// JSONFormatter writes results as a JSON object with metadata envelope.
type JSONFormatter struct {
	// Compact controls whether output is compact (single line) or pretty-printed.
	// If false, output is auto-detected: pretty for TTYs, compact otherwise.
	Compact bool

	// nowFunc is used for testing to override the current time.
	nowFunc func() time.Time
}

// Compile-time interface check.
var _ Formatter = (*JSONFormatter)(nil)

// NewJSONFormatter returns a new JSONFormatter with default settings.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format writes all results as a JSON document with a metadata envelope to w.
func (f *JSONFormatter) Format(results []scanner.ScanResult, w io.Writer) error {
	if results == nil {
		results = []scanner.ScanResult{}
	}

	now := time.Now()
	if f.nowFunc != nil {
		now = f.nowFunc()
	}

	envelope := JSONEnvelope{
		Results: results,
		Metadata: JSONMetadata{
			TotalCount:  len(results),
			GeneratedAt: now.UTC().Format("2006-01-02T15:04:05Z"),
		},
	}

	compact := f.shouldCompact(w)

	var data []byte
	var err error
	if compact {
		data, err = json.Marshal(envelope)
	} else {
		data, err = json.MarshalIndent(envelope, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		return fmt.Errorf("write json trailing newline: %w", err)
	}

	return nil
}

// shouldCompact determines whether to use compact mode.
// If Compact is explicitly set, use that value. Otherwise, auto-detect:
// pretty-print for TTYs, compact for pipes.
func (f *JSONFormatter) shouldCompact(w io.Writer) bool {
	if f.Compact {
		return true
	}

	if file, ok := w.(*os.File); ok {
		fi, err := file.Stat()
		if err != nil {
			return false // default to pretty on error
		}
		if fi.Mode()&os.ModeCharDevice != 0 {
			return false // TTY -> pretty
		}
		return true // pipe/file -> compact
	}

	return false // non-file writers (e.g. bytes.Buffer in tests) default to pretty
}
