// Copyright 2026 The RepoScan Authors
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/corvidsec/reposcan/internal/scanner"
)

func init() {
	RegisterFormatter(NewTextFormatter())
}

// TextFormatter writes results as human-readable, optionally colored lines,
// one match per paragraph. Intended for terminal consumption; prefer json
// or sarif for machine consumption.
type TextFormatter struct {
	// NoColor disables ANSI color codes regardless of terminal detection.
	NoColor bool
}

// Compile-time interface check.
var _ Formatter = (*TextFormatter)(nil)

// NewTextFormatter returns a new TextFormatter with default settings.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Name returns the format name.
func (f *TextFormatter) Name() string { return "text" }

// Format writes each result as a short human-readable block to w.
func (f *TextFormatter) Format(results []scanner.ScanResult, w io.Writer) error {
	rule := color.New(color.FgRed, color.Bold)
	field := color.New(color.FgCyan)
	if f.NoColor {
		rule.DisableColor()
		field.DisableColor()
	}

	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "no matches found")
		return err
	}

	for _, r := range results {
		if _, err := fmt.Fprintf(w, "%s %s\n", rule.Sprint("MATCH"), r.RuleName); err != nil {
			return err
		}
		lines := []struct {
			label, value string
		}{
			{"file", r.FilePath},
			{"commit", r.CommitID},
			{"author", fmt.Sprintf("%s <%s>", r.AuthorName, r.AuthorEmail)},
			{"time", r.CommitTime},
			{"text", r.MatchText},
		}
		for _, l := range lines {
			if _, err := fmt.Fprintf(w, "  %s: %s\n", field.Sprint(l.label), l.value); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "%d match(es) found\n", len(results))
	return err
}
