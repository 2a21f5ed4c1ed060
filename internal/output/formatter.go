// Copyright 2026 The RepoScan Authors
// SPDX-License-Identifier: MIT

// Package output defines the Formatter interface for writing scan results
// in various formats.
package output

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/corvidsec/reposcan/internal/scanner"
)

// Formatter writes a slice of scan results to the given writer in a
// specific format.
type Formatter interface {
	// Name returns the format name (e.g., "text", "json", "sarif").
	Name() string

	// Format writes the results to w.
	Format(results []scanner.ScanResult, w io.Writer) error
}

var (
	fmtMu       sync.RWMutex
	fmtRegistry = make(map[string]Formatter)
)

// RegisterFormatter adds a formatter to the global registry.
func RegisterFormatter(f Formatter) {
	fmtMu.Lock()
	defer fmtMu.Unlock()
	fmtRegistry[f.Name()] = f
}

// GetFormatter returns the formatter with the given name, or an error if not found.
func GetFormatter(name string) (Formatter, error) {
	fmtMu.RLock()
	defer fmtMu.RUnlock()
	f, ok := fmtRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown format: %q (available: %s)", name, formatNames())
	}
	return f, nil
}

// resetFmtForTesting clears the formatter registry. Only for use in tests.
func resetFmtForTesting() { //nolint:unused // exercised by tests in this package
	fmtMu.Lock()
	defer fmtMu.Unlock()
	fmtRegistry = make(map[string]Formatter)
}

// formatNames returns a comma-separated sorted list of registered format names.
func formatNames() string {
	names := make([]string, 0, len(fmtRegistry))
	for name := range fmtRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	result := ""
	for i, n := range names {
		if i > 0 {
			result += ", "
		}
		result += n
	}
	return result
}
