// Copyright 2026 The RepoScan Authors
// SPDX-License-Identifier: MIT

// Package scanner implements the repository scanner: it opens a local Git
// repository, selects branches by glob, walks their reachable commit
// history, finds the files each commit introduces relative to its
// parent(s), and dispatches those files through a rules engine via a pool
// of worker goroutines. It has no persistent state between scans; all
// per-scan state is created and discarded within one Scan call.
package scanner

import (
	"runtime"

	"github.com/corvidsec/reposcan/internal/rules"
	"github.com/corvidsec/reposcan/internal/testable"
)

// RepositoryScanner orchestrates history traversal. It embeds a
// *rules.RulesEngine so callers configure rules directly on the scanner
// (RepositoryScanner.AddContentRule, etc. are promoted methods).
type RepositoryScanner struct {
	*rules.RulesEngine

	workers int
	opener  testable.GitOpener
}

// New returns a RepositoryScanner with an empty rules engine and a worker
// pool of the given size. workers <= 0 defaults to the host CPU count.
func New(workers int) *RepositoryScanner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &RepositoryScanner{
		RulesEngine: rules.New(),
		workers:     workers,
		opener:      testable.DefaultGitOpener,
	}
}

// WithOpener overrides the GitOpener used to open repositories, for tests
// that need to inject a mock repository instead of touching the filesystem.
func (s *RepositoryScanner) WithOpener(opener testable.GitOpener) *RepositoryScanner {
	s.opener = opener
	return s
}
