// Copyright 2026 The RepoScan Authors
// SPDX-License-Identifier: MIT

package scanner

import (
	"sync"

	"github.com/go-git/go-git/v5/plumbing"
)

// hashSet is a mutex-protected set of object hashes, used as the
// shared visited-commit set: each commit id is enumerated at most once
// across all branches regardless of goroutine interleaving.
type hashSet struct {
	mu   sync.Mutex
	seen map[plumbing.Hash]struct{}
}

func newHashSet() *hashSet {
	return &hashSet{seen: make(map[plumbing.Hash]struct{})}
}

// addIfAbsent reports whether h was not already present, adding it as a
// side effect. Safe for concurrent use.
func (s *hashSet) addIfAbsent(h plumbing.Hash) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[h]; ok {
		return false
	}
	s.seen[h] = struct{}{}
	return true
}

// pairKey identifies a blob scanned under a specific commit.
type pairKey struct {
	commit plumbing.Hash
	blob   plumbing.Hash
}

// pairSet is the shared visited-blob set keyed by (commit_id, file_oid): a
// blob seen under a given commit is scanned once, but the same blob
// appearing under a different commit is a distinct entry and is scanned
// again since the commit metadata differs.
type pairSet struct {
	mu   sync.Mutex
	seen map[pairKey]struct{}
}

func newPairSet() *pairSet {
	return &pairSet{seen: make(map[pairKey]struct{})}
}

// addIfAbsent reports whether (commit, blob) was not already present,
// adding it as a side effect. Safe for concurrent use.
func (s *pairSet) addIfAbsent(commit, blob plumbing.Hash) bool {
	key := pairKey{commit: commit, blob: blob}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[key]; ok {
		return false
	}
	s.seen[key] = struct{}{}
	return true
}
