// Copyright 2026 The RepoScan Authors
// SPDX-License-Identifier: MIT

package scanner

import (
	"sync"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// commitTimeLayout is the stable, documented serialization for commit
// author time: UTC, second precision, no timezone suffix. Resolves
// spec's open question in favor of reproducibility across runs and hosts.
const commitTimeLayout = "2006-01-02T15:04:05"

// metadataCache caches commitMeta by commit hash so repeated jobs from the
// same commit (one per introduced file) don't re-derive the same fields.
// Metadata is created on first dispatch of any job from that commit and
// retained until the scan completes.
type metadataCache struct {
	mu    sync.Mutex
	cache map[plumbing.Hash]*commitMeta
}

func newMetadataCache() *metadataCache {
	return &metadataCache{cache: make(map[plumbing.Hash]*commitMeta)}
}

// get returns the cached metadata for commit, building and caching it on
// first use.
func (c *metadataCache) get(commit *object.Commit) *commitMeta {
	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok := c.cache[commit.Hash]; ok {
		return m
	}
	m := &commitMeta{
		id:      commit.Hash.String(),
		message: commit.Message,
		author:  commit.Author.Name,
		email:   commit.Author.Email,
		time:    commit.Author.When.UTC().Format(commitTimeLayout),
	}
	c.cache[commit.Hash] = m
	return m
}
