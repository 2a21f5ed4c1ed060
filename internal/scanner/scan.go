// Copyright 2026 The RepoScan Authors
// SPDX-License-Identifier: MIT

package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"golang.org/x/sync/errgroup"

	"github.com/corvidsec/reposcan/internal/metrics"
	"github.com/corvidsec/reposcan/internal/testable"
)

// job is one (path, blob oid) pair introduced by a commit, queued for a
// worker to fetch and scan.
type job struct {
	path string
	oid  plumbing.Hash
	meta *commitMeta
}

// Scan opens repoPath, selects branches matching branchGlob (default "*"
// when empty), walks their reachable commit history, and returns every
// rule match found in the files each commit introduces. Commits whose
// author time is strictly less than fromUnix are not reported (0 disables
// the filter), but their ancestors are still walked since branch tips are
// the traversal entry points. Result order is unspecified; compare as
// multisets.
func (s *RepositoryScanner) Scan(ctx context.Context, repoPath, branchGlob string, fromUnix int64) ([]ScanResult, error) {
	if branchGlob == "" {
		branchGlob = "*"
	}

	start := time.Now()
	results, err := s.scan(ctx, repoPath, branchGlob, fromUnix)
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	metrics.ScansTotal.WithLabelValues(outcome).Inc()
	metrics.ScanDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	for _, r := range results {
		metrics.MatchesFound.WithLabelValues(r.RuleName).Inc()
	}
	return results, err
}

func (s *RepositoryScanner) scan(ctx context.Context, repoPath, branchGlob string, fromUnix int64) ([]ScanResult, error) {
	producerRepo, err := s.opener.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRepositoryOpen, repoPath, err)
	}

	heads, err := selectBranchHeads(producerRepo, branchGlob)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRepositoryOpen, repoPath, err)
	}

	g, gctx := errgroup.WithContext(ctx)

	jobs := make(chan job, s.workers*4)
	meta := newMetadataCache()
	visitedCommits := newHashSet()
	visitedBlobs := newPairSet()

	var (
		resultsMu sync.Mutex
		results   []ScanResult
	)

	for i := 0; i < s.workers; i++ {
		g.Go(func() error {
			// Each worker opens its own handle: the underlying git object
			// database is not guaranteed thread-safe per handle.
			repo, err := s.opener.PlainOpen(repoPath)
			if err != nil {
				return fmt.Errorf("%w: %s: %v", ErrRepositoryOpen, repoPath, err)
			}
			return s.runWorker(gctx, repo, jobs, &resultsMu, &results)
		})
	}

	g.Go(func() error {
		defer close(jobs)
		for _, head := range heads {
			if err := s.enumerateBranch(gctx, producerRepo, head, fromUnix, visitedCommits, visitedBlobs, meta, jobs); err != nil {
				return err
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// enumerateBranch walks every commit reachable from head, skipping commits
// already visited via another branch, and enqueues a job for each
// file the commit introduces that passes the engine's path-skip sets and
// the blob-level dedup set.
func (s *RepositoryScanner) enumerateBranch(
	ctx context.Context,
	repo testable.GitRepository,
	head plumbing.Hash,
	fromUnix int64,
	visitedCommits *hashSet,
	visitedBlobs *pairSet,
	meta *metadataCache,
	jobs chan<- job,
) error {
	iter, err := repo.Log(&git.LogOptions{From: head, Order: git.LogOrderCommitterTime})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRepositoryOpen, err)
	}
	defer iter.Close()

	return iter.ForEach(func(commit *object.Commit) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !visitedCommits.addIfAbsent(commit.Hash) {
			return nil
		}
		metrics.CommitsWalked.WithLabelValues().Inc()
		if fromUnix != 0 && commit.Author.When.Unix() < fromUnix {
			return nil
		}

		files, err := introducedFiles(commit)
		if err != nil {
			slog.Warn("tree diff failed, skipping commit", "commit", commit.Hash.String(), "err", err)
			return nil
		}

		cm := meta.get(commit)
		for path, oid := range files {
			if !s.ShouldScanFilePath(path) {
				continue
			}
			if !visitedBlobs.addIfAbsent(commit.Hash, oid) {
				continue
			}
			select {
			case jobs <- job{path: path, oid: oid, meta: cm}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
}

// runWorker drains jobs, reading each blob's content via repo and invoking
// the rules engine. A single blob failing to load drops that job and logs
// a warning; it never aborts the scan.
func (s *RepositoryScanner) runWorker(
	ctx context.Context,
	repo testable.GitRepository,
	jobs <-chan job,
	resultsMu *sync.Mutex,
	results *[]ScanResult,
) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case j, ok := <-jobs:
			if !ok {
				return nil
			}
			s.processJob(repo, j, resultsMu, results)
		}
	}
}

func (s *RepositoryScanner) processJob(repo testable.GitRepository, j job, resultsMu *sync.Mutex, results *[]ScanResult) {
	metrics.BlobsScanned.WithLabelValues().Inc()

	content, err := readBlob(repo, j.oid)
	if err != nil {
		slog.Warn("blob read failed, skipping file", "commit", j.meta.id, "path", j.path, "oid", j.oid.String(), "err", err)
		return
	}
	if isBinary(content) {
		content = nil
	}

	matches := s.ScanFile(j.path, content)
	if len(matches) == 0 {
		return
	}

	out := make([]ScanResult, len(matches))
	for i, m := range matches {
		out[i] = ScanResult{
			RuleName:      m.RuleName,
			MatchText:     m.MatchText,
			FilePath:      j.path,
			FileOID:       j.oid.String(),
			CommitID:      j.meta.id,
			CommitMessage: j.meta.message,
			AuthorName:    j.meta.author,
			AuthorEmail:   j.meta.email,
			CommitTime:    j.meta.time,
		}
	}

	resultsMu.Lock()
	*results = append(*results, out...)
	resultsMu.Unlock()
}
