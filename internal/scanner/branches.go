// Copyright 2026 The RepoScan Authors
// SPDX-License-Identifier: MIT

package scanner

import (
	"path"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/corvidsec/reposcan/internal/testable"
)

// selectBranchHeads enumerates every local branch reference in repo and
// returns the hashes of those whose short name (e.g. "master",
// "new_branch") matches the shell-style glob pattern.
func selectBranchHeads(repo testable.GitRepository, globPattern string) ([]plumbing.Hash, error) {
	refs, err := repo.References()
	if err != nil {
		return nil, err
	}
	defer refs.Close()

	var heads []plumbing.Hash
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		if !ref.Name().IsBranch() {
			return nil
		}
		matched, err := path.Match(globPattern, ref.Name().Short())
		if err != nil {
			return err
		}
		if matched {
			heads = append(heads, ref.Hash())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return heads, nil
}
