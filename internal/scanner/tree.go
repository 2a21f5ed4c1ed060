// Copyright 2026 The RepoScan Authors
// SPDX-License-Identifier: MIT

package scanner

import (
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// introducedFiles returns the set of (path -> blob oid) pairs "introduced
// by" commit: for a root commit, every blob in its tree; otherwise, every
// path present in commit's tree with a different oid than in (or entirely
// absent from) every parent's tree — the intersection of per-parent diffs.
// This is the standard "not already in any parent" criterion that keeps
// merge commits from re-reporting content already seen on either side.
func introducedFiles(commit *object.Commit) (map[string]plumbing.Hash, error) {
	commitTree, err := commit.Tree()
	if err != nil {
		return nil, err
	}

	if commit.NumParents() == 0 {
		return rootTreeFiles(commitTree)
	}

	var perParent []map[string]plumbing.Hash
	for i := 0; i < commit.NumParents(); i++ {
		parent, err := commit.Parent(i)
		if err != nil {
			return nil, err
		}
		parentTree, err := parent.Tree()
		if err != nil {
			return nil, err
		}
		changes, err := parentTree.Diff(commitTree)
		if err != nil {
			return nil, err
		}
		perParent = append(perParent, changedInto(changes))
	}

	result := perParent[0]
	for _, other := range perParent[1:] {
		for path := range result {
			if _, ok := other[path]; !ok {
				delete(result, path)
			}
		}
	}
	return result, nil
}

// rootTreeFiles walks every blob reachable from tree (a root commit's
// entire tree is "introduced").
func rootTreeFiles(tree *object.Tree) (map[string]plumbing.Hash, error) {
	result := make(map[string]plumbing.Hash)
	walker := tree.Files()
	defer walker.Close()
	err := walker.ForEach(func(f *object.File) error {
		result[f.Name] = f.Blob.Hash
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// changedInto extracts the "to" side of a set of tree changes: the path and
// blob oid as they exist in the newer (commit-side) tree. Deletions (no
// "to" entry) are not introductions and are dropped.
func changedInto(changes object.Changes) map[string]plumbing.Hash {
	result := make(map[string]plumbing.Hash, len(changes))
	for _, ch := range changes {
		if ch.To.Name == "" {
			continue
		}
		result[ch.To.Name] = ch.To.TreeEntry.Hash
	}
	return result
}
