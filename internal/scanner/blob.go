// Copyright 2026 The RepoScan Authors
// SPDX-License-Identifier: MIT

package scanner

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/corvidsec/reposcan/internal/testable"
)

// binaryProbeSize is how much of a blob's head is inspected for a NUL byte
// when deciding whether to run content rules against it.
const binaryProbeSize = 8 * 1024

// isBinary reports whether content contains a NUL byte within its first
// binaryProbeSize bytes, the heuristic spec uses to mark a blob as binary
// for content-scanning purposes. File-path rules still run on binary files;
// only content matching is skipped.
func isBinary(content []byte) bool {
	probe := content
	if len(probe) > binaryProbeSize {
		probe = probe[:binaryProbeSize]
	}
	return bytes.IndexByte(probe, 0) >= 0
}

// readBlob reads the full contents of the blob identified by oid from repo.
func readBlob(repo testable.GitRepository, oid plumbing.Hash) ([]byte, error) {
	blob, err := repo.BlobObject(oid)
	if err != nil {
		return nil, err
	}
	r, err := blob.Reader()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// isWellFormedOID reports whether s is exactly 40 hex characters.
func isWellFormedOID(s string) bool {
	if len(s) != 40 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// GetFileContent opens repoPath, looks up the blob identified by fileOID,
// and returns its raw bytes. An empty oid, a malformed (non-40-hex) oid,
// and a well-formed-but-absent oid all surface as ErrBlobNotFound.
func (s *RepositoryScanner) GetFileContent(repoPath, fileOID string) ([]byte, error) {
	if !isWellFormedOID(fileOID) {
		return nil, fmt.Errorf("%w: %q", ErrBlobNotFound, fileOID)
	}

	repo, err := s.opener.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRepositoryOpen, repoPath, err)
	}

	content, err := readBlob(repo, plumbing.NewHash(fileOID))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBlobNotFound, fileOID, err)
	}
	return content, nil
}
