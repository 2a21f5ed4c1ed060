// Copyright 2026 The RepoScan Authors
// SPDX-License-Identifier: MIT

package scanner

import "errors"

// ErrRepositoryOpen is returned when a repository path does not exist, is
// not a Git repository, or is corrupted. Raised by Scan and GetFileContent;
// aborts the call.
var ErrRepositoryOpen = errors.New("repository open error")

// ErrBlobNotFound is returned by GetFileContent for an empty oid, a
// malformed oid, or a well-formed oid absent from the object database. All
// three cases surface as this single class, not three different errors.
var ErrBlobNotFound = errors.New("blob not found")
