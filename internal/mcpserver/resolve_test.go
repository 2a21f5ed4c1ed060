// Copyright 2026 The RepoScan Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initGitRepo(t *testing.T, dir string) {
	t.Helper()
	cmd := exec.Command("git", "init", "-q", dir)
	require.NoError(t, cmd.Run())
}

func TestResolvePath_ValidRepo(t *testing.T) {
	dir := t.TempDir()
	dir, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	initGitRepo(t, dir)

	got, err := ResolvePath(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}

func TestResolvePath_EmptyDefaultsToCwd(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	// An empty path resolves exactly as the working directory does, whether
	// or not the working directory is a Git repository.
	gotEmpty, errEmpty := ResolvePath("")
	gotWd, errWd := ResolvePath(wd)
	assert.Equal(t, gotWd, gotEmpty)
	assert.Equal(t, errWd == nil, errEmpty == nil)
}

func TestResolvePath_NonexistentPath(t *testing.T) {
	_, err := ResolvePath("/nonexistent/path/that/does/not/exist")
	require.Error(t, err)
}

func TestResolvePath_NotADirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("hello"), 0o600))

	_, err := ResolvePath(file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestResolvePath_RequiresGitDirectory(t *testing.T) {
	dir := t.TempDir()
	_, err := ResolvePath(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a Git repository")
}

func TestResolvePath_SecuritySymlinkToFile_Rejected(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "target.txt")
	require.NoError(t, os.WriteFile(filePath, []byte("data"), 0o600))

	linkPath := filepath.Join(dir, "link-to-file")
	require.NoError(t, os.Symlink(filePath, linkPath))

	_, err := ResolvePath(linkPath)
	require.Error(t, err)
}

func TestResolvePath_SecurityNullBytesInPath(t *testing.T) {
	_, err := ResolvePath("some\x00path")
	require.Error(t, err, "paths with null bytes must be rejected")
}
