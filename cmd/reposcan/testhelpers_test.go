// Copyright 2026 The RepoScan Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/corvidsec/reposcan/internal/testable"
)

// newTestCmd returns rootCmd with its I/O redirected to fresh buffers.
// scanCmd, rulesCmd, serveCmd, and triageCmd are all wired to it via init().
func newTestCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd, stdout, stderr
}

// withMockFS swaps cmdFS with the given mock and restores it on cleanup.
func withMockFS(t *testing.T, mock *testable.MockFileSystem) {
	t.Helper()
	orig := cmdFS
	cmdFS = mock
	t.Cleanup(func() { cmdFS = orig })
}

func resetScanFlags() {
	scanBranches = "*"
	scanSince = ""
	scanWorkers = 0
	scanFormat = "text"
	scanOutput = ""
}

func runGitCmd(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=Test", "GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=Test", "GIT_COMMITTER_EMAIL=test@example.com")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
}

// buildRepoWithSecret creates a throwaway git repository containing a
// .reposcan.yaml rule pack and a committed file tripping it. Returns the
// repository's (symlink-resolved) absolute path.
func buildRepoWithSecret(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	dir, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)

	runGitCmd(t, dir, "init", "-q")

	configBody := `
rule_packs:
  - name: secrets
    content_rules:
      - name: aws-key
        pattern: "AWS_KEY=(\\S+)"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".reposcan.yaml"), []byte(configBody), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.env"), []byte("AWS_KEY=AKIAEXAMPLE\n"), 0o600))

	runGitCmd(t, dir, "add", ".")
	runGitCmd(t, dir, "commit", "-q", "-m", "add config")

	return dir
}

// buildCleanRepo creates a throwaway git repository with no rule matches.
func buildCleanRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	dir, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)

	runGitCmd(t, dir, "init", "-q")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("hello\n"), 0o600))
	runGitCmd(t, dir, "add", ".")
	runGitCmd(t, dir, "commit", "-q", "-m", "initial")

	return dir
}
