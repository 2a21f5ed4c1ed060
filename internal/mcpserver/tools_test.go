// Copyright 2026 The RepoScan Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contentText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	tc, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected *mcp.TextContent")
	return tc.Text
}

func buildSecretRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	dir, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)

	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=Test", "GIT_AUTHOR_EMAIL=test@example.com",
			"GIT_COMMITTER_NAME=Test", "GIT_COMMITTER_EMAIL=test@example.com")
		require.NoError(t, cmd.Run())
	}
	run("init", "-q")

	configBody := `
rule_packs:
  - name: secrets
    content_rules:
      - name: aws-key
        pattern: "AWS_KEY=(\\S+)"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".reposcan.yaml"), []byte(configBody), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.env"), []byte("AWS_KEY=AKIAEXAMPLE\n"), 0o600))

	run("add", ".")
	run("commit", "-q", "-m", "add config")

	return dir
}

func TestHandleScan_FindsMatch(t *testing.T) {
	dir := buildSecretRepo(t)

	result, _, err := handleScan(context.Background(), nil, ScanInput{Path: dir, Format: "json"})
	require.NoError(t, err)

	txt := contentText(t, result)
	assert.Contains(t, txt, "aws-key")
	assert.Contains(t, txt, "AKIAEXAMPLE")
}

func TestHandleScan_RejectsNonRepo(t *testing.T) {
	dir := t.TempDir()
	_, _, err := handleScan(context.Background(), nil, ScanInput{Path: dir})
	require.Error(t, err)
}

func TestHandleScan_RejectsUnknownFormat(t *testing.T) {
	dir := buildSecretRepo(t)
	_, _, err := handleScan(context.Background(), nil, ScanInput{Path: dir, Format: "xml"})
	require.Error(t, err)
}

func TestHandleCheckPattern_Matches(t *testing.T) {
	result, _, err := handleCheckPattern(context.Background(), nil, CheckPatternInput{
		Pattern: "key=(\\S+)",
		Content: "key=hunter2",
	})
	require.NoError(t, err)
	assert.Contains(t, contentText(t, result), "hunter2")
}

func TestHandleCheckPattern_InvalidPattern(t *testing.T) {
	_, _, err := handleCheckPattern(context.Background(), nil, CheckPatternInput{
		Pattern: "no-group-here",
		Content: "anything",
	})
	require.Error(t, err)
}

func TestHandleCheckPattern_NoMatches(t *testing.T) {
	result, _, err := handleCheckPattern(context.Background(), nil, CheckPatternInput{
		Pattern: "key=(\\S+)",
		Content: "nothing to see",
	})
	require.NoError(t, err)
	assert.Contains(t, contentText(t, result), "no matches")
}
