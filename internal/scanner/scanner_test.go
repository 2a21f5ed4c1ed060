// Copyright 2026 The RepoScan Authors
// SPDX-License-Identifier: MIT

package scanner

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gitRepo builds a throwaway repository at dir using real git commands,
// mirroring the commit graph from the original implementation's test
// fixture: C0 (adds file.txt, file.py, test_file.cpp, file.other) -> C1
// (edits file.txt) on master; new_branch forks at C1 with C2 (edits
// file.txt again); master merges C2 back as C3; non_merged_branch forks at
// C3 with C4 (edits file.txt once more, never merged).
type gitRepo struct {
	t    *testing.T
	dir  string
	time time.Time
}

func newGitRepo(t *testing.T) *gitRepo {
	t.Helper()
	dir := t.TempDir()
	r := &gitRepo{t: t, dir: dir, time: time.Date(2003, 1, 1, 0, 0, 0, 0, time.UTC)}
	r.run("init", "-b", "master")
	r.run("config", "user.name", "Test Author")
	r.run("config", "user.email", "author@example.com")
	return r
}

func (r *gitRepo) run(args ...string) {
	r.t.Helper()
	cmd := exec.Command("git", args...) //nolint:gosec // test helper
	cmd.Dir = r.dir
	stamp := r.time.Format(time.RFC3339)
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_DATE="+stamp, "GIT_COMMITTER_DATE="+stamp,
		"GIT_AUTHOR_NAME=Test Author", "GIT_AUTHOR_EMAIL=author@example.com",
		"GIT_COMMITTER_NAME=Test Author", "GIT_COMMITTER_EMAIL=author@example.com",
	)
	out, err := cmd.CombinedOutput()
	require.NoError(r.t, err, "git %v failed:\n%s", args, out)
}

func (r *gitRepo) writeFile(name, content string) {
	r.t.Helper()
	require.NoError(r.t, os.WriteFile(filepath.Join(r.dir, name), []byte(content), 0o644))
}

func (r *gitRepo) commit(message string) {
	r.t.Helper()
	r.time = r.time.Add(24 * time.Hour)
	r.run("add", "-A")
	r.run("commit", "-m", message)
}

func buildFixtureRepo(t *testing.T) string {
	t.Helper()
	r := newGitRepo(t)

	r.writeFile("file.txt", "content")
	r.writeFile("file.py", "content")
	r.writeFile("test_file.cpp", "content")
	r.writeFile("file.other", "nothing special")
	r.commit("C0")

	r.writeFile("file.txt", "new content")
	r.commit("C1")

	r.run("checkout", "-b", "new_branch")
	r.writeFile("file.txt", "new content from new branch")
	r.commit("C2")

	r.run("checkout", "master")
	r.run("merge", "--no-ff", "-m", "C3", "new_branch")

	r.run("checkout", "-b", "non_merged_branch")
	r.writeFile("file.txt", "new content from non_merged_branch")
	r.commit("C4")

	r.run("checkout", "master")
	return r.dir
}

func newFixtureScanner(t *testing.T) *RepositoryScanner {
	t.Helper()
	s := New(2)
	require.NoError(t, s.AddContentRule("r1", "(content)", nil, nil))
	require.NoError(t, s.AddFileExtensionToSkip("py"))
	require.NoError(t, s.AddFilePathToSkip("test_"))
	return s
}

func TestScan_MasterOnly(t *testing.T) {
	repoPath := buildFixtureRepo(t)
	s := newFixtureScanner(t)

	results, err := s.Scan(context.Background(), repoPath, "*master", 0)
	require.NoError(t, err)
	assert.Len(t, results, 3)
	for _, res := range results {
		assert.Equal(t, "file.txt", res.FilePath)
		assert.Equal(t, "r1", res.RuleName)
	}
}

func TestScan_AllBranches(t *testing.T) {
	repoPath := buildFixtureRepo(t)
	s := newFixtureScanner(t)

	results, err := s.Scan(context.Background(), repoPath, "*", 0)
	require.NoError(t, err)
	assert.Len(t, results, 4)
}

func TestScan_FromTimestamp(t *testing.T) {
	repoPath := buildFixtureRepo(t)

	// C0..C4 land on 2003-01-02 through 2003-01-05 respectively (C3, the
	// merge commit, shares C2's timestamp); C4 is the only commit on
	// 2003-01-05.
	cutoff := time.Date(2003, 1, 5, 0, 0, 0, 0, time.UTC)

	s := newFixtureScanner(t)
	results, err := s.Scan(context.Background(), repoPath, "*", cutoff.Unix())
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "file.txt", results[0].FilePath)

	s2 := newFixtureScanner(t)
	results2, err := s2.Scan(context.Background(), repoPath, "*", cutoff.Add(time.Second).Unix())
	require.NoError(t, err)
	assert.Empty(t, results2)
}

func TestScan_IsIdempotent(t *testing.T) {
	repoPath := buildFixtureRepo(t)

	s1 := newFixtureScanner(t)
	first, err := s1.Scan(context.Background(), repoPath, "*", 0)
	require.NoError(t, err)

	s2 := newFixtureScanner(t)
	second, err := s2.Scan(context.Background(), repoPath, "*", 0)
	require.NoError(t, err)

	assert.ElementsMatch(t, first, second)
}

func TestScan_NonexistentRepository(t *testing.T) {
	s := New(1)
	_, err := s.Scan(context.Background(), filepath.Join(t.TempDir(), "does-not-exist"), "*", 0)
	require.Error(t, err)
}

func TestGetFileContent_Exceptions(t *testing.T) {
	repoPath := buildFixtureRepo(t)
	s := New(1)

	_, err := s.GetFileContent(repoPath, "")
	require.ErrorIs(t, err, ErrBlobNotFound)

	_, err = s.GetFileContent(repoPath, "aaaaaaaaa")
	require.ErrorIs(t, err, ErrBlobNotFound)

	_, err = s.GetFileContent(repoPath, "0407a18f7c6802c7e7ddc5c9e8af4a34584383fa")
	require.ErrorIs(t, err, ErrBlobNotFound)
}
