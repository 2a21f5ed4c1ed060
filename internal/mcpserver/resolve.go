// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes reposcan's scan and rule-check operations as tools over
// stdio transport.
package mcpserver

import (
	"fmt"
	"os"
	"path/filepath"
)

// ResolvePath resolves a repository path to an absolute, symlink-free
// directory path containing a .git directory. It returns an error if the
// path does not exist, is not a directory, or is not a Git repository.
func ResolvePath(path string) (string, error) {
	if path == "" {
		path = "."
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("cannot resolve path %q: %w", path, err)
	}

	absPath, err = filepath.EvalSymlinks(absPath)
	if err != nil {
		return "", fmt.Errorf("cannot resolve path %q: %w", path, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", fmt.Errorf("cannot resolve path %q: path does not exist", path)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%q is not a directory", path)
	}

	if _, err := os.Stat(filepath.Join(absPath, ".git")); err != nil {
		return "", fmt.Errorf("%q is not a Git repository (no .git directory)", path)
	}

	return absPath, nil
}
