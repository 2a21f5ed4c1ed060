// Copyright 2026 The RepoScan Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/corvidsec/reposcan/internal/config"
	"github.com/corvidsec/reposcan/internal/output"
	"github.com/corvidsec/reposcan/internal/scanner"
)

// Scan-specific flag values.
var (
	scanBranches string
	scanSince    string
	scanWorkers  int
	scanFormat   string
	scanOutput   string
)

// scanCmd is the subcommand for scanning a repository's commit history.
var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Scan a repository's commit history for leaked secrets",
	Long: `Scan walks every reachable commit on the selected branches of a local Git
repository, examines every file each commit introduces, and reports any
file whose path or content trips a rule loaded from .reposcan.yaml or
.reposcan.toml in the repository root.

Exit code 2 means at least one match was found; use this in CI to fail a
build on a newly introduced secret.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanBranches, "branches", "*", "shell glob selecting which branches to walk")
	scanCmd.Flags().StringVar(&scanSince, "since", "", "only report commits at or after this time (RFC 3339 timestamp or duration, e.g. 720h)")
	scanCmd.Flags().IntVar(&scanWorkers, "workers", 0, "number of concurrent blob-scanning workers (0 = config file's workers, else runtime.NumCPU)")
	scanCmd.Flags().StringVarP(&scanFormat, "format", "f", "text", "output format (text, json, sarif)")
	scanCmd.Flags().StringVarP(&scanOutput, "output", "o", "", "output file path (default: stdout)")
}

func runScan(cmd *cobra.Command, args []string) error {
	repoPath := "."
	if len(args) > 0 {
		repoPath = args[0]
	}
	absPath, err := resolveScanPath(repoPath)
	if err != nil {
		return err
	}

	fileCfg, err := config.Load(absPath)
	if err != nil {
		return exitError(ExitInvalidArgs, "reposcan: failed to load config (%v)", err)
	}
	if err := config.Validate(fileCfg); err != nil {
		return exitError(ExitInvalidArgs, "reposcan: %v", err)
	}

	branchGlob := scanBranches
	if !cmd.Flags().Changed("branches") && fileCfg.Branches != "" {
		branchGlob = fileCfg.Branches
	}

	since := scanSince
	if !cmd.Flags().Changed("since") && fileCfg.Since != "" {
		since = fileCfg.Since
	}
	fromUnix, err := config.ParseSince(since)
	if err != nil {
		return exitError(ExitInvalidArgs, "reposcan: %v", err)
	}

	workers := scanWorkers
	if workers == 0 {
		workers = fileCfg.Workers
	}

	formatter, err := output.GetFormatter(scanFormat)
	if err != nil {
		return exitError(ExitInvalidArgs, "reposcan: %v", err)
	}
	if tf, ok := formatter.(*output.TextFormatter); ok {
		tf.NoColor = noColor
	}

	s := scanner.New(workers)
	if err := fileCfg.Apply(s.RulesEngine); err != nil {
		return exitError(ExitInvalidArgs, "reposcan: %v", err)
	}

	runID := uuid.New().String()
	slog.Info("scan starting", "run_id", runID, "repo", absPath, "branches", branchGlob)

	matches, err := s.Scan(cmd.Context(), absPath, branchGlob, fromUnix)
	if err != nil {
		return exitError(ExitScanFailure, "reposcan: scan failed (%v)", err)
	}

	slog.Info("scan complete", "run_id", runID, "matches", len(matches))

	w := cmd.OutOrStdout()
	if scanOutput != "" {
		f, err := cmdFS.Create(scanOutput)
		if err != nil {
			return exitError(ExitInvalidArgs, "reposcan: cannot create output file %q (%v)", scanOutput, err)
		}
		defer f.Close() //nolint:errcheck // best-effort close on output file
		w = f
	}

	if err := formatter.Format(matches, w); err != nil {
		return exitError(ExitScanFailure, "reposcan: formatting failed (%v)", err)
	}

	if len(matches) > 0 {
		return exitError(ExitMatchesFound, "")
	}
	return nil
}

// resolveScanPath resolves the given path argument into an absolute,
// symlink-free directory path.
func resolveScanPath(repoPath string) (string, error) {
	absPath, err := cmdFS.Abs(repoPath)
	if err != nil {
		return "", exitError(ExitInvalidArgs, "reposcan: cannot resolve path %q (%v)", repoPath, err)
	}

	absPath, err = cmdFS.EvalSymlinks(absPath)
	if err != nil {
		return "", exitError(ExitInvalidArgs, "reposcan: cannot resolve path %q (%v)", repoPath, err)
	}

	info, err := cmdFS.Stat(absPath)
	if err != nil {
		return "", exitError(ExitInvalidArgs, "reposcan: path %q does not exist (check the path and try again)", repoPath)
	}
	if !info.IsDir() {
		return "", exitError(ExitInvalidArgs, "reposcan: %q is not a directory (provide a repository root)", repoPath)
	}

	if _, statErr := cmdFS.Stat(filepath.Join(absPath, ".git")); statErr != nil {
		return "", exitError(ExitInvalidArgs, "reposcan: %q is not a Git repository (no .git directory)", repoPath)
	}

	return absPath, nil
}

// exitCodeError carries a non-zero exit code through cobra's error handling.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError. If msg is empty, the error message is
// set to a generic description of the exit code.
func exitError(code int, format string, args ...any) *exitCodeError {
	msg := fmt.Sprintf(format, args...)
	if msg == "" {
		switch code {
		case ExitMatchesFound:
			msg = "reposcan: matches found"
		case ExitScanFailure:
			msg = "reposcan: scan failed"
		default:
			msg = "reposcan: error"
		}
	}
	return &exitCodeError{code: code, msg: msg}
}
