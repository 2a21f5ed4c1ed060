// Copyright 2026 The RepoScan Authors
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/corvidsec/reposcan/internal/scanner"
	"github.com/corvidsec/reposcan/internal/triage"
)

var (
	triageModel string
)

// triageCmd is an optional, explicitly opt-in post-processing pass over a
// previously produced scan result file. It is never invoked by scan and
// requires ANTHROPIC_API_KEY.
var triageCmd = &cobra.Command{
	Use:   "triage <results.json>",
	Short: "Ask an LLM to assess whether scan matches are real secrets or noise",
	Long: `triage reads a JSON file produced by "reposcan scan --format json" and
asks an LLM to classify each match as a likely real secret, likely noise
(placeholder, test fixture, documentation example), or unsure. This is an
advisory second pass; it never changes scan's own exit code or output and
is not part of the core scanning pipeline.

Requires the ANTHROPIC_API_KEY environment variable.`,
	Args: cobra.ExactArgs(1),
	RunE: runTriage,
}

func init() {
	triageCmd.Flags().StringVar(&triageModel, "model", "", "override the default Anthropic model")
}

func runTriage(cmd *cobra.Command, args []string) error {
	raw, err := cmdFS.ReadFile(args[0])
	if err != nil {
		return exitError(ExitInvalidArgs, "reposcan: cannot read results file %q (%v)", args[0], err)
	}

	var envelope struct {
		Results []scanner.ScanResult `json:"results"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return exitError(ExitInvalidArgs, "reposcan: %q is not a valid scan results file (%v)", args[0], err)
	}

	opts := []triage.AnthropicOption{}
	if triageModel != "" {
		opts = append(opts, triage.WithModel(triageModel))
	}
	provider, err := triage.NewAnthropicProvider(opts...)
	if err != nil {
		return exitError(ExitInvalidArgs, "reposcan: %v", err)
	}

	assessments, err := triage.AssessAll(cmd.Context(), provider, envelope.Results)
	if err != nil {
		return exitError(ExitScanFailure, "reposcan: triage failed (%v)", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(assessments); err != nil {
		return exitError(ExitScanFailure, "reposcan: failed to write triage output (%v)", err)
	}

	return nil
}
