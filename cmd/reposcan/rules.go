// Copyright 2026 The RepoScan Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/corvidsec/reposcan/internal/rules"
)

// rulesCmd is the parent command for rule-authoring helpers.
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and validate reposcan rule patterns",
}

var rulesCheckStdin bool

// rulesCheckCmd validates a single content-rule pattern and shows every
// capture it would produce against sample content, without running a scan.
var rulesCheckCmd = &cobra.Command{
	Use:   "check <pattern> [content]",
	Short: "Validate a content-rule pattern and show its captures against sample content",
	Long: `Check validates that pattern compiles and has exactly one capturing
group — the same requirement scan enforces for content rules — then prints
every substring it captures from the given sample content. Pass content as
a second argument, or pipe it on stdin.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runRulesCheck,
}

func init() {
	rulesCheckCmd.Flags().BoolVar(&rulesCheckStdin, "stdin", false, "read sample content from stdin instead of the second argument")
	rulesCmd.AddCommand(rulesCheckCmd)
}

func runRulesCheck(cmd *cobra.Command, args []string) error {
	pattern := args[0]

	var content string
	switch {
	case rulesCheckStdin || len(args) == 1:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return exitError(ExitInvalidArgs, "reposcan: failed to read content from stdin (%v)", err)
		}
		content = string(data)
	default:
		content = args[1]
	}

	engine := rules.New()
	captures, err := engine.CheckPattern(content, pattern)
	if err != nil {
		return exitError(ExitInvalidArgs, "reposcan: %v", err)
	}

	w := cmd.OutOrStdout()
	if len(captures) == 0 {
		_, _ = fmt.Fprintln(w, "no matches")
		return nil
	}
	for _, c := range captures {
		_, _ = fmt.Fprintln(w, c)
	}
	return nil
}
