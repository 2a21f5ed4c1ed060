package main

import (
	"github.com/spf13/cobra"

	reposcanlog "github.com/corvidsec/reposcan/internal/log"
)

// Global flag values.
var (
	verbose bool
	quiet   bool
	noColor bool
)

// rootCmd is the base command for reposcan.
var rootCmd = &cobra.Command{
	Use:   "reposcan",
	Short: "Scan Git history for leaked secrets",
	Long: `reposcan walks every reachable commit on a chosen set of branches of a
local Git repository, examines the file blobs each commit introduces, and
reports any file whose path or content trips a user-supplied rule. It is
built for auditing repositories for credentials, tokens, and misfiled
secrets before they reach a shared remote.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		reposcanlog.Setup(verbose, quiet)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(triageCmd)
	rootCmd.AddCommand(versionCmd)
}
