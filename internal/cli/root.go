// Package cli implements the purecode command-line interface.
package cli

import (
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "purecode",
	Short: "Count pure code vs noise in diffs and file trees",
	Long: `purecode distinguishes substantive code from noise (comments,
docstrings, blank lines) across a diff or a directory snapshot, and gates
CI on the result.

Running purecode with no subcommand analyzes a git diff, like 'purecode diff'.

Exit codes:
  0 — analysis passed (or --warn-only)
  1 — fatal error (malformed diff, unreadable file)
  2 — one or more thresholds violated`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE:          runDiff,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	addAnalysisFlags(rootCmd)
	addDiffFlags(rootCmd)

	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(filesCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(languagesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// addAnalysisFlags registers the flags shared by every analyzing command.
func addAnalysisFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("format", "f", "", "output format: human, plain, json")
	f.Bool("per-file", false, "show per-file statistics")
	f.Float64("max-noise-ratio", 0, "fail when the noise ratio exceeds this value (0.0-1.0)")
	f.Int64("min-pure-lines", 0, "fail when net pure lines fall below this value")
	f.Bool("fail-on-decrease", false, "fail when the net pure change is negative")
	f.Bool("warn-only", false, "report threshold failures without a failing exit code")
	f.Bool("ci", false, "append machine-readable PURECODE_ summary lines (stderr with --format json)")
}

// addDiffFlags registers the flags for diff-consuming commands.
func addDiffFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("base", "", "base ref for git diff (default from config, origin/main)")
	f.String("head", "HEAD", "head ref for git diff")
	f.Bool("stdin", false, "read a unified diff from stdin instead of running git")
}

func gitRepoRoot() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// exitViolations is the exit code for gate failures, distinct from the
// generic error exit so CI can tell "gate failed" from "tool broke".
const exitViolations = 2

func exitWithViolations() {
	os.Exit(exitViolations)
}
