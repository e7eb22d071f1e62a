package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sprite-ai/purecode/internal/analyze"
	"github.com/sprite-ai/purecode/internal/config"
	"github.com/sprite-ai/purecode/internal/diff"
	"github.com/sprite-ai/purecode/internal/gate"
	"github.com/sprite-ai/purecode/internal/report"
	"github.com/sprite-ai/purecode/internal/stats"
)

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Analyze a git diff (default mode)",
	Long: `Classify every changed line of a git diff as pure code or noise and
evaluate the configured thresholds against the result.

Examples:
  purecode diff                            # origin/main...HEAD
  purecode diff --base main --head HEAD
  git diff -U0 | purecode diff --stdin     # pipe any unified diff`,
	Args: cobra.NoArgs,
	RunE: runDiff,
}

func init() {
	addAnalysisFlags(diffCmd)
	addDiffFlags(diffCmd)
}

// settings is the fully-merged run configuration: .purecode.toml values with
// any changed command-line flags layered on top (CLI wins).
type settings struct {
	format   report.Format
	perFile  bool
	warnOnly bool
	ci       bool
	gate     gate.Config
}

func resolveSettings(cmd *cobra.Command, cfg config.File) (settings, error) {
	f := cmd.Flags()

	formatStr := cfg.Format
	if f.Changed("format") {
		formatStr, _ = f.GetString("format")
	}
	format, err := report.ParseFormat(formatStr)
	if err != nil {
		return settings{}, err
	}

	s := settings{
		format: format,
		gate: gate.Config{
			MaxNoiseRatio:  cfg.MaxNoiseRatio,
			MinPureLines:   cfg.MinPureLines,
			FailOnDecrease: cfg.FailOnDecrease,
		},
	}

	s.perFile, _ = f.GetBool("per-file")

	if f.Changed("max-noise-ratio") {
		v, _ := f.GetFloat64("max-noise-ratio")
		if v < 0 || v > 1 {
			return settings{}, fmt.Errorf("--max-noise-ratio must be within 0.0-1.0, got %v", v)
		}
		s.gate.MaxNoiseRatio = &v
	}
	if f.Changed("min-pure-lines") {
		v, _ := f.GetInt64("min-pure-lines")
		s.gate.MinPureLines = &v
	}
	if f.Changed("fail-on-decrease") {
		s.gate.FailOnDecrease, _ = f.GetBool("fail-on-decrease")
	}

	warnFlag, _ := f.GetBool("warn-only")
	s.warnOnly = cfg.WarnOnly || warnFlag
	ciFlag, _ := f.GetBool("ci")
	s.ci = cfg.CI || ciFlag

	return s, nil
}

// getDiff obtains the raw unified diff: from stdin when --stdin is set,
// otherwise by running git with zero context lines.
func getDiff(cmd *cobra.Command, cfg config.File) (string, error) {
	useStdin, _ := cmd.Flags().GetBool("stdin")
	if useStdin {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	repoDir, err := gitRepoRoot()
	if err != nil {
		return "", fmt.Errorf("not in a git repository (or git not installed): %w", err)
	}

	base := cfg.Base
	if cmd.Flags().Changed("base") {
		base, _ = cmd.Flags().GetString("base")
	}
	head, _ := cmd.Flags().GetString("head")

	return diff.GitDiffRange(repoDir, base, head, 0)
}

func runDiff(cmd *cobra.Command, args []string) error {
	cfg := config.Load(".")
	s, err := resolveSettings(cmd, cfg)
	if err != nil {
		return err
	}

	raw, err := getDiff(cmd, cfg)
	if err != nil {
		return err
	}

	ds, err := diff.Parse(raw)
	if err != nil {
		return err
	}

	set, err := analyze.Diff(cmd.Context(), ds)
	if err != nil {
		return err
	}

	return finish(set, s)
}

// finish renders the report, evaluates the gates, and turns violations into
// the dedicated exit code unless warn-only is in effect.
func finish(set *stats.Set, s settings) error {
	verdict := gate.Evaluate(set.Summary(), s.gate)

	opts := report.Options{Format: s.format, PerFile: s.perFile, CI: s.ci}
	if err := report.Render(os.Stdout, set, verdict, opts); err != nil {
		return err
	}

	if !verdict.Passed {
		for _, v := range verdict.Violations {
			fmt.Fprintf(os.Stderr, "threshold violated: %s\n", v)
		}
		if !s.warnOnly {
			exitWithViolations()
		}
	}
	return nil
}
