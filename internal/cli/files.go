package cli

import (
	"github.com/spf13/cobra"

	"github.com/sprite-ai/purecode/internal/config"
	"github.com/sprite-ai/purecode/internal/snapshot"
)

var filesCmd = &cobra.Command{
	Use:   "files [path ...]",
	Short: "Analyze whole files instead of a diff",
	Long: `Classify every line of the given files or directory trees. Directories
are walked recursively, filtered by the include/exclude globs from
.purecode.toml (or the defaults). Binary files are skipped.

With --stdin, reads a newline-separated list of file paths instead of
walking the arguments.

Examples:
  purecode files src/
  purecode files main.go util.go --per-file
  git ls-files '*.go' | purecode files --stdin`,
	RunE: runFiles,
}

func init() {
	addAnalysisFlags(filesCmd)
	filesCmd.Flags().Bool("stdin", false, "read a newline-separated list of paths from stdin")
	filesCmd.Flags().StringSlice("include", nil, "glob patterns of files to include")
	filesCmd.Flags().StringSlice("exclude", nil, "glob patterns of files to exclude")
}

func runFiles(cmd *cobra.Command, args []string) error {
	cfg := config.Load(".")
	s, err := resolveSettings(cmd, cfg)
	if err != nil {
		return err
	}

	useStdin, _ := cmd.Flags().GetBool("stdin")
	if useStdin {
		set, err := snapshot.AnalyzeList(cmd.Context(), cmd.InOrStdin())
		if err != nil {
			return err
		}
		return finish(set, s)
	}

	include := cfg.Include
	if cmd.Flags().Changed("include") {
		include, _ = cmd.Flags().GetStringSlice("include")
	}
	exclude := cfg.Exclude
	if cmd.Flags().Changed("exclude") {
		exclude, _ = cmd.Flags().GetStringSlice("exclude")
	}

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}

	set, err := snapshot.Analyze(cmd.Context(), roots, include, exclude)
	if err != nil {
		return err
	}
	return finish(set, s)
}
