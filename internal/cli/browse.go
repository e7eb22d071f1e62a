package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sprite-ai/purecode/internal/analyze"
	"github.com/sprite-ai/purecode/internal/config"
	"github.com/sprite-ai/purecode/internal/diff"
	"github.com/sprite-ai/purecode/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse a classified diff in the terminal",
	Long: `Open an interactive view of the diff with every line tagged by its
classification and syntax highlighted. Navigate files with tab/shift-tab,
scroll with j/k, press ? for help.`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	addDiffFlags(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg := config.Load(".")

	raw, err := getDiff(cmd, cfg)
	if err != nil {
		return err
	}

	ds, err := diff.Parse(raw)
	if err != nil {
		return err
	}
	if len(ds.Files) == 0 {
		return fmt.Errorf("diff is empty, nothing to browse")
	}

	set, err := analyze.Diff(cmd.Context(), ds)
	if err != nil {
		return err
	}

	return tui.Run(ds, set)
}
