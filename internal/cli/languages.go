package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sprite-ai/purecode/internal/language"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported languages and their file extensions",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, d := range language.All() {
			fmt.Printf("%-12s %s\n", d.Name, strings.Join(d.Extensions, ", "))
		}
	},
}
