package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"docvoice/internal/language"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the languages available for generation and synthesis",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range language.Names() {
			code, _ := language.Code(name)
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", name, code)
		}
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
