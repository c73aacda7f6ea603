package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docvoice/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "docvoice",
	Short: "docvoice - turn PDF documents into AI explanations with audio",
	Long: `docvoice ingests PDF documents, extracts their text (with OCR fallback
for image-only pages), and produces an AI-generated summary plus a long,
beginner-friendly explanation in a selected language, followed by a
spoken-audio rendering of the explanation.

Feedback can be given interactively to refine the explanation; every
revision considers the full feedback history.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
