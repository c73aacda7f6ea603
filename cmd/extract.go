package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docvoice/internal/config"
	"docvoice/internal/logger"
)

var extractCmd = &cobra.Command{
	Use:   "extract [pdf-file...]",
	Short: "Extract the normalized text corpus from PDF documents",
	Long: `Extract text from one or more PDF files without any content generation.

Pages with embedded text are read directly; image-only pages go through the
OCR fallback batcher, which rasterizes the contiguous range of missing pages
in one pass. Multiple documents are joined with a separator marker in
argument order.`,
	Example: `  # Print the corpus of a single PDF
  docvoice extract paper.pdf

  # Combine two documents into a file, without OCR
  docvoice extract a.pdf b.pdf --ocr-backend none -o corpus.txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	extractCmd.Flags().String("ocr-backend", "", "OCR backend: vision, documentai, or none (default from env)")
	extractCmd.Flags().Int("timeout", 300, "Processing timeout in seconds")
}

func runExtract(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("extract")

	outputPath, _ := cmd.Flags().GetString("output")
	ocrBackend, _ := cmd.Flags().GetString("ocr-backend")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	cfg := config.Load()

	ctx, cancel := createContextWithTimeout(timeoutSecs, log)
	defer cancel()

	pipeline, cleanup := buildPipeline(ctx, cfg, ocrBackend, log)
	defer cleanup()

	corpus, err := pipeline.Ingest(ctx, args)
	if err != nil {
		return err
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(corpus+"\n"), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		log.Info().
			Str("output", outputPath).
			Int("text_length", len(corpus)).
			Msg("Corpus written")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), corpus)
	return nil
}
