package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"docvoice/internal/config"
	"docvoice/internal/language"
	"docvoice/internal/logger"
	"docvoice/internal/session"
)

var processCmd = &cobra.Command{
	Use:   "process [pdf-file...]",
	Short: "Generate a summary, explanation, and audio from PDF documents",
	Long: `Process one or more PDF files end to end: extract their text (with OCR
fallback for image-only pages), generate a summary and a beginner-friendly
explanation in the selected language, and render the explanation to speech.

With --interactive, the command then reads feedback lines from stdin and
regenerates the explanation and audio after each one. An empty line ends
the feedback loop. Every revision considers the full feedback history.`,
	Example: `  # Process a single PDF in English
  docvoice process paper.pdf

  # Two documents, explanation in Hindi, emphasizing selected topics
  docvoice process a.pdf b.pdf --language Hindi --keywords photosynthesis,light

  # Refine interactively, keep the audio artifact at a stable path
  docvoice process paper.pdf --interactive --audio-out explanation.mp3`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProcess,
}

// processOutput is the JSON output structure when --json is used
type processOutput struct {
	Language    string   `json:"language"`
	Summary     string   `json:"summary"`
	Explanation string   `json:"explanation"`
	AudioPath   string   `json:"audio_path,omitempty"`
	Feedback    []string `json:"feedback,omitempty"`
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringP("language", "l", "", "Target language display name (default English)")
	processCmd.Flags().StringSliceP("keywords", "k", nil, "Topics to emphasize in the explanation")
	processCmd.Flags().BoolP("interactive", "i", false, "Read feedback lines from stdin and regenerate")
	processCmd.Flags().String("audio-out", "", "Move the audio artifact to this path")
	processCmd.Flags().String("ocr-backend", "", "OCR backend: vision, documentai, or none (default from env)")
	processCmd.Flags().Bool("json", false, "Output as JSON")
	processCmd.Flags().Int("timeout", 900, "Processing timeout in seconds")
}

func runProcess(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("process")

	lang, _ := cmd.Flags().GetString("language")
	keywords, _ := cmd.Flags().GetStringSlice("keywords")
	interactive, _ := cmd.Flags().GetBool("interactive")
	audioOut, _ := cmd.Flags().GetString("audio-out")
	ocrBackend, _ := cmd.Flags().GetString("ocr-backend")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	cfg := config.Load()
	if lang == "" {
		lang = cfg.DefaultLanguage
	}
	if !language.Supported(lang) {
		return fmt.Errorf("unsupported language %q, run 'docvoice languages' to list the choices", lang)
	}

	ctx, cancel := createContextWithTimeout(timeoutSecs, log)
	defer cancel()

	pipeline, cleanup := buildPipeline(ctx, cfg, ocrBackend, log)
	defer cleanup()

	sess := session.New(pipeline, buildGenerator(cfg), buildRenderer(cfg), session.NoopStore{})

	err := sess.ProcessDocuments(ctx, args, session.Options{
		Language: lang,
		Keywords: keywords,
	})
	if err != nil {
		return err
	}

	if err := printArtifacts(cmd.OutOrStdout(), sess, jsonOutput); err != nil {
		return err
	}

	if interactive {
		if err := feedbackLoop(ctx, cmd, sess, jsonOutput); err != nil {
			return err
		}
	}

	if audioOut != "" {
		if path := sess.Artifacts().AudioPath; path != "" {
			if err := moveFile(path, audioOut); err != nil {
				return fmt.Errorf("failed to move audio artifact: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Audio saved to %s\n", audioOut)
		}
	}

	return nil
}

// feedbackLoop reads feedback lines from stdin until an empty line or EOF.
func feedbackLoop(ctx context.Context, cmd *cobra.Command, sess *session.Session, jsonOutput bool) error {
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())

	fmt.Fprintln(out, "\nEnter feedback to refine the explanation (empty line to finish):")
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		revised, err := sess.SubmitFeedback(ctx, scanner.Text())
		if err != nil {
			return err
		}
		if !revised {
			fmt.Fprintln(out, "No feedback given, keeping the current explanation.")
			break
		}

		if err := printArtifacts(out, sess, jsonOutput); err != nil {
			return err
		}
		fmt.Fprintln(out, "\nMore feedback? (empty line to finish):")
	}

	return scanner.Err()
}

func printArtifacts(w io.Writer, sess *session.Session, jsonOutput bool) error {
	a := sess.Artifacts()

	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(processOutput{
			Language:    sess.Language(),
			Summary:     a.Summary.Display(),
			Explanation: a.Explanation.Display(),
			AudioPath:   a.AudioPath,
			Feedback:    sess.FeedbackHistory(),
		})
	}

	fmt.Fprintf(w, "\n=== Summary (%s) ===\n%s\n", sess.Language(), a.Summary.Display())
	fmt.Fprintf(w, "\n=== Explanation (%s) ===\n%s\n", sess.Language(), a.Explanation.Display())
	if a.AudioPath != "" {
		fmt.Fprintf(w, "\nAudio: %s\n", a.AudioPath)
	} else {
		fmt.Fprintln(w, "\nNo audio was generated.")
	}
	return nil
}

// moveFile renames src to dst, copying across filesystems when needed.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
