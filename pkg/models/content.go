// Package models contains the shared data types passed between the
// ingestion, generation, speech, and session packages.
package models

// Result is the tagged outcome of a single generation call. Exactly one of
// Text or ErrMessage is meaningful: a failed Result carries a human-readable
// message and no text. Downstream code must branch on Failed(), never on the
// content of Text.
type Result struct {
	// Text is the generated content for a successful call.
	Text string

	// ErrMessage describes the failure for an unsuccessful call.
	ErrMessage string
}

// Success wraps generated text in a successful Result.
func Success(text string) Result {
	return Result{Text: text}
}

// Failure wraps a human-readable message in a failed Result.
func Failure(msg string) Result {
	return Result{ErrMessage: msg}
}

// Failed reports whether the generation call failed.
func (r Result) Failed() bool {
	return r.ErrMessage != ""
}

// Display returns the text a user should see for this result. Failures keep
// the historical "Error:" label so script consumers stay compatible.
func (r Result) Display() string {
	if r.Failed() {
		return "Error: " + r.ErrMessage
	}
	return r.Text
}

// Artifacts bundles everything one processing request produced.
type Artifacts struct {
	// Corpus is the combined normalized text of all ingested documents.
	Corpus string

	// Summary is the short overview of the corpus.
	Summary Result

	// Explanation is the long, beginner-level explanation of the corpus.
	Explanation Result

	// AudioPath is the synthesized spoken rendering of the explanation,
	// or empty when synthesis was skipped or failed.
	AudioPath string
}
