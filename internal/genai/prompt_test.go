package genai

import (
	"strings"
	"testing"
)

func TestSummaryPrompt(t *testing.T) {
	prompt := summaryPrompt("The mitochondria is the powerhouse of the cell.", "Hindi")

	if !strings.Contains(prompt, "in Hindi") {
		t.Errorf("summary prompt missing language directive:\n%s", prompt)
	}
	if !strings.Contains(prompt, "The mitochondria is the powerhouse of the cell.") {
		t.Errorf("summary prompt missing document text:\n%s", prompt)
	}
}

func TestExplanationPromptIncludesFullFeedbackHistory(t *testing.T) {
	history := []string{"too long", "add an analogy"}
	prompt := explanationPrompt("doc text", "English", history, nil)

	for _, entry := range history {
		if !strings.Contains(prompt, entry) {
			t.Errorf("prompt missing feedback entry %q:\n%s", entry, prompt)
		}
	}
	if !strings.Contains(prompt, "IMPROVEMENT INSTRUCTIONS") {
		t.Errorf("prompt missing feedback block:\n%s", prompt)
	}
}

func TestExplanationPromptOmitsEmptyBlocks(t *testing.T) {
	prompt := explanationPrompt("doc text", "English", nil, nil)

	if strings.Contains(prompt, "IMPROVEMENT INSTRUCTIONS") {
		t.Errorf("prompt has feedback block without feedback:\n%s", prompt)
	}
	if strings.Contains(prompt, "USER PREFERENCES") {
		t.Errorf("prompt has keyword block without keywords:\n%s", prompt)
	}
}

func TestExplanationPromptKeywords(t *testing.T) {
	prompt := explanationPrompt("doc text", "Tamil", nil, []string{"photosynthesis", "light"})

	if !strings.Contains(prompt, "photosynthesis, light") {
		t.Errorf("prompt missing joined keywords:\n%s", prompt)
	}
	if !strings.Contains(prompt, "in Tamil") {
		t.Errorf("prompt missing language directive:\n%s", prompt)
	}
}

func TestExplanationPromptDeterministic(t *testing.T) {
	a := explanationPrompt("doc", "English", []string{"x"}, []string{"y"})
	b := explanationPrompt("doc", "English", []string{"x"}, []string{"y"})
	if a != b {
		t.Error("prompt construction is not deterministic")
	}
}

func TestLengthDirectiveTiers(t *testing.T) {
	tests := []struct {
		name  string
		words int
		want  string
	}{
		{"short input", 100, "no more than 300 words"},
		{"medium input", 2000, "roughly 500 to 800 words"},
		{"long input", 6000, "at least 1000 words"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := strings.Repeat("word ", tt.words)
			got := lengthDirective(text)
			if !strings.Contains(got, tt.want) {
				t.Errorf("lengthDirective for %d words = %q, want substring %q", tt.words, got, tt.want)
			}
		})
	}
}
