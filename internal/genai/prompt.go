package genai

import (
	"fmt"
	"strings"
)

// Word-count thresholds for the explanation length tiers.
const (
	shortInputWords = 500
	longInputWords  = 5000
)

// promptBuilder composes a directive from an ordered list of instruction
// fragments, joined deterministically with blank lines.
type promptBuilder struct {
	fragments []string
}

func (b *promptBuilder) add(fragment string) {
	b.fragments = append(b.fragments, fragment)
}

func (b *promptBuilder) build() string {
	return strings.Join(b.fragments, "\n\n")
}

// summaryPrompt builds the directive for a concise, multi-sentence overview
// in the target language.
func summaryPrompt(text, lang string) string {
	var b promptBuilder
	b.add(fmt.Sprintf(
		"You are a helpful assistant. Summarize the following document in a few simple sentences in %s. "+
			"Focus only on the core message. The goal is a very quick overview.", lang))
	b.add("DOCUMENT:\n---\n" + text)
	return b.build()
}

// explanationPrompt builds the directive for a beginner-level, analogy-driven
// explanation. Fragment order: base instruction, document, feedback block
// (entire joined history), keyword block, length tier.
func explanationPrompt(text, lang string, feedback, keywords []string) string {
	var b promptBuilder
	b.add(fmt.Sprintf(
		"Explain the following document in %s for a complete beginner. "+
			"Use simple words, short sentences, and a friendly tone. "+
			"Crucially, provide a relatable, real-life example or analogy to make the main concept understandable.", lang))
	b.add("DOCUMENT:\n---\n" + text)

	if len(feedback) > 0 {
		b.add("IMPROVEMENT INSTRUCTIONS:\n" +
			"The user was not satisfied with a previous version. Based on their feedback, please refine the explanation. " +
			fmt.Sprintf("Feedback: '%s'", strings.Join(feedback, "\n")))
	}

	if len(keywords) > 0 {
		b.add(fmt.Sprintf(
			"USER PREFERENCES: The user is particularly interested in these topics: %s. "+
				"Please emphasize them if relevant.", strings.Join(keywords, ", ")))
	}

	b.add(lengthDirective(text))
	return b.build()
}

// lengthDirective keeps the generated length proportionate to the source.
func lengthDirective(text string) string {
	switch words := len(strings.Fields(text)); {
	case words < shortInputWords:
		return "LENGTH: The document is short, so keep the explanation brief - no more than 300 words."
	case words > longInputWords:
		return "LENGTH: The document is long and detailed, so the explanation should be thorough - at least 1000 words."
	default:
		return "LENGTH: Aim for an explanation of roughly 500 to 800 words."
	}
}
