// Package language holds the fixed table of languages offered for content
// generation and speech synthesis. Display names are what the user selects;
// codes are what the synthesis engine understands.
package language

import (
	"fmt"
	"sort"
)

// Default is the language used when the caller does not pick one.
const Default = "English"

// table maps display name to synthesis language code.
var table = map[string]string{
	"English":   "en",
	"Hindi":     "hi",
	"Gujarati":  "gu",
	"Marathi":   "mr",
	"Tamil":     "ta",
	"Telugu":    "te",
	"Kannada":   "kn",
	"Bengali":   "bn",
	"Malayalam": "ml",
	"Punjabi":   "pa",
	"Urdu":      "ur",
}

// Code returns the synthesis code for a display name.
func Code(name string) (string, error) {
	code, ok := table[name]
	if !ok {
		return "", fmt.Errorf("unsupported language: %q", name)
	}
	return code, nil
}

// Supported reports whether name is in the table.
func Supported(name string) bool {
	_, ok := table[name]
	return ok
}

// Names returns all display names, Default first, the rest sorted.
func Names() []string {
	names := make([]string, 0, len(table))
	for name := range table {
		if name != Default {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return append([]string{Default}, names...)
}
