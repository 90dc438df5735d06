package chunker

import (
	"strings"
	"unicode"
)

// SplitSentences breaks text at every whitespace run that directly follows
// '.', '!' or '?'. The whitespace itself is dropped, as are empty pieces.
// Text without terminal punctuation comes back as a single sentence.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder
	var prev rune
	inBreak := false

	for _, r := range text {
		if unicode.IsSpace(r) {
			if inBreak {
				continue
			}
			if prev == '.' || prev == '!' || prev == '?' {
				inBreak = true
				if current.Len() > 0 {
					sentences = append(sentences, current.String())
					current.Reset()
				}
				continue
			}
		} else {
			inBreak = false
		}
		current.WriteRune(r)
		prev = r
	}

	if current.Len() > 0 {
		sentences = append(sentences, current.String())
	}

	return sentences
}

// CountSentences is a convenience for len(SplitSentences(text)).
func CountSentences(text string) int {
	return len(SplitSentences(text))
}
