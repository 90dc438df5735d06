package tokenizer

import (
	"strings"
	"time"
)

// SpeakingRate is the words-per-minute pace used for duration estimates.
const SpeakingRate = 150

// CountTokens provides a rough token count estimate.
func CountTokens(text string) int {
	// ~4 chars per token for English
	words := strings.Fields(text)
	return max(len(words)*4/3, 1)
}

// CountWords counts whitespace-separated words, ignoring bracketed delivery
// tags such as "[shouts]" that are not spoken.
func CountWords(text string) int {
	n := 0
	for _, w := range strings.Fields(text) {
		if strings.HasPrefix(w, "[") && strings.HasSuffix(w, "]") {
			continue
		}
		n++
	}
	return n
}

// EstimateDuration converts a word count into speaking time at SpeakingRate.
func EstimateDuration(words int) time.Duration {
	return time.Duration(words) * time.Minute / SpeakingRate
}
