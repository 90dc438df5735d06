package speech

import (
	"regexp"
	"strings"

	"github.com/cybergod-duck/rallyspeech/pkg/chunker"
)

// CueMarker marks the crowd-reaction break between the two halves of a speech.
const CueMarker = "[cheering]"

var cuePattern = regexp.MustCompile(`(?i)\[cheering\]`)

// CountCues counts cue markers regardless of case.
func CountCues(text string) int {
	return len(cuePattern.FindAllStringIndex(text, -1))
}

// EnforceSingleCue returns text containing exactly one cue marker.
//
// With no marker, one is placed between the middle sentences (index n/2)
// when there are more than two sentences; the sentences are then rejoined
// with single spaces. Shorter texts get the marker appended. With several
// markers only the first is kept, rewritten as CueMarker, and the others are
// cut out, leaving the surrounding whitespace as it was.
func EnforceSingleCue(text string) string {
	switch CountCues(text) {
	case 0:
		return insertCue(text)
	case 1:
		return text
	default:
		return dropExtraCues(text)
	}
}

func insertCue(text string) string {
	sentences := chunker.SplitSentences(text)
	if len(sentences) <= 2 {
		return text + " " + CueMarker
	}

	mid := len(sentences) / 2
	out := make([]string, 0, len(sentences)+1)
	out = append(out, sentences[:mid]...)
	out = append(out, CueMarker)
	out = append(out, sentences[mid:]...)
	return strings.Join(out, " ")
}

func dropExtraCues(text string) string {
	seen := false
	return cuePattern.ReplaceAllStringFunc(text, func(string) string {
		if seen {
			return ""
		}
		seen = true
		return CueMarker
	})
}
