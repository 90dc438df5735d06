package speech

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	wordRun       = regexp.MustCompile(`[A-Za-z0-9_]+`)
	horizontalRun = regexp.MustCompile(`[ \t]{2,}`)
	blankLines    = regexp.MustCompile(`\n{3,}`)
)

// Normalize cleans generated text before cue handling: CRLF becomes LF,
// gibberish tokens are stripped, space and tab runs collapse to one space,
// three or more newlines collapse to two, and the result is trimmed.
func Normalize(text string) string {
	text = CanonicalizeLineEndings(text)
	text = StripGibberishTokens(text)
	text = horizontalRun.ReplaceAllString(text, " ")
	text = blankLines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// CanonicalizeLineEndings converts CRLF line endings to LF.
func CanonicalizeLineEndings(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}

// StripGibberishTokens removes ASCII word tokens of six or more characters
// that mix letters and digits, such as "XJ29kD", which models sometimes emit
// as fake identifiers. Tokens touching an underscore are left alone.
//
// This is a heuristic: legitimate words like "COVID19" or "A380xyz" are
// removed too.
func StripGibberishTokens(text string) string {
	return wordRun.ReplaceAllStringFunc(text, func(tok string) string {
		if isGibberish(tok) {
			return ""
		}
		return tok
	})
}

func isGibberish(tok string) bool {
	if len(tok) < 6 || strings.ContainsRune(tok, '_') {
		return false
	}
	var letter, digit bool
	for _, r := range tok {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsLetter(r):
			letter = true
		}
	}
	return letter && digit
}
