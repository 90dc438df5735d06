package guardrails

import (
	"context"
	"regexp"
	"strings"

	"github.com/cybergod-duck/rallyspeech/pkg/chunker"
	"github.com/cybergod-duck/rallyspeech/pkg/tokenizer"
)

var (
	bracketTag  = regexp.MustCompile(`\[[A-Za-z ]+\]`)
	chatRole    = regexp.MustCompile(`(?im)^\s*(user|assistant|system)\s*:`)
	markdownish = regexp.MustCompile(`(?m)^\s*(#{1,6}\s|[-*+]\s|\d+\.\s)|\*\*|__`)
)

// StyleTagBudget flags speeches with more delivery tags, such as "[excited]",
// than allowed. The cue tag does not count.
type StyleTagBudget struct {
	cue   string
	limit int
}

func NewStyleTagBudget(cue string, limit int) *StyleTagBudget {
	return &StyleTagBudget{cue: strings.ToLower(cue), limit: limit}
}

func (g *StyleTagBudget) Name() string { return "style_tags" }

func (g *StyleTagBudget) Check(_ context.Context, text string) (*Result, error) {
	n := 0
	for _, tag := range bracketTag.FindAllString(text, -1) {
		if strings.ToLower(tag) != g.cue {
			n++
		}
	}
	if n > g.limit {
		return &Result{Allowed: true, Flags: []string{"too_many_style_tags"}}, nil
	}
	return &Result{Allowed: true}, nil
}

// ArtifactDetector flags chat role prefixes and markdown.
type ArtifactDetector struct{}

func NewArtifactDetector() *ArtifactDetector { return &ArtifactDetector{} }

func (d *ArtifactDetector) Name() string { return "artifacts" }

func (d *ArtifactDetector) Check(_ context.Context, text string) (*Result, error) {
	var flags []string
	if chatRole.MatchString(text) {
		flags = append(flags, "chat_artifact")
	}
	if markdownish.MatchString(text) {
		flags = append(flags, "markdown")
	}
	return &Result{Allowed: true, Flags: flags}, nil
}

// CloserCheck flags speeches whose last three sentences lack the "[shouts]"
// and "[applause]" climax.
type CloserCheck struct{}

func NewCloserCheck() *CloserCheck { return &CloserCheck{} }

func (c *CloserCheck) Name() string { return "closer" }

func (c *CloserCheck) Check(_ context.Context, text string) (*Result, error) {
	sentences := chunker.SplitSentences(text)
	if len(sentences) > 3 {
		sentences = sentences[len(sentences)-3:]
	}
	tail := strings.ToLower(strings.Join(sentences, " "))
	if !strings.Contains(tail, "[shouts]") || !strings.Contains(tail, "[applause]") {
		return &Result{Allowed: true, Flags: []string{"missing_closer"}}, nil
	}
	return &Result{Allowed: true}, nil
}

// LengthCheck flags speeches outside the target word range.
type LengthCheck struct {
	minWords, maxWords int
}

func NewLengthCheck(minWords, maxWords int) *LengthCheck {
	return &LengthCheck{minWords: minWords, maxWords: maxWords}
}

func (l *LengthCheck) Name() string { return "length" }

func (l *LengthCheck) Check(_ context.Context, text string) (*Result, error) {
	switch words := tokenizer.CountWords(text); {
	case words < l.minWords:
		return &Result{Allowed: true, Flags: []string{"too_short"}}, nil
	case words > l.maxWords:
		return &Result{Allowed: true, Flags: []string{"too_long"}}, nil
	}
	return &Result{Allowed: true}, nil
}
