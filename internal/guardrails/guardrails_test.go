package guardrails

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func check(t *testing.T, g Guardrail, text string) []string {
	t.Helper()
	res, err := g.Check(context.Background(), text)
	require.NoError(t, err)
	assert.True(t, res.Allowed, "%s never blocks", g.Name())
	return res.Flags
}

func TestStyleTagBudget(t *testing.T) {
	t.Parallel()

	g := NewStyleTagBudget("[cheering]", 2)
	assert.Empty(t, check(t, g, "[excited] Big. [cheering] [CHEERING] [shouts] Win."))
	assert.Equal(t, []string{"too_many_style_tags"}, check(t, g, "[excited] a [angry] b [laughs] c"))
}

func TestArtifactDetector(t *testing.T) {
	t.Parallel()

	g := NewArtifactDetector()
	assert.Empty(t, check(t, g, "We will win. The system: rigged! 1.5 million people."))
	assert.Equal(t, []string{"chat_artifact"}, check(t, g, "Assistant: Thank you folks."))
	assert.Equal(t, []string{"markdown"}, check(t, g, "Great speech\n- point one"))
	assert.Equal(t, []string{"chat_artifact", "markdown"}, check(t, g, "user: hi\n## Title"))
}

func TestCloserCheck(t *testing.T) {
	t.Parallel()

	g := NewCloserCheck()
	assert.Empty(t, check(t, g, "Jobs. Trade. We will win! [shouts] Thank you! [applause]"))
	assert.Empty(t, check(t, g, "[SHOUTS] Win! [Applause]"))
	assert.Equal(t, []string{"missing_closer"}, check(t, g, "[shouts] Early. Middle. Later. End. Thank you. [applause]"))
	assert.Equal(t, []string{"missing_closer"}, check(t, g, "No closer at all."))
}

func TestLengthCheck(t *testing.T) {
	t.Parallel()

	g := NewLengthCheck(3, 5)
	assert.Equal(t, []string{"too_short"}, check(t, g, "two words"))
	assert.Empty(t, check(t, g, "[excited] one two three four"))
	assert.Equal(t, []string{"too_long"}, check(t, g, strings.Repeat("word ", 6)))
}

type blocking struct{ err error }

func (b blocking) Name() string { return "blocking" }
func (b blocking) Check(context.Context, string) (*Result, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &Result{Allowed: false, Reason: "nope", Flags: []string{"blocked"}}, nil
}

func TestPipeline(t *testing.T) {
	t.Parallel()

	p := NewPipeline(NewLengthCheck(10, 20))
	p.Add(blocking{})

	res, err := p.Check(context.Background(), "short")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, "blocked by blocking: nope", res.Reason)
	assert.Equal(t, []string{"too_short", "blocked"}, res.Flags)

	boom := errors.New("boom")
	_, err = NewPipeline(blocking{err: boom}).Check(context.Background(), "x")
	assert.ErrorIs(t, err, boom)
	assert.EqualError(t, err, "guardrail blocking: boom")
}

func TestSpeechPipeline(t *testing.T) {
	t.Parallel()

	speech := strings.Repeat("Tremendous crowd. ", 6) + "[shouts] We will win! [applause]"
	res, err := SpeechPipeline("[cheering]", 5, 5, 100).Check(context.Background(), speech)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Empty(t, res.Flags)
}
