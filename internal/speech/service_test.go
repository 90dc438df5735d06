package speech

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybergod-duck/rallyspeech/internal/config"
	"github.com/cybergod-duck/rallyspeech/internal/llm"
	"github.com/cybergod-duck/rallyspeech/internal/provider"
	"github.com/cybergod-duck/rallyspeech/internal/tts"
)

type fakeText struct {
	content string
	err     error
	calls   int
	got     llm.ChatRequest
}

func (f *fakeText) Name() string     { return "groq" }
func (f *fakeText) Models() []string { return []string{"llama-3.3-70b-versatile"} }
func (f *fakeText) ChatCompletion(_ context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	f.calls++
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &llm.ChatResponse{Provider: "groq", Model: req.Model, Content: f.content, InputTokens: 10, OutputTokens: 20, TotalTokens: 30}, nil
}

type fakeVoice struct {
	failOn int // 1-based call number that fails; 0 never fails
	texts  []string
}

func (f *fakeVoice) Name() string { return "fake" }
func (f *fakeVoice) Synthesize(_ context.Context, req tts.SynthesisRequest) (*tts.SynthesisResult, error) {
	f.texts = append(f.texts, req.Text)
	if len(f.texts) == f.failOn {
		return nil, &provider.Error{Provider: "ElevenLabs", StatusCode: http.StatusTooManyRequests, Body: "quota exceeded"}
	}
	return &tts.SynthesisResult{Audio: []byte("audio:" + req.Text), ContentType: "audio/mpeg"}, nil
}

func newTestService(text *fakeText, voice *fakeVoice) *Service {
	opts := OptionsFromConfig(config.Defaults())
	opts.VoiceID = "voice-1"
	return NewService(llm.NewGatewayWith(text), voice, opts)
}

func TestPerform_SendsInstructionAndPrompt(t *testing.T) {
	t.Parallel()

	text := &fakeText{content: "We are winning. [cheering] Believe me."}
	svc := newTestService(text, &fakeVoice{})

	_, err := svc.Perform(context.Background(), "talk about trade")
	require.NoError(t, err)

	require.Len(t, text.got.Messages, 2)
	assert.Equal(t, llm.System(Instruction()), text.got.Messages[0])
	assert.Equal(t, llm.User("talk about trade"), text.got.Messages[1])
	assert.Equal(t, "llama-3.3-70b-versatile", text.got.Model)
	assert.InDelta(t, 0.8, text.got.Temperature, 1e-9)
	assert.Equal(t, 900, text.got.MaxTokens)
}

func TestPerform_CollapsesDuplicateCues(t *testing.T) {
	t.Parallel()

	text := &fakeText{content: "Great crowd. [cheering] Tremendous. [Cheering] Believe me."}
	voice := &fakeVoice{}
	svc := newTestService(text, voice)

	perf, err := svc.Perform(context.Background(), "rally")
	require.NoError(t, err)

	assert.Equal(t, "Great crowd. [cheering] Tremendous.  Believe me.", perf.Transcript)
	assert.Equal(t, 1, CountCues(perf.Transcript))
	assert.Equal(t, []string{"Great crowd.", "Tremendous.  Believe me."}, perf.Segments)
	require.Len(t, perf.Audios, 2)
	assert.Equal(t, []byte("audio:Great crowd."), perf.Audios[0])
	assert.Equal(t, []byte("audio:Tremendous.  Believe me."), perf.Audios[1])
	assert.Equal(t, perf.Segments, voice.texts, "segments are voiced in order")
	assert.Equal(t, 30, perf.Usage.InputTokens+perf.Usage.OutputTokens)
}

func TestPerform_InsertsCueAtMiddleSentence(t *testing.T) {
	t.Parallel()

	text := &fakeText{content: "One. Two. Three. Four. Five."}
	svc := newTestService(text, &fakeVoice{})

	perf, err := svc.Perform(context.Background(), "rally")
	require.NoError(t, err)

	assert.Equal(t, "One. Two. [cheering] Three. Four. Five.", perf.Transcript)
	assert.Equal(t, []string{"One. Two.", "Three. Four. Five."}, perf.Segments)
	assert.Len(t, perf.Audios, 2)
	assert.Equal(t, 5, perf.Words)
	assert.ElementsMatch(t, []string{"missing_closer", "too_short"}, perf.Flags)
}

func TestPerform_SecondSegmentFails(t *testing.T) {
	t.Parallel()

	voice := &fakeVoice{failOn: 2}
	svc := newTestService(&fakeText{content: "First half. [cheering] Second half."}, voice)

	perf, err := svc.Perform(context.Background(), "rally")
	require.Error(t, err)
	assert.Nil(t, perf, "no partial audio on failure")
	assert.Len(t, voice.texts, 2)

	pe, ok := provider.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "ElevenLabs API failed: 429 - quota exceeded", pe.Error())
}

func TestPerform_BlankPromptMakesNoCalls(t *testing.T) {
	t.Parallel()

	text := &fakeText{content: "unused"}
	voice := &fakeVoice{}
	svc := newTestService(text, voice)

	for _, prompt := range []string{"", "   ", "\n\t"} {
		_, err := svc.Perform(context.Background(), prompt)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
	assert.Zero(t, text.calls)
	assert.Empty(t, voice.texts)
}

func TestPerform_Failures(t *testing.T) {
	t.Parallel()

	groqDown := &provider.Error{Provider: "Groq", StatusCode: http.StatusServiceUnavailable, Body: "down"}

	tests := []struct {
		name    string
		text    *fakeText
		wantErr error
	}{
		{"empty generation", &fakeText{content: "  \n "}, ErrEmptyGeneration},
		{"only gibberish", &fakeText{content: "XJ29kD"}, ErrEmptySpeech},
		{"only cue", &fakeText{content: "[cheering]"}, ErrEmptySpeech},
		{"text provider failure", &fakeText{err: groqDown}, groqDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			voice := &fakeVoice{}
			_, err := newTestService(tt.text, voice).Perform(context.Background(), "rally")
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, voice.texts)
		})
	}
}

func TestPerform_ProviderErrorMessage(t *testing.T) {
	t.Parallel()

	err := errors.New("connection refused")
	_, got := newTestService(&fakeText{err: err}, &fakeVoice{}).Perform(context.Background(), "rally")
	assert.ErrorIs(t, got, err)
	assert.True(t, strings.HasPrefix(got.Error(), "generate: "))
}

func TestInstruction(t *testing.T) {
	got := Instruction()

	assert.NotContains(t, got, "{{")
	assert.Contains(t, got, `Include EXACTLY ONE "[cheering]" marker`)
	assert.Contains(t, got, "between 3 minutes 30 seconds and 3 minutes 48 seconds")
	assert.Contains(t, got, "about 520–580 words")
	assert.Contains(t, got, "Use AT MOST 5 total style tags")
	assert.Contains(t, got, `"[shouts]" and "[applause]"`)
}
