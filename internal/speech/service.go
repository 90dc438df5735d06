package speech

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cybergod-duck/rallyspeech/internal/config"
	"github.com/cybergod-duck/rallyspeech/internal/guardrails"
	"github.com/cybergod-duck/rallyspeech/internal/llm"
	"github.com/cybergod-duck/rallyspeech/internal/tts"
	"github.com/cybergod-duck/rallyspeech/pkg/chunker"
	"github.com/cybergod-duck/rallyspeech/pkg/tokenizer"
)

// Options are the per-call generation and voice settings.
type Options struct {
	Provider    string
	Model       string
	Temperature float64
	MaxTokens   int
	VoiceID     string
}

// OptionsFromConfig takes the text provider settings and voice id from cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Provider:    strings.ToLower(cfg.LLM.Provider),
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		VoiceID:     cfg.TTS.VoiceID,
	}
}

// Usage records what the generation call consumed.
type Usage struct {
	Provider     string
	Model        string
	InputTokens  int
	OutputTokens int
	CostUSD      float64
}

// Performance is the result of one pipeline run. Audios[i] is the speech for
// Segments[i].
type Performance struct {
	ID         uuid.UUID
	Prompt     string
	Transcript string
	Segments   []string
	Audios     [][]byte
	Words      int
	Duration   time.Duration // estimated speaking time
	Flags      []string      // delivery rules the generated text broke
	Usage      Usage
}

type stage struct {
	name string
	run  func(ctx context.Context, p *Performance) error
}

// Service turns a prompt into a spoken rally speech: it generates the text,
// cleans it up, splits it at the crowd cue and voices each part in order.
type Service struct {
	gw          llm.Gateway
	voice       tts.Provider
	opts        Options
	instruction string
	checks      *guardrails.Pipeline
	stages      []stage
}

// NewService builds a pipeline over the text gateway and the voice backend.
func NewService(gw llm.Gateway, voice tts.Provider, opts Options) *Service {
	s := &Service{
		gw:          gw,
		voice:       voice,
		opts:        opts,
		instruction: Instruction(),
		checks:      guardrails.SpeechPipeline(CueMarker, MaxStyleTags, TargetMinWords, TargetMaxWords),
	}
	s.stages = []stage{
		{"generate", s.generateText},
		{"normalize", s.normalize},
		{"cue", s.enforceCue},
		{"check", s.check},
		{"segment", s.segment},
		{"synthesize", s.synthesize},
	}
	return s
}

// Perform runs every stage in order and stops at the first failure. No
// partial result is returned on error.
func (s *Service) Perform(ctx context.Context, prompt string) (*Performance, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrInvalidInput
	}

	p := &Performance{ID: uuid.New(), Prompt: prompt}
	for _, st := range s.stages {
		start := time.Now()
		if err := st.run(ctx, p); err != nil {
			slog.Debug("speech stage failed", "performance_id", p.ID, "stage", st.name, "error", err)
			return nil, fmt.Errorf("%s: %w", st.name, err)
		}
		slog.Debug("speech stage done",
			"performance_id", p.ID,
			"stage", st.name,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}

	slog.Info("speech performed",
		"performance_id", p.ID,
		"segments", len(p.Segments),
		"words", p.Words,
		"estimated_duration", p.Duration.Round(time.Second).String(),
		"provider", p.Usage.Provider,
		"cost_usd", p.Usage.CostUSD,
	)
	return p, nil
}

func (s *Service) generateText(ctx context.Context, p *Performance) error {
	resp, err := s.gw.Chat(ctx, llm.ChatRequest{
		Provider:    s.opts.Provider,
		Model:       s.opts.Model,
		Messages:    []llm.Message{llm.System(s.instruction), llm.User(p.Prompt)},
		Temperature: s.opts.Temperature,
		MaxTokens:   s.opts.MaxTokens,
	})
	if err != nil {
		return err
	}

	p.Usage = Usage{
		Provider:     resp.Provider,
		Model:        resp.Model,
		InputTokens:  resp.InputTokens,
		OutputTokens: resp.OutputTokens,
		CostUSD:      resp.CostUSD,
	}

	p.Transcript = strings.TrimSpace(resp.Content)
	if p.Transcript == "" {
		return ErrEmptyGeneration
	}
	return nil
}

func (s *Service) normalize(_ context.Context, p *Performance) error {
	p.Transcript = Normalize(p.Transcript)
	p.Words = tokenizer.CountWords(p.Transcript)
	p.Duration = tokenizer.EstimateDuration(p.Words)
	slog.Debug("speech normalized",
		"performance_id", p.ID,
		"words", p.Words,
		"sentences", chunker.CountSentences(p.Transcript),
		"cues", CountCues(p.Transcript),
	)
	return nil
}

func (s *Service) enforceCue(_ context.Context, p *Performance) error {
	p.Transcript = EnforceSingleCue(p.Transcript)
	return nil
}

// check records rule violations in the generated text. It never fails the
// request.
func (s *Service) check(ctx context.Context, p *Performance) error {
	res, err := s.checks.Check(ctx, p.Transcript)
	if err != nil {
		return err
	}
	p.Flags = res.Flags
	if len(res.Flags) > 0 {
		slog.Warn("speech drifted from delivery rules", "performance_id", p.ID, "flags", res.Flags)
	}
	return nil
}

func (s *Service) segment(_ context.Context, p *Performance) error {
	p.Segments = Segment(p.Transcript)
	if len(p.Segments) == 0 {
		return ErrEmptySpeech
	}
	return nil
}

// synthesize voices segments one at a time, in order.
func (s *Service) synthesize(ctx context.Context, p *Performance) error {
	audios := make([][]byte, 0, len(p.Segments))
	for i, seg := range p.Segments {
		res, err := s.voice.Synthesize(ctx, tts.SynthesisRequest{Text: seg, VoiceID: s.opts.VoiceID})
		if err != nil {
			return fmt.Errorf("segment %d: %w", i, err)
		}
		audios = append(audios, res.Audio)
	}
	p.Audios = audios
	return nil
}
