package tts

import (
	"context"
	"strings"

	"github.com/cybergod-duck/rallyspeech/internal/config"
)

// SynthesisRequest holds the parameters for one text-to-speech call.
type SynthesisRequest struct {
	Text    string `json:"text"`
	VoiceID string `json:"voice_id"`
}

// SynthesisResult holds the generated audio and its content type.
type SynthesisResult struct {
	Audio       []byte
	ContentType string
}

// Provider is the interface for text-to-speech backends.
type Provider interface {
	Synthesize(ctx context.Context, req SynthesisRequest) (*SynthesisResult, error)
	Name() string
}

// New returns the backend named by cfg.Backend. openAIKey is only used by the
// openai backend.
func New(cfg config.TTSConfig, openAIKey, openAIBaseURL string) Provider {
	if strings.EqualFold(cfg.Backend, "openai") {
		return NewOpenAITTS(OpenAITTSConfig{APIKey: openAIKey, BaseURL: openAIBaseURL, Model: cfg.OpenAIModel})
	}
	return NewElevenLabs(ElevenLabsConfig{
		APIKey:          cfg.ElevenLabsKey,
		BaseURL:         cfg.ElevenLabsURL,
		ModelID:         cfg.Model,
		OutputFormat:    cfg.OutputFormat,
		Stability:       cfg.Stability,
		SimilarityBoost: cfg.SimilarityBoost,
		Style:           cfg.Style,
		SpeakerBoost:    cfg.SpeakerBoost,
	})
}
