package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Server ServerConfig `toml:"server"`
	LLM    LLMConfig    `toml:"llm"`
	TTS    TTSConfig    `toml:"tts"`
}

type ServerConfig struct {
	Host           string   `toml:"host" env:"SERVER_HOST"`
	Port           int      `toml:"port" env:"SERVER_PORT"`
	LogLevel       string   `toml:"log_level" env:"LOG_LEVEL"`
	AllowedOrigins []string `toml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

// LLMConfig selects the text provider. Groq is reached through its
// OpenAI-compatible endpoint.
type LLMConfig struct {
	Provider     string  `toml:"provider" env:"LLM_PROVIDER"` // groq, openai, anthropic
	GroqKey      string  `toml:"-" env:"GROQ_API_KEY"`
	GroqBaseURL  string  `toml:"groq_base_url" env:"GROQ_BASE_URL"`
	OpenAIKey    string  `toml:"-" env:"OPENAI_API_KEY"`
	OpenAIURL    string  `toml:"openai_base_url" env:"OPENAI_BASE_URL"`
	AnthropicKey string  `toml:"-" env:"ANTHROPIC_API_KEY"`
	Model        string  `toml:"model" env:"LLM_MODEL"` // empty: the provider's first model
	Temperature  float64 `toml:"temperature" env:"LLM_TEMPERATURE"`
	MaxTokens    int     `toml:"max_tokens" env:"LLM_MAX_TOKENS"`
}

type TTSConfig struct {
	Backend         string  `toml:"backend" env:"TTS_BACKEND"` // elevenlabs, openai
	ElevenLabsKey   string  `toml:"-" env:"ELEVENLABS_API_KEY"`
	ElevenLabsURL   string  `toml:"elevenlabs_base_url" env:"ELEVENLABS_BASE_URL"`
	VoiceID         string  `toml:"voice_id" env:"ELEVENLABS_VOICE_ID"`
	Model           string  `toml:"model" env:"TTS_MODEL"`
	OpenAIModel     string  `toml:"openai_model" env:"TTS_OPENAI_MODEL"`
	OutputFormat    string  `toml:"output_format" env:"TTS_OUTPUT_FORMAT"`
	Stability       float64 `toml:"stability" env:"TTS_STABILITY"`
	SimilarityBoost float64 `toml:"similarity_boost" env:"TTS_SIMILARITY_BOOST"`
	Style           float64 `toml:"style" env:"TTS_STYLE"`
	SpeakerBoost    bool    `toml:"speaker_boost" env:"TTS_SPEAKER_BOOST"`
}

// Defaults returns the values the service runs with when nothing overrides them.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			LogLevel:       "info",
			AllowedOrigins: []string{"*"},
		},
		LLM: LLMConfig{
			Provider:    "groq",
			GroqBaseURL: "https://api.groq.com/openai/v1",
			Temperature: 0.8,
			MaxTokens:   900,
		},
		TTS: TTSConfig{
			Backend:         "elevenlabs",
			ElevenLabsURL:   "https://api.elevenlabs.io/v1",
			Model:           "eleven_multilingual_v3",
			OutputFormat:    "mp3_44100_128",
			Stability:       0.3,
			SimilarityBoost: 0.85,
			Style:           0.6,
			SpeakerBoost:    true,
		},
	}
}

// Load builds the configuration from defaults, an optional TOML file named by
// CONFIG_FILE, a .env file and the process environment, in that order.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// SlogLevel maps Server.LogLevel onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Server.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// TextProviderKey returns the credential of the configured text provider.
func (c *Config) TextProviderKey() string {
	switch strings.ToLower(c.LLM.Provider) {
	case "openai":
		return c.LLM.OpenAIKey
	case "anthropic":
		return c.LLM.AnthropicKey
	default:
		return c.LLM.GroqKey
	}
}

// Validate reports the secrets a speech request cannot run without.
func (c *Config) Validate() error {
	var missing []string
	if c.TextProviderKey() == "" {
		missing = append(missing, textKeyEnv(c.LLM.Provider))
	}
	switch strings.ToLower(c.TTS.Backend) {
	case "openai":
		if c.LLM.OpenAIKey == "" && !containsString(missing, "OPENAI_API_KEY") {
			missing = append(missing, "OPENAI_API_KEY")
		}
	default:
		if c.TTS.ElevenLabsKey == "" {
			missing = append(missing, "ELEVENLABS_API_KEY")
		}
	}
	if c.TTS.VoiceID == "" {
		missing = append(missing, "ELEVENLABS_VOICE_ID")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	return nil
}

func textKeyEnv(provider string) string {
	switch strings.ToLower(provider) {
	case "openai":
		return "OPENAI_API_KEY"
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	default:
		return "GROQ_API_KEY"
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
