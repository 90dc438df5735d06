package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cybergod-duck/rallyspeech/internal/config"
	"github.com/cybergod-duck/rallyspeech/pkg/tokenizer"
)

type gateway struct {
	providers       map[string]Provider
	defaultProvider string
}

// NewGateway registers a provider for every credential present in cfg.
// Calls are made once; a failed call is returned to the caller as is.
func NewGateway(cfg config.LLMConfig) Gateway {
	g := &gateway{
		providers:       make(map[string]Provider),
		defaultProvider: strings.ToLower(cfg.Provider),
	}

	if cfg.GroqKey != "" {
		g.Register(NewGroqProvider(cfg.GroqKey, cfg.GroqBaseURL))
	}
	if cfg.OpenAIKey != "" {
		g.Register(NewOpenAIProvider(cfg.OpenAIKey, cfg.OpenAIURL))
	}
	if cfg.AnthropicKey != "" {
		g.Register(NewAnthropicProvider(cfg.AnthropicKey))
	}

	return g
}

// NewGatewayWith builds a gateway over explicit providers; the first one is the default.
func NewGatewayWith(providers ...Provider) Gateway {
	g := &gateway{providers: make(map[string]Provider)}
	for _, p := range providers {
		g.Register(p)
	}
	if len(providers) > 0 {
		g.defaultProvider = providers[0].Name()
	}
	return g
}

func (g *gateway) Register(p Provider) {
	g.providers[p.Name()] = p
}

func (g *gateway) Provider(name string) (Provider, error) {
	p, ok := g.providers[name]
	if !ok {
		return nil, fmt.Errorf("provider %q not configured", name)
	}
	return p, nil
}

func (g *gateway) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	providerName := req.Provider
	if providerName == "" {
		providerName = g.defaultProvider
	}

	p, err := g.Provider(providerName)
	if err != nil {
		return nil, err
	}
	if req.Model == "" {
		if models := p.Models(); len(models) > 0 {
			req.Model = models[0]
		}
	}

	resp, err := p.ChatCompletion(ctx, req)
	if err != nil {
		return nil, err
	}

	estimated := false
	if resp.TotalTokens == 0 {
		// some OpenAI-compatible servers omit usage
		estimateUsage(req, resp)
		estimated = true
	}

	slog.Info("llm usage",
		"provider", resp.Provider,
		"model", resp.Model,
		"input_tokens", resp.InputTokens,
		"output_tokens", resp.OutputTokens,
		"cost_usd", resp.CostUSD,
		"latency_ms", resp.LatencyMs,
		"estimated", estimated,
	)
	return resp, nil
}

func estimateUsage(req ChatRequest, resp *ChatResponse) {
	for _, m := range req.Messages {
		resp.InputTokens += tokenizer.CountTokens(m.Content)
	}
	resp.OutputTokens = tokenizer.CountTokens(resp.Content)
	resp.TotalTokens = resp.InputTokens + resp.OutputTokens
	resp.CostUSD = CalculateCost(resp.Model, resp.InputTokens, resp.OutputTokens)
}

func (g *gateway) ListModels() []ModelInfo {
	var models []ModelInfo
	for _, p := range g.providers {
		for _, m := range p.Models() {
			models = append(models, ModelInfo{Provider: p.Name(), Model: m})
		}
	}
	return models
}
