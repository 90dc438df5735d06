package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/cybergod-duck/rallyspeech/internal/provider"
)

// OpenAIProvider speaks the OpenAI chat-completion protocol. Groq exposes the
// same protocol, so both are served by this type with different base URLs.
type OpenAIProvider struct {
	client *openai.Client
	name   string
	label  string
	models []string
}

func NewOpenAIProvider(apiKey, baseURL string) *OpenAIProvider {
	return newOpenAICompatible("openai", "OpenAI", apiKey, baseURL,
		[]string{"gpt-4o", "gpt-4o-mini", "gpt-4-turbo"})
}

func NewGroqProvider(apiKey, baseURL string) *OpenAIProvider {
	return newOpenAICompatible("groq", "Groq", apiKey, baseURL,
		[]string{"llama-3.3-70b-versatile", "llama-3.1-8b-instant"})
}

func newOpenAICompatible(name, label, apiKey, baseURL string, models []string) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = provider.HTTPClient(label)
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(cfg),
		name:   name,
		label:  label,
		models: models,
	}
}

func (p *OpenAIProvider) Name() string { return p.name }

func (p *OpenAIProvider) Models() []string { return p.models }

func (p *OpenAIProvider) ChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	start := time.Now()

	msgs := make([]openai.ChatCompletionMessage, len(req.Messages))
	for i, m := range req.Messages {
		msgs[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}

	oReq := openai.ChatCompletionRequest{
		Model:    req.Model,
		Messages: msgs,
	}
	if req.Temperature > 0 {
		oReq.Temperature = float32(req.Temperature)
	}
	if req.MaxTokens > 0 {
		oReq.MaxTokens = req.MaxTokens
	}

	resp, err := p.client.CreateChatCompletion(ctx, oReq)
	if err != nil {
		return nil, p.translateError(err)
	}

	content := ""
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
	}

	return &ChatResponse{
		ID:           resp.ID,
		Provider:     p.name,
		Model:        resp.Model,
		Content:      content,
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
		TotalTokens:  resp.Usage.TotalTokens,
		CostUSD:      CalculateCost(req.Model, resp.Usage.PromptTokens, resp.Usage.CompletionTokens),
		LatencyMs:    time.Since(start).Milliseconds(),
	}, nil
}

// translateError turns HTTP-level SDK failures into provider errors so callers
// see the upstream status and body.
func (p *OpenAIProvider) translateError(err error) error {
	if pe, ok := provider.AsError(err); ok {
		return pe
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return &provider.Error{Provider: p.label, StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		body := string(reqErr.Body)
		if body == "" {
			body = reqErr.HTTPStatus
		}
		return &provider.Error{Provider: p.label, StatusCode: reqErr.HTTPStatusCode, Body: body}
	}
	return fmt.Errorf("%s chat: %w", p.name, err)
}
