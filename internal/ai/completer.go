package ai

import (
	"context"
	"fmt"

	"github.com/liushuangls/go-anthropic/v2"
	"github.com/sashabaranov/go-openai"

	"github.com/TolgaCulfa/sunum2/internal/config"
)

// Completer sends one prompt to the content provider and returns raw text.
// The text may be non-JSON or fenced; callers own decoding.
type Completer interface {
	Complete(ctx context.Context, modelCode, prompt string) (string, error)
}

const (
	generationTemperature = 0.7
	completionMaxTokens   = 4000
)

// NewCompleter builds a provider client from config. "openai" covers any
// OpenAI-compatible API (the default points at Mistral).
func NewCompleter(cfg config.ProviderConfig) (Completer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("provider API key is required")
	}

	switch cfg.Type {
	case "", "openai":
		c := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			c.BaseURL = cfg.BaseURL
		}
		return &openAICompleter{client: openai.NewClientWithConfig(c)}, nil
	case "anthropic":
		return &anthropicCompleter{client: anthropic.NewClient(cfg.APIKey)}, nil
	default:
		return nil, fmt.Errorf("unknown provider type: %q", cfg.Type)
	}
}

type openAICompleter struct {
	client *openai.Client
}

func (p *openAICompleter) Complete(ctx context.Context, modelCode, prompt string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: modelCode,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: generationTemperature,
		MaxTokens:   completionMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai API returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

type anthropicCompleter struct {
	client *anthropic.Client
}

func (p *anthropicCompleter) Complete(ctx context.Context, modelCode, prompt string) (string, error) {
	resp, err := p.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model: anthropic.Model(modelCode),
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(prompt),
		},
		MaxTokens: completionMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}
	for _, c := range resp.Content {
		if c.Type == anthropic.MessagesContentTypeText {
			return c.GetText(), nil
		}
	}
	return "", fmt.Errorf("anthropic API returned no text content")
}
