package ai

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultAnthropicModel = "claude-sonnet-4-5-20250901"

// AnthropicProvider suggests resolutions using Anthropic's Claude models.
type AnthropicProvider struct {
	client    *anthropic.Client
	model     string
	maxTokens int64
}

var _ Provider = (*AnthropicProvider)(nil)

// NewAnthropicProvider creates a provider from the given options. The API key
// is required; model and max tokens fall back to defaults when zero.
func NewAnthropicProvider(opts ProviderOptions) (*AnthropicProvider, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("anthropic: API key is required")
	}
	if opts.Model == "" {
		opts.Model = defaultAnthropicModel
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = defaultMaxTokens
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(opts.APIKey)}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}

	client := anthropic.NewClient(reqOpts...)
	return &AnthropicProvider{
		client:    &client,
		model:     opts.Model,
		maxTokens: int64(opts.MaxTokens),
	}, nil
}

// Name returns "anthropic".
func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

// Suggest asks the model for a merged candidate.
func (p *AnthropicProvider) Suggest(ctx context.Context, req *Request) (*Suggestion, error) {
	content, err := p.generate(ctx, systemPrompt, req)
	if err != nil {
		return nil, fmt.Errorf("anthropic suggest: %w", err)
	}
	return parseSuggestion(content), nil
}

// Explain asks the model to describe the conflict without resolving it.
func (p *AnthropicProvider) Explain(ctx context.Context, req *Request) (string, error) {
	content, err := p.generate(ctx, explainPrompt, req)
	if err != nil {
		return "", fmt.Errorf("anthropic explain: %w", err)
	}
	return content, nil
}

func (p *AnthropicProvider) generate(ctx context.Context, system string, req *Request) (string, error) {
	msg, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: p.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(req))),
		},
	})
	if err != nil {
		return "", err
	}

	var content string
	for _, block := range msg.Content {
		if b, ok := block.AsAny().(anthropic.TextBlock); ok {
			content += b.Text
		}
	}
	return content, nil
}
