package ai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
)

const defaultOpenAIModel = "gpt-5.2-codex"

// OpenAIProvider suggests resolutions using OpenAI models via the Responses
// API.
type OpenAIProvider struct {
	client    *openai.Client
	model     string
	maxTokens int64
}

var _ Provider = (*OpenAIProvider)(nil)

// NewOpenAIProvider creates a provider from the given options. The API key is
// required; model and max tokens fall back to defaults when zero.
func NewOpenAIProvider(opts ProviderOptions) (*OpenAIProvider, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("openai: API key is required")
	}
	if opts.Model == "" {
		opts.Model = defaultOpenAIModel
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = defaultMaxTokens
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(opts.APIKey)}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}

	client := openai.NewClient(reqOpts...)
	return &OpenAIProvider{
		client:    &client,
		model:     opts.Model,
		maxTokens: int64(opts.MaxTokens),
	}, nil
}

// Name returns "openai".
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Suggest asks the model for a merged candidate.
func (p *OpenAIProvider) Suggest(ctx context.Context, req *Request) (*Suggestion, error) {
	content, err := p.generate(ctx, systemPrompt, req)
	if err != nil {
		return nil, fmt.Errorf("openai suggest: %w", err)
	}
	return parseSuggestion(content), nil
}

// Explain asks the model to describe the conflict without resolving it.
func (p *OpenAIProvider) Explain(ctx context.Context, req *Request) (string, error) {
	content, err := p.generate(ctx, explainPrompt, req)
	if err != nil {
		return "", fmt.Errorf("openai explain: %w", err)
	}
	return content, nil
}

func (p *OpenAIProvider) generate(ctx context.Context, system string, req *Request) (string, error) {
	input := responses.ResponseInputParam{
		responses.ResponseInputItemParamOfMessage(system, responses.EasyInputMessageRoleSystem),
		responses.ResponseInputItemParamOfMessage(buildPrompt(req), responses.EasyInputMessageRoleUser),
	}

	resp, err := p.client.Responses.New(ctx, responses.ResponseNewParams{
		Model:           shared.ResponsesModel(p.model),
		Input:           responses.ResponseNewParamsInputUnion{OfInputItemList: input},
		MaxOutputTokens: openai.Int(p.maxTokens),
	})
	if err != nil {
		return "", err
	}
	return resp.OutputText(), nil
}
