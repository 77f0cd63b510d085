package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const openRouterURL = "https://openrouter.ai/api/v1"

const systemPrompt = "You are a meticulous senior software engineer performing pull request reviews. " +
	"You always answer with a single JSON object and nothing else."

// OpenAI implements Generator for OpenAI-compatible chat completion APIs.
type OpenAI struct {
	name      string
	client    openai.Client
	model     string
	maxTokens int
}

// NewOpenAI creates an OpenAI provider. Calls are made once; the client's
// built-in retries are disabled.
func NewOpenAI(cfg Config) *OpenAI {
	return newChatCompletions("openai", cfg)
}

// NewOpenRouter creates a provider for OpenRouter's OpenAI-compatible API.
func NewOpenRouter(cfg Config) *OpenAI {
	if cfg.BaseURL == "" {
		cfg.BaseURL = openRouterURL
	}
	return newChatCompletions("openrouter", cfg, option.WithHeader("X-Title", "prreview"))
}

func newChatCompletions(name string, cfg Config, extra ...option.RequestOption) *OpenAI {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(cfg.Timeout),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	opts = append(opts, extra...)

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	return &OpenAI{
		name:      name,
		client:    openai.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: maxTokens,
	}
}

func (o *OpenAI) Name() string { return o.name }

func (o *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: o.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		MaxTokens: openai.Int(int64(o.maxTokens)),
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) &&
			(apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden) {
			return "", &authError{message: apiErr.Message}
		}
		return "", fmt.Errorf("%s chat completion: %w", o.name, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty text content in API response")
	}
	return content, nil
}
