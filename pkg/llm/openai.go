package llm

import (
	"context"

	configpkg "github.com/minhyannv/llm-chat-go/pkg/config"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type openAIClient struct {
	baseClient
	client openai.Client
}

// newOpenAIClient builds a client with configuration from Config.
func newOpenAIClient(cfg configpkg.Config, base baseClient) *openAIClient {
	opts := []option.RequestOption{option.WithMaxRetries(0)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	return &openAIClient{baseClient: base, client: openai.NewClient(opts...)}
}

// Complete performs one chat completion request.
func (c *openAIClient) Complete(ctx context.Context, prompt string, history History) (Reply, error) {
	sent := c.window(history)
	c.debug("openai chat completion", map[string]any{"model": c.model, "turns": len(sent)})

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: toOpenAIMessages(c.systemPrompt, sent, prompt),
	}
	if c.maxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(c.maxTokens)
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return Reply{}, err
	}
	if len(completion.Choices) == 0 {
		return Reply{}, ErrEmptyCompletion
	}
	text := completion.Choices[0].Message.Content
	if text == "" {
		return Reply{}, ErrEmptyCompletion
	}
	return c.reply(sent, prompt, text), nil
}

func toOpenAIMessages(systemPrompt string, history History, prompt string) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2)
	if systemPrompt != "" {
		out = append(out, openai.SystemMessage(systemPrompt))
	}
	for _, turn := range history {
		if turn.Role == RoleModel {
			out = append(out, openai.AssistantMessage(turn.Text))
			continue
		}
		out = append(out, openai.UserMessage(turn.Text))
	}
	return append(out, openai.UserMessage(prompt))
}
