package llm

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	configpkg "github.com/minhyannv/llm-chat-go/pkg/config"
)

type anthropicClient struct {
	baseClient
	client anthropic.Client
}

func newAnthropicClient(cfg configpkg.Config, base baseClient) *anthropicClient {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if base.maxTokens <= 0 {
		base.maxTokens = defaultMaxTokens
	}
	return &anthropicClient{baseClient: base, client: anthropic.NewClient(opts...)}
}

// Complete sends one Messages API request and joins the returned text blocks.
func (c *anthropicClient) Complete(ctx context.Context, prompt string, history History) (Reply, error) {
	sent := c.window(history)
	c.debug("anthropic messages", map[string]any{"model": c.model, "turns": len(sent)})

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages:  toAnthropicMessages(sent, prompt),
	}
	if c.systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: c.systemPrompt},
		}
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return Reply{}, err
	}

	var text strings.Builder
	blocks := 0
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
			blocks++
		}
	}
	if blocks == 0 {
		return Reply{}, ErrEmptyCompletion
	}
	return c.reply(sent, prompt, text.String()), nil
}

func toAnthropicMessages(history History, prompt string) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(history)+1)
	for _, turn := range history {
		block := anthropic.NewTextBlock(turn.Text)
		if turn.Role == RoleModel {
			out = append(out, anthropic.NewAssistantMessage(block))
			continue
		}
		out = append(out, anthropic.NewUserMessage(block))
	}
	return append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)))
}
