package llm

import (
	"context"
	"fmt"

	configpkg "github.com/minhyannv/llm-chat-go/pkg/config"
	"google.golang.org/genai"
)

type geminiClient struct {
	baseClient
	client *genai.Client
}

func newGeminiClient(ctx context.Context, cfg configpkg.Config, base baseClient) (*geminiClient, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &geminiClient{baseClient: base, client: client}, nil
}

// Complete sends prompt with the windowed history to GenerateContent.
func (c *geminiClient) Complete(ctx context.Context, prompt string, history History) (Reply, error) {
	sent := c.window(history)
	c.debug("gemini generate", map[string]any{"model": c.model, "turns": len(sent)})

	resp, err := c.client.Models.GenerateContent(ctx, c.model, toGeminiContents(sent, prompt), c.generateConfig())
	if err != nil {
		return Reply{}, err
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return Reply{}, ErrEmptyCompletion
	}
	// Blocked candidates carry a finish reason and no parts.
	text := resp.Text()
	if text == "" {
		return Reply{}, fmt.Errorf("%w: finish_reason=%s", ErrEmptyCompletion, resp.Candidates[0].FinishReason)
	}
	return c.reply(sent, prompt, text), nil
}

func (c *geminiClient) generateConfig() *genai.GenerateContentConfig {
	if c.systemPrompt == "" {
		return nil
	}
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(c.systemPrompt)},
		},
	}
}

// toGeminiContents converts history plus the new prompt into request contents.
func toGeminiContents(history History, prompt string) []*genai.Content {
	out := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		out = append(out, &genai.Content{
			Role:  string(turn.Role),
			Parts: []*genai.Part{genai.NewPartFromText(turn.Text)},
		})
	}
	return append(out, &genai.Content{
		Role:  string(RoleUser),
		Parts: []*genai.Part{genai.NewPartFromText(prompt)},
	})
}
