// Package llm adapts vendor chat SDKs to a single completion call that takes
// and returns an explicit conversation history.
package llm

import (
	"context"
	"errors"
	"fmt"

	configpkg "github.com/minhyannv/llm-chat-go/pkg/config"
	loggerpkg "github.com/minhyannv/llm-chat-go/pkg/logger"
)

// Role is the author of one conversation turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Default models per provider.
const (
	DefaultGeminiModel    = "gemini-2.5-flash"
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultAnthropicModel = "claude-sonnet-4-20250514"
)

const defaultMaxTokens = 4096

// ErrEmptyCompletion is returned when the provider answers without any content.
var ErrEmptyCompletion = errors.New("empty completion")

// Turn is one message of the conversation.
type Turn struct {
	Role Role
	Text string
}

// History is the ordered record of prior turns.
type History []Turn

// Append returns a new history with one more turn. The receiver is not modified.
func (h History) Append(role Role, text string) History {
	out := make(History, 0, len(h)+1)
	out = append(out, h...)
	return append(out, Turn{Role: role, Text: text})
}

// Window keeps at most maxTurns recent turns. A window never opens on a model
// turn, so an odd maxTurns holds one exchange fewer than it could; config
// rounds it up to an even count. maxTurns <= 0 keeps everything.
func (h History) Window(maxTurns int) History {
	if maxTurns <= 0 || len(h) <= maxTurns {
		return h
	}
	out := h[len(h)-maxTurns:]
	for len(out) > 0 && out[0].Role != RoleUser {
		out = out[1:]
	}
	return out
}

// Reply is the result of one completion.
type Reply struct {
	Text    string
	History History
}

// Completer maps a prompt plus conversation state to generated text.
type Completer interface {
	Complete(ctx context.Context, prompt string, history History) (Reply, error)
}

// Option configures optional client dependencies.
type Option func(*clientDeps)

type clientDeps struct {
	logger       loggerpkg.Logger
	systemPrompt string
	maxTokens    int64
}

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger) Option {
	return func(d *clientDeps) {
		d.logger = l
	}
}

// WithSystemPrompt sets the system instruction sent with every request.
func WithSystemPrompt(prompt string) Option {
	return func(d *clientDeps) {
		d.systemPrompt = prompt
	}
}

// WithMaxTokens caps the reply length for providers that accept a limit.
func WithMaxTokens(n int64) Option {
	return func(d *clientDeps) {
		d.maxTokens = n
	}
}

// DefaultModel returns the model used when none is configured.
func DefaultModel(provider string) string {
	switch provider {
	case configpkg.ProviderOpenAI:
		return DefaultOpenAIModel
	case configpkg.ProviderAnthropic:
		return DefaultAnthropicModel
	default:
		return DefaultGeminiModel
	}
}

// New builds the completion client for cfg.Provider. The client lives for the
// whole process; credentials are configured once here.
func New(ctx context.Context, cfg configpkg.Config, opts ...Option) (Completer, error) {
	cfg = configpkg.Normalize(cfg)
	if err := configpkg.Validate(cfg); err != nil {
		return nil, err
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel(cfg.Provider)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	deps := clientDeps{logger: loggerpkg.NopLogger{}, maxTokens: defaultMaxTokens}
	for _, opt := range opts {
		if opt != nil {
			opt(&deps)
		}
	}

	loggerpkg.Debug(cfg.Verbose, deps.logger, "llm client init", map[string]any{
		"provider":      cfg.Provider,
		"model":         cfg.Model,
		"base_url":      cfg.BaseURL,
		"max_history":   cfg.MaxHistoryTurns,
		"system_prompt": len(deps.systemPrompt),
	})

	base := baseClient{
		model:        cfg.Model,
		systemPrompt: deps.systemPrompt,
		maxHistory:   cfg.MaxHistoryTurns,
		maxTokens:    deps.maxTokens,
		logger:       deps.logger,
		verbose:      cfg.Verbose,
	}

	switch cfg.Provider {
	case configpkg.ProviderGemini:
		return newGeminiClient(ctx, cfg, base)
	case configpkg.ProviderOpenAI:
		return newOpenAIClient(cfg, base), nil
	case configpkg.ProviderAnthropic:
		return newAnthropicClient(cfg, base), nil
	default:
		return nil, fmt.Errorf("%w: %q", configpkg.ErrUnknownProvider, cfg.Provider)
	}
}

// baseClient carries the settings every provider shares.
type baseClient struct {
	model        string
	systemPrompt string
	maxHistory   int
	maxTokens    int64
	logger       loggerpkg.Logger
	verbose      bool
}

// window returns the windowed history that accompanies the next prompt.
func (b baseClient) window(history History) History {
	return history.Window(b.maxHistory)
}

// reply records the exchange and trims the stored history to the window.
func (b baseClient) reply(sent History, prompt, text string) Reply {
	updated := sent.Append(RoleUser, prompt).Append(RoleModel, text)
	return Reply{Text: text, History: updated.Window(b.maxHistory)}
}

func (b baseClient) debug(msg string, obj any) {
	loggerpkg.Debug(b.verbose, b.logger, msg, obj)
}
