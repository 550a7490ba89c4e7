package main

import (
	"flag"
	"io"
	"strings"

	"github.com/joho/godotenv"
	configpkg "github.com/minhyannv/llm-chat-go/pkg/config"
)

// parseCLIConfig loads .env, flags, then environment into runtime config.
// Flags take precedence over environment variables.
func parseCLIConfig(args []string, errOut io.Writer) (configpkg.Config, error) {
	_ = godotenv.Load()

	defaults := configpkg.DefaultConfig()
	fs := flag.NewFlagSet("llm-chat-go", flag.ContinueOnError)
	fs.SetOutput(errOut)

	provider := fs.String("provider", defaults.Provider, "Completion provider: gemini, openai or anthropic (default from LLM_PROVIDER, then gemini)")
	model := fs.String("model", defaults.Model, "Model name (default from LLM_MODEL, then the provider default)")
	personaPath := fs.String("persona", defaults.PersonaPath, "Path to a PERSONA.md file with labels and system prompt")
	maxHistory := fs.Int("max_history", defaults.MaxHistoryTurns, "Max conversation turns sent with each prompt (0 = full transcript)")
	verbose := fs.Bool("verbose", defaults.Verbose, "Verbose debug logging")
	if err := fs.Parse(args); err != nil {
		return configpkg.Config{}, err
	}

	cfg := defaults
	cfg.Provider = strings.TrimSpace(*provider)
	cfg.Model = strings.TrimSpace(*model)
	cfg.PersonaPath = strings.TrimSpace(*personaPath)
	cfg.MaxHistoryTurns = *maxHistory
	cfg.Verbose = *verbose

	cfg, err := configpkg.LoadEnv(cfg)
	if err != nil {
		return configpkg.Config{}, err
	}
	return configpkg.Normalize(cfg), nil
}
