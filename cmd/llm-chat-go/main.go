// Package main runs an interactive chat session against a hosted language model.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/minhyannv/llm-chat-go/pkg/chat"
	configpkg "github.com/minhyannv/llm-chat-go/pkg/config"
	"github.com/minhyannv/llm-chat-go/pkg/llm"
	loggerpkg "github.com/minhyannv/llm-chat-go/pkg/logger"
	"github.com/minhyannv/llm-chat-go/pkg/persona"
	"github.com/rs/zerolog"
)

// clientFactory builds the completion client; llm.New in production.
type clientFactory func(ctx context.Context, cfg configpkg.Config, opts ...llm.Option) (llm.Completer, error)

// main is the program entry point.
func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr, llm.New))
}

// run executes one session and returns the process exit code.
func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer, newClient clientFactory) int {
	cfg, err := parseCLIConfig(args, errOut)
	if err != nil {
		_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
		return 1
	}

	level := loggerpkg.ParseLevel(cfg.LogLevel)
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	appLogger := loggerpkg.NewLeveledLogger(errOut, level)

	if err := session(ctx, cfg, appLogger, in, out, newClient); err != nil {
		loggerpkg.Error(appLogger, "chat session failed", err)
		_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
		return 1
	}
	return 0
}

func session(ctx context.Context, cfg configpkg.Config, appLogger loggerpkg.Logger, in io.Reader, out io.Writer, newClient clientFactory) error {
	model := cfg.Model
	if model == "" {
		model = llm.DefaultModel(cfg.Provider)
	}
	p, err := loadPersona(cfg, model, appLogger)
	if err != nil {
		return err
	}
	loggerpkg.Debug(cfg.Verbose, appLogger, "persona ready", map[string]any{
		"name":          p.Name,
		"path":          p.FilePath,
		"system_prompt": len(p.SystemPrompt),
	})

	client, err := newClient(ctx, cfg,
		llm.WithLogger(appLogger),
		llm.WithSystemPrompt(p.SystemPrompt),
	)
	if err != nil {
		return err
	}
	loggerpkg.Info(appLogger, "completion client ready", map[string]any{
		"provider": cfg.Provider,
		"model":    model,
	})

	loop, err := chat.New(client,
		chat.WithLogger(appLogger),
		chat.WithVerbose(cfg.Verbose),
		chat.WithLabels(p.Labels()),
	)
	if err != nil {
		return err
	}
	return loop.Run(ctx, in, out)
}

func loadPersona(cfg configpkg.Config, model string, appLogger loggerpkg.Logger) (persona.Persona, error) {
	p := persona.Default(model)
	if cfg.PersonaPath == "" {
		return p, nil
	}
	loaded, err := persona.Load(cfg.PersonaPath, p)
	if err != nil {
		return persona.Persona{}, fmt.Errorf("load persona: %w", err)
	}
	if loaded.SystemPrompt == "" {
		loggerpkg.Warn(appLogger, "persona has no system prompt", map[string]any{
			"path": loaded.FilePath,
		})
	}
	return loaded, nil
}
