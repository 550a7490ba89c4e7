package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	configpkg "github.com/minhyannv/llm-chat-go/pkg/config"
	"github.com/minhyannv/llm-chat-go/pkg/llm"
	loggerpkg "github.com/minhyannv/llm-chat-go/pkg/logger"
)

type stubCompleter struct {
	text  string
	err   error
	calls int
}

func (s *stubCompleter) Complete(_ context.Context, prompt string, history llm.History) (llm.Reply, error) {
	s.calls++
	if s.err != nil {
		return llm.Reply{}, s.err
	}
	return llm.Reply{
		Text:    s.text,
		History: history.Append(llm.RoleUser, prompt).Append(llm.RoleModel, s.text),
	}, nil
}

func factoryFor(c llm.Completer) clientFactory {
	return func(context.Context, configpkg.Config, ...llm.Option) (llm.Completer, error) {
		return c, nil
	}
}

func runWith(t *testing.T, c llm.Completer, input string) (int, string, string) {
	t.Helper()
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "test-key")
	var out, errOut bytes.Buffer
	code := run(context.Background(), nil, strings.NewReader(input), &out, &errOut, factoryFor(c))
	return code, out.String(), errOut.String()
}

func TestRunExitKeywordExitsZero(t *testing.T) {
	stub := &stubCompleter{text: "Hi there."}
	code, out, errOut := runWith(t, stub, "hello\nBye\n")
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr %q)", code, errOut)
	}
	if stub.calls != 1 {
		t.Fatalf("expected one completion call, got %d", stub.calls)
	}
	if !strings.Contains(out, "  - Hi there.\n") || !strings.Contains(out, "Have a great day!") {
		t.Fatalf("unexpected stdout %q", out)
	}
	if strings.Contains(errOut, "Error:") {
		t.Fatalf("unexpected error output %q", errOut)
	}
}

func TestRunCompletionFailureExitsOne(t *testing.T) {
	stub := &stubCompleter{err: errors.New("quota exceeded")}
	code, out, errOut := runWith(t, stub, "hello\n")
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(errOut, "Error: complete: quota exceeded") {
		t.Fatalf("expected error on stderr, got %q", errOut)
	}
	if strings.Contains(out, "--------------") {
		t.Fatalf("expected no reply block, got %q", out)
	}
}

func TestRunClientInitFailureExitsOne(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "test-key")
	var out, errOut bytes.Buffer
	failing := func(context.Context, configpkg.Config, ...llm.Option) (llm.Completer, error) {
		return nil, errors.New("bad credentials")
	}
	code := run(context.Background(), nil, strings.NewReader("hello\n"), &out, &errOut, failing)
	if code != 1 || !strings.Contains(errOut.String(), "Error: bad credentials") {
		t.Fatalf("expected init failure on stderr with code 1, got %d %q", code, errOut.String())
	}
}

func TestLoadPersonaDefaultsToModelLabel(t *testing.T) {
	p, err := loadPersona(configpkg.Config{}, "gemini-2.5-flash", loggerpkg.NopLogger{})
	if err != nil {
		t.Fatalf("loadPersona: %v", err)
	}
	if p.AssistantLabel != "♊ gemini-2.5-flash" {
		t.Fatalf("unexpected assistant label %q", p.AssistantLabel)
	}
}

func TestLoadPersonaFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "PERSONA.md")
	content := "---\nfarewell: See you.\n---\nAnswer in one sentence.\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write persona: %v", err)
	}

	p, err := loadPersona(configpkg.Config{PersonaPath: path}, "gpt-4o-mini", loggerpkg.NopLogger{})
	if err != nil {
		t.Fatalf("loadPersona: %v", err)
	}
	if p.Farewell != "See you." || p.SystemPrompt != "Answer in one sentence." {
		t.Fatalf("unexpected persona: %+v", p)
	}
	if p.AssistantLabel != "♊ gpt-4o-mini" {
		t.Fatalf("expected default assistant label, got %q", p.AssistantLabel)
	}
}

func TestLoadPersonaWarnsWithoutSystemPrompt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "PERSONA.md")
	if err := os.WriteFile(path, []byte("---\nname: bare\n---\n"), 0o644); err != nil {
		t.Fatalf("write persona: %v", err)
	}

	var buf bytes.Buffer
	if _, err := loadPersona(configpkg.Config{PersonaPath: path}, "m", loggerpkg.NewWriterLogger(&buf)); err != nil {
		t.Fatalf("loadPersona: %v", err)
	}
	if !strings.Contains(buf.String(), "WRN") || !strings.Contains(buf.String(), "persona has no system prompt") {
		t.Fatalf("expected warning, got %q", buf.String())
	}
}

func TestLoadPersonaMissingFile(t *testing.T) {
	_, err := loadPersona(configpkg.Config{PersonaPath: filepath.Join(t.TempDir(), "nope.md")}, "m", nil)
	if err == nil {
		t.Fatal("expected error for missing persona file")
	}
}
