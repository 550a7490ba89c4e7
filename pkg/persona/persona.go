// Package persona loads the display labels and system instruction for a chat session.
package persona

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultUserLabel = "👨🏾‍💻 You"
	defaultFarewell  = "❤️ Have a great day! ❤️"
)

// Persona describes how the session presents itself.
type Persona struct {
	Name           string
	UserLabel      string
	AssistantLabel string
	Farewell       string
	SystemPrompt   string
	FilePath       string
}

// Labels are the strings the conversation loop prints around each exchange.
type Labels struct {
	Prompt   string
	Header   string
	Farewell string
}

// personaFrontMatter mirrors the YAML front matter in PERSONA.md.
type personaFrontMatter struct {
	Name           string `yaml:"name"`
	UserLabel      string `yaml:"user_label"`
	AssistantLabel string `yaml:"assistant_label"`
	Farewell       string `yaml:"farewell"`
}

// Default returns the built-in persona for model.
func Default(model string) Persona {
	model = strings.TrimSpace(model)
	if model == "" {
		model = "Assistant"
	}
	return Persona{
		Name:           "default",
		UserLabel:      defaultUserLabel,
		AssistantLabel: "♊ " + model,
		Farewell:       defaultFarewell,
	}
}

// Labels returns the loop labels for p. Both the prompt and the reply header
// end with a colon.
func (p Persona) Labels() Labels {
	return Labels{
		Prompt:   strings.TrimSuffix(p.UserLabel, ":") + ": ",
		Header:   strings.TrimSuffix(p.AssistantLabel, ":") + ":",
		Farewell: p.Farewell,
	}
}

// Load parses a PERSONA.md file. Fields absent from the front matter keep the
// values from fallback; the body after the front matter becomes the system prompt.
func Load(path string, fallback Persona) (Persona, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Persona{}, err
	}

	fm, body, err := parseFrontMatter(content)
	if err != nil {
		return Persona{}, fmt.Errorf("parse %s: %w", path, err)
	}

	p := fallback
	p.FilePath = path
	if v := strings.TrimSpace(fm.Name); v != "" {
		p.Name = v
	}
	if v := strings.TrimSpace(fm.UserLabel); v != "" {
		p.UserLabel = v
	}
	if v := strings.TrimSpace(fm.AssistantLabel); v != "" {
		p.AssistantLabel = v
	}
	if v := strings.TrimSpace(fm.Farewell); v != "" {
		p.Farewell = v
	}
	if body = strings.TrimSpace(body); body != "" {
		p.SystemPrompt = body
	}
	return p, nil
}

// parseFrontMatter splits YAML front matter from the markdown body.
func parseFrontMatter(content []byte) (personaFrontMatter, string, error) {
	lines := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[0]) != "---" {
		return personaFrontMatter{}, "", fmt.Errorf("missing YAML front matter")
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			end = i
			break
		}
	}
	if end == -1 {
		return personaFrontMatter{}, "", fmt.Errorf("unterminated YAML front matter")
	}

	fmText := strings.Join(lines[1:end], "\n")
	var fm personaFrontMatter
	if err := yaml.Unmarshal([]byte(fmText), &fm); err != nil {
		return personaFrontMatter{}, "", err
	}
	return fm, strings.Join(lines[end+1:], "\n"), nil
}
