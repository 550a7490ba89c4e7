// Package chat runs the interactive prompt/reply loop.
package chat

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/minhyannv/llm-chat-go/pkg/llm"
	loggerpkg "github.com/minhyannv/llm-chat-go/pkg/logger"
	"github.com/minhyannv/llm-chat-go/pkg/persona"
)

const (
	headerRuleWidth = 14
	footerRuleWidth = 50
	bullet          = "  - "
)

var exitKeywords = map[string]struct{}{
	"exit": {},
	"quit": {},
	"bye":  {},
}

// IsExitKeyword reports whether input asks to end the session.
func IsExitKeyword(input string) bool {
	_, ok := exitKeywords[strings.ToLower(strings.TrimSpace(input))]
	return ok
}

// FormatReply renders a reply block: the header between two short rules, one
// bullet per non-blank line, and a closing rule followed by a blank line.
func FormatReply(header, reply string) string {
	var b strings.Builder
	rule := strings.Repeat("-", headerRuleWidth)
	b.WriteString(rule + "\n")
	b.WriteString(header + "\n")
	b.WriteString(rule + "\n")
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		b.WriteString(bullet + line + "\n")
	}
	b.WriteString(strings.Repeat("-", footerRuleWidth) + "\n\n")
	return b.String()
}

// Loop holds the conversation state for one process run.
type Loop struct {
	client  llm.Completer
	history llm.History
	labels  persona.Labels

	logger  loggerpkg.Logger
	verbose bool
}

// New builds a Loop around an initialized completion client.
func New(client llm.Completer, opts ...Option) (*Loop, error) {
	if client == nil {
		return nil, errors.New("completion client is required")
	}
	deps := loopDeps{
		logger: loggerpkg.NopLogger{},
		labels: persona.Default("").Labels(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&deps)
		}
	}
	return &Loop{
		client:  client,
		labels:  deps.labels,
		logger:  deps.logger,
		verbose: deps.verbose,
	}, nil
}

// Run prompts on out and reads lines from in until an exit keyword or EOF.
// A completion failure ends the loop and is returned; no reply block is
// printed for it.
func (l *Loop) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	if in == nil {
		return errors.New("input reader is required")
	}
	if out == nil {
		out = io.Discard
	}
	if ctx == nil {
		ctx = context.Background()
	}

	l.debugf("loop start: history=%d", len(l.history))
	reader := bufio.NewReader(in)
	for {
		_, _ = fmt.Fprint(out, l.labels.Prompt)
		input, err := readLine(reader)
		if err == io.EOF {
			l.debugf("loop end: input closed")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		if IsExitKeyword(input) {
			_, _ = fmt.Fprint(out, "\n"+l.labels.Farewell+"\n\n")
			l.debugf("loop end: exit keyword %q", input)
			return nil
		}

		reply, err := l.client.Complete(ctx, input, l.history)
		if err != nil {
			l.debugf("completion failed: %v", err)
			return fmt.Errorf("complete: %w", err)
		}
		l.history = reply.History
		loggerpkg.Debug(l.verbose, l.logger, "reply received", map[string]any{
			"bytes":   len(reply.Text),
			"history": len(l.history),
		})

		_, _ = io.WriteString(out, FormatReply(l.labels.Header, reply.Text))
	}
}

// History returns a copy of the accumulated conversation.
func (l *Loop) History() llm.History {
	return append(llm.History(nil), l.history...)
}

func (l *Loop) debugf(format string, args ...any) {
	loggerpkg.Debugf(l.verbose, l.logger, format, args...)
}

// readLine returns one line without its terminator. A final line without a
// newline is returned as is; io.EOF is reported only when nothing was read.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}
