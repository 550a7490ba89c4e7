package chat

import (
	loggerpkg "github.com/minhyannv/llm-chat-go/pkg/logger"
	"github.com/minhyannv/llm-chat-go/pkg/persona"
)

// Option configures optional runtime dependencies for Loop.
type Option func(*loopDeps)

type loopDeps struct {
	logger  loggerpkg.Logger
	verbose bool
	labels  persona.Labels
}

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger) Option {
	return func(d *loopDeps) {
		d.logger = l
	}
}

// WithVerbose enables debug logging of each exchange.
func WithVerbose(v bool) Option {
	return func(d *loopDeps) {
		d.verbose = v
	}
}

// WithLabels sets the prompt, reply header, and farewell strings.
func WithLabels(labels persona.Labels) Option {
	return func(d *loopDeps) {
		d.labels = labels
	}
}
