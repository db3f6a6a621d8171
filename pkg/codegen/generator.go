package codegen

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ivikasavnish/scriptgen/pkg/browser"
)

// Generator turns recorded events into script statements. It keeps no state
// between calls, so a single Generator may serve concurrent callers.
type Generator struct {
	opts   Options
	logger *zap.Logger
}

// Option configures a Generator
type Option func(*Generator)

// WithLogger sets the logger used for debug output
func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// New creates a Generator with the given options
func New(opts Options, options ...Option) *Generator {
	g := &Generator{
		opts:   opts,
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		opt(g)
	}
	return g
}

// Options returns the generator's options
func (g *Generator) Options() Options {
	return g.opts
}

// NewRun starts a fresh translation
func (g *Generator) NewRun() *Run {
	return newRun(g.opts)
}

// Blocks translates the events in order and post-processes the result
func (g *Generator) Blocks(events []browser.RecordedEvent) []Block {
	g.logger.Debug("Generating code", zap.Int("events", len(events)))

	run := g.NewRun()
	for _, event := range events {
		if !event.Action.Known() {
			g.logger.Debug("Ignoring event", zap.String("action", string(event.Action)))
		}
		run.Translate(event)
	}

	g.logger.Debug("Post processing blocks", zap.Int("blocks", run.blocks.Len()), zap.Int("frames", run.frames.Len()))
	return run.Finish()
}

// Generate returns the script body for the events. No events yield an empty string.
func (g *Generator) Generate(events []browser.RecordedEvent) string {
	if len(events) == 0 {
		return ""
	}
	return Render(g.Blocks(events), g.opts.Indent())
}

// GenerateJSON decodes a JSON array of events and generates the script body
func (g *Generator) GenerateJSON(data []byte) (string, error) {
	events, err := browser.DecodeEvents(data, browser.FormatJSON)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode events")
	}
	return g.Generate(events), nil
}
