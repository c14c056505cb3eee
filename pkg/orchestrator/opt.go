package orchestrator

import (
	"log/slog"
	"strings"

	// Packages
	toolcall "github.com/mutablelogic/go-toolcall"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt is a functional option for configuring an orchestrator
type Opt func(*Orchestrator) error

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithMaxIterations sets the maximum number of rounds
func WithMaxIterations(n int) Opt {
	return func(o *Orchestrator) error {
		if n < 1 {
			return toolcall.ErrBadParameter.Withf("invalid max iterations %d", n)
		}
		o.maxIterations = n
		return nil
	}
}

// WithParallel executes the tool calls of a round in parallel
func WithParallel(parallel bool) Opt {
	return func(o *Orchestrator) error {
		o.parallel = parallel
		return nil
	}
}

// WithSystemPrompt sets the system prompt sent with every conversation
func WithSystemPrompt(prompt string) Opt {
	return func(o *Orchestrator) error {
		o.system = strings.TrimSpace(prompt)
		return nil
	}
}

// WithFallback sets the text returned when the loop gives up
func WithFallback(text string) Opt {
	return func(o *Orchestrator) error {
		if text = strings.TrimSpace(text); text == "" {
			return toolcall.ErrBadParameter.With("fallback is empty")
		}
		o.fallback = text
		return nil
	}
}

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Opt {
	return func(o *Orchestrator) error {
		if logger == nil {
			return toolcall.ErrBadParameter.With("logger is required")
		}
		o.logger = logger
		return nil
	}
}

// WithTracer sets the tracer for orchestration spans
func WithTracer(tracer trace.Tracer) Opt {
	return func(o *Orchestrator) error {
		if tracer != nil {
			o.tracer = tracer
		}
		return nil
	}
}
