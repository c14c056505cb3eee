package executor

import (
	"log/slog"
	"time"

	// Packages
	toolcall "github.com/mutablelogic/go-toolcall"
	prometheus "github.com/prometheus/client_golang/prometheus"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt is a functional option for configuring an executor
type Opt func(*Executor) error

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Opt {
	return func(e *Executor) error {
		if logger == nil {
			return toolcall.ErrBadParameter.With("logger is required")
		}
		e.logger = logger
		return nil
	}
}

// WithTracer sets the tracer for execution spans
func WithTracer(tracer trace.Tracer) Opt {
	return func(e *Executor) error {
		if tracer != nil {
			e.tracer = tracer
		}
		return nil
	}
}

// WithRegisterer registers the executor metrics
func WithRegisterer(registerer prometheus.Registerer) Opt {
	return func(e *Executor) error {
		m, err := newMetrics(registerer)
		if err != nil {
			return err
		}
		e.metrics = m
		return nil
	}
}

// WithConcurrency limits the number of calls run at once in parallel mode.
// Zero means no limit.
func WithConcurrency(n int) Opt {
	return func(e *Executor) error {
		if n < 0 {
			return toolcall.ErrBadParameter.Withf("invalid concurrency %d", n)
		}
		e.concurrency = n
		return nil
	}
}

// WithTimeout overrides the timeout of every tool
func WithTimeout(timeout time.Duration) Opt {
	return func(e *Executor) error {
		if timeout < 0 {
			return toolcall.ErrBadParameter.Withf("invalid timeout %v", timeout)
		}
		e.timeout = timeout
		return nil
	}
}
