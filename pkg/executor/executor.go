package executor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	toolcall "github.com/mutablelogic/go-toolcall"
	registry "github.com/mutablelogic/go-toolcall/pkg/registry"
	schema "github.com/mutablelogic/go-toolcall/pkg/schema"
	attribute "go.opentelemetry.io/otel/attribute"
	trace "go.opentelemetry.io/otel/trace"
	noop "go.opentelemetry.io/otel/trace/noop"
	errgroup "golang.org/x/sync/errgroup"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Executor runs tool calls against the registry. It never returns a Go
// error for a failed call: every outcome is a ToolResult.
type Executor struct {
	registry    *registry.Registry
	logger      *slog.Logger
	tracer      trace.Tracer
	metrics     *metrics
	concurrency int
	timeout     time.Duration

	// Resolved parameter schemas keyed by the raw schema
	schemas sync.Map
}

type outcome struct {
	value any
	err   error
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates an executor for the tools in a registry
func New(r *registry.Registry, opts ...Opt) (*Executor, error) {
	if r == nil {
		return nil, toolcall.ErrBadParameter.With("registry is required")
	}
	e := &Executor{
		registry: r,
		logger:   slog.Default(),
		tracer:   noop.NewTracerProvider().Tracer("executor"),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	if e.metrics == nil {
		m, err := newMetrics(nil)
		if err != nil {
			return nil, err
		}
		e.metrics = m
	}
	return e, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Execute runs one tool call
func (e *Executor) Execute(ctx context.Context, call schema.ToolCall) schema.ToolResult {
	var err error

	// Otel span
	ctx, endSpan := otel.StartSpan(e.tracer, ctx, "Execute",
		attribute.String("tool", call.Name),
		attribute.String("id", call.ID),
	)
	defer func() { endSpan(err) }()

	start := time.Now()
	result := e.execute(ctx, call)
	if !result.Success && result.Error != nil {
		err = *result.Error
	}
	e.metrics.observe(call.Name, result.Kind(), time.Since(start))

	if result.Success {
		e.logger.Debug("tool executed", "tool", call.Name, "id", call.ID, "duration", time.Since(start))
	} else {
		e.logger.Warn("tool failed", "tool", call.Name, "id", call.ID, "kind", result.Kind().Error(), "error", result.Content)
	}
	return result
}

// ExecuteMany runs tool calls, returning results in call order. In
// parallel mode every call runs in its own goroutine and a failure in one
// call never affects another.
func (e *Executor) ExecuteMany(ctx context.Context, calls []schema.ToolCall, parallel bool) []schema.ToolResult {
	results := make([]schema.ToolResult, len(calls))
	if !parallel || len(calls) < 2 {
		for i, call := range calls {
			results[i] = e.Execute(ctx, call)
		}
		return results
	}

	var g errgroup.Group
	if e.concurrency > 0 {
		g.SetLimit(e.concurrency)
	}
	for i, call := range calls {
		g.Go(func() error {
			results[i] = e.Execute(ctx, call)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (e *Executor) execute(ctx context.Context, call schema.ToolCall) schema.ToolResult {
	// Resolve the tool
	tool := e.registry.Tool(call.Name)
	if tool == nil {
		return schema.NewToolError(call, toolcall.ErrNotFound, fmt.Sprintf("Tool '%s' not found", call.Name))
	} else if !tool.Enabled {
		return schema.NewToolError(call, toolcall.ErrDisabled, fmt.Sprintf("Tool '%s' is currently disabled", call.Name))
	} else if tool.Handler == nil {
		return schema.NewToolError(call, toolcall.ErrExecution, fmt.Sprintf("Tool '%s' failed: handler not callable", call.Name))
	}

	// Check the arguments against the parameter schema
	args := call.Arguments
	if args == nil {
		args = map[string]any{}
	}
	if err := e.validate(tool.Parameters, args); err != nil {
		return schema.NewToolError(call, toolcall.ErrInvalidArguments, fmt.Sprintf("Invalid arguments for tool '%s': %s", call.Name, reason(err, toolcall.ErrInvalidArguments)))
	}

	// Invoke with the timeout
	timeout := tool.Timeout
	if e.timeout > 0 {
		timeout = e.timeout
	}
	value, err := invoke(ctx, tool.Handler, args, timeout)
	switch {
	case errors.Is(err, toolcall.ErrTimeout):
		return schema.NewToolError(call, toolcall.ErrTimeout, fmt.Sprintf("Tool '%s' execution timed out after %ss", call.Name, strconv.FormatFloat(timeout.Seconds(), 'f', -1, 64)))
	case errors.Is(err, toolcall.ErrInvalidArguments):
		return schema.NewToolError(call, toolcall.ErrInvalidArguments, fmt.Sprintf("Invalid arguments for tool '%s': %s", call.Name, reason(err, toolcall.ErrInvalidArguments)))
	case err != nil:
		return schema.NewToolError(call, toolcall.ErrExecution, fmt.Sprintf("Tool '%s' failed: %s", call.Name, reason(err, toolcall.ErrExecution)))
	}

	// Normalize the value
	content, err := Normalize(value)
	if err != nil {
		return schema.NewToolError(call, toolcall.ErrExecution, fmt.Sprintf("Tool '%s' failed: %v", call.Name, err))
	}
	return schema.NewToolResult(call, content)
}

// invoke runs the handler in its own goroutine, so a handler which blocks
// or ignores cancellation cannot hold up the caller past the timeout
func invoke(parent context.Context, handler schema.Handler, args map[string]any, timeout time.Duration) (any, error) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	ch := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- outcome{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		value, err := handler(ctx, args)
		ch <- outcome{value: value, err: err}
	}()

	select {
	case result := <-ch:
		if result.err != nil && errors.Is(result.err, context.DeadlineExceeded) && parent.Err() == nil {
			return nil, toolcall.ErrTimeout
		}
		return result.value, result.err
	case <-ctx.Done():
		if parent.Err() != nil {
			return nil, parent.Err()
		}
		return nil, toolcall.ErrTimeout
	}
}

// validate checks arguments against a parameter schema. Resolved schemas
// are cached.
func (e *Executor) validate(params schema.JSONSchema, args map[string]any) error {
	if len(params) == 0 {
		return nil
	}
	key := string(params)
	if cached, exists := e.schemas.Load(key); exists {
		return cached.(*jsonschema.Resolved).Validate(args)
	}
	resolved, err := params.Resolve()
	if err != nil {
		return err
	} else if resolved == nil {
		return nil
	}
	e.schemas.Store(key, resolved)
	return resolved.Validate(args)
}

// reason returns the message of an error without the prefix of its kind
func reason(err error, kind toolcall.Err) string {
	return strings.TrimPrefix(err.Error(), kind.Error()+": ")
}
