/*
orchestrator runs the tool-calling loop: it offers the enabled tools to a
model, executes the tool calls the model makes and feeds the results back
until the model answers with text or the iteration ceiling is reached.
*/
package orchestrator

import (
	"context"
	"encoding/json"
	"log/slog"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	toolcall "github.com/mutablelogic/go-toolcall"
	provider "github.com/mutablelogic/go-toolcall/pkg/provider"
	schema "github.com/mutablelogic/go-toolcall/pkg/schema"
	attribute "go.opentelemetry.io/otel/attribute"
	trace "go.opentelemetry.io/otel/trace"
	noop "go.opentelemetry.io/otel/trace/noop"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Catalog returns the tools currently offered to the model
type Catalog interface {
	Catalog() []schema.CatalogEntry
}

// Executor runs the tool calls of a round
type Executor interface {
	ExecuteMany(ctx context.Context, calls []schema.ToolCall, parallel bool) []schema.ToolResult
}

// Orchestrator is safe for concurrent use. Each call to Run has its own
// conversation state.
type Orchestrator struct {
	catalog       Catalog
	executor      Executor
	adapter       provider.Adapter
	model         provider.Model
	maxIterations int
	parallel      bool
	system        string
	fallback      string
	logger        *slog.Logger
	tracer        trace.Tracer
}

// Reply is the outcome of a conversation turn
type Reply struct {
	Text   string              `json:"text"`
	State  State               `json:"state"`
	Rounds int                 `json:"rounds"`
	Calls  []schema.ToolResult `json:"calls,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultMaxIterations = 5
	DefaultFallback      = "Could not complete the operation."
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates an orchestrator for a catalog of tools, an executor for
// those tools and a model with its adapter
func New(catalog Catalog, executor Executor, adapter provider.Adapter, model provider.Model, opts ...Opt) (*Orchestrator, error) {
	switch {
	case catalog == nil:
		return nil, toolcall.ErrBadParameter.With("catalog is required")
	case executor == nil:
		return nil, toolcall.ErrBadParameter.With("executor is required")
	case adapter == nil:
		return nil, toolcall.ErrBadParameter.With("adapter is required")
	case model == nil:
		return nil, toolcall.ErrBadParameter.With("model is required")
	}
	o := &Orchestrator{
		catalog:       catalog,
		executor:      executor,
		adapter:       adapter,
		model:         model,
		maxIterations: DefaultMaxIterations,
		fallback:      DefaultFallback,
		logger:        slog.Default(),
		tracer:        noop.NewTracerProvider().Tracer("orchestrator"),
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Run answers a conversation. Errors from the model or an unreadable
// response are returned; tool failures are fed back to the model. When the
// model gives nothing to act on, or the iteration ceiling is reached, the
// reply carries the fallback text.
func (o *Orchestrator) Run(ctx context.Context, messages []schema.Message) (_ *Reply, err error) {
	ctx, endSpan := otel.StartSpan(o.tracer, ctx, "Run",
		attribute.String("adapter", o.adapter.Name()),
		attribute.Int("messages", len(messages)),
	)
	defer func() { endSpan(err) }()

	req, err := o.adapter.NewRequest(o.system, messages)
	if err != nil {
		return nil, err
	}

	// Without tools there is a single exchange
	catalog := o.catalog.Catalog()
	if len(catalog) == 0 {
		response, err := o.generate(ctx, req, 1)
		if err != nil {
			return nil, err
		}
		text, err := o.adapter.ParseText(response)
		if err != nil {
			return nil, err
		}
		return &Reply{Text: text, State: FinalAnswer, Rounds: 1}, nil
	}

	reply := &Reply{State: AwaitingModel}
	for reply.Rounds < o.maxIterations {
		reply.Rounds++

		// The catalog may have changed since the last round
		if reply.Rounds > 1 {
			catalog = o.catalog.Catalog()
		}
		if req.Tools, err = o.adapter.ToWireSchema(catalog); err != nil {
			return nil, err
		}

		response, err := o.generate(ctx, req, reply.Rounds)
		if err != nil {
			return nil, err
		}
		calls, err := o.adapter.ParseToolCalls(response)
		if err != nil {
			return nil, err
		}

		// Run the tools and feed back the results
		if len(calls) > 0 {
			reply.State = ToolCallsPending
			results := o.execute(ctx, calls, reply.Rounds)
			reply.Calls = append(reply.Calls, results...)
			if req.Messages, err = o.adapter.BuildFollowupMessages(req.Messages, response, calls, results); err != nil {
				return nil, err
			}
			reply.State = AwaitingModel
			continue
		}

		text, err := o.adapter.ParseText(response)
		if err != nil {
			return nil, err
		}
		if text != "" {
			reply.Text, reply.State = text, FinalAnswer
		} else {
			o.logger.Warn("model returned no text and no tool calls", "round", reply.Rounds)
			reply.Text, reply.State = o.fallback, NoActionableOutput
		}
		return reply, nil
	}

	o.logger.Warn("tool calling stopped", "error", toolcall.ErrIterationLimit.Withf("%d rounds", o.maxIterations))
	reply.Text, reply.State = o.fallback, IterationLimit
	return reply, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (o *Orchestrator) generate(ctx context.Context, req *provider.Request, round int) (_ json.RawMessage, err error) {
	ctx, endSpan := otel.StartSpan(o.tracer, ctx, "Generate",
		attribute.Int("round", round),
		attribute.Int("messages", len(req.Messages)),
	)
	defer func() { endSpan(err) }()

	o.logger.Debug("awaiting model", "adapter", o.adapter.Name(), "round", round)
	return o.model.Generate(ctx, req)
}

func (o *Orchestrator) execute(ctx context.Context, calls []schema.ToolCall, round int) []schema.ToolResult {
	names := make([]string, 0, len(calls))
	for _, call := range calls {
		names = append(names, call.Name)
	}
	o.logger.Info("tool calls", "round", round, "tools", names, "parallel", o.parallel)
	return o.executor.ExecuteMany(ctx, calls, o.parallel)
}
