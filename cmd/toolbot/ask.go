package main

import (
	"fmt"
	"os"
	"strings"

	// Packages
	toolcall "github.com/mutablelogic/go-toolcall"
	orchestrator "github.com/mutablelogic/go-toolcall/pkg/orchestrator"
	schema "github.com/mutablelogic/go-toolcall/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type AskCommand struct {
	Text          []string `arg:"" name:"text" help:"Question for the model"`
	System        string   `name:"system" help:"System prompt"`
	MaxIterations int      `name:"max-iterations" default:"5" help:"Maximum number of tool rounds"`
	Parallel      bool     `name:"parallel" help:"Run the tool calls of a round in parallel"`
	JSON          bool     `name:"json" help:"Output the reply as JSON"`
}

type SchemaCommand struct {
	Provider string `arg:"" name:"provider" help:"Provider name"`
	All      bool   `name:"all" help:"Include disabled tools"`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *AskCommand) Run(ctx *Globals) error {
	adapter, model, err := ctx.model()
	if err != nil {
		return err
	}

	opts := []orchestrator.Opt{
		orchestrator.WithMaxIterations(cmd.MaxIterations),
		orchestrator.WithParallel(cmd.Parallel),
		orchestrator.WithLogger(ctx.logger),
	}
	if cmd.System != "" {
		opts = append(opts, orchestrator.WithSystemPrompt(cmd.System))
	}
	o, err := orchestrator.New(ctx.registry, ctx.executor, adapter, model, opts...)
	if err != nil {
		return err
	}

	message := schema.NewMessage(schema.RoleUser, strings.Join(cmd.Text, " "))
	if message == nil {
		return toolcall.ErrBadParameter.With("missing question")
	}
	reply, err := o.Run(ctx.ctx, []schema.Message{*message})
	if err != nil {
		return err
	}

	if cmd.JSON {
		return printJSON(reply)
	}
	for _, call := range reply.Calls {
		ctx.logger.Info("tool called", "tool", call.Name, "success", call.Success)
	}
	if reply.State != orchestrator.FinalAnswer {
		fmt.Fprintf(os.Stderr, "Stopped after %d rounds: %s\n", reply.Rounds, reply.State)
	}
	fmt.Println(reply.Text)
	return nil
}

func (cmd *SchemaCommand) Run(ctx *Globals) error {
	adapter, err := adapterFor(cmd.Provider, ctx.logger)
	if err != nil {
		return err
	}

	tools := ctx.registry.EnabledTools()
	if cmd.All {
		tools = ctx.registry.AllTools()
	}
	catalog := make([]schema.CatalogEntry, 0, len(tools))
	for _, tool := range tools {
		catalog = append(catalog, tool.Catalog())
	}

	data, err := adapter.ToWireSchema(catalog)
	if err != nil {
		return err
	} else if data == nil {
		data = []byte("[]")
	}
	return printJSON(data)
}
