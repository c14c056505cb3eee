package main

import (
	"fmt"
	"os"
	"strings"

	// Packages
	toolcall "github.com/mutablelogic/go-toolcall"
	provider "github.com/mutablelogic/go-toolcall/pkg/provider"
	schema "github.com/mutablelogic/go-toolcall/pkg/schema"
	settings "github.com/mutablelogic/go-toolcall/pkg/settings"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ToolCommands struct {
	ListTools ListToolsCommand `cmd:"" name:"tools" help:"List tools." group:"TOOL"`
	Enable    EnableCommand    `cmd:"" name:"enable" help:"Enable a tool." group:"TOOL"`
	Disable   DisableCommand   `cmd:"" name:"disable" help:"Disable a tool." group:"TOOL"`
	Call      CallCommand      `cmd:"" name:"call" help:"Run a tool with JSON arguments." group:"TOOL"`
}

type ListToolsCommand struct {
	Plugin  string `name:"plugin" help:"Only list the tools of a plugin"`
	Enabled bool   `name:"enabled" help:"Only list enabled tools"`
	JSON    bool   `name:"json" help:"Output as JSON"`
}

type EnableCommand struct {
	Name string `arg:"" name:"name" help:"Tool name"`
}

type DisableCommand struct {
	Name string `arg:"" name:"name" help:"Tool name"`
}

type CallCommand struct {
	Name      string `arg:"" name:"name" help:"Tool name"`
	Arguments string `arg:"" name:"arguments" optional:"" help:"JSON object of arguments (optional)"`
	JSON      bool   `name:"json" help:"Output the result as JSON"`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ListToolsCommand) Run(ctx *Globals) error {
	var tools []schema.ToolDefinition
	switch {
	case cmd.Plugin != "":
		if ctx.registry.Plugin(cmd.Plugin) == nil {
			return toolcall.ErrNotFound.Withf("plugin %q", cmd.Plugin)
		}
		tools = ctx.registry.ToolsByPlugin(cmd.Plugin)
	case cmd.Enabled:
		tools = ctx.registry.EnabledTools()
	default:
		tools = ctx.registry.AllTools()
	}
	if cmd.Plugin != "" && cmd.Enabled {
		tools = enabledOnly(tools)
	}

	if len(tools) == 0 && !cmd.JSON {
		fmt.Fprintln(os.Stderr, "No tools available")
		return nil
	}
	return output(cmd.JSON, tools, schema.ToolTable(tools))
}

func (cmd *EnableCommand) Run(ctx *Globals) error {
	tool, err := ctx.setEnabled(cmd.Name, true)
	if err != nil {
		return err
	}

	// Tools of unconfigured plugins are disabled again on the next load
	if desc := ctx.registry.Plugin(tool.Plugin); desc != nil {
		if missing := settings.Missing(ctx.store, *desc); len(missing) > 0 {
			fmt.Fprintf(os.Stderr, "Plugin %q is missing settings: %s\n", desc.ID, strings.Join(missing, ", "))
		}
	}
	return nil
}

func (cmd *DisableCommand) Run(ctx *Globals) error {
	_, err := ctx.setEnabled(cmd.Name, false)
	return err
}

func (cmd *CallCommand) Run(ctx *Globals) error {
	args, err := provider.DecodeArguments([]byte(cmd.Arguments))
	if err != nil {
		return err
	}

	result := ctx.executor.Execute(ctx.ctx, schema.ToolCall{
		ID:        provider.NewCallID(),
		Name:      cmd.Name,
		Arguments: args,
	})
	if cmd.JSON {
		if err := printJSON(result); err != nil {
			return err
		}
	} else if result.Success {
		fmt.Println(result.Content)
	}
	if result.Error != nil {
		return result.Error
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// setEnabled changes a tool in the registry and persists the change
func (g *Globals) setEnabled(name string, enabled bool) (*schema.ToolDefinition, error) {
	tool := g.registry.Tool(name)
	if tool == nil {
		return nil, toolcall.ErrNotFound.Withf("tool %q", name)
	}
	if enabled {
		g.registry.EnableTool(name)
	} else {
		g.registry.DisableTool(name)
	}
	if err := g.store.SetToolEnabled(name, enabled); err != nil {
		return nil, err
	}
	g.logger.Info("tool updated", "tool", name, "enabled", enabled, "settings", g.store.Path())
	return tool, nil
}

func enabledOnly(tools []schema.ToolDefinition) []schema.ToolDefinition {
	result := make([]schema.ToolDefinition, 0, len(tools))
	for _, tool := range tools {
		if tool.Enabled {
			result = append(result, tool)
		}
	}
	return result
}
