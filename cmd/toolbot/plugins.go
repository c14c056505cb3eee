package main

import (
	"fmt"
	"log/slog"
	"os"

	// Packages
	toolcall "github.com/mutablelogic/go-toolcall"
	plugin "github.com/mutablelogic/go-toolcall/pkg/plugin"
	schema "github.com/mutablelogic/go-toolcall/pkg/schema"
	table "github.com/mutablelogic/go-toolcall/pkg/ui/table"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type PluginCommands struct {
	ListPlugins ListPluginsCommand `cmd:"" name:"plugins" help:"List plugins and load failures." group:"PLUGIN"`
	Reload      ReloadCommand      `cmd:"" name:"reload" help:"Reload one plugin, or all of them." group:"PLUGIN"`
	Watch       WatchCommand       `cmd:"" name:"watch" help:"Reload plugins as their files change." group:"PLUGIN"`
}

type ListPluginsCommand struct {
	JSON bool `name:"json" help:"Output as JSON"`
}

type ReloadCommand struct {
	Plugin string `arg:"" name:"plugin" optional:"" help:"Plugin id"`
	JSON   bool   `name:"json" help:"Output as JSON"`
}

type WatchCommand struct{}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ListPluginsCommand) Run(ctx *Globals) error {
	plugins := ctx.registry.Plugins()
	if cmd.JSON {
		return printJSON(map[string]any{
			"plugins": plugins,
			"report":  ctx.report,
			"stats":   ctx.registry.Stats(),
		})
	}

	failures := ctx.report.Failures()
	if len(plugins) == 0 && len(failures) == 0 {
		fmt.Fprintf(os.Stderr, "No plugins found in %q\n", ctx.Plugins)
		return nil
	}
	if len(plugins) > 0 {
		if err := table.Write(os.Stdout, schema.PluginTable{Plugins: plugins, Tools: ctx.registry.AllTools()}); err != nil {
			return err
		}
	}
	if len(failures) > 0 {
		if err := table.Write(os.Stdout, schema.FailureTable(failures)); err != nil {
			return err
		}
	}
	return nil
}

func (cmd *ReloadCommand) Run(ctx *Globals) error {
	if cmd.Plugin == "" {
		report := ctx.loader.ReloadAll()
		return output(cmd.JSON, report, schema.FailureTable(report.Failures()))
	}
	if !ctx.loader.ReloadOne(cmd.Plugin) {
		return toolcall.ErrLoad.Withf("plugin %q could not be reloaded", cmd.Plugin)
	}
	desc := ctx.registry.Plugin(cmd.Plugin)
	if desc == nil {
		return toolcall.ErrNotFound.Withf("plugin %q", cmd.Plugin)
	}
	return output(cmd.JSON, desc, schema.PluginTable{
		Plugins: []schema.PluginDescriptor{*desc},
		Tools:   ctx.registry.ToolsByPlugin(desc.ID),
	})
}

func (cmd *WatchCommand) Run(ctx *Globals) error {
	// Changes are logged at info level
	if ctx.level.Level() > slog.LevelInfo {
		ctx.level.Set(slog.LevelInfo)
	}
	watcher, err := plugin.NewWatcher(ctx.loader, ctx.Plugins, plugin.WithWatchLogger(ctx.logger))
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Watching %q, press CTRL+C to stop\n", ctx.Plugins)
	return watcher.Run(ctx.ctx)
}
