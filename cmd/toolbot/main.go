package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	// Packages
	kong "github.com/alecthomas/kong"
	client "github.com/mutablelogic/go-client"
	builtin "github.com/mutablelogic/go-toolcall/pkg/builtin"
	executor "github.com/mutablelogic/go-toolcall/pkg/executor"
	plugin "github.com/mutablelogic/go-toolcall/pkg/plugin"
	registry "github.com/mutablelogic/go-toolcall/pkg/registry"
	schema "github.com/mutablelogic/go-toolcall/pkg/schema"
	settings "github.com/mutablelogic/go-toolcall/pkg/settings"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debugging
	Debug   bool `name:"debug" help:"Enable debug logging"`
	Verbose bool `name:"verbose" help:"Trace requests to external services"`

	// Plugins and settings
	Plugins    string `name:"plugins" env:"TOOLBOT_PLUGINS" default:"plugins" type:"path" help:"Plugin directory"`
	Settings   string `name:"settings" env:"TOOLBOT_SETTINGS" type:"path" help:"Settings file (defaults to the user config directory)"`
	Passphrase string `name:"passphrase" env:"TOOLBOT_PASSPHRASE" help:"Passphrase for secrets in the settings file"`

	// Provider
	ProviderFlags `embed:""`

	// Context
	ctx        context.Context
	logger     *slog.Logger
	level      *slog.LevelVar
	clientopts []client.ClientOpt
	registry   *registry.Registry
	loader     *plugin.Loader
	store      *settings.FileStore
	executor   *executor.Executor
	report     schema.LoadReport
}

type ProviderFlags struct {
	Provider string `name:"provider" env:"TOOLBOT_PROVIDER" default:"openai" help:"Model provider (openai, anthropic, gemini or an OpenAI-compatible vendor)"`
	Model    string `name:"model" env:"TOOLBOT_MODEL" help:"Model name"`
	APIKey   string `name:"api-key" env:"TOOLBOT_API_KEY" help:"Provider API key"`
	BaseURL  string `name:"base-url" env:"TOOLBOT_BASE_URL" help:"Override the provider endpoint"`
}

type CLI struct {
	Globals

	// Plugins and tools
	PluginCommands
	ToolCommands
	SettingCommands

	// Model
	Schema SchemaCommand `cmd:"" help:"Print the tool schema for a provider" group:"MODEL"`
	Ask    AskCommand    `cmd:"" help:"Ask the model, which may call tools" group:"MODEL"`

	// Other
	Version VersionCommand `cmd:"" help:"Print the version"`
}

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	// Create a cli parser
	cli := CLI{}
	cmd := kong.Parse(&cli,
		kong.Name(execName()),
		kong.Description("Plugin tool calling for language models"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	// Create a context
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	cli.Globals.ctx = ctx

	// Set up logging and tracing
	cli.Globals.level = new(slog.LevelVar)
	cli.Globals.level.Set(slog.LevelWarn)
	if cli.Debug {
		cli.Globals.level.Set(slog.LevelDebug)
	}
	cli.Globals.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cli.Globals.level}))
	if cli.Verbose {
		cli.Globals.clientopts = append(cli.Globals.clientopts, client.OptTrace(os.Stderr, cli.Debug))
	}

	// Load the plugins
	cmd.FatalIfErrorf(cli.Globals.init())

	// Run the command
	cmd.FatalIfErrorf(cmd.Run(&cli.Globals))
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func execName() string {
	// The name of the executable
	name, err := os.Executable()
	if err != nil {
		panic(err)
	} else {
		return filepath.Base(name)
	}
}

// init opens the settings, then loads the plugin directory into a registry
func (g *Globals) init() error {
	path := g.Settings
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, "toolbot", "settings.toml")
	}
	store, err := settings.OpenFile(path)
	if err != nil {
		return err
	} else {
		g.store = store
	}
	if g.Passphrase != "" {
		if err := g.store.SetPassphrase(g.Passphrase); err != nil {
			return err
		}
	}

	// Registry and executor
	if r, err := registry.New(registry.WithLogger(g.logger)); err != nil {
		return err
	} else {
		g.registry = r
	}
	if e, err := executor.New(g.registry, executor.WithLogger(g.logger)); err != nil {
		return err
	} else {
		g.executor = e
	}

	// Loader, which applies the stored settings after every change
	loader, err := plugin.NewLoader(g.registry, builtin.Plugins(g.clientopts...),
		plugin.WithLogger(g.logger),
		plugin.WithSettings(g.store),
		plugin.WithSync(settings.Syncer(g.store, g.logger)),
	)
	if err != nil {
		return err
	} else {
		g.loader = loader
	}

	// Failures are reported by the plugins command
	g.report = g.loader.LoadAll(g.Plugins)
	g.logger.Debug("loaded plugins", "loaded", len(g.report.Loaded), "failed", len(g.report.Failed), "tools", g.report.TotalTools)

	return nil
}
