package main

import (
	"strconv"
	"strings"

	// Packages
	toolcall "github.com/mutablelogic/go-toolcall"
	schema "github.com/mutablelogic/go-toolcall/pkg/schema"
	settings "github.com/mutablelogic/go-toolcall/pkg/settings"
	table "github.com/mutablelogic/go-toolcall/pkg/ui/table"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type SettingCommands struct {
	ListSettings ListSettingsCommand `cmd:"" name:"settings" help:"Show plugin settings, with secrets masked." group:"SETTINGS"`
	Set          SetCommand          `cmd:"" name:"set" help:"Set a plugin setting. An empty value removes it." group:"SETTINGS"`
}

type ListSettingsCommand struct {
	Plugin string `arg:"" name:"plugin" optional:"" help:"Plugin id"`
	JSON   bool   `name:"json" help:"Output as JSON"`
}

type SetCommand struct {
	Plugin string `arg:"" name:"plugin" help:"Plugin id"`
	Key    string `arg:"" name:"key" help:"Setting key"`
	Value  string `arg:"" name:"value" optional:"" help:"Setting value, which may reference an environment variable as ${NAME}"`
}

type settingRow struct {
	Plugin   string             `json:"plugin"`
	Key      string             `json:"key"`
	Type     schema.SettingType `json:"type"`
	Required bool               `json:"required,omitempty"`
	Value    any                `json:"value,omitempty"`
}

type settingTable []settingRow

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ListSettingsCommand) Run(ctx *Globals) error {
	var plugins []schema.PluginDescriptor
	if cmd.Plugin != "" {
		desc := ctx.registry.Plugin(cmd.Plugin)
		if desc == nil {
			return toolcall.ErrNotFound.Withf("plugin %q", cmd.Plugin)
		}
		plugins = append(plugins, *desc)
	} else {
		plugins = ctx.registry.Plugins()
	}

	var rows settingTable
	for _, desc := range plugins {
		values := make(map[string]any, len(desc.Settings))
		for _, setting := range desc.Settings {
			values[setting.Key] = settings.Value(ctx.store, desc, setting.Key)
		}
		values = settings.MaskValues(desc.Settings, values)
		for _, setting := range desc.Settings {
			rows = append(rows, settingRow{
				Plugin:   desc.ID,
				Key:      setting.Key,
				Type:     setting.Type.Normalize(),
				Required: setting.Required,
				Value:    values[setting.Key],
			})
		}
	}
	return output(cmd.JSON, rows, rows)
}

func (cmd *SetCommand) Run(ctx *Globals) error {
	desc := ctx.registry.Plugin(cmd.Plugin)
	if desc == nil {
		return toolcall.ErrNotFound.Withf("plugin %q", cmd.Plugin)
	}
	setting := desc.Setting(cmd.Key)
	if setting == nil {
		return toolcall.ErrNotFound.Withf("plugin %q has no setting %q", cmd.Plugin, cmd.Key)
	}

	// Remove the value
	if cmd.Value == "" {
		return ctx.store.SetPluginSetting(desc.ID, setting.Key, nil)
	}

	value, err := parseSetting(*setting, cmd.Value)
	if err != nil {
		return err
	}
	if errs := settings.Validate([]schema.SettingDescriptor{*setting}, map[string]any{setting.Key: value}); len(errs) > 0 {
		return toolcall.ErrBadParameter.Withf("%s: %s", setting.Key, errs[setting.Key])
	}
	if setting.Type.Normalize() == schema.SettingSecret {
		err = ctx.store.SetSecret(desc.ID, setting.Key, value.(string))
	} else {
		err = ctx.store.SetPluginSetting(desc.ID, setting.Key, value)
	}
	if err != nil {
		return err
	}

	// Apply to the loaded tools
	settings.Sync(ctx.registry, ctx.store, ctx.logger)
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// TABLE

func (t settingTable) Header() []string {
	return []string{"PLUGIN", "KEY", "TYPE", "REQUIRED", "VALUE"}
}

func (t settingTable) Len() int {
	return len(t)
}

func (t settingTable) Row(i int) []any {
	row := t[i]
	return []any{table.Bold{Value: row.Plugin}, row.Key, string(row.Type), row.Required, row.Value}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// parseSetting converts command line text to the type of a setting
func parseSetting(setting schema.SettingDescriptor, text string) (any, error) {
	text = strings.TrimSpace(text)
	switch setting.Type.Normalize() {
	case schema.SettingNumber:
		if v, err := strconv.ParseFloat(text, 64); err != nil {
			return nil, toolcall.ErrBadParameter.Withf("%s: must be a number", setting.Key)
		} else {
			return v, nil
		}
	case schema.SettingBoolean:
		if v, err := strconv.ParseBool(text); err != nil {
			return nil, toolcall.ErrBadParameter.Withf("%s: must be true or false", setting.Key)
		} else {
			return v, nil
		}
	default:
		return text, nil
	}
}
