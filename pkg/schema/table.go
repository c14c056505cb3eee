package schema

import (
	"fmt"
	"strings"

	// Packages
	uitable "github.com/mutablelogic/go-toolcall/pkg/ui/table"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// PluginTable implements table.TableData for registered plugins, with the
// number of tools and how many of them are enabled
type PluginTable struct {
	Plugins []PluginDescriptor
	Tools   []ToolDefinition
}

// ToolTable implements table.TableData for a list of tools. Disabled
// tools are dimmed.
type ToolTable []ToolDefinition

// FailureTable implements table.TableData for plugins and tools which
// failed to load
type FailureTable []LoadFailure

///////////////////////////////////////////////////////////////////////////////
// PLUGIN TABLE

func (t PluginTable) Header() []string {
	return []string{"PLUGIN", "NAME", "VERSION", "TOOLS", "DESCRIPTION"}
}

func (t PluginTable) Len() int {
	return len(t.Plugins)
}

func (t PluginTable) Row(i int) []any {
	p := t.Plugins[i]
	var total, enabled int
	for _, tool := range t.Tools {
		if tool.Plugin != p.ID {
			continue
		}
		total++
		if tool.Enabled {
			enabled++
		}
	}
	return []any{
		uitable.Bold{Value: p.ID},
		p.Name,
		p.Version,
		fmt.Sprintf("%d/%d", enabled, total),
		uitable.Truncate(p.Description, 60),
	}
}

///////////////////////////////////////////////////////////////////////////////
// TOOL TABLE

func (t ToolTable) Header() []string {
	return []string{"TOOL", "PLUGIN", "ENABLED", "TIMEOUT", "PARAMETERS", "DESCRIPTION"}
}

func (t ToolTable) Len() int {
	return len(t)
}

func (t ToolTable) Row(i int) []any {
	tool := t[i]
	row := []any{
		tool.Name,
		tool.Plugin,
		tool.Enabled,
		tool.Timeout,
		strings.Join(tool.Parameters.Properties(), ", "),
		uitable.Truncate(tool.Description, 60),
	}
	if !tool.Enabled {
		for j, v := range row {
			row[j] = uitable.Dim{Value: v}
		}
	}
	return row
}

///////////////////////////////////////////////////////////////////////////////
// FAILURE TABLE

func (t FailureTable) Header() []string {
	return []string{"PATH", "TOOL", "ERROR"}
}

func (t FailureTable) Len() int {
	return len(t)
}

func (t FailureTable) Row(i int) []any {
	return []any{t[i].Path, t[i].Tool, t[i].Error}
}
