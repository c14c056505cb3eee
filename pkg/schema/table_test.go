package schema_test

import (
	"testing"
	"time"

	// Packages
	schema "github.com/mutablelogic/go-toolcall/pkg/schema"
	uitable "github.com/mutablelogic/go-toolcall/pkg/ui/table"
	assert "github.com/stretchr/testify/assert"
)

func Test_table_001(t *testing.T) {
	assert := assert.New(t)
	data := schema.PluginTable{
		Plugins: []schema.PluginDescriptor{{ID: "weather", Name: "Weather", Version: "1.0.0"}},
		Tools: []schema.ToolDefinition{
			{Name: "get_current_weather", Plugin: "weather", Enabled: true},
			{Name: "get_forecast", Plugin: "weather", Enabled: false},
			{Name: "calculate", Plugin: "calculator", Enabled: true},
		},
	}
	assert.Equal(1, data.Len())
	row := data.Row(0)
	assert.Equal(uitable.Bold{Value: "weather"}, row[0])
	assert.Equal("1/2", row[3])
}

func Test_table_002(t *testing.T) {
	assert := assert.New(t)
	data := schema.ToolTable{
		{
			Name:       "get_forecast",
			Plugin:     "weather",
			Timeout:    time.Second,
			Parameters: schema.JSONSchema(`{"type":"object","properties":{"location":{"type":"string"},"days":{"type":"integer"}},"required":["location"]}`),
		},
	}
	row := data.Row(0)
	assert.Len(row, len(data.Header()))
	assert.Equal(uitable.Dim{Value: "days, location*"}, row[4])
	assert.Equal(uitable.Dim{Value: false}, row[2])
}

func Test_table_003(t *testing.T) {
	assert := assert.New(t)
	data := schema.FailureTable{{Path: "plugins/broken", Error: "parse error"}, {Path: "plugins/math", Tool: "echo", Error: "duplicate name"}}
	assert.Equal([]any{"plugins/broken", "", "parse error"}, data.Row(0))
	assert.Equal([]any{"plugins/math", "echo", "duplicate name"}, data.Row(1))
	assert.Contains(uitable.Render(data, 0), "plugins/broken")

	report := schema.LoadReport{Failed: data[:1], Skipped: data[1:]}
	assert.Equal([]schema.LoadFailure(data), report.Failures())
}
