package table_test

import (
	"strings"
	"testing"
	"time"

	// Packages
	table "github.com/mutablelogic/go-toolcall/pkg/ui/table"
	assert "github.com/stretchr/testify/assert"
)

type rows [][]any

func (r rows) Header() []string { return []string{"NAME", "VALUE"} }
func (r rows) Len() int         { return len(r) }
func (r rows) Row(i int) []any  { return r[i] }

func Test_table_001(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("-", table.FormatCell(nil))
	assert.Equal("-", table.FormatCell(""))
	assert.Equal("-", table.FormatCell(0))
	assert.Equal("yes", table.FormatCell(true))
	assert.Equal("no", table.FormatCell(false))
	assert.Equal("2s", table.FormatCell(2*time.Second))
	assert.Equal("3.5", table.FormatCell(3.5))
}

func Test_table_002(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("hello world", table.Truncate("hello\n  world", 20))
	assert.Equal("hell…", table.Truncate("hello world", 5))
	assert.Equal("abc", table.Truncate("abc", 0))
}

func Test_table_003(t *testing.T) {
	assert := assert.New(t)
	out := table.Render(rows{{"alpha", 1}, nil, {"beta", 2}}, 0)
	assert.Contains(out, "NAME")
	assert.Contains(out, "alpha")
	assert.Contains(out, "beta")
	assert.NotContains(out, "<nil>")
	assert.Less(1, strings.Count(out, "\n"))
}
