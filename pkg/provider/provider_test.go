package provider_test

import (
	"strings"
	"testing"

	// Packages
	toolcall "github.com/mutablelogic/go-toolcall"
	provider "github.com/mutablelogic/go-toolcall/pkg/provider"
	schema "github.com/mutablelogic/go-toolcall/pkg/schema"
	assert "github.com/stretchr/testify/assert"
)

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_provider_001(t *testing.T) {
	// Object and string-encoded object
	assert := assert.New(t)

	args, err := provider.DecodeArguments([]byte(`{"location":"Paris","days":3}`))
	assert.NoError(err)
	assert.Equal("Paris", args["location"])
	assert.Equal(float64(3), args["days"])

	args, err = provider.DecodeArguments([]byte(`"{\"location\":\"Berlin\"}"`))
	assert.NoError(err)
	assert.Equal("Berlin", args["location"])
}

func Test_provider_002(t *testing.T) {
	// Empty arguments decode to an empty map
	assert := assert.New(t)
	for _, data := range []string{"", "  ", "null", `""`} {
		args, err := provider.DecodeArguments([]byte(data))
		assert.NoError(err, data)
		assert.NotNil(args, data)
		assert.Empty(args, data)
	}
}

func Test_provider_003(t *testing.T) {
	// Truncated JSON is repaired
	assert := assert.New(t)
	args, err := provider.DecodeArguments([]byte(`{"expression": "2+2"`))
	assert.NoError(err)
	assert.Equal("2+2", args["expression"])
}

func Test_provider_004(t *testing.T) {
	// Non-object arguments degrade to an empty map
	assert := assert.New(t)
	args, err := provider.DecodeArguments([]byte(`[1,2,3]`))
	assert.Error(err)
	assert.Equal(toolcall.ErrParse, toolcall.KindOf(err))
	assert.NotNil(args)
	assert.Empty(args)

	args = provider.Arguments(nil, "calculate", []byte(`42`))
	assert.NotNil(args)
	assert.Empty(args)
}

func Test_provider_005(t *testing.T) {
	// Call identifiers are unique
	assert := assert.New(t)
	a, b := provider.NewCallID(), provider.NewCallID()
	assert.True(strings.HasPrefix(a, "call_"))
	assert.NotEqual(a, b)
}

func Test_provider_006(t *testing.T) {
	// Results are matched to calls by identifier
	assert := assert.New(t)
	calls := []schema.ToolCall{{ID: "a", Name: "one"}, {ID: "b", Name: "two"}}
	results := []schema.ToolResult{
		schema.NewToolResult(calls[1], "second"),
		schema.NewToolResult(calls[0], "first"),
	}
	matched, err := provider.MatchResults(calls, results)
	assert.NoError(err)
	if assert.Len(matched, 2) {
		assert.Equal("first", matched[0].Content)
		assert.Equal("second", matched[1].Content)
	}

	_, err = provider.MatchResults(calls, results[:1])
	assert.ErrorIs(err, toolcall.ErrBadParameter)
}

func Test_provider_007(t *testing.T) {
	// Repeated or missing identifiers are replaced
	assert := assert.New(t)
	seen := make(map[string]bool)
	assert.Equal("a", provider.CallID(nil, seen, "a"))
	b := provider.CallID(nil, seen, "a")
	assert.NotEqual("a", b)
	assert.True(strings.HasPrefix(b, "call_"))
	c := provider.CallID(nil, seen, "")
	assert.NotEqual(b, c)
	assert.Len(seen, 3)
}
