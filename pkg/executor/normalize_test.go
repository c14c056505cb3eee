package executor_test

import (
	"encoding/json"
	"errors"
	"testing"

	// Packages
	executor "github.com/mutablelogic/go-toolcall/pkg/executor"
	assert "github.com/stretchr/testify/assert"
)

type weather struct {
	City string  `json:"city"`
	Temp float64 `json:"temp"`
}

type named string

func (n named) String() string { return "name:" + string(n) }

type reading struct {
	City string `json:"city"`
}

func (r reading) String() string { return "reading in " + r.City }

func Test_normalize_001(t *testing.T) {
	assert := assert.New(t)
	var nilRecord *weather

	tests := []struct {
		in  any
		out string
	}{
		{nil, ""},
		{"text", "text"},
		{[]byte("bytes"), "bytes"},
		{json.RawMessage(`{"a":1}`), `{"a":1}`},
		{4.0, "4"},
		{2.5, "2.5"},
		{42, "42"},
		{true, "true"},
		{errors.New("failed"), "failed"},
		{named("x"), "name:x"},
		{nilRecord, ""},
		{weather{City: "<Paris>", Temp: 20}, `{"city":"<Paris>","temp":20}`},
		{[]string{"a", "b"}, `["a","b"]`},
		{reading{City: "Oslo"}, `{"city":"Oslo"}`},
		{&reading{City: "Oslo"}, `{"city":"Oslo"}`},
		{map[string]any{"k": "v"}, `{"k":"v"}`},
	}
	for _, test := range tests {
		out, err := executor.Normalize(test.in)
		assert.NoError(err)
		assert.Equal(test.out, out)
	}

	_, err := executor.Normalize(make(chan int))
	assert.Error(err)
}
