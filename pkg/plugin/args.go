package plugin

import (
	"encoding/json"
	"fmt"
	"strings"

	// Packages
	toolcall "github.com/mutablelogic/go-toolcall"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Decode converts an argument map into the struct pointed to by v, using
// the json tags of the struct. A type mismatch returns ErrInvalidArguments.
func Decode(args map[string]any, v any) error {
	if args == nil {
		args = map[string]any{}
	}
	data, err := json.Marshal(args)
	if err != nil {
		return toolcall.ErrInvalidArguments.With(err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return toolcall.ErrInvalidArguments.With(err)
	}
	return nil
}

// String returns a required, non-empty string argument
func String(args map[string]any, key string) (string, error) {
	value, exists := args[key]
	if !exists || value == nil {
		return "", toolcall.ErrInvalidArguments.Withf("missing argument %q", key)
	}
	str, ok := value.(string)
	if !ok {
		return "", toolcall.ErrInvalidArguments.Withf("argument %q must be a string", key)
	}
	if str = strings.TrimSpace(str); str == "" {
		return "", toolcall.ErrInvalidArguments.Withf("argument %q is empty", key)
	}
	return str, nil
}

// OptString returns an optional string argument, or the default
func OptString(args map[string]any, key, def string) string {
	if value, exists := args[key]; exists && value != nil {
		if str := strings.TrimSpace(fmt.Sprint(value)); str != "" {
			return str
		}
	}
	return def
}

// Int returns an optional integer argument, or the default. Whole floats
// and numeric strings are accepted.
func Int(args map[string]any, key string, def int) (int, error) {
	value, exists := args[key]
	if !exists || value == nil {
		return def, nil
	}
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v == float64(int(v)) {
			return int(v), nil
		}
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n), nil
		}
	case string:
		var n int
		if _, err := fmt.Sscan(v, &n); err == nil {
			return n, nil
		}
	}
	return 0, toolcall.ErrInvalidArguments.Withf("argument %q must be an integer", key)
}
