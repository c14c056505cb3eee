package executor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Normalize converts a handler return value into tool output text. Strings
// pass through, nil is empty and structured values are encoded as JSON,
// even when they implement fmt.Stringer.
func Normalize(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case json.RawMessage:
		return string(v), nil
	case error:
		return v.Error(), nil
	case fmt.Stringer:
		if !structured(v) {
			return v.String(), nil
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	result := string(bytes.TrimRight(buf.Bytes(), "\n"))
	if result == "null" {
		return "", nil
	}
	return result, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// structured returns true for records, maps and lists, and for nil pointers
func structured(v any) bool {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return true
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array:
		return true
	}
	return false
}
