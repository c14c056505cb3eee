/*
provider defines the contract between the orchestrator and a model vendor.
An Adapter translates the tool catalog, conversation and tool results into
the vendor's wire format and extracts tool calls and text from responses.
A Model sends a request to the vendor and returns the raw response.
*/
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	// Packages
	uuid "github.com/google/uuid"
	jsonrepair "github.com/kaptinlin/jsonrepair"
	toolcall "github.com/mutablelogic/go-toolcall"
	schema "github.com/mutablelogic/go-toolcall/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Adapter translates between the neutral tool model and one vendor's
// wire format. Implementations are stateless.
type Adapter interface {
	// Return the vendor name
	Name() string

	// Return the vendor tool declarations for a catalog, or nil when
	// the catalog is empty
	ToWireSchema(catalog []schema.CatalogEntry) (json.RawMessage, error)

	// Return an initial request for a system prompt and conversation
	NewRequest(system string, messages []schema.Message) (*Request, error)

	// Return the tool calls in a response, or nil when there are none
	ParseToolCalls(response json.RawMessage) ([]schema.ToolCall, error)

	// Return the text content of a response
	ParseText(response json.RawMessage) (string, error)

	// Return the conversation extended with the assistant turn and the
	// tool results, in the order of the calls
	BuildFollowupMessages(prior []json.RawMessage, response json.RawMessage, calls []schema.ToolCall, results []schema.ToolResult) ([]json.RawMessage, error)
}

// Model generates a vendor response for a request
type Model interface {
	Generate(ctx context.Context, req *Request) (json.RawMessage, error)
}

// Request is a vendor request in the making. Messages are in the vendor
// wire format and Tools holds the output of ToWireSchema. An empty Model
// selects the default model of the client.
type Request struct {
	Model    string            `json:"model,omitempty"`
	System   string            `json:"system,omitempty"`
	Messages []json.RawMessage `json:"messages"`
	Tools    json.RawMessage   `json:"tools,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	callPrefix = "call_"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// NewCallID returns a call identifier for vendors that do not supply one
func NewCallID() string {
	return callPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// CallID returns the call identifier supplied by the vendor, or a new one
// when it is missing or was already used within the same response. Returned
// identifiers are recorded in seen.
func CallID(logger *slog.Logger, seen map[string]bool, id string) string {
	if id != "" && seen[id] {
		if logger != nil {
			logger.Warn("duplicate tool call id", "id", id)
		}
		id = ""
	}
	if id == "" {
		id = NewCallID()
	}
	seen[id] = true
	return id
}

// DecodeArguments decodes tool call arguments, which may be a JSON object
// or a JSON string containing an object. Malformed JSON is repaired when
// possible. When the arguments cannot be decoded an empty map is returned
// along with an ErrParse error.
func DecodeArguments(data []byte) (map[string]any, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return map[string]any{}, nil
	}

	// Unwrap a string-encoded object
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return map[string]any{}, toolcall.ErrParse.Withf("arguments: %v", err)
		}
		data = []byte(strings.TrimSpace(str))
		if len(data) == 0 {
			return map[string]any{}, nil
		}
	}

	// Decode, repairing if necessary
	args, err := decodeObject(data)
	if err == nil {
		return args, nil
	}
	repaired, rerr := jsonrepair.JSONRepair(string(data))
	if rerr != nil {
		return map[string]any{}, toolcall.ErrParse.Withf("arguments: %v", err)
	}
	if args, rerr := decodeObject([]byte(repaired)); rerr == nil {
		return args, nil
	}
	return map[string]any{}, toolcall.ErrParse.Withf("arguments: %v", err)
}

// Arguments decodes tool call arguments, logging and degrading to an empty
// map when they cannot be decoded
func Arguments(logger *slog.Logger, name string, data []byte) map[string]any {
	args, err := DecodeArguments(data)
	if err != nil && logger != nil {
		logger.Warn("malformed tool arguments", "tool", name, "error", err)
	}
	return args
}

// MatchResults returns the results in the order of the calls, matching
// each result to its call by identifier
func MatchResults(calls []schema.ToolCall, results []schema.ToolResult) ([]schema.ToolResult, error) {
	byID := make(map[string]schema.ToolResult, len(results))
	for _, result := range results {
		byID[result.ID] = result
	}
	matched := make([]schema.ToolResult, 0, len(calls))
	for _, call := range calls {
		result, exists := byID[call.ID]
		if !exists {
			return nil, toolcall.ErrBadParameter.Withf("no result for call %q (%s)", call.ID, call.Name)
		}
		matched = append(matched, result)
	}
	return matched, nil
}

// Marshal encodes each value as a raw JSON message
func Marshal[T any](values ...T) ([]json.RawMessage, error) {
	result := make([]json.RawMessage, 0, len(values))
	for _, value := range values {
		data, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		result = append(result, data)
	}
	return result, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func decodeObject(data []byte) (map[string]any, error) {
	var args map[string]any
	if err := json.Unmarshal(data, &args); err != nil {
		return nil, err
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}
