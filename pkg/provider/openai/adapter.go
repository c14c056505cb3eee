package openai

import (
	"encoding/json"
	"log/slog"
	"strings"

	// Packages
	toolcall "github.com/mutablelogic/go-toolcall"
	provider "github.com/mutablelogic/go-toolcall/pkg/provider"
	schema "github.com/mutablelogic/go-toolcall/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Adapter translates to and from the chat completions format, where tool
// calls arrive as function blocks with JSON-encoded string arguments
type Adapter struct {
	logger *slog.Logger
}

var _ provider.Adapter = (*Adapter)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultName = "openai"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewAdapter returns an adapter which logs malformed arguments to logger
func NewAdapter(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{logger: logger}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Name returns the adapter name
func (*Adapter) Name() string {
	return defaultName
}

// ToWireSchema returns the tools array
func (*Adapter) ToWireSchema(catalog []schema.CatalogEntry) (json.RawMessage, error) {
	if len(catalog) == 0 {
		return nil, nil
	}
	tools := make([]toolDefinition, 0, len(catalog))
	for _, entry := range catalog {
		params := entry.Parameters
		if len(params) == 0 {
			params = schema.EmptyObjectSchema()
		}
		tools = append(tools, toolDefinition{
			Type: typeFunction,
			Function: toolFunctionDef{
				Name:        entry.Name,
				Description: entry.Description,
				Parameters:  json.RawMessage(params),
			},
		})
	}
	return json.Marshal(tools)
}

// NewRequest returns a request with the system prompt as the first message
func (*Adapter) NewRequest(system string, messages []schema.Message) (*provider.Request, error) {
	req := new(provider.Request)
	if system = strings.TrimSpace(system); system != "" {
		msg, err := newMessage(schema.RoleSystem, system)
		if err != nil {
			return nil, err
		}
		req.Messages = append(req.Messages, msg)
	}
	for _, message := range messages {
		msg, err := newMessage(message.Role, message.Content)
		if err != nil {
			return nil, err
		}
		req.Messages = append(req.Messages, msg)
	}
	return req, nil
}

// ParseToolCalls returns the function calls of the first choice
func (a *Adapter) ParseToolCalls(response json.RawMessage) ([]schema.ToolCall, error) {
	message, err := firstMessage(response)
	if err != nil || message == nil {
		return nil, err
	}
	var calls []schema.ToolCall
	seen := make(map[string]bool)
	for _, call := range message.ToolCalls {
		if call.Function.Name == "" {
			continue
		}
		calls = append(calls, schema.ToolCall{
			ID:        provider.CallID(a.logger, seen, call.Id),
			Name:      call.Function.Name,
			Arguments: provider.Arguments(a.logger, call.Function.Name, call.Function.Arguments),
		})
	}
	return calls, nil
}

// ParseText returns the text content of the first choice
func (*Adapter) ParseText(response json.RawMessage) (string, error) {
	message, err := firstMessage(response)
	if err != nil || message == nil {
		return "", err
	}
	return strings.TrimSpace(contentText(message.Content)), nil
}

// BuildFollowupMessages appends the assistant turn with its tool calls and
// one tool message per result
func (*Adapter) BuildFollowupMessages(prior []json.RawMessage, response json.RawMessage, calls []schema.ToolCall, results []schema.ToolResult) ([]json.RawMessage, error) {
	results, err := provider.MatchResults(calls, results)
	if err != nil {
		return nil, err
	}
	message, err := firstMessage(response)
	if err != nil {
		return nil, err
	}

	// The assistant turn repeats the calls with the identifiers used for the results
	assistant := chatMessage{Role: schema.RoleAssistant, Content: json.RawMessage(`""`)}
	if message != nil && len(message.Content) > 0 && string(message.Content) != "null" {
		assistant.Content = message.Content
	}
	for _, call := range calls {
		args, err := json.Marshal(call.Arguments)
		if err != nil {
			return nil, toolcall.ErrBadParameter.Withf("%s: %v", call.Name, err)
		}
		encoded, err := json.Marshal(string(args))
		if err != nil {
			return nil, err
		}
		assistant.ToolCalls = append(assistant.ToolCalls, chatCall{
			Id:       call.ID,
			Type:     typeFunction,
			Function: chatFunction{Name: call.Name, Arguments: encoded},
		})
	}

	messages := make([]chatMessage, 0, len(results)+1)
	messages = append(messages, assistant)
	for _, result := range results {
		content, err := json.Marshal(result.Text())
		if err != nil {
			return nil, err
		}
		messages = append(messages, chatMessage{
			Role:       roleTool,
			Content:    content,
			ToolCallID: result.ID,
		})
	}

	followup, err := provider.Marshal(messages...)
	if err != nil {
		return nil, err
	}
	return append(append(make([]json.RawMessage, 0, len(prior)+len(followup)), prior...), followup...), nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func newMessage(role, text string) (json.RawMessage, error) {
	switch role {
	case schema.RoleSystem, schema.RoleUser, schema.RoleAssistant:
	default:
		return nil, toolcall.ErrBadParameter.Withf("invalid role %q", role)
	}
	content, err := json.Marshal(text)
	if err != nil {
		return nil, err
	}
	return json.Marshal(chatMessage{Role: role, Content: content})
}

// firstMessage returns the message of the first choice, or nil if there
// are no choices
func firstMessage(response json.RawMessage) (*chatMessage, error) {
	var resp chatCompletionResponse
	if err := json.Unmarshal(response, &resp); err != nil {
		return nil, toolcall.ErrParse.Withf("response: %v", err)
	}
	if len(resp.Choices) == 0 {
		return nil, nil
	}
	return &resp.Choices[0].Message, nil
}

// contentText returns the text of a string or multi-part content
func contentText(content json.RawMessage) string {
	if len(content) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(content, &text); err == nil {
		return text
	}
	var parts []chatPart
	if err := json.Unmarshal(content, &parts); err != nil {
		return ""
	}
	var b strings.Builder
	for _, part := range parts {
		if part.Type == "text" {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}
