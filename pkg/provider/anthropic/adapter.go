package anthropic

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

// Adapter translates to and from the Messages format, where tool calls
// arrive as tool_use content blocks with a native input object
type Adapter struct {
	logger *slog.Logger
}

var _ provider.Adapter = (*Adapter)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultName = "anthropic"
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

// ToWireSchema returns the tools array with input_schema declarations
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
			Name:        entry.Name,
			Description: entry.Description,
			InputSchema: json.RawMessage(params),
		})
	}
	return json.Marshal(tools)
}

// NewRequest returns a request with a top-level system prompt. System
// messages in the conversation are folded into the system prompt.
func (*Adapter) NewRequest(system string, messages []schema.Message) (*provider.Request, error) {
	req := &provider.Request{System: strings.TrimSpace(system)}
	for _, message := range messages {
		switch message.Role {
		case schema.RoleSystem:
			req.System = strings.TrimSpace(strings.Join([]string{req.System, message.Content}, "\n\n"))
		case schema.RoleUser, schema.RoleAssistant:
			data, err := json.Marshal(anthropicMessage{
				Role:    message.Role,
				Content: []anthropicContentBlock{{Type: blockTypeText, Text: message.Content}},
			})
			if err != nil {
				return nil, err
			}
			req.Messages = append(req.Messages, data)
		default:
			return nil, toolcall.ErrBadParameter.Withf("invalid role %q", message.Role)
		}
	}
	return req, nil
}

// ParseToolCalls returns the tool_use blocks of the response
func (a *Adapter) ParseToolCalls(response json.RawMessage) ([]schema.ToolCall, error) {
	resp, err := decodeResponse(response)
	if err != nil {
		return nil, err
	}
	var calls []schema.ToolCall
	seen := make(map[string]bool)
	for _, block := range resp.Content {
		if block.Type != blockTypeToolUse || block.Name == "" {
			continue
		}
		calls = append(calls, schema.ToolCall{
			ID:        provider.CallID(a.logger, seen, block.ID),
			Name:      block.Name,
			Arguments: provider.Arguments(a.logger, block.Name, block.Input),
		})
	}
	return calls, nil
}

// ParseText returns the concatenated text blocks of the response
func (*Adapter) ParseText(response json.RawMessage) (string, error) {
	resp, err := decodeResponse(response)
	if err != nil {
		return "", err
	}
	var text []string
	for _, block := range resp.Content {
		if block.Type == blockTypeText && block.Text != "" {
			text = append(text, block.Text)
		}
	}
	return strings.TrimSpace(strings.Join(text, "\n")), nil
}

// BuildFollowupMessages appends the assistant turn as returned by the model
// and one user turn carrying a tool_result block per call
func (*Adapter) BuildFollowupMessages(prior []json.RawMessage, response json.RawMessage, calls []schema.ToolCall, results []schema.ToolResult) ([]json.RawMessage, error) {
	results, err := provider.MatchResults(calls, results)
	if err != nil {
		return nil, err
	}
	resp, err := decodeResponse(response)
	if err != nil {
		return nil, err
	}

	// Echo the assistant content, giving any synthesized identifiers to the
	// tool_use blocks in call order
	assistant := anthropicMessage{Role: schema.RoleAssistant}
	i := 0
	for _, block := range resp.Content {
		if block.Type == blockTypeText && block.Text == "" {
			continue
		}
		if block.Type == blockTypeToolUse && block.Name != "" {
			if i < len(calls) {
				block.ID = calls[i].ID
			}
			if len(block.Input) == 0 {
				block.Input = json.RawMessage("{}")
			}
			i++
		}
		assistant.Content = append(assistant.Content, block)
	}

	user := anthropicMessage{Role: schema.RoleUser}
	for _, result := range results {
		user.Content = append(user.Content, anthropicContentBlock{
			Type:      blockTypeToolResult,
			ToolUseID: result.ID,
			Content:   result.Text(),
			IsError:   !result.Success,
		})
	}

	followup, err := provider.Marshal(assistant, user)
	if err != nil {
		return nil, err
	}
	return append(append(make([]json.RawMessage, 0, len(prior)+len(followup)), prior...), followup...), nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func decodeResponse(response json.RawMessage) (*messagesResponse, error) {
	var resp messagesResponse
	if err := json.Unmarshal(response, &resp); err != nil {
		return nil, toolcall.ErrParse.Withf("response: %v", err)
	}
	return &resp, nil
}
