package anthropic

import (
	"encoding/json"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES - Anthropic REST API wire format
//
// Reference: https://docs.anthropic.com/en/api/messages
//            https://docs.anthropic.com/en/docs/build-with-claude/tool-use

// messagesRequest is the request body for POST /v1/messages
type messagesRequest struct {
	MaxTokens  int               `json:"max_tokens"`
	Messages   []json.RawMessage `json:"messages"`
	Model      string            `json:"model"`
	System     string            `json:"system,omitempty"`
	ToolChoice *toolChoice       `json:"tool_choice,omitempty"`
	Tools      json.RawMessage   `json:"tools,omitempty"`
}

// toolChoice specifies which tool(s) the model may use
type toolChoice struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
}

// messagesResponse is the response body from POST /v1/messages
type messagesResponse struct {
	Id         string                  `json:"id"`
	Model      string                  `json:"model"`
	Type       string                  `json:"type"`
	Role       string                  `json:"role"`
	Content    []anthropicContentBlock `json:"content"`
	StopReason string                  `json:"stop_reason"`
	Usage      messagesUsage           `json:"usage"`
}

// messagesUsage reports token counts for a messages request
type messagesUsage struct {
	InputTokens  uint `json:"input_tokens"`
	OutputTokens uint `json:"output_tokens"`
}

// anthropicMessage represents a single turn in a conversation
type anthropicMessage struct {
	Role    string                  `json:"role"`
	Content []anthropicContentBlock `json:"content"`
}

// anthropicContentBlock represents a content block. Different block types
// use different subsets of fields.
type anthropicContentBlock struct {
	Type string `json:"type"`

	// text block
	Text string `json:"text,omitempty"`

	// tool_use block
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`

	// tool_result block
	ToolUseID string `json:"tool_use_id,omitempty"`
	Content   string `json:"content,omitempty"`
	IsError   bool   `json:"is_error,omitempty"`

	// thinking block
	Thinking  string `json:"thinking,omitempty"`
	Signature string `json:"signature,omitempty"`
}

// toolDefinition declares a tool with its input schema
type toolDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	InputSchema json.RawMessage `json:"input_schema"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	blockTypeText       = "text"
	blockTypeToolUse    = "tool_use"
	blockTypeToolResult = "tool_result"
)

const (
	toolChoiceAuto = "auto"
)

const (
	defaultMaxTokens = 1024
)
