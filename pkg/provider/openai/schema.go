package openai

import (
	"encoding/json"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES - Chat completions wire format
//
// Reference: https://platform.openai.com/docs/api-reference/chat/create
//            https://docs.mistral.ai/api/#tag/chat

// chatCompletionRequest is the request body for POST /chat/completions
type chatCompletionRequest struct {
	Model      string            `json:"model"`
	Messages   []json.RawMessage `json:"messages"`
	MaxTokens  int               `json:"max_tokens,omitempty"`
	Tools      json.RawMessage   `json:"tools,omitempty"`
	ToolChoice string            `json:"tool_choice,omitempty"`
}

// chatCompletionResponse is the non-streaming response body
type chatCompletionResponse struct {
	Id      string       `json:"id"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
	Usage   chatUsage    `json:"usage"`
}

// chatChoice is one element of the choices array
type chatChoice struct {
	Index        int         `json:"index"`
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// chatUsage reports token counts for a completion
type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// chatMessage is a single turn. Content is a string or an array of parts
// in responses, and is always a string in the messages we build.
type chatMessage struct {
	Role       string          `json:"role"`
	Content    json.RawMessage `json:"content"`
	ToolCalls  []chatCall      `json:"tool_calls,omitempty"`
	ToolCallID string          `json:"tool_call_id,omitempty"`
}

// chatCall is a tool invocation in an assistant message
type chatCall struct {
	Id       string       `json:"id"`
	Type     string       `json:"type"`
	Function chatFunction `json:"function"`
}

// chatFunction carries the function name and arguments. Arguments are
// usually a JSON-encoded string, but some compatible servers send an object.
type chatFunction struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// chatPart is one element of a multi-part content array
type chatPart struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// toolDefinition describes a tool the model may call
type toolDefinition struct {
	Type     string          `json:"type"`
	Function toolFunctionDef `json:"function"`
}

// toolFunctionDef describes the function signature for a tool
type toolFunctionDef struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	roleTool     = "tool"
	typeFunction = "function"
	toolAuto     = "auto"
)
