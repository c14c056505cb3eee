package gemini

import (
	"encoding/json"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES - Gemini REST API wire format
//
// Reference: https://ai.google.dev/api/generate-content
//            https://ai.google.dev/gemini-api/docs/function-calling

// geminiContent is a single turn. Parts are kept raw so that fields the
// model returns, such as thought signatures, survive a round trip.
type geminiContent struct {
	Role  string            `json:"role,omitempty"`
	Parts []json.RawMessage `json:"parts"`
}

// geminiPart is a single piece of content. Only one field is set.
type geminiPart struct {
	Text             string                `json:"text,omitempty"`
	Thought          bool                  `json:"thought,omitempty"`
	FunctionCall     *geminiFunctionCall   `json:"functionCall,omitempty"`
	FunctionResponse *geminiFunctionResult `json:"functionResponse,omitempty"`
}

// geminiFunctionCall is a model-requested tool invocation
type geminiFunctionCall struct {
	ID   string          `json:"id,omitempty"`
	Name string          `json:"name"`
	Args json.RawMessage `json:"args,omitempty"`
}

// geminiFunctionResult is the client-supplied result of a tool invocation
type geminiFunctionResult struct {
	ID       string         `json:"id,omitempty"`
	Name     string         `json:"name"`
	Response map[string]any `json:"response"`
}

// geminiGenerateRequest is the request body for POST models/{model}:generateContent
type geminiGenerateRequest struct {
	Contents          []json.RawMessage `json:"contents"`
	Tools             json.RawMessage   `json:"tools,omitempty"`
	ToolConfig        *geminiToolConfig `json:"toolConfig,omitempty"`
	SystemInstruction *geminiContent    `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiConfig     `json:"generationConfig,omitempty"`
}

// geminiConfig holds generation parameters
type geminiConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens,omitempty"`
}

// geminiGenerateResponse is the response body for generateContent
type geminiGenerateResponse struct {
	Candidates []*geminiCandidate `json:"candidates"`
}

// geminiCandidate is one candidate response
type geminiCandidate struct {
	Content      *geminiContent `json:"content,omitempty"`
	FinishReason string         `json:"finishReason,omitempty"`
}

// geminiTool wraps the function declarations offered to the model
type geminiTool struct {
	FunctionDeclarations []*geminiFunctionDeclaration `json:"functionDeclarations"`
}

// geminiFunctionDeclaration describes a tool using a JSON schema
type geminiFunctionDeclaration struct {
	Name                 string          `json:"name"`
	Description          string          `json:"description"`
	ParametersJSONSchema json.RawMessage `json:"parametersJsonSchema,omitempty"`
}

// geminiToolConfig configures tool behaviour
type geminiToolConfig struct {
	FunctionCallingConfig *geminiFunctionCallingConfig `json:"functionCallingConfig,omitempty"`
}

// geminiFunctionCallingConfig sets the function calling mode
type geminiFunctionCallingConfig struct {
	Mode string `json:"mode"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	roleUser  = "user"
	roleModel = "model"
	modeAuto  = "AUTO"
)

const (
	responseOutput = "output"
	responseError  = "error"
)

const (
	defaultMaxTokens = 1024
)
