package gemini

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

// Adapter translates to and from the generateContent format, where tool
// calls arrive as functionCall parts of the first candidate
type Adapter struct {
	logger *slog.Logger
}

var _ provider.Adapter = (*Adapter)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultName = "gemini"
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

// ToWireSchema returns a single tool holding all function declarations
func (*Adapter) ToWireSchema(catalog []schema.CatalogEntry) (json.RawMessage, error) {
	if len(catalog) == 0 {
		return nil, nil
	}
	tool := &geminiTool{}
	for _, entry := range catalog {
		params := entry.Parameters
		if len(params) == 0 {
			params = schema.EmptyObjectSchema()
		}
		tool.FunctionDeclarations = append(tool.FunctionDeclarations, &geminiFunctionDeclaration{
			Name:                 entry.Name,
			Description:          entry.Description,
			ParametersJSONSchema: json.RawMessage(params),
		})
	}
	return json.Marshal([]*geminiTool{tool})
}

// NewRequest returns a request with the conversation as contents, where
// assistant turns have the model role
func (*Adapter) NewRequest(system string, messages []schema.Message) (*provider.Request, error) {
	req := &provider.Request{System: strings.TrimSpace(system)}
	for _, message := range messages {
		var role string
		switch message.Role {
		case schema.RoleSystem:
			req.System = strings.TrimSpace(strings.Join([]string{req.System, message.Content}, "\n\n"))
			continue
		case schema.RoleUser:
			role = roleUser
		case schema.RoleAssistant:
			role = roleModel
		default:
			return nil, toolcall.ErrBadParameter.Withf("invalid role %q", message.Role)
		}
		content, err := newContent(role, geminiPart{Text: message.Content})
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(content)
		if err != nil {
			return nil, err
		}
		req.Messages = append(req.Messages, data)
	}
	return req, nil
}

// ParseToolCalls returns the functionCall parts of the first candidate.
// Gemini does not always supply call identifiers, so missing ones are
// synthesized.
func (a *Adapter) ParseToolCalls(response json.RawMessage) ([]schema.ToolCall, error) {
	parts, err := candidateParts(response)
	if err != nil {
		return nil, err
	}
	var calls []schema.ToolCall
	seen := make(map[string]bool)
	for _, part := range parts {
		if part.FunctionCall == nil || part.FunctionCall.Name == "" {
			continue
		}
		calls = append(calls, schema.ToolCall{
			ID:        provider.CallID(a.logger, seen, part.FunctionCall.ID),
			Name:      part.FunctionCall.Name,
			Arguments: provider.Arguments(a.logger, part.FunctionCall.Name, part.FunctionCall.Args),
		})
	}
	return calls, nil
}

// ParseText returns the text parts of the first candidate, ignoring thoughts
func (*Adapter) ParseText(response json.RawMessage) (string, error) {
	parts, err := candidateParts(response)
	if err != nil {
		return "", err
	}
	var text strings.Builder
	for _, part := range parts {
		if part.Text != "" && !part.Thought {
			text.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(text.String()), nil
}

// BuildFollowupMessages appends the model turn as returned and one user
// turn with a functionResponse part per call
func (*Adapter) BuildFollowupMessages(prior []json.RawMessage, response json.RawMessage, calls []schema.ToolCall, results []schema.ToolResult) ([]json.RawMessage, error) {
	results, err := provider.MatchResults(calls, results)
	if err != nil {
		return nil, err
	}
	resp, err := decodeResponse(response)
	if err != nil {
		return nil, err
	}

	// The model turn is echoed verbatim
	model := &geminiContent{Role: roleModel}
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		model.Parts = resp.Candidates[0].Content.Parts
	}

	parts := make([]geminiPart, 0, len(results))
	for _, result := range results {
		payload := map[string]any{responseOutput: result.Content}
		if !result.Success {
			payload = map[string]any{responseError: result.Text()}
		}
		parts = append(parts, geminiPart{FunctionResponse: &geminiFunctionResult{
			ID:       echoID(resp, result.ID),
			Name:     result.Name,
			Response: payload,
		}})
	}
	user, err := newContent(roleUser, parts...)
	if err != nil {
		return nil, err
	}

	followup, err := provider.Marshal(model, user)
	if err != nil {
		return nil, err
	}
	return append(append(make([]json.RawMessage, 0, len(prior)+len(followup)), prior...), followup...), nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func newContent(role string, parts ...geminiPart) (*geminiContent, error) {
	raw, err := provider.Marshal(parts...)
	if err != nil {
		return nil, err
	}
	return &geminiContent{Role: role, Parts: raw}, nil
}

func decodeResponse(response json.RawMessage) (*geminiGenerateResponse, error) {
	var resp geminiGenerateResponse
	if err := json.Unmarshal(response, &resp); err != nil {
		return nil, toolcall.ErrParse.Withf("response: %v", err)
	}
	return &resp, nil
}

// candidateParts returns the decoded parts of the first candidate
func candidateParts(response json.RawMessage) ([]geminiPart, error) {
	resp, err := decodeResponse(response)
	if err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return nil, nil
	}
	parts := make([]geminiPart, 0, len(resp.Candidates[0].Content.Parts))
	for _, raw := range resp.Candidates[0].Content.Parts {
		var part geminiPart
		if err := json.Unmarshal(raw, &part); err != nil {
			return nil, toolcall.ErrParse.Withf("part: %v", err)
		}
		parts = append(parts, part)
	}
	return parts, nil
}

// echoID returns the identifier to send back with a function response,
// which is empty when the model did not supply one
func echoID(resp *geminiGenerateResponse, id string) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return ""
	}
	for _, raw := range resp.Candidates[0].Content.Parts {
		var part geminiPart
		if err := json.Unmarshal(raw, &part); err == nil && part.FunctionCall != nil && part.FunctionCall.ID == id {
			return id
		}
	}
	return ""
}
