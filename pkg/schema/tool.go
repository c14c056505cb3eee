package schema

import (
	"context"
	"fmt"
	"time"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
	toolcall "github.com/mutablelogic/go-toolcall"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Handler is the function type every tool implements. Arguments are the
// decoded JSON object the model supplied.
type Handler func(ctx context.Context, args map[string]any) (any, error)

// ToolDefinition is a tool resident in the registry, built from a manifest
// entry and a bound handler
type ToolDefinition struct {
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Plugin      string        `json:"plugin"`
	Handler     Handler       `json:"-"`
	Parameters  JSONSchema    `json:"parameters,omitempty"`
	Timeout     time.Duration `json:"timeout"`
	Enabled     bool          `json:"enabled"`
}

// CatalogEntry is the provider-agnostic shape of a tool offered to a model
type CatalogEntry struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Parameters  JSONSchema `json:"parameters"`
}

// ToolCall is a request by the model to run a tool
type ToolCall struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// ToolResult is the normalized outcome of one tool call
type ToolResult struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Content string     `json:"content"`
	Success bool       `json:"success"`
	Error   *ToolError `json:"error,omitempty"`
}

// ToolError describes why a tool call failed
type ToolError struct {
	Kind    toolcall.Err `json:"kind"`
	Message string       `json:"message"`
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewToolDefinition binds a manifest entry to a handler for a plugin
func NewToolDefinition(plugin string, entry ToolManifestEntry, handler Handler) *ToolDefinition {
	return &ToolDefinition{
		Name:        entry.Name,
		Description: entry.Description,
		Plugin:      plugin,
		Handler:     handler,
		Parameters:  entry.Parameters,
		Timeout:     entry.Duration(),
		Enabled:     true,
	}
}

// NewToolResult creates a successful result
func NewToolResult(call ToolCall, content string) ToolResult {
	return ToolResult{
		ID:      call.ID,
		Name:    call.Name,
		Content: content,
		Success: true,
	}
}

// NewToolError creates a failed result. The content carries the message
// so that the model can react to it like ordinary tool output.
func NewToolError(call ToolCall, kind toolcall.Err, message string) ToolResult {
	return ToolResult{
		ID:      call.ID,
		Name:    call.Name,
		Content: message,
		Success: false,
		Error:   &ToolError{Kind: kind, Message: message},
	}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Catalog returns the model-facing shape of the tool
func (t ToolDefinition) Catalog() CatalogEntry {
	params := t.Parameters
	if len(params) == 0 {
		params = EmptyObjectSchema()
	}
	return CatalogEntry{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  params,
	}
}

// Text returns what is fed back to the model for this result
func (r ToolResult) Text() string {
	if r.Success {
		return r.Content
	}
	if r.Error != nil {
		return "Error: " + r.Error.Message
	}
	return "Error: " + r.Content
}

// Kind returns the error kind, or ErrSuccess
func (r ToolResult) Kind() toolcall.Err {
	if r.Error == nil {
		return toolcall.ErrSuccess
	}
	return r.Error.Kind
}

func (e ToolError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e ToolError) Unwrap() error {
	return e.Kind
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (t ToolDefinition) String() string {
	return types.Stringify(t)
}

func (c ToolCall) String() string {
	return types.Stringify(c)
}

func (r ToolResult) String() string {
	return types.Stringify(r)
}
