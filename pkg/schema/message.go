package schema

import (
	"strings"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Message is a provider-agnostic conversation message. Adapters reshape
// messages into their wire format.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewMessage creates a message, returning nil if the role is unknown or the
// text is empty
func NewMessage(role, text string) *Message {
	switch role {
	case RoleSystem, RoleUser, RoleAssistant:
	default:
		return nil
	}
	if text = strings.TrimSpace(text); text == "" {
		return nil
	}
	return types.Ptr(Message{Role: role, Content: text})
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (m Message) String() string {
	return types.Stringify(m)
}
