package schema_test

import (
	"testing"

	// Packages
	schema "github.com/mutablelogic/go-toolcall/pkg/schema"
	assert "github.com/stretchr/testify/assert"
)

func TestNewMessage(t *testing.T) {
	assert := assert.New(t)

	msg := schema.NewMessage(schema.RoleUser, "  Hello, world!\n")
	if assert.NotNil(msg) {
		assert.Equal("user", msg.Role)
		assert.Equal("Hello, world!", msg.Content)
	}

	// Unknown role and empty text
	assert.Nil(schema.NewMessage("tool", "Hello"))
	assert.Nil(schema.NewMessage(schema.RoleUser, "   "))
}
