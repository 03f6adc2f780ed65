package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

// -------------------- Message Tests --------------------

func TestMessageConstructors(t *testing.T) {
	assert.Equal(t, Message{Role: RoleUser, Content: "hi"}, NewUserMessage("hi"))
	assert.Equal(t, Message{Role: RoleAssistant, Content: "hello"}, NewAssistantMessage("hello"))
	assert.Equal(t, Message{Role: RoleSystem, Content: "Tool result: {}"}, NewSystemMessage("Tool result: {}"))
}

func TestMessageJSON(t *testing.T) {
	msg := NewUserMessage("help")
	data, err := json.Marshal(msg)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"role":"user","content":"help"}`, string(data))
}

// -------------------- ID Tests --------------------

func TestNewID(t *testing.T) {
	a := NewID()
	b := NewID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
}
