package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistorySystemAnchor(t *testing.T) {
	h := NewConversationHistory("You are a test agent.")
	assert.Equal(t, 1, h.Len())

	sys, ok := h.SystemMessage()
	assert.True(t, ok)
	assert.Equal(t, "You are a test agent.", sys)

	// Replacement updates in place, never appends.
	h.AddUser("hello")
	h.AddSystem("Updated instructions.")
	msgs := h.Messages()
	assert.Len(t, msgs, 2)
	assert.Equal(t, RoleSystem, msgs[0].Role)
	assert.Equal(t, "Updated instructions.", msgs[0].Content)
	assert.Equal(t, RoleUser, msgs[1].Role)
}

func TestHistorySystemInsertedFirst(t *testing.T) {
	h := NewConversationHistory("")
	h.AddUser("hello")
	h.AddSystem("late instructions")

	msgs := h.Messages()
	assert.Len(t, msgs, 2)
	assert.Equal(t, RoleSystem, msgs[0].Role)
	assert.Equal(t, RoleUser, msgs[1].Role)
}

func TestHistoryAppendOrder(t *testing.T) {
	h := NewConversationHistory("sys")
	h.AddUser("question")
	h.AddAssistant("action")
	h.AddToolResult("calculator", "4")
	h.AddAssistant("answer")

	msgs := h.Messages()
	roles := make([]Role, 0, len(msgs))
	for _, m := range msgs {
		roles = append(roles, m.Role)
	}
	assert.Equal(t, []Role{RoleSystem, RoleUser, RoleAssistant, RoleTool, RoleAssistant}, roles)
	assert.Equal(t, "calculator", msgs[3].Name)
}

func TestHistoryMessagesIsDefensiveCopy(t *testing.T) {
	h := NewConversationHistory("sys")
	h.AddUser("hello")

	msgs := h.Messages()
	msgs[0].Content = "mutated"

	fresh := h.Messages()
	assert.Equal(t, "sys", fresh[0].Content)
}

func TestHistoryReset(t *testing.T) {
	h := NewConversationHistory("sys")
	h.AddUser("hello")
	h.AddAssistant("hi")

	h.Reset(true)
	assert.Equal(t, 1, h.Len())
	sys, ok := h.SystemMessage()
	assert.True(t, ok)
	assert.Equal(t, "sys", sys)

	h.AddUser("again")
	h.Reset(false)
	assert.Equal(t, 0, h.Len())
	_, ok = h.SystemMessage()
	assert.False(t, ok)
}
