package core

import "github.com/google/uuid"

// Role identifies the author of a conversation message.
type Role string

const (
	// RoleSystem anchors a history with the agent's instructions.
	RoleSystem Role = "system"
	// RoleUser marks caller input, including delegated tasks received from a parent.
	RoleUser Role = "user"
	// RoleAssistant marks model output (actions and final answers).
	RoleAssistant Role = "assistant"
	// RoleTool marks tool results and delegated-agent results fed back to the model.
	RoleTool Role = "tool"
)

// Message is one entry of a conversation history. Histories are replayed to
// the model verbatim on every turn, so Messages should be treated as
// immutable once appended.
type Message struct {
	ID      string `json:"id"`
	Role    Role   `json:"role"`
	Content string `json:"content"`
	// Name attributes a RoleTool message to the tool or delegated agent that
	// produced it. Empty for all other roles.
	Name string `json:"name,omitempty"`
}

// NewID generates a unique identifier for messages and conversations.
func NewID() string { return uuid.NewString() }

// NewSystemMessage creates the instruction message that anchors a history.
func NewSystemMessage(content string) Message {
	return Message{ID: NewID(), Role: RoleSystem, Content: content}
}

// NewUserMessage creates a user-authored message.
func NewUserMessage(content string) Message {
	return Message{ID: NewID(), Role: RoleUser, Content: content}
}

// NewAssistantMessage creates a model-authored message.
func NewAssistantMessage(content string) Message {
	return Message{ID: NewID(), Role: RoleAssistant, Content: content}
}

// NewToolResultMessage creates a result message attributed to the named tool
// or delegated agent.
func NewToolResultMessage(name, content string) Message {
	return Message{ID: NewID(), Role: RoleTool, Content: content, Name: name}
}
