package core

import "sync"

// ConversationHistory is the ordered, append-only message log owned by a
// single agent. It maintains two invariants:
//
//   - at most one system message exists and it is always first
//   - all other messages keep their append order
//
// It is safe for concurrent access, though the conversation loop itself only
// ever mutates it from one goroutine. Messages returns a defensive copy so
// callers can never mutate internal state.
type ConversationHistory struct {
	mu       sync.RWMutex
	messages []Message
}

// NewConversationHistory creates a history, anchored with the given system
// instruction if non-empty.
func NewConversationHistory(systemMessage string) *ConversationHistory {
	h := &ConversationHistory{}
	if systemMessage != "" {
		h.AddSystem(systemMessage)
	}
	return h
}

// AddSystem sets the system instruction. If a system message already exists
// its content is replaced in place, otherwise one is inserted at the front.
func (h *ConversationHistory) AddSystem(content string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := range h.messages {
		if h.messages[i].Role == RoleSystem {
			h.messages[i].Content = content
			return
		}
	}
	h.messages = append([]Message{NewSystemMessage(content)}, h.messages...)
}

// AddUser appends a user message.
func (h *ConversationHistory) AddUser(content string) {
	h.append(NewUserMessage(content))
}

// AddAssistant appends an assistant message.
func (h *ConversationHistory) AddAssistant(content string) {
	h.append(NewAssistantMessage(content))
}

// AddToolResult appends a result message attributed to the named tool or
// delegated agent.
func (h *ConversationHistory) AddToolResult(name, content string) {
	h.append(NewToolResultMessage(name, content))
}

func (h *ConversationHistory) append(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, msg)
}

// Messages returns a copy of the full ordered message sequence.
func (h *ConversationHistory) Messages() []Message {
	h.mu.RLock()
	defer h.mu.RUnlock()
	messages := make([]Message, len(h.messages))
	copy(messages, h.messages)
	return messages
}

// Len returns the number of messages in the history.
func (h *ConversationHistory) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.messages)
}

// SystemMessage returns the current system instruction, if any.
func (h *ConversationHistory) SystemMessage() (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, msg := range h.messages {
		if msg.Role == RoleSystem {
			return msg.Content, true
		}
	}
	return "", false
}

// Reset discards the conversation. With keepSystem the system anchor
// survives, giving the agent a fresh conversation under the same
// instructions.
func (h *ConversationHistory) Reset(keepSystem bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !keepSystem {
		h.messages = nil
		return
	}
	for _, msg := range h.messages {
		if msg.Role == RoleSystem {
			h.messages = []Message{msg}
			return
		}
	}
	h.messages = nil
}
