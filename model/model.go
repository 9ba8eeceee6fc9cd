package model

import (
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/orchestrai/core"
)

// Request captures the normalized model input produced by the conversation
// loop: the agent's full ordered history plus the schema constraining the
// output.
type Request struct {
	Messages []core.Message `json:"messages"`
	// Schema is a JSON schema the response must conform to. Providers that
	// support constrained generation enforce it server-side; the loop's
	// validation is the safety net for those that cannot.
	Schema map[string]any `json:"schema,omitempty"`
	// SchemaName identifies the schema to providers that require a name.
	SchemaName string `json:"schema_name,omitempty"`
}

// TokenUsage captures token usage statistics for a response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the raw output of one model call. Text is expected to be a
// single JSON document matching the requested schema; the loop parses and
// validates it.
type Response struct {
	ID    string      `json:"id"`
	Text  string      `json:"text"`
	Usage *TokenUsage `json:"usage,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name           string `json:"name"`
	Provider       string `json:"provider"` // "openai", "anthropic", "scripted", etc.
	SupportsSchema bool   `json:"supports_schema"`
}

// Model is the minimal interface the conversation loop requires to drive
// generation. Implementations must honor ctx cancellation and return either
// a complete response or an error, never both.
type Model interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// ScriptedModel is a deterministic in-memory Model for tests and examples.
// It replays a fixed sequence of canned outputs and records every request it
// receives so tests can assert on the replayed history.
type ScriptedModel struct {
	mu       sync.Mutex
	info     Info
	outputs  []string
	calls    int
	loopLast bool
	failErr  error
	requests []Request
}

// NewScriptedModel constructs a model replaying the given outputs in order.
func NewScriptedModel(name string, outputs ...string) *ScriptedModel {
	return &ScriptedModel{
		info:    Info{Name: name, Provider: "scripted", SupportsSchema: true},
		outputs: outputs,
	}
}

// LoopLast makes the model repeat its final output once the script is
// exhausted instead of erroring. Returns the model for chaining.
func (m *ScriptedModel) LoopLast() *ScriptedModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loopLast = true
	return m
}

// FailWith makes the model return err once the script is exhausted,
// simulating a transport failure. Returns the model for chaining.
func (m *ScriptedModel) FailWith(err error) *ScriptedModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
	return m
}

// Generate implements Model.
func (m *ScriptedModel) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)
	idx := m.calls
	m.calls++

	if idx >= len(m.outputs) {
		if m.loopLast && len(m.outputs) > 0 {
			idx = len(m.outputs) - 1
		} else if m.failErr != nil {
			return nil, m.failErr
		} else {
			return nil, fmt.Errorf("scripted model %q exhausted after %d outputs", m.info.Name, len(m.outputs))
		}
	}

	return &Response{
		ID:   core.NewID(),
		Text: m.outputs[idx],
		Usage: &TokenUsage{
			PromptTokens:     len(req.Messages),
			CompletionTokens: 1,
			TotalTokens:      len(req.Messages) + 1,
		},
	}, nil
}

// Info implements Model.
func (m *ScriptedModel) Info() Info { return m.info }

// Calls returns how many times Generate was invoked.
func (m *ScriptedModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Requests returns a copy of all recorded requests in call order.
func (m *ScriptedModel) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	requests := make([]Request, len(m.requests))
	copy(requests, m.requests)
	return requests
}
