package tool

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"
)

// Registry is the per-agent mapping from tool name to implementation. Tools
// are immutable once registered; registering a duplicate name is an error so
// the model's view of the tool set stays unambiguous.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool. Duplicate names are rejected.
func (r *Registry) Register(t Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[t.Name()]; exists {
		return fmt.Errorf("tool %q already registered", t.Name())
	}
	r.tools[t.Name()] = t
	return nil
}

// Get returns the named tool and whether it exists.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// Names returns all registered tool names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := lo.Keys(r.tools)
	sort.Strings(names)
	return names
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Describe renders the registered tools as prompt text, one line per tool
// with its parameter names and description, or "none" for an empty registry.
func (r *Registry) Describe() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.tools) == 0 {
		return "none"
	}

	names := lo.Keys(r.tools)
	sort.Strings(names)

	lines := lo.Map(names, func(name string, _ int) string {
		t := r.tools[name]
		return fmt.Sprintf("%s (params: %s) - %s", t.Name(), paramNames(t), t.Description())
	})
	return strings.Join(lines, "\n  ")
}

// paramNames lists the property names of a tool's parameter schema.
func paramNames(t Tool) string {
	props, ok := t.Parameters()["properties"].(map[string]any)
	if !ok || len(props) == 0 {
		return "none"
	}
	names := lo.Keys(props)
	sort.Strings(names)
	return strings.Join(names, ", ")
}
