package agent

import (
	"fmt"
	"sort"
	"sync"

	"github.com/samber/lo"
)

// Manager is the process-wide registry mapping unique agent names to
// instances. It is an explicitly constructed object passed by reference, not
// a singleton; create one per process (or per test) and hand it to every
// agent. It holds no ownership beyond the mapping: agents own their own
// history and tools.
//
// All methods are safe for concurrent use.
type Manager struct {
	mu     sync.RWMutex
	agents map[string]*Agent
}

// NewManager constructs an empty registry.
func NewManager() *Manager {
	return &Manager{agents: make(map[string]*Agent)}
}

// Register adds an agent. Duplicate names are rejected so name-based
// parent/child resolution stays unambiguous.
func (m *Manager) Register(a *Agent) error {
	if a == nil {
		return fmt.Errorf("cannot register nil agent")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.agents[a.Name()]; exists {
		return fmt.Errorf("agent %q already registered", a.Name())
	}
	m.agents[a.Name()] = a
	return nil
}

// Get returns the named agent and whether it exists.
func (m *Manager) Get(name string) (*Agent, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.agents[name]
	return a, ok
}

// Unregister removes the named agent, reporting whether it was present.
func (m *Manager) Unregister(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.agents[name]; !exists {
		return false
	}
	delete(m.agents, name)
	return true
}

// List returns all registered agents sorted by name.
func (m *Manager) List() []*Agent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	agents := lo.Values(m.agents)
	sort.Slice(agents, func(i, j int) bool { return agents[i].Name() < agents[j].Name() })
	return agents
}

// Names returns all registered agent names in sorted order.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := lo.Keys(m.agents)
	sort.Strings(names)
	return names
}

// Len returns the number of registered agents.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.agents)
}
