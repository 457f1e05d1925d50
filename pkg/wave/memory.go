package wave

import (
	"fmt"
	"sync"
)

// MemoryWaves is an in-memory WaveContainer, filled by loaders and tests.
type MemoryWaves struct {
	mu     sync.RWMutex
	roots  []ScopeRef
	scopes map[ScopeRef]*scopeEntry
}

type scopeEntry struct {
	children []ScopeRef
	vars     []VariableRef
	params   []VariableRef
	seen     map[string]bool
}

// NewMemoryWaves creates an empty waveform container.
func NewMemoryWaves() *MemoryWaves {
	return &MemoryWaves{
		scopes: make(map[ScopeRef]*scopeEntry),
	}
}

// AddScope registers scope and any missing ancestors. Registering an
// existing scope is a no-op.
func (m *MemoryWaves) AddScope(scope ScopeRef) error {
	if scope.IsEmpty() {
		return fmt.Errorf("wave: cannot add the empty scope")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addScopeLocked(scope)
	return nil
}

func (m *MemoryWaves) addScopeLocked(scope ScopeRef) *scopeEntry {
	if entry, ok := m.scopes[scope]; ok {
		return entry
	}
	entry := &scopeEntry{seen: make(map[string]bool)}
	m.scopes[scope] = entry
	parent := scope.Parent()
	if parent.IsEmpty() {
		m.roots = append(m.roots, scope)
	} else {
		p := m.addScopeLocked(parent)
		p.children = append(p.children, scope)
	}
	return entry
}

// AddVariable declares a regular variable in scope.
func (m *MemoryWaves) AddVariable(scope ScopeRef, name string) (VariableRef, error) {
	return m.add(scope, name, false)
}

// AddParameter declares a parameter in scope.
func (m *MemoryWaves) AddParameter(scope ScopeRef, name string) (VariableRef, error) {
	return m.add(scope, name, true)
}

func (m *MemoryWaves) add(scope ScopeRef, name string, param bool) (VariableRef, error) {
	if scope.IsEmpty() {
		return VariableRef{}, fmt.Errorf("wave: variable %q needs a scope", name)
	}
	if name == "" {
		return VariableRef{}, fmt.Errorf("wave: empty variable name in %s", scope)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	entry := m.addScopeLocked(scope)
	if entry.seen[name] {
		return VariableRef{}, fmt.Errorf("wave: duplicate variable %s.%s", scope, name)
	}
	entry.seen[name] = true
	ref := NewVariableRef(scope, name)
	if param {
		entry.params = append(entry.params, ref)
	} else {
		entry.vars = append(entry.vars, ref)
	}
	return ref, nil
}

// HasScope reports whether scope was registered.
func (m *MemoryWaves) HasScope(scope ScopeRef) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.scopes[scope]
	return ok
}

// RootScopes implements WaveContainer.
func (m *MemoryWaves) RootScopes() []ScopeRef {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneScopes(m.roots)
}

// ChildScopes implements WaveContainer.
func (m *MemoryWaves) ChildScopes(scope ScopeRef) []ScopeRef {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if entry, ok := m.scopes[scope]; ok {
		return cloneScopes(entry.children)
	}
	return nil
}

// VariablesInScope implements WaveContainer. Each call returns a fresh
// slice.
func (m *MemoryWaves) VariablesInScope(scope ScopeRef) []VariableRef {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if entry, ok := m.scopes[scope]; ok {
		return cloneVars(entry.vars)
	}
	return nil
}

// ParametersInScope implements WaveContainer.
func (m *MemoryWaves) ParametersInScope(scope ScopeRef) []VariableRef {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if entry, ok := m.scopes[scope]; ok {
		return cloneVars(entry.params)
	}
	return nil
}

func cloneScopes(in []ScopeRef) []ScopeRef {
	if len(in) == 0 {
		return nil
	}
	out := make([]ScopeRef, len(in))
	copy(out, in)
	return out
}

func cloneVars(in []VariableRef) []VariableRef {
	if len(in) == 0 {
		return nil
	}
	out := make([]VariableRef, len(in))
	copy(out, in)
	return out
}

// MemoryTransactions is an in-memory TransactionContainer.
type MemoryTransactions struct {
	mu         sync.RWMutex
	order      []StreamID
	streams    map[StreamID]*Stream
	generators map[GeneratorID]Generator
}

// NewMemoryTransactions creates an empty transaction container.
func NewMemoryTransactions() *MemoryTransactions {
	return &MemoryTransactions{
		streams:    make(map[StreamID]*Stream),
		generators: make(map[GeneratorID]Generator),
	}
}

// AddStream registers a stream. Stream ids must be unique.
func (m *MemoryTransactions) AddStream(id StreamID, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.streams[id]; ok {
		return fmt.Errorf("wave: duplicate stream id %d", id)
	}
	m.streams[id] = &Stream{ID: id, Name: name}
	m.order = append(m.order, id)
	return nil
}

// AddGenerator registers a generator under an existing stream. Generator
// ids must be unique across the container.
func (m *MemoryTransactions) AddGenerator(stream StreamID, id GeneratorID, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.streams[stream]
	if !ok {
		return fmt.Errorf("wave: generator %d references unknown stream %d", id, stream)
	}
	if _, dup := m.generators[id]; dup {
		return fmt.Errorf("wave: duplicate generator id %d", id)
	}
	m.generators[id] = Generator{StreamID: stream, ID: id, Name: name}
	s.Generators = append(s.Generators, id)
	return nil
}

// Streams implements TransactionContainer.
func (m *MemoryTransactions) Streams() []Stream {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Stream, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, cloneStream(m.streams[id]))
	}
	return out
}

// StreamByID implements TransactionContainer.
func (m *MemoryTransactions) StreamByID(id StreamID) (Stream, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.streams[id]
	if !ok {
		return Stream{}, false
	}
	return cloneStream(s), true
}

// GeneratorByID implements TransactionContainer.
func (m *MemoryTransactions) GeneratorByID(id GeneratorID) (Generator, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.generators[id]
	return g, ok
}

func cloneStream(s *Stream) Stream {
	out := *s
	if len(s.Generators) > 0 {
		out.Generators = append([]GeneratorID(nil), s.Generators...)
	}
	return out
}
