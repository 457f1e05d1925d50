package wave

import (
	"fmt"
	"strings"
)

// ScopeRef identifies a conventional hierarchical scope (module, instance)
// by its path from the hierarchy root. The zero value is the empty scope,
// meaning "no scope selected".
type ScopeRef struct {
	path string
}

// EmptyScope returns the "no scope selected" sentinel.
func EmptyScope() ScopeRef {
	return ScopeRef{}
}

// NewScopeRef builds a scope reference from its path components.
func NewScopeRef(parts ...string) ScopeRef {
	return ScopeRef{path: strings.Join(parts, ".")}
}

// ParseScopeRef builds a scope reference from a dotted path such as "top.cpu".
func ParseScopeRef(dotted string) ScopeRef {
	return ScopeRef{path: strings.Trim(dotted, ".")}
}

// IsEmpty reports whether s is the empty sentinel.
func (s ScopeRef) IsEmpty() bool { return s.path == "" }

// Parts returns the path components of the scope.
func (s ScopeRef) Parts() []string {
	if s.path == "" {
		return nil
	}
	return strings.Split(s.path, ".")
}

// Name returns the last path component.
func (s ScopeRef) Name() string {
	if i := strings.LastIndexByte(s.path, '.'); i >= 0 {
		return s.path[i+1:]
	}
	return s.path
}

// Depth is the number of path components.
func (s ScopeRef) Depth() int {
	if s.path == "" {
		return 0
	}
	return strings.Count(s.path, ".") + 1
}

// Child returns the scope nested directly below s.
func (s ScopeRef) Child(name string) ScopeRef {
	if s.path == "" {
		return ScopeRef{path: name}
	}
	return ScopeRef{path: s.path + "." + name}
}

// Parent returns the enclosing scope, or the empty scope for roots.
func (s ScopeRef) Parent() ScopeRef {
	if i := strings.LastIndexByte(s.path, '.'); i >= 0 {
		return ScopeRef{path: s.path[:i]}
	}
	return ScopeRef{}
}

func (s ScopeRef) String() string { return s.path }

// VariableRef identifies a variable declared in a scope. Two refs are equal
// when both the scope and the name are equal, so the struct is usable as a
// map key.
type VariableRef struct {
	Scope ScopeRef
	Name  string
}

// NewVariableRef returns a reference to the variable name inside scope.
func NewVariableRef(scope ScopeRef, name string) VariableRef {
	return VariableRef{Scope: scope, Name: name}
}

// FullPath is the scope-qualified name, e.g. "top.cpu.pc".
func (v VariableRef) FullPath() string {
	if v.Scope.IsEmpty() {
		return v.Name
	}
	return v.Scope.String() + "." + v.Name
}

func (v VariableRef) String() string { return v.FullPath() }

// VariableNames extracts the display names of vars, preserving order.
func VariableNames(vars []VariableRef) []string {
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = v.Name
	}
	return names
}

// StreamID identifies a transaction stream.
type StreamID uint64

// GeneratorID identifies a transaction generator. Generator ids are unique
// across all streams of a container.
type GeneratorID uint64

// Stream is a transaction stream and the ids of the generators it owns,
// in the order the backend lists them.
type Stream struct {
	ID         StreamID
	Name       string
	Generators []GeneratorID
}

// Generator produces discrete transaction events within a stream.
type Generator struct {
	StreamID StreamID
	ID       GeneratorID
	Name     string
}

// TransactionStreamRef names either a whole stream or one generator of a
// stream. It is what gets added to the viewer when a stream-scope item is
// selected.
type TransactionStreamRef struct {
	StreamID    StreamID
	GeneratorID GeneratorID
	Name        string

	isGenerator bool
}

// NewStreamRef references a whole stream.
func NewStreamRef(id StreamID, name string) TransactionStreamRef {
	return TransactionStreamRef{StreamID: id, Name: name}
}

// NewGeneratorRef references a single generator of a stream.
func NewGeneratorRef(stream StreamID, gen GeneratorID, name string) TransactionStreamRef {
	return TransactionStreamRef{StreamID: stream, GeneratorID: gen, Name: name, isGenerator: true}
}

// IsGenerator reports whether the reference points at a generator rather
// than a whole stream.
func (r TransactionStreamRef) IsGenerator() bool { return r.isGenerator }

func (r TransactionStreamRef) String() string {
	if r.isGenerator {
		return fmt.Sprintf("stream %d / gen %d (%s)", r.StreamID, r.GeneratorID, r.Name)
	}
	return fmt.Sprintf("stream %d (%s)", r.StreamID, r.Name)
}

// StreamScopeKind discriminates the StreamScopeRef variants.
type StreamScopeKind int

const (
	// StreamScopeEmpty is the "no stream scope" sentinel.
	StreamScopeEmpty StreamScopeKind = iota
	// StreamScopeRoot is the top of the stream hierarchy.
	StreamScopeRoot
	// StreamScopeStream is one specific stream.
	StreamScopeStream
)

// StreamScopeRef identifies a scope in the transaction hierarchy.
type StreamScopeRef struct {
	kind   StreamScopeKind
	stream StreamID
	label  string
}

// RootStreams returns the Root variant.
func RootStreams() StreamScopeRef {
	return StreamScopeRef{kind: StreamScopeRoot}
}

// StreamOf returns the Stream(id) variant; name is kept for display.
func StreamOf(id StreamID, name string) StreamScopeRef {
	return StreamScopeRef{kind: StreamScopeStream, stream: id, label: name}
}

// EmptyStreams returns the Empty(label) variant.
func EmptyStreams(label string) StreamScopeRef {
	return StreamScopeRef{kind: StreamScopeEmpty, label: label}
}

// Kind returns the variant tag.
func (s StreamScopeRef) Kind() StreamScopeKind { return s.kind }

// StreamID is only meaningful for the Stream variant.
func (s StreamScopeRef) StreamID() StreamID { return s.stream }

// Label is the display name (stream name, or the Empty label).
func (s StreamScopeRef) Label() string {
	if s.kind == StreamScopeRoot {
		return "tr"
	}
	return s.label
}

func (s StreamScopeRef) String() string {
	switch s.kind {
	case StreamScopeRoot:
		return "Root"
	case StreamScopeStream:
		return fmt.Sprintf("Stream(%d)", s.stream)
	default:
		return fmt.Sprintf("Empty(%q)", s.label)
	}
}

// ScopeKind discriminates ScopeType.
type ScopeKind int

const (
	// KindWave marks a conventional waveform scope.
	KindWave ScopeKind = iota + 1
	// KindStream marks a transaction stream scope.
	KindStream
)

// ScopeType is the active scope: exactly one of a wave scope or a stream
// scope. The zero value is invalid; build it with NewWaveScope or
// NewStreamScope.
type ScopeType struct {
	kind   ScopeKind
	wave   ScopeRef
	stream StreamScopeRef
}

// NewWaveScope wraps a conventional scope.
func NewWaveScope(s ScopeRef) ScopeType {
	return ScopeType{kind: KindWave, wave: s}
}

// NewStreamScope wraps a transaction stream scope.
func NewStreamScope(s StreamScopeRef) ScopeType {
	return ScopeType{kind: KindStream, stream: s}
}

// Kind returns which arm of the union is populated.
func (s ScopeType) Kind() ScopeKind { return s.kind }

// Wave returns the conventional scope when Kind is KindWave.
func (s ScopeType) Wave() (ScopeRef, bool) {
	return s.wave, s.kind == KindWave
}

// Stream returns the stream scope when Kind is KindStream.
func (s ScopeType) Stream() (StreamScopeRef, bool) {
	return s.stream, s.kind == KindStream
}

func (s ScopeType) String() string {
	switch s.kind {
	case KindWave:
		return "WaveScope(" + s.wave.String() + ")"
	case KindStream:
		return "StreamScope(" + s.stream.String() + ")"
	default:
		return "ScopeType(invalid)"
	}
}
