// Package session owns the viewer state the hierarchy panel reads. All
// mutation goes through Apply, which the application loop calls between
// frames with the messages queued while drawing.
package session

import (
	"io"

	"pkt.systems/pslog"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/filter"
	"github.com/OpenTraceLab/OpenTraceWave/pkg/hierarchy"
	"github.com/OpenTraceLab/OpenTraceWave/pkg/message"
	"github.com/OpenTraceLab/OpenTraceWave/pkg/scope"
	"github.com/OpenTraceLab/OpenTraceWave/pkg/wave"
)

// State is the session state. It is owned by one goroutine, the
// application loop, and needs no locking.
type State struct {
	data   *wave.DataContainer
	active *wave.ScopeType

	filter                   filter.VariableFilter
	filterFocused            bool
	parameterSectionExpanded bool
	expanded                 map[wave.ScopeType]bool

	variables []wave.VariableRef
	items     []wave.TransactionStreamRef

	log pslog.Logger
}

// New creates a session with the default filter. A nil logger discards.
func New(logger pslog.Logger) *State {
	if logger == nil {
		logger = pslog.NewWithOptions(io.Discard, pslog.Options{Mode: pslog.ModeStructured, NoColor: true})
	}
	return &State{
		filter:   filter.New(),
		expanded: make(map[wave.ScopeType]bool),
		log:      logger,
	}
}

// SetData replaces the loaded container. Scope selection, tree expansion
// and the displayed lists are reset since they refer to the old data.
func (s *State) SetData(data *wave.DataContainer) {
	s.data = data
	s.active = nil
	s.expanded = make(map[wave.ScopeType]bool)
	s.variables = nil
	s.items = nil
	kind := "none"
	switch {
	case data.IsWaves():
		kind = "waves"
	case data.IsTransactions():
		kind = "transactions"
	}
	s.log.Info("session data loaded", "kind", kind)
}

// Data returns the loaded container, or nil.
func (s *State) Data() *wave.DataContainer { return s.data }

// Active returns the active scope, or nil when none is selected.
func (s *State) Active() *wave.ScopeType {
	if s.active == nil {
		return nil
	}
	st := *s.active
	return &st
}

// Filter returns the current variable filter.
func (s *State) Filter() filter.VariableFilter { return s.filter }

// FilterFocused reports whether the filter input has keyboard focus.
func (s *State) FilterFocused() bool { return s.filterFocused }

// ParameterSectionExpanded reports whether the parameters section is open.
func (s *State) ParameterSectionExpanded() bool { return s.parameterSectionExpanded }

// Expanded reports whether a scope node is open. Nodes start closed.
func (s *State) Expanded(st wave.ScopeType) bool { return s.expanded[st] }

// Variables returns the variables added to the viewer, in order.
func (s *State) Variables() []wave.VariableRef {
	return append([]wave.VariableRef(nil), s.variables...)
}

// Items returns the streams and generators added to the viewer, in order.
func (s *State) Items() []wave.TransactionStreamRef {
	return append([]wave.TransactionStreamRef(nil), s.items...)
}

// Input snapshots the state for hierarchy.Build.
func (s *State) Input(style hierarchy.Style, opts scope.Options) hierarchy.Input {
	return hierarchy.Input{
		Data:                     s.data,
		Active:                   s.Active(),
		Filter:                   s.filter,
		Options:                  opts,
		Style:                    style,
		ParameterSectionExpanded: s.parameterSectionExpanded,
		Expanded:                 s.Expanded,
	}
}

// Apply performs one message.
func (s *State) Apply(msg message.Message) {
	s.log.Debug("apply message", "msg", msg.String())
	switch m := msg.(type) {
	case message.AddVariables:
		s.variables = append(s.variables, m.Variables...)
	case message.AddStreamOrGenerator:
		s.items = append(s.items, m.Ref)
	case message.SetVariableNameFilterCaseInsensitive:
		s.filter.CaseInsensitive = m.CaseInsensitive
	case message.SetVariableNameFilterType:
		s.setFilter(func(f *filter.VariableFilter) { f.Type = m.Type })
	case message.SetVariableNameFilterStr:
		s.setFilter(func(f *filter.VariableFilter) { f.Pattern = m.Pattern })
	case message.SetFilterFocused:
		s.filterFocused = m.Focused
	case message.SetActiveScope:
		st := m.Scope
		s.active = &st
	case message.SetParameterSectionExpanded:
		s.parameterSectionExpanded = m.Expanded
	case message.SetScopeExpanded:
		if m.Expanded {
			s.expanded[m.Scope] = true
		} else {
			delete(s.expanded, m.Scope)
		}
	default:
		s.log.Warn("unhandled message", "msg", msg.String())
	}
}

// Drain applies every message queued on q, in order.
func (s *State) Drain(q *message.Queue) int {
	msgs := q.Drain()
	for _, msg := range msgs {
		s.Apply(msg)
	}
	return len(msgs)
}

// setFilter applies change and logs when the filter enters or leaves the
// invalid regex state.
func (s *State) setFilter(change func(*filter.VariableFilter)) {
	before := s.filter.ShowsError()
	change(&s.filter)
	if after := s.filter.ShowsError(); after != before {
		s.log.Debug("variable filter validity changed", "pattern", s.filter.Pattern, "valid", !after)
	}
}
