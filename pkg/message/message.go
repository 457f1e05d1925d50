// Package message defines the state mutations the hierarchy panel asks for.
// The panel never changes session state while drawing; it pushes messages
// onto a Queue and the application loop applies them between frames.
package message

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/filter"
	"github.com/OpenTraceLab/OpenTraceWave/pkg/wave"
)

// Message is one requested state mutation. The set is closed.
type Message interface {
	isMessage()
	fmt.Stringer
}

// AddVariables adds variables to the viewer, in the given order.
type AddVariables struct {
	Variables []wave.VariableRef
}

// AddStreamOrGenerator adds a transaction stream or generator to the viewer.
type AddStreamOrGenerator struct {
	Ref wave.TransactionStreamRef
}

// SetVariableNameFilterCaseInsensitive toggles case folding of the filter.
type SetVariableNameFilterCaseInsensitive struct {
	CaseInsensitive bool
}

// SetVariableNameFilterType changes the matching strategy.
type SetVariableNameFilterType struct {
	Type filter.NameFilterType
}

// SetVariableNameFilterStr replaces the filter text. Clearing the filter
// sends an empty string.
type SetVariableNameFilterStr struct {
	Pattern string
}

// SetFilterFocused reports keyboard focus entering or leaving the filter
// input.
type SetFilterFocused struct {
	Focused bool
}

// SetActiveScope selects the scope whose variables are listed.
type SetActiveScope struct {
	Scope wave.ScopeType
}

// SetParameterSectionExpanded opens or closes the parameters section.
type SetParameterSectionExpanded struct {
	Expanded bool
}

// SetScopeExpanded opens or closes a node of the scope tree.
type SetScopeExpanded struct {
	Scope    wave.ScopeType
	Expanded bool
}

func (AddVariables) isMessage()                         {}
func (AddStreamOrGenerator) isMessage()                 {}
func (SetVariableNameFilterCaseInsensitive) isMessage() {}
func (SetVariableNameFilterType) isMessage()            {}
func (SetVariableNameFilterStr) isMessage()             {}
func (SetFilterFocused) isMessage()                     {}
func (SetActiveScope) isMessage()                       {}
func (SetParameterSectionExpanded) isMessage()          {}
func (SetScopeExpanded) isMessage()                     {}

func (m AddVariables) String() string {
	return fmt.Sprintf("AddVariables(%d)", len(m.Variables))
}

func (m AddStreamOrGenerator) String() string {
	return "AddStreamOrGenerator(" + m.Ref.String() + ")"
}

func (m SetVariableNameFilterCaseInsensitive) String() string {
	return fmt.Sprintf("SetVariableNameFilterCaseInsensitive(%v)", m.CaseInsensitive)
}

func (m SetVariableNameFilterType) String() string {
	return "SetVariableNameFilterType(" + m.Type.Key() + ")"
}

func (m SetVariableNameFilterStr) String() string {
	return fmt.Sprintf("SetVariableNameFilterStr(%q)", m.Pattern)
}

func (m SetFilterFocused) String() string {
	return fmt.Sprintf("SetFilterFocused(%v)", m.Focused)
}

func (m SetActiveScope) String() string {
	return "SetActiveScope(" + m.Scope.String() + ")"
}

func (m SetParameterSectionExpanded) String() string {
	return fmt.Sprintf("SetParameterSectionExpanded(%v)", m.Expanded)
}

func (m SetScopeExpanded) String() string {
	return fmt.Sprintf("SetScopeExpanded(%s, %v)", m.Scope, m.Expanded)
}

// Queue collects the messages emitted while drawing one frame.
type Queue struct {
	msgs []Message
}

// Push appends msgs in order.
func (q *Queue) Push(msgs ...Message) {
	q.msgs = append(q.msgs, msgs...)
}

// Len is the number of pending messages.
func (q *Queue) Len() int { return len(q.msgs) }

// Drain returns the pending messages in push order and empties the queue.
func (q *Queue) Drain() []Message {
	out := q.msgs
	q.msgs = nil
	return out
}
