package hierarchy

import (
	"github.com/OpenTraceLab/OpenTraceWave/pkg/filter"
	"github.com/OpenTraceLab/OpenTraceWave/pkg/message"
	"github.com/OpenTraceLab/OpenTraceWave/pkg/scope"
	"github.com/OpenTraceLab/OpenTraceWave/pkg/wave"
)

// Actions turns panel interactions into queued messages.
type Actions struct {
	Queue *message.Queue
}

// EditFilter replaces the filter text.
func (a Actions) EditFilter(pattern string) {
	a.Queue.Push(message.SetVariableNameFilterStr{Pattern: pattern})
}

// ClearFilter empties the filter text.
func (a Actions) ClearFilter() {
	a.Queue.Push(message.SetVariableNameFilterStr{Pattern: ""})
}

// ToggleCaseInsensitive flips case folding relative to the current filter.
func (a Actions) ToggleCaseInsensitive(current filter.VariableFilter) {
	a.Queue.Push(message.SetVariableNameFilterCaseInsensitive{CaseInsensitive: !current.CaseInsensitive})
}

// SelectFilterType switches the matching strategy.
func (a Actions) SelectFilterType(t filter.NameFilterType) {
	a.Queue.Push(message.SetVariableNameFilterType{Type: t})
}

// FocusFilter reports the filter input gaining or losing focus.
func (a Actions) FocusFilter(focused bool) {
	a.Queue.Push(message.SetFilterFocused{Focused: focused})
}

// AddAll queues the "add all" messages for the active scope.
func (a Actions) AddAll(in Input) {
	a.Queue.Push(scope.AddAll(in.Data, in.Active, in.Filter, in.Options)...)
}

// Activate handles a click on row: scopes become active, variables and
// stream items are added to the viewer, the parameters header toggles.
func (a Actions) Activate(row Row) {
	switch row.Kind {
	case RowScope:
		a.Queue.Push(message.SetActiveScope{Scope: row.Scope})
	case RowParameterHeader:
		a.Queue.Push(message.SetParameterSectionExpanded{Expanded: !row.Expanded})
	case RowParameter, RowVariable:
		a.Queue.Push(message.AddVariables{Variables: []wave.VariableRef{row.Variable}})
	case RowItem:
		a.Queue.Push(message.AddStreamOrGenerator{Ref: row.Item})
	}
}

// Toggle opens or closes an expandable row.
func (a Actions) Toggle(row Row) {
	if !row.Expandable {
		return
	}
	switch row.Kind {
	case RowScope:
		a.Queue.Push(message.SetScopeExpanded{Scope: row.Scope, Expanded: !row.Expanded})
	case RowParameterHeader:
		a.Queue.Push(message.SetParameterSectionExpanded{Expanded: !row.Expanded})
	}
}
