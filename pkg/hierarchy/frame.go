// Package hierarchy builds the rows of the scope/variable panel for one
// frame. Renderers draw a Frame and report clicks through Actions; they
// never touch session state directly.
package hierarchy

import (
	"github.com/OpenTraceLab/OpenTraceWave/pkg/filter"
	"github.com/OpenTraceLab/OpenTraceWave/pkg/scope"
	"github.com/OpenTraceLab/OpenTraceWave/pkg/wave"
)

// ParametersLabel is the header of the collapsible parameters section.
const ParametersLabel = "Parameters"

// RowKind says what a row represents and therefore what clicking it does.
type RowKind int

const (
	RowScope RowKind = iota
	RowParameterHeader
	RowParameter
	RowVariable
	RowItem
)

func (k RowKind) String() string {
	switch k {
	case RowScope:
		return "scope"
	case RowParameterHeader:
		return "params"
	case RowParameter:
		return "param"
	case RowVariable:
		return "var"
	case RowItem:
		return "item"
	}
	return "unknown"
}

// Row is one line of the panel.
type Row struct {
	Kind  RowKind
	Depth int
	Label string

	// Scope is set on RowScope rows.
	Scope wave.ScopeType
	// Variable is set on RowParameter and RowVariable rows.
	Variable wave.VariableRef
	// Item is set on RowItem rows.
	Item wave.TransactionStreamRef

	Active     bool
	Expandable bool
	Expanded   bool
}

// Input is everything Build reads. It is a snapshot of session state plus
// configuration.
type Input struct {
	Data    *wave.DataContainer
	Active  *wave.ScopeType
	Filter  filter.VariableFilter
	Options scope.Options
	Style   Style

	ParameterSectionExpanded bool
	// Expanded reports whether a scope node is open. Nil opens everything.
	Expanded func(wave.ScopeType) bool
}

func (in Input) expanded(st wave.ScopeType) bool {
	if in.Expanded == nil {
		return true
	}
	return in.Expanded(st)
}

// Frame is the panel content for one redraw.
type Frame struct {
	Style  Style
	Filter filter.VariableFilter
	// FilterError turns the filter input background to the error color.
	FilterError bool

	// Scopes and Variables are the two panes of the Separate style.
	Scopes    []Row
	Variables []Row
	// Tree is the single pane of the Tree style.
	Tree []Row
}

// Rows returns the rows of the primary list: Variables for Separate, Tree
// otherwise.
func (f Frame) Rows() []Row {
	if f.Style == Tree {
		return f.Tree
	}
	return f.Variables
}

// Build derives a Frame from in. The candidate lists are resolved and
// filtered again on every call.
func Build(in Input) Frame {
	fr := Frame{
		Style:       in.Style,
		Filter:      in.Filter,
		FilterError: in.Filter.ShowsError(),
	}
	if in.Data == nil {
		return fr
	}
	active := in.Data.EmptyScopeFor()
	if in.Active != nil {
		active = *in.Active
	}
	in.Active = &active

	if in.Style == Tree {
		if in.Data.IsTransactions() {
			fr.Tree = streamTree(in)
		} else {
			fr.Tree = waveTree(in)
		}
		return fr
	}

	if in.Data.IsTransactions() {
		fr.Scopes = streamScopes(in)
	} else {
		fr.Scopes = waveScopes(in)
	}
	fr.Variables = resolutionRows(in, scope.Resolve(in.Data, in.Active, in.Filter, in.Options), 0)
	return fr
}

func scopeRow(in Input, st wave.ScopeType, label string, depth int, expandable bool) Row {
	return Row{
		Kind:       RowScope,
		Depth:      depth,
		Label:      label,
		Scope:      st,
		Active:     st == *in.Active,
		Expandable: expandable,
		Expanded:   expandable && in.expanded(st),
	}
}

// waveScopes lists the scope pane of the Separate style. The pane itself is
// never name-filtered.
func waveScopes(in Input) []Row {
	w, _ := in.Data.AsWaves()
	var rows []Row
	var walk func(scopes []wave.ScopeRef, depth int)
	walk = func(scopes []wave.ScopeRef, depth int) {
		for _, s := range scopes {
			children := w.ChildScopes(s)
			row := scopeRow(in, wave.NewWaveScope(s), s.Name(), depth, len(children) > 0)
			rows = append(rows, row)
			if row.Expanded {
				walk(children, depth+1)
			}
		}
	}
	walk(w.RootScopes(), 0)
	return rows
}

func streamScopes(in Input) []Row {
	t, _ := in.Data.AsTransactions()
	streams := t.Streams()
	root := wave.RootStreams()
	rootRow := scopeRow(in, wave.NewStreamScope(root), root.Label(), 0, len(streams) > 0)
	rows := []Row{rootRow}
	if !rootRow.Expanded {
		return rows
	}
	for _, s := range streams {
		ref := wave.StreamOf(s.ID, s.Name)
		rows = append(rows, scopeRow(in, wave.NewStreamScope(ref), s.Name, 1, false))
	}
	return rows
}

// resolutionRows flattens a resolution: the parameters section first, then
// the variables, then stream items.
func resolutionRows(in Input, res scope.Resolution, depth int) []Row {
	var rows []Row
	if res.HasParameterSection() {
		rows = append(rows, Row{
			Kind:       RowParameterHeader,
			Depth:      depth,
			Label:      ParametersLabel,
			Expandable: true,
			Expanded:   in.ParameterSectionExpanded,
		})
		if in.ParameterSectionExpanded {
			for _, p := range res.Parameters {
				rows = append(rows, Row{Kind: RowParameter, Depth: depth + 1, Label: p.Name, Variable: p})
			}
		}
	}
	for _, v := range res.Variables {
		rows = append(rows, Row{Kind: RowVariable, Depth: depth, Label: v.Name, Variable: v})
	}
	for _, item := range res.Items {
		rows = append(rows, Row{Kind: RowItem, Depth: depth, Label: item.Name, Item: item})
	}
	return rows
}

// waveTree interleaves each open scope with its child scopes, its
// parameters section and its filtered variables. Only open scopes are
// resolved; a scope is expandable when it declares anything, whether or not
// the filter keeps it.
func waveTree(in Input) []Row {
	w, _ := in.Data.AsWaves()
	var rows []Row
	var walk func(scopes []wave.ScopeRef, depth int)
	walk = func(scopes []wave.ScopeRef, depth int) {
		for _, s := range scopes {
			st := wave.NewWaveScope(s)
			children := w.ChildScopes(s)
			row := scopeRow(in, st, s.Name(), depth, len(children) > 0 || hasDeclarations(w, s))
			rows = append(rows, row)
			if !row.Expanded {
				continue
			}
			walk(children, depth+1)
			res := scope.Resolve(in.Data, &st, in.Filter, in.Options)
			rows = append(rows, resolutionRows(in, res, depth+1)...)
		}
	}
	walk(w.RootScopes(), 0)
	return rows
}

func hasDeclarations(w wave.WaveContainer, s wave.ScopeRef) bool {
	return len(w.VariablesInScope(s)) > 0 || len(w.ParametersInScope(s)) > 0
}

func streamTree(in Input) []Row {
	t, _ := in.Data.AsTransactions()
	streams := t.Streams()
	root := wave.RootStreams()
	rootRow := scopeRow(in, wave.NewStreamScope(root), root.Label(), 0, len(streams) > 0)
	rows := []Row{rootRow}
	if !rootRow.Expanded {
		return rows
	}
	for _, s := range streams {
		st := wave.NewStreamScope(wave.StreamOf(s.ID, s.Name))
		row := scopeRow(in, st, s.Name, 1, len(s.Generators) > 0)
		rows = append(rows, row)
		if row.Expanded {
			res := scope.Resolve(in.Data, &st, in.Filter, in.Options)
			rows = append(rows, resolutionRows(in, res, 2)...)
		}
	}
	return rows
}

// Window returns the rows visible in a viewport of height rows starting at
// offset, clamping both to the list.
func Window(rows []Row, offset, height int) []Row {
	if height <= 0 || len(rows) == 0 {
		return nil
	}
	offset = max(0, min(offset, len(rows)-1))
	end := min(len(rows), offset+height)
	return rows[offset:end]
}
