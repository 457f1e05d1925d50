// Package scope maps the active scope onto the candidate lists the hierarchy
// panel displays: variables and parameters for a wave scope, streams or
// generators for a stream scope.
//
// A wave scope paired with a transaction container (or the reverse) is a
// state-management bug, not a user error, and panics.
package scope

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/filter"
	"github.com/OpenTraceLab/OpenTraceWave/pkg/message"
	"github.com/OpenTraceLab/OpenTraceWave/pkg/wave"
)

// Options are the configuration inputs that change resolution.
type Options struct {
	// ShowParametersInScopes folds parameters into the main variable list,
	// where they are filtered and sorted like any other variable. When false,
	// parameters get their own section that the name filter never touches.
	ShowParametersInScopes bool
}

// Resolution is the frame-local result for one active scope.
type Resolution struct {
	Scope wave.ScopeType

	// Parameters is the segregated parameters section, sorted by name. It is
	// nil when parameters are folded into Variables or the scope has none.
	Parameters []wave.VariableRef
	// Variables is the filtered, numerically sorted variable list.
	Variables []wave.VariableRef
	// Items lists streams (Root) or generators (Stream) that pass the name
	// filter, in backend order.
	Items []wave.TransactionStreamRef

	// FilterErr is set when the filter pattern failed to compile.
	FilterErr error
}

// HasParameterSection reports whether the parameters section is drawn.
func (r Resolution) HasParameterSection() bool { return len(r.Parameters) > 0 }

// IsEmpty reports whether there is nothing to display.
func (r Resolution) IsEmpty() bool {
	return len(r.Parameters) == 0 && len(r.Variables) == 0 && len(r.Items) == 0
}

// Resolve derives the display lists for active from data. Nothing is cached:
// the backend is queried on every call. A nil container yields an empty
// resolution, a nil active scope is treated as the container's empty scope.
func Resolve(data *wave.DataContainer, active *wave.ScopeType, f filter.VariableFilter, opts Options) Resolution {
	if data == nil {
		return Resolution{}
	}
	st := activeOrEmpty(data, active)
	res := Resolution{Scope: st}
	m := filter.Compile(f)
	res.FilterErr = m.Err()

	switch st.Kind() {
	case wave.KindWave:
		w := mustWaves(data, st)
		s, _ := st.Wave()
		if s.IsEmpty() {
			return res
		}
		candidates := w.VariablesInScope(s)
		params := w.ParametersInScope(s)
		if opts.ShowParametersInScopes {
			candidates = append(candidates, params...)
		} else if len(params) > 0 {
			filter.SortVariables(params)
			res.Parameters = params
		}
		res.Variables = filter.Select(m, candidates, variableName)
		filter.SortVariables(res.Variables)
	case wave.KindStream:
		t := mustTransactions(data, st)
		s, _ := st.Stream()
		res.Items = filter.Select(m, streamItems(t, s), itemName)
	default:
		panic(fmt.Sprintf("scope: invalid active scope %s", st))
	}
	return res
}

// AddAll returns the messages emitted by the "add all" action.
//
// For a wave scope that is one AddVariables carrying the filtered variables
// in display order. For the stream root it is one AddStreamOrGenerator per
// stream, and for a stream one per generator in backend order. Stream scope
// items are added regardless of the name filter.
func AddAll(data *wave.DataContainer, active *wave.ScopeType, f filter.VariableFilter, opts Options) []message.Message {
	if data == nil {
		return nil
	}
	st := activeOrEmpty(data, active)
	switch st.Kind() {
	case wave.KindWave:
		res := Resolve(data, &st, f, opts)
		return []message.Message{message.AddVariables{Variables: res.Variables}}
	case wave.KindStream:
		t := mustTransactions(data, st)
		s, _ := st.Stream()
		items := streamItems(t, s)
		if len(items) == 0 {
			return nil
		}
		msgs := make([]message.Message, len(items))
		for i, item := range items {
			msgs[i] = message.AddStreamOrGenerator{Ref: item}
		}
		return msgs
	default:
		panic(fmt.Sprintf("scope: invalid active scope %s", st))
	}
}

func activeOrEmpty(data *wave.DataContainer, active *wave.ScopeType) wave.ScopeType {
	if active == nil {
		return data.EmptyScopeFor()
	}
	return *active
}

func mustWaves(data *wave.DataContainer, st wave.ScopeType) wave.WaveContainer {
	w, ok := data.AsWaves()
	if !ok {
		panic(fmt.Sprintf("scope: active scope %s requires a wave container", st))
	}
	return w
}

func mustTransactions(data *wave.DataContainer, st wave.ScopeType) wave.TransactionContainer {
	t, ok := data.AsTransactions()
	if !ok {
		panic(fmt.Sprintf("scope: active scope %s requires a transaction container", st))
	}
	return t
}

// streamItems lists the unfiltered items below s.
func streamItems(t wave.TransactionContainer, s wave.StreamScopeRef) []wave.TransactionStreamRef {
	switch s.Kind() {
	case wave.StreamScopeRoot:
		streams := t.Streams()
		items := make([]wave.TransactionStreamRef, len(streams))
		for i, st := range streams {
			items[i] = wave.NewStreamRef(st.ID, st.Name)
		}
		return items
	case wave.StreamScopeStream:
		stream, ok := t.StreamByID(s.StreamID())
		if !ok {
			panic(fmt.Sprintf("scope: stream %d not found", s.StreamID()))
		}
		items := make([]wave.TransactionStreamRef, len(stream.Generators))
		for i, id := range stream.Generators {
			gen, ok := t.GeneratorByID(id)
			if !ok {
				panic(fmt.Sprintf("scope: generator %d of stream %d not found", id, stream.ID))
			}
			items[i] = wave.NewGeneratorRef(gen.StreamID, gen.ID, gen.Name)
		}
		return items
	}
	return nil
}

func variableName(v wave.VariableRef) string      { return v.Name }
func itemName(r wave.TransactionStreamRef) string { return r.Name }
