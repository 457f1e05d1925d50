package hierarchy

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/filter"
	"github.com/OpenTraceLab/OpenTraceWave/pkg/message"
	"github.com/OpenTraceLab/OpenTraceWave/pkg/wave"
)

var top = wave.NewScopeRef("top")

func design(t *testing.T) *wave.DataContainer {
	t.Helper()
	w := wave.NewMemoryWaves()
	add := func(scope wave.ScopeRef, name string, param bool) {
		var err error
		if param {
			_, err = w.AddParameter(scope, name)
		} else {
			_, err = w.AddVariable(scope, name)
		}
		if err != nil {
			t.Fatalf("add %s.%s: %v", scope, name, err)
		}
	}
	add(top, "sig10", false)
	add(top, "clk", false)
	add(top, "sig2", false)
	add(top, "WIDTH", true)
	add(top.Child("cpu"), "pc", false)
	add(top.Child("mem"), "addr", false)
	return wave.Waves(w)
}

func streams(t *testing.T) *wave.DataContainer {
	t.Helper()
	tr := wave.NewMemoryTransactions()
	for _, err := range []error{
		tr.AddStream(1, "bus"),
		tr.AddStream(2, "irq"),
		tr.AddGenerator(1, 5, "write"),
		tr.AddGenerator(1, 3, "read"),
		tr.AddGenerator(1, 4, "idle"),
	} {
		if err != nil {
			t.Fatalf("build streams: %v", err)
		}
	}
	return wave.Transactions(tr)
}

func render(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		s := strings.Repeat("  ", r.Depth) + r.Kind.String() + " " + r.Label
		if r.Active {
			s += " *"
		}
		if r.Expandable {
			if r.Expanded {
				s += " [-]"
			} else {
				s += " [+]"
			}
		}
		out[i] = s
	}
	return out
}

func TestParseStyle(t *testing.T) {
	tests := map[string]Style{
		"Tree":     Tree,
		"Separate": Separate,
		"tree":     Separate,
		"":         Separate,
		"Columns":  Separate,
	}
	for in, want := range tests {
		if got := ParseStyle(in); got != want {
			t.Fatalf("ParseStyle(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestBuildSeparateWaves(t *testing.T) {
	active := wave.NewWaveScope(top)
	fr := Build(Input{Data: design(t), Active: &active, Filter: filter.New(), Style: Separate})

	wantScopes := []string{
		"scope top * [-]",
		"  scope cpu",
		"  scope mem",
	}
	if diff := cmp.Diff(wantScopes, render(fr.Scopes)); diff != "" {
		t.Fatalf("scopes mismatch (-want +got):\n%s", diff)
	}
	wantVars := []string{
		"params Parameters [+]",
		"var clk",
		"var sig2",
		"var sig10",
	}
	if diff := cmp.Diff(wantVars, render(fr.Variables)); diff != "" {
		t.Fatalf("variables mismatch (-want +got):\n%s", diff)
	}
	if fr.Tree != nil {
		t.Fatalf("separate frame should not build a tree")
	}
}

func TestBuildSeparateScopePaneIgnoresFilter(t *testing.T) {
	active := wave.NewWaveScope(top)
	f := filter.VariableFilter{Type: filter.Contain, Pattern: "zzz", CaseInsensitive: true}
	fr := Build(Input{Data: design(t), Active: &active, Filter: f, ParameterSectionExpanded: true})
	if len(fr.Scopes) != 3 {
		t.Fatalf("scope pane was filtered: %v", render(fr.Scopes))
	}
	want := []string{"params Parameters [-]", "  param WIDTH"}
	if diff := cmp.Diff(want, render(fr.Variables)); diff != "" {
		t.Fatalf("variables mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildTreeWaves(t *testing.T) {
	active := wave.NewWaveScope(top)
	in := Input{
		Data:                     design(t),
		Active:                   &active,
		Filter:                   filter.VariableFilter{Type: filter.Contain, Pattern: "c", CaseInsensitive: true},
		Style:                    Tree,
		ParameterSectionExpanded: true,
	}
	want := []string{
		"scope top * [-]",
		"  scope cpu [-]",
		"    var pc",
		"  scope mem [-]",
		"  params Parameters [-]",
		"    param WIDTH",
		"  var clk",
	}
	fr := Build(in)
	if diff := cmp.Diff(want, render(fr.Rows())); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}

	in.Expanded = func(st wave.ScopeType) bool { return st != active }
	fr = Build(in)
	if diff := cmp.Diff([]string{"scope top * [+]"}, render(fr.Tree)); diff != "" {
		t.Fatalf("collapsed tree mismatch (-want +got):\n%s", diff)
	}
}

// countingWaves records which scopes had their variables fetched.
type countingWaves struct {
	wave.WaveContainer
	fetched map[string]int
}

func (c *countingWaves) VariablesInScope(s wave.ScopeRef) []wave.VariableRef {
	c.fetched[s.String()]++
	return c.WaveContainer.VariablesInScope(s)
}

func TestBuildTreeResolvesOnlyOpenScopes(t *testing.T) {
	w, _ := design(t).AsWaves()
	counting := &countingWaves{WaveContainer: w, fetched: map[string]int{}}
	cpu := wave.NewWaveScope(top.Child("cpu"))
	mem := wave.NewWaveScope(top.Child("mem"))
	in := Input{
		Data:     wave.Waves(counting),
		Filter:   filter.VariableFilter{Type: filter.Contain, Pattern: "zzz", CaseInsensitive: true},
		Style:    Tree,
		Expanded: func(st wave.ScopeType) bool { return st != cpu && st != mem },
	}
	want := []string{
		"scope top [-]",
		"  scope cpu [+]",
		"  scope mem [+]",
		"  params Parameters [+]",
	}
	if diff := cmp.Diff(want, render(Build(in).Tree)); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
	// Collapsed leaves are fetched once for the expander and never filtered.
	wantFetched := map[string]int{"top.cpu": 1, "top.mem": 1, "top": 1}
	if diff := cmp.Diff(wantFetched, counting.fetched); diff != "" {
		t.Fatalf("fetches mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildStreams(t *testing.T) {
	data := streams(t)
	bus := wave.NewStreamScope(wave.StreamOf(1, "bus"))
	fr := Build(Input{Data: data, Active: &bus, Filter: filter.New()})
	wantScopes := []string{
		"scope tr [-]",
		"  scope bus *",
		"  scope irq",
	}
	if diff := cmp.Diff(wantScopes, render(fr.Scopes)); diff != "" {
		t.Fatalf("stream scopes mismatch (-want +got):\n%s", diff)
	}
	wantItems := []string{"item write", "item read", "item idle"}
	if diff := cmp.Diff(wantItems, render(fr.Variables)); diff != "" {
		t.Fatalf("generator rows mismatch (-want +got):\n%s", diff)
	}

	root := wave.NewStreamScope(wave.RootStreams())
	fr = Build(Input{
		Data:   data,
		Active: &root,
		Filter: filter.VariableFilter{Type: filter.Start, Pattern: "r", CaseInsensitive: true},
		Style:  Tree,
	})
	wantTree := []string{
		"scope tr * [-]",
		"  scope bus [-]",
		"    item read",
		"  scope irq",
	}
	if diff := cmp.Diff(wantTree, render(fr.Tree)); diff != "" {
		t.Fatalf("stream tree mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildWithoutData(t *testing.T) {
	fr := Build(Input{Filter: filter.New(), Style: Tree})
	if len(fr.Scopes)+len(fr.Variables)+len(fr.Tree) != 0 {
		t.Fatalf("expected empty frame, got %+v", fr)
	}
	fr = Build(Input{Data: design(t), Filter: filter.New()})
	if len(fr.Variables) != 0 {
		t.Fatalf("no active scope should list no variables, got %v", render(fr.Variables))
	}
	if len(fr.Scopes) == 0 {
		t.Fatalf("scope pane should still list scopes")
	}
}

func TestFrameFilterError(t *testing.T) {
	tests := []struct {
		f    filter.VariableFilter
		want bool
	}{
		{filter.VariableFilter{Type: filter.Regex, Pattern: "("}, true},
		{filter.VariableFilter{Type: filter.Regex, Pattern: "a+"}, false},
		{filter.VariableFilter{Type: filter.Contain, Pattern: "("}, false},
		{filter.VariableFilter{Type: filter.Start, Pattern: "[["}, false},
	}
	for _, tt := range tests {
		if got := Build(Input{Filter: tt.f}).FilterError; got != tt.want {
			t.Fatalf("%+v: FilterError = %v, want %v", tt.f, got, tt.want)
		}
	}
}

func TestWindow(t *testing.T) {
	rows := make([]Row, 10)
	for i := range rows {
		rows[i].Depth = i
	}
	tests := []struct {
		offset, height int
		first, n       int
	}{
		{0, 4, 0, 4},
		{8, 4, 8, 2},
		{-3, 2, 0, 2},
		{20, 3, 9, 1},
	}
	for _, tt := range tests {
		got := Window(rows, tt.offset, tt.height)
		if len(got) != tt.n || got[0].Depth != tt.first {
			t.Fatalf("Window(%d, %d) = %d rows from %d", tt.offset, tt.height, len(got), got[0].Depth)
		}
	}
	if Window(rows, 0, 0) != nil || Window(nil, 0, 5) != nil {
		t.Fatalf("empty window expected")
	}
}

func TestActions(t *testing.T) {
	var q message.Queue
	a := Actions{Queue: &q}
	data := streams(t)
	bus := wave.NewStreamScope(wave.StreamOf(1, "bus"))
	cur := filter.New()

	a.EditFilter("rd")
	a.ClearFilter()
	a.ToggleCaseInsensitive(cur)
	a.SelectFilterType(filter.Fuzzy)
	a.FocusFilter(true)
	a.Activate(Row{Kind: RowScope, Scope: bus})
	a.Activate(Row{Kind: RowParameterHeader, Expanded: true})
	a.Activate(Row{Kind: RowVariable, Variable: wave.NewVariableRef(top, "clk")})
	a.Activate(Row{Kind: RowItem, Item: wave.NewGeneratorRef(1, 3, "read")})
	a.Toggle(Row{Kind: RowScope, Scope: bus})
	a.Toggle(Row{Kind: RowScope, Scope: bus, Expandable: true, Expanded: true})
	a.AddAll(Input{Data: data, Active: &bus, Filter: cur})

	want := []string{
		`SetVariableNameFilterStr("rd")`,
		`SetVariableNameFilterStr("")`,
		"SetVariableNameFilterCaseInsensitive(false)",
		"SetVariableNameFilterType(Fuzzy)",
		"SetFilterFocused(true)",
		"SetActiveScope(StreamScope(Stream(1)))",
		"SetParameterSectionExpanded(false)",
		"AddVariables(1)",
		"AddStreamOrGenerator(stream 1 / gen 3 (read))",
		"SetScopeExpanded(StreamScope(Stream(1)), false)",
		"AddStreamOrGenerator(stream 1 / gen 5 (write))",
		"AddStreamOrGenerator(stream 1 / gen 3 (read))",
		"AddStreamOrGenerator(stream 1 / gen 4 (idle))",
	}
	var got []string
	for _, m := range q.Drain() {
		got = append(got, m.String())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("queued messages mismatch (-want +got):\n%s", diff)
	}
}
