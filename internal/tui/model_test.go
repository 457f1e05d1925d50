package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/OpenTraceLab/OpenTraceWave/internal/session"
	"github.com/OpenTraceLab/OpenTraceWave/pkg/filter"
	"github.com/OpenTraceLab/OpenTraceWave/pkg/hierarchy"
	"github.com/OpenTraceLab/OpenTraceWave/pkg/scope"
	"github.com/OpenTraceLab/OpenTraceWave/pkg/wave"
)

var top = wave.NewScopeRef("top")

func newState(t *testing.T) *session.State {
	t.Helper()
	w := wave.NewMemoryWaves()
	for _, step := range []func() error{
		func() error { _, err := w.AddVariable(top, "rst"); return err },
		func() error { _, err := w.AddVariable(top, "clk"); return err },
		func() error { _, err := w.AddParameter(top, "WIDTH"); return err },
		func() error { _, err := w.AddVariable(top.Child("cpu"), "pc"); return err },
	} {
		if err := step(); err != nil {
			t.Fatalf("build design: %v", err)
		}
	}
	state := session.New(nil)
	state.SetData(wave.Waves(w))
	return state
}

func key(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModNone) }

func runeKey(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

// press feeds events one by one, applying the queue after each like the
// run loop does between redraws.
func press(t *testing.T, m *Model, events ...*tcell.EventKey) {
	t.Helper()
	for _, ev := range events {
		if !m.HandleKey(ev) {
			t.Fatalf("key %v quit unexpectedly", ev.Name())
		}
		m.Apply()
	}
}

func labels(rows []hierarchy.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Label
	}
	return out
}

func TestSelectScopeAndAddVariable(t *testing.T) {
	state := newState(t)
	m := NewModel(state, hierarchy.Separate, scope.Options{})

	press(t, m, key(tcell.KeyEnter))
	active := state.Active()
	if active == nil || *active != wave.NewWaveScope(top) {
		t.Fatalf("active scope = %v, want top", active)
	}
	if diff := cmp.Diff([]string{"Parameters", "clk", "rst"}, labels(m.Frame().Variables)); diff != "" {
		t.Fatalf("variables pane mismatch (-want +got):\n%s", diff)
	}

	press(t, m, key(tcell.KeyTab), key(tcell.KeyDown), key(tcell.KeyEnter))
	got := wave.VariableNames(state.Variables())
	if diff := cmp.Diff([]string{"clk"}, got); diff != "" {
		t.Fatalf("added variables mismatch (-want +got):\n%s", diff)
	}
}

func TestParameterSectionToggle(t *testing.T) {
	state := newState(t)
	m := NewModel(state, hierarchy.Separate, scope.Options{})
	press(t, m, key(tcell.KeyEnter), key(tcell.KeyTab), key(tcell.KeyRight))
	if !state.ParameterSectionExpanded() {
		t.Fatalf("expected parameter section to be expanded")
	}
	if diff := cmp.Diff([]string{"Parameters", "WIDTH", "clk", "rst"}, labels(m.Frame().Variables)); diff != "" {
		t.Fatalf("variables pane mismatch (-want +got):\n%s", diff)
	}
	press(t, m, key(tcell.KeyLeft))
	if state.ParameterSectionExpanded() {
		t.Fatalf("expected parameter section to be collapsed")
	}
}

func TestFilterEditing(t *testing.T) {
	state := newState(t)
	m := NewModel(state, hierarchy.Separate, scope.Options{})
	press(t, m, key(tcell.KeyEnter), runeKey('/'))
	if !state.FilterFocused() {
		t.Fatalf("expected filter to be focused")
	}

	press(t, m, runeKey('r'), runeKey('s'))
	if got := state.Filter().Pattern; got != "rs" {
		t.Fatalf("pattern = %q, want %q", got, "rs")
	}
	if diff := cmp.Diff([]string{"Parameters", "rst"}, labels(m.Frame().Variables)); diff != "" {
		t.Fatalf("filtered pane mismatch (-want +got):\n%s", diff)
	}

	// q is text while the filter has focus.
	press(t, m, key(tcell.KeyBackspace2), runeKey('q'))
	if got := state.Filter().Pattern; got != "rq" {
		t.Fatalf("pattern = %q, want %q", got, "rq")
	}
	press(t, m, key(tcell.KeyCtrlU), key(tcell.KeyEnter))
	if state.FilterFocused() || state.Filter().Pattern != "" {
		t.Fatalf("filter = %+v focused=%v, want cleared and unfocused", state.Filter(), state.FilterFocused())
	}
}

func TestFilterSettingKeys(t *testing.T) {
	state := newState(t)
	m := NewModel(state, hierarchy.Separate, scope.Options{})

	press(t, m, runeKey('c'))
	if state.Filter().CaseInsensitive {
		t.Fatalf("expected case sensitive filter after toggle")
	}
	want := []filter.NameFilterType{filter.Fuzzy, filter.Regex, filter.Start, filter.Contain}
	for _, typ := range want {
		press(t, m, runeKey('t'))
		if got := state.Filter().Type; got != typ {
			t.Fatalf("filter type = %v, want %v", got, typ)
		}
	}
}

func TestInvalidRegexLine(t *testing.T) {
	state := newState(t)
	m := NewModel(state, hierarchy.Separate, scope.Options{})
	press(t, m, runeKey('t'), runeKey('t'), runeKey('/'), runeKey('('))
	if state.Filter().Type != filter.Regex {
		t.Fatalf("filter type = %v, want regex", state.Filter().Type)
	}
	found := false
	for _, line := range m.Lines(20) {
		if line.Kind == LineFilterError {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an error filter line for an invalid regex")
	}
}

func TestAddAll(t *testing.T) {
	state := newState(t)
	m := NewModel(state, hierarchy.Separate, scope.Options{})
	press(t, m, key(tcell.KeyEnter), runeKey('a'))
	if diff := cmp.Diff([]string{"clk", "rst"}, wave.VariableNames(state.Variables())); diff != "" {
		t.Fatalf("add all mismatch (-want +got):\n%s", diff)
	}
}

func TestQuitKeys(t *testing.T) {
	for _, ev := range []*tcell.EventKey{key(tcell.KeyEscape), key(tcell.KeyCtrlC), runeKey('q')} {
		m := NewModel(newState(t), hierarchy.Separate, scope.Options{})
		if m.HandleKey(ev) {
			t.Fatalf("key %v did not quit", ev.Name())
		}
	}
}

func TestLinesSeparate(t *testing.T) {
	state := newState(t)
	m := NewModel(state, hierarchy.Separate, scope.Options{})
	press(t, m, key(tcell.KeyEnter))

	lines := m.Lines(12)
	var texts []string
	for _, line := range lines[:len(lines)-1] {
		texts = append(texts, line.Text)
	}
	want := []string{
		"Scopes",
		"▸ top",
		"Variables",
		"[Variable contains] aa > ",
		"▸ Parameters",
		"  clk",
		"  rst",
	}
	if diff := cmp.Diff(want, texts); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	if lines[1].Kind != LineActiveRow || !lines[1].Cursor {
		t.Fatalf("scope line = %+v, want active row under cursor", lines[1])
	}
	if lines[4].Kind != LineSection {
		t.Fatalf("parameters line kind = %v, want section", lines[4].Kind)
	}
	if last := lines[len(lines)-1]; last.Kind != LineStatus {
		t.Fatalf("last line kind = %v, want status", last.Kind)
	}
}

func TestLinesScrollKeepsCursorVisible(t *testing.T) {
	w := wave.NewMemoryWaves()
	for _, name := range []string{"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7"} {
		if err := w.AddScope(wave.NewScopeRef(name)); err != nil {
			t.Fatalf("add scope: %v", err)
		}
	}
	state := session.New(nil)
	state.SetData(wave.Waves(w))
	m := NewModel(state, hierarchy.Separate, scope.Options{})

	// 10 lines leave a body of 6 and a scope pane of 2 rows.
	press(t, m, runeKey('j'), runeKey('j'), runeKey('j'))
	lines := m.Lines(10)
	if diff := cmp.Diff([]string{"  s2", "  s3"}, []string{lines[1].Text, lines[2].Text}); diff != "" {
		t.Fatalf("scope window mismatch (-want +got):\n%s", diff)
	}
	if !lines[2].Cursor {
		t.Fatalf("expected the cursor on the last visible scope row")
	}
}

func TestTreeStyle(t *testing.T) {
	state := newState(t)
	m := NewModel(state, hierarchy.Tree, scope.Options{})
	if got := labels(m.Frame().Tree); !cmp.Equal([]string{"top"}, got) {
		t.Fatalf("collapsed tree = %v", got)
	}

	press(t, m, key(tcell.KeyRight))
	if diff := cmp.Diff([]string{"top", "cpu", "Parameters", "clk", "rst"}, labels(m.Frame().Tree)); diff != "" {
		t.Fatalf("expanded tree mismatch (-want +got):\n%s", diff)
	}

	// Tab does nothing in the single-pane layout.
	press(t, m, key(tcell.KeyTab), key(tcell.KeyDown), key(tcell.KeyDown), key(tcell.KeyDown), key(tcell.KeyEnter))
	if diff := cmp.Diff([]string{"clk"}, wave.VariableNames(state.Variables())); diff != "" {
		t.Fatalf("added variables mismatch (-want +got):\n%s", diff)
	}

	press(t, m, runeKey('k'), runeKey('k'), runeKey('k'), key(tcell.KeyLeft))
	if got := labels(m.Frame().Tree); !cmp.Equal([]string{"top"}, got) {
		t.Fatalf("tree after collapse = %v", got)
	}
}

func TestNoData(t *testing.T) {
	m := NewModel(session.New(nil), hierarchy.Separate, scope.Options{})
	lines := m.Lines(5)
	if len(lines) != 2 || lines[0].Text != "No data loaded." {
		t.Fatalf("lines = %+v", lines)
	}
	press(t, m, key(tcell.KeyEnter), key(tcell.KeyDown), runeKey('a'))
	if m.Pending() != 0 {
		t.Fatalf("expected nothing queued")
	}
}
